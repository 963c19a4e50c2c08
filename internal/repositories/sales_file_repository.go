package repositories

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	apperrors "sales-report/internal/errors"
)

const gcsScheme = "gs://"

// fileSalesRepository reads sales data from the local file system
type fileSalesRepository struct {
	path string
}

// NewFileSalesRepository creates a repository for a local CSV file
func NewFileSalesRepository(path string) SalesDataRepositoryInterface {
	return &fileSalesRepository{
		path: path,
	}
}

// NewSalesDataRepository picks the repository for a location: gs:// URIs are
// read from Cloud Storage, anything else from the local file system.
func NewSalesDataRepository(location string) (SalesDataRepositoryInterface, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, apperrors.New(apperrors.InputMissingPath, nil)
	}

	if strings.HasPrefix(location, gcsScheme) {
		return NewGCSSalesRepository(nil, location)
	}

	return NewFileSalesRepository(location), nil
}

// Open opens the file for reading
func (r *fileSalesRepository) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Newf(apperrors.InputNotFound, err, "sales data file not found: %s", r.path)
		}
		return nil, apperrors.Newf(apperrors.InputUnreadable, err, "failed to open sales data file: %s", r.path)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, apperrors.Newf(apperrors.InputUnreadable, err, "failed to stat sales data file: %s", r.path)
	}
	if info.IsDir() {
		f.Close()
		return nil, apperrors.Newf(apperrors.InputUnreadable, nil, "sales data path is a directory: %s", r.path)
	}

	return f, nil
}

func (r *fileSalesRepository) Location() string {
	return r.path
}
