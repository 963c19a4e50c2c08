package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "sales-report/internal/errors"

	"cloud.google.com/go/storage"
)

// gcsSalesRepository reads sales data from a Cloud Storage object
type gcsSalesRepository struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSSalesRepository creates a repository for a gs://bucket/object URI.
// When client is nil a client is created on Open and closed with the reader.
func NewGCSSalesRepository(client *storage.Client, uri string) (SalesDataRepositoryInterface, error) {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}

	return &gcsSalesRepository{
		client: client,
		bucket: bucket,
		object: object,
	}, nil
}

// ParseGCSURI splits "gs://bucket/path/to/object" into bucket and object name
func ParseGCSURI(uri string) (string, string, error) {
	if !strings.HasPrefix(uri, gcsScheme) {
		return "", "", apperrors.Newf(apperrors.InputInvalidURI, nil, "not a gs:// URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, gcsScheme)
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", apperrors.Newf(apperrors.InputInvalidURI, nil, "storage URI must name a bucket and an object: %s", uri)
	}

	return parts[0], parts[1], nil
}

// Open opens a reader on the object
func (r *gcsSalesRepository) Open(ctx context.Context) (io.ReadCloser, error) {
	client := r.client
	ownsClient := false
	if client == nil {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, apperrors.Newf(apperrors.InputUnreadable, err, "failed to create storage client")
		}
		client = c
		ownsClient = true
	}

	reader, err := client.Bucket(r.bucket).Object(r.object).NewReader(ctx)
	if err != nil {
		if ownsClient {
			client.Close()
		}
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, apperrors.Newf(apperrors.InputNotFound, err, "sales data object not found: %s", r.Location())
		}
		return nil, apperrors.Newf(apperrors.InputUnreadable, err, "failed to open sales data object: %s", r.Location())
	}

	if !ownsClient {
		return reader, nil
	}
	return &clientClosingReader{Reader: reader, client: client}, nil
}

func (r *gcsSalesRepository) Location() string {
	return fmt.Sprintf("%s%s/%s", gcsScheme, r.bucket, r.object)
}

// clientClosingReader closes the storage client together with the reader
type clientClosingReader struct {
	*storage.Reader
	client *storage.Client
}

func (c *clientClosingReader) Close() error {
	readErr := c.Reader.Close()
	clientErr := c.client.Close()
	return errors.Join(readErr, clientErr)
}
