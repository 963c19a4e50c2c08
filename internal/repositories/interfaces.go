package repositories

import (
	"context"
	"io"
)

// SalesDataRepositoryInterface defines the contract for reading raw sales data
type SalesDataRepositoryInterface interface {
	// Open returns a reader over the raw CSV text. Callers must close it.
	Open(ctx context.Context) (io.ReadCloser, error)
	// Location describes where the data is read from, for logs and reports
	Location() string
}
