package blob

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("blob not found")

// Store keeps files by key and hands back a URI to fetch them again.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, uri string) ([]byte, error)
	Delete(ctx context.Context, uri string) error
}
