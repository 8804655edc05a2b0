package ports

import (
	"context"
	"io"
)

// ObjectStore persists uploaded covers and avatars and returns a public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
