package storage

import (
	"context"
	"io"
)

// Storage is the object store holding uploaded check-in sheets. Upload
// transport is out of scope here, so the ingestion side only ever reads.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}
