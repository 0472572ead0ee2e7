package storage

import (
	"context"
	"io"
)

// Uploader is the external media store. Uploaded documents are owned by the
// store; the rest of the system only keeps the returned public URL.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (publicURL string, err error)
}
