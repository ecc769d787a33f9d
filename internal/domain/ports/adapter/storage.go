package adapter

import "context"

// FileStorage stores opaque byte blobs and returns handles to retrieve them.
type FileStorage interface {
	Save(ctx context.Context, name string, data []byte) (handle string, err error)
	Load(ctx context.Context, handle string) ([]byte, error)
}
