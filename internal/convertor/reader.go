package convertor

import (
	"context"
	"os"
)

// FileReader reads whole variable files
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// OSReader reads from the local filesystem
type OSReader struct{}

// ReadFile reads name unless ctx is already done
func (OSReader) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}
