// Package blob stores binary objects such as profile photos under
// slash-separated keys ("profile_pics/u1.jpg").
package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob not found")

type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Store interface {
	// Put replaces any existing object stored under key.
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Open(ctx context.Context, key string) (*Object, error)
}
