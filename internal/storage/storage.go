// Package storage persists uploaded files. Keys are "<category>/<filename>".
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Backend is implemented by the local disk and S3-compatible stores.
type Backend interface {
	// Prepare creates whatever containers the categories need. Idempotent.
	Prepare(ctx context.Context, categories []string) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete reports false without error when the key does not exist.
	Delete(ctx context.Context, key string) (bool, error)
	URL(key string) string
}

// Key joins a category and filename, rejecting anything that could escape
// the category directory.
func Key(category, filename string) (string, error) {
	for _, part := range []string{category, filename} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", ErrInvalidKey
		}
	}
	return path.Join(category, filename), nil
}
