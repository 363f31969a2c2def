// Package kv is the persistent key-value storage used by the response cache
// and the wishlist. Keys are scoped to a namespace, the way browser storage is
// scoped to an origin.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	ErrNotFound = errors.New("key not found")
	ErrStorage  = errors.New("storage failure")
)

// StorageError provides context for storage-layer failures.
type StorageError struct {
	Op  string // Operation that failed (e.g., "get")
	Key string // Key if applicable
	Err error  // Underlying error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("kv %s '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("kv %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store is a namespaced string-keyed byte store.
type Store interface {
	// Get returns the stored value, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists the keys starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: fmt.Errorf("%w: %v", ErrStorage, err)}
}
