// Package store provides the process-wide key-value store holding the client's
// persisted state (backend address and cached analysis result).
package store

import (
	"context"
	"errors"
)

// Keys used by the client.
const (
	KeyBackendURL            = "backendUrl"
	KeyCachedAnalysisResults = "cachedAnalysisResults"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store persists JSON-encodable values by key.
type Store interface {
	// Get decodes the value stored under key into dst. It reports false when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}
