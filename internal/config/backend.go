package config

import (
	"context"
	"fmt"

	"github.com/jonathan/jd-assistant/internal/store"
)

// DefaultBackendURL is used until an address is explicitly configured.
const DefaultBackendURL = "http://localhost:8000"

// BackendStore persists the backend base address.
type BackendStore struct {
	kv store.Store
}

// NewBackendStore creates a BackendStore on top of kv.
func NewBackendStore(kv store.Store) *BackendStore {
	return &BackendStore{kv: kv}
}

// Get returns the persisted address, or DefaultBackendURL when none is set.
func (b *BackendStore) Get(ctx context.Context) (string, error) {
	var url string
	found, err := b.kv.Get(ctx, store.KeyBackendURL, &url)
	if err != nil {
		return "", fmt.Errorf("failed to read backend URL: %w", err)
	}
	if !found || url == "" {
		return DefaultBackendURL, nil
	}
	return url, nil
}

// Set overwrites the persisted address. The value is stored verbatim.
func (b *BackendStore) Set(ctx context.Context, url string) error {
	if err := b.kv.Set(ctx, store.KeyBackendURL, url); err != nil {
		return fmt.Errorf("failed to save backend URL: %w", err)
	}
	return nil
}
