// Package results caches the last analysis result across sessions and
// projects it into the result view.
package results

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jd-assistant/internal/store"
	"github.com/jonathan/jd-assistant/internal/types"
)

// Cache persists the last analysis result.
type Cache struct {
	kv  store.Store
	now func() time.Time
}

// NewCache creates a Cache on kv.
func NewCache(kv store.Store) *Cache {
	return NewCacheWithClock(kv, time.Now)
}

// NewCacheWithClock creates a Cache stamping results with now.
func NewCacheWithClock(kv store.Store, now func() time.Time) *Cache {
	return &Cache{kv: kv, now: now}
}

// Save stores result with a fresh capture timestamp. Only the contact fields
// implied by the contact mode are kept.
func (c *Cache) Save(ctx context.Context, result *types.AnalysisResult) error {
	cached := *result
	mode := result.Contact.Mode
	if mode == "" {
		mode = types.DefaultContactMode
	}
	cached.Contact = types.NewContact(mode, result.Contact.Email, result.Contact.DM)
	cached.Timestamp = c.now().UTC()

	if err := c.kv.Set(ctx, store.KeyCachedAnalysisResults, cached); err != nil {
		return fmt.Errorf("failed to cache analysis result: %w", err)
	}
	result.Timestamp = cached.Timestamp
	return nil
}

// Load returns the cached result, or nil when there is none.
func (c *Cache) Load(ctx context.Context) (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	found, err := c.kv.Get(ctx, store.KeyCachedAnalysisResults, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached analysis result: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

// Clear removes the cached result.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.kv.Remove(ctx, store.KeyCachedAnalysisResults); err != nil {
		return fmt.Errorf("failed to clear cached analysis result: %w", err)
	}
	return nil
}
