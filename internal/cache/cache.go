// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps the most recent good categorization per query so a
// caller can fall back to it when a new search yields nothing. The cache is
// injected by the caller; the categorization pipeline never reads it.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// Cache stores the last good category list per query.
type Cache interface {
	Get(ctx context.Context, query string) (Entry, bool, error)
	Set(ctx context.Context, entry Entry) error
}

// Entry is one cached categorization.
type Entry struct {
	Query      string           `json:"query" yaml:"query"`
	RunID      string           `json:"run_id" yaml:"run_id"`
	Categories []types.Category `json:"categories" yaml:"categories"`
	UpdatedAt  time.Time        `json:"updated_at" yaml:"updated_at"`
}

// Key normalizes a query for lookup: lowercase with whitespace collapsed.
func Key(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Memory is an in-process Cache guarded by a mutex.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry), now: time.Now}
}

// Get returns a copy of the entry for query.
func (m *Memory) Get(_ context.Context, query string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[Key(query)]
	if !ok {
		return Entry{}, false, nil
	}
	e.Categories = cloneCategories(e.Categories)
	return e, true, nil
}

// Set stores a copy of entry, replacing any previous one for the same query.
func (m *Memory) Set(_ context.Context, entry Entry) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = m.now().UTC()
	}
	entry.Categories = cloneCategories(entry.Categories)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[Key(entry.Query)] = entry
	return nil
}

func cloneCategories(cats []types.Category) []types.Category {
	if cats == nil {
		return nil
	}
	out := make([]types.Category, len(cats))
	for i, c := range cats {
		c.Content = append([]types.ContentItem{}, c.Content...)
		out[i] = c
	}
	return out
}
