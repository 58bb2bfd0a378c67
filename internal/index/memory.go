package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/promptdeck/internal/catalog"
)

// MemoryIndex holds the current catalog snapshot.
// Readers get an immutable *catalog.Catalog; reloads swap the pointer.
type MemoryIndex struct {
	mu         sync.RWMutex
	current    *catalog.Catalog
	source     string    // where the current snapshot came from (file, embedded, redis)
	lastReload time.Time // Timestamp of last successful swap
	reloads    int
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Update replaces the current snapshot
func (idx *MemoryIndex) Update(c *catalog.Catalog, source string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.current = c
	idx.source = source
	idx.lastReload = time.Now()
	idx.reloads++
}

// Current returns the snapshot, nil until the first Update
func (idx *MemoryIndex) Current() *catalog.Catalog {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.current
}

// Count returns the number of prompts in the snapshot
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.current == nil {
		return 0
	}
	return idx.current.Len()
}

// Source returns where the current snapshot was loaded from
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last swap
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// Reloads returns how many snapshots were installed
func (idx *MemoryIndex) Reloads() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.reloads
}
