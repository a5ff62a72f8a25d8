// Package store holds finished detection results for later retrieval.
//
// Tool calls are stateless between requests, so detection saves its
// result under a generated id and the get/list/export tools address
// stored results by that id.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/floorsight/floorplan-mcp/internal/floorplan"
)

// ResultStore is the persistence surface the server depends on. The
// in-memory store is the only implementation today; the interface keeps
// a durable backend swappable without touching tool handlers.
type ResultStore interface {
	// Save stores res under id, replacing any previous entry.
	Save(id string, res *floorplan.DetectionResult) error

	// Get returns the stored result and whether it exists.
	Get(id string) (*floorplan.DetectionResult, bool)

	// List returns every stored id in sorted order.
	List() []string

	// Delete removes id and reports whether it was present.
	Delete(id string) bool
}

// Memory is a thread-safe in-memory ResultStore.
//
// Results stay resident until deleted. A stdio server lives for one
// client session, so unbounded growth is acceptable; callers that keep
// sessions open for days should Delete results they are done with.
type Memory struct {
	mu      sync.RWMutex
	results map[string]*floorplan.DetectionResult
}

// NewMemory returns an empty store ready for concurrent use.
func NewMemory() *Memory {
	return &Memory{results: make(map[string]*floorplan.DetectionResult)}
}

func (m *Memory) Save(id string, res *floorplan.DetectionResult) error {
	if id == "" {
		return errors.New("store: empty result id")
	}
	if res == nil {
		return errors.New("store: nil result")
	}

	m.mu.Lock()
	m.results[id] = res
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(id string) (*floorplan.DetectionResult, bool) {
	m.mu.RLock()
	res, ok := m.results[id]
	m.mu.RUnlock()
	return res, ok
}

func (m *Memory) List() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.results))
	for id := range m.results {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (m *Memory) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.results[id]
	delete(m.results, id)
	m.mu.Unlock()
	return ok
}

var _ ResultStore = (*Memory)(nil)
