package store

import (
	"slices"
	"sync"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	entries  []Entry
	metadata map[string]string
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		metadata: make(map[string]string),
	}
}

// Record appends entries.
func (m *Memory) Record(entries ...Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

// History returns a document's entries grouped by run, newest run first.
func (m *Memory) History(document string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var runs []string
	byRun := make(map[string][]Entry)
	for _, e := range m.entries {
		if e.Document != document {
			continue
		}
		if _, ok := byRun[e.Run]; !ok {
			runs = append(runs, e.Run)
		}
		byRun[e.Run] = append(byRun[e.Run], e)
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}

	slices.Reverse(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	var out []Entry
	for _, r := range runs {
		out = append(out, byRun[r]...)
	}
	return out, nil
}

// Documents lists recorded documents, sorted.
func (m *Memory) Documents() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []string
	for _, e := range m.entries {
		if !slices.Contains(docs, e.Document) {
			docs = append(docs, e.Document)
		}
	}
	slices.Sort(docs)
	return docs, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// GetMetadata retrieves a metadata value by key.
func (m *Memory) GetMetadata(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

// SetMetadata stores a metadata value by key.
func (m *Memory) SetMetadata(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}
