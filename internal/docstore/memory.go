package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

type jsonDocument struct {
	id   string
	data []byte
}

func (d *jsonDocument) ID() string { return d.id }

func (d *jsonDocument) DataTo(v any) error {
	return json.Unmarshal(d.data, v)
}

// MemoryClient keeps documents as JSON in process memory. It backs local runs and tests.
type MemoryClient struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{collections: make(map[string]map[string][]byte)}
}

func (m *MemoryClient) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &jsonDocument{id: id, data: raw}, nil
}

func (m *MemoryClient) Create(ctx context.Context, collection, id string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collection(collection)
	if _, exists := docs[id]; exists {
		return ErrAlreadyExists
	}
	docs[id] = raw
	return nil
}

func (m *MemoryClient) Set(ctx context.Context, collection, id string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection(collection)[id] = raw
	return nil
}

func (m *MemoryClient) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mutate(collection, id, func(doc map[string]any) error {
		for k, v := range fields {
			doc[k] = normalize(v)
		}
		return nil
	})
}

func (m *MemoryClient) Increment(ctx context.Context, collection, id, field string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mutate(collection, id, func(doc map[string]any) error {
		current := 0.0
		if v, ok := doc[field]; ok && v != nil {
			n, ok := v.(float64)
			if !ok {
				return fmt.Errorf("field %q is not numeric", field)
			}
			current = n
		}
		doc[field] = current + delta
		return nil
	})
}

func (m *MemoryClient) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

func (m *MemoryClient) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := m.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Document
	for _, id := range ids {
		raw := docs[id]
		if len(q.Filters) > 0 {
			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
			}
			if !matches(doc, q.Filters) {
				continue
			}
		}
		out = append(out, &jsonDocument{id: id, data: raw})
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryClient) Close() error { return nil }

// collection must be called with the write lock held.
func (m *MemoryClient) collection(name string) map[string][]byte {
	docs, ok := m.collections[name]
	if !ok {
		docs = make(map[string][]byte)
		m.collections[name] = docs
	}
	return docs
}

// mutate must be called with the write lock held.
func (m *MemoryClient) mutate(collection, id string, fn func(map[string]any) error) error {
	raw, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	if err := fn(doc); err != nil {
		return err
	}
	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	m.collections[collection][id] = updated
	return nil
}

func matches(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !reflect.DeepEqual(doc[f.Field], normalize(f.Value)) {
			return false
		}
	}
	return true
}

// normalize converts a Go value to its decoded-JSON form so it compares equal to
// stored field values.
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
