// Package docstore is a small document-database abstraction over named collections of
// JSON-like documents keyed by string ids. Backends: Firestore, Postgres JSONB and memory.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Filter is an equality match on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query selects documents of a collection. Results are ordered by document id.
// A zero Limit means no limit.
type Query struct {
	Filters []Filter
	Limit   int
}

// Where starts a query with a single equality filter.
func Where(field string, value any) Query {
	return Query{Filters: []Filter{{Field: field, Value: value}}}
}

func (q Query) And(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Document is a fetched document.
type Document interface {
	ID() string
	// DataTo decodes the document into v, a pointer to a struct.
	DataTo(v any) error
}

// Client is implemented by every backend. Documents are passed as tagged structs or
// map[string]any; each backend encodes them with its own tag set.
type Client interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	// Create inserts the document only when no document with that id exists.
	Create(ctx context.Context, collection, id string, data any) error
	// Set writes the whole document, replacing any existing one.
	Set(ctx context.Context, collection, id string, data any) error
	// Update merges top-level fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Increment atomically adds delta to a numeric field of an existing document.
	Increment(ctx context.Context, collection, id, field string, delta float64) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Close() error
}
