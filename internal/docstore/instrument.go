package docstore

import (
	"context"
	"errors"
	"time"

	"kindnessconnect-backend/internal/logger"
)

type instrumented struct {
	next    Client
	timeout time.Duration
}

// Instrument bounds every operation of next by timeout and logs it. A zero timeout
// only adds logging.
func Instrument(next Client, timeout time.Duration) Client {
	return &instrumented{next: next, timeout: timeout}
}

func (c *instrumented) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *instrumented) done(op, collection string, err error, args ...any) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) {
		logger.StoreResult(op, collection, nil, append(args, "outcome", err.Error())...)
		return
	}
	logger.StoreResult(op, collection, err, args...)
}

func (c *instrumented) Get(ctx context.Context, collection, id string) (Document, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("get", collection, "id", id)
	doc, err := c.next.Get(ctx, collection, id)
	c.done("get", collection, err, "id", id)
	return doc, err
}

func (c *instrumented) Create(ctx context.Context, collection, id string, data any) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("create", collection, "id", id)
	err := c.next.Create(ctx, collection, id, data)
	c.done("create", collection, err, "id", id)
	return err
}

func (c *instrumented) Set(ctx context.Context, collection, id string, data any) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("set", collection, "id", id)
	err := c.next.Set(ctx, collection, id, data)
	c.done("set", collection, err, "id", id)
	return err
}

func (c *instrumented) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("update", collection, "id", id, "fields", len(fields))
	err := c.next.Update(ctx, collection, id, fields)
	c.done("update", collection, err, "id", id)
	return err
}

func (c *instrumented) Increment(ctx context.Context, collection, id, field string, delta float64) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("increment", collection, "id", id, "field", field, "delta", delta)
	err := c.next.Increment(ctx, collection, id, field, delta)
	c.done("increment", collection, err, "id", id)
	return err
}

func (c *instrumented) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("delete", collection, "id", id)
	err := c.next.Delete(ctx, collection, id)
	c.done("delete", collection, err, "id", id)
	return err
}

func (c *instrumented) Query(ctx context.Context, collection string, q Query) ([]Document, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	logger.StoreCall("query", collection, "filters", len(q.Filters), "limit", q.Limit)
	docs, err := c.next.Query(ctx, collection, q)
	c.done("query", collection, err, "results", len(docs))
	return docs, err
}

func (c *instrumented) Close() error {
	return c.next.Close()
}
