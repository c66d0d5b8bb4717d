package docstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name   string  `json:"name"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
	Active bool    `json:"active"`
}

func TestMemoryClient_CreateGet(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, "things", "a", testDoc{Name: "first", Status: "pending"}))

	t.Run("Get", func(t *testing.T) {
		doc, err := c.Get(ctx, "things", "a")
		require.NoError(t, err)
		assert.Equal(t, "a", doc.ID())

		var got testDoc
		require.NoError(t, doc.DataTo(&got))
		assert.Equal(t, "first", got.Name)
	})

	t.Run("CreateIsConditional", func(t *testing.T) {
		err := c.Create(ctx, "things", "a", testDoc{Name: "second"})
		assert.ErrorIs(t, err, ErrAlreadyExists)

		doc, err := c.Get(ctx, "things", "a")
		require.NoError(t, err)
		var got testDoc
		require.NoError(t, doc.DataTo(&got))
		assert.Equal(t, "first", got.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := c.Get(ctx, "things", "zzz")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryClient_UpdateAndIncrement(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "things", "a", testDoc{Name: "first", Amount: 10}))

	require.NoError(t, c.Update(ctx, "things", "a", map[string]any{"status": "verified"}))
	require.NoError(t, c.Increment(ctx, "things", "a", "amount", 2.5))

	doc, err := c.Get(ctx, "things", "a")
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, doc.DataTo(&got))
	assert.Equal(t, "verified", got.Status)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 12.5, got.Amount)

	assert.ErrorIs(t, c.Update(ctx, "things", "missing", map[string]any{"status": "x"}), ErrNotFound)
	assert.ErrorIs(t, c.Increment(ctx, "things", "missing", "amount", 1), ErrNotFound)
	assert.Error(t, c.Increment(ctx, "things", "a", "name", 1))
}

func TestMemoryClient_IncrementConcurrent(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "things", "a", testDoc{}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Increment(ctx, "things", "a", "amount", 2))
		}()
	}
	wg.Wait()

	doc, err := c.Get(ctx, "things", "a")
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, doc.DataTo(&got))
	assert.Equal(t, 100.0, got.Amount)
}

func TestMemoryClient_Query(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "things", "c", testDoc{Name: "c", Status: "pending", Active: true}))
	require.NoError(t, c.Set(ctx, "things", "a", testDoc{Name: "a", Status: "pending"}))
	require.NoError(t, c.Set(ctx, "things", "b", testDoc{Name: "b", Status: "verified", Active: true}))

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"All", Query{}, []string{"a", "b", "c"}},
		{"ByStatus", Where("status", "pending"), []string{"a", "c"}},
		{"ByBool", Where("active", true), []string{"b", "c"}},
		{"Combined", Where("status", "pending").And("active", true), []string{"c"}},
		{"Limit", Where("active", true).WithLimit(1), []string{"b"}},
		{"NoMatch", Where("status", "rejected"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := c.Query(ctx, "things", tt.query)
			require.NoError(t, err)
			var ids []string
			for _, d := range docs {
				ids = append(ids, d.ID())
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryClient_Delete(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "things", "a", testDoc{}))

	require.NoError(t, c.Delete(ctx, "things", "a"))
	require.NoError(t, c.Delete(ctx, "things", "a"))
	require.NoError(t, c.Delete(ctx, "other", "a"))

	_, err := c.Get(ctx, "things", "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
