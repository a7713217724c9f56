package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type testDoc struct {
	ID    string   `bson:"_id"`
	Name  string   `bson:"name"`
	Tags  []string `bson:"tags"`
	Count int      `bson:"count"`
}

func TestMemoryGetUpsertDelete(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.Get(ctx, "docs", "missing")
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, mem.Upsert(ctx, "docs", "a", testDoc{ID: "a", Name: "first"}))

	raw, err := mem.Get(ctx, "docs", "a")
	require.NoError(t, err)

	var got testDoc
	require.NoError(t, bson.Unmarshal(raw, &got))
	assert.Equal(t, "first", got.Name)

	// Upsert replaces, not merges.
	require.NoError(t, mem.Upsert(ctx, "docs", "a", testDoc{ID: "a", Name: "second"}))
	raw, err = mem.Get(ctx, "docs", "a")
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &got))
	assert.Equal(t, "second", got.Name)

	require.NoError(t, mem.Delete(ctx, "docs", "a"))
	_, err = mem.Get(ctx, "docs", "a")
	assert.ErrorIs(t, err, ErrNoDocument)

	// Deleting a missing document is not an error.
	assert.NoError(t, mem.Delete(ctx, "docs", "a"))
}

func TestMemoryFindBy(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	require.NoError(t, mem.Upsert(ctx, "docs", "a", testDoc{ID: "a", Name: "x", Tags: []string{"go", "db"}}))
	require.NoError(t, mem.Upsert(ctx, "docs", "b", testDoc{ID: "b", Name: "x"}))
	require.NoError(t, mem.Upsert(ctx, "docs", "c", testDoc{ID: "c", Name: "y", Tags: []string{"go"}}))

	docs, err := mem.FindBy(ctx, "docs", "name", "x")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// Array fields match on element equality, like Mongo.
	docs, err = mem.FindBy(ctx, "docs", "tags", "go")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = mem.FindBy(ctx, "docs", "tags", "db")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].Lookup("_id").StringValue())

	docs, err = mem.FindBy(ctx, "docs", "name", "nope")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryFindIn(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	require.NoError(t, mem.Upsert(ctx, "docs", "a", testDoc{ID: "a", Name: "x"}))
	require.NoError(t, mem.Upsert(ctx, "docs", "b", testDoc{ID: "b", Name: "y"}))
	require.NoError(t, mem.Upsert(ctx, "docs", "c", testDoc{ID: "c", Name: "z"}))

	docs, err := mem.FindIn(ctx, "docs", "name", []string{"x", "z"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = mem.FindIn(ctx, "docs", "name", nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryIncrement(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.Increment(ctx, "docs", "missing", "count", 1)
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, mem.Upsert(ctx, "docs", "a", testDoc{ID: "a", Count: 1}))

	n, err := mem.Increment(ctx, "docs", "a", "count", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = mem.Increment(ctx, "docs", "a", "count", -3)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	raw, err := mem.Get(ctx, "docs", "a")
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, bson.Unmarshal(raw, &got))
	assert.Equal(t, -1, got.Count)
}

func TestMemoryIncrementConcurrent(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	require.NoError(t, mem.Upsert(ctx, "docs", "a", testDoc{ID: "a"}))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = mem.Increment(ctx, "docs", "a", "count", 1)
		}()
	}
	wg.Wait()

	n, err := mem.Increment(ctx, "docs", "a", "count", 0)
	require.NoError(t, err)
	assert.Equal(t, workers, n)
}
