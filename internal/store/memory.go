package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-process Store used by tests and local development. It keeps
// documents BSON-encoded so that reads and writes go through the same codec
// as the Mongo implementation, and serializes all access behind a mutex,
// which gives it the per-document write guarantee the contract requires.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.Raw
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]bson.Raw)}
}

func (m *Memory) Get(_ context.Context, collection, id string) (bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNoDocument
	}
	return doc, nil
}

func (m *Memory) Upsert(_ context.Context, collection, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: marshal: %w", collection, id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]bson.Raw)
	}
	m.collections[collection][id] = bson.Raw(raw)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}

func (m *Memory) FindBy(_ context.Context, collection, field, value string) ([]bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []bson.Raw
	for _, id := range m.sortedIDs(collection) {
		doc := m.collections[collection][id]
		if rawValueMatches(doc.Lookup(field), value) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *Memory) FindIn(_ context.Context, collection, field string, values []string) ([]bson.Raw, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []bson.Raw
	for _, id := range m.sortedIDs(collection) {
		doc := m.collections[collection][id]
		for _, value := range values {
			if rawValueMatches(doc.Lookup(field), value) {
				docs = append(docs, doc)
				break
			}
		}
	}
	return docs, nil
}

func (m *Memory) Increment(_ context.Context, collection, id, field string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.collections[collection][id]
	if !ok {
		return 0, ErrNoDocument
	}

	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("increment %s/%s.%s: unmarshal: %w", collection, id, field, err)
	}

	updated := 0
	found := false
	for i, elem := range doc {
		if elem.Key != field {
			continue
		}
		current, ok := asInt(elem.Value)
		if !ok {
			return 0, fmt.Errorf("increment %s/%s.%s: field is not numeric", collection, id, field)
		}
		updated = current + delta
		doc[i].Value = int64(updated)
		found = true
		break
	}
	if !found {
		updated = delta
		doc = append(doc, bson.E{Key: field, Value: int64(delta)})
	}

	encoded, err := bson.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("increment %s/%s.%s: marshal: %w", collection, id, field, err)
	}
	m.collections[collection][id] = bson.Raw(encoded)
	return updated, nil
}

// sortedIDs returns collection ids in stable order. Callers hold the lock.
func (m *Memory) sortedIDs(collection string) []string {
	ids := make([]string, 0, len(m.collections[collection]))
	for id := range m.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// rawValueMatches mirrors MongoDB equality semantics for the query shapes
// this store supports: a string field matches on equality, an array field
// matches when any element equals the value.
func rawValueMatches(rv bson.RawValue, value string) bool {
	switch rv.Type {
	case bson.TypeString:
		return rv.StringValue() == value
	case bson.TypeArray:
		elems, err := rv.Array().Values()
		if err != nil {
			return false
		}
		for _, elem := range elems {
			if elem.Type == bson.TypeString && elem.StringValue() == value {
				return true
			}
		}
	}
	return false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
