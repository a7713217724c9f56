package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quill/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

// Mongo implements Store on top of a MongoDB database. Each logical
// collection maps to a MongoDB collection; the single-document atomicity of
// the underlying store is all this implementation relies on.
type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongo creates a Mongo store connected to the given URI and database.
func NewMongo(ctx context.Context, uri, databaseName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{
		client:   client,
		database: client.Database(databaseName),
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// fail records a store failure on the span, the error counter, and the log.
func (m *Mongo) fail(ctx context.Context, span trace.Span, collection, operation string, err error) {
	span.RecordError(err)
	observability.StoreErrors.WithLabelValues(collection, operation).Inc()
	observability.NewStoreLogger(collection).LogError(ctx, operation, err)
}

func (m *Mongo) Get(ctx context.Context, collection, id string) (bson.Raw, error) {
	ctx, span := observability.StartStoreSpan(ctx, "get", collection)
	defer span.End()

	raw, err := m.database.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		m.fail(ctx, span, collection, "get", err)
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return raw, nil
}

func (m *Mongo) Upsert(ctx context.Context, collection, id string, doc any) error {
	ctx, span := observability.StartStoreSpan(ctx, "upsert", collection)
	defer span.End()

	opts := options.Replace().SetUpsert(true)
	_, err := m.database.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	if err != nil {
		m.fail(ctx, span, collection, "upsert", err)
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	ctx, span := observability.StartStoreSpan(ctx, "delete", collection)
	defer span.End()

	_, err := m.database.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		m.fail(ctx, span, collection, "delete", err)
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (m *Mongo) FindBy(ctx context.Context, collection, field, value string) ([]bson.Raw, error) {
	return m.find(ctx, collection, bson.M{field: value})
}

func (m *Mongo) FindIn(ctx context.Context, collection, field string, values []string) ([]bson.Raw, error) {
	if len(values) == 0 {
		return nil, nil
	}
	return m.find(ctx, collection, bson.M{field: bson.M{"$in": values}})
}

func (m *Mongo) find(ctx context.Context, collection string, filter bson.M) ([]bson.Raw, error) {
	ctx, span := observability.StartStoreSpan(ctx, "find", collection)
	defer span.End()

	cursor, err := m.database.Collection(collection).Find(ctx, filter)
	if err != nil {
		m.fail(ctx, span, collection, "find", err)
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.Raw
	for cursor.Next(ctx) {
		// cursor.Current is reused between iterations; keep a copy.
		docs = append(docs, append(bson.Raw{}, cursor.Current...))
	}
	if err := cursor.Err(); err != nil {
		m.fail(ctx, span, collection, "find", err)
		return nil, fmt.Errorf("find %s: cursor: %w", collection, err)
	}
	return docs, nil
}

// Increment uses $inc through findAndModify, which MongoDB applies
// atomically per document. Concurrent increments on the same counter
// therefore never lose updates.
func (m *Mongo) Increment(ctx context.Context, collection, id, field string, delta int) (int, error) {
	ctx, span := observability.StartStoreSpan(ctx, "increment", collection)
	defer span.End()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := m.database.Collection(collection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: delta}},
		opts,
	)

	raw, err := res.Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNoDocument
		}
		m.fail(ctx, span, collection, "increment", err)
		return 0, fmt.Errorf("increment %s/%s.%s: %w", collection, id, field, err)
	}

	value, ok := raw.Lookup(field).AsInt64OK()
	if !ok {
		return 0, fmt.Errorf("increment %s/%s.%s: field is not numeric", collection, id, field)
	}
	return int(value), nil
}
