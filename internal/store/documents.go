package store

import (
	"context"
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertResult acknowledges a bulk insert. InsertedIDs is keyed by the
// position of each document in the request.
type InsertResult struct {
	Acknowledged  bool                   `json:"acknowledged"`
	InsertedCount int                    `json:"insertedCount"`
	InsertedIDs   map[string]interface{} `json:"insertedIds"`
}

func newInsertResult(ids []interface{}, acknowledged bool) *InsertResult {
	res := &InsertResult{
		Acknowledged:  acknowledged,
		InsertedCount: len(ids),
		InsertedIDs:   make(map[string]interface{}, len(ids)),
	}
	for i, id := range ids {
		res.InsertedIDs[strconv.Itoa(i)] = id
	}
	return res
}

// InsertMany writes docs to the configured collection in a single bulk
// operation. Documents without an _id get one assigned by the driver.
// Partial failures are reported exactly as the driver reports them.
func (m *Manager) InsertMany(ctx context.Context, docs []bson.Raw) (*InsertResult, error) {
	coll, err := m.Collection()
	if err != nil {
		return nil, err
	}

	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = doc
	}

	res, err := coll.InsertMany(ctx, batch)
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) && res != nil {
		return newInsertResult(res.InsertedIDs, false), nil
	}
	if err != nil {
		return nil, err
	}
	return newInsertResult(res.InsertedIDs, true), nil
}

// Find runs filter against the configured collection and returns every
// matching document. An empty filter matches the whole collection.
func (m *Manager) Find(ctx context.Context, filter bson.Raw, opts QueryOptions) ([]bson.M, error) {
	coll, err := m.Collection()
	if err != nil {
		return nil, err
	}

	var query interface{} = filter
	if len(filter) == 0 {
		query = bson.D{}
	}

	cursor, err := coll.Find(ctx, query, opts.FindOptions())
	if err != nil {
		return nil, err
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
