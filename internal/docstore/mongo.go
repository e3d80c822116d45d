package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoParentField  = "_parent"
	mongoCreatedField = "_createdAt"
)

// Mongo stores each collection name in its own Mongo collection. The
// document _id is the full document path so nested collections that share a
// name (every user's "cart") never collide.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// EnsureIndexes creates the parent/creation index used by List on every
// named collection, plus any extra single-field indexes.
func (m *Mongo) EnsureIndexes(ctx context.Context, collections []string, fields map[string][]string) error {
	for _, name := range collections {
		idxs := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: mongoParentField, Value: 1}, {Key: mongoCreatedField, Value: 1}},
				Options: options.Index().SetName("parent_created"),
			},
		}
		for _, f := range fields[name] {
			idxs = append(idxs, mongo.IndexModel{
				Keys:    bson.D{{Key: f, Value: 1}},
				Options: options.Index().SetName(f + "_1"),
			})
		}
		if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, idxs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (m *Mongo) Get(ctx context.Context, ref Ref, dst any) error {
	err := m.db.Collection(ref.Collection.Name).FindOne(ctx, bson.M{"_id": ref.Path()}).Decode(dst)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("find %s: %w", ref.Path(), err)
	}
	return nil
}

func (m *Mongo) Set(ctx context.Context, ref Ref, doc any) error {
	fields, err := toBSON(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ref.Path(), err)
	}
	delete(fields, "_id")
	delete(fields, mongoCreatedField)

	// Replace the whole document so fields the new value omits are dropped,
	// but keep the original creation time that List orders by. $literal stops
	// string values starting with "$" from being read as field paths.
	replacement := bson.D{{Key: "$mergeObjects", Value: bson.A{
		bson.D{{Key: "$literal", Value: fields}},
		bson.D{
			{Key: "_id", Value: bson.D{{Key: "$literal", Value: ref.Path()}}},
			{Key: mongoParentField, Value: bson.D{{Key: "$literal", Value: ref.Collection.Parent}}},
			{Key: mongoCreatedField, Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + mongoCreatedField, time.Now().UTC()}}}},
		},
	}}}
	pipeline := mongo.Pipeline{{{Key: "$replaceWith", Value: replacement}}}

	_, err = m.db.Collection(ref.Collection.Name).UpdateOne(ctx,
		bson.M{"_id": ref.Path()},
		pipeline,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace %s: %w", ref.Path(), err)
	}
	return nil
}

func (m *Mongo) Merge(ctx context.Context, ref Ref, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	return m.upsert(ctx, ref, set)
}

func (m *Mongo) upsert(ctx context.Context, ref Ref, set bson.M) error {
	delete(set, "_id")
	delete(set, mongoCreatedField)
	set[mongoParentField] = ref.Collection.Parent

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{mongoCreatedField: time.Now().UTC()},
	}
	_, err := m.db.Collection(ref.Collection.Name).UpdateOne(ctx,
		bson.M{"_id": ref.Path()},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", ref.Path(), err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, ref Ref) error {
	if _, err := m.db.Collection(ref.Collection.Name).DeleteOne(ctx, bson.M{"_id": ref.Path()}); err != nil {
		return fmt.Errorf("delete %s: %w", ref.Path(), err)
	}
	return nil
}

func (m *Mongo) List(ctx context.Context, coll Collection, filter Filter, dst any) error {
	q := bson.M{mongoParentField: coll.Parent}
	if !filter.IsZero() {
		q[filter.Field] = filter.Value
	}

	opts := options.Find().SetSort(bson.D{{Key: mongoCreatedField, Value: 1}})
	cursor, err := m.db.Collection(coll.Name).Find(ctx, q, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", coll.Path(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, dst); err != nil {
		return fmt.Errorf("decode %s: %w", coll.Path(), err)
	}
	return nil
}

func toBSON(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
