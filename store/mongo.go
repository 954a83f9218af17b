package store

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the production Store backed by a MongoDB database.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func toBSON(f Filter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M(f)
}

func sortSpec(s string) (string, int) {
	if strings.HasPrefix(s, "-") {
		return strings.TrimPrefix(s, "-"), -1
	}
	return s, 1
}

func (m *Mongo) Find(ctx context.Context, collection string, q Query, results interface{}) error {
	opts := options.Find()
	if q.Sort != "" {
		field, dir := sortSpec(q.Sort)
		opts.SetSort(bson.D{{Key: field, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cursor, err := m.db.Collection(collection).Find(ctx, toBSON(q.Filter), opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter Filter, result interface{}) error {
	err := m.db.Collection(collection).FindOne(ctx, toBSON(filter)).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (m *Mongo) InsertOne(ctx context.Context, collection string, doc interface{}) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (m *Mongo) InsertMany(ctx context.Context, collection string, docs []interface{}) error {
	_, err := m.db.Collection(collection).InsertMany(ctx, docs)
	return err
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, filter Filter, set map[string]interface{}) error {
	_, err := m.db.Collection(collection).UpdateOne(ctx, toBSON(filter), bson.M{"$set": bson.M(set)})
	return err
}

func (m *Mongo) IncOne(ctx context.Context, collection string, filter Filter, field string, delta float64) error {
	_, err := m.db.Collection(collection).UpdateOne(ctx, toBSON(filter), bson.M{"$inc": bson.M{field: delta}})
	return err
}

func (m *Mongo) DeleteOne(ctx context.Context, collection string, filter Filter) error {
	_, err := m.db.Collection(collection).DeleteOne(ctx, toBSON(filter))
	return err
}
