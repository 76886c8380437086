package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"transportbill/models"
)

const lookupCollection = "lookup_values"

type MongoLookupRepo struct {
	DB *mongo.Database
}

func NewMongoLookupRepo(db *mongo.Database) *MongoLookupRepo {
	return &MongoLookupRepo{DB: db}
}

// EnsureIndexes creates the (category, name) unique index.
func (r *MongoLookupRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.DB.Collection(lookupCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return models.WrapStorage("create lookup index", err)
}

func (r *MongoLookupRepo) AddValue(ctx context.Context, category models.LookupCategory, name string) error {
	category, err := models.ParseLookupCategory(string(category))
	if err != nil {
		return err
	}
	name, err = models.NormalizeLookupName(name)
	if err != nil {
		return err
	}

	filter := bson.M{"category": string(category), "name": name}
	_, err = r.DB.Collection(lookupCollection).UpdateOne(ctx,
		filter,
		bson.M{"$setOnInsert": bson.M{"created_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	// Two upserts racing on the unique index: the other one already added it.
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return models.WrapStorage("add "+string(category), err)
}

func (r *MongoLookupRepo) ListValues(ctx context.Context, category models.LookupCategory) ([]string, error) {
	category, err := models.ParseLookupCategory(string(category))
	if err != nil {
		return nil, err
	}

	cur, err := r.DB.Collection(lookupCollection).Find(ctx,
		bson.M{"category": string(category)},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, models.WrapStorage("list "+string(category), err)
	}
	defer cur.Close(ctx)

	names := []string{}
	for cur.Next(ctx) {
		var e struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&e); err != nil {
			return nil, models.WrapStorage("list "+string(category), err)
		}
		names = append(names, e.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, models.WrapStorage("list "+string(category), err)
	}
	return names, nil
}
