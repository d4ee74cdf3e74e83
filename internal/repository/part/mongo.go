package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/part-monitoring/internal/model"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository keeps one document per part. Save requires a replica
// set because it swaps the collection contents inside a transaction.
func NewMongoRepository(collection *mongo.Collection) *mongoRepository {
	return &mongoRepository{coll: collection}
}

// EnsureIndexes creates the indexes used for ordering and filtering.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	const op = "repository.mongo.EnsureIndexes"

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "machine_name", Value: 1}}},
		{Keys: bson.D{{Key: "material", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *mongoRepository) Load(ctx context.Context) ([]model.Part, error) {
	const op = "repository.mongo.Load"

	cur, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ents []PartEntity
	if err := cur.All(ctx, &ents); err != nil {
		return nil, fmt.Errorf("%s decode: %w", op, err)
	}

	parts, err := EntitiesToModels(ents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return parts, nil
}

func (r *mongoRepository) Save(ctx context.Context, parts []model.Part) error {
	const op = "repository.mongo.Save"

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("%s start session: %w", op, err)
	}
	defer sess.EndSession(ctx)

	ents := EntitiesFromModels(parts)
	docs := make([]any, 0, len(ents))
	for _, e := range ents {
		docs = append(docs, e)
	}

	_, err = sess.WithTransaction(ctx, func(txCtx context.Context) (any, error) {
		if _, err := r.coll.DeleteMany(txCtx, bson.D{}); err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return nil, nil
		}
		if _, err := r.coll.InsertMany(txCtx, docs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
