package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/pcbuilder/internal/model"
	"github.com/you-humble/pcbuilder/platform/logger"
)

type repository struct {
	coll *mongo.Collection
}

func NewPartRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) PartByID(ctx context.Context, id string) (*model.Part, error) {
	const op = "repository.PartByID"

	var ent PartEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", model.ErrPartNotFound, id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := EntityToModel(&ent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// PartsByCategory returns the parts of category in insertion order.
func (r *repository) PartsByCategory(ctx context.Context, category model.Category) ([]*model.Part, error) {
	const op = "repository.PartsByCategory"

	cur, err := r.coll.Find(ctx,
		BuildMongoFilter(category),
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, "close cursor", logger.String("op", op), logger.ErrorF(cerr))
		}
	}()

	out := make([]*model.Part, 0)
	for cur.Next(ctx) {
		var ent PartEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		p, err := EntityToModel(&ent)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

// CreateBatch inserts parts after the ones already stored, keeping their
// order.
func (r *repository) CreateBatch(ctx context.Context, parts []*model.Part) error {
	const op = "repository.CreateBatch"

	base, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("%s count: %w", op, err)
	}

	now := time.Now()
	docs := make([]any, 0, len(parts))
	for i, p := range parts {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		ent := EntityFromModel(p, base+int64(i))
		ent.CreatedAt = lo.ToPtr(now)
		docs = append(docs, ent)
	}
	if len(docs) == 0 {
		return nil
	}

	_, err = r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Count is the number of stored parts.
func (r *repository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("repository.Count: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the indexes PartsByCategory and search rely on.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "name_norm", Value: 1}}},
		{Keys: bson.D{{Key: "manufacturer_norm", Value: 1}}},
	}, options.CreateIndexes())

	return err
}
