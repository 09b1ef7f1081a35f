package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Gautam3767/product-catalog-backend/models"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index (slug or name).
	ErrDuplicate = errors.New("duplicate key")
)

// CatalogRepo stores one kind of catalog entity in its own collection.
type CatalogRepo[T any, PT interface {
	*T
	models.Entity
}] struct {
	coll *mongo.Collection
	sort bson.D
}

// NewCatalogRepo returns a repository over coll; List results are ordered by sort.
func NewCatalogRepo[T any, PT interface {
	*T
	models.Entity
}](coll *mongo.Collection, sort bson.D) *CatalogRepo[T, PT] {
	return &CatalogRepo[T, PT]{coll: coll, sort: sort}
}

func (r *CatalogRepo[T, PT]) Create(ctx context.Context, doc *T) error {
	p := PT(doc)
	p.Stamp(time.Now().UTC(), true)

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return translate(err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.SetID(id)
	}
	return nil
}

// Replace overwrites the stored document with doc, matched by its ID.
func (r *CatalogRepo[T, PT]) Replace(ctx context.Context, doc *T) error {
	p := PT(doc)
	p.Stamp(time.Now().UTC(), false)

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.GetID()}, doc)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepo[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepo[T, PT]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CatalogRepo[T, PT]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// List returns up to limit documents in the repository's sort order.
func (r *CatalogRepo[T, PT]) List(ctx context.Context, limit int64) ([]T, error) {
	opts := options.Find().SetSort(r.sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return results, nil
}

func (r *CatalogRepo[T, PT]) Count(ctx context.Context, activeOnly bool) (int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

func (r *CatalogRepo[T, PT]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
