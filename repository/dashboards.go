package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// DashboardRepo stores dashboard snapshots.
type DashboardRepo struct {
	coll *mongo.Collection
}

func NewDashboardRepo(coll *mongo.Collection) *DashboardRepo {
	return &DashboardRepo{coll: coll}
}

func (r *DashboardRepo) Insert(ctx context.Context, d *models.Dashboard) error {
	result, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return fmt.Errorf("insert dashboard: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		d.ID = id
	}
	return nil
}

// LatestBefore returns the newest snapshot of type t generated at or before the given time.
func (r *DashboardRepo) LatestBefore(ctx context.Context, t models.SnapshotType, before time.Time) (*models.Dashboard, error) {
	filter := bson.M{"type": t, "generatedAt": bson.M{"$lte": before}}
	opts := options.FindOne().SetSort(bson.D{{Key: "generatedAt", Value: -1}})

	var d models.Dashboard
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// List returns the newest snapshots first.
func (r *DashboardRepo) List(ctx context.Context, limit int64) ([]models.Dashboard, error) {
	opts := options.Find().SetSort(bson.D{{Key: "generatedAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find dashboards: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Dashboard, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode dashboards: %w", err)
	}
	return out, nil
}
