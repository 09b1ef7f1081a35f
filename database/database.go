package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Gautam3767/product-catalog-backend/config"
)

// Collection names.
const (
	NavbarCategories = "navbarcategories"
	Categories       = "categories"
	SubCategories    = "subcategories"
	Products         = "products"
	Contacts         = "contacts"
	Dashboards       = "dashboards"
)

const connectTimeout = 10 * time.Second

// Connect opens the MongoDB client and pings the primary.
func Connect(ctx context.Context, cfg config.MongoConfig, log logrus.FieldLogger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("create mongo client: %w", err)
	}

	// Ping the primary server to verify the connection.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.WithField("database", cfg.Database).Info("Successfully connected and pinged MongoDB")
	return client, nil
}

// Ping checks the primary is reachable; used by the health endpoint.
func Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the client; call on graceful shutdown.
func Disconnect(ctx context.Context, client *mongo.Client, log logrus.FieldLogger) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("Error disconnecting MongoDB")
		return
	}
	log.Info("MongoDB connection closed")
}

// collectionIndexes lists the indexes each collection needs.
var collectionIndexes = map[string][]mongo.IndexModel{
	NavbarCategories: {
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "order", Value: 1}}},
	},
	Categories: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "navbarCategory", Value: 1}}},
	},
	SubCategories: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	},
	Products: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "subcategory", Value: 1}}},
		{Keys: bson.D{{Key: "navbarCategory", Value: 1}}},
	},
	Contacts: {
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "isRead", Value: 1}}},
	},
	Dashboards: {
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "generatedAt", Value: -1}}},
	},
}

// EnsureIndexes creates the unique slug/name indexes the catalog relies on for
// collision detection, plus the lookup indexes. It fails if a unique index cannot
// be built, e.g. because duplicate slugs already exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log logrus.FieldLogger) error {
	for coll, models := range collectionIndexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		log.WithFields(logrus.Fields{"collection": coll, "indexes": names}).Debug("Indexes ensured")
	}
	return nil
}
