package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Gautam3767/product-catalog-backend/database"
	"github.com/Gautam3767/product-catalog-backend/models"
)

// Repositories bundles every store the services need.
type Repositories struct {
	NavbarCategories *CatalogRepo[models.NavbarCategory, *models.NavbarCategory]
	Categories       *CatalogRepo[models.Category, *models.Category]
	SubCategories    *CatalogRepo[models.SubCategory, *models.SubCategory]
	Products         *CatalogRepo[models.Product, *models.Product]
	Contacts         *ContactRepo
	Dashboards       *DashboardRepo
}

// New wires repositories to the collections of db.
func New(db *mongo.Database) *Repositories {
	byName := bson.D{{Key: "name", Value: 1}}
	return &Repositories{
		NavbarCategories: NewCatalogRepo[models.NavbarCategory](db.Collection(database.NavbarCategories),
			bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}),
		Categories:    NewCatalogRepo[models.Category](db.Collection(database.Categories), byName),
		SubCategories: NewCatalogRepo[models.SubCategory](db.Collection(database.SubCategories), byName),
		Products:      NewCatalogRepo[models.Product](db.Collection(database.Products), bson.D{{Key: "createdAt", Value: -1}}),
		Contacts:      NewContactRepo(db.Collection(database.Contacts)),
		Dashboards:    NewDashboardRepo(db.Collection(database.Dashboards)),
	}
}
