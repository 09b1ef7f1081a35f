package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity is implemented by every catalog document (navbar category, category,
// subcategory, product) so the generic repository can manage them.
type Entity interface {
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	GetSlug() string
	GetActive() bool
	// Stamp sets UpdatedAt, and CreatedAt too when created is true.
	Stamp(now time.Time, created bool)
}

// Timestamps is embedded in every persisted document.
type Timestamps struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Timestamps) stamp(now time.Time, created bool) {
	if created {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
