package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NavbarCategory is the root of the catalog hierarchy, shown in the site navbar.
type NavbarCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"` // unique index
	Slug        string             `bson:"slug" json:"slug"` // unique index, derived from name
	Description string             `bson:"description" json:"description"`
	Order       int                `bson:"order" json:"order"` // navbar sort key
	IsActive    bool               `bson:"isActive" json:"isActive"`
	Timestamps  `bson:",inline"`
}

// Category belongs to exactly one NavbarCategory.
type Category struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Slug           string             `bson:"slug" json:"slug"`
	NavbarCategory primitive.ObjectID `bson:"navbarCategory" json:"navbarCategory"`
	Description    string             `bson:"description" json:"description"`
	Image          string             `bson:"image" json:"image"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	Timestamps     `bson:",inline"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	Timestamps  `bson:",inline"`
}

// Product denormalizes all of its ancestor references.
// SubCategory is optional; a product without one is listed under its category only.
type Product struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name           string              `bson:"name" json:"name"`
	Slug           string              `bson:"slug" json:"slug"`
	Description    string              `bson:"description" json:"description"`
	KeyFeatures    []string            `bson:"keyFeatures" json:"keyFeatures"`
	Image1         string              `bson:"image1" json:"image1"`
	Image2         string              `bson:"image2,omitempty" json:"image2,omitempty"`
	Image3         string              `bson:"image3,omitempty" json:"image3,omitempty"`
	Image4         string              `bson:"image4,omitempty" json:"image4,omitempty"`
	NavbarCategory primitive.ObjectID  `bson:"navbarCategory" json:"navbarCategory"`
	Category       primitive.ObjectID  `bson:"category" json:"category"`
	SubCategory    *primitive.ObjectID `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	IsActive       bool                `bson:"isActive" json:"isActive"`
	Timestamps     `bson:",inline"`
}

func (n *NavbarCategory) GetID() primitive.ObjectID { return n.ID }
func (n *NavbarCategory) SetID(id primitive.ObjectID) { n.ID = id }
func (n *NavbarCategory) GetSlug() string { return n.Slug }
func (n *NavbarCategory) GetActive() bool { return n.IsActive }
func (n *NavbarCategory) Stamp(now time.Time, created bool) { n.stamp(now, created) }
func (c *Category) GetID() primitive.ObjectID { return c.ID }
func (c *Category) SetID(id primitive.ObjectID) { c.ID = id }
func (c *Category) GetSlug() string { return c.Slug }
func (c *Category) GetActive() bool { return c.IsActive }
func (c *Category) Stamp(now time.Time, created bool) { c.stamp(now, created) }
func (s *SubCategory) GetID() primitive.ObjectID { return s.ID }
func (s *SubCategory) SetID(id primitive.ObjectID) { s.ID = id }
func (s *SubCategory) GetSlug() string { return s.Slug }
func (s *SubCategory) GetActive() bool { return s.IsActive }
func (s *SubCategory) Stamp(now time.Time, created bool) { s.stamp(now, created) }
func (p *Product) GetID() primitive.ObjectID { return p.ID }
func (p *Product) SetID(id primitive.ObjectID) { p.ID = id }
func (p *Product) GetSlug() string { return p.Slug }
func (p *Product) GetActive() bool { return p.IsActive }
func (p *Product) Stamp(now time.Time, created bool) { p.stamp(now, created) }

// CategoryView is a Category with its navbar category populated.
// A nil Navbar means the parent is missing, or disabled on a public read.
type CategoryView struct {
	Category
	Navbar *NavbarCategory `json:"navbarCategory"`
}

// Visible reports whether the category and its navbar category are active.
func (v *CategoryView) Visible() bool {
	return v != nil && v.IsActive && v.Navbar != nil && v.Navbar.IsActive
}

// SubCategoryView is a SubCategory with its category chain populated.
type SubCategoryView struct {
	SubCategory
	Parent *CategoryView `json:"category"`
}

// Visible reports whether the subcategory and every ancestor are active.
func (v *SubCategoryView) Visible() bool {
	return v != nil && v.IsActive && v.Parent.Visible()
}

// ProductView is a Product with all three ancestors populated.
type ProductView struct {
	Product
	Navbar *NavbarCategory  `json:"navbarCategory"`
	Parent *CategoryView    `json:"category"`
	Sub    *SubCategoryView `json:"subcategory,omitempty"`
}

// Visible reports whether the product and every ancestor are active.
// A product that references a subcategory needs that subcategory populated and visible.
func (v *ProductView) Visible() bool {
	if v == nil || !v.IsActive || v.Navbar == nil || !v.Navbar.IsActive || !v.Parent.Visible() {
		return false
	}
	if v.SubCategory != nil {
		return v.Sub.Visible()
	}
	return true
}

// The views below marshal the populated parent under the reference's key. When
// the parent is missing or hidden they fall back to the raw id, so an orphan
// still shows which parent it points to.

func (v CategoryView) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category
		Navbar any `json:"navbarCategory"`
	}{v.Category, populatedOr(v.Navbar, v.NavbarCategory)})
}

func (v SubCategoryView) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SubCategory
		Parent any `json:"category"`
	}{v.SubCategory, populatedOr(v.Parent, v.Category)})
}

func (v ProductView) MarshalJSON() ([]byte, error) {
	var sub any
	if v.Sub != nil {
		sub = v.Sub
	} else if v.SubCategory != nil {
		sub = *v.SubCategory
	}
	return json.Marshal(struct {
		Product
		Navbar any `json:"navbarCategory"`
		Parent any `json:"category"`
		Sub    any `json:"subcategory,omitempty"`
	}{v.Product, populatedOr(v.Navbar, v.NavbarCategory), populatedOr(v.Parent, v.Category), sub})
}

func populatedOr[T any](doc *T, id primitive.ObjectID) any {
	if doc != nil {
		return doc
	}
	return id
}
