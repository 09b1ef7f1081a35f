package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// Hierarchy joins catalog entities with their ancestors in memory.
//
// In public mode inactive ancestors are left unpopulated (nil), exactly like a
// missing one, so every read site sees a disabled branch as absent.
type Hierarchy struct {
	navbars       map[primitive.ObjectID]*models.NavbarCategory
	categories    map[primitive.ObjectID]*models.Category
	subcategories map[primitive.ObjectID]*models.SubCategory
	public        bool
}

// NewHierarchy indexes the given ancestors by ID.
func NewHierarchy(navbars []models.NavbarCategory, categories []models.Category, subcategories []models.SubCategory, public bool) *Hierarchy {
	h := &Hierarchy{
		navbars:       make(map[primitive.ObjectID]*models.NavbarCategory, len(navbars)),
		categories:    make(map[primitive.ObjectID]*models.Category, len(categories)),
		subcategories: make(map[primitive.ObjectID]*models.SubCategory, len(subcategories)),
		public:        public,
	}
	for i := range navbars {
		h.navbars[navbars[i].ID] = &navbars[i]
	}
	for i := range categories {
		h.categories[categories[i].ID] = &categories[i]
	}
	for i := range subcategories {
		h.subcategories[subcategories[i].ID] = &subcategories[i]
	}
	return h
}

func (h *Hierarchy) navbar(id primitive.ObjectID) *models.NavbarCategory {
	n, ok := h.navbars[id]
	if !ok || (h.public && !n.IsActive) {
		return nil
	}
	return n
}

func (h *Hierarchy) category(id primitive.ObjectID) *models.CategoryView {
	c, ok := h.categories[id]
	if !ok || (h.public && !c.IsActive) {
		return nil
	}
	v := h.Category(*c)
	return &v
}

func (h *Hierarchy) subcategory(id primitive.ObjectID) *models.SubCategoryView {
	s, ok := h.subcategories[id]
	if !ok || (h.public && !s.IsActive) {
		return nil
	}
	v := h.SubCategory(*s)
	return &v
}

// Category populates c's navbar category.
func (h *Hierarchy) Category(c models.Category) models.CategoryView {
	return models.CategoryView{Category: c, Navbar: h.navbar(c.NavbarCategory)}
}

// SubCategory populates s's category chain up to the navbar category.
func (h *Hierarchy) SubCategory(s models.SubCategory) models.SubCategoryView {
	return models.SubCategoryView{SubCategory: s, Parent: h.category(s.Category)}
}

// Product populates all three ancestor references of p.
func (h *Hierarchy) Product(p models.Product) models.ProductView {
	v := models.ProductView{
		Product: p,
		Navbar:  h.navbar(p.NavbarCategory),
		Parent:  h.category(p.Category),
	}
	if p.SubCategory != nil {
		v.Sub = h.subcategory(*p.SubCategory)
	}
	return v
}

// ResolveCategoryPath checks a /products/:categorySlug lookup.
func ResolveCategoryPath(v models.CategoryView, categorySlug string) error {
	if !v.Visible() || v.Slug != categorySlug {
		return notFound
	}
	return nil
}

// ResolveSubCategoryPath checks that the subcategory really sits under the
// category named in the URL.
func ResolveSubCategoryPath(v models.SubCategoryView, categorySlug, subCategorySlug string) error {
	if !v.Visible() || v.Slug != subCategorySlug || v.Parent.Slug != categorySlug {
		return notFound
	}
	return nil
}

// ResolveProductPath checks that a product's stored category and subcategory
// match the URL segments. A product whose URL does not encode its current
// path is unreachable even though the document exists.
func ResolveProductPath(v models.ProductView, categorySlug, subCategorySlug, productSlug string) error {
	if !v.Visible() || v.Slug != productSlug || v.Sub == nil {
		return notFound
	}
	if v.Parent.Slug != categorySlug || v.Sub.Slug != subCategorySlug {
		return notFound
	}
	if v.Sub.Parent.ID != v.Parent.ID {
		return notFound
	}
	return nil
}
