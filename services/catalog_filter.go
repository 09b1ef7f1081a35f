package services

import (
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// FetchLimit caps the single fetch that in-memory filtering runs over.
// Catalog listings are not designed to scale past it.
const FetchLimit = 1000

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CatalogFilter is shared by product, category and subcategory listings.
type CatalogFilter struct {
	// Public restricts results to entities whose whole ancestor chain is active.
	Public bool
	// Active, when set, keeps only active (true) or inactive (false) entities. Admin only.
	Active *bool

	NavbarCategoryID primitive.ObjectID
	CategoryID       primitive.ObjectID
	SubCategoryID    primitive.ObjectID

	// Search is a case-insensitive substring match over names, descriptions,
	// key features and ancestor names.
	Search string

	Page  int
	Limit int
}

// page normalises the paging fields.
func (f CatalogFilter) page() models.Page {
	p := models.Page{Page: f.Page, Limit: f.Limit}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	// (Page-1)*Limit must not overflow.
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func (f CatalogFilter) activeMatches(active bool) bool {
	return f.Active == nil || *f.Active == active
}

// FilterProducts applies f to populated products and returns the matches in input order.
func FilterProducts(items []models.ProductView, f CatalogFilter) []models.ProductView {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.ProductView, 0, len(items))
	for i := range items {
		v := &items[i]
		if f.Public && !v.Visible() {
			continue
		}
		if !f.activeMatches(v.IsActive) {
			continue
		}
		if !f.NavbarCategoryID.IsZero() && v.NavbarCategory != f.NavbarCategoryID {
			continue
		}
		if !f.CategoryID.IsZero() && v.Category != f.CategoryID {
			continue
		}
		if !f.SubCategoryID.IsZero() && (v.SubCategory == nil || *v.SubCategory != f.SubCategoryID) {
			continue
		}
		if needle != "" && !productMatches(v, needle) {
			continue
		}
		out = append(out, *v)
	}
	return out
}

func productMatches(v *models.ProductView, needle string) bool {
	fields := []string{v.Name, v.Description}
	fields = append(fields, v.KeyFeatures...)
	if v.Navbar != nil {
		fields = append(fields, v.Navbar.Name)
	}
	if v.Parent != nil {
		fields = append(fields, v.Parent.Name)
	}
	if v.Sub != nil {
		fields = append(fields, v.Sub.Name)
	}
	return containsFold(fields, needle)
}

// FilterCategories applies f to populated categories.
func FilterCategories(items []models.CategoryView, f CatalogFilter) []models.CategoryView {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.CategoryView, 0, len(items))
	for i := range items {
		v := &items[i]
		if f.Public && !v.Visible() {
			continue
		}
		if !f.activeMatches(v.IsActive) {
			continue
		}
		if !f.NavbarCategoryID.IsZero() && v.NavbarCategory != f.NavbarCategoryID {
			continue
		}
		if needle != "" {
			fields := []string{v.Name, v.Description}
			if v.Navbar != nil {
				fields = append(fields, v.Navbar.Name)
			}
			if !containsFold(fields, needle) {
				continue
			}
		}
		out = append(out, *v)
	}
	return out
}

// FilterSubCategories applies f to populated subcategories.
func FilterSubCategories(items []models.SubCategoryView, f CatalogFilter) []models.SubCategoryView {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.SubCategoryView, 0, len(items))
	for i := range items {
		v := &items[i]
		if f.Public && !v.Visible() {
			continue
		}
		if !f.activeMatches(v.IsActive) {
			continue
		}
		if !f.CategoryID.IsZero() && v.Category != f.CategoryID {
			continue
		}
		if !f.NavbarCategoryID.IsZero() && (v.Parent == nil || v.Parent.NavbarCategory != f.NavbarCategoryID) {
			continue
		}
		if needle != "" {
			fields := []string{v.Name, v.Description}
			if v.Parent != nil {
				fields = append(fields, v.Parent.Name)
				if v.Parent.Navbar != nil {
					fields = append(fields, v.Parent.Navbar.Name)
				}
			}
			if !containsFold(fields, needle) {
				continue
			}
		}
		out = append(out, *v)
	}
	return out
}

// FilterNavbarCategories keeps active navbar categories for public reads and
// applies the admin active filter and search otherwise.
func FilterNavbarCategories(items []models.NavbarCategory, f CatalogFilter) []models.NavbarCategory {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.NavbarCategory, 0, len(items))
	for _, n := range items {
		if f.Public && !n.IsActive {
			continue
		}
		if !f.activeMatches(n.IsActive) {
			continue
		}
		if needle != "" && !containsFold([]string{n.Name, n.Description}, needle) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func containsFold(fields []string, needle string) bool {
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Paginate slices one page out of items.
func Paginate[T any](items []T, f CatalogFilter) ([]T, models.Pagination) {
	p := f.page()
	total := len(items)
	start := p.Skip()
	if start < 0 || start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return items[start:end], models.NewPagination(p, int64(total))
}
