package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// catalogFixture is a small two-branch catalog:
//
//	networking ─ switches ─ managed ─ s220
//	wireless   ─ access-points ─ indoor ─ ap-610
type catalogFixture struct {
	navbars       []models.NavbarCategory
	categories    []models.Category
	subcategories []models.SubCategory
	products      []models.Product
}

func newCatalogFixture() *catalogFixture {
	net := models.NavbarCategory{ID: primitive.NewObjectID(), Name: "Networking", Slug: "networking", Order: 1, IsActive: true}
	wl := models.NavbarCategory{ID: primitive.NewObjectID(), Name: "Wireless", Slug: "wireless", Order: 2, IsActive: true}

	switches := models.Category{ID: primitive.NewObjectID(), Name: "Switches", Slug: "switches", NavbarCategory: net.ID, Description: "Layer 2 and 3", IsActive: true}
	aps := models.Category{ID: primitive.NewObjectID(), Name: "Access Points", Slug: "access-points", NavbarCategory: wl.ID, IsActive: true}

	managed := models.SubCategory{ID: primitive.NewObjectID(), Name: "Managed", Slug: "managed", Category: switches.ID, IsActive: true}
	indoor := models.SubCategory{ID: primitive.NewObjectID(), Name: "Indoor", Slug: "indoor", Category: aps.ID, IsActive: true}

	s220 := models.Product{
		ID: primitive.NewObjectID(), Name: "S220-24T4X", Slug: "s220-24t4x", Description: "24-port gigabit",
		KeyFeatures: []string{"PoE+ budget 370W", "4x 10G SFP+"}, Image1: "/uploads/s220.png",
		NavbarCategory: net.ID, Category: switches.ID, SubCategory: &managed.ID, IsActive: true,
	}
	ap := models.Product{
		ID: primitive.NewObjectID(), Name: "AP-610", Slug: "ap-610", Description: "Wi-Fi 6E access point",
		Image1: "/uploads/ap.png", NavbarCategory: wl.ID, Category: aps.ID, SubCategory: &indoor.ID, IsActive: true,
	}

	return &catalogFixture{
		navbars:       []models.NavbarCategory{net, wl},
		categories:    []models.Category{switches, aps},
		subcategories: []models.SubCategory{managed, indoor},
		products:      []models.Product{s220, ap},
	}
}

func (f *catalogFixture) hierarchy(public bool) *Hierarchy {
	return NewHierarchy(f.navbars, f.categories, f.subcategories, public)
}

func TestHierarchy_PopulatesFullChain(t *testing.T) {
	f := newCatalogFixture()
	v := f.hierarchy(true).Product(f.products[0])

	require.NotNil(t, v.Navbar)
	require.NotNil(t, v.Parent)
	require.NotNil(t, v.Sub)
	assert.Equal(t, "networking", v.Navbar.Slug)
	assert.Equal(t, "switches", v.Parent.Slug)
	assert.Equal(t, "networking", v.Parent.Navbar.Slug)
	assert.Equal(t, "managed", v.Sub.Slug)
	assert.Equal(t, "switches", v.Sub.Parent.Slug)
	assert.True(t, v.Visible())
}

func TestHierarchy_PublicHidesDisabledAncestor(t *testing.T) {
	f := newCatalogFixture()
	f.categories[0].IsActive = false

	public := f.hierarchy(true).Product(f.products[0])
	assert.Nil(t, public.Parent, "disabled category is not populated on public reads")
	assert.False(t, public.Visible())

	admin := f.hierarchy(false).Product(f.products[0])
	require.NotNil(t, admin.Parent, "admin reads still see the disabled category")
	assert.False(t, admin.Parent.IsActive)
}

func TestResolveProductPath(t *testing.T) {
	tests := []struct {
		name                   string
		mutate                 func(*catalogFixture)
		category, sub, product string
		wantFound              bool
	}{
		{name: "matching path", category: "switches", sub: "managed", product: "s220-24t4x", wantFound: true},
		{name: "wrong category segment", category: "access-points", sub: "managed", product: "s220-24t4x"},
		{name: "wrong subcategory segment", category: "switches", sub: "indoor", product: "s220-24t4x"},
		{name: "wrong product slug", category: "switches", sub: "managed", product: "ap-610"},
		{
			name:     "disabled navbar",
			mutate:   func(f *catalogFixture) { f.navbars[0].IsActive = false },
			category: "switches", sub: "managed", product: "s220-24t4x",
		},
		{
			name:     "disabled subcategory",
			mutate:   func(f *catalogFixture) { f.subcategories[0].IsActive = false },
			category: "switches", sub: "managed", product: "s220-24t4x",
		},
		{
			name:     "deleted category",
			mutate:   func(f *catalogFixture) { f.categories = f.categories[1:] },
			category: "switches", sub: "managed", product: "s220-24t4x",
		},
		{
			name: "subcategory moved to another category",
			mutate: func(f *catalogFixture) {
				f.subcategories[0].Category = f.categories[1].ID
			},
			category: "switches", sub: "managed", product: "s220-24t4x",
		},
		{
			name:     "product without subcategory",
			mutate:   func(f *catalogFixture) { f.products[0].SubCategory = nil },
			category: "switches", sub: "managed", product: "s220-24t4x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()
			if tt.mutate != nil {
				tt.mutate(f)
			}
			v := f.hierarchy(true).Product(f.products[0])
			err := ResolveProductPath(v, tt.category, tt.sub, tt.product)
			if tt.wantFound {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))
			assert.Equal(t, "not found", err.Error(), "every miss looks the same")
		})
	}
}

func TestResolveSubCategoryPath(t *testing.T) {
	f := newCatalogFixture()
	h := f.hierarchy(true)

	assert.NoError(t, ResolveSubCategoryPath(h.SubCategory(f.subcategories[0]), "switches", "managed"))
	assert.ErrorIs(t, ResolveSubCategoryPath(h.SubCategory(f.subcategories[0]), "access-points", "managed"), ErrNotFound)
}

func TestResolveCategoryPath(t *testing.T) {
	f := newCatalogFixture()
	f.navbars[1].IsActive = false
	h := f.hierarchy(true)

	assert.NoError(t, ResolveCategoryPath(h.Category(f.categories[0]), "switches"))
	assert.ErrorIs(t, ResolveCategoryPath(h.Category(f.categories[1]), "access-points"), ErrNotFound)
}
