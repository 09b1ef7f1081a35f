package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/repository"
)

const relatedProducts = 4

// NavbarMenu returns the active navbar categories in display order, each with
// its visible categories.
func (s *CatalogService) NavbarMenu(ctx context.Context) ([]models.NavbarMenuItem, error) {
	h, navbars, categories, _, err := s.loadHierarchy(ctx, true)
	if err != nil {
		return nil, err
	}
	visible := make([]models.CategoryView, 0, len(categories))
	for _, c := range categories {
		visible = append(visible, h.Category(c))
	}
	visible = FilterCategories(visible, CatalogFilter{Public: true})

	// navbars arrive sorted by order, then name.
	menu := make([]models.NavbarMenuItem, 0, len(navbars))
	for _, n := range FilterNavbarCategories(navbars, CatalogFilter{Public: true}) {
		item := models.NavbarMenuItem{NavbarCategory: n, Categories: []models.CategoryView{}}
		for _, c := range visible {
			if c.NavbarCategory == n.ID {
				item.Categories = append(item.Categories, c)
			}
		}
		menu = append(menu, item)
	}
	return menu, nil
}

// NavbarCategories returns the visible categories under the navbar category with the given slug.
func (s *CatalogService) NavbarCategories(ctx context.Context, navbarSlug string) ([]models.CategoryView, error) {
	n, err := s.navbars.GetBySlug(ctx, navbarSlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, storeError("navbar category", err)
	}
	if !n.IsActive {
		return nil, notFound
	}
	items, _, err := s.ListCategories(ctx, CatalogFilter{Public: true, NavbarCategoryID: n.ID, Limit: maxPageSize})
	return items, err
}

// ProductsIndex backs /products: every visible category plus one page of
// visible products, optionally searched.
func (s *CatalogService) ProductsIndex(ctx context.Context, f CatalogFilter) (*models.ProductsPage, error) {
	f.Public = true
	f.Active = nil
	h, _, categories, _, err := s.loadHierarchy(ctx, true)
	if err != nil {
		return nil, err
	}
	cats := make([]models.CategoryView, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, h.Category(c))
	}
	products, err := s.populatedProducts(ctx, h)
	if err != nil {
		return nil, err
	}
	items, page := Paginate(FilterProducts(products, f), f)
	return &models.ProductsPage{
		Categories: FilterCategories(cats, CatalogFilter{Public: true}),
		Products:   items,
		Pagination: page,
	}, nil
}

// CategoryPage backs /products/:categorySlug.
func (s *CatalogService) CategoryPage(ctx context.Context, categorySlug string, f CatalogFilter) (*models.CategoryPage, error) {
	c, err := s.categories.GetBySlug(ctx, categorySlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, storeError("category", err)
	}
	h, _, _, subcategories, err := s.loadHierarchy(ctx, true)
	if err != nil {
		return nil, err
	}
	view := h.Category(*c)
	if err := ResolveCategoryPath(view, categorySlug); err != nil {
		return nil, err
	}

	subs := make([]models.SubCategoryView, 0)
	for _, sc := range subcategories {
		if sc.Category == c.ID {
			subs = append(subs, h.SubCategory(sc))
		}
	}
	products, err := s.populatedProducts(ctx, h)
	if err != nil {
		return nil, err
	}
	f.Public, f.Active = true, nil
	f.NavbarCategoryID, f.SubCategoryID = primitive.NilObjectID, primitive.NilObjectID
	f.CategoryID = c.ID
	items, page := Paginate(FilterProducts(products, f), f)
	return &models.CategoryPage{
		Category:      view,
		SubCategories: FilterSubCategories(subs, CatalogFilter{Public: true}),
		Products:      items,
		Pagination:    page,
	}, nil
}

// SubCategoryPage backs /products/:categorySlug/:subCategorySlug.
func (s *CatalogService) SubCategoryPage(ctx context.Context, categorySlug, subCategorySlug string, f CatalogFilter) (*models.SubCategoryPage, error) {
	sc, err := s.subcategories.GetBySlug(ctx, subCategorySlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, storeError("subcategory", err)
	}
	h, _, _, _, err := s.loadHierarchy(ctx, true)
	if err != nil {
		return nil, err
	}
	view := h.SubCategory(*sc)
	if err := ResolveSubCategoryPath(view, categorySlug, subCategorySlug); err != nil {
		return nil, err
	}

	products, err := s.populatedProducts(ctx, h)
	if err != nil {
		return nil, err
	}
	f.Public, f.Active = true, nil
	f.NavbarCategoryID, f.CategoryID = primitive.NilObjectID, primitive.NilObjectID
	f.SubCategoryID = sc.ID
	items, page := Paginate(FilterProducts(products, f), f)
	return &models.SubCategoryPage{SubCategory: view, Products: items, Pagination: page}, nil
}

// ProductPage backs /products/:categorySlug/:subCategorySlug/:productSlug.
// Related holds up to four other visible products of the same subcategory.
func (s *CatalogService) ProductPage(ctx context.Context, categorySlug, subCategorySlug, productSlug string) (*models.ProductPage, error) {
	p, err := s.products.GetBySlug(ctx, productSlug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, storeError("product", err)
	}
	h, _, _, _, err := s.loadHierarchy(ctx, true)
	if err != nil {
		return nil, err
	}
	view := h.Product(*p)
	if err := ResolveProductPath(view, categorySlug, subCategorySlug, productSlug); err != nil {
		return nil, err
	}

	products, err := s.populatedProducts(ctx, h)
	if err != nil {
		return nil, err
	}
	related := make([]models.ProductView, 0, relatedProducts)
	for _, r := range FilterProducts(products, CatalogFilter{Public: true, SubCategoryID: *p.SubCategory}) {
		if r.ID == p.ID {
			continue
		}
		related = append(related, r)
		if len(related) == relatedProducts {
			break
		}
	}
	return &models.ProductPage{Product: view, Related: related}, nil
}

// SearchProducts is the public product search.
func (s *CatalogService) SearchProducts(ctx context.Context, f CatalogFilter) ([]models.ProductView, models.Pagination, error) {
	f.Public = true
	f.Active = nil
	return s.ListProducts(ctx, f)
}
