package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/repository"
)

// CatalogStore is the persistence the catalog needs for one entity kind.
type CatalogStore[T any] interface {
	Create(ctx context.Context, doc *T) error
	Replace(ctx context.Context, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	List(ctx context.Context, limit int64) ([]T, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// CatalogService manages the four-level hierarchy
// navbar category → category → subcategory → product.
type CatalogService struct {
	navbars       CatalogStore[models.NavbarCategory]
	categories    CatalogStore[models.Category]
	subcategories CatalogStore[models.SubCategory]
	products      CatalogStore[models.Product]
	log           logrus.FieldLogger
}

func NewCatalogService(
	navbars CatalogStore[models.NavbarCategory],
	categories CatalogStore[models.Category],
	subcategories CatalogStore[models.SubCategory],
	products CatalogStore[models.Product],
	log logrus.FieldLogger,
) *CatalogService {
	return &CatalogService{
		navbars:       navbars,
		categories:    categories,
		subcategories: subcategories,
		products:      products,
		log:           log.WithField("service", "catalog"),
	}
}

// ParseID converts a hex id from a URL. Malformed ids are reported as not found.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return id, nil
}

func mustRef(hex string) primitive.ObjectID {
	// Payload references are checked by the `mongodb` validator tag first.
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}

// storeError maps repository errors onto service errors for entity.
func storeError(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return conflictError("%s name already in use", entity)
	default:
		return fmt.Errorf("%s store: %w", entity, err)
	}
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// loadHierarchy fetches every ancestor once so entities can be joined in memory.
func (s *CatalogService) loadHierarchy(ctx context.Context, public bool) (*Hierarchy, []models.NavbarCategory, []models.Category, []models.SubCategory, error) {
	navbars, err := s.navbars.List(ctx, FetchLimit)
	if err != nil {
		return nil, nil, nil, nil, storeError("navbar category", err)
	}
	categories, err := s.categories.List(ctx, FetchLimit)
	if err != nil {
		return nil, nil, nil, nil, storeError("category", err)
	}
	subcategories, err := s.subcategories.List(ctx, FetchLimit)
	if err != nil {
		return nil, nil, nil, nil, storeError("subcategory", err)
	}
	h := NewHierarchy(navbars, categories, subcategories, public)
	return h, navbars, categories, subcategories, nil
}

func (s *CatalogService) populatedProducts(ctx context.Context, h *Hierarchy) ([]models.ProductView, error) {
	products, err := s.products.List(ctx, FetchLimit)
	if err != nil {
		return nil, storeError("product", err)
	}
	if len(products) == FetchLimit {
		s.log.WithField("limit", FetchLimit).Warn("Product fetch hit the listing cap; results are truncated")
	}
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, h.Product(p))
	}
	return views, nil
}

// ---------------------------------------------------------------------------
// Navbar categories
// ---------------------------------------------------------------------------

func (s *CatalogService) ListNavbarCategories(ctx context.Context, f CatalogFilter) ([]models.NavbarCategory, models.Pagination, error) {
	navbars, err := s.navbars.List(ctx, FetchLimit)
	if err != nil {
		return nil, models.Pagination{}, storeError("navbar category", err)
	}
	items, page := Paginate(FilterNavbarCategories(navbars, f), f)
	return items, page, nil
}

func (s *CatalogService) GetNavbarCategory(ctx context.Context, id primitive.ObjectID) (*models.NavbarCategory, error) {
	n, err := s.navbars.Get(ctx, id)
	return n, storeError("navbar category", err)
}

func (s *CatalogService) CreateNavbarCategory(ctx context.Context, in models.NavbarCategoryPayload) (*models.NavbarCategory, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	slug, err := deriveSlug("navbar category", "", "", in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	n := &models.NavbarCategory{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Order:       in.Order,
		IsActive:    activeOrDefault(in.IsActive),
	}
	if err := s.navbars.Create(ctx, n); err != nil {
		return nil, storeError("navbar category", err)
	}
	s.log.WithFields(logrus.Fields{"id": n.ID.Hex(), "slug": n.Slug}).Info("Navbar category created")
	return n, nil
}

func (s *CatalogService) UpdateNavbarCategory(ctx context.Context, id primitive.ObjectID, in models.NavbarCategoryPayload) (*models.NavbarCategory, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	n, err := s.navbars.Get(ctx, id)
	if err != nil {
		return nil, storeError("navbar category", err)
	}
	slug, err := deriveSlug("navbar category", n.Slug, n.Name, in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	n.Name = in.Name
	n.Slug = slug
	n.Description = in.Description
	n.Order = in.Order
	if in.IsActive != nil {
		n.IsActive = *in.IsActive
	}
	if err := s.navbars.Replace(ctx, n); err != nil {
		return nil, storeError("navbar category", err)
	}
	return n, nil
}

func (s *CatalogService) SetNavbarCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.NavbarCategory, error) {
	n, err := s.navbars.Get(ctx, id)
	if err != nil {
		return nil, storeError("navbar category", err)
	}
	n.IsActive = active
	if err := s.navbars.Replace(ctx, n); err != nil {
		return nil, storeError("navbar category", err)
	}
	return n, nil
}

// DeleteNavbarCategory removes the document only; descendants are orphaned and
// disappear from public reads because their ancestor no longer resolves.
func (s *CatalogService) DeleteNavbarCategory(ctx context.Context, id primitive.ObjectID) error {
	return storeError("navbar category", s.navbars.Delete(ctx, id))
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func (s *CatalogService) ListCategories(ctx context.Context, f CatalogFilter) ([]models.CategoryView, models.Pagination, error) {
	h, _, categories, _, err := s.loadHierarchy(ctx, f.Public)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	views := make([]models.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, h.Category(c))
	}
	items, page := Paginate(FilterCategories(views, f), f)
	return items, page, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id primitive.ObjectID) (*models.CategoryView, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, storeError("category", err)
	}
	v := models.CategoryView{Category: *c}
	if n, err := s.navbars.Get(ctx, c.NavbarCategory); err == nil {
		v.Navbar = n
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("navbar category", err)
	}
	return &v, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in models.CategoryPayload) (*models.Category, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	navID := mustRef(in.NavbarCategory)
	if err := s.requireNavbar(ctx, navID); err != nil {
		return nil, err
	}
	slug, err := deriveSlug("category", "", "", in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	c := &models.Category{
		Name:           in.Name,
		Slug:           slug,
		NavbarCategory: navID,
		Description:    in.Description,
		Image:          in.Image,
		IsActive:       activeOrDefault(in.IsActive),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, storeError("category", err)
	}
	s.log.WithFields(logrus.Fields{"id": c.ID.Hex(), "slug": c.Slug}).Info("Category created")
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, in models.CategoryPayload) (*models.Category, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, storeError("category", err)
	}
	navID := mustRef(in.NavbarCategory)
	if navID != c.NavbarCategory {
		if err := s.requireNavbar(ctx, navID); err != nil {
			return nil, err
		}
	}
	slug, err := deriveSlug("category", c.Slug, c.Name, in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Slug = slug
	c.NavbarCategory = navID
	c.Description = in.Description
	c.Image = in.Image
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.categories.Replace(ctx, c); err != nil {
		return nil, storeError("category", err)
	}
	return c, nil
}

func (s *CatalogService) SetCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, storeError("category", err)
	}
	c.IsActive = active
	if err := s.categories.Replace(ctx, c); err != nil {
		return nil, storeError("category", err)
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	return storeError("category", s.categories.Delete(ctx, id))
}

// ---------------------------------------------------------------------------
// Subcategories
// ---------------------------------------------------------------------------

func (s *CatalogService) ListSubCategories(ctx context.Context, f CatalogFilter) ([]models.SubCategoryView, models.Pagination, error) {
	h, _, _, subcategories, err := s.loadHierarchy(ctx, f.Public)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	views := make([]models.SubCategoryView, 0, len(subcategories))
	for _, sc := range subcategories {
		views = append(views, h.SubCategory(sc))
	}
	items, page := Paginate(FilterSubCategories(views, f), f)
	return items, page, nil
}

func (s *CatalogService) GetSubCategory(ctx context.Context, id primitive.ObjectID) (*models.SubCategoryView, error) {
	sc, err := s.subcategories.Get(ctx, id)
	if err != nil {
		return nil, storeError("subcategory", err)
	}
	v := models.SubCategoryView{SubCategory: *sc}
	parent, err := s.GetCategory(ctx, sc.Category)
	switch {
	case err == nil:
		v.Parent = parent
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	return &v, nil
}

func (s *CatalogService) CreateSubCategory(ctx context.Context, in models.SubCategoryPayload) (*models.SubCategory, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	catID := mustRef(in.Category)
	if _, err := s.requireCategory(ctx, catID); err != nil {
		return nil, err
	}
	slug, err := deriveSlug("subcategory", "", "", in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	sc := &models.SubCategory{
		Name:        in.Name,
		Slug:        slug,
		Category:    catID,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    activeOrDefault(in.IsActive),
	}
	if err := s.subcategories.Create(ctx, sc); err != nil {
		return nil, storeError("subcategory", err)
	}
	s.log.WithFields(logrus.Fields{"id": sc.ID.Hex(), "slug": sc.Slug}).Info("Subcategory created")
	return sc, nil
}

func (s *CatalogService) UpdateSubCategory(ctx context.Context, id primitive.ObjectID, in models.SubCategoryPayload) (*models.SubCategory, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	sc, err := s.subcategories.Get(ctx, id)
	if err != nil {
		return nil, storeError("subcategory", err)
	}
	catID := mustRef(in.Category)
	if catID != sc.Category {
		if _, err := s.requireCategory(ctx, catID); err != nil {
			return nil, err
		}
	}
	slug, err := deriveSlug("subcategory", sc.Slug, sc.Name, in.Name, in.Slug)
	if err != nil {
		return nil, err
	}
	sc.Name = in.Name
	sc.Slug = slug
	sc.Category = catID
	sc.Description = in.Description
	sc.Image = in.Image
	if in.IsActive != nil {
		sc.IsActive = *in.IsActive
	}
	if err := s.subcategories.Replace(ctx, sc); err != nil {
		return nil, storeError("subcategory", err)
	}
	return sc, nil
}

func (s *CatalogService) SetSubCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.SubCategory, error) {
	sc, err := s.subcategories.Get(ctx, id)
	if err != nil {
		return nil, storeError("subcategory", err)
	}
	sc.IsActive = active
	if err := s.subcategories.Replace(ctx, sc); err != nil {
		return nil, storeError("subcategory", err)
	}
	return sc, nil
}

func (s *CatalogService) DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error {
	return storeError("subcategory", s.subcategories.Delete(ctx, id))
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func (s *CatalogService) ListProducts(ctx context.Context, f CatalogFilter) ([]models.ProductView, models.Pagination, error) {
	h, _, _, _, err := s.loadHierarchy(ctx, f.Public)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	views, err := s.populatedProducts(ctx, h)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	items, page := Paginate(FilterProducts(views, f), f)
	return items, page, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.ProductView, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, storeError("product", err)
	}
	h, _, _, _, err := s.loadHierarchy(ctx, false)
	if err != nil {
		return nil, err
	}
	v := h.Product(*p)
	return &v, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in models.ProductPayload) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	p := &models.Product{IsActive: activeOrDefault(in.IsActive)}
	if err := s.applyProduct(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, storeError("product", err)
	}
	s.log.WithFields(logrus.Fields{"id": p.ID.Hex(), "slug": p.Slug}).Info("Product created")
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, in models.ProductPayload) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, storeError("product", err)
	}
	if err := s.applyProduct(ctx, p, in); err != nil {
		return nil, err
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.products.Replace(ctx, p); err != nil {
		return nil, storeError("product", err)
	}
	return p, nil
}

// applyProduct copies the payload onto p after checking that the three
// denormalised ancestor references describe one consistent branch.
func (s *CatalogService) applyProduct(ctx context.Context, p *models.Product, in models.ProductPayload) error {
	navID := mustRef(in.NavbarCategory)
	catID := mustRef(in.Category)

	if err := s.requireNavbar(ctx, navID); err != nil {
		return err
	}
	cat, err := s.requireCategory(ctx, catID)
	if err != nil {
		return err
	}
	if cat.NavbarCategory != navID {
		return validationError("category %q does not belong to the selected navbar category", cat.Name)
	}

	var subID *primitive.ObjectID
	if in.SubCategory != "" {
		id := mustRef(in.SubCategory)
		sc, err := s.subcategories.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return validationError("subcategory does not exist")
		}
		if err != nil {
			return storeError("subcategory", err)
		}
		if sc.Category != catID {
			return validationError("subcategory %q does not belong to the selected category", sc.Name)
		}
		subID = &id
	}

	slug, err := deriveSlug("product", p.Slug, p.Name, in.Name, in.Slug)
	if err != nil {
		return err
	}

	features := make([]string, 0, len(in.KeyFeatures))
	for _, kf := range in.KeyFeatures {
		if kf != "" {
			features = append(features, kf)
		}
	}

	p.Name = in.Name
	p.Slug = slug
	p.Description = in.Description
	p.KeyFeatures = features
	p.Image1, p.Image2, p.Image3, p.Image4 = in.Image1, in.Image2, in.Image3, in.Image4
	p.NavbarCategory = navID
	p.Category = catID
	p.SubCategory = subID
	return nil
}

func (s *CatalogService) SetProductActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, storeError("product", err)
	}
	p.IsActive = active
	if err := s.products.Replace(ctx, p); err != nil {
		return nil, storeError("product", err)
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return storeError("product", s.products.Delete(ctx, id))
}

func (s *CatalogService) requireNavbar(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.navbars.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return validationError("navbar category does not exist")
	}
	return storeError("navbar category", err)
}

func (s *CatalogService) requireCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, validationError("category does not exist")
	}
	if err != nil {
		return nil, storeError("category", err)
	}
	return c, nil
}
