package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/services"
)

// Default timeout for the store calls behind one request.
const defaultDBTimeout = 5 * time.Second

// CatalogAPI is implemented by *services.CatalogService.
type CatalogAPI interface {
	ListNavbarCategories(ctx context.Context, f services.CatalogFilter) ([]models.NavbarCategory, models.Pagination, error)
	GetNavbarCategory(ctx context.Context, id primitive.ObjectID) (*models.NavbarCategory, error)
	CreateNavbarCategory(ctx context.Context, in models.NavbarCategoryPayload) (*models.NavbarCategory, error)
	UpdateNavbarCategory(ctx context.Context, id primitive.ObjectID, in models.NavbarCategoryPayload) (*models.NavbarCategory, error)
	SetNavbarCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.NavbarCategory, error)
	DeleteNavbarCategory(ctx context.Context, id primitive.ObjectID) error

	ListCategories(ctx context.Context, f services.CatalogFilter) ([]models.CategoryView, models.Pagination, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*models.CategoryView, error)
	CreateCategory(ctx context.Context, in models.CategoryPayload) (*models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, in models.CategoryPayload) (*models.Category, error)
	SetCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	ListSubCategories(ctx context.Context, f services.CatalogFilter) ([]models.SubCategoryView, models.Pagination, error)
	GetSubCategory(ctx context.Context, id primitive.ObjectID) (*models.SubCategoryView, error)
	CreateSubCategory(ctx context.Context, in models.SubCategoryPayload) (*models.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id primitive.ObjectID, in models.SubCategoryPayload) (*models.SubCategory, error)
	SetSubCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error

	ListProducts(ctx context.Context, f services.CatalogFilter) ([]models.ProductView, models.Pagination, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.ProductView, error)
	CreateProduct(ctx context.Context, in models.ProductPayload) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, in models.ProductPayload) (*models.Product, error)
	SetProductActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	NavbarMenu(ctx context.Context) ([]models.NavbarMenuItem, error)
	NavbarCategories(ctx context.Context, navbarSlug string) ([]models.CategoryView, error)
	ProductsIndex(ctx context.Context, f services.CatalogFilter) (*models.ProductsPage, error)
	CategoryPage(ctx context.Context, categorySlug string, f services.CatalogFilter) (*models.CategoryPage, error)
	SubCategoryPage(ctx context.Context, categorySlug, subCategorySlug string, f services.CatalogFilter) (*models.SubCategoryPage, error)
	ProductPage(ctx context.Context, categorySlug, subCategorySlug, productSlug string) (*models.ProductPage, error)
	SearchProducts(ctx context.Context, f services.CatalogFilter) ([]models.ProductView, models.Pagination, error)
}

// ContactAPI is implemented by *services.ContactService.
type ContactAPI interface {
	Submit(ctx context.Context, in models.ContactPayload) (*models.Contact, error)
	List(ctx context.Context, f models.ContactFilter, p models.Page) ([]models.Contact, models.Pagination, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
	Update(ctx context.Context, id primitive.ObjectID, in models.ContactUpdatePayload) (*models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, f models.ContactFilter) (int64, error)
	BulkUpdateStatus(ctx context.Context, in models.BulkContactPayload) (int64, error)
	BulkDelete(ctx context.Context, in models.BulkContactPayload) (int64, error)
	Stats(ctx context.Context) (*models.ContactStats, error)
}

// DashboardAPI is implemented by *services.DashboardService.
type DashboardAPI interface {
	Compute(ctx context.Context, t models.SnapshotType, from, to time.Time) (*models.Dashboard, error)
	CreateSnapshot(ctx context.Context, t models.SnapshotType, from, to time.Time) (*models.Dashboard, error)
	Latest(ctx context.Context) (*models.Dashboard, error)
	List(ctx context.Context, limit int64) ([]models.Dashboard, error)
}

// AuthAPI is implemented by *services.AuthService.
type AuthAPI interface {
	Login(ctx context.Context, in models.LoginPayload) (*services.LoginResult, error)
	Verify(token string) (*services.AdminClaims, error)
}

// UploadAPI is implemented by *services.UploadService.
type UploadAPI interface {
	SaveImage(ctx context.Context, r io.Reader) (string, error)
	MaxBytes() int64
	Dir() string
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps wires the HTTP layer to the services.
type Deps struct {
	Catalog   CatalogAPI
	Contacts  ContactAPI
	Dashboard DashboardAPI
	Auth      AuthAPI
	Uploads   UploadAPI
	Guard     *services.SessionGuard
	DB        Pinger
	Log       logrus.FieldLogger

	DBTimeout   time.Duration
	CORSOrigins []string
	// SecureCookies marks the admin session cookie Secure (HTTPS deployments).
	SecureCookies bool
}

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	if deps.DBTimeout <= 0 {
		deps.DBTimeout = defaultDBTimeout
	}
	if deps.Guard == nil {
		deps.Guard = services.NewSessionGuard()
	}
	return &Handler{Deps: deps}
}

// dbContext bounds the store calls of one request.
func (h *Handler) dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.DBTimeout)
}

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// PageData wraps a paged list.
type PageData[T any] struct {
	Items      []T               `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func okMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg})
}

// respondError maps service errors onto HTTP statuses. Only unexpected
// errors are logged; their details never reach the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, messageOf(err, "invalid request"))
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, messageOf(err, "conflict"))
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, messageOf(err, "unauthorized"))
	case errors.Is(err, context.DeadlineExceeded):
		h.Log.WithError(err).WithField("path", c.FullPath()).Error("Request timed out")
		fail(c, http.StatusGatewayTimeout, "request timed out")
	default:
		h.Log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func messageOf(err error, fallback string) string {
	var appErr *services.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// bindJSON decodes the body into dst, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}

// idParam reads the :id path parameter. Malformed ids are 404, like unknown ones.
func idParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, badQuery(key)
	}
	return &b, nil
}

func queryID(c *gin.Context, key string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, badQuery(key)
	}
	return id, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates (UTC midnight).
func queryTime(c *gin.Context, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, badQuery(key)
}

func badQuery(key string) error {
	return &services.AppError{Kind: services.ErrValidation, Message: "invalid query parameter " + key}
}

func searchQuery(c *gin.Context) string {
	if q := c.Query("search"); q != "" {
		return q
	}
	return c.Query("q")
}

// catalogFilter reads the admin listing query: isActive plus everything
// listingFilter reads.
func catalogFilter(c *gin.Context) (services.CatalogFilter, error) {
	f, err := listingFilter(c)
	if err != nil {
		return f, err
	}
	f.Active, err = queryBool(c, "isActive")
	return f, err
}

// listingFilter reads the query shared by admin and public listings:
// page, limit, search|q, navbarCategory, category, subcategory.
func listingFilter(c *gin.Context) (services.CatalogFilter, error) {
	f := services.CatalogFilter{
		Search: searchQuery(c),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	var err error
	if f.NavbarCategoryID, err = queryID(c, "navbarCategory"); err != nil {
		return f, err
	}
	if f.CategoryID, err = queryID(c, "category"); err != nil {
		return f, err
	}
	if f.SubCategoryID, err = queryID(c, "subcategory"); err != nil {
		return f, err
	}
	return f, nil
}
