package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/services"
)

// The four catalog entities share the same admin surface:
//
//	GET    /admin/<entities>             list (page, limit, search, isActive, parent ids)
//	POST   /admin/<entities>             create
//	GET    /admin/<entities>/:id         get with parents populated
//	PUT    /admin/<entities>/:id         replace
//	PATCH  /admin/<entities>/:id/active  toggle isActive
//	DELETE /admin/<entities>/:id         delete
//
// The constructors below build those handlers from the matching service methods.

type activePayload struct {
	IsActive *bool `json:"isActive"`
}

// listHandler godoc
// @Summary List catalog entities (admin)
// @Tags admin-catalog
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Case-insensitive search"
// @Param isActive query bool false "Only active (true) or inactive (false)"
// @Success 200 {object} Envelope "items and pagination"
// @Failure 400 {object} Envelope "Invalid query parameter"
// @Failure 401 {object} Envelope "Missing or invalid token"
func listHandler[T any](h *Handler, list func(context.Context, services.CatalogFilter) ([]T, models.Pagination, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := catalogFilter(c)
		if err != nil {
			h.respondError(c, err)
			return
		}
		ctx, cancel := h.dbContext(c)
		defer cancel()

		items, page, err := list(ctx, f)
		if err != nil {
			h.respondError(c, err)
			return
		}
		ok(c, http.StatusOK, PageData[T]{Items: items, Pagination: page})
	}
}

// getHandler godoc
// @Summary Get one catalog entity by id (admin)
// @Tags admin-catalog
// @Produce json
// @Param id path string true "Entity id"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found"
func getHandler[T any](h *Handler, get func(context.Context, primitive.ObjectID) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, found := idParam(c)
		if !found {
			return
		}
		ctx, cancel := h.dbContext(c)
		defer cancel()

		item, err := get(ctx, id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		ok(c, http.StatusOK, item)
	}
}

// createHandler godoc
// @Summary Create a catalog entity (admin)
// @Description The slug is derived from the name unless one is supplied.
// @Tags admin-catalog
// @Accept json
// @Produce json
// @Success 201 {object} Envelope "Created"
// @Failure 400 {object} Envelope "Invalid input or unknown parent"
// @Failure 409 {object} Envelope "Name already in use"
func createHandler[P, T any](h *Handler, entity string, create func(context.Context, P) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload P
		if !bindJSON(c, &payload) {
			return
		}
		ctx, cancel := h.dbContext(c)
		defer cancel()

		item, err := create(ctx, payload)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, Envelope{Success: true, Data: item, Message: entity + " created"})
	}
}

// updateHandler godoc
// @Summary Replace a catalog entity (admin)
// @Description Renaming regenerates the slug unless a different slug is supplied.
// @Tags admin-catalog
// @Accept json
// @Produce json
// @Param id path string true "Entity id"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Invalid input"
// @Failure 404 {object} Envelope "Not found"
// @Failure 409 {object} Envelope "Name already in use"
func updateHandler[P, T any](h *Handler, entity string, update func(context.Context, primitive.ObjectID, P) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, found := idParam(c)
		if !found {
			return
		}
		var payload P
		if !bindJSON(c, &payload) {
			return
		}
		ctx, cancel := h.dbContext(c)
		defer cancel()

		item, err := update(ctx, id, payload)
		if err != nil {
			h.respondError(c, err)
			return
		}
		okMessage(c, entity+" updated", item)
	}
}

// setActiveHandler godoc
// @Summary Enable or disable a catalog entity (admin)
// @Description Disabling hides every descendant from public reads. Descendants keep their own flag.
// @Tags admin-catalog
// @Accept json
// @Produce json
// @Param id path string true "Entity id"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "isActive missing"
// @Failure 404 {object} Envelope "Not found"
func setActiveHandler[T any](h *Handler, entity string, set func(context.Context, primitive.ObjectID, bool) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, found := idParam(c)
		if !found {
			return
		}
		var payload activePayload
		if !bindJSON(c, &payload) {
			return
		}
		if payload.IsActive == nil {
			fail(c, http.StatusBadRequest, "isActive is required")
			return
		}
		ctx, cancel := h.dbContext(c)
		defer cancel()

		item, err := set(ctx, id, *payload.IsActive)
		if err != nil {
			h.respondError(c, err)
			return
		}
		state := "disabled"
		if *payload.IsActive {
			state = "enabled"
		}
		okMessage(c, fmt.Sprintf("%s %s", entity, state), item)
	}
}

// deleteHandler godoc
// @Summary Delete a catalog entity (admin)
// @Description Descendants are not deleted; they disappear from public reads.
// @Tags admin-catalog
// @Produce json
// @Param id path string true "Entity id"
// @Success 200 {object} Envelope "Success message"
// @Failure 404 {object} Envelope "Not found"
func deleteHandler(h *Handler, entity string, del func(context.Context, primitive.ObjectID) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, found := idParam(c)
		if !found {
			return
		}
		ctx, cancel := h.dbContext(c)
		defer cancel()

		if err := del(ctx, id); err != nil {
			h.respondError(c, err)
			return
		}
		okMessage(c, entity+" deleted", nil)
	}
}

// registerCatalogAdmin mounts the CRUD routes of all four entities on rg.
func (h *Handler) registerCatalogAdmin(rg *gin.RouterGroup) {
	cat := h.Catalog

	navbars := rg.Group("/navbar-categories")
	navbars.GET("", listHandler(h, cat.ListNavbarCategories))
	navbars.POST("", createHandler(h, "Navbar category", cat.CreateNavbarCategory))
	navbars.GET("/:id", getHandler(h, cat.GetNavbarCategory))
	navbars.PUT("/:id", updateHandler(h, "Navbar category", cat.UpdateNavbarCategory))
	navbars.PATCH("/:id/active", setActiveHandler(h, "Navbar category", cat.SetNavbarCategoryActive))
	navbars.DELETE("/:id", deleteHandler(h, "Navbar category", cat.DeleteNavbarCategory))

	categories := rg.Group("/categories")
	categories.GET("", listHandler(h, cat.ListCategories))
	categories.POST("", createHandler(h, "Category", cat.CreateCategory))
	categories.GET("/:id", getHandler(h, cat.GetCategory))
	categories.PUT("/:id", updateHandler(h, "Category", cat.UpdateCategory))
	categories.PATCH("/:id/active", setActiveHandler(h, "Category", cat.SetCategoryActive))
	categories.DELETE("/:id", deleteHandler(h, "Category", cat.DeleteCategory))

	subcategories := rg.Group("/subcategories")
	subcategories.GET("", listHandler(h, cat.ListSubCategories))
	subcategories.POST("", createHandler(h, "Subcategory", cat.CreateSubCategory))
	subcategories.GET("/:id", getHandler(h, cat.GetSubCategory))
	subcategories.PUT("/:id", updateHandler(h, "Subcategory", cat.UpdateSubCategory))
	subcategories.PATCH("/:id/active", setActiveHandler(h, "Subcategory", cat.SetSubCategoryActive))
	subcategories.DELETE("/:id", deleteHandler(h, "Subcategory", cat.DeleteSubCategory))

	products := rg.Group("/products")
	products.GET("", listHandler(h, cat.ListProducts))
	products.POST("", createHandler(h, "Product", cat.CreateProduct))
	products.GET("/:id", getHandler(h, cat.GetProduct))
	products.PUT("/:id", updateHandler(h, "Product", cat.UpdateProduct))
	products.PATCH("/:id/active", setActiveHandler(h, "Product", cat.SetProductActive))
	products.DELETE("/:id", deleteHandler(h, "Product", cat.DeleteProduct))
}
