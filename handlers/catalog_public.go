package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gautam3767/product-catalog-backend/models"
	"github.com/Gautam3767/product-catalog-backend/services"
)

// Public reads only ever see entities whose whole ancestor chain is active.

// publicFilter restricts a listing to visible entities. The isActive query
// parameter is never read.
func publicFilter(c *gin.Context) (services.CatalogFilter, error) {
	f, err := listingFilter(c)
	f.Public = true
	return f, err
}

// GetNavbar godoc
// @Summary Navbar menu
// @Description Active navbar categories in display order, each with its visible categories.
// @Tags catalog
// @Produce json
// @Success 200 {object} Envelope
// @Router /navbar [get]
func (h *Handler) GetNavbar(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	menu, err := h.Catalog.NavbarMenu(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, menu)
}

// GetNavbarCategories godoc
// @Summary Categories under one navbar category
// @Tags catalog
// @Produce json
// @Param navbarSlug path string true "Navbar category slug"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Unknown or disabled navbar category"
// @Router /navbar/{navbarSlug}/categories [get]
func (h *Handler) GetNavbarCategories(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	cats, err := h.Catalog.NavbarCategories(ctx, c.Param("navbarSlug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

// GetProductsIndex godoc
// @Summary Products landing page
// @Description Visible categories plus a page of visible products.
// @Tags catalog
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search text"
// @Success 200 {object} Envelope
// @Router /products [get]
func (h *Handler) GetProductsIndex(c *gin.Context) {
	f, err := publicFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	page, err := h.Catalog.ProductsIndex(ctx, f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetCategoryPage godoc
// @Summary Category page
// @Tags catalog
// @Produce json
// @Param categorySlug path string true "Category slug"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found"
// @Router /products/{categorySlug} [get]
func (h *Handler) GetCategoryPage(c *gin.Context) {
	f, err := publicFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	page, err := h.Catalog.CategoryPage(ctx, c.Param("categorySlug"), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetSubCategoryPage godoc
// @Summary Subcategory page
// @Tags catalog
// @Produce json
// @Param categorySlug path string true "Category slug"
// @Param subCategorySlug path string true "Subcategory slug"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found"
// @Router /products/{categorySlug}/{subCategorySlug} [get]
func (h *Handler) GetSubCategoryPage(c *gin.Context) {
	f, err := publicFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	page, err := h.Catalog.SubCategoryPage(ctx, c.Param("categorySlug"), c.Param("subCategorySlug"), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetProductPage godoc
// @Summary Product detail page
// @Description The product plus a few related products from the same subcategory.
// @Tags catalog
// @Produce json
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found"
// @Router /products/{categorySlug}/{subCategorySlug}/{productSlug} [get]
func (h *Handler) GetProductPage(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	page, err := h.Catalog.ProductPage(ctx, c.Param("categorySlug"), c.Param("subCategorySlug"), c.Param("productSlug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// SearchProducts godoc
// @Summary Search visible products
// @Tags catalog
// @Produce json
// @Param q query string false "Search text (alias: search)"
// @Success 200 {object} Envelope
// @Router /search [get]
func (h *Handler) SearchProducts(c *gin.Context) {
	f, err := publicFilter(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	items, page, err := h.Catalog.SearchProducts(ctx, f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, http.StatusOK, PageData[models.ProductView]{Items: items, Pagination: page})
}
