package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Gautam3767/product-catalog-backend/services"
)

// NewRouter builds the gin engine with every route mounted.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(h.Recovery(), h.RequestLogger())

	// The admin UI sends the token in the Authorization header and the
	// shell relies on the cookie, so credentials must be allowed.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = h.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(loadTemplates())
	if h.Uploads != nil {
		router.Static(services.PublicUploadPrefix, h.Uploads.Dir())
	}

	router.GET("/health", h.Health)
	router.GET("/admin", h.AdminShell)
	router.GET("/admin/login", h.AdminLogin)

	api := router.Group("/api/v1")
	{
		// Public site
		api.GET("/navbar", h.GetNavbar)
		api.GET("/navbar/:navbarSlug/categories", h.GetNavbarCategories)
		api.GET("/products", h.GetProductsIndex)
		api.GET("/products/:categorySlug", h.GetCategoryPage)
		api.GET("/products/:categorySlug/:subCategorySlug", h.GetSubCategoryPage)
		api.GET("/products/:categorySlug/:subCategorySlug/:productSlug", h.GetProductPage)
		api.GET("/search", h.SearchProducts)
		api.POST("/contact", h.SubmitContact)

		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)

		admin := api.Group("/admin", h.RequireAdmin())
		{
			admin.GET("/me", h.Me)
			admin.POST("/upload", h.UploadImage)

			h.registerCatalogAdmin(admin)

			contacts := admin.Group("/contacts")
			contacts.GET("", h.ListContacts)
			contacts.GET("/stats", h.GetContactStats)
			contacts.POST("/mark-all-read", h.MarkAllContactsRead)
			contacts.POST("/bulk/status", h.BulkUpdateContactStatus)
			contacts.POST("/bulk/delete", h.BulkDeleteContacts)
			contacts.GET("/:id", h.GetContact)
			contacts.PATCH("/:id", h.UpdateContact)
			contacts.DELETE("/:id", h.DeleteContact)

			dashboard := admin.Group("/dashboard")
			dashboard.GET("", h.GetDashboard)
			dashboard.POST("/snapshots", h.CreateSnapshot)
			dashboard.GET("/snapshots", h.ListSnapshots)
			dashboard.GET("/snapshots/latest", h.GetLatestSnapshot)
		}
	}

	return router
}
