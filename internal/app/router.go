// internal/app/router.go
package app

import (
	"net/http"
	"path/filepath"

	authHandler "showroom-service/internal/handlers/auth"
	categoryHandler "showroom-service/internal/handlers/category"
	imageHandler "showroom-service/internal/handlers/image"
	productHandler "showroom-service/internal/handlers/product"
	vignetteHandler "showroom-service/internal/handlers/vignette"
	wsHandler "showroom-service/internal/handlers/websocket"
	"showroom-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.ProductHandler
	VignetteHandler *vignetteHandler.VignetteHandler
	ImageHandler    *imageHandler.ImageHandler
	WSHandler       *wsHandler.WebSocketHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// StaticConfig points at the front-end pages and the local upload directory.
// An empty UploadDir means uploads are not served from disk.
type StaticConfig struct {
	PublicDir string
	UploadDir string
}

func SetupRouter(r *gin.Engine, h *Handlers, static StaticConfig) {
	auth := h.AuthMiddleware

	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws/display", h.WSHandler.HandleDisplay)

	api := r.Group("/api")
	api.Use(auth.Optional())

	// ==================== Auth ====================
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", h.AuthHandler.Login)
		authRoutes.POST("/logout", h.AuthHandler.Logout)
		authRoutes.GET("/status", h.AuthHandler.Status)
	}

	// ==================== Vignettes ====================
	vignettes := api.Group("/vignettes")
	{
		vignettes.GET("", h.VignetteHandler.ListVignettes)
		vignettes.GET("/:id", h.VignetteHandler.GetVignette)
		vignettes.POST("", auth.Require(), h.VignetteHandler.CreateVignette)
		vignettes.PUT("/:id", auth.Require(), h.VignetteHandler.UpdateVignette)
		vignettes.DELETE("/:id", auth.Require(), h.VignetteHandler.DeleteVignette)

		vignettes.POST("/:id/products/:productId", auth.Require(), h.VignetteHandler.AddProduct)
		vignettes.DELETE("/:id/products/:productId", auth.Require(), h.VignetteHandler.RemoveProduct)
	}

	// ==================== Products ====================
	products := api.Group("/products")
	{
		products.GET("", h.ProductHandler.ListProducts)
		products.GET("/:id", h.ProductHandler.GetProduct)
		products.POST("", auth.Require(), h.ProductHandler.CreateProduct)
		products.PUT("/:id", auth.Require(), h.ProductHandler.UpdateProduct)
		products.DELETE("/:id", auth.Require(), h.ProductHandler.DeleteProduct)
	}

	// ==================== Categories ====================
	categories := api.Group("/categories")
	{
		categories.GET("", h.CategoryHandler.ListCategories)
		categories.GET("/flat", h.CategoryHandler.ListFlat)
	}

	// ==================== Images ====================
	images := api.Group("/images")
	images.Use(auth.Require())
	{
		images.POST("/upload", h.ImageHandler.Upload)
		images.DELETE("/:id", h.ImageHandler.DeleteImage)
	}

	// ==================== Display stats ====================
	api.GET("/display/stats", auth.Require(), h.WSHandler.GetStats)

	// ==================== Static pages ====================
	if static.UploadDir != "" {
		r.Static("/uploads", static.UploadDir)
	}
	if static.PublicDir != "" {
		r.Static("/css", filepath.Join(static.PublicDir, "css"))
		r.Static("/js", filepath.Join(static.PublicDir, "js"))
		r.StaticFile("/login.html", filepath.Join(static.PublicDir, "login.html"))
		r.StaticFile("/display.html", filepath.Join(static.PublicDir, "display.html"))

		adminPage := filepath.Join(static.PublicDir, "admin.html")
		r.GET("/admin.html", auth.RedirectAnonymous("/login.html"), func(c *gin.Context) {
			c.File(adminPage)
		})
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/login.html")
		})
	}
}
