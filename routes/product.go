package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/brimline/headwear-api/controllers/product"
	"github.com/brimline/headwear-api/middleware"
	"github.com/brimline/headwear-api/models"
)

// SetupProductRoutes registers the public catalog plus the admin-only
// management endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:slug", productcontroller.GetProductBySlug(db))
		products.GET("/product/:id", productcontroller.GetProductByID(db))

		products.POST("/:slug/reviews", middleware.RequireAuth, productcontroller.AddReview(db))
	}

	admin := r.Group("/products")
	admin.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/create", productcontroller.CreateProduct(db))
		admin.PUT("/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/:id", productcontroller.DeleteProduct(db))
		admin.GET("/export/excel", productcontroller.ExportProductsToExcel(db))
	}
}
