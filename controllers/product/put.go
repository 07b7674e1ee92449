package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/models"
)

type UpdateProductInput struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price"`
	DiscountPrice    *float64 `json:"discount_price"`
	Category         *string  `json:"category"`
	CareInstructions *string  `json:"care_instructions"`
}

// PUT /products/:id (admin). Renaming a product re-derives its slug.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if input.Name != nil && *input.Name != product.Name {
			newSlug, slugErr := UniqueSlug(db, *input.Name, product.ID)
			if slugErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive slug"})
				return
			}
			updates["name"] = *input.Name
			updates["slug"] = newSlug
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.DiscountPrice != nil {
			price := product.Price
			if input.Price != nil {
				price = *input.Price
			}
			if *input.DiscountPrice <= 0 || *input.DiscountPrice >= price {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount_price"})
				return
			}
			updates["discount_price"] = *input.DiscountPrice
		}
		if input.Category != nil {
			if !models.Category(*input.Category).Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
				return
			}
			updates["category"] = *input.Category
		}
		if input.CareInstructions != nil {
			updates["care_instructions"] = *input.CareInstructions
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		var updated models.Product
		if err := db.First(&updated, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated product"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
