package productcontroller

import (
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/models"
)

// POST /products/create (admin). Multipart form: name, price and category are
// required; the image is pushed to the asset host and only its URL is stored.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		category := c.PostForm("category")
		if name == "" || priceStr == "" || category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, and category are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		if !models.Category(category).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}

		var discountPrice *float64
		if dpStr := c.PostForm("discount_price"); dpStr != "" {
			dp, parseErr := strconv.ParseFloat(dpStr, 64)
			if parseErr != nil || dp <= 0 || dp >= price {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount_price"})
				return
			}
			discountPrice = &dp
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}

		imageURL, err := uploadProductImage(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}

		productSlug, err := UniqueSlug(db, name, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive slug"})
			return
		}

		product := models.Product{
			Name:             name,
			Slug:             productSlug,
			Description:      c.PostForm("description"),
			Price:            price,
			DiscountPrice:    discountPrice,
			Category:         models.Category(category),
			Image:            imageURL,
			CareInstructions: c.PostForm("care_instructions"),
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// uploadProductImage pushes the uploaded file to the asset host and returns
// its public URL.
func uploadProductImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	result, err := cld.Upload.Upload(c.Request.Context(), src, uploader.UploadParams{
		Folder: "headwear/products",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
