package productcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/middleware"
	"github.com/brimline/headwear-api/models"
)

func setupProductTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Review{}, &models.CartItem{}))

	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:slug", GetProductBySlug(db))
	r.GET("/products/product/:id", GetProductByID(db))
	r.POST("/products/:slug/reviews", middleware.RequireAuth, AddReview(db))

	admin := r.Group("/products")
	admin.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
	admin.PUT("/:id", UpdateProduct(db))
	admin.DELETE("/:id", DeleteProduct(db))
	return db, r
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	require.NoError(t, err)
	return token
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, category models.Category) models.Product {
	t.Helper()
	s, err := UniqueSlug(db, name, 0)
	require.NoError(t, err)
	p := models.Product{Name: name, Slug: s, Price: price, Category: category}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestUniqueSlug(t *testing.T) {
	db, _ := setupProductTest(t)

	first := createProduct(t, db, "Classic Fedora", 59.00, models.CategoryFedoras)
	assert.Equal(t, "classic-fedora", first.Slug)

	// same name again gets a suffixed slug
	second := createProduct(t, db, "Classic Fedora", 64.00, models.CategoryFedoras)
	assert.Equal(t, "classic-fedora-2", second.Slug)

	third := createProduct(t, db, "Classic Fedora", 69.00, models.CategoryFedoras)
	assert.Equal(t, "classic-fedora-3", third.Slug)

	// the excluded product keeps its own slug on rename-to-same-name
	kept, err := UniqueSlug(db, "Classic Fedora", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "classic-fedora", kept)
}

func TestRenameRederivesSlug(t *testing.T) {
	db, r := setupProductTest(t)
	p := createProduct(t, db, "Classic Fedora", 59.00, models.CategoryFedoras)

	body, _ := json.Marshal(gin.H{"name": "Panama Fedora"})
	req := httptest.NewRequest(http.MethodPut, "/products/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin-1", "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, db.First(&updated, p.ID).Error)
	assert.Equal(t, "Panama Fedora", updated.Name)
	assert.Equal(t, "panama-fedora", updated.Slug)
}

func TestUpdateProductDiscountBounds(t *testing.T) {
	db, r := setupProductTest(t)
	p := createProduct(t, db, "Classic Fedora", 59.00, models.CategoryFedoras)

	putProduct := func(payload gin.H) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPut, "/products/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin-1", "admin"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// at or above the price
	assert.Equal(t, http.StatusBadRequest, putProduct(gin.H{"discount_price": 59.00}).Code)
	assert.Equal(t, http.StatusBadRequest, putProduct(gin.H{"discount_price": 80.00}).Code)
	assert.Equal(t, http.StatusBadRequest, putProduct(gin.H{"discount_price": -5.00}).Code)

	// checked against the new price when both change together
	assert.Equal(t, http.StatusBadRequest, putProduct(gin.H{"price": 40.00, "discount_price": 45.00}).Code)

	var untouched models.Product
	require.NoError(t, db.First(&untouched, p.ID).Error)
	assert.Nil(t, untouched.DiscountPrice)

	require.Equal(t, http.StatusOK, putProduct(gin.H{"discount_price": 49.00}).Code)

	var updated models.Product
	require.NoError(t, db.First(&updated, p.ID).Error)
	require.NotNil(t, updated.DiscountPrice)
	assert.Equal(t, 49.00, *updated.DiscountPrice)
}

func TestUpdateProductRequiresAdminRole(t *testing.T) {
	db, r := setupProductTest(t)
	createProduct(t, db, "Classic Fedora", 59.00, models.CategoryFedoras)

	body, _ := json.Marshal(gin.H{"price": 1.00})
	req := httptest.NewRequest(http.MethodPut, "/products/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", "user"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetProductBySlug(t *testing.T) {
	db, r := setupProductTest(t)
	createProduct(t, db, "Wide Brim Sunhat", 42.00, models.CategorySunhats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/wide-brim-sunhat", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Wide Brim Sunhat", p.Name)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/no-such-hat", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductsSorted(t *testing.T) {
	db, r := setupProductTest(t)
	createProduct(t, db, "Cheap Cap", 10.00, models.CategoryCaps)
	createProduct(t, db, "Mid Beanie", 20.00, models.CategoryBeanies)
	createProduct(t, db, "Pricey Fedora", 30.00, models.CategoryFedoras)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?sort_by=price&order=asc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 3)
	assert.Equal(t, "Cheap Cap", products[0].Name)
	assert.Equal(t, "Pricey Fedora", products[2].Name)

	// sort column is whitelisted
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?sort_by=password_hash", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductsCategoryFilter(t *testing.T) {
	db, r := setupProductTest(t)
	createProduct(t, db, "Cap One", 10.00, models.CategoryCaps)
	createProduct(t, db, "Beanie One", 20.00, models.CategoryBeanies)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?category=caps", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, models.CategoryCaps, products[0].Category)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?category=sombreros", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddReview(t *testing.T) {
	db, r := setupProductTest(t)
	p := createProduct(t, db, "Wool Beret", 25.00, models.CategoryBerets)

	body, _ := json.Marshal(gin.H{"rating": 5, "comment": "fits great"})
	req := httptest.NewRequest(http.MethodPost, "/products/wool-beret/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", "user"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var reviews []models.Review
	require.NoError(t, db.Where("product_id = ?", p.ID).Find(&reviews).Error)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}
