package productcontroller

import (
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/brimline/headwear-api/models"
)

// UniqueSlug derives the URL slug from a product name and suffixes it until
// it is unique. excludeID skips the product being renamed so an unchanged
// name keeps its slug.
func UniqueSlug(db *gorm.DB, name string, excludeID uint) (string, error) {
	base := slug.Make(name)
	candidate := base

	for i := 2; ; i++ {
		var count int64
		query := db.Model(&models.Product{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
