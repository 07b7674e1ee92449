package models

import (
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryCaps       Category = "caps"
	CategoryBeanies    Category = "beanies"
	CategoryFedoras    Category = "fedoras"
	CategorySunhats    Category = "sunhats"
	CategoryBerets     Category = "berets"
	CategoryBucketHats Category = "bucket-hats"
)

// Categories is the closed set of catalog categories.
var Categories = []Category{
	CategoryCaps, CategoryBeanies, CategoryFedoras,
	CategorySunhats, CategoryBerets, CategoryBucketHats,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string         `json:"description"`
	Price            float64        `gorm:"not null" json:"price"`
	DiscountPrice    *float64       `json:"discount_price,omitempty"`
	Category         Category       `gorm:"type:VARCHAR(20);index" json:"category"`
	Image            string         `json:"image"`
	CareInstructions string         `json:"care_instructions"`
	Reviews          []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is the price the customer actually pays.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"-"`
	UserID    string    `gorm:"not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
