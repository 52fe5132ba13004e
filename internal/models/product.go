package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Title           string           `json:"title" gorm:"not null"`
	Description     string           `json:"description" gorm:"type:text"`
	Price           decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price" gorm:"type:decimal(10,2)"`
	Image           string           `json:"image"`
	Status          int              `json:"status" gorm:"default:1"` // 0 deleted, 1 active, 2 disabled
	IsFeatured      bool             `json:"is_featured" gorm:"default:false"`
	CategoryID      uint             `json:"category_id" gorm:"index"`
	Category        *Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AdminID         uint             `json:"admin_id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `json:"-" gorm:"index"`
}

const (
	ProductStatusDeleted  = 0
	ProductStatusActive   = 1
	ProductStatusDisabled = 2
)

// EffectivePrice is the price an order line pays: the discounted price when one
// is set, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}
