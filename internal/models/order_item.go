package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a single order line. Price and DiscountedPrice are snapshots of
// the product's pricing at order time and are never recomputed afterwards.
type OrderItem struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	OrderID         uint             `json:"order_id" gorm:"not null;index"`
	ProductID       uint             `json:"product_id" gorm:"not null"`
	Product         *Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity        int              `json:"quantity" gorm:"not null"`
	Price           decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price" gorm:"type:decimal(10,2)"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// LineTotal is quantity times the snapshotted effective price.
func (i *OrderItem) LineTotal() decimal.Decimal {
	price := i.Price
	if i.DiscountedPrice != nil {
		price = *i.DiscountedPrice
	}
	return price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
