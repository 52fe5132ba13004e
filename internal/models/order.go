package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Code                string          `json:"code" gorm:"column:order_code;unique;not null"`
	UserID              uint            `json:"user_id" gorm:"not null;index"`
	User                *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AddressID           *uint           `json:"address_id"`
	Address             *Address        `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	TableID             *uint           `json:"table_id"`
	Table               *Table          `json:"table,omitempty" gorm:"foreignKey:TableID"`
	AdminID             *uint           `json:"admin_id"`
	Subtotal            decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);not null"`
	Total               decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	PaymentMethod       string          `json:"payment_method" gorm:"not null"`
	DeliveryMethod      DeliveryMethod  `json:"delivery_method" gorm:"default:'delivery'"`
	PaymentStatus       PaymentStatus   `json:"payment_status" gorm:"default:'unpaid'"`
	Status              OrderStatus     `json:"status" gorm:"default:'pending';index"`
	CancelledByCustomer bool            `json:"cancelled_by_customer" gorm:"default:false"`
	CustomerCancelledAt *time.Time      `json:"customer_cancelled_at"`
	PaymentVerifiedAt   *time.Time      `json:"payment_verified_at"`
	Items               []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Payment             *Payment        `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `json:"-" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderDelivered  OrderStatus = "delivered"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type DeliveryMethod string

const (
	DeliveryMethodDelivery DeliveryMethod = "delivery"
	DeliveryMethodDineIn   DeliveryMethod = "dine-in"
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodCourier  DeliveryMethod = "courier"
)

const PaymentMethodCash = "cash"

func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled, OrderDelivered:
		return true
	}
	return false
}

func IsValidPaymentStatus(status string) bool {
	switch PaymentStatus(status) {
	case PaymentUnpaid, PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func IsValidDeliveryMethod(method string) bool {
	switch DeliveryMethod(method) {
	case DeliveryMethodDelivery, DeliveryMethodDineIn, DeliveryMethodPickup, DeliveryMethodCourier:
		return true
	}
	return false
}

// orderTransitions is the allowed status state machine. Completed, cancelled and
// delivered are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled, OrderDelivered},
}

// CanTransitionTo reports whether the order status may move to target.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[o.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// NeedsAddress reports whether the delivery method requires a shipping address.
func (m DeliveryMethod) NeedsAddress() bool {
	return m == DeliveryMethodDelivery || m == DeliveryMethodCourier
}

// AllowsCash reports whether cash payment is accepted for the delivery method.
func (m DeliveryMethod) AllowsCash() bool {
	return m == DeliveryMethodDineIn || m == DeliveryMethodPickup
}
