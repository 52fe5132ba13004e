package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	OrderID        uint             `json:"order_id" gorm:"uniqueIndex;not null"`
	Order          *Order           `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Code           string           `json:"code" gorm:"column:payment_code;unique;not null"`
	Amount         decimal.Decimal  `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod  string           `json:"payment_method" gorm:"not null"` // card, paystack, flutterwave, cash
	Status         PaymentRecStatus `json:"status" gorm:"default:'pending'"`
	Reference      string           `json:"reference"`
	Metadata       Metadata         `json:"metadata" gorm:"type:jsonb"`
	VerifiedAt     *time.Time       `json:"verified_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `json:"-" gorm:"index"`
}

type PaymentRecStatus string

const (
	PaymentRecPending    PaymentRecStatus = "pending"
	PaymentRecSuccessful PaymentRecStatus = "successful"
	PaymentRecFailed     PaymentRecStatus = "failed"
	PaymentRecRefunded   PaymentRecStatus = "refunded"
)

const (
	PaymentGatewayPaystack    = "paystack"
	PaymentGatewayFlutterwave = "flutterwave"
	PaymentGatewayCash        = "cash"
)

func IsValidPaymentRecStatus(status string) bool {
	switch PaymentRecStatus(status) {
	case PaymentRecPending, PaymentRecSuccessful, PaymentRecFailed, PaymentRecRefunded:
		return true
	}
	return false
}

func IsValidGateway(gateway string) bool {
	switch gateway {
	case PaymentGatewayPaystack, PaymentGatewayFlutterwave, PaymentGatewayCash:
		return true
	}
	return false
}

// RecordStatusFor maps an order's payment status onto the payment record's
// status, keeping the two synchronized after a transition.
func RecordStatusFor(status PaymentStatus) PaymentRecStatus {
	switch status {
	case PaymentPaid:
		return PaymentRecSuccessful
	case PaymentFailed:
		return PaymentRecFailed
	case PaymentRefunded:
		return PaymentRecRefunded
	default:
		return PaymentRecPending
	}
}
