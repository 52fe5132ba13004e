package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Setting is a singleton row holding gateway credentials, company info and
// general fee configuration.
type Setting struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	PaymentGateways PaymentGateways `json:"payment_gateways" gorm:"type:jsonb"`
	TransactionMode string          `json:"transaction_mode" gorm:"default:'test'"` // test, live
	CompanyInfo     CompanyInfo     `json:"company_info" gorm:"type:jsonb"`
	GeneralSettings GeneralSettings `json:"general_settings" gorm:"type:jsonb"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

const (
	TransactionModeTest = "test"
	TransactionModeLive = "live"
)

type PaymentGateway struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Enabled       bool   `json:"enabled"`
	PublicKey     string `json:"public_key"`
	PublicTestKey string `json:"public_test_key"`
	SecretKey     string `json:"secret_key"`
	SecretTestKey string `json:"secret_test_key"`
}

type PaymentGateways []PaymentGateway

type CompanyInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Address string `json:"address"`
}

type GeneralSettings struct {
	Currency           string          `json:"currency"`
	TaxRate            float64         `json:"tax_rate"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	MinimumOrderAmount decimal.Decimal `json:"minimum_order_amount"`
}

// Metadata is a free-form JSON column on payments.
type Metadata map[string]interface{}

func (g PaymentGateways) Value() (driver.Value, error) { return jsonValue(g) }
func (g *PaymentGateways) Scan(src interface{}) error  { return jsonScan(src, g) }

func (c CompanyInfo) Value() (driver.Value, error) { return jsonValue(c) }
func (c *CompanyInfo) Scan(src interface{}) error  { return jsonScan(src, c) }

func (s GeneralSettings) Value() (driver.Value, error) { return jsonValue(s) }
func (s *GeneralSettings) Scan(src interface{}) error  { return jsonScan(src, s) }

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return jsonValue(m)
}
func (m *Metadata) Scan(src interface{}) error { return jsonScan(src, m) }

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

var ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
var ErrGatewayDisabled = errors.New("payment gateway is disabled")

// Gateway returns the configuration for the given gateway id.
func (s *Setting) Gateway(id string) (*PaymentGateway, error) {
	for i := range s.PaymentGateways {
		if s.PaymentGateways[i].ID == id {
			return &s.PaymentGateways[i], nil
		}
	}
	return nil, ErrGatewayNotConfigured
}

// SecretKeyFor returns the secret key for the gateway in the currently
// configured transaction mode. A disabled gateway or a missing key is an error.
func (s *Setting) SecretKeyFor(id string) (string, error) {
	gw, err := s.Gateway(id)
	if err != nil {
		return "", err
	}
	if !gw.Enabled {
		return "", ErrGatewayDisabled
	}
	key := gw.SecretKey
	if s.TransactionMode == TransactionModeTest {
		key = gw.SecretTestKey
	}
	if key == "" {
		return "", fmt.Errorf("%s %s secret key: %w", id, s.TransactionMode, ErrGatewayNotConfigured)
	}
	return key, nil
}

// DefaultSetting is the configuration seeded on first boot: both gateways
// present but disabled, test mode, zero delivery fee.
func DefaultSetting() *Setting {
	return &Setting{
		PaymentGateways: PaymentGateways{
			{ID: PaymentGatewayPaystack, Name: "Paystack"},
			{ID: PaymentGatewayFlutterwave, Name: "Flutterwave"},
		},
		TransactionMode: TransactionModeTest,
		GeneralSettings: GeneralSettings{
			Currency:           "NGN",
			TaxRate:            7.5,
			DeliveryFee:        decimal.Zero,
			MinimumOrderAmount: decimal.Zero,
		},
	}
}

// Redacted returns a copy safe for unauthenticated clients: secret keys are
// stripped, public keys for the active mode are kept.
func (s *Setting) Redacted() *Setting {
	out := *s
	out.PaymentGateways = make(PaymentGateways, len(s.PaymentGateways))
	copy(out.PaymentGateways, s.PaymentGateways)
	for i := range out.PaymentGateways {
		out.PaymentGateways[i].SecretKey = ""
		out.PaymentGateways[i].SecretTestKey = ""
	}
	return &out
}
