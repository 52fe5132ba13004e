// Package gateway holds HTTP clients for the supported third-party payment
// processors. Each client owns its provider's amount-unit convention and
// reports amounts normalized to major currency units.
package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// VerifyResult is the outcome of a transaction-lookup call, with Amount
// converted to major currency units regardless of how the provider reports it.
type VerifyResult struct {
	Succeeded bool
	Reference string
	Amount    decimal.Decimal
	Currency  string
}

// InitResult is the outcome of initiating a checkout with a provider.
type InitResult struct {
	PaymentURL string
	Reference  string
}

// Verifier looks up a transaction reference against the provider's API.
type Verifier interface {
	VerifyTransaction(ctx context.Context, secretKey, reference string) (*VerifyResult, error)
}
