package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// FlutterwaveClient talks to the Flutterwave v3 API. Unlike Paystack,
// Flutterwave reports amounts in major currency units.
type FlutterwaveClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewFlutterwaveClient(baseURL string) *FlutterwaveClient {
	return &FlutterwaveClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type flutterwaveVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string  `json:"status"`
		TxRef    string  `json:"tx_ref"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

type flutterwavePaymentRequest struct {
	TxRef    string `json:"tx_ref"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Customer struct {
		Email string `json:"email"`
	} `json:"customer"`
}

type flutterwavePaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

func (c *FlutterwaveClient) VerifyTransaction(ctx context.Context, secretKey, reference string) (*VerifyResult, error) {
	endpoint := fmt.Sprintf("%s/v3/transactions/%s/verify", c.BaseURL, url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed flutterwaveVerifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flutterwave verify returned %d: %s", resp.StatusCode, parsed.Message)
	}

	return &VerifyResult{
		Succeeded: parsed.Status == "success" && parsed.Data.Status == "successful",
		Reference: parsed.Data.TxRef,
		Amount:    decimal.NewFromFloat(parsed.Data.Amount),
		Currency:  parsed.Data.Currency,
	}, nil
}

// CreatePaymentLink starts a Flutterwave checkout and returns the hosted
// payment link.
func (c *FlutterwaveClient) CreatePaymentLink(ctx context.Context, secretKey, txRef, email, currency string, amount decimal.Decimal) (*InitResult, error) {
	reqBody := flutterwavePaymentRequest{
		TxRef:    txRef,
		Amount:   amount.StringFixed(2),
		Currency: currency,
	}
	reqBody.Customer.Email = email

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/v3/payments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed flutterwavePaymentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || parsed.Status != "success" {
		return nil, fmt.Errorf("flutterwave payment link failed: %s", parsed.Message)
	}

	return &InitResult{
		PaymentURL: parsed.Data.Link,
		Reference:  txRef,
	}, nil
}
