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

// PaystackClient talks to the Paystack API. Paystack reports amounts in kobo
// (minor units), so results are shifted down two decimal places.
type PaystackClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewPaystackClient(baseURL string) *PaystackClient {
	return &PaystackClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

type paystackInitRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (c *PaystackClient) VerifyTransaction(ctx context.Context, secretKey, reference string) (*VerifyResult, error) {
	endpoint := fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, url.PathEscape(reference))

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

	var parsed paystackVerifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack verify returned %d: %s", resp.StatusCode, parsed.Message)
	}

	return &VerifyResult{
		Succeeded: parsed.Status && parsed.Data.Status == "success",
		Reference: parsed.Data.Reference,
		Amount:    decimal.NewFromInt(parsed.Data.Amount).Shift(-2),
		Currency:  parsed.Data.Currency,
	}, nil
}

// InitializeTransaction starts a Paystack checkout and returns the hosted
// payment page URL. Amount is taken in major units and sent as kobo.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, secretKey, email string, amount decimal.Decimal) (*InitResult, error) {
	payload, err := json.Marshal(paystackInitRequest{
		Email:  email,
		Amount: amount.Shift(2).IntPart(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/transaction/initialize"
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

	var parsed paystackInitResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !parsed.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", parsed.Message)
	}

	return &InitResult{
		PaymentURL: parsed.Data.AuthorizationURL,
		Reference:  parsed.Data.Reference,
	}, nil
}
