// Package payment verifies checkout payments with Paystack before an order is
// written.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUnavailable      = errors.New("payment gateway unavailable")
	ErrUnknownPayment   = errors.New("payment reference not found")
	ErrNotPaid          = errors.New("payment not successful")
	ErrAmountMismatch   = errors.New("paid amount does not match the cart")
	ErrCurrencyMismatch = errors.New("paid currency does not match the cart")
)

const StatusSuccess = "success"

type Transaction struct {
	Reference string
	Status    string
	// minor units (pesewas)
	Amount        int64
	Currency      string
	CustomerEmail string
	PaidAt        time.Time
}

type Verifier interface {
	Verify(ctx context.Context, reference string) (*Transaction, error)
}

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	SecretKey string
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SecretKey: secretKey,
	}
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string    `json:"reference"`
		Status    string    `json:"status"`
		Amount    int64     `json:"amount"`
		Currency  string    `json:"currency"`
		PaidAt    time.Time `json:"paid_at"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// Verify asks the gateway for the transaction behind reference.
func (c *Client) Verify(ctx context.Context, reference string) (*Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, url.PathEscape(reference)), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrUnknownPayment
	case res.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, res.Status)
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusForbidden:
		// our key was refused, the customer's payment says nothing here
		return nil, fmt.Errorf("verify %s: %s", reference, res.Status)
	}

	var body verifyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("verify %s: %s", reference, res.Status)
		}
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	// paystack rejects unknown references with a 4xx and status false
	if !body.Status || res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPayment, body.Message)
	}
	return &Transaction{
		Reference:     body.Data.Reference,
		Status:        body.Data.Status,
		Amount:        body.Data.Amount,
		Currency:      body.Data.Currency,
		CustomerEmail: body.Data.Customer.Email,
		PaidAt:        body.Data.PaidAt,
	}, nil
}

// MinorUnits converts a two-decimal amount to pesewas.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CheckPaid reports whether tx settles amount in currency.
func CheckPaid(tx *Transaction, amount decimal.Decimal, currency string) error {
	if tx.Status != StatusSuccess {
		return fmt.Errorf("%w: status %q", ErrNotPaid, tx.Status)
	}
	if !strings.EqualFold(tx.Currency, currency) {
		return fmt.Errorf("%w: %s != %s", ErrCurrencyMismatch, tx.Currency, currency)
	}
	if want := MinorUnits(amount); tx.Amount != want {
		return fmt.Errorf("%w: paid %d, expected %d", ErrAmountMismatch, tx.Amount, want)
	}
	return nil
}
