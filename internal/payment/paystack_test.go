package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "sk_test_123")
}

func TestVerifySuccess(t *testing.T) {
	t.Parallel()
	c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/transaction/verify/T%2F1" {
			t.Errorf("path = %s", r.URL.EscapedPath())
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"reference":"T/1","status":"success","amount":2550,"currency":"GHS",
			"paid_at":"2026-05-14T09:30:00Z","customer":{"email":"ama@example.com"}}}`))
	})

	tx, err := c.Verify(context.Background(), "T/1")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Status != StatusSuccess || tx.Amount != 2550 || tx.Currency != "GHS" || tx.CustomerEmail != "ama@example.com" {
		t.Fatalf("tx = %+v", tx)
	}
	if err := CheckPaid(tx, decimal.RequireFromString("25.50"), "GHS"); err != nil {
		t.Fatalf("CheckPaid: %v", err)
	}
}

func TestVerifyErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		code int
		body string
		want error
	}{
		{"not found", http.StatusNotFound, `{"status":false,"message":"Transaction reference not found"}`, ErrUnknownPayment},
		{"server error", http.StatusBadGateway, ``, ErrUnavailable},
		{"status false", http.StatusOK, `{"status":false,"message":"Invalid key"}`, ErrUnknownPayment},
		{"garbage", http.StatusOK, `<html>`, ErrUnavailable},
		{"bad request", http.StatusBadRequest, `{"status":false,"message":"Transaction reference not found"}`, ErrUnknownPayment},
		{"unprocessable", http.StatusUnprocessableEntity, `{"status":false,"message":"Invalid reference"}`, ErrUnknownPayment},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			})
			if _, err := c.Verify(context.Background(), "T1"); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestVerifyUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	if _, err := NewClient(url, "k").Verify(context.Background(), "T1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckPaid(t *testing.T) {
	t.Parallel()
	amount := decimal.RequireFromString("25.50")
	ok := &Transaction{Status: StatusSuccess, Amount: 2550, Currency: "ghs"}
	if err := CheckPaid(ok, amount, "GHS"); err != nil {
		t.Fatalf("currency compare must ignore case: %v", err)
	}
	if err := CheckPaid(&Transaction{Status: "failed", Amount: 2550, Currency: "GHS"}, amount, "GHS"); !errors.Is(err, ErrNotPaid) {
		t.Fatalf("failed: %v", err)
	}
	if err := CheckPaid(&Transaction{Status: StatusSuccess, Amount: 2549, Currency: "GHS"}, amount, "GHS"); !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("short by one pesewa: %v", err)
	}
	if err := CheckPaid(&Transaction{Status: StatusSuccess, Amount: 2550, Currency: "USD"}, amount, "GHS"); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("currency: %v", err)
	}
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()
	cases := map[string]int64{"25.50": 2550, "0.10": 10, "100": 10000, "19.999": 2000, "0": 0}
	for in, want := range cases {
		if got := MinorUnits(decimal.RequireFromString(in)); got != want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", in, got, want)
		}
	}
}

func TestVerifyRejectedKeyIsNotAnUnknownPayment(t *testing.T) {
	t.Parallel()
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
		})
		_, err := c.Verify(context.Background(), "T1")
		if err == nil || errors.Is(err, ErrUnknownPayment) {
			t.Fatalf("%d: err = %v", code, err)
		}
	}
}
