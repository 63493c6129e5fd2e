package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/storekit/checkout/internal/core/domain"
)

func TestCreate_MapsResponse(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req checkoutEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Checkout.LineItems, 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"checkout": {
			"id": "chk-77",
			"token": "tok-77",
			"line_items": [{"variant_id": "v1", "quantity": 2, "price": "19.99"}],
			"currency": "USD",
			"subtotal_price": "39.98",
			"total_tax": "3.20",
			"total_price": "43.18",
			"payment_due": "43.18",
			"web_url": "https://shop.example.com/checkouts/chk-77",
			"status": "open"
		}}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "secret")
	created, err := c.Create(context.Background(), &domain.Checkout{
		Currency:  "USD",
		LineItems: []domain.LineItem{{VariantID: "v1", Quantity: 2, Price: decimal.RequireFromString("19.99")}},
	})
	require.NoError(t, err)

	require.Equal(t, "POST /checkouts", gotPath)
	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "chk-77", created.ID)
	require.Equal(t, "https://shop.example.com/checkouts/chk-77", created.WebURL)
	require.True(t, created.TotalPrice.Equal(decimal.RequireFromString("43.18")))
	require.Equal(t, domain.CheckoutStatusOpen, created.Status)
}

func TestCreate_ValidationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors": {"line_items": ["can't be blank"]}}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	_, err := c.Create(context.Background(), &domain.Checkout{})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.NotErrorIs(t, err, domain.ErrNetwork)
}

func TestCreate_ServerErrorIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	_, err := c.Create(context.Background(), &domain.Checkout{})
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestCreate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewRESTClient(srv.URL, "")
	_, err := c.Create(context.Background(), &domain.Checkout{})
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestComplete_SendsPaymentToken(t *testing.T) {
	var gotPath string
	var gotBody struct {
		PaymentToken string `json:"payment_token"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"checkout": {"id": "chk-1", "status": "complete"}}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	completed, err := c.Complete(context.Background(), &domain.Checkout{ID: "chk-1"}, "opaque-token")
	require.NoError(t, err)

	require.Equal(t, "POST /checkouts/chk-1/complete", gotPath)
	require.Equal(t, "opaque-token", gotBody.PaymentToken)
	require.Equal(t, domain.CheckoutStatusComplete, completed.Status)
}

func TestExpire(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	require.NoError(t, c.Expire(context.Background(), &domain.Checkout{ID: "chk-1"}))
	require.Equal(t, "POST /checkouts/chk-1/expire", gotPath)
}

func TestGetShippingRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkouts/chk-1/shipping_rates", r.URL.Path)
		w.Write([]byte(`{"shipping_rates": [
			{"id": "rate-1", "title": "Standard", "price": "5.00"},
			{"id": "rate-2", "title": "Express", "price": "15.00"}
		]}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	rates, err := c.GetShippingRates(context.Background(), &domain.Checkout{ID: "chk-1"})
	require.NoError(t, err)

	require.Len(t, rates, 2)
	require.Equal(t, "Express", rates[1].Title)
	require.True(t, rates[1].Price.Equal(decimal.NewFromInt(15)))
}

func TestResolveCartToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart_tokens/cart-9/checkout", r.URL.Path)
		w.Write([]byte(`{"checkout": {"id": "chk-9", "web_url": "https://shop.example.com/checkouts/chk-9"}}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	checkout, err := c.ResolveCartToken(context.Background(), "cart-9")
	require.NoError(t, err)
	require.Equal(t, "chk-9", checkout.ID)
}

func TestGetShop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/shop", r.URL.Path)
		w.Write([]byte(`{"shop": {"name": "Snow Devil", "currency": "CAD", "domain": "snowdevil.example.com"}}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "")
	shop, err := c.GetShop(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Snow Devil", shop.Name)
	require.Equal(t, "CAD", shop.Currency)
}
