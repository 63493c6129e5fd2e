package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storekit/checkout/internal/core/domain"
)

// RESTClient implements port.CheckoutClient against the commerce REST
// API. Transport failures wrap domain.ErrNetwork; remote-rejected data
// (4xx) wraps domain.ErrValidation.
type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewRESTClient(baseURL, apiKey string) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
}

func (c *RESTClient) SetLogger(logger *zap.Logger) {
	c.logger = logger
}

func (c *RESTClient) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

func (c *RESTClient) Create(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error) {
	var resp checkoutEnvelope
	err := c.do(ctx, http.MethodPost, "/checkouts", checkoutEnvelope{Checkout: toWire(checkout)}, &resp)
	if err != nil {
		return nil, err
	}
	return fromWire(resp.Checkout), nil
}

func (c *RESTClient) Update(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error) {
	var resp checkoutEnvelope
	path := fmt.Sprintf("/checkouts/%s", checkout.ID)
	err := c.do(ctx, http.MethodPut, path, checkoutEnvelope{Checkout: toWire(checkout)}, &resp)
	if err != nil {
		return nil, err
	}
	return fromWire(resp.Checkout), nil
}

func (c *RESTClient) GetShippingRates(ctx context.Context, checkout *domain.Checkout) ([]domain.ShippingRate, error) {
	var resp struct {
		ShippingRates []wireShippingRate `json:"shipping_rates"`
	}
	path := fmt.Sprintf("/checkouts/%s/shipping_rates", checkout.ID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	rates := make([]domain.ShippingRate, 0, len(resp.ShippingRates))
	for _, r := range resp.ShippingRates {
		rates = append(rates, domain.ShippingRate{ID: r.ID, Title: r.Title, Price: r.Price})
	}
	return rates, nil
}

func (c *RESTClient) Complete(ctx context.Context, checkout *domain.Checkout, paymentToken string) (*domain.Checkout, error) {
	body := struct {
		PaymentToken string `json:"payment_token,omitempty"`
	}{PaymentToken: paymentToken}

	var resp checkoutEnvelope
	path := fmt.Sprintf("/checkouts/%s/complete", checkout.ID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return fromWire(resp.Checkout), nil
}

func (c *RESTClient) Expire(ctx context.Context, checkout *domain.Checkout) error {
	path := fmt.Sprintf("/checkouts/%s/expire", checkout.ID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *RESTClient) ResolveCartToken(ctx context.Context, token string) (*domain.Checkout, error) {
	var resp checkoutEnvelope
	path := fmt.Sprintf("/cart_tokens/%s/checkout", token)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return fromWire(resp.Checkout), nil
}

func (c *RESTClient) GetShop(ctx context.Context) (*domain.Shop, error) {
	var resp struct {
		Shop wireShop `json:"shop"`
	}
	if err := c.do(ctx, http.MethodGet, "/shop", nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Shop{
		Name:        resp.Shop.Name,
		Domain:      resp.Shop.Domain,
		Currency:    resp.Shop.Currency,
		MoneyFormat: resp.Shop.MoneyFormat,
		CountryCode: resp.Shop.CountryCode,
	}, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("commerce api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 400 {
		return c.apiError(method, path, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrNetwork, method, path, err)
	}
	return nil
}

func (c *RESTClient) apiError(method, path string, resp *http.Response) error {
	var remote struct {
		Errors json.RawMessage `json:"errors"`
	}
	detail := ""
	if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil && len(remote.Errors) > 0 {
		detail = ": " + string(remote.Errors)
	}

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %s %s: status %d%s", domain.ErrNetwork, method, path, resp.StatusCode, detail)
	}
	return fmt.Errorf("%w: %s %s: status %d%s", domain.ErrValidation, method, path, resp.StatusCode, detail)
}
