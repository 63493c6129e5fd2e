package port

import (
	"context"

	"github.com/storekit/checkout/internal/core/domain"
)

// CheckoutClient performs all remote operations against the commerce
// service. Implementations classify failures by wrapping domain.ErrNetwork
// or domain.ErrValidation so callers can use errors.Is.
type CheckoutClient interface {
	// Create creates the checkout on the remote service and returns it
	// with its remote-assigned identifier and authoritative totals.
	Create(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error)

	// Update pushes local changes (address, selected rate) and returns
	// the refreshed resource.
	Update(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error)

	// GetShippingRates fetches rate options for the current address.
	GetShippingRates(ctx context.Context, checkout *domain.Checkout) ([]domain.ShippingRate, error)

	// Complete finalizes the checkout with an opaque payment token.
	Complete(ctx context.Context, checkout *domain.Checkout, paymentToken string) (*domain.Checkout, error)

	// Expire releases the inventory hold of an abandoned checkout.
	// Best-effort: failures are non-fatal to the caller's flow.
	Expire(ctx context.Context, checkout *domain.Checkout) error

	// ResolveCartToken resolves a storefront cart token to a checkout.
	ResolveCartToken(ctx context.Context, token string) (*domain.Checkout, error)

	// GetShop fetches shop metadata.
	GetShop(ctx context.Context) (*domain.Shop, error)
}
