package port

import (
	"context"

	"github.com/storekit/checkout/internal/core/domain"
)

type CacheRepository interface {
	// GetShop returns cached shop metadata, nil on a miss
	GetShop(ctx context.Context) (*domain.Shop, error)

	// SetShop stores shop metadata for later GetShop calls
	SetShop(ctx context.Context, shop *domain.Shop) error

	// SetOnce sets a guard key, returns false if it was already set
	SetOnce(ctx context.Context, key string) (bool, error)
}
