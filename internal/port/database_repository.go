package port

import (
	"context"

	"github.com/storekit/checkout/internal/core/domain"
)

type DatabaseRepository interface {
	// CreateAttempt persists a new checkout attempt record
	CreateAttempt(ctx context.Context, attempt domain.Attempt) error

	// FinishAttempt records the terminal status of an attempt
	FinishAttempt(ctx context.Context, attemptID, checkoutID string, status domain.CompletionStatus) error
}
