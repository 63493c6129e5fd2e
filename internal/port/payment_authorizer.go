package port

import (
	"context"

	"github.com/storekit/checkout/internal/core/domain"
)

type AuthorizationEventKind int

const (
	// AuthorizationAddressChanged reports a new shipping address picked
	// inside the payment UI.
	AuthorizationAddressChanged AuthorizationEventKind = iota

	// AuthorizationResolved carries the single authorization result of
	// the attempt, approved or cancelled.
	AuthorizationResolved

	// AuthorizationDismissed reports that the payment UI is gone.
	// It is always the last event on the stream.
	AuthorizationDismissed
)

type AuthorizationEvent struct {
	Kind    AuthorizationEventKind
	Address *domain.Address
	Result  *domain.AuthorizationResult
}

// PaymentAuthorizer wraps the platform payment-authorization UI.
// Present shows the UI for one payment request and returns a stream of
// events: zero or more address changes, then exactly one resolved event,
// then a dismissed event, after which the channel is closed and the
// authorizer instance is inert. Authorizers are not reused across
// attempts.
type PaymentAuthorizer interface {
	Present(ctx context.Context, req domain.PaymentRequest) (<-chan AuthorizationEvent, error)
}
