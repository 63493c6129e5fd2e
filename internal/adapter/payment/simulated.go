// Package payment provides wallet-side adapters: a scriptable simulated
// authorizer for demos and example servers, and a static capability
// reader. Real integrations implement port.PaymentAuthorizer against
// the platform payment UI.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storekit/checkout/internal/core/domain"
	"github.com/storekit/checkout/internal/port"
)

// Simulated presents no UI; it emits a scripted event sequence on a
// fresh channel per Present call: an optional address change, exactly
// one authorization result, then a dismissal, then closes the stream.
type Simulated struct {
	// Approve controls the single authorization result.
	Approve bool

	// Token is the payment token on approval. A random one is generated
	// when empty.
	Token string

	// Address, when set, is emitted as an address change before the
	// result.
	Address *domain.Address

	// Delay is inserted before each event to mimic a user interacting
	// with the payment sheet.
	Delay time.Duration
}

func (s *Simulated) Present(ctx context.Context, req domain.PaymentRequest) (<-chan port.AuthorizationEvent, error) {
	events := make(chan port.AuthorizationEvent, 3)

	go func() {
		defer close(events)

		if s.Address != nil {
			if !s.emit(ctx, events, port.AuthorizationEvent{
				Kind:    port.AuthorizationAddressChanged,
				Address: s.Address,
			}) {
				return
			}
		}

		result := &domain.AuthorizationResult{Status: domain.AuthorizationCancelled}
		if s.Approve {
			token := s.Token
			if token == "" {
				token = uuid.NewString()
			}
			result = &domain.AuthorizationResult{Status: domain.AuthorizationApproved, Token: token}
		}
		if !s.emit(ctx, events, port.AuthorizationEvent{
			Kind:   port.AuthorizationResolved,
			Result: result,
		}) {
			return
		}

		s.emit(ctx, events, port.AuthorizationEvent{Kind: port.AuthorizationDismissed})
	}()

	return events, nil
}

func (s *Simulated) emit(ctx context.Context, events chan<- port.AuthorizationEvent, ev port.AuthorizationEvent) bool {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return false
		}
	}

	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// StaticCapability reports fixed wallet capability, for configuration
// driven wiring and tests.
type StaticCapability struct {
	Payments bool
	Cards    bool
}

func (c StaticCapability) CanMakePayments() bool    { return c.Payments }
func (c StaticCapability) HasRegisteredCards() bool { return c.Cards }
