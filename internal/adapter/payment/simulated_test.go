package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storekit/checkout/internal/core/domain"
	"github.com/storekit/checkout/internal/port"
)

func drain(t *testing.T, events <-chan port.AuthorizationEvent) []port.AuthorizationEvent {
	t.Helper()
	var out []port.AuthorizationEvent
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func TestPresent_ApproveEmitsResultThenDismissal(t *testing.T) {
	sim := &Simulated{Approve: true, Token: "tok-sim"}

	events, err := sim.Present(context.Background(), domain.PaymentRequest{})
	require.NoError(t, err)

	got := drain(t, events)
	require.Len(t, got, 2)

	require.Equal(t, port.AuthorizationResolved, got[0].Kind)
	require.True(t, got[0].Result.Approved())
	require.Equal(t, "tok-sim", got[0].Result.Token)

	require.Equal(t, port.AuthorizationDismissed, got[1].Kind)
}

func TestPresent_CancelEmitsCancelledResult(t *testing.T) {
	sim := &Simulated{Approve: false}

	events, err := sim.Present(context.Background(), domain.PaymentRequest{})
	require.NoError(t, err)

	got := drain(t, events)
	require.Len(t, got, 2)
	require.Equal(t, domain.AuthorizationCancelled, got[0].Result.Status)
	require.Equal(t, port.AuthorizationDismissed, got[1].Kind)
}

func TestPresent_AddressChangePrecedesResult(t *testing.T) {
	sim := &Simulated{
		Approve: true,
		Address: &domain.Address{City: "Toronto", Country: "CA"},
	}

	events, err := sim.Present(context.Background(), domain.PaymentRequest{})
	require.NoError(t, err)

	got := drain(t, events)
	require.Len(t, got, 3)
	require.Equal(t, port.AuthorizationAddressChanged, got[0].Kind)
	require.Equal(t, "Toronto", got[0].Address.City)
	require.Equal(t, port.AuthorizationResolved, got[1].Kind)
	require.Equal(t, port.AuthorizationDismissed, got[2].Kind)
}

func TestPresent_GeneratesTokenWhenEmpty(t *testing.T) {
	sim := &Simulated{Approve: true}

	events, err := sim.Present(context.Background(), domain.PaymentRequest{})
	require.NoError(t, err)

	got := drain(t, events)
	require.NotEmpty(t, got[0].Result.Token)
}

func TestStaticCapability(t *testing.T) {
	c := StaticCapability{Payments: true, Cards: false}
	require.True(t, c.CanMakePayments())
	require.False(t, c.HasRegisteredCards())
}
