package service

import (
	"go.uber.org/zap"

	"github.com/storekit/checkout/internal/core/domain"
)

// Notifier is the set of observer callbacks invoked synchronously at
// defined transition points of a checkout attempt. Every field is
// optional; a nil callback is a no-op.
type Notifier struct {
	// CreateFailed fires when the remote create/update (or cart-token
	// resolution) fails. No payment UI is shown afterwards.
	CreateFailed func(err error)

	// WalletUnavailable fires when a wallet start is requested while
	// wallet payments cannot be made on this device/configuration.
	WalletUnavailable func()

	// UpdateFailed fires when pushing an address change fails.
	UpdateFailed func(checkout *domain.Checkout, err error)

	// ShippingRatesFailed fires when rate retrieval fails. Non-fatal:
	// the payment UI stays up.
	ShippingRatesFailed func(checkout *domain.Checkout, err error)

	// CompleteFailed fires when completion is rejected after the user
	// approved payment. Always followed by Completed with a failure
	// status.
	CompleteFailed func(checkout *domain.Checkout, err error)

	// Completed fires once per wallet attempt that reached completion,
	// success or failure.
	Completed func(checkout *domain.Checkout, status domain.CompletionStatus)

	// AuthorizationDismissed fires when the payment UI is gone, whether
	// the user approved or cancelled.
	AuthorizationDismissed func(status domain.CompletionStatus, checkout *domain.Checkout)

	// WillUseWebCheckout fires before the web launcher is invoked.
	WillUseWebCheckout func()

	// WillUseWalletCheckout fires after the remote resource exists and
	// before the payment UI is presented.
	WillUseWalletCheckout func()
}

func (s *CheckoutService) notifyCreateFailed(err error) {
	s.logger.Warn("failed to create checkout", zap.Error(err))
	if s.notifier.CreateFailed != nil {
		s.notifier.CreateFailed(err)
	}
}

func (s *CheckoutService) notifyWalletUnavailable() {
	s.logger.Warn("failed to start wallet process")
	if s.notifier.WalletUnavailable != nil {
		s.notifier.WalletUnavailable()
	}
}

func (s *CheckoutService) notifyUpdateFailed(checkout *domain.Checkout, err error) {
	s.logger.Warn("failed to update checkout", zap.String("checkout_id", checkout.ID), zap.Error(err))
	if s.notifier.UpdateFailed != nil {
		s.notifier.UpdateFailed(checkout, err)
	}
}

func (s *CheckoutService) notifyShippingRatesFailed(checkout *domain.Checkout, err error) {
	s.logger.Warn("failed to get shipping rates", zap.String("checkout_id", checkout.ID), zap.Error(err))
	if s.notifier.ShippingRatesFailed != nil {
		s.notifier.ShippingRatesFailed(checkout, err)
	}
}

func (s *CheckoutService) notifyCompleteFailed(checkout *domain.Checkout, err error) {
	s.logger.Warn("failed to complete checkout", zap.String("checkout_id", checkout.ID), zap.Error(err))
	if s.notifier.CompleteFailed != nil {
		s.notifier.CompleteFailed(checkout, err)
	}
}

func (s *CheckoutService) notifyCompleted(checkout *domain.Checkout, status domain.CompletionStatus) {
	s.logger.Info("did complete checkout", zap.String("checkout_id", checkout.ID), zap.String("status", string(status)))
	if s.notifier.Completed != nil {
		s.notifier.Completed(checkout, status)
	}
}

func (s *CheckoutService) notifyAuthorizationDismissed(status domain.CompletionStatus, checkout *domain.Checkout) {
	s.logger.Info("did dismiss authorization", zap.String("checkout_id", checkout.ID), zap.String("status", string(status)))
	if s.notifier.AuthorizationDismissed != nil {
		s.notifier.AuthorizationDismissed(status, checkout)
	}
}

func (s *CheckoutService) notifyWillUseWebCheckout() {
	s.logger.Info("will checkout via web")
	if s.notifier.WillUseWebCheckout != nil {
		s.notifier.WillUseWebCheckout()
	}
}

func (s *CheckoutService) notifyWillUseWalletCheckout() {
	s.logger.Info("will checkout via wallet")
	if s.notifier.WillUseWalletCheckout != nil {
		s.notifier.WillUseWalletCheckout()
	}
}
