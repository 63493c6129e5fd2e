package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storekit/checkout/internal/core/domain"
	"github.com/storekit/checkout/internal/port"
)

var (
	ErrCheckoutInProgress = errors.New("another checkout attempt is in progress")
	ErrEmptyCheckout      = errors.New("checkout has no line items")
	ErrNoWebURL           = errors.New("checkout has no web checkout url")
	ErrInvalidNetwork     = errors.New("unsupported payment network")
	ErrNoMerchantID       = errors.New("merchant id is not configured")
)

// Config is the merchant-side configuration of the orchestrator.
type Config struct {
	// MerchantID identifies the merchant to the wallet payment system.
	// Wallet checkout is unavailable while it is unset.
	MerchantID string

	// SupportedNetworks defaults to domain.AllowedNetworks and is
	// validated against it.
	SupportedNetworks []domain.PaymentNetwork

	// Capability defaults to CapabilityThreeDSecure.
	Capability domain.MerchantCapability

	// CartTokenPath selects the completion path taken by
	// StartCheckoutWithCartToken. Defaults to PathWallet.
	CartTokenPath domain.CheckoutPath

	// PaymentRequestFunc overrides the default payment request built for
	// the wallet path.
	PaymentRequestFunc func(*domain.Checkout) domain.PaymentRequest
}

func (c *Config) normalize() error {
	if len(c.SupportedNetworks) == 0 {
		c.SupportedNetworks = domain.AllowedNetworks
	}
	for _, n := range c.SupportedNetworks {
		if !n.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidNetwork, n)
		}
	}
	if c.Capability == "" {
		c.Capability = domain.CapabilityThreeDSecure
	}
	switch c.CartTokenPath {
	case "":
		c.CartTokenPath = domain.PathWallet
	case domain.PathWallet, domain.PathWeb:
	default:
		return fmt.Errorf("unknown cart token path %q", c.CartTokenPath)
	}
	return nil
}

// CheckoutService orchestrates one checkout attempt at a time: it owns
// the in-progress checkout resource, sequences the remote client, the
// payment-authorization UI and the web launcher, and reports every
// outcome through the Notifier.
//
// Start* calls are synchronous and run the attempt to its terminal
// state; callers that need a non-blocking start invoke them from their
// own goroutine. A Start* call while a prior attempt is non-terminal is
// rejected with ErrCheckoutInProgress.
type CheckoutService struct {
	client     port.CheckoutClient
	authorizer port.PaymentAuthorizer
	launcher   port.WebCheckoutLauncher
	wallet     port.WalletCapability
	cfg        Config

	notifier Notifier
	logger   *zap.Logger
	cache    port.CacheRepository
	journal  port.DatabaseRepository

	mu         sync.Mutex
	inProgress bool

	shopMu sync.Mutex
	shop   *domain.Shop
}

func NewCheckoutService(
	client port.CheckoutClient,
	authorizer port.PaymentAuthorizer,
	launcher port.WebCheckoutLauncher,
	wallet port.WalletCapability,
	cfg Config,
) (*CheckoutService, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &CheckoutService{
		client:     client,
		authorizer: authorizer,
		launcher:   launcher,
		wallet:     wallet,
		cfg:        cfg,
		logger:     zap.NewNop(),
	}, nil
}

// SetNotifier registers the outcome callbacks. All callbacks are
// optional; a nil field is a no-op, never an error.
func (s *CheckoutService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *CheckoutService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// SetCache enables external shop-metadata caching and the cross-process
// expire-once guard. Optional.
func (s *CheckoutService) SetCache(cache port.CacheRepository) {
	s.cache = cache
}

// SetJournal enables best-effort attempt journaling. Optional; journal
// failures are logged and never fail an attempt.
func (s *CheckoutService) SetJournal(journal port.DatabaseRepository) {
	s.journal = journal
}

// SetShop assigns shop metadata ahead of time, preventing the network
// call LoadShop would otherwise make.
func (s *CheckoutService) SetShop(shop *domain.Shop) {
	s.shopMu.Lock()
	defer s.shopMu.Unlock()
	s.shop = shop
}

// IsWalletAvailable reports whether the wallet path can be started:
// the device supports wallet payments, at least one card is registered
// and a merchant ID is configured. It never performs a network call.
func (s *CheckoutService) IsWalletAvailable() bool {
	return s.cfg.MerchantID != "" &&
		s.wallet != nil &&
		s.wallet.CanMakePayments() &&
		s.wallet.HasRegisteredCards()
}

// LoadShop fetches shop metadata once. Repeated calls return the cached
// value without a network call.
func (s *CheckoutService) LoadShop(ctx context.Context) (*domain.Shop, error) {
	s.shopMu.Lock()
	defer s.shopMu.Unlock()

	if s.shop != nil {
		return s.shop, nil
	}

	if s.cache != nil {
		shop, err := s.cache.GetShop(ctx)
		if err != nil {
			s.logger.Warn("shop cache read failed", zap.Error(err))
		} else if shop != nil {
			s.shop = shop
			return shop, nil
		}
	}

	shop, err := s.client.GetShop(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shop: %w", err)
	}
	s.shop = shop

	if s.cache != nil {
		if err := s.cache.SetShop(ctx, shop); err != nil {
			s.logger.Warn("shop cache write failed", zap.Error(err))
		}
	}
	return shop, nil
}

// StartWalletCheckout creates or updates the checkout remotely, then
// drives the wallet-authorization flow to a terminal state.
func (s *CheckoutService) StartWalletCheckout(ctx context.Context, checkout *domain.Checkout) error {
	if checkout == nil || len(checkout.LineItems) == 0 {
		return ErrEmptyCheckout
	}
	if !s.IsWalletAvailable() {
		s.notifyWalletUnavailable()
		return domain.ErrWalletUnavailable
	}

	a, err := s.begin(ctx, domain.PathWallet, checkout)
	if err != nil {
		return err
	}
	defer s.finish(ctx, a)

	return s.runWallet(ctx, a)
}

// StartWebCheckout creates or updates the checkout remotely, then hands
// off to the web launcher. The orchestrator tracks nothing further for
// the web path.
func (s *CheckoutService) StartWebCheckout(ctx context.Context, checkout *domain.Checkout) error {
	if checkout == nil || (len(checkout.LineItems) == 0 && !checkout.Created()) {
		return ErrEmptyCheckout
	}

	a, err := s.begin(ctx, domain.PathWeb, checkout)
	if err != nil {
		return err
	}
	defer s.finish(ctx, a)

	return s.runWeb(ctx, a)
}

// StartCheckoutWithCartToken resolves a storefront cart token to a
// checkout and proceeds on the configured completion path.
func (s *CheckoutService) StartCheckoutWithCartToken(ctx context.Context, token string) error {
	s.mu.Lock()
	busy := s.inProgress
	s.mu.Unlock()
	if busy {
		return ErrCheckoutInProgress
	}

	if s.cfg.CartTokenPath == domain.PathWallet && !s.IsWalletAvailable() {
		s.notifyWalletUnavailable()
		return domain.ErrWalletUnavailable
	}

	checkout, err := s.client.ResolveCartToken(ctx, token)
	if err != nil {
		err = fmt.Errorf("resolve cart token %q: %w", token, err)
		s.notifyCreateFailed(err)
		return err
	}

	if s.cfg.CartTokenPath == domain.PathWeb {
		return s.StartWebCheckout(ctx, checkout)
	}
	return s.StartWalletCheckout(ctx, checkout)
}

func (s *CheckoutService) runWallet(ctx context.Context, a *attempt) error {
	a.state = stateCreating
	checkout, err := s.ensureRemote(ctx, a.checkout)
	if err != nil {
		a.terminate(domain.CompletionFailure, err)
		s.notifyCreateFailed(err)
		return err
	}
	a.checkout = checkout
	s.notifyWillUseWalletCheckout()

	a.state = stateAwaitingAuthorization
	events, err := s.authorizer.Present(ctx, s.paymentRequest(checkout))
	if err != nil {
		err = fmt.Errorf("%w: present: %v", domain.ErrWalletUnavailable, err)
		a.terminate(domain.CompletionFailure, err)
		s.notifyWalletUnavailable()
		return err
	}

	for ev := range events {
		switch ev.Kind {
		case port.AuthorizationAddressChanged:
			s.handleAddressChange(ctx, a, ev.Address)
		case port.AuthorizationResolved:
			s.handleAuthorization(ctx, a, ev.Result)
		case port.AuthorizationDismissed:
			s.handleDismissal(ctx, a)
		}
		if a.dismissed {
			break
		}
	}

	// A stream that ends without a dismissal event (adapter torn down,
	// context cancelled) is treated as a dismissal without approval.
	if !a.dismissed {
		s.handleDismissal(ctx, a)
	}
	return a.err
}

func (s *CheckoutService) runWeb(ctx context.Context, a *attempt) error {
	a.state = stateCreating
	checkout, err := s.ensureRemote(ctx, a.checkout)
	if err != nil {
		a.terminate(domain.CompletionFailure, err)
		s.notifyCreateFailed(err)
		return err
	}
	a.checkout = checkout

	if checkout.WebURL == "" {
		a.terminate(domain.CompletionFailure, ErrNoWebURL)
		s.notifyCreateFailed(ErrNoWebURL)
		return ErrNoWebURL
	}

	a.state = stateLaunchingWeb
	s.notifyWillUseWebCheckout()
	s.launcher.Launch(checkout.WebURL)

	// Responsibility ends at hand-off; the remote completes the
	// checkout out of band.
	a.terminate(domain.CompletionPending, nil)
	return nil
}

// handleAddressChange pushes the new address, discards stale rates and
// re-fetches rate options. Failures are reported and the attempt stays
// in AwaitingAuthorization: the user can still cancel or retry inside
// the payment UI.
func (s *CheckoutService) handleAddressChange(ctx context.Context, a *attempt, addr *domain.Address) {
	if a.state != stateAwaitingAuthorization || addr == nil {
		return
	}

	a.checkout.ShippingAddress = addr
	a.checkout.ShippingRate = nil
	a.checkout.ShippingRates = nil

	checkout, err := s.client.Update(ctx, a.checkout)
	if err != nil {
		s.notifyUpdateFailed(a.checkout, err)
		return
	}
	a.checkout = checkout

	rates, err := s.client.GetShippingRates(ctx, checkout)
	if err != nil {
		s.notifyShippingRatesFailed(checkout, err)
		return
	}
	a.checkout.ShippingRates = rates
}

func (s *CheckoutService) handleAuthorization(ctx context.Context, a *attempt, result *domain.AuthorizationResult) {
	if a.state != stateAwaitingAuthorization || result == nil {
		return
	}

	if !result.Approved() {
		// Terminal state is set on the dismissal event that follows.
		return
	}

	a.state = stateCompleting
	checkout, err := s.client.Complete(ctx, a.checkout, result.Token)
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrCompletion, err)
		a.terminate(domain.CompletionFailure, err)
		s.notifyCompleteFailed(a.checkout, err)
		s.notifyCompleted(a.checkout, domain.CompletionFailure)
		return
	}
	a.checkout = checkout
	a.terminate(domain.CompletionSuccess, nil)
	s.notifyCompleted(checkout, domain.CompletionSuccess)
}

// handleDismissal finalizes the attempt when the payment UI goes away.
// Dismissal without a prior approval cancels the attempt and expires
// the checkout, best-effort, to release the inventory hold.
func (s *CheckoutService) handleDismissal(ctx context.Context, a *attempt) {
	a.dismissed = true

	if a.state == stateTerminal {
		s.notifyAuthorizationDismissed(a.status, a.checkout)
		return
	}

	a.terminate(domain.CompletionCancelled, domain.ErrAuthorizationCancelled)
	s.notifyAuthorizationDismissed(domain.CompletionCancelled, a.checkout)
	s.expire(ctx, a.checkout)
}

// expire releases the inventory hold. A checkout is expired at most
// once; when a cache is configured the guard holds across processes.
// Failures are logged and never block the already-terminal flow.
func (s *CheckoutService) expire(ctx context.Context, checkout *domain.Checkout) {
	if !checkout.Created() {
		return
	}

	if s.cache != nil {
		ok, err := s.cache.SetOnce(ctx, "checkout:expired:"+checkout.ID)
		if err != nil {
			s.logger.Warn("expire guard failed", zap.String("checkout_id", checkout.ID), zap.Error(err))
		} else if !ok {
			return
		}
	}

	if err := s.client.Expire(ctx, checkout); err != nil {
		s.logger.Warn("checkout expiration failed",
			zap.String("checkout_id", checkout.ID),
			zap.Error(fmt.Errorf("%w: %v", domain.ErrExpiration, err)))
	}
}

func (s *CheckoutService) ensureRemote(ctx context.Context, checkout *domain.Checkout) (*domain.Checkout, error) {
	if checkout.Created() {
		updated, err := s.client.Update(ctx, checkout)
		if err != nil {
			return nil, fmt.Errorf("update checkout %s: %w", checkout.ID, err)
		}
		return updated, nil
	}
	created, err := s.client.Create(ctx, checkout)
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	return created, nil
}

func (s *CheckoutService) paymentRequest(checkout *domain.Checkout) domain.PaymentRequest {
	if s.cfg.PaymentRequestFunc != nil {
		return s.cfg.PaymentRequestFunc(checkout)
	}

	label := ""
	s.shopMu.Lock()
	if s.shop != nil {
		label = s.shop.Name
	}
	s.shopMu.Unlock()

	return domain.PaymentRequest{
		MerchantID:        s.cfg.MerchantID,
		Label:             label,
		CurrencyCode:      checkout.Currency,
		SupportedNetworks: s.cfg.SupportedNetworks,
		Capability:        s.cfg.Capability,
		Total:             checkout.PaymentDue,
	}
}

func (s *CheckoutService) begin(ctx context.Context, path domain.CheckoutPath, checkout *domain.Checkout) (*attempt, error) {
	s.mu.Lock()
	if s.inProgress {
		s.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	s.inProgress = true
	s.mu.Unlock()

	a := newAttempt(uuid.NewString(), path, checkout)

	if s.journal != nil {
		if err := s.journal.CreateAttempt(ctx, a.record()); err != nil {
			s.logger.Warn("attempt journal write failed", zap.String("attempt_id", a.id), zap.Error(err))
		}
	}
	return a, nil
}

func (s *CheckoutService) finish(ctx context.Context, a *attempt) {
	if s.journal != nil {
		if err := s.journal.FinishAttempt(ctx, a.id, a.checkout.ID, a.status); err != nil {
			s.logger.Warn("attempt journal update failed", zap.String("attempt_id", a.id), zap.Error(err))
		}
	}

	s.logger.Info("checkout attempt finished",
		zap.String("attempt_id", a.id),
		zap.String("path", string(a.path)),
		zap.String("status", string(a.status)))

	s.mu.Lock()
	s.inProgress = false
	s.mu.Unlock()
}
