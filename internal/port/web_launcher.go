package port

// WebCheckoutLauncher opens an external browser context at a checkout
// URL. The hand-off is fire-and-forget: failing to open a browser is a
// platform condition outside the orchestrator's responsibility.
type WebCheckoutLauncher interface {
	Launch(url string)
}

// WalletCapability is a pure read of platform payment capability.
// Implementations never perform network calls.
type WalletCapability interface {
	// CanMakePayments reports whether the device supports wallet payments
	CanMakePayments() bool

	// HasRegisteredCards reports whether at least one usable card is set up
	HasRegisteredCards() bool
}
