package domain

import "errors"

// Error kinds surfaced by the orchestrator and its collaborators.
// Remote-call failures are wrapped around one of these so callers can
// classify them with errors.Is.
var (
	ErrNetwork                = errors.New("network failure")
	ErrValidation             = errors.New("checkout rejected by remote validation")
	ErrWalletUnavailable      = errors.New("wallet payments unavailable")
	ErrAuthorizationCancelled = errors.New("payment authorization cancelled")
	ErrCompletion             = errors.New("checkout completion rejected")
	ErrExpiration             = errors.New("checkout expiration failed")
)
