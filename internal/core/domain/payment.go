package domain

import "github.com/shopspring/decimal"

type PaymentNetwork string

const (
	NetworkAmex       PaymentNetwork = "amex"
	NetworkMasterCard PaymentNetwork = "mastercard"
	NetworkVisa       PaymentNetwork = "visa"
)

// AllowedNetworks is the fixed set of payment networks a merchant may support.
var AllowedNetworks = []PaymentNetwork{NetworkAmex, NetworkMasterCard, NetworkVisa}

func (n PaymentNetwork) Valid() bool {
	for _, allowed := range AllowedNetworks {
		if n == allowed {
			return true
		}
	}
	return false
}

// MerchantCapability is the payment capability level required of the card.
type MerchantCapability string

const (
	CapabilityThreeDSecure MerchantCapability = "3ds"
	CapabilityEMV          MerchantCapability = "emv"
)

// PaymentRequest describes one wallet payment to the authorization UI.
type PaymentRequest struct {
	MerchantID        string
	Label             string
	CurrencyCode      string
	SupportedNetworks []PaymentNetwork
	Capability        MerchantCapability
	Total             decimal.Decimal
}

// AuthorizationStatus is the single outcome of presenting the payment UI.
type AuthorizationStatus string

const (
	AuthorizationApproved  AuthorizationStatus = "approved"
	AuthorizationCancelled AuthorizationStatus = "cancelled"
)

// AuthorizationResult carries the opaque payment token when approved.
type AuthorizationResult struct {
	Status AuthorizationStatus
	Token  string
}

func (r AuthorizationResult) Approved() bool {
	return r.Status == AuthorizationApproved
}
