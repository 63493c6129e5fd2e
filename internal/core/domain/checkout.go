package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutStatus string

const (
	CheckoutStatusOpen     CheckoutStatus = "open"
	CheckoutStatusComplete CheckoutStatus = "complete"
	CheckoutStatusExpired  CheckoutStatus = "expired"
)

// CompletionStatus is the terminal outcome of one checkout attempt.
// It is set once and never changes afterwards.
type CompletionStatus string

const (
	CompletionPending   CompletionStatus = "pending"
	CompletionSuccess   CompletionStatus = "success"
	CompletionFailure   CompletionStatus = "failure"
	CompletionCancelled CompletionStatus = "cancelled"
)

type CheckoutPath string

const (
	PathWallet CheckoutPath = "wallet"
	PathWeb    CheckoutPath = "web"
)

type LineItem struct {
	VariantID string
	Title     string
	Quantity  int
	Price     decimal.Decimal
}

type Address struct {
	FirstName string
	LastName  string
	Address1  string
	Address2  string
	City      string
	Province  string
	Country   string
	Zip       string
	Phone     string
}

// ShippingRate is valid only for the checkout snapshot it was fetched for.
// Any address change makes previously fetched rates stale.
type ShippingRate struct {
	ID    string
	Title string
	Price decimal.Decimal
}

// Checkout is the remote representation of an in-progress purchase.
// All totals are authoritative only as returned by the remote service
// and are never recomputed locally.
type Checkout struct {
	ID              string
	Token           string
	LineItems       []LineItem
	ShippingAddress *Address
	ShippingRate    *ShippingRate
	ShippingRates   []ShippingRate
	Currency        string
	SubtotalPrice   decimal.Decimal
	TotalTax        decimal.Decimal
	TotalPrice      decimal.Decimal
	PaymentDue      decimal.Decimal
	WebURL          string
	Status          CheckoutStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Created reports whether the checkout exists on the remote service.
func (c *Checkout) Created() bool {
	return c.ID != ""
}

// Attempt is the journal record of one orchestrated checkout attempt.
type Attempt struct {
	ID         string
	CheckoutID string
	Path       CheckoutPath
	Status     CompletionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
