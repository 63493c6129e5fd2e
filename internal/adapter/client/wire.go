package client

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storekit/checkout/internal/core/domain"
)

type checkoutEnvelope struct {
	Checkout wireCheckout `json:"checkout"`
}

type wireCheckout struct {
	ID              string             `json:"id,omitempty"`
	Token           string             `json:"token,omitempty"`
	LineItems       []wireLineItem     `json:"line_items"`
	ShippingAddress *wireAddress       `json:"shipping_address,omitempty"`
	ShippingRate    *wireShippingRate  `json:"shipping_rate,omitempty"`
	Currency        string             `json:"currency,omitempty"`
	SubtotalPrice   decimal.Decimal    `json:"subtotal_price"`
	TotalTax        decimal.Decimal    `json:"total_tax"`
	TotalPrice      decimal.Decimal    `json:"total_price"`
	PaymentDue      decimal.Decimal    `json:"payment_due"`
	WebURL          string             `json:"web_url,omitempty"`
	Status          string             `json:"status,omitempty"`
	CreatedAt       time.Time          `json:"created_at,omitzero"`
	UpdatedAt       time.Time          `json:"updated_at,omitzero"`
}

type wireLineItem struct {
	VariantID string          `json:"variant_id"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type wireAddress struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type wireShippingRate struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type wireShop struct {
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Currency    string `json:"currency"`
	MoneyFormat string `json:"money_format"`
	CountryCode string `json:"country_code"`
}

func toWire(c *domain.Checkout) wireCheckout {
	w := wireCheckout{
		ID:            c.ID,
		Token:         c.Token,
		Currency:      c.Currency,
		SubtotalPrice: c.SubtotalPrice,
		TotalTax:      c.TotalTax,
		TotalPrice:    c.TotalPrice,
		PaymentDue:    c.PaymentDue,
		WebURL:        c.WebURL,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, li := range c.LineItems {
		w.LineItems = append(w.LineItems, wireLineItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
		})
	}
	if c.ShippingAddress != nil {
		addr := wireAddress(*c.ShippingAddress)
		w.ShippingAddress = &addr
	}
	if c.ShippingRate != nil {
		w.ShippingRate = &wireShippingRate{
			ID:    c.ShippingRate.ID,
			Title: c.ShippingRate.Title,
			Price: c.ShippingRate.Price,
		}
	}
	return w
}

func fromWire(w wireCheckout) *domain.Checkout {
	c := &domain.Checkout{
		ID:            w.ID,
		Token:         w.Token,
		Currency:      w.Currency,
		SubtotalPrice: w.SubtotalPrice,
		TotalTax:      w.TotalTax,
		TotalPrice:    w.TotalPrice,
		PaymentDue:    w.PaymentDue,
		WebURL:        w.WebURL,
		Status:        domain.CheckoutStatus(w.Status),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
	for _, li := range w.LineItems {
		c.LineItems = append(c.LineItems, domain.LineItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
		})
	}
	if w.ShippingAddress != nil {
		addr := domain.Address(*w.ShippingAddress)
		c.ShippingAddress = &addr
	}
	if w.ShippingRate != nil {
		c.ShippingRate = &domain.ShippingRate{
			ID:    w.ShippingRate.ID,
			Title: w.ShippingRate.Title,
			Price: w.ShippingRate.Price,
		}
	}
	return c
}
