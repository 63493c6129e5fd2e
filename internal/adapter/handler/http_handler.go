package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/storekit/checkout/internal/core/domain"
	"github.com/storekit/checkout/internal/core/service"
)

type HTTPHandler struct {
	checkoutService *service.CheckoutService
}

type LineItemHTTPRequest struct {
	VariantID string          `json:"variant_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutHTTPRequest struct {
	CheckoutID string                `json:"checkout_id"`
	Currency   string                `json:"currency"`
	LineItems  []LineItemHTTPRequest `json:"line_items"`
}

type CartTokenHTTPRequest struct {
	Token string `json:"token"`
}

type CheckoutHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewHTTPHandler(checkoutService *service.CheckoutService) *HTTPHandler {
	return &HTTPHandler{checkoutService: checkoutService}
}

func (h *HTTPHandler) StartWebCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, ok := h.decodeCheckout(w, r)
	if !ok {
		return
	}

	h.respond(w, h.checkoutService.StartWebCheckout(r.Context(), checkout))
}

func (h *HTTPHandler) StartWalletCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, ok := h.decodeCheckout(w, r)
	if !ok {
		return
	}

	h.respond(w, h.checkoutService.StartWalletCheckout(r.Context(), checkout))
}

func (h *HTTPHandler) StartCartTokenCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CartTokenHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeJSON(w, http.StatusBadRequest, CheckoutHTTPResponse{
			Success: false,
			Message: "missing cart token",
		})
		return
	}

	h.respond(w, h.checkoutService.StartCheckoutWithCartToken(r.Context(), req.Token))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) decodeCheckout(w http.ResponseWriter, r *http.Request) (*domain.Checkout, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	var req CheckoutHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CheckoutHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return nil, false
	}

	checkout := &domain.Checkout{
		ID:       req.CheckoutID,
		Currency: req.Currency,
	}
	for _, li := range req.LineItems {
		checkout.LineItems = append(checkout.LineItems, domain.LineItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
		})
	}
	return checkout, true
}

func (h *HTTPHandler) respond(w http.ResponseWriter, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, CheckoutHTTPResponse{
			Success: true,
			Message: "checkout started",
		})
		return
	}

	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrCheckoutInProgress):
		status = http.StatusConflict
		message = "checkout already in progress"
	case errors.Is(err, service.ErrEmptyCheckout):
		status = http.StatusBadRequest
		message = "checkout has no line items"
	case errors.Is(err, domain.ErrWalletUnavailable):
		status = http.StatusConflict
		message = "wallet checkout unavailable"
	case errors.Is(err, domain.ErrAuthorizationCancelled):
		status = http.StatusOK
		message = "checkout cancelled by user"
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusUnprocessableEntity
		message = "checkout rejected by remote validation"
	case errors.Is(err, domain.ErrCompletion):
		status = http.StatusUnprocessableEntity
		message = "checkout completion rejected"
	case errors.Is(err, domain.ErrNetwork):
		status = http.StatusBadGateway
		message = "commerce service unreachable"
	}

	writeJSON(w, status, CheckoutHTTPResponse{
		Success: false,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
