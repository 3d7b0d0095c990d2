package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bq-cafe/pos-api/internal/service"
)

// payRequest.Amount is optional; when present it must equal the order total.
type payRequest struct {
	Method string      `json:"method"`
	Amount json.Number `json:"amount"`
}

type payResponse struct {
	Payment paymentResponse `json:"payment"`
	Order   orderResponse   `json:"order"`
}

// Pay handles POST /orders/{id}/pay. The payment, the order's transition to
// paid and the table's release commit together or not at all.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, chi.URLParam(r, "id"), "order ID")
	if !ok {
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Method == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "method is required"})
		return
	}

	res, err := h.svc.Pay(r.Context(), service.PayRequest{
		OrderID: orderID,
		Method:  req.Method,
		Amount:  req.Amount.String(),
	})
	if err != nil {
		writeServiceError(w, r, "pay order", err)
		return
	}

	writeJSON(w, http.StatusCreated, payResponse{
		Payment: toPaymentResponse(res.Payment),
		Order:   toOrderResponse(res.Order),
	})
}
