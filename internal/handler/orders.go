package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bq-cafe/pos-api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	EnsureOpenOrder(ctx context.Context, tableID uuid.UUID) (*service.OrderSnapshot, bool, error)
	AddItem(ctx context.Context, tableID, menuItemID uuid.UUID) (*service.OrderSnapshot, error)
	IncreaseQuantity(ctx context.Context, orderID, lineID uuid.UUID) (*service.OrderSnapshot, error)
	DecreaseQuantity(ctx context.Context, orderID, lineID uuid.UUID) (*service.OrderSnapshot, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*service.OrderSnapshot, error)
	GetTableOrder(ctx context.Context, tableID uuid.UUID) (*service.TableView, error)
	Pay(ctx context.Context, req service.PayRequest) (*service.PayResult, error)
}

// OrderHandler handles the order lifecycle endpoints, reached either from a
// table or directly by order ID.
type OrderHandler struct {
	svc OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterTableRoutes registers table-scoped endpoints. Expected to be
// mounted at /tables.
func (h *OrderHandler) RegisterTableRoutes(r chi.Router) {
	r.Get("/{tid}", h.GetTable)
	r.Post("/{tid}/order", h.OpenOrder)
	r.Post("/{tid}/order/items", h.AddItem)
}

// RegisterRoutes registers order endpoints. Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}", h.Get)
	r.Post("/{id}/items/{lid}/increase", h.Increase)
	r.Post("/{id}/items/{lid}/decrease", h.Decrease)
	r.Post("/{id}/pay", h.Pay)
}

// --- Request / Response types ---

type addItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
}

type tableViewResponse struct {
	Table tableResponse  `json:"table"`
	Order *orderResponse `json:"order"`
}

// --- Handlers ---

// GetTable handles GET /tables/{tid}.
func (h *OrderHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parseUUIDParam(w, chi.URLParam(r, "tid"), "table ID")
	if !ok {
		return
	}

	view, err := h.svc.GetTableOrder(r.Context(), tableID)
	if err != nil {
		writeServiceError(w, r, "get table", err)
		return
	}

	resp := tableViewResponse{Table: toTableResponse(view.Table)}
	if view.Order != nil {
		o := toOrderResponse(view.Order)
		resp.Order = &o
	}
	writeJSON(w, http.StatusOK, resp)
}

// OpenOrder handles POST /tables/{tid}/order. Responds 201 when a new order
// was opened and 200 when the table already had one.
func (h *OrderHandler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parseUUIDParam(w, chi.URLParam(r, "tid"), "table ID")
	if !ok {
		return
	}

	snap, created, err := h.svc.EnsureOpenOrder(r.Context(), tableID)
	if err != nil {
		writeServiceError(w, r, "open order", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toOrderResponse(snap))
}

// AddItem handles POST /tables/{tid}/order/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	tableID, ok := parseUUIDParam(w, chi.URLParam(r, "tid"), "table ID")
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.MenuItemID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "menu_item_id is required"})
		return
	}
	menuItemID, ok := parseUUIDParam(w, req.MenuItemID, "menu_item_id")
	if !ok {
		return
	}

	snap, err := h.svc.AddItem(r.Context(), tableID, menuItemID)
	if err != nil {
		writeServiceError(w, r, "add item", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(snap))
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, chi.URLParam(r, "id"), "order ID")
	if !ok {
		return
	}

	snap, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(snap))
}

// Increase handles POST /orders/{id}/items/{lid}/increase.
func (h *OrderHandler) Increase(w http.ResponseWriter, r *http.Request) {
	h.changeQuantity(w, r, "increase quantity", h.svc.IncreaseQuantity)
}

// Decrease handles POST /orders/{id}/items/{lid}/decrease.
func (h *OrderHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	h.changeQuantity(w, r, "decrease quantity", h.svc.DecreaseQuantity)
}

func (h *OrderHandler) changeQuantity(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(ctx context.Context, orderID, lineID uuid.UUID) (*service.OrderSnapshot, error),
) {
	orderID, ok := parseUUIDParam(w, chi.URLParam(r, "id"), "order ID")
	if !ok {
		return
	}
	lineID, ok := parseUUIDParam(w, chi.URLParam(r, "lid"), "line ID")
	if !ok {
		return
	}

	snap, err := fn(r.Context(), orderID, lineID)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(snap))
}
