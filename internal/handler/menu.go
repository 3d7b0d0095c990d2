package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/service"
)

// MenuStore defines the database methods needed by menu handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuStore interface {
	ListMenuGroups(ctx context.Context) ([]database.MenuGroup, error)
	GetMenuGroup(ctx context.Context, id uuid.UUID) (database.MenuGroup, error)
	CreateMenuGroup(ctx context.Context, arg database.CreateMenuGroupParams) (database.MenuGroup, error)
	DeleteMenuGroup(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListActiveMenuItemsByGroup(ctx context.Context, groupID uuid.UUID) ([]database.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	SoftDeleteMenuItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// MenuHandler handles menu group and item endpoints.
type MenuHandler struct {
	store MenuStore
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore) *MenuHandler {
	return &MenuHandler{store: store}
}

// RegisterRoutes registers menu endpoints. Expected to be mounted at /menu.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/groups", h.ListGroups)
	r.Post("/groups", h.CreateGroup)
	r.Delete("/groups/{gid}", h.DeleteGroup)
	r.Get("/groups/{gid}/items", h.ListItems)
	r.Post("/groups/{gid}/items", h.CreateItem)
	r.Delete("/items/{id}", h.DeleteItem)
}

// --- Request / Response types ---

type createGroupRequest struct {
	Name string `json:"name"`
	Sort int32  `json:"sort"`
}

type createItemRequest struct {
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
	Sort  int32       `json:"sort"`
}

type menuGroupResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Sort      int32     `json:"sort"`
	CreatedAt time.Time `json:"created_at"`
}

type menuItemResponse struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	IsActive  bool      `json:"is_active"`
	Sort      int32     `json:"sort"`
	CreatedAt time.Time `json:"created_at"`
}

func toMenuGroupResponse(g database.MenuGroup) menuGroupResponse {
	return menuGroupResponse{ID: g.ID, Name: g.Name, Sort: g.Sort, CreatedAt: g.CreatedAt}
}

func toMenuItemResponse(it database.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:        it.ID,
		GroupID:   it.GroupID,
		Name:      it.Name,
		Price:     numericToString(it.Price),
		IsActive:  it.IsActive,
		Sort:      it.Sort,
		CreatedAt: it.CreatedAt,
	}
}

// --- Handlers ---

// ListGroups returns all menu groups.
func (h *MenuHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListMenuGroups(r.Context())
	if err != nil {
		internalError(w, r, "list menu groups", err)
		return
	}

	resp := make([]menuGroupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toMenuGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateGroup adds a menu group.
func (h *MenuHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name := cleanName(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	group, err := h.store.CreateMenuGroup(r.Context(), database.CreateMenuGroupParams{
		Name: name,
		Sort: req.Sort,
	})
	if err != nil {
		internalError(w, r, "create menu group", err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuGroupResponse(group))
}

// DeleteGroup removes a group together with all of its items. Lines already
// on orders keep their name and price snapshots.
func (h *MenuHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseUUIDParam(w, chi.URLParam(r, "gid"), "group ID")
	if !ok {
		return
	}

	if _, err := h.store.DeleteMenuGroup(r.Context(), groupID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu group not found"})
			return
		}
		internalError(w, r, "delete menu group", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListItems returns the active items of a group.
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseUUIDParam(w, chi.URLParam(r, "gid"), "group ID")
	if !ok {
		return
	}

	if _, err := h.store.GetMenuGroup(r.Context(), groupID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu group not found"})
			return
		}
		internalError(w, r, "get menu group", err)
		return
	}

	items, err := h.store.ListActiveMenuItemsByGroup(r.Context(), groupID)
	if err != nil {
		internalError(w, r, "list menu items", err)
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, it := range items {
		resp[i] = toMenuItemResponse(it)
	}
	writeJSON(w, http.StatusOK, resp)
}

// maxPrice is the first value that no longer fits NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

// parsePrice accepts a positive amount with at most two decimals that fits
// the price column. Anything else would be rounded or rejected by Postgres.
func parsePrice(n json.Number) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, false
	}
	if !price.IsPositive() || !price.Equal(price.Round(2)) || price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, false
	}
	return price, true
}

// CreateItem adds a priced item to a group.
func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	groupID, ok := parseUUIDParam(w, chi.URLParam(r, "gid"), "group ID")
	if !ok {
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name := cleanName(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	price, ok := parsePrice(req.Price)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be a number > 0"})
		return
	}

	if _, err := h.store.GetMenuGroup(r.Context(), groupID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu group not found"})
			return
		}
		internalError(w, r, "get menu group", err)
		return
	}

	item, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
		GroupID: groupID,
		Name:    name,
		Price:   service.DecimalToNumeric(price),
		Sort:    req.Sort,
	})
	if err != nil {
		internalError(w, r, "create menu item", err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// DeleteItem soft-deletes an item by setting is_active=false.
func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseUUIDParam(w, chi.URLParam(r, "id"), "item ID")
	if !ok {
		return
	}

	if _, err := h.store.SoftDeleteMenuItem(r.Context(), itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		internalError(w, r, "delete menu item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
