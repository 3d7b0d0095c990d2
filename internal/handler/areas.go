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

	"github.com/bq-cafe/pos-api/internal/database"
)

// AreaStore defines the database methods needed by area and table directory
// handlers. Satisfied by *database.Queries; narrow interface for testability.
type AreaStore interface {
	ListAreas(ctx context.Context) ([]database.Area, error)
	GetArea(ctx context.Context, id uuid.UUID) (database.Area, error)
	CreateArea(ctx context.Context, arg database.CreateAreaParams) (database.Area, error)
	ListTablesByArea(ctx context.Context, areaID uuid.UUID) ([]database.CafeTable, error)
	CreateTable(ctx context.Context, arg database.CreateTableParams) (database.CafeTable, error)
}

// AreaHandler handles the seating directory: areas and their tables.
type AreaHandler struct {
	store AreaStore
}

// NewAreaHandler creates a new AreaHandler.
func NewAreaHandler(store AreaStore) *AreaHandler {
	return &AreaHandler{store: store}
}

// RegisterRoutes registers area endpoints. Expected to be mounted at /areas.
func (h *AreaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{aid}/tables", h.ListTables)
	r.Post("/{aid}/tables", h.CreateTable)
}

// --- Request / Response types ---

type createAreaRequest struct {
	Name string `json:"name"`
	Sort int32  `json:"sort"`
}

type createTableRequest struct {
	Name string `json:"name"`
}

type areaResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Sort      int32     `json:"sort"`
	CreatedAt time.Time `json:"created_at"`
}

func toAreaResponse(a database.Area) areaResponse {
	return areaResponse{
		ID:        a.ID,
		Name:      a.Name,
		Sort:      a.Sort,
		CreatedAt: a.CreatedAt,
	}
}

// --- Handlers ---

// List returns all areas ordered by sort, then name.
func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.store.ListAreas(r.Context())
	if err != nil {
		internalError(w, r, "list areas", err)
		return
	}

	resp := make([]areaResponse, len(areas))
	for i, a := range areas {
		resp[i] = toAreaResponse(a)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new area.
func (h *AreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name := cleanName(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	area, err := h.store.CreateArea(r.Context(), database.CreateAreaParams{
		Name: name,
		Sort: req.Sort,
	})
	if err != nil {
		internalError(w, r, "create area", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAreaResponse(area))
}

// ListTables returns the tables of an area with their occupancy status.
func (h *AreaHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	areaID, ok := parseUUIDParam(w, chi.URLParam(r, "aid"), "area ID")
	if !ok {
		return
	}

	if _, err := h.store.GetArea(r.Context(), areaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "area not found"})
			return
		}
		internalError(w, r, "get area", err)
		return
	}

	tables, err := h.store.ListTablesByArea(r.Context(), areaID)
	if err != nil {
		internalError(w, r, "list tables", err)
		return
	}

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTable adds an empty table to an area.
func (h *AreaHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	areaID, ok := parseUUIDParam(w, chi.URLParam(r, "aid"), "area ID")
	if !ok {
		return
	}

	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	name := cleanName(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	if _, err := h.store.GetArea(r.Context(), areaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "area not found"})
			return
		}
		internalError(w, r, "get area", err)
		return
	}

	table, err := h.store.CreateTable(r.Context(), database.CreateTableParams{
		AreaID: areaID,
		Name:   name,
	})
	if err != nil {
		internalError(w, r, "create table", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTableResponse(table))
}
