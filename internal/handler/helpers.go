package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode JSON response")
	}
}

// internalError logs err on the request logger and writes a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("op", op).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// writeServiceError maps order service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case isNotFoundError(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case isConflictError(err):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		internalError(w, r, op, err)
	}
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidPaymentMethod) ||
		errors.Is(err, service.ErrInvalidAmount)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, service.ErrTableNotFound) ||
		errors.Is(err, service.ErrMenuItemNotFound) ||
		errors.Is(err, service.ErrOrderNotFound) ||
		errors.Is(err, service.ErrLineNotFound)
}

func isConflictError(err error) bool {
	return errors.Is(err, service.ErrOrderNotOpen) ||
		errors.Is(err, service.ErrEmptyOrder) ||
		errors.Is(err, service.ErrAmountMismatch)
}

// parseUUIDParam reads a UUID path value. On failure it writes a 400 naming
// label and returns false.
func parseUUIDParam(w http.ResponseWriter, value, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + label})
		return uuid.Nil, false
	}
	return id, true
}

// cleanName trims a user-supplied name; empty means missing.
func cleanName(s string) string {
	return strings.TrimSpace(s)
}

func numericToString(n pgtype.Numeric) string {
	return service.NumericToDecimal(n).StringFixed(2)
}

// --- Shared response types ---

type tableResponse struct {
	ID        uuid.UUID `json:"id"`
	AreaID    uuid.UUID `json:"area_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toTableResponse(t database.CafeTable) tableResponse {
	return tableResponse{
		ID:        t.ID,
		AreaID:    t.AreaID,
		Name:      t.Name,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

type lineResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemName  string    `json:"item_name"`
	Price     string    `json:"price"`
	Qty       int32     `json:"qty"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type paymentResponse struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	Method     string    `json:"method"`
	PaidAmount string    `json:"paid_amount"`
	PaidAt     time.Time `json:"paid_at"`
}

func toPaymentResponse(p database.Payment) paymentResponse {
	return paymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Method:     string(p.Method),
		PaidAmount: numericToString(p.PaidAmount),
		PaidAt:     p.PaidAt,
	}
}

type orderResponse struct {
	ID        uuid.UUID        `json:"id"`
	TableID   uuid.UUID        `json:"table_id"`
	TableName string           `json:"table_name"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	PaidAt    *time.Time       `json:"paid_at"`
	Table     tableResponse    `json:"table"`
	Lines     []lineResponse   `json:"lines"`
	Total     string           `json:"total"`
	Payment   *paymentResponse `json:"payment,omitempty"`
}

func toOrderResponse(s *service.OrderSnapshot) orderResponse {
	o := s.Order
	resp := orderResponse{
		ID:        o.ID,
		TableID:   o.TableID,
		TableName: o.TableName,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Table:     toTableResponse(s.Table),
		Total:     s.Total.StringFixed(2),
	}
	if o.PaidAt.Valid {
		resp.PaidAt = &o.PaidAt.Time
	}

	resp.Lines = make([]lineResponse, len(s.Lines))
	for i, l := range s.Lines {
		resp.Lines[i] = lineResponse{
			ID:        l.ID,
			ItemName:  l.ItemName,
			Price:     numericToString(l.Price),
			Qty:       l.Qty,
			Amount:    numericToString(l.Amount),
			CreatedAt: l.CreatedAt,
		}
	}

	if s.Payment != nil {
		p := toPaymentResponse(*s.Payment)
		resp.Payment = &p
	}
	return resp
}
