package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/enum"
	"github.com/bq-cafe/pos-api/internal/report"
	"github.com/bq-cafe/pos-api/internal/service"
)

const dateLayout = "2006-01-02"

// HistoryStore defines the database methods needed by history handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type HistoryStore interface {
	ListPaymentsInRange(ctx context.Context, arg database.ListPaymentsInRangeParams) ([]database.ListPaymentsInRangeRow, error)
}

// OrderReader loads a single order snapshot.
type OrderReader interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (*service.OrderSnapshot, error)
}

// HistoryHandler serves the same-day sales history and order details.
type HistoryHandler struct {
	store  HistoryStore
	orders OrderReader
	loc    *time.Location
	now    func() time.Time
}

// NewHistoryHandler creates a new HistoryHandler. Business days are
// computed in loc.
func NewHistoryHandler(store HistoryStore, orders OrderReader, loc *time.Location) *HistoryHandler {
	return &HistoryHandler{store: store, orders: orders, loc: loc, now: time.Now}
}

// RegisterRoutes registers history endpoints. Expected to be mounted at /history.
func (h *HistoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/day", h.Day)
	r.Get("/day/export", h.Export)
	r.Get("/orders/{id}", h.OrderDetail)
}

// --- Response types ---

type historyPaymentResponse struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	TableName  string    `json:"table_name"`
	Method     string    `json:"method"`
	PaidAmount string    `json:"paid_amount"`
	PaidAt     time.Time `json:"paid_at"`
}

type methodSummaryResponse struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
	Total  string `json:"total"`
}

type dayHistoryResponse struct {
	Date     string                   `json:"date"`
	Timezone string                   `json:"timezone"`
	Count    int                      `json:"count"`
	Total    string                   `json:"total"`
	ByMethod []methodSummaryResponse  `json:"by_method"`
	Payments []historyPaymentResponse `json:"payments"`
}

type lineGroupResponse struct {
	ItemName string `json:"item_name"`
	Qty      int32  `json:"qty"`
	Amount   string `json:"amount"`
}

type orderDetailResponse struct {
	orderResponse
	Items []lineGroupResponse `json:"items"`
}

// --- Handlers ---

// Day handles GET /history/day?date=YYYY-MM-DD. Defaults to today.
func (h *HistoryHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, ok := h.parseDay(w, r)
	if !ok {
		return
	}

	rows, err := h.listDay(r.Context(), day)
	if err != nil {
		internalError(w, r, "list payments", err)
		return
	}

	methods := []string{enum.PaymentMethodCash, enum.PaymentMethodTransfer}
	counts := map[string]int{}
	totals := map[string]decimal.Decimal{}
	total := decimal.Zero

	payments := make([]historyPaymentResponse, len(rows))
	for i, p := range rows {
		amount := service.NumericToDecimal(p.PaidAmount)
		method := string(p.Method)
		counts[method]++
		totals[method] = totals[method].Add(amount)
		total = total.Add(amount)

		payments[i] = historyPaymentResponse{
			ID:         p.ID,
			OrderID:    p.OrderID,
			TableName:  p.TableName,
			Method:     method,
			PaidAmount: numericToString(p.PaidAmount),
			PaidAt:     p.PaidAt,
		}
	}

	byMethod := make([]methodSummaryResponse, len(methods))
	for i, m := range methods {
		byMethod[i] = methodSummaryResponse{
			Method: m,
			Count:  counts[m],
			Total:  totals[m].StringFixed(2),
		}
	}

	writeJSON(w, http.StatusOK, dayHistoryResponse{
		Date:     day.Format(dateLayout),
		Timezone: h.loc.String(),
		Count:    len(rows),
		Total:    total.StringFixed(2),
		ByMethod: byMethod,
		Payments: payments,
	})
}

// Export handles GET /history/day/export, returning the day as an XLSX file.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	day, ok := h.parseDay(w, r)
	if !ok {
		return
	}

	rows, err := h.listDay(r.Context(), day)
	if err != nil {
		internalError(w, r, "list payments", err)
		return
	}

	// Oldest first reads better in a spreadsheet.
	out := make([]report.DayRow, len(rows))
	for i, p := range rows {
		out[len(rows)-1-i] = report.DayRow{
			PaidAt:    p.PaidAt,
			TableName: p.TableName,
			Method:    string(p.Method),
			Amount:    service.NumericToDecimal(p.PaidAmount),
		}
	}

	var buf bytes.Buffer
	if err := report.WriteDayXLSX(&buf, day, h.loc, out); err != nil {
		internalError(w, r, "render xlsx", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sales-%s.xlsx"`, day.Format(dateLayout)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// OrderDetail handles GET /history/orders/{id}. Lines are also returned
// grouped by item name.
func (h *HistoryHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseUUIDParam(w, chi.URLParam(r, "id"), "order ID")
	if !ok {
		return
	}

	snap, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}

	groups := service.GroupLinesByName(snap.Lines)
	items := make([]lineGroupResponse, len(groups))
	for i, g := range groups {
		items[i] = lineGroupResponse{
			ItemName: g.ItemName,
			Qty:      g.Qty,
			Amount:   g.Amount.StringFixed(2),
		}
	}

	writeJSON(w, http.StatusOK, orderDetailResponse{
		orderResponse: toOrderResponse(snap),
		Items:         items,
	})
}

// --- Helpers ---

// parseDay returns local midnight of the requested day.
func (h *HistoryHandler) parseDay(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	s := r.URL.Query().Get("date")
	if s == "" {
		now := h.now().In(h.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc), true
	}
	day, err := time.ParseInLocation(dateLayout, s, h.loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}

func (h *HistoryHandler) listDay(ctx context.Context, day time.Time) ([]database.ListPaymentsInRangeRow, error) {
	return h.store.ListPaymentsInRange(ctx, database.ListPaymentsInRangeParams{
		PaidAt:   day,
		PaidAt_2: day.AddDate(0, 0, 1),
	})
}
