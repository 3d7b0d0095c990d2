package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/enum"
	"github.com/bq-cafe/pos-api/internal/events"
)

// Errors returned by the order service.
var (
	ErrTableNotFound        = errors.New("table not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotOpen         = errors.New("order is not open")
	ErrLineNotFound         = errors.New("order line not found")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("amount must be > 0")
	ErrAmountMismatch       = errors.New("amount does not match order total")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed by the order lifecycle.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetTable(ctx context.Context, id uuid.UUID) (database.CafeTable, error)
	GetTableForUpdate(ctx context.Context, id uuid.UUID) (database.CafeTable, error)
	UpdateTableStatus(ctx context.Context, arg database.UpdateTableStatusParams) (database.CafeTable, error)
	GetActiveMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)
	GetOpenOrderByTable(ctx context.Context, tableID uuid.UUID) (database.Order, error)
	CreateOpenOrder(ctx context.Context, arg database.CreateOpenOrderParams) (database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
	MarkOrderPaid(ctx context.Context, id uuid.UUID) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	FindOrderItemForUpdate(ctx context.Context, arg database.FindOrderItemForUpdateParams) (database.OrderItem, error)
	GetOrderItemForUpdate(ctx context.Context, arg database.GetOrderItemForUpdateParams) (database.OrderItem, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	UpdateOrderItemQty(ctx context.Context, arg database.UpdateOrderItemQtyParams) (database.OrderItem, error)
	DeleteOrderItem(ctx context.Context, id uuid.UUID) error
	CreatePayment(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error)
	GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (database.Payment, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// OrderSnapshot is an order with its table, lines and computed total.
// Payment is set only for paid orders.
type OrderSnapshot struct {
	Order   database.Order
	Table   database.CafeTable
	Lines   []database.OrderItem
	Total   decimal.Decimal
	Payment *database.Payment
}

// TableView is a table and its open order, if any.
type TableView struct {
	Table database.CafeTable
	Order *OrderSnapshot
}

// OrderService handles order business logic.
type OrderService struct {
	pool      TxBeginner
	newStore  NewOrderStore
	publisher events.Publisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. A nil publisher drops events.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{pool: pool, newStore: newStore, publisher: publisher, now: time.Now}
}

// EnsureOpenOrder returns the table's open order, creating it (and marking
// the table in use) when there is none. created reports whether a new order
// was opened.
func (s *OrderService) EnsureOpenOrder(ctx context.Context, tableID uuid.UUID) (snap *OrderSnapshot, created bool, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	res, err := s.ensureOpen(ctx, store, tableID)
	if err != nil {
		return nil, false, err
	}

	lines, err := store.ListOrderItemsByOrder(ctx, res.order.ID)
	if err != nil {
		return nil, false, fmt.Errorf("list order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit tx: %w", err)
	}

	snap = newSnapshot(res.order, res.table, lines)
	s.publishOpen(ctx, res, snap)
	return snap, res.created, nil
}

// AddItem adds one unit of a menu item to the table's open order, opening
// the order first if needed. A line with the same item name and price is
// incremented; otherwise a new line with quantity 1 is created.
func (s *OrderService) AddItem(ctx context.Context, tableID, menuItemID uuid.UUID) (*OrderSnapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	item, err := store.GetActiveMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}

	res, err := s.ensureOpen(ctx, store, tableID)
	if err != nil {
		return nil, err
	}

	line, err := store.FindOrderItemForUpdate(ctx, database.FindOrderItemForUpdateParams{
		OrderID:  res.order.ID,
		ItemName: item.Name,
		Price:    item.Price,
	})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:  res.order.ID,
			ItemName: item.Name,
			Price:    item.Price,
			Qty:      1,
			Amount:   lineAmount(item.Price, 1),
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find order item: %w", err)
	default:
		qty := line.Qty + 1
		_, err = store.UpdateOrderItemQty(ctx, database.UpdateOrderItemQtyParams{
			ID:     line.ID,
			Qty:    qty,
			Amount: lineAmount(line.Price, qty),
		})
		if err != nil {
			return nil, fmt.Errorf("update order item: %w", err)
		}
	}

	lines, err := store.ListOrderItemsByOrder(ctx, res.order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	snap := newSnapshot(res.order, res.table, lines)
	s.publishOpen(ctx, res, snap)
	s.publish(ctx, enum.EventOrderUpdated, snap, nil)
	return snap, nil
}

// IncreaseQuantity adds 1 to a line of an open order.
func (s *OrderService) IncreaseQuantity(ctx context.Context, orderID, lineID uuid.UUID) (*OrderSnapshot, error) {
	return s.changeQuantity(ctx, orderID, lineID, 1)
}

// DecreaseQuantity removes 1 from a line of an open order. A line at
// quantity 1 is deleted instead.
func (s *OrderService) DecreaseQuantity(ctx context.Context, orderID, lineID uuid.UUID) (*OrderSnapshot, error) {
	return s.changeQuantity(ctx, orderID, lineID, -1)
}

func (s *OrderService) changeQuantity(ctx context.Context, orderID, lineID uuid.UUID, delta int32) (*OrderSnapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	table, order, err := lockOpenOrder(ctx, store, orderID)
	if err != nil {
		return nil, err
	}

	line, err := store.GetOrderItemForUpdate(ctx, database.GetOrderItemForUpdateParams{
		ID:      lineID,
		OrderID: orderID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}

	qty := line.Qty + delta
	if qty <= 0 {
		if err := store.DeleteOrderItem(ctx, line.ID); err != nil {
			return nil, fmt.Errorf("delete order item: %w", err)
		}
	} else {
		_, err = store.UpdateOrderItemQty(ctx, database.UpdateOrderItemQtyParams{
			ID:     line.ID,
			Qty:    qty,
			Amount: lineAmount(line.Price, qty),
		})
		if err != nil {
			return nil, fmt.Errorf("update order item: %w", err)
		}
	}

	lines, err := store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	snap := newSnapshot(order, table, lines)
	s.publish(ctx, enum.EventOrderUpdated, snap, nil)
	return snap, nil
}

// GetOrder loads an order snapshot in any status.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderSnapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	table, err := store.GetTable(ctx, order.TableID)
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	lines, err := store.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	snap := newSnapshot(order, table, lines)
	if order.Status == database.OrderStatusPaid {
		p, err := store.GetPaymentByOrder(ctx, orderID)
		switch {
		case err == nil:
			snap.Payment = &p
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("get payment: %w", err)
		}
	}
	return snap, nil
}

// GetTableOrder loads a table and its open order, if any.
func (s *OrderService) GetTableOrder(ctx context.Context, tableID uuid.UUID) (*TableView, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	table, err := store.GetTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("get table: %w", err)
	}

	view := &TableView{Table: table}
	order, err := store.GetOpenOrderByTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return view, nil
		}
		return nil, fmt.Errorf("get open order: %w", err)
	}
	lines, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	view.Order = newSnapshot(order, table, lines)
	return view, nil
}

// OrderTotal sums the persisted lines of an order.
func (s *OrderService) OrderTotal(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	snap, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.Total, nil
}

// --- Helpers ---

type openResult struct {
	table        database.CafeTable
	order        database.Order
	created      bool
	tableChanged bool
}

// ensureOpen locks the table, then returns its open order, creating one if
// needed. The partial unique index on orders(table_id) WHERE status='open'
// makes a concurrent insert come back empty; the existing order is fetched.
func (s *OrderService) ensureOpen(ctx context.Context, store OrderStore, tableID uuid.UUID) (openResult, error) {
	var res openResult

	table, err := store.GetTableForUpdate(ctx, tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return res, ErrTableNotFound
		}
		return res, fmt.Errorf("lock table: %w", err)
	}

	order, err := store.CreateOpenOrder(ctx, database.CreateOpenOrderParams{
		TableID:   table.ID,
		TableName: table.Name,
	})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		order, err = store.GetOpenOrderByTable(ctx, table.ID)
		if err != nil {
			return res, fmt.Errorf("get open order: %w", err)
		}
	case err != nil:
		return res, fmt.Errorf("create order: %w", err)
	default:
		res.created = true
	}

	if table.Status != database.TableStatusInUse {
		table, err = store.UpdateTableStatus(ctx, database.UpdateTableStatusParams{
			ID:     table.ID,
			Status: database.TableStatusInUse,
		})
		if err != nil {
			return res, fmt.Errorf("update table status: %w", err)
		}
		res.tableChanged = true
	}

	res.table = table
	res.order = order
	return res, nil
}

// lockOpenOrder locks the order's table and then the order itself, in that
// order, and checks the order is still open.
func lockOpenOrder(ctx context.Context, store OrderStore, orderID uuid.UUID) (database.CafeTable, database.Order, error) {
	order, err := store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.CafeTable{}, database.Order{}, ErrOrderNotFound
		}
		return database.CafeTable{}, database.Order{}, fmt.Errorf("get order: %w", err)
	}

	table, err := store.GetTableForUpdate(ctx, order.TableID)
	if err != nil {
		return database.CafeTable{}, database.Order{}, fmt.Errorf("lock table: %w", err)
	}

	order, err = store.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		return database.CafeTable{}, database.Order{}, fmt.Errorf("lock order: %w", err)
	}
	if order.Status != database.OrderStatusOpen {
		return database.CafeTable{}, database.Order{}, ErrOrderNotOpen
	}
	return table, order, nil
}

func newSnapshot(order database.Order, table database.CafeTable, lines []database.OrderItem) *OrderSnapshot {
	if lines == nil {
		lines = []database.OrderItem{}
	}
	return &OrderSnapshot{
		Order: order,
		Table: table,
		Lines: lines,
		Total: ComputeTotal(lines),
	}
}

func (s *OrderService) publishOpen(ctx context.Context, res openResult, snap *OrderSnapshot) {
	if res.created {
		s.publish(ctx, enum.EventOrderOpened, snap, nil)
	}
	if res.tableChanged {
		s.publish(ctx, enum.EventTableStatusChanged, snap, nil)
	}
}

type eventPayload struct {
	TableStatus string `json:"table_status"`
	OrderStatus string `json:"order_status"`
	Total       string `json:"total"`
	Lines       int    `json:"lines"`
	Method      string `json:"method,omitempty"`
}

// publish runs after commit. A failed publish is logged and otherwise
// ignored; the committed change stands.
func (s *OrderService) publish(ctx context.Context, eventType string, snap *OrderSnapshot, payment *database.Payment) {
	p := eventPayload{
		TableStatus: string(snap.Table.Status),
		OrderStatus: string(snap.Order.Status),
		Total:       snap.Total.StringFixed(2),
		Lines:       len(snap.Lines),
	}
	if payment != nil {
		p.Method = string(payment.Method)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return
	}

	e := events.Event{
		Type:    eventType,
		AreaID:  snap.Table.AreaID,
		TableID: snap.Table.ID,
		OrderID: snap.Order.ID,
		Payload: body,
		At:      s.now(),
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("type", eventType).
			Stringer("order_id", snap.Order.ID).
			Msg("publish event")
	}
}
