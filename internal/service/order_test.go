package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/events"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// Rolling back without a commit restores the store to its state at Begin.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	store     *memStore
	snapshot  memState
	committed bool
	commitErr error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	m.store.commits++
	return nil
}
func (m *mockTx) Rollback(ctx context.Context) error {
	if !m.committed {
		m.store.restore(m.snapshot)
	}
	return nil
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	store     *memStore
	err       error
	commitErr error
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &mockTx{store: m.store, snapshot: m.store.snapshot(), commitErr: m.commitErr}, nil
}

type memState struct {
	tables   map[uuid.UUID]database.CafeTable
	items    map[uuid.UUID]database.MenuItem
	orders   map[uuid.UUID]database.Order
	lines    map[uuid.UUID]database.OrderItem
	payments map[uuid.UUID]database.Payment
}

// memStore is an in-memory OrderStore that behaves like the SQL queries,
// including the partial unique index on open orders.
type memStore struct {
	mu sync.Mutex
	memState

	clock   time.Time
	commits int

	// failOn makes the named method return the error.
	failOn map[string]error
	// beforeCreateOpenOrder runs before the insert, e.g. to simulate
	// another terminal winning the race.
	beforeCreateOpenOrder func()
}

func newMemStore() *memStore {
	return &memStore{
		memState: memState{
			tables:   map[uuid.UUID]database.CafeTable{},
			items:    map[uuid.UUID]database.MenuItem{},
			orders:   map[uuid.UUID]database.Order{},
			lines:    map[uuid.UUID]database.OrderItem{},
			payments: map[uuid.UUID]database.Payment{},
		},
		clock:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		failOn: map[string]error{},
	}
}

func (m *memStore) snapshot() memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memState{
		tables:   cloneMap(m.tables),
		items:    cloneMap(m.items),
		orders:   cloneMap(m.orders),
		lines:    cloneMap(m.lines),
		payments: cloneMap(m.payments),
	}
}

func (m *memStore) restore(s memState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memState = s
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) fail(name string) error {
	return m.failOn[name]
}

func (m *memStore) addTable(name string) database.CafeTable {
	t := database.CafeTable{ID: uuid.New(), AreaID: uuid.New(), Name: name, Status: database.TableStatusEmpty}
	m.tables[t.ID] = t
	return t
}

func (m *memStore) addMenuItem(name, price string) database.MenuItem {
	it := database.MenuItem{ID: uuid.New(), GroupID: uuid.New(), Name: name, Price: makeNumeric(price), IsActive: true}
	m.items[it.ID] = it
	return it
}

func (m *memStore) openOrderFor(tableID uuid.UUID) (database.Order, bool) {
	for _, o := range m.orders {
		if o.TableID == tableID && o.Status == database.OrderStatusOpen {
			return o, true
		}
	}
	return database.Order{}, false
}

func (m *memStore) GetTable(ctx context.Context, id uuid.UUID) (database.CafeTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return database.CafeTable{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *memStore) GetTableForUpdate(ctx context.Context, id uuid.UUID) (database.CafeTable, error) {
	return m.GetTable(ctx, id)
}

func (m *memStore) UpdateTableStatus(ctx context.Context, arg database.UpdateTableStatusParams) (database.CafeTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateTableStatus"); err != nil {
		return database.CafeTable{}, err
	}
	t, ok := m.tables[arg.ID]
	if !ok {
		return database.CafeTable{}, pgx.ErrNoRows
	}
	t.Status = arg.Status
	m.tables[t.ID] = t
	return t, nil
}

func (m *memStore) GetActiveMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok || !it.IsActive {
		return database.MenuItem{}, pgx.ErrNoRows
	}
	return it, nil
}

func (m *memStore) GetOpenOrderByTable(ctx context.Context, tableID uuid.UUID) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.openOrderFor(tableID)
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *memStore) CreateOpenOrder(ctx context.Context, arg database.CreateOpenOrderParams) (database.Order, error) {
	if m.beforeCreateOpenOrder != nil {
		m.beforeCreateOpenOrder()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateOpenOrder"); err != nil {
		return database.Order{}, err
	}
	if _, exists := m.openOrderFor(arg.TableID); exists {
		return database.Order{}, pgx.ErrNoRows
	}
	o := database.Order{
		ID:        uuid.New(),
		TableID:   arg.TableID,
		TableName: arg.TableName,
		Status:    database.OrderStatusOpen,
		CreatedAt: m.tick(),
	}
	m.orders[o.ID] = o
	return o, nil
}

func (m *memStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *memStore) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error) {
	return m.GetOrder(ctx, id)
}

func (m *memStore) MarkOrderPaid(ctx context.Context, id uuid.UUID) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("MarkOrderPaid"); err != nil {
		return database.Order{}, err
	}
	o, ok := m.orders[id]
	if !ok || o.Status != database.OrderStatusOpen {
		return database.Order{}, pgx.ErrNoRows
	}
	o.Status = database.OrderStatusPaid
	o.PaidAt = pgtype.Timestamptz{Time: m.tick(), Valid: true}
	m.orders[id] = o
	return o, nil
}

func (m *memStore) ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []database.OrderItem
	for _, l := range m.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) FindOrderItemForUpdate(ctx context.Context, arg database.FindOrderItemForUpdateParams) (database.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *database.OrderItem
	for _, l := range m.lines {
		if l.OrderID != arg.OrderID || l.ItemName != arg.ItemName {
			continue
		}
		if !NumericToDecimal(l.Price).Equal(NumericToDecimal(arg.Price)) {
			continue
		}
		if found == nil || l.CreatedAt.After(found.CreatedAt) {
			l := l
			found = &l
		}
	}
	if found == nil {
		return database.OrderItem{}, pgx.ErrNoRows
	}
	return *found, nil
}

func (m *memStore) GetOrderItemForUpdate(ctx context.Context, arg database.GetOrderItemForUpdateParams) (database.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[arg.ID]
	if !ok || l.OrderID != arg.OrderID {
		return database.OrderItem{}, pgx.ErrNoRows
	}
	return l, nil
}

func (m *memStore) CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateOrderItem"); err != nil {
		return database.OrderItem{}, err
	}
	l := database.OrderItem{
		ID:        uuid.New(),
		OrderID:   arg.OrderID,
		ItemName:  arg.ItemName,
		Price:     arg.Price,
		Qty:       arg.Qty,
		Amount:    arg.Amount,
		CreatedAt: m.tick(),
	}
	m.lines[l.ID] = l
	return l, nil
}

func (m *memStore) UpdateOrderItemQty(ctx context.Context, arg database.UpdateOrderItemQtyParams) (database.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[arg.ID]
	if !ok {
		return database.OrderItem{}, pgx.ErrNoRows
	}
	l.Qty = arg.Qty
	l.Amount = arg.Amount
	m.lines[l.ID] = l
	return l, nil
}

func (m *memStore) DeleteOrderItem(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, id)
	return nil
}

func (m *memStore) CreatePayment(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.OrderID == arg.OrderID {
			return database.Payment{}, &pgconn.PgError{Code: "23505", ConstraintName: "payments_order_id_key"}
		}
	}
	p := database.Payment{
		ID:         uuid.New(),
		OrderID:    arg.OrderID,
		Method:     arg.Method,
		PaidAmount: arg.PaidAmount,
		PaidAt:     m.tick(),
	}
	m.payments[p.ID] = p
	return p, nil
}

func (m *memStore) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (database.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return database.Payment{}, pgx.ErrNoRows
}

// recordingPublisher keeps every event it is given.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// --- Test helpers ---

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func numericEquals(n pgtype.Numeric, expected string) bool {
	d := NumericToDecimal(n)
	exp, _ := decimal.NewFromString(expected)
	return d.Equal(exp)
}

// newTestService creates an OrderService backed by an in-memory store.
func newTestService() (*OrderService, *memStore, *recordingPublisher) {
	store := newMemStore()
	pool := &mockTxBeginner{store: store}
	pub := &recordingPublisher{}
	newStore := func(db database.DBTX) OrderStore { return store }
	return NewOrderService(pool, newStore, pub), store, pub
}

func equalTypes(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// =====================
// EnsureOpenOrder
// =====================

func TestEnsureOpenOrder_CreatesAndMarksTableInUse(t *testing.T) {
	svc, store, pub := newTestService()
	table := store.addTable("T1")

	snap, created, err := svc.EnsureOpenOrder(context.Background(), table.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected a new order")
	}
	if snap.Order.Status != database.OrderStatusOpen {
		t.Errorf("order status: got %s, want open", snap.Order.Status)
	}
	if snap.Order.TableName != "T1" {
		t.Errorf("table name snapshot: got %q, want T1", snap.Order.TableName)
	}
	if store.tables[table.ID].Status != database.TableStatusInUse {
		t.Error("table should be in_use")
	}
	if len(snap.Lines) != 0 || !snap.Total.IsZero() {
		t.Errorf("expected empty order, got %d lines total %s", len(snap.Lines), snap.Total)
	}
	if !equalTypes(pub.types(), []string{"order.opened", "table.status_changed"}) {
		t.Errorf("events: got %v", pub.types())
	}
}

func TestEnsureOpenOrder_ReturnsExisting(t *testing.T) {
	svc, store, _ := newTestService()
	table := store.addTable("T1")
	ctx := context.Background()

	first, _, err := svc.EnsureOpenOrder(ctx, table.ID)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, created, err := svc.EnsureOpenOrder(ctx, table.ID)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if created {
		t.Error("second call should not create an order")
	}
	if first.Order.ID != second.Order.ID {
		t.Errorf("expected same order, got %s and %s", first.Order.ID, second.Order.ID)
	}
	if len(store.orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(store.orders))
	}
}

func TestEnsureOpenOrder_LostRaceFetchesExisting(t *testing.T) {
	svc, store, _ := newTestService()
	table := store.addTable("T1")

	// Another terminal commits an open order between our lock and insert.
	var otherID uuid.UUID
	store.beforeCreateOpenOrder = func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		if _, ok := store.openOrderFor(table.ID); ok {
			return
		}
		otherID = uuid.New()
		store.orders[otherID] = database.Order{ID: otherID, TableID: table.ID, TableName: "T1", Status: database.OrderStatusOpen}
	}

	snap, created, err := svc.EnsureOpenOrder(context.Background(), table.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected existing order to be reused")
	}
	if snap.Order.ID != otherID {
		t.Errorf("order: got %s, want %s", snap.Order.ID, otherID)
	}
	if len(store.orders) != 1 {
		t.Errorf("expected exactly 1 order, got %d", len(store.orders))
	}
}

func TestEnsureOpenOrder_TableNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.EnsureOpenOrder(context.Background(), uuid.New())
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestEnsureOpenOrder_BeginError(t *testing.T) {
	store := newMemStore()
	pool := &mockTxBeginner{store: store, err: errors.New("connection refused")}
	svc := NewOrderService(pool, func(db database.DBTX) OrderStore { return store }, nil)

	_, _, err := svc.EnsureOpenOrder(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
}

// =====================
// AddItem
// =====================

func TestAddItem_RepeatedAddsMergeIntoOneLine(t *testing.T) {
	svc, store, _ := newTestService()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")
	ctx := context.Background()

	var snap *OrderSnapshot
	var err error
	for i := 0; i < 5; i++ {
		snap, err = svc.AddItem(ctx, table.ID, coffee.ID)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	if len(snap.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Lines))
	}
	line := snap.Lines[0]
	if line.Qty != 5 {
		t.Errorf("qty: got %d, want 5", line.Qty)
	}
	if !numericEquals(line.Amount, "100000") {
		t.Errorf("amount: got %s, want 100000", NumericToDecimal(line.Amount))
	}
	if !snap.Total.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("total: got %s, want 100000", snap.Total)
	}
}

func TestAddItem_DifferentItemsGetSeparateLines(t *testing.T) {
	svc, store, _ := newTestService()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")
	tea := store.addMenuItem("Tea", "15000.00")
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, table.ID, coffee.ID); err != nil {
		t.Fatal(err)
	}
	snap, err := svc.AddItem(ctx, table.ID, tea.ID)
	if err != nil {
		t.Fatal(err)
	}

	if len(snap.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snap.Lines))
	}
	if snap.Lines[0].ItemName != "Coffee" || snap.Lines[1].ItemName != "Tea" {
		t.Errorf("line order: got %s, %s", snap.Lines[0].ItemName, snap.Lines[1].ItemName)
	}
	if !snap.Total.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("total: got %s, want 35000", snap.Total)
	}
}

func TestAddItem_PriceChangeStartsNewLine(t *testing.T) {
	svc, store, _ := newTestService()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, table.ID, coffee.ID); err != nil {
		t.Fatal(err)
	}

	coffee.Price = makeNumeric("22000.00")
	store.items[coffee.ID] = coffee

	snap, err := svc.AddItem(ctx, table.ID, coffee.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Lines) != 2 {
		t.Fatalf("expected 2 lines after price change, got %d", len(snap.Lines))
	}
	if !snap.Total.Equal(decimal.NewFromInt(42000)) {
		t.Errorf("total: got %s, want 42000", snap.Total)
	}
}

func TestAddItem_OpensOrderOnFirstItem(t *testing.T) {
	svc, store, pub := newTestService()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")

	snap, err := svc.AddItem(context.Background(), table.ID, coffee.ID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Table.Status != database.TableStatusInUse {
		t.Errorf("table status: got %s, want in_use", snap.Table.Status)
	}
	want := []string{"order.opened", "table.status_changed", "order.updated"}
	if !equalTypes(pub.types(), want) {
		t.Errorf("events: got %v, want %v", pub.types(), want)
	}
	for _, e := range pub.events {
		if e.AreaID != table.AreaID {
			t.Errorf("event %s area: got %s, want %s", e.Type, e.AreaID, table.AreaID)
		}
	}
}

func TestAddItem_InactiveItem(t *testing.T) {
	svc, store, _ := newTestService()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")
	coffee.IsActive = false
	store.items[coffee.ID] = coffee

	_, err := svc.AddItem(context.Background(), table.ID, coffee.ID)
	if !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
	if len(store.orders) != 0 {
		t.Error("no order should be opened")
	}
}

func TestAddItem_UnknownTable(t *testing.T) {
	svc, store, _ := newTestService()
	coffee := store.addMenuItem("Coffee", "20000.00")

	_, err := svc.AddItem(context.Background(), uuid.New(), coffee.ID)
	if !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestAddItem_InsertFailureRollsBackOrderOpen(t *testing.T) {
	svc, store, pub := newTestService()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")
	store.failOn["CreateOrderItem"] = errors.New("disk full")

	_, err := svc.AddItem(context.Background(), table.ID, coffee.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.orders) != 0 {
		t.Errorf("order should be rolled back, got %d", len(store.orders))
	}
	if store.tables[table.ID].Status != database.TableStatusEmpty {
		t.Error("table status should be rolled back to empty")
	}
	if len(pub.events) != 0 {
		t.Errorf("no events expected on failure, got %v", pub.types())
	}
}

func TestAddItem_PublishFailureKeepsCommit(t *testing.T) {
	svc, store, pub := newTestService()
	pub.err = errors.New("broker down")
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")

	snap, err := svc.AddItem(context.Background(), table.ID, coffee.ID)
	if err != nil {
		t.Fatalf("publish failure must not fail the operation: %v", err)
	}
	if len(snap.Lines) != 1 || store.commits != 1 {
		t.Errorf("expected committed line, got %d lines, %d commits", len(snap.Lines), store.commits)
	}
}

// =====================
// Quantity changes
// =====================

func openWithCoffee(t *testing.T, svc *OrderService, store *memStore, times int) *OrderSnapshot {
	t.Helper()
	table := store.addTable("T1")
	coffee := store.addMenuItem("Coffee", "20000.00")
	var snap *OrderSnapshot
	var err error
	for i := 0; i < times; i++ {
		snap, err = svc.AddItem(context.Background(), table.ID, coffee.ID)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return snap
}

func TestIncreaseQuantity(t *testing.T) {
	svc, store, _ := newTestService()
	snap := openWithCoffee(t, svc, store, 1)

	snap, err := svc.IncreaseQuantity(context.Background(), snap.Order.ID, snap.Lines[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Lines[0].Qty != 2 || !numericEquals(snap.Lines[0].Amount, "40000") {
		t.Errorf("got qty %d amount %s", snap.Lines[0].Qty, NumericToDecimal(snap.Lines[0].Amount))
	}
}

func TestDecreaseQuantity_ReducesByOne(t *testing.T) {
	svc, store, _ := newTestService()
	snap := openWithCoffee(t, svc, store, 3)

	snap, err := svc.DecreaseQuantity(context.Background(), snap.Order.ID, snap.Lines[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Lines[0].Qty != 2 || !numericEquals(snap.Lines[0].Amount, "40000") {
		t.Errorf("got qty %d amount %s", snap.Lines[0].Qty, NumericToDecimal(snap.Lines[0].Amount))
	}
}

func TestDecreaseQuantity_AtOneDeletesLine(t *testing.T) {
	svc, store, _ := newTestService()
	snap := openWithCoffee(t, svc, store, 1)

	snap, err := svc.DecreaseQuantity(context.Background(), snap.Order.ID, snap.Lines[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Lines) != 0 {
		t.Fatalf("expected line removed, got %d lines", len(snap.Lines))
	}
	if !snap.Total.IsZero() {
		t.Errorf("total: got %s, want 0", snap.Total)
	}
	if snap.Order.Status != database.OrderStatusOpen {
		t.Error("order should stay open")
	}
}

func TestChangeQuantity_Errors(t *testing.T) {
	svc, store, _ := newTestService()
	snap := openWithCoffee(t, svc, store, 1)
	ctx := context.Background()

	if _, err := svc.IncreaseQuantity(ctx, uuid.New(), snap.Lines[0].ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("unknown order: got %v", err)
	}
	if _, err := svc.IncreaseQuantity(ctx, snap.Order.ID, uuid.New()); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("unknown line: got %v", err)
	}

	other := openWithCoffee(t, svc, store, 1)
	if _, err := svc.DecreaseQuantity(ctx, snap.Order.ID, other.Lines[0].ID); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("line of another order: got %v", err)
	}

	if _, err := svc.Pay(ctx, PayRequest{OrderID: snap.Order.ID, Method: "cash"}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := svc.IncreaseQuantity(ctx, snap.Order.ID, snap.Lines[0].ID); !errors.Is(err, ErrOrderNotOpen) {
		t.Errorf("paid order: got %v", err)
	}
}

// =====================
// Reads
// =====================

func TestGetTableOrder(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	empty := store.addTable("T2")

	view, err := svc.GetTableOrder(ctx, empty.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Order != nil {
		t.Error("empty table should have no order")
	}

	snap := openWithCoffee(t, svc, store, 2)
	view, err = svc.GetTableOrder(ctx, snap.Order.TableID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Order == nil || view.Order.Order.ID != snap.Order.ID {
		t.Fatal("expected open order in view")
	}
	if !view.Order.Total.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("total: got %s", view.Order.Total)
	}

	if _, err := svc.GetTableOrder(ctx, uuid.New()); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestGetOrder_IncludesPaymentWhenPaid(t *testing.T) {
	svc, store, _ := newTestService()
	snap := openWithCoffee(t, svc, store, 1)
	ctx := context.Background()

	got, err := svc.GetOrder(ctx, snap.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Payment != nil {
		t.Error("open order should have no payment")
	}

	if _, err := svc.Pay(ctx, PayRequest{OrderID: snap.Order.ID, Method: "transfer"}); err != nil {
		t.Fatal(err)
	}
	got, err = svc.GetOrder(ctx, snap.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Payment == nil || got.Payment.Method != database.PaymentMethodTransfer {
		t.Errorf("expected transfer payment, got %+v", got.Payment)
	}

	total, err := svc.OrderTotal(ctx, snap.Order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !total.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("total: got %s", total)
	}

	if _, err := svc.GetOrder(ctx, uuid.New()); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

// =====================
// Pure helpers
// =====================

func TestComputeTotal_OrderIndependent(t *testing.T) {
	lines := []database.OrderItem{
		{ItemName: "A", Amount: makeNumeric("20000.00")},
		{ItemName: "B", Amount: makeNumeric("15500.50")},
		{ItemName: "C", Amount: makeNumeric("0.50")},
	}
	reversed := []database.OrderItem{lines[2], lines[1], lines[0]}

	a := ComputeTotal(lines)
	b := ComputeTotal(reversed)
	if !a.Equal(b) || !a.Equal(ComputeTotal(lines)) {
		t.Errorf("totals differ: %s vs %s", a, b)
	}
	if !a.Equal(decimal.RequireFromString("35501")) {
		t.Errorf("total: got %s, want 35501", a)
	}
	if !ComputeTotal(nil).IsZero() {
		t.Error("empty total should be zero")
	}
}

func TestGroupLinesByName(t *testing.T) {
	lines := []database.OrderItem{
		{ItemName: "Coffee", Qty: 2, Amount: makeNumeric("40000")},
		{ItemName: "Tea", Qty: 1, Amount: makeNumeric("15000")},
		{ItemName: "Coffee", Qty: 1, Amount: makeNumeric("22000")},
	}

	groups := GroupLinesByName(lines)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ItemName != "Coffee" || groups[0].Qty != 3 || !groups[0].Amount.Equal(decimal.NewFromInt(62000)) {
		t.Errorf("coffee group: %+v", groups[0])
	}
	if groups[1].ItemName != "Tea" || groups[1].Qty != 1 {
		t.Errorf("tea group: %+v", groups[1])
	}
}
