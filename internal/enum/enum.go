package enum

// Table and order statuses are typed in the database package
// (database.TableStatus, database.OrderStatus).

// ── Group A: Payment methods (Postgres enum type) ──

const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
)

// ── Group B: Live event types (no DB constraint) ──

const (
	EventOrderOpened        = "order.opened"
	EventOrderUpdated       = "order.updated"
	EventOrderPaid          = "order.paid"
	EventTableStatusChanged = "table.status_changed"
)
