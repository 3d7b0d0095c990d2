package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/enum"
)

// PayRequest is the input for closing an order. Amount is optional; when
// set it must equal the order total.
type PayRequest struct {
	OrderID uuid.UUID
	Method  string
	Amount  string
}

// PayResult is the recorded payment with the closed order and freed table.
type PayResult struct {
	Payment database.Payment
	Order   *OrderSnapshot
}

// Pay records a payment, marks the order paid and frees its table in one
// transaction. Either all three happen or none does.
func (s *OrderService) Pay(ctx context.Context, req PayRequest) (*PayResult, error) {
	method, err := parsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var amount decimal.Decimal
	hasAmount := strings.TrimSpace(req.Amount) != ""
	if hasAmount {
		amount, err = decimal.NewFromString(strings.TrimSpace(req.Amount))
		if err != nil || !amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	table, _, err := lockOpenOrder(ctx, store, req.OrderID)
	if err != nil {
		return nil, err
	}

	lines, err := store.ListOrderItemsByOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	total := ComputeTotal(lines)
	if len(lines) == 0 || !total.IsPositive() {
		return nil, ErrEmptyOrder
	}
	if hasAmount && !amount.Equal(total) {
		return nil, fmt.Errorf("%w: total is %s", ErrAmountMismatch, total.StringFixed(2))
	}

	payment, err := store.CreatePayment(ctx, database.CreatePaymentParams{
		OrderID:    req.OrderID,
		Method:     method,
		PaidAmount: DecimalToNumeric(total),
	})
	if err != nil {
		if isDuplicatePayment(err) {
			return nil, ErrOrderNotOpen
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	order, err := store.MarkOrderPaid(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotOpen
		}
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	table, err = store.UpdateTableStatus(ctx, database.UpdateTableStatusParams{
		ID:     table.ID,
		Status: database.TableStatusEmpty,
	})
	if err != nil {
		return nil, fmt.Errorf("update table status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	snap := newSnapshot(order, table, lines)
	snap.Payment = &payment
	s.publish(ctx, enum.EventOrderPaid, snap, &payment)
	s.publish(ctx, enum.EventTableStatusChanged, snap, nil)

	return &PayResult{Payment: payment, Order: snap}, nil
}

func parsePaymentMethod(s string) (database.PaymentMethod, error) {
	switch s {
	case enum.PaymentMethodCash:
		return database.PaymentMethodCash, nil
	case enum.PaymentMethodTransfer:
		return database.PaymentMethodTransfer, nil
	}
	return "", ErrInvalidPaymentMethod
}

// isDuplicatePayment checks for a unique violation (23505) on
// payments.order_id, meaning another terminal paid first.
func isDuplicatePayment(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "payments_order_id_key"
	}
	return false
}
