// Package events carries table and order change notifications from the
// order service to live table boards and message brokers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is a single change notification.
type Event struct {
	Type    string          `json:"type"`
	AreaID  uuid.UUID       `json:"area_id"`
	TableID uuid.UUID       `json:"table_id"`
	OrderID uuid.UUID       `json:"order_id"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// Publisher delivers events somewhere. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Fanout publishes each event to all of its publishers, even when some fail.
type Fanout []Publisher

// Publish implements Publisher. The returned error joins every failure.
func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
