package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sakewinkel/console/internal/tracking"
)

// Lifecycle event kinds published on the lifecycle topic.
const (
	EventOrderPaid          = "order.paid"
	EventOrderDelivered     = "order.delivered"
	EventOrderStatusChanged = "order.status_changed"
	EventCatalogUpdated     = "catalog.updated"
)

// ErrMalformedEvent marks a lifecycle event that cannot be interpreted.
var ErrMalformedEvent = errors.New("malformed lifecycle event")

// LifecycleEvent describes a change to an order or the status catalog.
// Timestamps are kept as text so a bad value only affects its own event.
type LifecycleEvent struct {
	Kind                string    `json:"kind"`
	OrderID             int64     `json:"order_id,omitempty"`
	Status              string    `json:"status,omitempty"`
	Paid                bool      `json:"is_paid,omitempty"`
	OrderCreatedAt      string    `json:"order_created_at,omitempty"`
	PaymentConfirmedAt  string    `json:"payment_confirmed_at,omitempty"`
	DeliveryConfirmedAt string    `json:"delivery_confirmed_at,omitempty"`
	OccurredAt          time.Time `json:"occurred_at"`
}

// Key returns the message key used to keep an order's events ordered.
func (e LifecycleEvent) Key() []byte {
	if e.OrderID == 0 {
		return []byte(e.Kind)
	}
	return []byte(strconv.FormatInt(e.OrderID, 10))
}

// Encode serialises the event for publishing.
func (e LifecycleEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent parses a lifecycle event payload.
func DecodeEvent(payload []byte) (LifecycleEvent, error) {
	var evt LifecycleEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return LifecycleEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if strings.TrimSpace(evt.Kind) == "" {
		return LifecycleEvent{}, fmt.Errorf("%w: missing kind", ErrMalformedEvent)
	}
	return evt, nil
}

// Timeline converts the event timestamps into a tracking timeline. Empty
// timestamps are absent; unparseable ones yield ErrMalformedEvent.
func (e LifecycleEvent) Timeline() (tracking.Timeline, error) {
	created, err := parseEventTime("order_created_at", e.OrderCreatedAt)
	if err != nil {
		return tracking.Timeline{}, err
	}
	if created == nil {
		return tracking.Timeline{}, fmt.Errorf("%w: order_created_at is required", ErrMalformedEvent)
	}
	paid, err := parseEventTime("payment_confirmed_at", e.PaymentConfirmedAt)
	if err != nil {
		return tracking.Timeline{}, err
	}
	delivered, err := parseEventTime("delivery_confirmed_at", e.DeliveryConfirmedAt)
	if err != nil {
		return tracking.Timeline{}, err
	}

	return tracking.Timeline{
		CreatedAt:           *created,
		Paid:                e.Paid || paid != nil,
		PaymentConfirmedAt:  paid,
		DeliveryConfirmedAt: delivered,
	}, nil
}

// NewCatalogUpdated builds the event announcing a changed status catalog.
func NewCatalogUpdated(at time.Time) LifecycleEvent {
	return LifecycleEvent{Kind: EventCatalogUpdated, OccurredAt: at.UTC()}
}

func parseEventTime(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEvent, field, err)
	}
	return &t, nil
}
