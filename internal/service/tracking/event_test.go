package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	evt, err := DecodeEvent([]byte(`{
		"kind": "order.delivered",
		"order_id": 42,
		"is_paid": true,
		"order_created_at": "2025-04-19T08:00:00Z",
		"payment_confirmed_at": "2025-04-19T10:00:00Z",
		"delivery_confirmed_at": "2025-04-20T10:00:00+02:00"
	}`))
	require.NoError(t, err)
	assert.Equal(t, EventOrderDelivered, evt.Kind)
	assert.Equal(t, []byte("42"), evt.Key())

	tl, err := evt.Timeline()
	require.NoError(t, err)
	assert.True(t, tl.Paid)
	assert.True(t, tl.CreatedAt.Equal(t0))
	require.NotNil(t, tl.DeliveryConfirmedAt)
	assert.True(t, tl.DeliveryConfirmedAt.Equal(t0.Add(24*time.Hour)))
}

func TestDecodeEvent_Malformed(t *testing.T) {
	for _, payload := range []string{`not json`, `{}`, `{"kind":"  "}`} {
		_, err := DecodeEvent([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformedEvent, payload)
	}
}

func TestLifecycleEvent_Timeline(t *testing.T) {
	tests := []struct {
		name    string
		event   LifecycleEvent
		wantErr bool
		paid    bool
	}{
		{name: "created_only", event: LifecycleEvent{OrderCreatedAt: "2025-04-19T08:00:00Z"}},
		{name: "payment_implies_paid", event: LifecycleEvent{
			OrderCreatedAt:     "2025-04-19T08:00:00Z",
			PaymentConfirmedAt: "2025-04-19T09:00:00Z",
		}, paid: true},
		{name: "missing_creation", event: LifecycleEvent{PaymentConfirmedAt: "2025-04-19T09:00:00Z"}, wantErr: true},
		{name: "bad_delivery", event: LifecycleEvent{
			OrderCreatedAt:      "2025-04-19T08:00:00Z",
			DeliveryConfirmedAt: "tomorrow",
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := tt.event.Timeline()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.paid, tl.Paid)
		})
	}
}

func TestNewCatalogUpdated(t *testing.T) {
	evt := NewCatalogUpdated(t0)
	raw, err := evt.Encode()
	require.NoError(t, err)

	decoded, err := DecodeEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, EventCatalogUpdated, decoded.Kind)
	assert.Equal(t, []byte(EventCatalogUpdated), decoded.Key())
}
