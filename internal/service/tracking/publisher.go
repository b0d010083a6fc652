package tracking

import (
	"context"
	"fmt"

	"github.com/sakewinkel/console/internal/messaging"
)

// Publisher announces lifecycle events on the messaging client's topic.
type Publisher struct {
	client messaging.Client
}

// NewPublisher constructs a lifecycle event Publisher.
func NewPublisher(client messaging.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish encodes evt and writes it keyed by order.
func (p *Publisher) Publish(ctx context.Context, evt LifecycleEvent) error {
	payload, err := evt.Encode()
	if err != nil {
		return fmt.Errorf("encode %s event: %w", evt.Kind, err)
	}
	if err := p.client.Publish(ctx, evt.Key(), payload, messaging.Header{Key: messaging.KindHeader, Value: evt.Kind}); err != nil {
		return fmt.Errorf("publish %s event: %w", evt.Kind, err)
	}
	return nil
}
