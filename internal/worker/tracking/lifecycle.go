package tracking

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sakewinkel/console/internal/config"
	"github.com/sakewinkel/console/internal/messaging"
	service "github.com/sakewinkel/console/internal/service/tracking"
	"github.com/sakewinkel/console/internal/tracking"
	"github.com/sakewinkel/console/internal/worker"
)

const instrumentationName = "github.com/sakewinkel/console/worker/tracking"

var workerTracer = otel.Tracer(instrumentationName)

// Module registers lifecycle event handlers.
var Module = fx.Module("worker_tracking",
	fx.Provide(
		fx.Annotate(
			NewRegistration,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

type catalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

// LifecycleHandler records fulfilment SLA durations from order lifecycle
// events and keeps the cached status catalog fresh.
type LifecycleHandler struct {
	catalog  catalogInvalidator
	logger   *zap.Logger
	slaHours metric.Float64Histogram
	skipped  metric.Int64Counter
}

// NewLifecycleHandler builds a handler using meters for its instruments.
func NewLifecycleHandler(catalog catalogInvalidator, logger *zap.Logger, meters metric.MeterProvider) (*LifecycleHandler, error) {
	if meters == nil {
		meters = otel.GetMeterProvider()
	}
	meter := meters.Meter(instrumentationName)

	slaHours, err := meter.Float64Histogram("tracking.sla.hours",
		metric.WithDescription("Order fulfilment durations derived from lifecycle events"),
		metric.WithUnit("h"),
	)
	if err != nil {
		return nil, err
	}
	skipped, err := meter.Int64Counter("tracking.events.skipped",
		metric.WithDescription("Lifecycle events dropped as malformed"),
	)
	if err != nil {
		return nil, err
	}
	return &LifecycleHandler{catalog: catalog, logger: logger, slaHours: slaHours, skipped: skipped}, nil
}

// NewRegistration binds the lifecycle handler to the configured topic.
func NewRegistration(svc *service.Service, logger *zap.Logger, cfg config.Config, meters metric.MeterProvider) (worker.HandlerRegistration, error) {
	h, err := NewLifecycleHandler(svc, logger, meters)
	if err != nil {
		return worker.HandlerRegistration{}, err
	}
	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: h.Handle,
	}, nil
}

// Handle processes one lifecycle message. Malformed events are logged and
// acknowledged; only cache failures are returned for redelivery.
func (h *LifecycleHandler) Handle(ctx context.Context, msg messaging.Message) error {
	ctx, span := workerTracer.Start(ctx, "worker.tracking.lifecycle", trace.WithAttributes(
		attribute.String("messaging.topic", msg.Topic),
		attribute.Int64("messaging.offset", msg.Offset),
	))
	defer span.End()

	evt, err := service.DecodeEvent(msg.Value)
	if err != nil {
		h.skip(ctx, span, msg.Headers[messaging.KindHeader], err)
		return nil
	}
	span.SetAttributes(attribute.String("event.kind", evt.Kind), attribute.Int64("order.id", evt.OrderID))

	switch evt.Kind {
	case service.EventCatalogUpdated:
		if err := h.catalog.InvalidateCatalog(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalidate failed")
			h.logger.Error("status catalog invalidation failed", zap.Error(err))
			return err
		}
		h.logger.Info("status catalog invalidated")
	case service.EventOrderPaid, service.EventOrderDelivered:
		tl, err := evt.Timeline()
		if err != nil {
			h.skip(ctx, span, evt.Kind, err)
			return nil
		}
		h.recordSLA(ctx, evt, tracking.Measure(tl))
	case service.EventOrderStatusChanged:
		h.logger.Debug("order status changed", zap.Int64("order_id", evt.OrderID), zap.String("status", evt.Status))
	default:
		h.logger.Debug("ignoring lifecycle event", zap.String("kind", evt.Kind))
	}
	return nil
}

func (h *LifecycleHandler) recordSLA(ctx context.Context, evt service.LifecycleEvent, d tracking.Durations) {
	for _, a := range d.Anomalies {
		h.logger.Warn("lifecycle event anomaly", zap.Int64("order_id", evt.OrderID), zap.String("anomaly", string(a)))
	}

	observations := []struct {
		name  string
		hours *float64
	}{
		{"hours_to_payment", d.HoursToPayment},
		{"hours_to_delivery", d.HoursToDelivery},
		{"total_order_hours", d.TotalOrderHours},
	}
	for _, o := range observations {
		if o.hours == nil {
			continue
		}
		h.slaHours.Record(ctx, *o.hours, metric.WithAttributes(
			attribute.String("metric", o.name),
			attribute.String("event", evt.Kind),
		))
	}
}

func (h *LifecycleHandler) skip(ctx context.Context, span trace.Span, kind string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "malformed event")
	if kind == "" {
		kind = "unknown"
	}
	h.skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	h.logger.Warn("skipping malformed lifecycle event", zap.String("kind", kind), zap.Error(err))
}
