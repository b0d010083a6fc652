package tracking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sakewinkel/console/internal/database"
	"github.com/sakewinkel/console/internal/entity"
	"github.com/sakewinkel/console/internal/tracking"
)

var repoTracer = otel.Tracer("github.com/sakewinkel/console/repository/tracking")

// ErrNotFound is returned when an order is missing or soft-deleted.
var ErrNotFound = errors.New("order not found")

// Repository reads the fulfillment records tracking queries are built from.
// All reads go to the reader connection; deleted orders are never returned.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// Dataset loads every live order, newest first, together with the records
// it references.
func (r *Repository) Dataset(ctx context.Context) (tracking.Dataset, error) {
	ctx, span := repoTracer.Start(ctx, "TrackingRepository.Dataset")
	defer span.End()

	var orders []entity.Order
	err := r.reader.NewSelect().Model(&orders).
		OrderExpr("created_at DESC").
		OrderExpr("id DESC").
		Scan(ctx)
	if err != nil {
		return tracking.Dataset{}, spanError(span, fmt.Errorf("select orders: %w", err))
	}

	ds, err := r.resolve(ctx, orders)
	if err != nil {
		return tracking.Dataset{}, spanError(span, err)
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return ds, nil
}

// OrderDataset loads a single live order and the records it references.
func (r *Repository) OrderDataset(ctx context.Context, id int64) (tracking.Dataset, error) {
	ctx, span := repoTracer.Start(ctx, "TrackingRepository.OrderDataset", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().Model(order).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return tracking.Dataset{}, ErrNotFound
	}
	if err != nil {
		return tracking.Dataset{}, spanError(span, fmt.Errorf("select order: %w", err))
	}

	ds, err := r.resolve(ctx, []entity.Order{*order})
	if err != nil {
		return tracking.Dataset{}, spanError(span, err)
	}
	return ds, nil
}

// OrderStates loads the payment flag and status of every live order.
func (r *Repository) OrderStates(ctx context.Context) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "TrackingRepository.OrderStates")
	defer span.End()

	var orders []entity.Order
	err := r.reader.NewSelect().Model(&orders).
		Column("id", "is_paid", "status_id").
		Scan(ctx)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("select order states: %w", err))
	}
	return orders, nil
}

// Statuses loads the status catalog in its natural (id) order.
func (r *Repository) Statuses(ctx context.Context) ([]entity.OrderStatus, error) {
	ctx, span := repoTracer.Start(ctx, "TrackingRepository.Statuses")
	defer span.End()

	var statuses []entity.OrderStatus
	if err := r.reader.NewSelect().Model(&statuses).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, spanError(span, fmt.Errorf("select statuses: %w", err))
	}
	return statuses, nil
}

func (r *Repository) resolve(ctx context.Context, orders []entity.Order) (tracking.Dataset, error) {
	ds := tracking.Dataset{Orders: orders}

	var consumerIDs, productIDs, paymentIDs refSet
	for _, o := range orders {
		consumerIDs.add(o.ConsumerID)
		productIDs.add(o.ProductID)
		paymentIDs.add(o.VerifiedPaymentID)
	}

	if err := r.selectIn(ctx, &ds.Consumers, consumerIDs.ids); err != nil {
		return ds, fmt.Errorf("select consumers: %w", err)
	}
	if err := r.selectIn(ctx, &ds.Products, productIDs.ids); err != nil {
		return ds, fmt.Errorf("select products: %w", err)
	}

	var supplierIDs refSet
	for _, p := range ds.Products {
		supplierIDs.add(p.SupplierID)
	}
	if err := r.selectIn(ctx, &ds.Suppliers, supplierIDs.ids); err != nil {
		return ds, fmt.Errorf("select suppliers: %w", err)
	}
	if err := r.selectIn(ctx, &ds.Payments, paymentIDs.ids); err != nil {
		return ds, fmt.Errorf("select payments: %w", err)
	}

	if err := r.reader.NewSelect().Model(&ds.Statuses).OrderExpr("id ASC").Scan(ctx); err != nil {
		return ds, fmt.Errorf("select statuses: %w", err)
	}
	return ds, nil
}

func (r *Repository) selectIn(ctx context.Context, dest any, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.reader.NewSelect().Model(dest).Where("id IN (?)", bun.In(ids)).Scan(ctx)
}

// refSet collects distinct non-nil references in first-seen order.
type refSet struct {
	seen map[int64]struct{}
	ids  []int64
}

func (s *refSet) add(ref *int64) {
	if ref == nil {
		return
	}
	if s.seen == nil {
		s.seen = make(map[int64]struct{})
	}
	if _, ok := s.seen[*ref]; ok {
		return
	}
	s.seen[*ref] = struct{}{}
	s.ids = append(s.ids, *ref)
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "select failed")
	return err
}
