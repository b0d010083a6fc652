package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sakewinkel/console/internal/database"
	"github.com/sakewinkel/console/internal/entity"
	service "github.com/sakewinkel/console/internal/service/tracking"
)

// Module provides the Seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db        *bun.DB
	logger    *zap.Logger
	publisher *service.Publisher
	now       func() time.Time
}

// New constructs a Seeder backed by the primary database connection. The
// publisher may be nil, in which case no catalog update is announced.
func New(conns *database.Connections, logger *zap.Logger, publisher *service.Publisher) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger, publisher: publisher, now: time.Now}
}

// Result summarises a seeding run.
type Result struct {
	Skipped  bool
	Statuses int
	Orders   int
}

// Run seeds the status catalog, reference data and sample orders. It does
// nothing when a status catalog already exists.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	existing, err := s.db.NewSelect().Model((*entity.OrderStatus)(nil)).Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("count statuses: %w", err)
	}
	if existing > 0 {
		s.logger.Info("status catalog present; skipping seed", zap.Int("statuses", existing))
		return Result{Skipped: true}, nil
	}

	var res Result
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		res, err = s.seed(ctx, tx)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("seeded tracking data", zap.Int("statuses", res.Statuses), zap.Int("orders", res.Orders))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, service.NewCatalogUpdated(s.now())); err != nil {
			s.logger.Warn("catalog update not announced", zap.Error(err))
		}
	}
	return res, nil
}

func (s *Seeder) seed(ctx context.Context, tx bun.Tx) (Result, error) {
	statuses := []entity.OrderStatus{
		{Name: str("New"), Description: str("Order received")},
		{Name: str("Processing"), Description: str("Payment verified, preparing shipment")},
		{Name: str("Shipped"), Description: str("Handed to courier")},
		{Name: str("Delivered"), Description: str("Delivery confirmed by client")},
		{Name: str("Cancelled"), Description: str("Order cancelled")},
	}
	if err := insert(ctx, tx, &statuses, "statuses"); err != nil {
		return Result{}, err
	}
	statusID := make(map[string]int64, len(statuses))
	for _, st := range statuses {
		statusID[*st.Name] = st.ID
	}

	suppliers := []entity.Supplier{
		{Name: str("Kyoto Brewers"), AdminEmail: str("admin@kyotobrewers.example")},
		{Name: str("Niigata Craft"), AdminEmail: str("ops@niigatacraft.example")},
	}
	if err := insert(ctx, tx, &suppliers, "suppliers"); err != nil {
		return Result{}, err
	}

	products := []entity.Product{
		{Name: str("Junmai Daiginjo"), Price: money("420.00"), QtyAvailable: num(40), SupplierID: &suppliers[0].ID},
		{Name: str("Nigori Sake"), Price: money("185.50"), QtyAvailable: num(120), SupplierID: &suppliers[0].ID},
		{Name: str("Tokkuri Set"), Price: money("299.99"), QtyAvailable: num(15), SupplierID: &suppliers[1].ID},
	}
	if err := insert(ctx, tx, &products, "products"); err != nil {
		return Result{}, err
	}

	consumers := []entity.Consumer{
		{FirstName: str("John"), Surname: str("Doe"), Email: str("john.doe@example.com"), Phone: str("0821234567"), Address: str("12 Long Street"), Town: str("Cape Town")},
		{FirstName: str("Mary"), Surname: str("Smith"), Email: str("mary.smith@example.com"), Town: str("Durban")},
		{FirstName: str("Peter"), Surname: str("Brown"), Email: str("peter.brown@example.com"), Phone: str("0837654321")},
	}
	if err := insert(ctx, tx, &consumers, "consumers"); err != nil {
		return Result{}, err
	}

	base := s.now().UTC().Truncate(time.Hour).Add(-10 * 24 * time.Hour)
	plans := []orderPlan{
		{created: 0, consumer: 0, product: 0, qty: 1, status: "New"},
		{created: 6, consumer: 1, product: 2, qty: 1, status: "Processing", paidAfter: 3},
		{created: 20, consumer: 2, product: 1, qty: 2, status: "Shipped", paidAfter: 1, tracking: "ZA-100234"},
		{created: 30, consumer: 0, product: 1, qty: 6, status: "Delivered", paidAfter: 2, deliveredAfter: 26, tracking: "ZA-100240"},
		{created: 52, consumer: 1, product: 0, qty: 1, status: "Delivered", paidAfter: 5, deliveredAfter: 48, tracking: "ZA-100251"},
		{created: 75, consumer: 2, product: 2, qty: 1, status: "Cancelled"},
		{created: 96, consumer: 0, product: 2, qty: 2, status: "New"},
		{created: 120, consumer: 2, product: 0, qty: 3, status: "Processing", paidAfter: 12},
	}

	orders := make([]entity.Order, 0, len(plans))
	for _, p := range plans {
		orders = append(orders, p.order(base, statusID[p.status], consumers[p.consumer].ID, products[p.product]))
	}
	if err := insert(ctx, tx, &orders, "orders"); err != nil {
		return Result{}, err
	}

	for i := range orders {
		o := &orders[i]
		if o.PaymentConfirmedAt == nil {
			continue
		}
		payment := entity.VerifiedPayment{
			OrderID:       &o.ID,
			ConsumerID:    o.ConsumerID,
			PaymentAmount: o.ExpectedPayment,
			Reference:     str(fmt.Sprintf("EFT-%05d", o.ID)),
			SyncedAt:      timePtr(o.PaymentConfirmedAt.Add(15 * time.Minute)),
		}
		if _, err := tx.NewInsert().Model(&payment).Exec(ctx); err != nil {
			return Result{}, fmt.Errorf("insert payment for order %d: %w", o.ID, err)
		}
		o.VerifiedPaymentID = &payment.ID
		if _, err := tx.NewUpdate().Model(o).Column("verified_payment_id").WherePK().Exec(ctx); err != nil {
			return Result{}, fmt.Errorf("link payment for order %d: %w", o.ID, err)
		}
	}

	return Result{Statuses: len(statuses), Orders: len(orders)}, nil
}

// orderPlan describes a sample order with offsets in hours.
type orderPlan struct {
	created        int
	consumer       int
	product        int
	qty            int64
	status         string
	paidAfter      int
	deliveredAfter int
	tracking       string
}

func (p orderPlan) order(base time.Time, statusID, consumerID int64, product entity.Product) entity.Order {
	created := base.Add(time.Duration(p.created) * time.Hour)
	o := entity.Order{
		CreatedAt:       created,
		Quantity:        num(p.qty),
		StatusID:        &statusID,
		StatusUpdatedAt: timePtr(created),
		ConsumerID:      &consumerID,
		ProductID:       &product.ID,
	}
	if product.Price.Valid {
		o.ExpectedPayment = decimal.NewNullDecimal(product.Price.Decimal.Mul(decimal.NewFromInt(p.qty)))
	}
	if p.tracking != "" {
		o.TrackingNumber = str(p.tracking)
	}
	if p.paidAfter > 0 {
		paid := created.Add(time.Duration(p.paidAfter) * time.Hour)
		o.Paid = true
		o.PaymentConfirmedAt = &paid
		o.StatusUpdatedAt = timePtr(paid)
	}
	if p.deliveredAfter > 0 && o.PaymentConfirmedAt != nil {
		delivered := o.PaymentConfirmedAt.Add(time.Duration(p.deliveredAfter) * time.Hour)
		o.DeliveryConfirmed = true
		o.DeliveryConfirmedAt = &delivered
		o.StatusUpdatedAt = timePtr(delivered)
	}
	return o
}

func insert(ctx context.Context, tx bun.Tx, model any, what string) error {
	if _, err := tx.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

func str(s string) *string { return &s }

func num(n int64) *int64 { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}
