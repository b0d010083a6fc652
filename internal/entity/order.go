package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Order represents a purchase order stored in the relational database.
// Orders are soft-deleted; bun excludes rows with deleted_at set from selects.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID                  int64               `bun:",pk,autoincrement"`
	CreatedAt           time.Time           `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	Quantity            *int64              `bun:"quantity"`
	ExpectedPayment     decimal.NullDecimal `bun:"expected_payment,type:decimal(12,2)"`
	Paid                bool                `bun:"is_paid,notnull,default:false"`
	StatusID            *int64              `bun:"status_id"`
	StatusUpdatedAt     *time.Time          `bun:"status_updated_at"`
	PaymentConfirmedAt  *time.Time          `bun:"payment_confirmed_at"`
	DeliveryConfirmed   bool                `bun:"delivery_confirmed,notnull,default:false"`
	DeliveryConfirmedAt *time.Time          `bun:"delivery_confirmed_at"`
	TrackingNumber      *string             `bun:"tracking_number"`
	ConsumerID          *int64              `bun:"consumer_id"`
	ProductID           *int64              `bun:"product_id"`
	VerifiedPaymentID   *int64              `bun:"verified_payment_id"`
	DeletedAt           time.Time           `bun:"deleted_at,soft_delete,nullzero"`
}

// OrderStatus is an entry of the order status reference catalog.
type OrderStatus struct {
	bun.BaseModel `bun:"table:order_statuses"`

	ID          int64     `bun:",pk,autoincrement"`
	Name        *string   `bun:"name"`
	Description *string   `bun:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// VerifiedPayment is a payment confirmed by the payment gateway sync.
type VerifiedPayment struct {
	bun.BaseModel `bun:"table:verified_payments"`

	ID            int64               `bun:",pk,autoincrement"`
	OrderID       *int64              `bun:"order_id"`
	ConsumerID    *int64              `bun:"consumer_id"`
	PaymentAmount decimal.NullDecimal `bun:"payment_amount,type:decimal(12,2)"`
	Reference     *string             `bun:"reference"`
	SyncedAt      *time.Time          `bun:"synced_at"`
	CreatedAt     time.Time           `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
