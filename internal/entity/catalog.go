package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Consumer is a customer account registered with the payment gateway.
type Consumer struct {
	bun.BaseModel `bun:"table:consumers"`

	ID        int64     `bun:",pk,autoincrement"`
	EntityID  *string   `bun:"entity_id"`
	FirstName *string   `bun:"first_name"`
	Surname   *string   `bun:"surname"`
	Email     *string   `bun:"email"`
	Phone     *string   `bun:"phone"`
	Address   *string   `bun:"street_address"`
	Town      *string   `bun:"town_name"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// Product is an item that can be ordered.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID           int64               `bun:",pk,autoincrement"`
	Name         *string             `bun:"name"`
	Price        decimal.NullDecimal `bun:"price,type:decimal(12,2)"`
	QtyAvailable *int64              `bun:"qty_available"`
	SupplierID   *int64              `bun:"supplier_id"`
	CreatedAt    time.Time           `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// Supplier provides products.
type Supplier struct {
	bun.BaseModel `bun:"table:suppliers"`

	ID         int64     `bun:",pk,autoincrement"`
	Name       *string   `bun:"name"`
	AdminEmail *string   `bun:"admin_email"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
