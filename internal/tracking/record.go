package tracking

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MissingValue replaces display values whose source record is absent.
	MissingValue = "—"
	// UnknownStatus replaces the status name of orders without a resolvable status.
	UnknownStatus = "Unknown"
)

// Anomaly flags a data problem found while projecting a single order.
type Anomaly string

const (
	AnomalyMalformedTimestamp      Anomaly = "malformed_timestamp"
	AnomalyNegativeHoursToPayment  Anomaly = "negative_hours_to_payment"
	AnomalyNegativeHoursToDelivery Anomaly = "negative_hours_to_delivery"
	AnomalyNegativeTotalOrderHours Anomaly = "negative_total_order_hours"
	AnomalyUnverifiedPayment       Anomaly = "unverified_payment"
)

// Record is the denormalized tracking view of one order. It is recomputed on
// every query and never stored.
type Record struct {
	OrderID        int64
	OrderCreatedAt time.Time
	Quantity       *int64
	OrderAmount    decimal.NullDecimal
	TrackingNumber string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string
	ClientTown    string

	ProductName  string
	ProductPrice decimal.NullDecimal
	SupplierName string

	OrderStatus       string
	StatusDescription string
	StatusUpdatedAt   *time.Time

	IsPaid              bool
	PaymentConfirmedAt  *time.Time
	PaymentAmount       decimal.NullDecimal
	PaymentSyncedAt     *time.Time
	IsDeliveryConfirmed bool
	DeliveryConfirmedAt *time.Time

	HoursToPayment  *float64
	HoursToDelivery *float64
	TotalOrderHours *float64

	Anomalies []Anomaly

	// Resolved keeps the filterable values as found in the source records,
	// before placeholders are substituted for display.
	Resolved Resolved
}

// Resolved holds the values filters match against. An empty field means the
// value was missing upstream and matches no search or status predicate.
type Resolved struct {
	Status      string
	ClientName  string
	ClientEmail string
	ProductName string
}

// HasAnomaly reports whether the record was flagged with kind.
func (r Record) HasAnomaly(kind Anomaly) bool {
	for _, a := range r.Anomalies {
		if a == kind {
			return true
		}
	}
	return false
}
