package tracking

import (
	"strings"
	"time"
)

// Timeline is the set of lifecycle timestamps SLA durations are measured on.
type Timeline struct {
	CreatedAt           time.Time
	Paid                bool
	PaymentConfirmedAt  *time.Time
	DeliveryConfirmedAt *time.Time
}

// Durations are the SLA metrics of one order, in fractional hours. A nil
// value means the metric is not measurable yet or its inputs were unusable.
type Durations struct {
	HoursToPayment  *float64
	HoursToDelivery *float64
	TotalOrderHours *float64
	Anomalies       []Anomaly
}

// Measure derives SLA durations from a timeline. Durations are never
// negative: an end preceding its start yields nil and an anomaly. A zero
// timestamp is treated as malformed and nulls every duration of the order.
func Measure(t Timeline) Durations {
	var d Durations

	if t.CreatedAt.IsZero() || isZero(t.PaymentConfirmedAt) || isZero(t.DeliveryConfirmedAt) {
		d.Anomalies = append(d.Anomalies, AnomalyMalformedTimestamp)
		return d
	}

	if t.Paid && t.PaymentConfirmedAt != nil {
		d.HoursToPayment = d.hours(t.CreatedAt, *t.PaymentConfirmedAt, AnomalyNegativeHoursToPayment)
	}
	if t.DeliveryConfirmedAt != nil {
		if t.PaymentConfirmedAt != nil {
			d.HoursToDelivery = d.hours(*t.PaymentConfirmedAt, *t.DeliveryConfirmedAt, AnomalyNegativeHoursToDelivery)
		}
		d.TotalOrderHours = d.hours(t.CreatedAt, *t.DeliveryConfirmedAt, AnomalyNegativeTotalOrderHours)
	}
	return d
}

func (d *Durations) hours(start, end time.Time, negative Anomaly) *float64 {
	h := end.Sub(start).Seconds() / 3600
	if h < 0 {
		d.Anomalies = append(d.Anomalies, negative)
		return nil
	}
	return &h
}

func isZero(t *time.Time) bool {
	return t != nil && t.IsZero()
}

// Project builds the tracking record of a single joined row. Missing
// references are replaced with sentinels; it never fails.
func Project(row Row) Record {
	order := row.Order
	rec := Record{
		OrderID:         order.ID,
		OrderCreatedAt:  order.CreatedAt,
		Quantity:        order.Quantity,
		OrderAmount:     order.ExpectedPayment,
		TrackingNumber:  text(order.TrackingNumber),
		ClientName:      MissingValue,
		ClientEmail:     MissingValue,
		ClientPhone:     MissingValue,
		ClientAddress:   MissingValue,
		ClientTown:      MissingValue,
		ProductName:     MissingValue,
		SupplierName:    MissingValue,
		OrderStatus:     UnknownStatus,
		StatusUpdatedAt: order.StatusUpdatedAt,
		IsPaid:          order.Paid,

		PaymentConfirmedAt:  order.PaymentConfirmedAt,
		IsDeliveryConfirmed: order.DeliveryConfirmed || order.DeliveryConfirmedAt != nil,
		DeliveryConfirmedAt: order.DeliveryConfirmedAt,
	}

	if c := row.Consumer; c != nil {
		name := strings.TrimSpace(text(c.FirstName) + " " + text(c.Surname))
		rec.Resolved.ClientName = name
		rec.Resolved.ClientEmail = text(c.Email)
		rec.ClientName = orMissing(name)
		rec.ClientEmail = orMissing(text(c.Email))
		rec.ClientPhone = orMissing(text(c.Phone))
		rec.ClientAddress = orMissing(text(c.Address))
		rec.ClientTown = orMissing(text(c.Town))
	}
	if p := row.Product; p != nil {
		rec.Resolved.ProductName = text(p.Name)
		rec.ProductName = orMissing(text(p.Name))
		rec.ProductPrice = p.Price
	}
	if s := row.Supplier; s != nil {
		rec.SupplierName = orMissing(text(s.Name))
	}
	if s := row.Status; s != nil {
		if name := text(s.Name); name != "" {
			rec.OrderStatus = name
			rec.Resolved.Status = name
		}
		rec.StatusDescription = text(s.Description)
	}
	if p := row.Payment; p != nil {
		rec.PaymentAmount = p.PaymentAmount
		rec.PaymentSyncedAt = p.SyncedAt
	}

	d := Measure(Timeline{
		CreatedAt:           order.CreatedAt,
		Paid:                order.Paid,
		PaymentConfirmedAt:  order.PaymentConfirmedAt,
		DeliveryConfirmedAt: order.DeliveryConfirmedAt,
	})
	rec.HoursToPayment = d.HoursToPayment
	rec.HoursToDelivery = d.HoursToDelivery
	rec.TotalOrderHours = d.TotalOrderHours
	rec.Anomalies = d.Anomalies

	// Paid with neither a confirmation time nor a verified payment: paid, time unknown.
	if order.Paid && order.PaymentConfirmedAt == nil && row.Payment == nil {
		rec.Anomalies = append(rec.Anomalies, AnomalyUnverifiedPayment)
	}
	return rec
}

// ProjectAll projects every row, preserving order. A problem with one row
// only affects that row's record.
func ProjectAll(rows []Row) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Project(row))
	}
	return records
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func orMissing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}
