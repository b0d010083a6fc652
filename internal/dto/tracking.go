package dto

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakewinkel/console/internal/tracking"
)

// TrackingRecordResponse represents a tracking record as exposed via transport layers.
type TrackingRecordResponse struct {
	OrderID        int64     `json:"orderId"`
	OrderCreatedAt time.Time `json:"orderCreatedAt"`
	Quantity       *int64    `json:"quantity"`
	OrderAmount    *string   `json:"orderAmount"`
	TrackingNumber string    `json:"trackingNumber"`

	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientPhone   string `json:"clientPhone"`
	ClientAddress string `json:"clientAddress"`
	ClientTown    string `json:"clientTown"`

	ProductName  string  `json:"productName"`
	ProductPrice *string `json:"productPrice"`
	SupplierName string  `json:"supplierName"`

	OrderStatus       string     `json:"orderStatus"`
	StatusDescription string     `json:"statusDescription"`
	StatusUpdatedAt   *time.Time `json:"statusUpdatedAt"`

	IsPaid              bool       `json:"isPaid"`
	PaymentConfirmedAt  *time.Time `json:"paymentConfirmedAt"`
	PaymentAmount       *string    `json:"paymentAmount"`
	PaymentSyncedAt     *time.Time `json:"paymentSyncedAt"`
	IsDeliveryConfirmed bool       `json:"isDeliveryConfirmed"`
	DeliveryConfirmedAt *time.Time `json:"deliveryConfirmedAt"`

	HoursToPayment  *float64 `json:"hoursToPayment"`
	HoursToDelivery *float64 `json:"hoursToDelivery"`
	TotalOrderHours *float64 `json:"totalOrderHours"`

	Anomalies []string `json:"anomalies,omitempty"`
}

// PageMeta describes the position of a page within a result set.
type PageMeta struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	TotalItems   int   `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	VisiblePages []int `json:"visiblePages"`
	HasPrev      bool  `json:"hasPrev"`
	HasNext      bool  `json:"hasNext"`
	FirstItem    int   `json:"firstItem"`
	LastItem     int   `json:"lastItem"`
}

// TrackingPageResponse is one page of tracking records with its metadata.
type TrackingPageResponse struct {
	Records []TrackingRecordResponse `json:"records"`
	Filter  tracking.Filter          `json:"filter"`
	Page    PageMeta                 `json:"page"`
}

// DashboardResponse combines the sections of the tracking dashboard.
type DashboardResponse struct {
	Tracking TrackingPageResponse `json:"tracking"`
	Stats    tracking.Stats       `json:"stats"`
	Statuses []string             `json:"statuses"`
}

// FromRecord maps a tracking record to its transport representation.
func FromRecord(rec tracking.Record) TrackingRecordResponse {
	out := TrackingRecordResponse{
		OrderID:             rec.OrderID,
		OrderCreatedAt:      rec.OrderCreatedAt,
		Quantity:            rec.Quantity,
		OrderAmount:         amountPtr(rec.OrderAmount),
		TrackingNumber:      rec.TrackingNumber,
		ClientName:          rec.ClientName,
		ClientEmail:         rec.ClientEmail,
		ClientPhone:         rec.ClientPhone,
		ClientAddress:       rec.ClientAddress,
		ClientTown:          rec.ClientTown,
		ProductName:         rec.ProductName,
		ProductPrice:        amountPtr(rec.ProductPrice),
		SupplierName:        rec.SupplierName,
		OrderStatus:         rec.OrderStatus,
		StatusDescription:   rec.StatusDescription,
		StatusUpdatedAt:     rec.StatusUpdatedAt,
		IsPaid:              rec.IsPaid,
		PaymentConfirmedAt:  rec.PaymentConfirmedAt,
		PaymentAmount:       amountPtr(rec.PaymentAmount),
		PaymentSyncedAt:     rec.PaymentSyncedAt,
		IsDeliveryConfirmed: rec.IsDeliveryConfirmed,
		DeliveryConfirmedAt: rec.DeliveryConfirmedAt,
		HoursToPayment:      rec.HoursToPayment,
		HoursToDelivery:     rec.HoursToDelivery,
		TotalOrderHours:     rec.TotalOrderHours,
	}
	for _, a := range rec.Anomalies {
		out.Anomalies = append(out.Anomalies, string(a))
	}
	return out
}

// FromPage maps a page of records together with the filter that produced it.
func FromPage(page tracking.Page[tracking.Record], f tracking.Filter) TrackingPageResponse {
	records := make([]TrackingRecordResponse, 0, len(page.Items))
	for _, rec := range page.Items {
		records = append(records, FromRecord(rec))
	}
	visible := page.Visible
	if visible == nil {
		visible = []int{}
	}
	return TrackingPageResponse{
		Records: records,
		Filter:  f,
		Page: PageMeta{
			Page:         page.Number,
			PageSize:     page.Size,
			TotalItems:   page.TotalItems,
			TotalPages:   page.TotalPages,
			VisiblePages: visible,
			HasPrev:      page.HasPrev,
			HasNext:      page.HasNext,
			FirstItem:    page.FirstItem,
			LastItem:     page.LastItem,
		},
	}
}

// FormatHours renders a duration metric with one decimal, or the missing
// value placeholder when it is null.
func FormatHours(h *float64) string {
	if h == nil {
		return tracking.MissingValue
	}
	return strconv.FormatFloat(*h, 'f', 1, 64) + "h"
}

// FormatAmount renders money with two decimals.
func FormatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return tracking.MissingValue
	}
	return d.Decimal.StringFixed(2)
}

// FormatTime renders an optional timestamp in loc.
func FormatTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return tracking.MissingValue
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

// Showing renders the "Showing X-Y of N" summary of a page.
func Showing(meta PageMeta) string {
	if meta.TotalItems == 0 {
		return "No orders found"
	}
	return "Showing " + strconv.Itoa(meta.FirstItem) + "-" + strconv.Itoa(meta.LastItem) + " of " + strconv.Itoa(meta.TotalItems)
}

func amountPtr(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}
