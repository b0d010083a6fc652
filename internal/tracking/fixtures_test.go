package tracking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakewinkel/console/internal/entity"
)

var t0 = time.Date(2025, 4, 19, 8, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func testStatuses() []entity.OrderStatus {
	return []entity.OrderStatus{
		{ID: 3, Name: ptr("Shipped")},
		{ID: 1, Name: ptr("New"), Description: ptr("Order received")},
		{ID: 7, Name: ptr("Delivered")},
		{ID: 2, Name: ptr("Processing")},
		{ID: 9, Name: nil},
	}
}

// testDataset returns three orders: an unpaid one for "John Doe", a paid and
// delivered "Johnnie's Sake" order and an unrelated processing order.
func testDataset() Dataset {
	return Dataset{
		Orders: []entity.Order{
			{
				ID:              1,
				CreatedAt:       t0,
				ExpectedPayment: amount("120.50"),
				StatusID:        ptr(int64(1)),
				ConsumerID:      ptr(int64(10)),
				ProductID:       ptr(int64(100)),
			},
			{
				ID:                  2,
				CreatedAt:           t0.Add(24 * time.Hour),
				ExpectedPayment:     amount("299.99"),
				Paid:                true,
				StatusID:            ptr(int64(7)),
				PaymentConfirmedAt:  ptr(t0.Add(26 * time.Hour)),
				DeliveryConfirmedAt: ptr(t0.Add(50 * time.Hour)),
				ConsumerID:          ptr(int64(11)),
				ProductID:           ptr(int64(101)),
				VerifiedPaymentID:   ptr(int64(500)),
			},
			{
				ID:                 3,
				CreatedAt:          t0.Add(48 * time.Hour),
				Paid:               true,
				StatusID:           ptr(int64(2)),
				PaymentConfirmedAt: ptr(t0.Add(49 * time.Hour)),
				ConsumerID:         ptr(int64(12)),
				ProductID:          ptr(int64(102)),
			},
		},
		Consumers: []entity.Consumer{
			{ID: 10, FirstName: ptr("John"), Surname: ptr("Doe"), Email: ptr("jd@example.com"), Phone: ptr("0821234567")},
			{ID: 11, FirstName: ptr("Mary"), Surname: ptr("Smith"), Email: ptr("mary@example.com")},
			{ID: 12, FirstName: ptr("Peter"), Surname: ptr("Brown"), Email: ptr("peter@example.com")},
		},
		Products: []entity.Product{
			{ID: 100, Name: ptr("Junmai Daiginjo"), SupplierID: ptr(int64(1000))},
			{ID: 101, Name: ptr("Johnnie's Sake"), Price: amount("299.99")},
			{ID: 102, Name: ptr("Tokkuri Set")},
		},
		Suppliers: []entity.Supplier{{ID: 1000, Name: ptr("Kyoto Brewers")}},
		Statuses:  testStatuses(),
		Payments: []entity.VerifiedPayment{
			{ID: 500, OrderID: ptr(int64(2)), PaymentAmount: amount("299.99"), SyncedAt: ptr(t0.Add(27 * time.Hour))},
			{ID: 501, OrderID: ptr(int64(2)), PaymentAmount: amount("1.00")},
		},
	}
}

func testRecords() []Record {
	return ProjectAll(Join(testDataset()))
}

// manyRecords returns n records created one hour apart, oldest first.
func manyRecords(n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{OrderID: int64(i + 1), OrderCreatedAt: t0.Add(time.Duration(i) * time.Hour)}
	}
	return recs
}
