package tracking

import "github.com/sakewinkel/console/internal/entity"

// Stats summarises the whole live order set. It is independent of any
// tracking filter.
type Stats struct {
	TotalOrders     int `json:"totalOrders"`
	PendingPayment  int `json:"pendingPayment"`
	DeliveryPending int `json:"deliveryPending"`
	CompletedOrders int `json:"completedOrders"`
}

// Consistent reports whether the three partitions add up to the total.
func (s Stats) Consistent() bool {
	return s.PendingPayment+s.DeliveryPending+s.CompletedOrders == s.TotalOrders
}

// Aggregate partitions orders into pending payment, delivery pending and
// completed. Every order lands in exactly one partition.
func Aggregate(orders []entity.Order, catalog *Catalog) Stats {
	var s Stats
	for _, o := range orders {
		s.TotalOrders++
		switch {
		case !o.Paid:
			s.PendingPayment++
		case catalog != nil && catalog.IsTerminal(o.StatusID):
			s.CompletedOrders++
		default:
			s.DeliveryPending++
		}
	}
	return s
}
