package tracking

import "github.com/sakewinkel/console/internal/entity"

// Dataset holds the independently fetched collections a tracking query joins.
// Orders are expected to be live (not soft-deleted) already.
type Dataset struct {
	Orders    []entity.Order
	Consumers []entity.Consumer
	Products  []entity.Product
	Suppliers []entity.Supplier
	Statuses  []entity.OrderStatus
	Payments  []entity.VerifiedPayment
}

// Row is one order with its references resolved. Any reference may be nil
// when the upstream row is missing.
type Row struct {
	Order    entity.Order
	Consumer *entity.Consumer
	Product  *entity.Product
	Supplier *entity.Supplier
	Status   *entity.OrderStatus
	Payment  *entity.VerifiedPayment
}

// Join resolves the references of every order in the dataset, preserving
// order sequence. Only the verified payment referenced by the order itself is
// attached; other payment rows pointing at the same order are ignored.
func Join(ds Dataset) []Row {
	consumers := indexBy(ds.Consumers, func(c entity.Consumer) int64 { return c.ID })
	products := indexBy(ds.Products, func(p entity.Product) int64 { return p.ID })
	suppliers := indexBy(ds.Suppliers, func(s entity.Supplier) int64 { return s.ID })
	statuses := indexBy(ds.Statuses, func(s entity.OrderStatus) int64 { return s.ID })
	payments := indexBy(ds.Payments, func(p entity.VerifiedPayment) int64 { return p.ID })

	rows := make([]Row, 0, len(ds.Orders))
	for _, order := range ds.Orders {
		row := Row{
			Order:    order,
			Consumer: lookup(consumers, order.ConsumerID),
			Product:  lookup(products, order.ProductID),
			Status:   lookup(statuses, order.StatusID),
			Payment:  lookup(payments, order.VerifiedPaymentID),
		}
		if row.Product != nil {
			row.Supplier = lookup(suppliers, row.Product.SupplierID)
		}
		rows = append(rows, row)
	}
	return rows
}

func indexBy[T any](items []T, key func(T) int64) map[int64]*T {
	idx := make(map[int64]*T, len(items))
	for i := range items {
		idx[key(items[i])] = &items[i]
	}
	return idx
}

func lookup[T any](idx map[int64]*T, id *int64) *T {
	if id == nil {
		return nil
	}
	return idx[*id]
}
