package tracking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakewinkel/console/internal/entity"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog(testStatuses(), "delivered")

	assert.Equal(t, []string{"New", "Processing", "Shipped", "Delivered"}, c.Names())
	assert.True(t, c.HasTerminal())
	assert.True(t, c.IsTerminal(ptr(int64(7))))
	assert.False(t, c.IsTerminal(ptr(int64(4))))
	assert.False(t, c.IsTerminal(nil))

	name, ok := c.Name(ptr(int64(3)))
	assert.True(t, ok)
	assert.Equal(t, "Shipped", name)
	_, ok = c.Name(ptr(int64(9)))
	assert.False(t, ok)
}

func TestCatalog_TerminalFollowsNameNotID(t *testing.T) {
	reseeded := []entity.OrderStatus{
		{ID: 4, Name: ptr("Processing")},
		{ID: 1, Name: ptr("Delivered")},
	}
	c := NewCatalog(reseeded, "Delivered")
	assert.True(t, c.IsTerminal(ptr(int64(1))))
	assert.False(t, c.IsTerminal(ptr(int64(4))))
}

func TestCatalog_MissingTerminal(t *testing.T) {
	c := NewCatalog(testStatuses(), "Archived")
	assert.False(t, c.HasTerminal())
}

func TestAggregate(t *testing.T) {
	catalog := NewCatalog(testStatuses(), "Delivered")
	orders := []entity.Order{
		{ID: 1, Paid: false, StatusID: ptr(int64(7))},
		{ID: 2, Paid: false},
		{ID: 3, Paid: true, StatusID: ptr(int64(7))},
		{ID: 4, Paid: true, StatusID: ptr(int64(2))},
		{ID: 5, Paid: true},
		{ID: 6, Paid: true, StatusID: ptr(int64(404))},
	}

	got := Aggregate(orders, catalog)
	assert.Equal(t, Stats{TotalOrders: 6, PendingPayment: 2, DeliveryPending: 3, CompletedOrders: 1}, got)
	assert.True(t, got.Consistent())
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, NewCatalog(nil, "Delivered"))
	assert.Equal(t, Stats{}, got)
	assert.True(t, got.Consistent())
}

func TestAggregate_PartitionsAlwaysAddUp(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	catalog := NewCatalog(testStatuses(), "Delivered")
	ids := []*int64{nil, ptr(int64(1)), ptr(int64(2)), ptr(int64(3)), ptr(int64(7)), ptr(int64(9)), ptr(int64(99))}

	for round := 0; round < 50; round++ {
		orders := make([]entity.Order, rng.Intn(40))
		for i := range orders {
			orders[i] = entity.Order{
				ID:       int64(i),
				Paid:     rng.Intn(2) == 0,
				StatusID: ids[rng.Intn(len(ids))],
			}
		}
		s := Aggregate(orders, catalog)
		assert.Equal(t, len(orders), s.TotalOrders)
		assert.True(t, s.Consistent(), "round %d: %+v", round, s)
	}
}
