package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_RequestResetsPage(t *testing.T) {
	b := NewBoard(10)
	first := b.Request(Filter{})
	assert.True(t, b.Loading())
	assert.True(t, b.Deliver(first, manyRecords(35)))
	assert.False(t, b.Loading())

	assert.Equal(t, 3, b.GoTo(3).Number)

	next := b.Request(Filter{Search: "x"})
	assert.Equal(t, 1, b.View().Number)
	assert.True(t, b.Deliver(next, manyRecords(5)))
	assert.Equal(t, 1, b.View().Number)
	assert.Equal(t, Filter{Search: "x"}, b.Filter())
}

func TestBoard_DropsStaleResponses(t *testing.T) {
	b := NewBoard(10)
	slow := b.Request(Filter{Status: "New"})
	fast := b.Request(Filter{Status: "Delivered"})

	assert.True(t, b.Deliver(fast, manyRecords(2)))
	assert.False(t, b.Deliver(slow, manyRecords(30)))
	assert.False(t, b.Fail(slow))

	view := b.View()
	assert.Equal(t, 2, view.TotalItems)
	assert.False(t, b.Failed())
	assert.Equal(t, Filter{Status: "Delivered"}, b.Filter())
}

func TestBoard_FailShowsEmptyState(t *testing.T) {
	b := NewBoard(10)
	ok := b.Request(Filter{})
	b.Deliver(ok, manyRecords(12))

	bad := b.Request(Filter{Search: "x"})
	assert.True(t, b.Fail(bad))
	assert.True(t, b.Failed())
	assert.False(t, b.Loading())
	assert.Empty(t, b.View().Items)
}

func TestBoard_Navigation(t *testing.T) {
	b := NewBoard(10)
	b.Deliver(b.Request(Filter{}), manyRecords(23))

	assert.Equal(t, 1, b.Prev().Number)
	assert.Equal(t, 2, b.Next().Number)
	assert.Equal(t, 3, b.Next().Number)
	assert.Equal(t, 3, b.Next().Number)
	assert.Equal(t, 1, b.GoTo(0).Number)
	assert.Equal(t, 3, b.GoTo(99).Number)
	assert.Equal(t, 2, b.Prev().Number)
}
