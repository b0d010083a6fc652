package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_LastPartialPage(t *testing.T) {
	recs := manyRecords(23)

	p := Paginate(recs, 10, 3)
	require.Len(t, p.Items, 3)
	assert.Equal(t, []int64{21, 22, 23}, orderIDs(p.Items))
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, p.Visible)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)
	assert.Equal(t, 21, p.FirstItem)
	assert.Equal(t, 23, p.LastItem)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]Record(nil), 10, 1)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Visible)
	assert.False(t, p.HasPrev)
	assert.False(t, p.HasNext)
	assert.Zero(t, p.FirstItem)
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	recs := manyRecords(15)

	high := Paginate(recs, 10, 9)
	assert.Equal(t, 2, high.Number)
	assert.Len(t, high.Items, 5)

	low := Paginate(recs, 10, -3)
	assert.Equal(t, 1, low.Number)
	assert.Len(t, low.Items, 10)
}

func TestPaginate_DefaultSize(t *testing.T) {
	p := Paginate(manyRecords(12), 0, 1)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, 2, p.TotalPages)
}

func TestPaginate_PagesReassembleInput(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 23, 57} {
		for _, size := range []int{1, 3, 10} {
			recs := manyRecords(n)
			first := Paginate(recs, size, 1)

			var joined []int64
			for page := 1; page <= first.TotalPages; page++ {
				joined = append(joined, orderIDs(Paginate(recs, size, page).Items)...)
			}
			want := orderIDs(recs)
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, want, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "no_pages", current: 1, total: 0, want: []int{}},
		{name: "fewer_than_five", current: 2, total: 4, want: []int{1, 2, 3, 4}},
		{name: "exactly_five", current: 5, total: 5, want: []int{1, 2, 3, 4, 5}},
		{name: "near_start", current: 3, total: 10, want: []int{1, 2, 3, 4, 5}},
		{name: "middle", current: 6, total: 10, want: []int{4, 5, 6, 7, 8}},
		{name: "near_end", current: 8, total: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "last", current: 10, total: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "clamped", current: 40, total: 10, want: []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.current, tt.total))
		})
	}
}
