package tracking

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakewinkel/console/internal/entity"
)

func orderIDs(recs []Record) []int64 {
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.OrderID)
	}
	return ids
}

func TestEngine_Apply(t *testing.T) {
	engine := NewEngine(time.UTC)
	records := testRecords()

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "empty_filter_sorts_newest_first", filter: Filter{}, want: []int64{3, 2, 1}},
		{name: "search_matches_client_and_product", filter: Filter{Search: "john"}, want: []int64{2, 1}},
		{name: "search_is_case_insensitive", filter: Filter{Search: "JOHNNIE"}, want: []int64{2}},
		{name: "search_matches_email", filter: Filter{Search: "peter@"}, want: []int64{3}},
		{name: "search_without_hits", filter: Filter{Search: "nobody"}, want: []int64{}},
		{name: "status_exact", filter: Filter{Status: "Delivered"}, want: []int64{2}},
		{name: "status_is_case_sensitive", filter: Filter{Status: "delivered"}, want: []int64{}},
		{name: "unknown_status", filter: Filter{Status: "Archived"}, want: []int64{}},
		{name: "start_date_inclusive", filter: Filter{StartDate: "2025-04-20"}, want: []int64{3, 2}},
		{name: "end_date_covers_whole_day", filter: Filter{EndDate: "2025-04-20"}, want: []int64{2, 1}},
		{name: "timestamp_bounds_inclusive", filter: Filter{
			StartDate: "2025-04-20T08:00:00Z",
			EndDate:   "2025-04-20T08:00:00Z",
		}, want: []int64{2}},
		{name: "unparseable_dates_ignored", filter: Filter{StartDate: "yesterday", EndDate: "31/12/2025"}, want: []int64{3, 2, 1}},
		{name: "conjunctive", filter: Filter{Search: "john", Status: "New"}, want: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderIDs(engine.Apply(records, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_ApplyIsIdempotent(t *testing.T) {
	engine := NewEngine(time.UTC)
	records := testRecords()
	filter := Filter{Search: "o", StartDate: "2025-04-19"}

	first := engine.Apply(records, filter)
	second := engine.Apply(records, filter)
	assert.Equal(t, first, second)

	again := engine.Apply(first, filter)
	assert.Equal(t, first, again)
}

func TestEngine_ApplyDoesNotMutateInput(t *testing.T) {
	engine := NewEngine(time.UTC)
	records := testRecords()
	before := orderIDs(records)

	_ = engine.Apply(records, Filter{})
	assert.Equal(t, before, orderIDs(records))
}

func TestEngine_AddedConstraintNarrowsResult(t *testing.T) {
	engine := NewEngine(time.UTC)
	records := testRecords()

	base := []Filter{
		{},
		{Search: "o"},
		{StartDate: "2025-04-19"},
		{Search: "john", EndDate: "2025-04-21"},
	}
	extra := []func(Filter) Filter{
		func(f Filter) Filter { f.Status = "Delivered"; return f },
		func(f Filter) Filter { f.Search = "mary"; return f },
		func(f Filter) Filter { f.StartDate = "2025-04-20"; return f },
		func(f Filter) Filter { f.EndDate = "2025-04-19"; return f },
	}

	for _, f := range base {
		wider := make(map[int64]bool)
		for _, r := range engine.Apply(records, f) {
			wider[r.OrderID] = true
		}
		for _, narrow := range extra {
			nf := narrow(f)
			if f.Search != "" && nf.Search != f.Search {
				// Replacing the search term is not an added constraint.
				continue
			}
			for _, r := range engine.Apply(records, nf) {
				assert.True(t, wider[r.OrderID], "filter %+v returned order %d missing from %+v", nf, r.OrderID, f)
			}
		}
	}
}

func TestEngine_TieBreakIsDeterministic(t *testing.T) {
	engine := NewEngine(time.UTC)
	recs := []Record{
		{OrderID: 5, OrderCreatedAt: t0},
		{OrderID: 9, OrderCreatedAt: t0},
		{OrderID: 7, OrderCreatedAt: t0},
	}
	assert.Equal(t, []int64{9, 7, 5}, orderIDs(engine.Apply(recs, Filter{})))
}

func TestEngine_BoundsUseLocation(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	start, end := NewEngine(loc).Bounds(Filter{StartDate: "2025-04-19", EndDate: "2025-04-19"})

	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.True(t, start.Equal(time.Date(2025, 4, 18, 22, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2025, 4, 19, 21, 59, 59, 999999999, time.UTC)))
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.True(t, Filter{Search: "  "}.IsZero())
	assert.False(t, Filter{Status: "New"}.IsZero())
}

func TestEngine_PlaceholdersNeverMatch(t *testing.T) {
	engine := NewEngine(time.UTC)
	records := ProjectAll(Join(Dataset{
		Orders: []entity.Order{
			{ID: 1, CreatedAt: t0, StatusID: ptr(int64(1)), ConsumerID: ptr(int64(10)), ProductID: ptr(int64(100))},
			{ID: 2, CreatedAt: t0.Add(time.Hour)},
			{ID: 3, CreatedAt: t0.Add(2 * time.Hour), StatusID: ptr(int64(4)), ConsumerID: ptr(int64(11))},
		},
		Consumers: []entity.Consumer{
			{ID: 10, FirstName: ptr("John"), Surname: ptr("Doe"), Email: ptr("jd@example.com")},
			{ID: 11, FirstName: ptr("Mary")},
		},
		Products: []entity.Product{{ID: 100, Name: ptr("Junmai Daiginjo")}},
		Statuses: []entity.OrderStatus{{ID: 1, Name: ptr("New")}, {ID: 4, Name: ptr(UnknownStatus)}},
	}))
	require.Equal(t, UnknownStatus, records[1].OrderStatus)
	require.Equal(t, MissingValue, records[1].ClientName)

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "status_placeholder", filter: Filter{Status: UnknownStatus}, want: []int64{3}},
		{name: "search_missing_value_placeholder", filter: Filter{Search: MissingValue}, want: []int64{}},
		{name: "search_still_matches_resolved", filter: Filter{Search: "mary"}, want: []int64{3}},
		{name: "search_product", filter: Filter{Search: "junmai"}, want: []int64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderIDs(engine.Apply(records, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_StatusUnknownWithoutCatalogEntry(t *testing.T) {
	engine := NewEngine(time.UTC)
	records := ProjectAll(Join(Dataset{
		Orders:   []entity.Order{{ID: 1, CreatedAt: t0, StatusID: ptr(int64(1))}, {ID: 2, CreatedAt: t0}},
		Statuses: []entity.OrderStatus{{ID: 1, Name: ptr("New")}},
	}))
	assert.Empty(t, engine.Apply(records, Filter{Status: UnknownStatus}))
	assert.Empty(t, engine.Apply(records, Filter{Search: MissingValue}))
}
