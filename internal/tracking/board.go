package tracking

import "sync"

// Ticket identifies one tracking request issued by a Board.
type Ticket struct {
	Seq    uint64
	Filter Filter
}

// Board is the presentation state of one tracking view: the active filter,
// its result set and the current page. Responses are accepted only for the
// latest request, so a slow response can never overwrite a newer one.
type Board struct {
	mu      sync.Mutex
	size    int
	seq     uint64
	filter  Filter
	records []Record
	page    int
	loading bool
	failed  bool
}

// NewBoard returns an empty board showing pageSize records per page.
func NewBoard(pageSize int) *Board {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Board{size: pageSize, page: 1}
}

// Request records f as the active filter and returns the ticket its response
// must be delivered with. The current page resets to 1.
func (b *Board) Request(f Filter) Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.filter = f
	b.loading = true
	b.page = 1
	return Ticket{Seq: b.seq, Filter: f}
}

// Deliver installs records for t. It reports false and changes nothing when t
// is stale.
func (b *Board) Deliver(t Ticket, records []Record) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t.Seq != b.seq {
		return false
	}
	b.records = records
	b.loading = false
	b.failed = false
	b.page = 1
	return true
}

// Fail moves the board to its empty state for t. Stale tickets are ignored.
func (b *Board) Fail(t Ticket) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t.Seq != b.seq {
		return false
	}
	b.records = nil
	b.loading = false
	b.failed = true
	b.page = 1
	return true
}

// Loading reports whether the latest request is still outstanding.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Failed reports whether the latest request failed.
func (b *Board) Failed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failed
}

// Filter returns the active filter.
func (b *Board) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// View returns the current page.
func (b *Board) View() Page[Record] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view()
}

// GoTo moves to page n, clamped to the valid range, and returns it.
func (b *Board) GoTo(n int) Page[Record] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page = n
	return b.view()
}

// Next advances one page; it is a no-op on the last page.
func (b *Board) Next() Page[Record] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page++
	return b.view()
}

// Prev goes back one page; it is a no-op on the first page.
func (b *Board) Prev() Page[Record] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page--
	return b.view()
}

func (b *Board) view() Page[Record] {
	p := Paginate(b.records, b.size, b.page)
	b.page = p.Number
	return p
}
