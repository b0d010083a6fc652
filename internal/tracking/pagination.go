package tracking

const (
	// DefaultPageSize is used when a non-positive page size is requested.
	DefaultPageSize = 10
	// MaxVisiblePages bounds the page-number controls shown at once.
	MaxVisiblePages = 5
)

// Page is one slice of an ordered result set plus its navigation metadata.
// Page numbers are 1-indexed.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	Visible    []int
	HasPrev    bool
	HasNext    bool
	// FirstItem and LastItem are the 1-indexed positions shown on this page,
	// both zero for an empty result.
	FirstItem int
	LastItem  int
}

// Paginate slices items for the requested page. Out-of-range page numbers are
// clamped to the nearest valid page.
func Paginate[T any](items []T, size, page int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size

	page = ClampPage(page, totalPages)
	p := Page[T]{
		Items:      []T{},
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		Visible:    Window(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if total == 0 {
		return p
	}

	lo := (page - 1) * size
	hi := min(lo+size, total)
	p.Items = items[lo:hi:hi]
	p.FirstItem = lo + 1
	p.LastItem = hi
	return p
}

// ClampPage returns page limited to [1, totalPages]; 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window returns the page numbers to render for the current page, at most
// MaxVisiblePages of them.
func Window(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	current = ClampPage(current, totalPages)

	var first int
	switch {
	case totalPages <= MaxVisiblePages:
		first = 1
	case current <= 3:
		first = 1
	case current >= totalPages-2:
		first = totalPages - MaxVisiblePages + 1
	default:
		first = current - 2
	}
	last := min(first+MaxVisiblePages-1, totalPages)

	pages := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		pages = append(pages, n)
	}
	return pages
}
