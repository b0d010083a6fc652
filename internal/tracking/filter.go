package tracking

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Filter is the user supplied tracking filter. Every field is optional and
// all provided fields must match.
type Filter struct {
	Search    string `json:"search,omitempty"`
	Status    string `json:"status,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" &&
		strings.TrimSpace(f.Status) == "" &&
		strings.TrimSpace(f.StartDate) == "" &&
		strings.TrimSpace(f.EndDate) == ""
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const dateLayout = "2006-01-02"

// Engine applies filters to tracking records.
type Engine struct {
	loc *time.Location
}

// NewEngine returns an Engine interpreting date-only bounds in loc. A nil
// location means UTC.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

// Bounds returns the parsed creation time bounds of f. Bounds that are
// missing or cannot be parsed are nil. A date-only end bound covers the
// whole day.
func (e *Engine) Bounds(f Filter) (start, end *time.Time) {
	return e.parseBound(f.StartDate, false), e.parseBound(f.EndDate, true)
}

func (e *Engine) parseBound(raw string, endOfDay bool) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, e.loc); err == nil {
			return &t
		}
	}
	day, err := time.ParseInLocation(dateLayout, raw, e.loc)
	if err != nil {
		return nil
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day
}

// Apply returns the records matching every predicate of f, sorted by
// creation time descending (ties by order id descending). The input slice is
// not modified.
func (e *Engine) Apply(records []Record, f Filter) []Record {
	search := strings.TrimSpace(f.Search)
	status := strings.TrimSpace(f.Status)
	start, end := e.Bounds(f)

	// Casers carry state and are not shared across calls.
	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if search != "" && !matchesSearch(fold, rec, needle) {
			continue
		}
		if status != "" && rec.Resolved.Status != status {
			continue
		}
		if start != nil && rec.OrderCreatedAt.Before(*start) {
			continue
		}
		if end != nil && rec.OrderCreatedAt.After(*end) {
			continue
		}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		if c := b.OrderCreatedAt.Compare(a.OrderCreatedAt); c != 0 {
			return c
		}
		switch {
		case a.OrderID > b.OrderID:
			return -1
		case a.OrderID < b.OrderID:
			return 1
		}
		return 0
	})
	return out
}

// matchesSearch checks the resolved client name, email and product name.
// Missing values never match, whatever placeholder they are displayed as.
func matchesSearch(fold cases.Caser, rec Record, needle string) bool {
	r := rec.Resolved
	for _, field := range []string{r.ClientName, r.ClientEmail, r.ProductName} {
		if field != "" && strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
