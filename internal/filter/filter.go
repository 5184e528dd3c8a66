// Package filter implements the in-memory record filtering and pagination
// used by the listing views and the export projection. The whole working set
// always lives in memory, so filtering is a single pass — no query layer.
package filter

import (
	"strings"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
)

// DefaultPageSize matches the records-per-page selector's initial value.
const DefaultPageSize = 25

// Spec holds the recognised field filters. Empty values are ignored (match
// everything); all provided filters are ANDed.
//
// Name and NIC are case-insensitive substring matches; GSDivision and
// PoolingBooth match exactly against the resolved option value; Priority is
// an exact match.
type Spec struct {
	Name         string `json:"name"`
	NIC          string `json:"nic"`
	GSDivision   string `json:"gsDivision"`
	PoolingBooth string `json:"poolingBooth"`
	Priority     string `json:"priority"`
}

// IsZero reports whether no filter is set.
func (s Spec) IsZero() bool {
	return s == Spec{}
}

// Apply returns the records matching every set field, preserving order.
func Apply(records []model.Record, spec Spec) []model.Record {
	if spec.IsZero() {
		return records
	}

	matched := make([]model.Record, 0, len(records))
	for _, r := range records {
		if matches(r, spec) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matches(r model.Record, spec Spec) bool {
	if spec.Name != "" && !containsFold(r.Name, spec.Name) {
		return false
	}
	if spec.NIC != "" && !containsFold(r.NIC, spec.NIC) {
		return false
	}
	if spec.GSDivision != "" && optionValue(r.GSDivision) != spec.GSDivision {
		return false
	}
	if spec.PoolingBooth != "" && optionValue(r.PoolingBooth) != spec.PoolingBooth {
		return false
	}
	if spec.Priority != "" && r.Priority != spec.Priority {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func optionValue(o *model.Option) string {
	if o == nil {
		return ""
	}
	return o.Value
}

// Page is one slice of a filtered result set plus the state the pagination
// controls need.
type Page struct {
	Records      []model.Record `json:"records"`
	Page         int            `json:"page"`
	PageSize     int            `json:"pageSize"`
	TotalPages   int            `json:"totalPages"`
	TotalRecords int            `json:"totalRecords"`
	// Start/End are 1-based display positions ("Showing 26 - 50 of 120").
	Start int `json:"start"`
	End   int `json:"end"`
}

// Paginate slices filtered into the requested page. A page beyond the end is
// clamped back to the last valid page (page 1 when there are no results), and
// non-positive page or page-size inputs fall back to sane defaults — the
// caller always gets a consistent page back, never an error.
func Paginate(filtered []model.Record, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	p := Page{
		Records:      filtered[start:end],
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		TotalRecords: total,
	}
	if total > 0 {
		p.Start = start + 1
		p.End = end
	}
	return p
}

// Ellipsis is the marker PageWindow uses for a collapsed run of page numbers.
const Ellipsis = 0

// PageWindow returns the page numbers the pagination bar shows: at most seven
// numbers centred on the current page, with the first and last pages always
// present and Ellipsis (0) marking collapsed runs. Presentation-level, but
// kept next to the clamping logic it depends on.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	start := current - 3
	if start < 1 {
		start = 1
	}
	end := current + 3
	if end > totalPages {
		end = totalPages
	}

	// Widen back out to seven slots when clamping near an edge shrank the
	// window.
	if end-start < 6 {
		if start == 1 {
			end = min(totalPages, start+6)
		} else {
			start = max(1, end-6)
		}
	}

	var window []int
	if start > 1 {
		window = append(window, 1)
		if start > 2 {
			window = append(window, Ellipsis)
		}
	}
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	if end < totalPages {
		if end < totalPages-1 {
			window = append(window, Ellipsis)
		}
		window = append(window, totalPages)
	}
	return window
}
