// internal/listing/schema.go
package listing

import "time"

// SortKey selects the comparator used in the sort phase.
type SortKey string

const (
	SortRelevance   SortKey = "relevance"
	SortDateDesc    SortKey = "date-desc"
	SortNumericAsc  SortKey = "numeric-asc"
	SortNumericDesc SortKey = "numeric-desc"
	SortAlpha       SortKey = "alpha"
)

// DefaultPageSize is used when a page request carries no positive size.
const DefaultPageSize = 20

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortRelevance, SortDateDesc, SortNumericAsc, SortNumericDesc, SortAlpha:
		return true
	}
	return false
}

// Range is an inclusive numeric bound. A nil side is unbounded.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Empty reports whether the range constrains nothing.
func (r Range) Empty() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// FilterSet holds the active filter constraints.
type FilterSet struct {
	Categories map[string][]string `json:"categories,omitempty"`
	Ranges     map[string]Range    `json:"ranges,omitempty"`
	Query      string              `json:"query,omitempty"`
}

// PageRequest is a 1-based page selection.
type PageRequest struct {
	PageSize   int `json:"pageSize"`
	PageNumber int `json:"pageNumber"`
}

// Result is the filtered, sorted and paged view.
type Result[T any] struct {
	Items        []T `json:"items"`
	TotalMatched int `json:"totalMatched"`
	TotalPages   int `json:"totalPages"`
}

type (
	TokensFunc[T any] func(T) []string
	NumberFunc[T any] func(T) (float64, bool)
	TextFunc[T any]   func(T) (string, bool)
	TimeFunc[T any]   func(T) (time.Time, bool)
)

// Schema is the accessor table a caller supplies for its record type.
//
// Categories extract the tokens a record carries for a filter category.
// Numbers, Texts and Times extract single values; the boolean result is false
// when the record has no value for that field. Search names the Texts used by
// the free-text query and SortFields designates which field each sort key
// reads (a Numbers key for relevance and the numeric sorts, a Times key for
// date-desc, a Texts key for alpha).
type Schema[T any] struct {
	ID         func(T) string
	Categories map[string]TokensFunc[T]
	Numbers    map[string]NumberFunc[T]
	Texts      map[string]TextFunc[T]
	Times      map[string]TimeFunc[T]
	Search     []string
	SortFields map[SortKey]string
}
