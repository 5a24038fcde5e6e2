// internal/listing/pipeline.go
package listing

import (
	"sort"
	"strings"
	"time"
)

// Pipeline filters, sorts and pages records of type T.
// It holds no mutable state and is safe for concurrent use.
type Pipeline[T any] struct {
	schema Schema[T]
}

func New[T any](schema Schema[T]) *Pipeline[T] {
	return &Pipeline[T]{schema: schema}
}

// Apply runs the filter, sort and page phases. It never fails: unknown
// categories, ranges and sort keys are ignored, out-of-range pages are empty.
func (p *Pipeline[T]) Apply(records []T, filters FilterSet, sortKey SortKey, page PageRequest) Result[T] {
	matched := p.filter(records, filters)
	p.sort(matched, sortKey)
	return paginate(matched, page)
}

// IDs returns the identifiers of items in order.
func (p *Pipeline[T]) IDs(items []T) []string {
	ids := make([]string, 0, len(items))
	if p.schema.ID == nil {
		return ids
	}
	for _, item := range items {
		ids = append(ids, p.schema.ID(item))
	}
	return ids
}

func (p *Pipeline[T]) filter(records []T, filters FilterSet) []T {
	query := strings.ToLower(strings.TrimSpace(filters.Query))

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !p.matchCategories(rec, filters.Categories) {
			continue
		}
		if !p.matchRanges(rec, filters.Ranges) {
			continue
		}
		if query != "" && !p.matchQuery(rec, query) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (p *Pipeline[T]) matchCategories(rec T, categories map[string][]string) bool {
	for name, accepted := range categories {
		if len(accepted) == 0 {
			continue
		}
		extract, ok := p.schema.Categories[name]
		if !ok || extract == nil {
			continue
		}
		if !anyToken(extract(rec), accepted) {
			return false
		}
	}
	return true
}

func anyToken(have, accepted []string) bool {
	for _, a := range accepted {
		for _, h := range have {
			if h == a {
				return true
			}
		}
	}
	return false
}

func (p *Pipeline[T]) matchRanges(rec T, ranges map[string]Range) bool {
	for name, r := range ranges {
		if r.Empty() {
			continue
		}
		extract, ok := p.schema.Numbers[name]
		if !ok || extract == nil {
			continue
		}
		v, present := extract(rec)
		if !present || !r.Contains(v) {
			return false
		}
	}
	return true
}

func (p *Pipeline[T]) matchQuery(rec T, query string) bool {
	searched := false
	for _, name := range p.schema.Search {
		extract, ok := p.schema.Texts[name]
		if !ok || extract == nil {
			continue
		}
		searched = true
		if text, present := extract(rec); present && strings.Contains(strings.ToLower(text), query) {
			return true
		}
	}
	// no searchable fields configured: the query cannot constrain anything
	return !searched
}

// sort orders records in place. Ties and missing values keep input order.
func (p *Pipeline[T]) sort(records []T, key SortKey) {
	if !key.Valid() {
		key = SortRelevance
	}
	less := p.comparator(key)
	if less == nil {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func (p *Pipeline[T]) comparator(key SortKey) func(a, b T) bool {
	field, ok := p.schema.SortFields[key]
	if !ok {
		return nil
	}

	switch key {
	case SortRelevance, SortNumericDesc:
		extract := p.schema.Numbers[field]
		if extract == nil {
			return nil
		}
		return missingLast(extract, func(a, b float64) bool { return a > b })
	case SortNumericAsc:
		extract := p.schema.Numbers[field]
		if extract == nil {
			return nil
		}
		return missingLast(extract, func(a, b float64) bool { return a < b })
	case SortDateDesc:
		extract := p.schema.Times[field]
		if extract == nil {
			return nil
		}
		return missingLast(extract, func(a, b time.Time) bool { return a.After(b) })
	case SortAlpha:
		extract := p.schema.Texts[field]
		if extract == nil {
			return nil
		}
		return missingLast(extract, func(a, b string) bool { return strings.ToLower(a) < strings.ToLower(b) })
	}
	return nil
}

func missingLast[T any, V any](extract func(T) (V, bool), less func(a, b V) bool) func(a, b T) bool {
	return func(a, b T) bool {
		va, okA := extract(a)
		vb, okB := extract(b)
		switch {
		case okA && okB:
			return less(va, vb)
		case okA:
			return true
		default:
			return false
		}
	}
}

func paginate[T any](sorted []T, page PageRequest) Result[T] {
	size := page.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(sorted)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	res := Result[T]{
		Items:        []T{},
		TotalMatched: total,
		TotalPages:   pages,
	}

	if page.PageNumber < 1 || page.PageNumber > res.TotalPages {
		return res
	}
	start := (page.PageNumber - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	res.Items = sorted[start:end:end]
	return res
}
