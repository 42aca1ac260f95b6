package esquery

import (
	"strings"

	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
)

// Filter names that turn into range bounds instead of match predicates.
const (
	FilterStartDate   = "startdate"
	FilterEndDate     = "enddate"
	FilterMinDuration = "minduration"
	FilterMaxDuration = "maxduration"
)

// Index fields targeted by the range filters.
const (
	CreatedAtField = "created_at"
	DurationField  = "duration"
)

// FilterResult holds the compiled filters. Match predicates and ranges are
// kept apart: callers place ranges among required clauses and the rest in
// a non-scoring filter context.
type FilterResult struct {
	// Filter is {"bool": {"must": [...]}}; nil when no filters were given.
	Filter Clause
	// Ranges holds the created_at range first, then the duration range.
	Ranges []Clause
}

// IsEmpty reports whether nothing was compiled.
func (r FilterResult) IsEmpty() bool {
	return r.Filter.IsEmpty() && len(r.Ranges) == 0
}

// MatchFilters compiles filters into match predicates and range clauses.
//
// Filters with empty values are skipped. Distinct filters are AND-combined;
// the elements of a list value are OR-combined unless the filter name is in
// andFilterNames.
func MatchFilters(filters []filter.Filter, andFilterNames filter.Names) FilterResult {
	if len(filters) == 0 {
		return FilterResult{}
	}

	terms := make([]Clause, 0, len(filters))
	createdAt := Clause{}
	duration := Clause{}

	for _, f := range filters {
		if f.Value.IsEmpty() {
			continue
		}
		name := strings.ToLower(f.Name)

		switch name {
		case FilterStartDate:
			createdAt["gte"] = bound(f.Value)
		case FilterEndDate:
			createdAt["lte"] = bound(f.Value)
		case FilterMinDuration:
			duration["gte"] = bound(f.Value)
		case FilterMaxDuration:
			duration["lte"] = bound(f.Value)
		default:
			terms = append(terms, singularFilter(name, f.Value, andFilterNames))
		}
	}

	res := FilterResult{
		Filter: Clause{"bool": Clause{"must": terms}},
	}
	if !createdAt.IsEmpty() {
		res.Ranges = append(res.Ranges, Range(CreatedAtField, createdAt))
	}
	if !duration.IsEmpty() {
		res.Ranges = append(res.Ranges, Range(DurationField, duration))
	}
	return res
}

// singularFilter builds the predicate for one filter. A list value becomes a
// bool group of one match per element.
func singularFilter(name string, v filter.Value, andFilterNames filter.Names) Clause {
	if !v.IsList() {
		return Match(name, v.Scalar())
	}

	items := v.List()
	leaves := make([]Clause, len(items))
	for i, item := range items {
		leaves[i] = singularFilter(name, filter.Scalar(item), andFilterNames)
	}

	occur := "should"
	if andFilterNames.Has(name) {
		occur = "must"
	}
	return Clause{"bool": Clause{occur: leaves}}
}

// bound renders a range bound. Lists go through untouched.
func bound(v filter.Value) any {
	if v.IsList() {
		return stringList(v.List())
	}
	return v.Scalar()
}
