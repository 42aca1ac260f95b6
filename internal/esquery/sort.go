package esquery

import "github.com/kailas-cloud/tablesearch/internal/domain/search/sort"

// OrderBy emits one sort term per directive, primary first.
// No directives yield an empty clause.
func OrderBy(directives sort.Directives) Clause {
	if directives.IsEmpty() {
		return Clause{}
	}
	terms := make([]Clause, len(directives))
	for i, d := range directives {
		terms[i] = Clause{d.Key: Clause{"order": d.Order}}
	}
	return Clause{"sort": terms}
}
