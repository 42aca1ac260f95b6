package request

import (
	"slices"

	"github.com/kailas-cloud/tablesearch/internal/domain/search/field"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/sort"
)

// Pagination defaults applied by outer layers when the caller sends nothing.
// The compiler itself passes limit/offset through verbatim.
const (
	DefaultLimit = 10
	// MaxKeywordsLength caps the keyword string accepted by the HTTP layer.
	MaxKeywordsLength = 4096
)

// TableSearch is a table search request.
// The zero value searches everything with no filters, no sort and size 0.
type TableSearch struct {
	keywords string
	filters  []filter.Filter
	fields   []field.Field
	limit    int
	offset   int
	concise  bool
	sort     sort.Directives
}

// New creates a table search request. Slices are copied so later changes by
// the caller do not leak into a compilation in progress.
func New(
	keywords string,
	filters []filter.Filter,
	fields []field.Field,
	limit, offset int,
	concise bool,
	directives sort.Directives,
) TableSearch {
	return TableSearch{
		keywords: keywords,
		filters:  slices.Clone(filters),
		fields:   slices.Clone(fields),
		limit:    limit,
		offset:   offset,
		concise:  concise,
		sort:     slices.Clone(directives),
	}
}

// Keywords returns the free-text query. Empty means no text search.
func (r *TableSearch) Keywords() string { return r.keywords }

// Filters returns the filters in caller order.
func (r *TableSearch) Filters() []filter.Filter { return r.filters }

// Fields returns the logical fields the keywords are matched against.
func (r *TableSearch) Fields() []field.Field { return r.fields }

// Limit returns the page size.
func (r *TableSearch) Limit() int { return r.limit }

// Offset returns the number of results to skip.
func (r *TableSearch) Offset() int { return r.offset }

// Concise reports whether only id, schema and name should be returned.
func (r *TableSearch) Concise() bool { return r.concise }

// Sort returns the sort directives.
func (r *TableSearch) Sort() sort.Directives { return r.sort }
