// Package table assembles search documents for the table index.
package table

import (
	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/request"
	"github.com/kailas-cloud/tablesearch/internal/esquery"
)

// ScoreScript boosts curated tables: relevance is multiplied by
// 1 + importance_score, plus one more for golden tables.
const ScoreScript = "1 + (doc['importance_score'].value + (doc['golden'].value ? 1 : 0))"

// ConciseSource is the projection returned for concise requests.
var ConciseSource = []string{"id", "schema", "name"}

// Highlight settings for table hits.
var highlightFields = map[string]esquery.HighlightField{
	ColumnsField:     {FragmentSize: 20, NumberOfFragments: 5},
	DescriptionField: {FragmentSize: 60, NumberOfFragments: 3},
}

// Builder compiles table search requests. The zero value is ready to use and
// treats every multi-valued filter as OR.
type Builder struct {
	andFilterNames filter.Names
}

// Option configures a Builder.
type Option func(*Builder)

// WithAndFilterNames makes list values of the named filters AND-combined.
func WithAndFilterNames(names ...string) Option {
	return func(b *Builder) {
		b.andFilterNames = filter.NewNames(names...)
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, o := range opts {
		o(b)
	}
	return b
}

// AndFilterNames returns the AND-semantics filter names.
func (b *Builder) AndFilterNames() filter.Names { return b.andFilterNames }

// BuildQuery compiles req with the default builder.
func BuildQuery(req *request.TableSearch) esquery.Document {
	var b Builder
	return b.BuildQuery(req)
}

// BuildQuery compiles req into a search document. It never fails: limit and
// offset are passed through, unknown fields are ignored, and sanity checks are
// left to the search backend.
func (b *Builder) BuildQuery(req *request.TableSearch) esquery.Document {
	scored := esquery.FunctionScore(searchQuery(req), ScoreScript)
	filters := esquery.MatchFilters(req.Filters(), b.andFilterNames)

	must := make([]esquery.Clause, 0, 1+len(filters.Ranges))
	must = append(must, scored)
	must = append(must, filters.Ranges...)

	boolQuery := esquery.Clause{"must": must}
	if filters.Filter != nil {
		boolQuery["filter"] = filters.Filter
	}

	doc := esquery.Document{
		"query": esquery.Clause{"bool": boolQuery},
		"size":  req.Limit(),
		"from":  req.Offset(),
	}
	if req.Concise() {
		doc["_source"] = append([]string(nil), ConciseSource...)
	}

	return doc.
		Merge(esquery.OrderBy(req.Sort())).
		Merge(esquery.Highlight(highlightFields))
}

// searchQuery is the relevance part: all keyword terms must match across the
// mapped fields, phrase matches add to the score.
func searchQuery(req *request.TableSearch) esquery.Clause {
	keywords := req.Keywords()
	if keywords == "" {
		return esquery.MatchAll()
	}
	return esquery.Clause{
		"bool": esquery.Clause{
			"must":   esquery.MatchAllWords(keywords, wordFields(req.Fields())),
			"should": phraseQueries(req.Fields(), keywords),
		},
	}
}
