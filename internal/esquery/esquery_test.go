package esquery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/sort"
)

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestHighlight(t *testing.T) {
	c := Highlight(map[string]HighlightField{
		"columns": {FragmentSize: 20, NumberOfFragments: 5},
	})

	assert.JSONEq(t, `{
		"highlight": {
			"pre_tags": ["<mark>"],
			"post_tags": ["</mark>"],
			"type": "plain",
			"fields": {"columns": {"fragment_size": 20, "number_of_fragments": 5}}
		}
	}`, toJSON(t, c))
}

func TestHighlight_NilFields(t *testing.T) {
	c := Highlight(nil)
	assert.JSONEq(t, `{
		"highlight": {"pre_tags": ["<mark>"], "post_tags": ["</mark>"], "type": "plain", "fields": {}}
	}`, toJSON(t, c))
}

func TestHighlight_UnknownFieldPassesThrough(t *testing.T) {
	c := Highlight(map[string]HighlightField{"no_such_field": {FragmentSize: 1, NumberOfFragments: 1}})
	assert.Contains(t, toJSON(t, c), `"no_such_field"`)
}

func TestMatchAnyField(t *testing.T) {
	c := MatchAnyField("orders daily", []string{"full_name", "description"})
	assert.JSONEq(t, `{
		"multi_match": {
			"query": "orders daily",
			"fields": ["full_name", "description"],
			"type": "cross_fields",
			"minimum_should_match": "100%"
		}
	}`, toJSON(t, c))
}

func TestMatchAnyField_EmptyKeywords(t *testing.T) {
	assert.True(t, MatchAnyField("", []string{"full_name"}).IsEmpty())
}

func TestMatchAnyField_NilFieldsEncodeAsEmptyList(t *testing.T) {
	c := MatchAnyField("x", nil)
	assert.Contains(t, toJSON(t, c), `"fields":[]`)
}

func TestMatchFilters_NoFilters(t *testing.T) {
	res := MatchFilters(nil, filter.Names{})
	assert.True(t, res.IsEmpty())
	assert.Nil(t, res.Filter)
	assert.Empty(t, res.Ranges)
}

func TestMatchFilters_ScalarsAreANDed(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("schema", "main"),
		filter.New("owner", "bob"),
	}, filter.Names{})

	assert.JSONEq(t, `{"bool": {"must": [
		{"match": {"schema": "main"}},
		{"match": {"owner": "bob"}}
	]}}`, toJSON(t, res.Filter))
	assert.Empty(t, res.Ranges)
}

func TestMatchFilters_EmptyValuesDropped(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("schema", ""),
		filter.New("tag", []string{}),
		filter.New("startdate", ""),
		filter.New("owner", nil),
	}, filter.Names{})

	assert.JSONEq(t, `{"bool": {"must": []}}`, toJSON(t, res.Filter))
	assert.Empty(t, res.Ranges)
	assert.False(t, res.IsEmpty(), "filters were given, so the filter group is kept")
}

func TestMatchFilters_DateRange(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("startdate", "2020-01-01"),
		filter.New("enddate", "2020-12-31"),
	}, filter.Names{})

	require.Len(t, res.Ranges, 1)
	assert.JSONEq(t, `{"range": {"created_at": {"gte": "2020-01-01", "lte": "2020-12-31"}}}`,
		toJSON(t, res.Ranges[0]))
	assert.JSONEq(t, `{"bool": {"must": []}}`, toJSON(t, res.Filter))
}

func TestMatchFilters_BothRanges(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("maxduration", 600),
		filter.New("StartDate", "1600000000"),
		filter.New("minduration", 60),
	}, filter.Names{})

	require.Len(t, res.Ranges, 2)
	assert.JSONEq(t, `{"range": {"created_at": {"gte": "1600000000"}}}`, toJSON(t, res.Ranges[0]))
	assert.JSONEq(t, `{"range": {"duration": {"gte": "60", "lte": "600"}}}`, toJSON(t, res.Ranges[1]))
}

func TestMatchFilters_LaterBoundWins(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("startdate", "2020-01-01"),
		filter.New("startdate", "2021-01-01"),
	}, filter.Names{})

	require.Len(t, res.Ranges, 1)
	assert.JSONEq(t, `{"range": {"created_at": {"gte": "2021-01-01"}}}`, toJSON(t, res.Ranges[0]))
}

func TestMatchFilters_ListIsORByDefault(t *testing.T) {
	res := MatchFilters([]filter.Filter{filter.New("tag", []string{"a", "b"})}, filter.Names{})

	assert.JSONEq(t, `{"bool": {"must": [
		{"bool": {"should": [{"match": {"tag": "a"}}, {"match": {"tag": "b"}}]}}
	]}}`, toJSON(t, res.Filter))
}

func TestMatchFilters_TypedSliceIsOR(t *testing.T) {
	res := MatchFilters([]filter.Filter{filter.New("id", []int{1, 2})}, filter.Names{})
	assert.JSONEq(t,
		`{"bool":{"must":[{"bool":{"should":[{"match":{"id":"1"}},{"match":{"id":"2"}}]}}]}}`,
		toJSON(t, res.Filter))
}

func TestMatchFilters_ListIsANDForDesignatedNames(t *testing.T) {
	res := MatchFilters([]filter.Filter{filter.New("tag", []string{"a", "b"})}, filter.NewNames("tag"))

	assert.JSONEq(t, `{"bool": {"must": [
		{"bool": {"must": [{"match": {"tag": "a"}}, {"match": {"tag": "b"}}]}}
	]}}`, toJSON(t, res.Filter))
}

func TestMatchFilters_NamesLowercased(t *testing.T) {
	res := MatchFilters([]filter.Filter{filter.New("Owner", "bob")}, filter.Names{})
	assert.JSONEq(t, `{"bool": {"must": [{"match": {"owner": "bob"}}]}}`, toJSON(t, res.Filter))
}

func TestMatchFilters_ValuesStringified(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("golden", true),
		filter.New("id", []any{1, 2}),
	}, filter.Names{})

	assert.JSONEq(t, `{"bool": {"must": [
		{"match": {"golden": "true"}},
		{"bool": {"should": [{"match": {"id": "1"}}, {"match": {"id": "2"}}]}}
	]}}`, toJSON(t, res.Filter))
}

func TestMatchFilters_RangeNamesNeverBecomeMatches(t *testing.T) {
	res := MatchFilters([]filter.Filter{
		filter.New("startdate", "a"),
		filter.New("enddate", "b"),
		filter.New("minduration", "c"),
		filter.New("maxduration", "d"),
	}, filter.Names{})

	s := toJSON(t, res.Filter)
	for _, name := range []string{"startdate", "enddate", "minduration", "maxduration"} {
		assert.NotContains(t, s, name)
	}
	assert.Len(t, res.Ranges, 2)
}

func TestOrderBy(t *testing.T) {
	c := OrderBy(sort.Parallel([]string{"importance_score", "name"}, []string{"desc", "asc"}))
	assert.JSONEq(t, `{"sort": [
		{"importance_score": {"order": "desc"}},
		{"name": {"order": "asc"}}
	]}`, toJSON(t, c))
}

func TestOrderBy_Empty(t *testing.T) {
	assert.True(t, OrderBy(nil).IsEmpty())
	assert.True(t, OrderBy(sort.Single("", "asc")).IsEmpty())
}

func TestOrderBy_SingleEqualsParallel(t *testing.T) {
	single := OrderBy(sort.Single("name", "asc"))
	parallel := OrderBy(sort.Parallel([]string{"name"}, []string{"asc"}))
	assert.Equal(t, single, parallel)
}

func TestFunctionScore(t *testing.T) {
	c := FunctionScore(MatchAll(), "1 + doc['x'].value")
	assert.JSONEq(t, `{"function_score": {
		"query": {"match_all": {}},
		"boost_mode": "multiply",
		"script_score": {"script": {"source": "1 + doc['x'].value"}}
	}}`, toJSON(t, c))
}

func TestMatchPhrase(t *testing.T) {
	assert.JSONEq(t, `{"match_phrase": {"full_name": {"query": "a b", "boost": 10}}}`,
		toJSON(t, MatchPhrase("full_name", "a b", 10)))
	assert.JSONEq(t, `{"match_phrase": {"columns": {"query": "a b"}}}`,
		toJSON(t, MatchPhrase("columns", "a b", 0)))
}

func TestDocument_Merge(t *testing.T) {
	d := Document{"size": 1}
	d.Merge(Clause{"from": 2}).Merge(Clause{})

	b, err := d.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"size": 1, "from": 2}`, string(b))
}
