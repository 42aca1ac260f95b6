package table

import (
	"github.com/kailas-cloud/tablesearch/internal/domain/search/field"
	"github.com/kailas-cloud/tablesearch/internal/esquery"
)

// Physical fields of the table index.
const (
	FullNameField      = "full_name"
	FullNameNgramField = "full_name_ngram"
	DescriptionField   = "description"
	ColumnsField       = "columns"
)

// phrase is a phrase-match boost contributed by a logical field.
type phrase struct {
	field string
	boost float64
}

// mapping describes how a logical field takes part in keyword matching.
type mapping struct {
	words  []string
	phrase *phrase
}

var fieldMappings = map[field.Field]mapping{
	field.TableName: {
		words:  []string{FullNameField + "^2", FullNameNgramField},
		phrase: &phrase{field: FullNameField, boost: 10},
	},
	field.Description: {
		words: []string{DescriptionField},
	},
	field.Column: {
		words:  []string{ColumnsField},
		phrase: &phrase{field: ColumnsField},
	},
}

// uniqueFields drops duplicates, keeping first-occurrence order.
func uniqueFields(fields []field.Field) []field.Field {
	seen := make(map[field.Field]struct{}, len(fields))
	out := make([]field.Field, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// wordFields maps logical fields to the physical fields the keywords are
// matched against. Unknown fields contribute nothing.
func wordFields(fields []field.Field) []string {
	out := make([]string, 0, len(fields)*2)
	for _, f := range uniqueFields(fields) {
		out = append(out, fieldMappings[f].words...)
	}
	return out
}

// phraseQueries builds the advisory phrase matches for keywords.
func phraseQueries(fields []field.Field, keywords string) []esquery.Clause {
	out := make([]esquery.Clause, 0, len(fields))
	for _, f := range uniqueFields(fields) {
		p := fieldMappings[f].phrase
		if p == nil {
			continue
		}
		out = append(out, esquery.MatchPhrase(p.field, keywords, p.boost))
	}
	return out
}
