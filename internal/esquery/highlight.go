package esquery

import "maps"

// Highlight delimiters.
const (
	HighlightPreTag  = "<mark>"
	HighlightPostTag = "</mark>"
)

// HighlightField configures snippets for one field.
type HighlightField struct {
	FragmentSize      int `json:"fragment_size"`
	NumberOfFragments int `json:"number_of_fragments"`
}

// Highlight requests plain highlighting for fields.
// Field names are not checked against the index mapping.
func Highlight(fields map[string]HighlightField) Clause {
	f := maps.Clone(fields)
	if f == nil {
		f = map[string]HighlightField{}
	}
	return Clause{
		"highlight": Clause{
			"pre_tags":  []string{HighlightPreTag},
			"post_tags": []string{HighlightPostTag},
			"type":      "plain",
			"fields":    f,
		},
	}
}
