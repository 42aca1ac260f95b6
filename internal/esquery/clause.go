// Package esquery builds fragments of Elasticsearch query documents.
//
// Every builder is a pure function: it never fails and never touches the
// network. Inputs it cannot use degrade to an empty Clause, which callers
// treat as "omit this part".
package esquery

import "encoding/json"

// Clause is one fragment of a query document.
type Clause map[string]any

// IsEmpty reports whether the clause carries nothing.
func (c Clause) IsEmpty() bool { return len(c) == 0 }

// Document is a complete search request body.
type Document map[string]any

// Merge copies the top-level keys of c into d and returns d.
func (d Document) Merge(c Clause) Document {
	for k, v := range c {
		d[k] = v
	}
	return d
}

// JSON encodes the document.
func (d Document) JSON() ([]byte, error) {
	return json.Marshal(d) //nolint:wrapcheck // plain encoding of map values
}

// MatchAll matches every document.
func MatchAll() Clause {
	return Clause{"match_all": Clause{}}
}

// Match is a single field/value match predicate.
func Match(field, value string) Clause {
	return Clause{"match": Clause{field: value}}
}

// MatchPhrase matches query as a phrase on field. A zero boost is omitted.
func MatchPhrase(field, query string, boost float64) Clause {
	body := Clause{"query": query}
	if boost != 0 {
		body["boost"] = boost
	}
	return Clause{"match_phrase": Clause{field: body}}
}

// Range is a bounded condition on field. bounds holds gte/lte (or gt/lt) keys.
func Range(field string, bounds Clause) Clause {
	return Clause{"range": Clause{field: bounds}}
}

// FunctionScore multiplies the relevance of query by the value of a script.
// The script is evaluated by the backend; it is opaque here.
func FunctionScore(query Clause, script string) Clause {
	return Clause{
		"function_score": Clause{
			"query":      query,
			"boost_mode": "multiply",
			"script_score": Clause{
				"script": Clause{"source": script},
			},
		},
	}
}

// stringList returns a non-nil copy of ss so it encodes as [] rather than null.
func stringList(ss []string) []string {
	return append(make([]string, 0, len(ss)), ss...)
}
