package esquery

// MatchAnyField matches keywords across searchFields as if they were one
// field: every term has to be found somewhere in the combined set.
// Empty keywords yield an empty clause.
func MatchAnyField(keywords string, searchFields []string) Clause {
	if keywords == "" {
		return Clause{}
	}
	return Clause{
		"multi_match": Clause{
			"query":                keywords,
			"fields":               stringList(searchFields),
			"type":                 "cross_fields",
			"minimum_should_match": "100%",
		},
	}
}

// MatchAllWords requires every term of keywords to match across fields.
func MatchAllWords(keywords string, fields []string) Clause {
	return Clause{
		"multi_match": Clause{
			"query":    keywords,
			"fields":   stringList(fields),
			"operator": "and",
		},
	}
}
