package chi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/tablesearch/internal/domain"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/field"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/request"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/sort"
)

// TableSearchBody is the POST /tables/query request body.
type TableSearchBody struct {
	Keywords  string       `json:"keywords"`
	Filters   FilterPairs  `json:"filters,omitempty"`
	Fields    []string     `json:"fields,omitempty"`
	Limit     *int         `json:"limit,omitempty"`
	Offset    int          `json:"offset,omitempty"`
	Concise   bool         `json:"concise,omitempty"`
	SortKey   StringOrList `json:"sort_key,omitempty"`
	SortOrder StringOrList `json:"sort_order,omitempty"`
}

// StringOrList accepts either "x" or ["x", ...]. An empty string decodes to nil.
type StringOrList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var l []string
		if err := json.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("expected a list of strings: %w", err)
		}
		*s = l
		return nil
	default:
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("expected a string or a list of strings: %w", err)
		}
		if v == "" {
			*s = nil
			return nil
		}
		*s = StringOrList{v}
		return nil
	}
}

// FilterPairs decodes filters given as [["name", value], ...] or
// [{"name": "...", "value": ...}, ...]. Values may be scalars or lists.
type FilterPairs []filter.Filter

type filterObject struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *FilterPairs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("filters must be a list: %w", err)
	}
	if raw == nil {
		*p = nil
		return nil
	}

	out := make(FilterPairs, 0, len(raw))
	for i, item := range raw {
		f, err := decodeFilter(item)
		if err != nil {
			return fmt.Errorf("filters[%d]: %w", i, err)
		}
		out = append(out, f)
	}
	*p = out
	return nil
}

func decodeFilter(item json.RawMessage) (filter.Filter, error) {
	item = bytes.TrimSpace(item)
	if len(item) > 0 && item[0] == '{' {
		var obj filterObject
		if err := decodeNumbers(item, &obj); err != nil {
			return filter.Filter{}, err
		}
		if obj.Name == "" {
			return filter.Filter{}, fmt.Errorf("name is required")
		}
		return filter.New(obj.Name, obj.Value), nil
	}

	var pair []any
	if err := decodeNumbers(item, &pair); err != nil {
		return filter.Filter{}, fmt.Errorf("expected [name, value] or {name, value}: %w", err)
	}
	if len(pair) != 2 {
		return filter.Filter{}, fmt.Errorf("expected [name, value], got %d elements", len(pair))
	}
	name, ok := pair[0].(string)
	if !ok || name == "" {
		return filter.Filter{}, fmt.Errorf("filter name must be a non-empty string")
	}
	return filter.New(name, pair[1]), nil
}

// decodeNumbers keeps numbers as json.Number so large integers such as
// epoch seconds stringify without an exponent.
func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v) //nolint:wrapcheck // callers add context
}

// ToRequest converts the body into a domain request, applying defaultLimit
// when no limit was given.
func (b *TableSearchBody) ToRequest(defaultLimit int) (request.TableSearch, error) {
	if len(b.Keywords) > request.MaxKeywordsLength {
		return request.TableSearch{}, domain.NewInvalidParam("keywords",
			fmt.Sprintf("too long (max %d chars)", request.MaxKeywordsLength))
	}
	limit := defaultLimit
	if b.Limit != nil {
		limit = *b.Limit
	}
	return request.New(
		b.Keywords,
		b.Filters,
		field.Parse(b.Fields),
		limit, b.Offset, b.Concise,
		sortDirectives(b.SortKey, b.SortOrder),
	), nil
}

// sortDirectives pairs keys with orders. Keys without an order sort
// ascending; empty keys are skipped along with their order.
func sortDirectives(keys, orders []string) sort.Directives {
	var ks, ords []string
	for i, k := range keys {
		if k == "" {
			continue
		}
		o := sort.Asc
		if i < len(orders) && orders[i] != "" {
			o = orders[i]
		}
		ks = append(ks, k)
		ords = append(ords, o)
	}
	return sort.Parallel(ks, ords)
}

// TableSearchParams are the GET /tables/query query parameters.
type TableSearchParams struct {
	Keywords  *string   `form:"keywords"`
	Fields    *[]string `form:"fields"`
	Filter    *[]string `form:"filter"`
	Limit     *int      `form:"limit"`
	Offset    *int      `form:"offset"`
	Concise   *bool     `form:"concise"`
	SortKey   *[]string `form:"sort_key"`
	SortOrder *[]string `form:"sort_order"`
}

// bindTableSearchParams binds form-style, exploded query parameters.
func bindTableSearchParams(q url.Values) (TableSearchParams, error) {
	var p TableSearchParams
	binds := []struct {
		name string
		dest any
	}{
		{"keywords", &p.Keywords},
		{"fields", &p.Fields},
		{"filter", &p.Filter},
		{"limit", &p.Limit},
		{"offset", &p.Offset},
		{"concise", &p.Concise},
		{"sort_key", &p.SortKey},
		{"sort_order", &p.SortOrder},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return TableSearchParams{}, domain.NewInvalidParam(b.name, err.Error())
		}
	}
	return p, nil
}

// toBody folds query parameters into the POST body shape.
// Repeated filter names merge into one list value.
func (p *TableSearchParams) toBody() (TableSearchBody, error) {
	var b TableSearchBody
	if p.Keywords != nil {
		b.Keywords = *p.Keywords
	}
	if p.Fields != nil {
		b.Fields = *p.Fields
	}
	b.Limit = p.Limit
	if p.Offset != nil {
		b.Offset = *p.Offset
	}
	if p.Concise != nil {
		b.Concise = *p.Concise
	}
	if p.SortKey != nil {
		b.SortKey = *p.SortKey
	}
	if p.SortOrder != nil {
		b.SortOrder = *p.SortOrder
	}
	if p.Filter != nil {
		filters, err := ParseFilters(*p.Filter)
		if err != nil {
			return TableSearchBody{}, err
		}
		b.Filters = filters
	}
	return b, nil
}

// ParseFilters parses name:value pairs. Repeated names merge into one list
// value in first-seen order.
func ParseFilters(raw []string) (FilterPairs, error) {
	var order []string
	values := make(map[string][]string, len(raw))
	for _, r := range raw {
		name, value, ok := strings.Cut(r, ":")
		if !ok || name == "" {
			return nil, domain.NewInvalidParam("filter", fmt.Sprintf("%q is not name:value", r))
		}
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = append(values[name], value)
	}

	out := make(FilterPairs, 0, len(order))
	for _, name := range order {
		vs := values[name]
		if len(vs) == 1 {
			out = append(out, filter.Filter{Name: name, Value: filter.Scalar(vs[0])})
			continue
		}
		out = append(out, filter.Filter{Name: name, Value: filter.List(vs...)})
	}
	return out, nil
}
