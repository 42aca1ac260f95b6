package filter

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind tells whether a Value holds one string or a list of strings.
type Kind uint8

// Value kinds.
const (
	KindScalar Kind = iota
	KindList
)

// Value is a filter value: either a single string or an ordered list of strings.
// A list asks for any of its elements to match, or all of them when the filter
// name has AND semantics.
type Value struct {
	kind   Kind
	scalar string
	list   []string
}

// Scalar creates a single-string value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// List creates a list value. The input slice is copied.
func List(vs ...string) Value {
	l := make([]string, len(vs))
	copy(l, vs)
	return Value{kind: KindList, list: l}
}

// FromAny coerces an arbitrary value into a Value.
// Slices and arrays of any element type become lists with every element
// stringified, nil becomes an empty scalar, everything else is stringified.
// A []byte is treated as text.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Scalar("")
	case Value:
		return t
	case string:
		return Scalar(t)
	case []string:
		return List(t...)
	case []any:
		l := make([]string, len(t))
		for i, e := range t {
			l[i] = stringify(e)
		}
		return Value{kind: KindList, list: l}
	case []byte:
		return Scalar(string(t))
	default:
		if l, ok := reflectList(t); ok {
			return Value{kind: KindList, list: l}
		}
		return Scalar(stringify(t))
	}
}

// reflectList stringifies the elements of typed slices and arrays
// such as []int or [2]string.
func reflectList(v any) ([]string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	l := make([]string, rv.Len())
	for i := range l {
		l[i] = stringify(rv.Index(i).Interface())
	}
	return l, true
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsList reports whether the value is a list.
func (v Value) IsList() bool { return v.kind == KindList }

// Scalar returns the single string (empty for lists).
func (v Value) Scalar() string { return v.scalar }

// List returns the list elements (nil for scalars).
func (v Value) List() []string { return v.list }

// IsEmpty reports whether the value is an empty string or an empty list.
func (v Value) IsEmpty() bool {
	if v.kind == KindList {
		return len(v.list) == 0
	}
	return v.scalar == ""
}

// String renders the value for logs.
func (v Value) String() string {
	if v.kind == KindList {
		return "[" + strings.Join(v.list, ",") + "]"
	}
	return v.scalar
}

// Filter is a named filter value as supplied by the caller.
type Filter struct {
	Name  string
	Value Value
}

// New creates a Filter, coercing value with FromAny.
func New(name string, value any) Filter {
	return Filter{Name: name, Value: FromAny(value)}
}

// Names is an immutable set of filter names.
type Names struct {
	set map[string]struct{}
}

// NewNames builds a Names set. Names are matched case-insensitively.
func NewNames(names ...string) Names {
	if len(names) == 0 {
		return Names{}
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return Names{set: set}
}

// Has reports whether name is in the set.
func (n Names) Has(name string) bool {
	_, ok := n.set[strings.ToLower(name)]
	return ok
}

// Len returns the set size.
func (n Names) Len() int { return len(n.set) }
