// Package sort holds result ordering directives.
package sort

// Common sort orders. Any other string is passed through to the backend.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Directive orders results by one key.
type Directive struct {
	Key   string
	Order string
}

// Directives is an ordered list of sort directives, primary first.
type Directives []Directive

// Single creates directives from one key/order pair.
// An empty key yields no directives.
func Single(key, order string) Directives {
	if key == "" {
		return nil
	}
	return Directives{{Key: key, Order: order}}
}

// Parallel creates directives from parallel key and order lists.
// Lists of unequal length are zipped to the shorter one.
func Parallel(keys, orders []string) Directives {
	if len(keys) == 0 {
		return nil
	}
	n := min(len(keys), len(orders))
	d := make(Directives, n)
	for i := range n {
		d[i] = Directive{Key: keys[i], Order: orders[i]}
	}
	return d
}

// IsEmpty reports whether there is nothing to sort by.
func (d Directives) IsEmpty() bool { return len(d) == 0 }
