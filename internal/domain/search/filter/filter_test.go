package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringerID int

func (s stringerID) String() string { return "id-" + string(rune('0'+int(s))) }

func TestFromAny(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantList  bool
		wantValue string
		wantItems []string
	}{
		{"string", "hive", false, "hive", nil},
		{"empty string", "", false, "", nil},
		{"nil", nil, false, "", nil},
		{"int", 42, false, "42", nil},
		{"float", 1.5, false, "1.5", nil},
		{"bool", true, false, "true", nil},
		{"stringer", stringerID(3), false, "id-3", nil},
		{"string slice", []string{"a", "b"}, true, "", []string{"a", "b"}},
		{"any slice", []any{"a", 2, nil}, true, "", []string{"a", "2", ""}},
		{"empty slice", []string{}, true, "", []string{}},
		{"int slice", []int{1, 2}, true, "", []string{"1", "2"}},
		{"int64 slice", []int64{1600000000}, true, "", []string{"1600000000"}},
		{"string array", [2]string{"a", "b"}, true, "", []string{"a", "b"}},
		{"stringer slice", []stringerID{1, 2}, true, "", []string{"id-1", "id-2"}},
		{"bytes", []byte("raw"), false, "raw", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FromAny(tt.in)
			assert.Equal(t, tt.wantList, v.IsList())
			if tt.wantList {
				assert.Equal(t, tt.wantItems, v.List())
			} else {
				assert.Equal(t, tt.wantValue, v.Scalar())
			}
		})
	}
}

func TestFromAny_PassesValueThrough(t *testing.T) {
	v := List("x", "y")
	assert.Equal(t, v, FromAny(v))
}

func TestValue_IsEmpty(t *testing.T) {
	assert.True(t, Scalar("").IsEmpty())
	assert.True(t, List().IsEmpty())
	assert.False(t, Scalar("a").IsEmpty())
	assert.False(t, List("").IsEmpty(), "a list with an empty element is not empty")
}

func TestList_CopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	v := List(in...)
	in[0] = "z"
	assert.Equal(t, []string{"a", "b"}, v.List())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "a", Scalar("a").String())
	assert.Equal(t, "[a,b]", List("a", "b").String())
}

func TestNames(t *testing.T) {
	n := NewNames("Tag", "owner")
	assert.True(t, n.Has("tag"))
	assert.True(t, n.Has("OWNER"))
	assert.False(t, n.Has("schema"))
	assert.Equal(t, 2, n.Len())

	var zero Names
	assert.False(t, zero.Has("tag"))
	assert.Equal(t, 0, zero.Len())
}

func TestNew(t *testing.T) {
	f := New("tag", []any{"a", "b"})
	assert.Equal(t, "tag", f.Name)
	assert.Equal(t, []string{"a", "b"}, f.Value.List())
}
