package field

// Field is a logical table-search field selected by the caller.
type Field string

// Logical search fields.
const (
	TableName   Field = "table_name"
	Description Field = "description"
	// Column searches over the column names of a table.
	Column Field = "column"
)

// IsValid reports whether the field is one of the known logical fields.
func (f Field) IsValid() bool {
	return f == TableName || f == Description || f == Column
}

// All returns every known logical field in canonical order.
func All() []Field {
	return []Field{TableName, Description, Column}
}

// Parse converts raw identifiers into fields. Unknown identifiers are kept;
// consumers ignore what they do not know.
func Parse(raw []string) []Field {
	if len(raw) == 0 {
		return nil
	}
	out := make([]Field, len(raw))
	for i, r := range raw {
		out[i] = Field(r)
	}
	return out
}
