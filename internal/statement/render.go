package statement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Row pairs the values of a single result row with the column names reported by the query.
// It marshals to a JSON object that keeps the column order of the query.
type Row struct {
	Columns []string
	Values  []any
}

// NewRows zips each set of values with the column names.
func NewRows(columns []string, values [][]any) []Row {
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, Row{Columns: columns, Values: v})
	}

	return rows
}

// MarshalJSON encodes the row as an object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	if len(r.Columns) != len(r.Values) {
		return nil, fmt.Errorf("Row has %d columns but %d values", len(r.Columns), len(r.Values))
	}

	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, column := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, fmt.Errorf("Failed to encode column %q: %w", column, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// String renders the row as compact JSON, or with fmt if a value can't be encoded.
func (r Row) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", r.Values)
	}

	return string(data)
}

// Render builds the descriptive listing returned for reads: a header naming the database and
// the row count, then one indented line per row.
func Render(database string, rows []Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Database: %s\n\tRows: %d", database, len(rows))
	for _, row := range rows {
		b.WriteString("\n\t\t")
		b.WriteString(row.String())
	}

	return b.String()
}
