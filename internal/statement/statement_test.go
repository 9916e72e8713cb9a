package statement

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		allowed bool
	}{
		{name: "Upper case select", query: "SELECT * FROM employees", allowed: true},
		{name: "Lower case select", query: "select id from employees", allowed: true},
		{name: "Mixed case with leading whitespace", query: " \n\tSeLeCt 1", allowed: true},
		{name: "Select without trailing space", query: "SELECT*FROM employees", allowed: true},
		{name: "Bare keyword", query: "select", allowed: true},
		{name: "Vertical tab", query: "\vSELECT 1", allowed: true},
		{name: "No-break space", query: "\u00a0SELECT 1", allowed: true},
		{name: "Em space and ideographic space", query: "\u2003\u3000select 1", allowed: true},
		{name: "Next line", query: "\u0085SELECT 1", allowed: true},
		{name: "Insert", query: "INSERT INTO t VALUES (1)", allowed: true},
		{name: "Update", query: "update t set a = 1", allowed: true},
		{name: "Delete", query: "DELETE FROM t", allowed: true},
		{name: "Drop", query: "DROP TABLE employees"},
		{name: "Create", query: "CREATE TABLE t (id INT)"},
		{name: "Empty", query: ""},
		{name: "Whitespace only", query: "   "},
		{name: "Zero width space is not whitespace", query: "\u200bSELECT 1"},
		{name: "Keyword as prefix of a longer word", query: "SELECTED * FROM t"},
		{name: "Leading comment", query: "/* hi */ SELECT 1"},
		{name: "Keyword not at start", query: "WITH x AS (SELECT 1) SELECT * FROM x"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(test.query)
			if test.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNotAllowed)
			}
		})
	}
}

// The allow-list is a prefix check, so trailing statements pass through.
func TestValidatePrefixOnly(t *testing.T) {
	assert.NoError(t, Validate("SELECT 1; DROP TABLE employees"))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CategoryMutation, Classify("INSERT INTO t VALUES (1)"))
	assert.Equal(t, CategoryMutation, Classify("  update t set a = 1"))
	assert.Equal(t, CategoryMutation, Classify("Delete FROM t"))
	assert.Equal(t, CategoryMutation, Classify("\u00a0\vUPDATE t SET a = 1"))
	assert.Equal(t, CategoryRead, Classify("SELECT 1"))
	assert.Equal(t, CategoryRead, Classify(""))
}

func TestRowMarshalKeepsColumnOrder(t *testing.T) {
	row := Row{Columns: []string{"name", "id", "manager"}, Values: []any{"A", int64(1), nil}}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A","id":1,"manager":null}`, string(data))

	rows, err := json.Marshal([]Row{row})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"A","id":1,"manager":null}]`, string(rows))
}

func TestRowMarshalMismatch(t *testing.T) {
	_, err := Row{Columns: []string{"a"}, Values: []any{1, 2}}.MarshalJSON()
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	hired := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := NewRows([]string{"id", "name", "hired"}, [][]any{
		{int64(1), "A", hired},
		{int64(2), "B", nil},
	})

	out := Render("demo_company_info", rows)
	expected := "Database: demo_company_info\n\tRows: 2" +
		"\n\t\t{\"id\":1,\"name\":\"A\",\"hired\":\"2024-03-01T00:00:00Z\"}" +
		"\n\t\t{\"id\":2,\"name\":\"B\",\"hired\":null}"
	assert.Equal(t, expected, out)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "Database: demo\n\tRows: 0", Render("demo", nil))
}
