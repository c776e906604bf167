// Package sqlbuild assembles the dynamic fragments of parameterized SQL
// statements. Values are never written into SQL text; they come back as a
// positional argument list.
package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/leporo/sqlf"

	"jobboard/domain"
)

// Field is one logical field of a partial update.
type Field struct {
	Name  string
	Value any
}

// Columns maps logical field names to physical column names.
type Columns map[string]string

// SetClause is the SET part of an UPDATE statement.
type SetClause struct {
	Cols   string
	Values []any
}

// NextPlaceholder returns the placeholder that follows the last bound value.
func (s SetClause) NextPlaceholder() string {
	return Placeholder(len(s.Values) + 1)
}

// Placeholder returns the PostgreSQL positional parameter marker for n.
func Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// PartialUpdate builds `"col"=$1, "col2"=$2` from fields, keeping their
// order. Names missing from columns are used as the column name.
func PartialUpdate(fields []Field, columns Columns) (SetClause, error) {
	if len(fields) == 0 {
		return SetClause{}, domain.BadRequest("No data")
	}

	cols := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for i, f := range fields {
		cols = append(cols, fmt.Sprintf(`"%s"=%s`, columns.resolve(f.Name), Placeholder(i+1)))
		values = append(values, f.Value)
	}

	return SetClause{
		Cols:   strings.Join(cols, ", "),
		Values: values,
	}, nil
}

// Update starts an UPDATE of table setting fields in order. The caller adds
// the WHERE and RETURNING clauses and must Close the statement.
func Update(table string, fields []Field, columns Columns) (*sqlf.Stmt, error) {
	if len(fields) == 0 {
		return nil, domain.BadRequest("No data")
	}

	q := sqlf.PostgreSQL.Update(table)
	for _, f := range fields {
		q.Set(`"`+columns.resolve(f.Name)+`"`, f.Value)
	}
	return q, nil
}

func (c Columns) resolve(name string) string {
	if col, ok := c[name]; ok {
		return col
	}
	return name
}
