package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

type Condition interface {
	appendSQL(buf *bytebufferpool.ByteBuffer, args *[]any, argIndex *int)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(buf *bytebufferpool.ByteBuffer, args *[]any, argIndex *int) {
	_, _ = buf.WriteString(c.column)
	_, _ = buf.WriteString(" = ")
	_, _ = buf.WriteString(placeholder(*argIndex))
	*args = append(*args, c.value)
	*argIndex++
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

// Int64In is a convenience wrapper for the id-list lookups the repositories do.
func Int64In(column string, ids []int64) Condition {
	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	return In(column, values)
}

func (c inCondition) appendSQL(buf *bytebufferpool.ByteBuffer, args *[]any, argIndex *int) {
	if len(c.values) == 0 {
		_, _ = buf.WriteString("1=0")
		return
	}

	_, _ = buf.WriteString(c.column)
	_, _ = buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString(placeholder(*argIndex))
		*args = append(*args, v)
		*argIndex++
	}
	_, _ = buf.WriteString(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) appendSQL(buf *bytebufferpool.ByteBuffer, _ *[]any, _ *int) {
	_, _ = buf.WriteString(c.column)
	_, _ = buf.WriteString(" IS NULL")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("SELECT ")
	_, _ = buf.WriteString(strings.Join(b.columns, ", "))
	_, _ = buf.WriteString(" FROM ")
	_, _ = buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(buf, b.where, &args, &argIndex)

	if len(b.orderBy) > 0 {
		_, _ = buf.WriteString(" ORDER BY ")
		_, _ = buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		_, _ = buf.WriteString(" LIMIT ")
		_, _ = buf.WriteString(strconv.Itoa(b.limit))
	}

	return buf.String(), args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends a trailing clause, typically ON CONFLICT ... DO UPDATE.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("INSERT INTO ")
	_, _ = buf.WriteString(b.table)
	_, _ = buf.WriteString(" (")
	_, _ = buf.WriteString(strings.Join(b.columns, ", "))
	_, _ = buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			_, _ = buf.WriteString(", ")
		}
		_, _ = buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				_, _ = buf.WriteString(", ")
			}
			_, _ = buf.WriteString(placeholder(argIndex))
			args = append(args, value)
			argIndex++
		}
		_, _ = buf.WriteString(")")
	}

	if b.suffix != "" {
		_, _ = buf.WriteString(" ")
		_, _ = buf.WriteString(b.suffix)
	}

	return buf.String(), args, nil
}

func appendWhereClause(buf *bytebufferpool.ByteBuffer, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	_, _ = buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			_, _ = buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args, argIndex)
	}
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
