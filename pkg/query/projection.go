// Package query provides a projection-mapped SQL builder with automatic
// parameter numbering for Postgres.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap binds logical field names to physical columns of one table.
// Builders resolve fields through the map so callers never handle column names.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	fields  []string
	columns map[string]string
}

// NewProjectionMap creates an empty projection for the given table.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project registers a column under a logical field name. Registration order
// controls SELECT column order.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	p.fields = append(p.fields, field)
	p.columns[field] = column
	return p
}

// Table returns the aliased table reference for FROM clauses.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the qualified column for a logical field. Unknown fields
// panic: they indicate a programming error, not runtime input.
func (p *ProjectionMap) Column(field string) string {
	col, ok := p.columns[field]
	if !ok {
		panic(fmt.Sprintf("query: unmapped field %q on %s.%s", field, p.schema, p.table))
	}
	return fmt.Sprintf("%s.%s", p.alias, col)
}

// Columns returns the full qualified SELECT column list.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.fields))
	for i, f := range p.fields {
		cols[i] = p.Column(f)
	}
	return strings.Join(cols, ", ")
}
