package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

type statementKind int

const (
	kindSelect statementKind = iota
	kindDelete
)

// Builder constructs Spanner SQL statements with a fluent API.
// Every method returns a new Builder; parameter names are generated from
// condition order so callers never hand-number them.
type Builder struct {
	kind       statementKind
	table      string
	columns    []string
	conditions []Condition
	orderBy    []orderTerm
	limit      int64
	offset     int64
}

type orderTerm struct {
	column    string
	direction Direction
}

// From starts a SELECT against table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// DeleteFrom starts a DML DELETE against table. Spanner rejects a DELETE
// without WHERE, so Build emits "WHERE true" when no condition is set.
func DeleteFrom(table string) *Builder {
	return &Builder{kind: kindDelete, table: table}
}

// Select appends columns to the projection.
func (b *Builder) Select(columns ...string) *Builder {
	next := b.clone()
	next.columns = append(next.columns, columns...)
	return next
}

// Where adds a condition. Conditions are joined with AND.
func (b *Builder) Where(condition Condition) *Builder {
	next := b.clone()
	next.conditions = append(next.conditions, condition)
	return next
}

// OrderBy adds a sort term. Repeated calls add tie-breakers.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	next := b.clone()
	next.orderBy = append(next.orderBy, orderTerm{column: column, direction: direction})
	return next
}

func (b *Builder) Limit(limit int64) *Builder {
	next := b.clone()
	next.limit = limit
	return next
}

func (b *Builder) Offset(offset int64) *Builder {
	next := b.clone()
	next.offset = offset
	return next
}

// Count keeps FROM and WHERE and projects COUNT(*), dropping ordering and pagination.
func (b *Builder) Count() *Builder {
	next := b.clone()
	next.kind = kindSelect
	next.columns = []string{"COUNT(*)"}
	next.orderBy = nil
	next.limit = 0
	next.offset = 0
	return next
}

// Build renders the statement.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder
	params := make(map[string]interface{})

	switch b.kind {
	case kindDelete:
		sql.WriteString("DELETE FROM ")
		sql.WriteString(b.table)
	default:
		sql.WriteString("SELECT ")
		if len(b.columns) == 0 {
			sql.WriteString("*")
		} else {
			sql.WriteString(strings.Join(b.columns, ", "))
		}
		sql.WriteString(" FROM ")
		sql.WriteString(b.table)
	}

	switch {
	case len(b.conditions) > 0:
		sql.WriteString(" WHERE ")
		parts := make([]string, 0, len(b.conditions))
		paramIndex := 0
		for _, condition := range b.conditions {
			fragment, condParams := condition.SQL(paramIndex)
			parts = append(parts, fragment)
			for k, v := range condParams {
				params[k] = v
			}
			paramIndex += len(condParams)
		}
		sql.WriteString(strings.Join(parts, " AND "))
	case b.kind == kindDelete:
		sql.WriteString(" WHERE true")
	}

	if b.kind == kindDelete {
		return spanner.Statement{SQL: sql.String(), Params: params}
	}

	if len(b.orderBy) > 0 {
		terms := make([]string, 0, len(b.orderBy))
		for _, term := range b.orderBy {
			dir := "ASC"
			if term.direction == Desc {
				dir = "DESC"
			}
			terms = append(terms, term.column+" "+dir)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(terms, ", "))
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}
	if b.offset > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offset
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

func (b *Builder) clone() *Builder {
	next := *b
	next.columns = append([]string(nil), b.columns...)
	next.conditions = append([]Condition(nil), b.conditions...)
	next.orderBy = append([]orderTerm(nil), b.orderBy...)
	return &next
}

// String renders the statement for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
