package repo

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// updateBuilder accumulates SET assignments for a partial UPDATE.
// Column names come from code, never from callers; every value is bound as
// a named argument.
type updateBuilder struct {
	table string
	sets  []string
	args  pgx.NamedArgs
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table, args: pgx.NamedArgs{}}
}

// set adds "column = @column" to the statement.
func (b *updateBuilder) set(column string, value any) {
	b.sets = append(b.sets, column+" = @"+column)
	b.args[column] = value
}

// empty reports whether no column has been set.
func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// build renders the statement for the row matching id and the bound arguments.
// The id is bound as @id, so "id" must not be used as a SET column.
func (b *updateBuilder) build(id any, returning string) (string, pgx.NamedArgs) {
	b.args["id"] = id
	q := "UPDATE " + b.table + " SET " + strings.Join(b.sets, ", ") + " WHERE id = @id"
	if returning != "" {
		q += " RETURNING " + returning
	}
	return q, b.args
}

// setIfPresent calls b.set only when v is non-nil.
func setIfPresent[T any](b *updateBuilder, column string, v *T) {
	if v != nil {
		b.set(column, *v)
	}
}
