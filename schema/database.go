// Package schema is the dialect-independent object model of a database:
// tables, their columns, and primary key, unique and foreign key constraints.
//
// A Database is built once, in memory, through the builder methods and then
// handed to a dialect emitter:
//
//	db := schema.NewDatabase()
//	users, _ := db.AddTable("users", "")
//	_ = users.PrimaryKeyColumn("id")
//	_ = users.StringColumn("email", schema.ColumnOptions{Unique: true})
//
// Builder methods validate their arguments before mutating anything and
// return an errs.KindValidation error on bad input.
package schema

import (
	"strings"

	"github.com/ridoystarlord/schemato/errs"
)

// Database owns an ordered list of tables. Declaration order is preserved
// into generation order.
type Database struct {
	tables []*Table
}

func NewDatabase() *Database {
	return &Database{}
}

// AddTable creates a table in schema (DefaultSchema when empty) and appends
// it to the database. Schema qualification is passed explicitly; a dotted
// table name is rejected rather than split.
func (d *Database) AddTable(name, schema string) (*Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.New(errs.KindValidation, "table name must not be empty")
	}
	if strings.Contains(name, ".") {
		return nil, errs.Newf(errs.KindValidation, "table name %q must not contain a schema; pass the schema separately", name)
	}
	if schema != "" && strings.TrimSpace(schema) == "" {
		return nil, errs.New(errs.KindValidation, "schema name must not be blank")
	}
	if strings.Contains(schema, ".") {
		return nil, errs.Newf(errs.KindValidation, "schema name %q must not contain a dot", schema)
	}
	table := NewTable(name, schema)
	if _, exists := d.Table(table.Name()); exists {
		return nil, errs.Newf(errs.KindValidation, "table %s already exists", table.Name())
	}
	d.tables = append(d.tables, table)
	return table, nil
}

// Tables returns the tables in declaration order.
func (d *Database) Tables() []*Table {
	out := make([]*Table, len(d.tables))
	copy(out, d.tables)
	return out
}

// Table looks up a table by qualified name.
func (d *Database) Table(qualifiedName string) (*Table, bool) {
	for _, t := range d.tables {
		if t.Name() == qualifiedName {
			return t, true
		}
	}
	return nil, false
}

// Owns reports whether t is one of the database's tables.
func (d *Database) Owns(t *Table) bool {
	for _, own := range d.tables {
		if own == t {
			return true
		}
	}
	return false
}

// Schemas returns the non-default schemas used by the database's tables.
func (d *Database) Schemas() []string {
	return CollectSchemas(d.tables)
}

// CollectSchemas returns the distinct schema names other than DefaultSchema
// referenced by tables, in the order they are first seen.
func CollectSchemas(tables []*Table) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tables {
		s := t.Schema()
		if s == DefaultSchema || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
