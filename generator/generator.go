// Package generator emits the SQL statements that rebuild a schema.Database
// from scratch.
//
// The PostgreSQL emitter works in three passes so that table declaration
// order never matters for foreign keys:
//
//  1. drop and recreate every non-default schema, then drop every table;
//  2. create every table as an empty shell and add its columns, primary
//     key and unique constraints;
//  3. add every foreign key.
//
// The result is a fresh build script, not a migration: schemas and tables
// are dropped with CASCADE before they are created.
package generator

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/schema"
)

// Emitter produces the ordered statements of a build script. Statements
// carry no trailing terminator.
type Emitter interface {
	Create() ([]string, error)
}

// PostgreSQLDatabase is the PostgreSQL dialect of a schema.Database.
type PostgreSQLDatabase struct {
	*schema.Database
	mapper TypeMapper
}

// NewPostgreSQLDatabase starts an empty PostgreSQL database model.
func NewPostgreSQLDatabase() *PostgreSQLDatabase {
	return NewPostgreSQL(schema.NewDatabase())
}

// NewPostgreSQL wraps an already built model, e.g. one read by the loader.
func NewPostgreSQL(db *schema.Database) *PostgreSQLDatabase {
	return &PostgreSQLDatabase{Database: db, mapper: PostgresTypeMapper{}}
}

// Create generates the full build script. It either returns every
// statement in order or an error and no statements.
func (d *PostgreSQLDatabase) Create() ([]string, error) {
	tables := d.Tables()
	var script []string

	for _, s := range d.Schemas() {
		script = append(script, rebuildSchema(s)...)
	}

	for _, table := range tables {
		script = append(script, dropTable(table))
	}

	for _, table := range tables {
		stmts, err := d.createTable(table)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", table.Name(), err)
		}
		script = append(script, stmts...)
	}

	for _, table := range tables {
		stmts, err := d.createForeignKeys(table)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", table.Name(), err)
		}
		script = append(script, stmts...)
	}

	return script, nil
}

func rebuildSchema(name string) []string {
	return []string{
		fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", name),
		fmt.Sprintf("CREATE SCHEMA %s", name),
	}
}

func dropTable(table *schema.Table) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table.Name())
}

// createTable emits the shell, the columns, the primary key and the unique
// constraints of one table.
func (d *PostgreSQLDatabase) createTable(table *schema.Table) ([]string, error) {
	stmts := []string{fmt.Sprintf("CREATE TABLE %s()", table.Name())}

	for _, col := range table.Columns() {
		stmt, err := d.addColumn(table, col)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if pkey := table.PrimaryKey(); pkey != nil {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s)",
			table.Name(),
			strings.Join(pkey.ColumnNames(), ","),
		))
	}

	for _, unique := range table.UniqueConstraints() {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD UNIQUE (%s)",
			table.Name(),
			strings.Join(unique.ColumnNames(), ","),
		))
	}

	return stmts, nil
}

func (d *PostgreSQLDatabase) addColumn(table *schema.Table, col *schema.Column) (string, error) {
	typ, err := d.mapper.MapColumnType(col.Type())
	if err != nil {
		return "", fmt.Errorf("column %s: %w", col.Name(), err)
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table.Name(), col.Name(), typ)
	if col.IsRequired() {
		stmt += " NOT NULL"
	}
	if col.HasDefault() {
		stmt += fmt.Sprintf(" DEFAULT %s", strings.TrimSpace(col.Default()))
	}
	if col.HasCheck() {
		stmt += fmt.Sprintf(" CHECK (%s)", strings.TrimSpace(col.Check()))
	}
	return stmt, nil
}

func (d *PostgreSQLDatabase) createForeignKeys(table *schema.Table) ([]string, error) {
	var stmts []string
	for _, fk := range table.ForeignKeys() {
		ref := fk.RefTable()
		if !d.Owns(ref) {
			return nil, errs.Newf(errs.KindValidation, "%s references table %s which is not part of the database", fk.Name(), ref.Name())
		}
		onUpdate, err := d.mapper.MapForeignKeyAction(fk.OnUpdate())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fk.Name(), err)
		}
		onDelete, err := d.mapper.MapForeignKeyAction(fk.OnDelete())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fk.Name(), err)
		}

		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD FOREIGN KEY (%s) REFERENCES %s (%s) ON UPDATE %s ON DELETE %s",
			table.Name(),
			strings.Join(fk.ColumnNames(), ","),
			ref.Name(),
			strings.Join(fk.RefColumns(), ","),
			onUpdate,
			onDelete,
		))
	}
	return stmts, nil
}
