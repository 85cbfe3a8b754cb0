package schema

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/schemato/errs"
)

// DefaultSchema is the schema tables live in unless told otherwise. Tables in
// it are addressed by their bare name.
const DefaultSchema = "public"

// Table owns an ordered list of columns and an ordered list of constraints.
// Columns are created in the order they were added.
type Table struct {
	name        string
	schema      string
	columns     []*Column
	constraints []TableConstraint
}

// NewTable creates a detached table. An empty schema means DefaultSchema.
func NewTable(name, schema string) *Table {
	if schema == "" {
		schema = DefaultSchema
	}
	return &Table{name: name, schema: schema}
}

// Name returns the qualified name used in every generated statement:
// the bare name in the default schema, "schema.name" otherwise.
func (t *Table) Name() string {
	return QualifiedName(t.schema, t.name)
}

// BaseName returns the table name without its schema.
func (t *Table) BaseName() string { return t.name }

// Schema returns the schema the table belongs to.
func (t *Table) Schema() string { return t.schema }

// QualifiedName applies the same naming rule as Table.Name.
func QualifiedName(schema, name string) string {
	if schema == "" || schema == DefaultSchema {
		return name
	}
	return schema + "." + name
}

// Columns returns the table columns in insertion order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.columns {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Constraints returns all constraints in insertion order.
func (t *Table) Constraints() []TableConstraint {
	out := make([]TableConstraint, len(t.constraints))
	copy(out, t.constraints)
	return out
}

// ConstraintsOf returns the constraints of the given type in insertion order.
func (t *Table) ConstraintsOf(typ ConstraintType) []TableConstraint {
	var out []TableConstraint
	for _, c := range t.constraints {
		if c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

// PrimaryKey returns the primary key constraint, or nil if there is none.
func (t *Table) PrimaryKey() *Constraint {
	for _, c := range t.constraints {
		if c.Type() == PrimaryKey {
			return c.(*Constraint)
		}
	}
	return nil
}

func (t *Table) HasPrimaryKey() bool { return t.PrimaryKey() != nil }

// UniqueConstraints returns the unique constraints in insertion order.
func (t *Table) UniqueConstraints() []*Constraint {
	var out []*Constraint
	for _, c := range t.constraints {
		if c.Type() == Unique {
			out = append(out, c.(*Constraint))
		}
	}
	return out
}

// ForeignKeys returns the foreign key constraints in insertion order.
func (t *Table) ForeignKeys() []*ForeignKeyConstraint {
	var out []*ForeignKeyConstraint
	for _, c := range t.constraints {
		if fk, ok := c.(*ForeignKeyConstraint); ok {
			out = append(out, fk)
		}
	}
	return out
}

func (t *Table) HasForeignKeys() bool { return len(t.ForeignKeys()) != 0 }

// AddColumn appends a column of any type. A unique column also gets a
// single-column unique constraint named unique_<column>.
func (t *Table) AddColumn(name string, typ ColumnType, opts ...ColumnOptions) error {
	_, err := t.addColumn(NewColumn(name, typ, opts...))
	return err
}

func (t *Table) addColumn(col *Column) (*Column, error) {
	name := col.Name()
	if strings.TrimSpace(name) == "" {
		return nil, errs.Newf(errs.KindValidation, "table %s: column name must not be empty", t.Name())
	}
	if _, exists := t.Column(name); exists {
		return nil, errs.Newf(errs.KindValidation, "table %s: column %s already exists", t.Name(), name)
	}
	if col.IsUnique() {
		unique := newConstraint("unique_"+name, Unique)
		unique.addColumn(col)
		t.constraints = append(t.constraints, unique)
	}
	t.columns = append(t.columns, col)
	return col, nil
}

// PrimaryKeyColumn adds an auto-increment column (named "id" when name is
// empty) to the table's primary key, creating the key on first use.
func (t *Table) PrimaryKeyColumn(name string) error {
	if name == "" {
		name = "id"
	}
	col, err := t.addColumn(NewColumn(name, AutoIncrement))
	if err != nil {
		return err
	}
	pkey := t.PrimaryKey()
	if pkey == nil {
		pkey = newConstraint("pkey", PrimaryKey)
		t.constraints = append(t.constraints, pkey)
	}
	pkey.addColumn(col)
	return nil
}

func (t *Table) StringColumn(name string, opts ...ColumnOptions) error {
	return t.AddColumn(name, String, opts...)
}

func (t *Table) NumberColumn(name string, opts ...ColumnOptions) error {
	return t.AddColumn(name, Number, opts...)
}

func (t *Table) DecimalColumn(name string, opts ...ColumnOptions) error {
	return t.AddColumn(name, Decimal, opts...)
}

func (t *Table) GuidColumn(name string, opts ...ColumnOptions) error {
	return t.AddColumn(name, Guid, opts...)
}

func (t *Table) DateTimeColumn(name string, opts ...ColumnOptions) error {
	return t.AddColumn(name, DateTime, opts...)
}

func (t *Table) BooleanColumn(name string, opts ...ColumnOptions) error {
	return t.AddColumn(name, Boolean, opts...)
}

// ReferenceOption configures ReferenceColumn.
type ReferenceOption func(*referenceOptions)

type referenceOptions struct {
	refColumn string
	onUpdate  ForeignKeyAction
	onDelete  ForeignKeyAction
	column    ColumnOptions
}

// RefColumn names the referenced column. It defaults to the local column name.
func RefColumn(name string) ReferenceOption {
	return func(o *referenceOptions) { o.refColumn = name }
}

// OnUpdate sets the ON UPDATE action. It defaults to Cascade.
func OnUpdate(a ForeignKeyAction) ReferenceOption {
	return func(o *referenceOptions) { o.onUpdate = a }
}

// OnDelete sets the ON DELETE action. It defaults to Cascade.
func OnDelete(a ForeignKeyAction) ReferenceOption {
	return func(o *referenceOptions) { o.onDelete = a }
}

// WithColumnOptions sets the options of the referencing column.
func WithColumnOptions(opts ColumnOptions) ReferenceOption {
	return func(o *referenceOptions) { o.column = opts }
}

// ReferenceColumn adds a number column and a foreign key named fkey_<name>
// that points at a column of ref. The referenced column does not have to
// exist yet; it is resolved when the schema is generated.
func (t *Table) ReferenceColumn(name string, ref *Table, opts ...ReferenceOption) error {
	if ref == nil {
		return errs.Newf(errs.KindValidation, "table %s: reference column %s has no referenced table", t.Name(), name)
	}
	o := referenceOptions{onUpdate: Cascade, onDelete: Cascade}
	for _, opt := range opts {
		opt(&o)
	}
	if o.refColumn == "" {
		o.refColumn = name
	}

	col, err := t.addColumn(NewColumn(name, Number, o.column))
	if err != nil {
		return err
	}
	fkey := newForeignKey("fkey_"+col.Name(), ref, []string{o.refColumn}, o.onUpdate, o.onDelete)
	fkey.addColumn(col)
	t.constraints = append(t.constraints, fkey)
	return nil
}

// UniqueConstraint adds a multi-column unique constraint named
// unique_<col1>_<col2>... Every name must match an existing column and at
// least two are required; single columns use ColumnOptions.Unique instead.
// The constraint lists the columns in table order.
func (t *Table) UniqueConstraint(columns ...string) error {
	if len(columns) < 2 {
		return errs.Newf(errs.KindValidation, "table %s: unique constraint needs at least two columns", t.Name())
	}
	wanted := make(map[string]bool, len(columns))
	for _, name := range columns {
		if wanted[name] {
			return errs.Newf(errs.KindValidation, "table %s: column %s listed twice in unique constraint", t.Name(), name)
		}
		wanted[name] = true
	}

	var cols []*Column
	for _, c := range t.columns {
		if wanted[c.Name()] {
			cols = append(cols, c)
		}
	}
	if len(cols) != len(columns) {
		return errs.Newf(errs.KindValidation, "table %s: column names %v do not match existing columns", t.Name(), columns)
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	unique := newConstraint(fmt.Sprintf("unique_%s", strings.Join(names, "_")), Unique)
	for _, c := range cols {
		unique.addColumn(c)
	}
	t.constraints = append(t.constraints, unique)
	return nil
}
