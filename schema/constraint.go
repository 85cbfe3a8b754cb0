package schema

// TableConstraint is implemented by every constraint a Table stores.
type TableConstraint interface {
	Name() string
	Type() ConstraintType
	Columns() []*Column
	ColumnNames() []string
}

// Constraint groups columns of its table under a primary key or unique
// constraint. The columns are referenced, not owned: they belong to the table.
type Constraint struct {
	name    string
	typ     ConstraintType
	columns []*Column
}

func newConstraint(name string, typ ConstraintType) *Constraint {
	return &Constraint{name: name, typ: typ}
}

func (c *Constraint) Name() string { return c.name }
func (c *Constraint) Type() ConstraintType { return c.typ }

// Columns returns the constrained columns in the order they were added.
func (c *Constraint) Columns() []*Column {
	out := make([]*Column, len(c.columns))
	copy(out, c.columns)
	return out
}

// ColumnNames returns the names of the constrained columns in order.
func (c *Constraint) ColumnNames() []string {
	names := make([]string, len(c.columns))
	for i, col := range c.columns {
		names[i] = col.Name()
	}
	return names
}

func (c *Constraint) addColumn(col *Column) {
	c.columns = append(c.columns, col)
}

// ForeignKeyConstraint links local columns to columns of another table of
// the same database.
type ForeignKeyConstraint struct {
	Constraint
	refTable   *Table
	refColumns []string
	onUpdate   ForeignKeyAction
	onDelete   ForeignKeyAction
}

func newForeignKey(name string, refTable *Table, refColumns []string, onUpdate, onDelete ForeignKeyAction) *ForeignKeyConstraint {
	return &ForeignKeyConstraint{
		Constraint: Constraint{name: name, typ: ForeignKey},
		refTable:   refTable,
		refColumns: refColumns,
		onUpdate:   onUpdate,
		onDelete:   onDelete,
	}
}

func (f *ForeignKeyConstraint) RefTable() *Table { return f.refTable }
func (f *ForeignKeyConstraint) OnUpdate() ForeignKeyAction { return f.onUpdate }
func (f *ForeignKeyConstraint) OnDelete() ForeignKeyAction { return f.onDelete }

// RefColumns returns the referenced column names on RefTable.
func (f *ForeignKeyConstraint) RefColumns() []string {
	out := make([]string, len(f.refColumns))
	copy(out, f.refColumns)
	return out
}
