package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/schemato/errs"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{"table1", "", "table1"},
		{"table1", "public", "table1"},
		{"table1", "schema1", "schema1.table1"},
	}

	for _, tt := range tests {
		table := NewTable(tt.name, tt.schema)
		assert.Equal(t, tt.want, table.Name())
		assert.Equal(t, tt.name, table.BaseName())
	}
}

func TestNewColumn_Defaults(t *testing.T) {
	col := NewColumn("email", String)
	assert.True(t, col.IsRequired())
	assert.False(t, col.IsUnique())
	assert.False(t, col.HasDefault())
	assert.False(t, col.HasCheck())

	col = NewColumn("total", Decimal, ColumnOptions{Required: Bool(false), Default: "0", Check: "total >= 0"})
	assert.False(t, col.IsRequired())
	assert.Equal(t, "0", col.Default())
	assert.Equal(t, "total >= 0", col.Check())
	assert.Equal(t, Decimal, col.Type())

	col = NewColumn("note", String, ColumnOptions{Default: "   ", Check: " length(note) > 0 \n"})
	assert.False(t, col.HasDefault())
	assert.Empty(t, col.Default())
	assert.True(t, col.HasCheck())
	assert.Equal(t, "length(note) > 0", col.Check())
}

func TestPrimaryKeyColumn_SharesConstraint(t *testing.T) {
	table := NewTable("memberships", "")
	require.NoError(t, table.PrimaryKeyColumn("user_id"))
	require.NoError(t, table.PrimaryKeyColumn("group_id"))

	pks := table.ConstraintsOf(PrimaryKey)
	require.Len(t, pks, 1)
	assert.Equal(t, "pkey", pks[0].Name())
	assert.Equal(t, []string{"user_id", "group_id"}, pks[0].ColumnNames())

	col, ok := table.Column("user_id")
	require.True(t, ok)
	assert.Equal(t, AutoIncrement, col.Type())
	assert.True(t, col.IsRequired())
}

func TestPrimaryKeyColumn_DefaultName(t *testing.T) {
	table := NewTable("users", "")
	require.NoError(t, table.PrimaryKeyColumn(""))
	assert.Equal(t, []string{"id"}, table.PrimaryKey().ColumnNames())
}

func TestUniqueColumn_ImplicitConstraint(t *testing.T) {
	table := NewTable("users", "")
	require.NoError(t, table.StringColumn("email", ColumnOptions{Unique: true}))
	require.NoError(t, table.StringColumn("name"))

	uniques := table.UniqueConstraints()
	require.Len(t, uniques, 1)
	assert.Equal(t, "unique_email", uniques[0].Name())
	assert.Equal(t, []string{"email"}, uniques[0].ColumnNames())
}

func TestUniqueConstraint(t *testing.T) {
	table := NewTable("people", "")
	require.NoError(t, table.StringColumn("a"))
	require.NoError(t, table.StringColumn("b"))

	require.NoError(t, table.UniqueConstraint("a", "b"))

	uniques := table.UniqueConstraints()
	require.Len(t, uniques, 1)
	assert.Equal(t, "unique_a_b", uniques[0].Name())
	assert.Equal(t, []string{"a", "b"}, uniques[0].ColumnNames())
}

func TestUniqueConstraint_UsesTableOrder(t *testing.T) {
	table := NewTable("people", "")
	require.NoError(t, table.StringColumn("first_name"))
	require.NoError(t, table.StringColumn("last_name"))

	require.NoError(t, table.UniqueConstraint("last_name", "first_name"))
	assert.Equal(t, "unique_first_name_last_name", table.UniqueConstraints()[0].Name())
}

func TestUniqueConstraint_Errors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"single column", []string{"a"}},
		{"no columns", nil},
		{"unknown column", []string{"x", "y"}},
		{"one unknown column", []string{"a", "x"}},
		{"duplicate name", []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable("people", "")
			require.NoError(t, table.StringColumn("a"))
			require.NoError(t, table.StringColumn("b"))

			err := table.UniqueConstraint(tt.columns...)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
			assert.Empty(t, table.UniqueConstraints(), "failed call must not add a constraint")
		})
	}
}

func TestAddColumn_Errors(t *testing.T) {
	table := NewTable("users", "")
	require.NoError(t, table.StringColumn("email"))

	err := table.StringColumn("email")
	assert.True(t, errs.IsValidation(err))

	err = table.NumberColumn("  ")
	assert.True(t, errs.IsValidation(err))

	assert.Len(t, table.Columns(), 1)
}

func TestReferenceColumn(t *testing.T) {
	users := NewTable("users", "auth")
	require.NoError(t, users.PrimaryKeyColumn("id"))

	posts := NewTable("posts", "")
	require.NoError(t, posts.ReferenceColumn("author_id", users, RefColumn("id"), OnDelete(SetNull),
		WithColumnOptions(ColumnOptions{Required: Bool(false)})))

	col, ok := posts.Column("author_id")
	require.True(t, ok)
	assert.Equal(t, Number, col.Type())
	assert.False(t, col.IsRequired())

	fks := posts.ForeignKeys()
	require.Len(t, fks, 1)
	fk := fks[0]
	assert.Equal(t, "fkey_author_id", fk.Name())
	assert.Equal(t, ForeignKey, fk.Type())
	assert.Same(t, users, fk.RefTable())
	assert.Equal(t, []string{"id"}, fk.RefColumns())
	assert.Equal(t, []string{"author_id"}, fk.ColumnNames())
	assert.Equal(t, Cascade, fk.OnUpdate())
	assert.Equal(t, SetNull, fk.OnDelete())
	assert.True(t, posts.HasForeignKeys())
}

func TestReferenceColumn_Defaults(t *testing.T) {
	users := NewTable("users", "")
	orders := NewTable("orders", "")
	require.NoError(t, orders.ReferenceColumn("users_id", users))

	fk := orders.ForeignKeys()[0]
	assert.Equal(t, []string{"users_id"}, fk.RefColumns())
	assert.Equal(t, Cascade, fk.OnUpdate())
	assert.Equal(t, Cascade, fk.OnDelete())
}

func TestReferenceColumn_NilTable(t *testing.T) {
	orders := NewTable("orders", "")
	err := orders.ReferenceColumn("user_id", nil)
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, orders.Columns())
}

func TestConstraints_KeepInsertionOrder(t *testing.T) {
	users := NewTable("users", "")
	table := NewTable("t", "")
	require.NoError(t, table.PrimaryKeyColumn("id"))
	require.NoError(t, table.StringColumn("code", ColumnOptions{Unique: true}))
	require.NoError(t, table.ReferenceColumn("user_id", users, RefColumn("id")))

	var types []ConstraintType
	for _, c := range table.Constraints() {
		types = append(types, c.Type())
	}
	assert.Equal(t, []ConstraintType{PrimaryKey, Unique, ForeignKey}, types)
}

func TestColumns_ReturnsCopy(t *testing.T) {
	table := NewTable("t", "")
	require.NoError(t, table.StringColumn("a"))

	cols := table.Columns()
	cols[0] = nil
	assert.NotNil(t, table.Columns()[0])
}
