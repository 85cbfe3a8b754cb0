package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/schema"
)

func shopTables(t *testing.T) []*schema.Table {
	t.Helper()
	db := schema.NewDatabase()
	users, err := db.AddTable("users", "auth")
	require.NoError(t, err)
	require.NoError(t, users.PrimaryKeyColumn("id"))
	require.NoError(t, users.StringColumn("email", schema.ColumnOptions{Unique: true}))

	orders, err := db.AddTable("orders", "")
	require.NoError(t, err)
	require.NoError(t, orders.PrimaryKeyColumn("id"))
	require.NoError(t, orders.DecimalColumn("total", schema.ColumnOptions{Default: "0"}))
	require.NoError(t, orders.ReferenceColumn("user_id", users, schema.RefColumn("id")))
	return db.Tables()
}

func TestMermaid(t *testing.T) {
	out, err := Mermaid(shopTables(t))
	require.NoError(t, err)

	assert.Contains(t, out, "```mermaid\nerDiagram\n")
	assert.Contains(t, out, "    auth_users {\n")
	assert.Contains(t, out, "        SERIAL id PK\n")
	assert.Contains(t, out, "        VARCHAR email UK\n")
	assert.Contains(t, out, "        DECIMAL total \"default 0\"\n")
	assert.Contains(t, out, "    auth_users ||--o{ orders : user_id\n")
}

func TestPlantUML(t *testing.T) {
	out, err := PlantUML(shopTables(t))
	require.NoError(t, err)

	assert.Contains(t, out, "@startuml\n")
	assert.Contains(t, out, "entity \"auth.users\" {\n")
	assert.Contains(t, out, "  id : SERIAL <<PK>> <<NN>>\n")
	assert.Contains(t, out, "  total : DECIMAL <<NN>> <<DEFAULT: 0>>\n")
	assert.Contains(t, out, "\"auth.users\" ||--o{ \"orders\" : \"user_id\"\n")
	assert.Contains(t, out, "@enduml\n")
}

func TestGraphviz(t *testing.T) {
	out, err := Graphviz(shopTables(t))
	require.NoError(t, err)

	assert.Contains(t, out, "digraph ERD {\n")
	assert.Contains(t, out, `"auth.users" -> "orders" [label="user_id"];`)
}

func TestRender(t *testing.T) {
	tables := shopTables(t)
	for _, f := range Formats {
		out, err := Render(f, tables)
		require.NoError(t, err, f)
		assert.NotEmpty(t, out)
	}

	_, err := Render("svg", tables)
	assert.True(t, errs.IsValidation(err))

	assert.Equal(t, "erd.puml", FormatPlantUML.DefaultOutput())
	assert.Equal(t, "erd.md", FormatMermaid.DefaultOutput())
}

func TestRender_UnmappedType(t *testing.T) {
	table := schema.NewTable("t", "")
	require.NoError(t, table.AddColumn("x", schema.ColumnType(50)))

	_, err := Mermaid([]*schema.Table{table})
	assert.True(t, errs.IsUnmapped(err))
}
