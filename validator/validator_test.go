package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/schemato/schema"
)

func types(findings []ValidationError) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Type)
	}
	return out
}

func TestValidate_Clean(t *testing.T) {
	db := schema.NewDatabase()
	users, err := db.AddTable("users", "")
	require.NoError(t, err)
	require.NoError(t, users.PrimaryKeyColumn("id"))
	require.NoError(t, users.StringColumn("email", schema.ColumnOptions{Default: "''"}))
	posts, err := db.AddTable("posts", "")
	require.NoError(t, err)
	require.NoError(t, posts.PrimaryKeyColumn("id"))
	require.NoError(t, posts.ReferenceColumn("user_id", users, schema.RefColumn("id")))

	result := Validate(db)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_Identifiers(t *testing.T) {
	db := schema.NewDatabase()
	table, err := db.AddTable("1users", "")
	require.NoError(t, err)
	require.NoError(t, table.PrimaryKeyColumn("id"))
	require.NoError(t, table.StringColumn("e-mail"))
	require.NoError(t, table.StringColumn(strings.Repeat("a", 64)))

	result := Validate(db)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"table_name", "column_name", "column_name"}, types(result.Errors))
}

func TestValidate_ReservedKeywords(t *testing.T) {
	db := schema.NewDatabase()
	table, err := db.AddTable("user", "")
	require.NoError(t, err)
	require.NoError(t, table.PrimaryKeyColumn("id"))
	require.NoError(t, table.NumberColumn("order"))

	result := Validate(db)
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"reserved_keyword", "reserved_keyword"}, types(result.Warnings))
	assert.Equal(t, "order", result.Warnings[1].Column)
}

func TestValidate_References(t *testing.T) {
	db := schema.NewDatabase()
	users, err := db.AddTable("users", "")
	require.NoError(t, err)
	require.NoError(t, users.PrimaryKeyColumn("id"))
	posts, err := db.AddTable("posts", "")
	require.NoError(t, err)
	require.NoError(t, posts.PrimaryKeyColumn("id"))
	require.NoError(t, posts.ReferenceColumn("author_id", users, schema.RefColumn("uid")))
	require.NoError(t, posts.ReferenceColumn("org_id", schema.NewTable("orgs", ""), schema.RefColumn("id")))

	result := Validate(db)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"foreign_key_column_not_found", "foreign_key_table_not_found"}, types(result.Errors))
	assert.Equal(t, "author_id", result.Errors[0].Column)
}

func TestValidate_MissingPrimaryKeyAndSchemas(t *testing.T) {
	db := schema.NewDatabase()
	table, err := db.AddTable("events", "audit")
	require.NoError(t, err)
	require.NoError(t, table.StringColumn("payload"))

	result := Validate(db)
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"no_primary_key"}, types(result.Warnings))
	assert.Equal(t, []string{"schema_rebuilt"}, types(result.Info))
}

func TestValidateDefaultValue(t *testing.T) {
	tests := []struct {
		typ     schema.ColumnType
		value   string
		wantErr bool
	}{
		{schema.Number, "1", false},
		{schema.Number, "1.5", true},
		{schema.String, "'x'", false},
		{schema.String, "x", true},
		{schema.Guid, "gen_random_uuid()", false},
		{schema.Boolean, "TRUE", false},
		{schema.Boolean, "yes", true},
		{schema.DateTime, "now()", false},
		{schema.Decimal, "0.5", false},
	}
	for _, tt := range tests {
		err := validateDefaultValue(tt.typ, tt.value)
		if tt.wantErr {
			assert.Error(t, err, "%s %s", tt.typ, tt.value)
		} else {
			assert.NoError(t, err, "%s %s", tt.typ, tt.value)
		}
	}
}
