package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ridoystarlord/schemato/schema"
)

// ValidationError represents a validation finding with details
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all validation results
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

const maxIdentifierLength = 63

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Unquoted use of these fails or changes meaning in PostgreSQL.
var reservedKeywords = map[string]bool{
	"all": true, "and": true, "as": true, "asc": true, "case": true,
	"check": true, "column": true, "constraint": true, "create": true,
	"default": true, "desc": true, "distinct": true, "else": true,
	"end": true, "false": true, "foreign": true, "from": true,
	"grant": true, "group": true, "having": true, "in": true,
	"limit": true, "not": true, "null": true, "offset": true,
	"on": true, "or": true, "order": true, "primary": true,
	"references": true, "select": true, "table": true, "then": true,
	"to": true, "true": true, "union": true, "unique": true,
	"user": true, "when": true, "where": true,
}

// Validate checks db without a database connection: identifier rules,
// reserved words, reference targets and primary keys.
func Validate(db *schema.Database) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	for _, s := range db.Schemas() {
		result.checkIdentifier("schema_name", "", "", "schema", s)
		result.Info = append(result.Info, ValidationError{
			Type:     "schema_rebuilt",
			Message:  fmt.Sprintf("Schema '%s' will be dropped with CASCADE and recreated", s),
			Severity: "info",
		})
	}

	for _, table := range db.Tables() {
		validateTable(db, table, result)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateTable(db *schema.Database, table *schema.Table, result *ValidationResult) {
	result.checkIdentifier("table_name", table.Name(), "", "table", table.BaseName())

	if len(table.Columns()) == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:     "no_columns",
			Table:    table.Name(),
			Message:  fmt.Sprintf("Table '%s' has no columns", table.Name()),
			Severity: "warning",
		})
	}

	for _, col := range table.Columns() {
		result.checkIdentifier("column_name", table.Name(), col.Name(), "column", col.Name())
		if col.HasDefault() {
			if err := validateDefaultValue(col.Type(), col.Default()); err != nil {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:     "default_value",
					Table:    table.Name(),
					Column:   col.Name(),
					Message:  err.Error(),
					Severity: "warning",
				})
			}
		}
	}

	if !table.HasPrimaryKey() {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:     "no_primary_key",
			Table:    table.Name(),
			Message:  fmt.Sprintf("Table '%s' has no primary key defined", table.Name()),
			Severity: "warning",
		})
	}

	for _, fk := range table.ForeignKeys() {
		column := strings.Join(fk.ColumnNames(), ",")
		ref := fk.RefTable()
		if !db.Owns(ref) {
			result.Errors = append(result.Errors, ValidationError{
				Type:     "foreign_key_table_not_found",
				Table:    table.Name(),
				Column:   column,
				Message:  fmt.Sprintf("Foreign key references table '%s' which is not part of the schema", ref.Name()),
				Severity: "error",
			})
			continue
		}
		for _, refColumn := range fk.RefColumns() {
			if _, ok := ref.Column(refColumn); !ok {
				result.Errors = append(result.Errors, ValidationError{
					Type:     "foreign_key_column_not_found",
					Table:    table.Name(),
					Column:   column,
					Message:  fmt.Sprintf("Foreign key references non-existent column '%s' in table '%s'", refColumn, ref.Name()),
					Severity: "error",
				})
			}
		}
	}
}

func (r *ValidationResult) checkIdentifier(typ, table, column, kind, name string) {
	if err := validateIdentifier(kind, name); err != nil {
		r.Errors = append(r.Errors, ValidationError{
			Type:     typ,
			Table:    table,
			Column:   column,
			Message:  err.Error(),
			Severity: "error",
		})
		return
	}
	if reservedKeywords[strings.ToLower(name)] {
		r.Warnings = append(r.Warnings, ValidationError{
			Type:     "reserved_keyword",
			Table:    table,
			Column:   column,
			Message:  fmt.Sprintf("%s name '%s' is a reserved keyword", kind, name),
			Severity: "warning",
		})
	}
}

// validateIdentifier checks PostgreSQL unquoted identifier rules.
func validateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if len(name) > maxIdentifierLength {
		return fmt.Errorf("%s name '%s' is too long (max %d characters)", kind, name, maxIdentifierLength)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%s name '%s' must start with a letter or underscore and contain only letters, digits and underscores", kind, name)
	}
	return nil
}

// validateDefaultValue is a shallow plausibility check of a default
// expression against the column type. Function calls are always accepted.
func validateDefaultValue(typ schema.ColumnType, value string) error {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "(") {
		return nil
	}

	switch typ {
	case schema.Number, schema.AutoIncrement:
		if strings.Contains(value, ".") {
			return fmt.Errorf("integer type cannot have decimal default value '%s'", value)
		}
	case schema.String, schema.Guid:
		if !strings.HasPrefix(value, "'") {
			return fmt.Errorf("%s type should have quoted default value '%s'", typ, value)
		}
	case schema.Boolean:
		switch strings.ToLower(value) {
		case "true", "false":
		default:
			return fmt.Errorf("boolean type should have true/false default value, got '%s'", value)
		}
	}
	return nil
}
