package schema

import "fmt"

// ColumnType is the generic, dialect-independent type of a column.
type ColumnType int

const (
	AutoIncrement ColumnType = iota
	Number
	String
	Boolean
	DateTime
	Guid
	Decimal
)

var columnTypeNames = map[ColumnType]string{
	AutoIncrement: "autoIncrement",
	Number:        "number",
	String:        "string",
	Boolean:       "boolean",
	DateTime:      "dateTime",
	Guid:          "guid",
	Decimal:       "decimal",
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// ParseColumnType resolves the names used in schema files ("string", "dateTime", ...).
func ParseColumnType(name string) (ColumnType, bool) {
	for t, n := range columnTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// ForeignKeyAction is the referential action applied on update or delete.
type ForeignKeyAction int

const (
	Cascade ForeignKeyAction = iota
	SetNull
)

func (a ForeignKeyAction) String() string {
	switch a {
	case Cascade:
		return "cascade"
	case SetNull:
		return "setNull"
	default:
		return fmt.Sprintf("ForeignKeyAction(%d)", int(a))
	}
}

// ParseForeignKeyAction resolves "cascade" and "setNull".
func ParseForeignKeyAction(name string) (ForeignKeyAction, bool) {
	switch name {
	case "cascade":
		return Cascade, true
	case "setNull":
		return SetNull, true
	default:
		return 0, false
	}
}

// ConstraintType distinguishes the constraints stored on a table.
type ConstraintType int

const (
	PrimaryKey ConstraintType = iota
	ForeignKey
	Unique
)

func (t ConstraintType) String() string {
	switch t {
	case PrimaryKey:
		return "primaryKey"
	case ForeignKey:
		return "foreignKey"
	case Unique:
		return "unique"
	default:
		return fmt.Sprintf("ConstraintType(%d)", int(t))
	}
}

// ColumnOptions configures a column at construction time. Required is a
// pointer so that "not set" can default to true; use Bool to fill it in.
type ColumnOptions struct {
	Unique   bool
	Required *bool
	Default  string // raw SQL expression
	Check    string // raw SQL boolean expression
}

// Bool returns a pointer to v, for ColumnOptions.Required.
func Bool(v bool) *bool {
	return &v
}
