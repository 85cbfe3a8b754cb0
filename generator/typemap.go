package generator

import (
	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/schema"
)

// TypeMapper turns the generic column types and foreign key actions into
// dialect tokens. Implementations must cover every enum value and return an
// errs.KindUnmapped error for anything else, so that a new enum value
// without a mapping fails generation instead of emitting blank SQL.
type TypeMapper interface {
	MapColumnType(t schema.ColumnType) (string, error)
	MapForeignKeyAction(a schema.ForeignKeyAction) (string, error)
}

// PostgresTypeMapper maps to PostgreSQL types and referential actions.
type PostgresTypeMapper struct{}

func (PostgresTypeMapper) MapColumnType(t schema.ColumnType) (string, error) {
	switch t {
	case schema.String:
		return "varchar", nil
	case schema.Number:
		return "integer", nil
	case schema.Guid:
		return "uuid", nil
	case schema.Decimal:
		return "decimal", nil
	case schema.DateTime:
		return "timestamp", nil
	case schema.Boolean:
		return "boolean", nil
	case schema.AutoIncrement:
		return "serial", nil
	default:
		return "", errs.Newf(errs.KindUnmapped, "undefined column type %s", t)
	}
}

func (PostgresTypeMapper) MapForeignKeyAction(a schema.ForeignKeyAction) (string, error) {
	switch a {
	case schema.Cascade:
		return "CASCADE", nil
	case schema.SetNull:
		return "SET NULL", nil
	default:
		return "", errs.Newf(errs.KindUnmapped, "undefined reference action type %s", a)
	}
}
