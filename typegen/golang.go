package typegen

import (
	"context"
	"go/format"
	"go/token"
	"strings"

	"github.com/ridoystarlord/schemato/artifact"
	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/schema"
)

// MapGo maps a column type to its Go type. Optional columns become pointers.
func MapGo(t schema.ColumnType, required bool) (string, error) {
	var typ string
	switch t {
	case schema.String, schema.Guid:
		typ = "string"
	case schema.Number, schema.AutoIncrement:
		typ = "int"
	case schema.Decimal:
		typ = "float64"
	case schema.DateTime:
		typ = "time.Time"
	case schema.Boolean:
		typ = "bool"
	default:
		return "", errs.Newf(errs.KindUnmapped, "undefined column type %s", t)
	}
	if !required {
		typ = "*" + typ
	}
	return typ, nil
}

type field struct {
	Name     string
	Type     string
	Column   string
	Optional bool
}

type structData struct {
	Name      string
	TableName string
	Fields    []field
}

type fileData struct {
	Package string
	Imports []string
	Structs []string
}

// tableNameMethod is declared on every generated struct.
const tableNameMethod = "TableName"

// GenerateStruct renders the struct declaration for one table and reports
// whether it refers to package time. Columns whose field names are not
// exported identifiers, repeat another field, or clash with the TableName
// method are rejected with errs.KindValidation.
func GenerateStruct(r Renderer, table *schema.Table) (string, bool, error) {
	data := structData{Name: StructName(table.Name()), TableName: table.Name()}
	if !token.IsIdentifier(data.Name) || !token.IsExported(data.Name) {
		return "", false, errs.Newf(errs.KindValidation, "table %s: %q is not a valid Go type name", table.Name(), data.Name)
	}
	usesTime := false
	seen := map[string]string{tableNameMethod: "the TableName method"}
	for _, col := range table.Columns() {
		name := FieldName(col.Name())
		if !token.IsIdentifier(name) || !token.IsExported(name) {
			return "", false, errs.Newf(errs.KindValidation, "table %s column %s: %q is not a valid Go field name", table.Name(), col.Name(), name)
		}
		if other, dup := seen[name]; dup {
			return "", false, errs.Newf(errs.KindValidation, "table %s column %s: field %s collides with %s", table.Name(), col.Name(), name, other)
		}
		seen[name] = "column " + col.Name()
		typ, err := MapGo(col.Type(), col.IsRequired())
		if err != nil {
			return "", false, errs.Wrap(errs.KindUnmapped, "table "+table.Name()+" column "+col.Name(), err)
		}
		usesTime = usesTime || col.Type() == schema.DateTime
		data.Fields = append(data.Fields, field{
			Name:     name,
			Type:     typ,
			Column:   col.Name(),
			Optional: !col.IsRequired(),
		})
	}
	out, err := r.Render("go/struct", data)
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(out), usesTime, nil
}

// RenderStructs renders a gofmt-ed Go file declaring one struct per table.
func RenderStructs(r Renderer, pkg string, tables []*schema.Table) (string, error) {
	data := fileData{Package: pkg}
	usesTime := false
	owners := map[string]string{}
	for _, table := range tables {
		name := StructName(table.Name())
		if other, dup := owners[name]; dup {
			return "", errs.Newf(errs.KindValidation, "tables %s and %s both map to struct %s", other, table.Name(), name)
		}
		owners[name] = table.Name()

		decl, t, err := GenerateStruct(r, table)
		if err != nil {
			return "", err
		}
		usesTime = usesTime || t
		data.Structs = append(data.Structs, decl)
	}
	if usesTime {
		data.Imports = append(data.Imports, "time")
	}

	src, err := r.Render("go/file", data)
	if err != nil {
		return "", err
	}
	formatted, err := format.Source([]byte(src))
	if err != nil {
		return "", errs.Wrap(errs.KindValidation, "generated Go source does not parse", err)
	}
	return string(formatted), nil
}

// CreateStructs renders the structs of tables into package pkg and writes
// the file to outPath.
func CreateStructs(ctx context.Context, w artifact.Writer, r Renderer, outPath, pkg string, tables []*schema.Table) error {
	text, err := RenderStructs(r, pkg, tables)
	if err != nil {
		return err
	}
	return w.Write(ctx, outPath, []byte(text))
}
