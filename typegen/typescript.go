package typegen

import (
	"context"
	"strings"

	"github.com/ridoystarlord/schemato/artifact"
	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/schema"
)

// MapTypeScript maps a column type to its TypeScript type.
func MapTypeScript(t schema.ColumnType) (string, error) {
	switch t {
	case schema.String, schema.Guid:
		return "string", nil
	case schema.Number, schema.Decimal, schema.AutoIncrement:
		return "number", nil
	case schema.DateTime:
		return "Date", nil
	case schema.Boolean:
		return "boolean", nil
	default:
		return "", errs.Newf(errs.KindUnmapped, "undefined column type %s", t)
	}
}

type interfaceData struct {
	Name      string
	TableName string
	Columns   []*schema.Column
	MapType   func(schema.ColumnType) (string, error)
}

// GenerateInterface renders the interface declaration for one table.
func GenerateInterface(r Renderer, tableName string, columns []*schema.Column) (string, error) {
	for _, col := range columns {
		if _, err := MapTypeScript(col.Type()); err != nil {
			return "", errs.Wrap(errs.KindUnmapped, "table "+tableName+" column "+col.Name(), err)
		}
	}
	return r.Render("typescript/interface", interfaceData{
		Name:      InterfaceName(tableName),
		TableName: tableName,
		Columns:   columns,
		MapType:   MapTypeScript,
	})
}

// RenderTypes renders one interface per table, separated by blank lines.
func RenderTypes(r Renderer, tables []*schema.Table) (string, error) {
	out := make([]string, 0, len(tables))
	for _, table := range tables {
		decl, err := GenerateInterface(r, table.Name(), table.Columns())
		if err != nil {
			return "", err
		}
		out = append(out, strings.TrimSpace(decl))
	}
	return Normalize(strings.Join(out, "\n\n")) + "\n", nil
}

// CreateTypes renders the interfaces of tables and writes them to outPath.
func CreateTypes(ctx context.Context, w artifact.Writer, r Renderer, outPath string, tables []*schema.Table) error {
	text, err := RenderTypes(r, tables)
	if err != nil {
		return err
	}
	return w.Write(ctx, outPath, []byte(text))
}

// Normalize replaces tabs with four spaces and strips trailing whitespace
// from every line.
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", "    "), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \r")
	}
	return strings.Join(lines, "\n")
}
