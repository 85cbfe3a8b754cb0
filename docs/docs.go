// Package docs renders ER diagrams of a schema in Mermaid, PlantUML or
// Graphviz notation.
package docs

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/generator"
	"github.com/ridoystarlord/schemato/schema"
)

// Format names a diagram notation.
type Format string

const (
	FormatMermaid  Format = "mermaid"
	FormatPlantUML Format = "plantuml"
	FormatGraphviz Format = "graphviz"
)

// Formats lists the supported notations.
var Formats = []Format{FormatMermaid, FormatPlantUML, FormatGraphviz}

// DefaultOutput is the file name used when none is given.
func (f Format) DefaultOutput() string {
	switch f {
	case FormatPlantUML:
		return "erd.puml"
	case FormatGraphviz:
		return "erd.dot"
	default:
		return "erd.md"
	}
}

// Render draws tables in the given notation. Column types are shown as the
// PostgreSQL types the generator would emit.
func Render(f Format, tables []*schema.Table) (string, error) {
	switch f {
	case FormatMermaid:
		return Mermaid(tables)
	case FormatPlantUML:
		return PlantUML(tables)
	case FormatGraphviz:
		return Graphviz(tables)
	default:
		return "", errs.Newf(errs.KindValidation, "unsupported format %q", f)
	}
}

type columnInfo struct {
	name     string
	typ      string
	primary  bool
	unique   bool
	required bool
	def      string
}

type edge struct {
	from, to, label string
}

func describe(table *schema.Table) ([]columnInfo, error) {
	mapper := generator.PostgresTypeMapper{}
	pk := map[string]bool{}
	if p := table.PrimaryKey(); p != nil {
		for _, name := range p.ColumnNames() {
			pk[name] = true
		}
	}

	var cols []columnInfo
	for _, col := range table.Columns() {
		typ, err := mapper.MapColumnType(col.Type())
		if err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", table.Name(), col.Name(), err)
		}
		cols = append(cols, columnInfo{
			name:     col.Name(),
			typ:      strings.ToUpper(typ),
			primary:  pk[col.Name()],
			unique:   col.IsUnique(),
			required: col.IsRequired(),
			def:      col.Default(),
		})
	}
	return cols, nil
}

func edges(tables []*schema.Table) []edge {
	var out []edge
	for _, table := range tables {
		for _, fk := range table.ForeignKeys() {
			out = append(out, edge{
				from:  fk.RefTable().Name(),
				to:    table.Name(),
				label: strings.Join(fk.ColumnNames(), ","),
			})
		}
	}
	return out
}

// Mermaid entity names cannot contain dots.
func mermaidName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// Mermaid renders a Markdown document holding a Mermaid erDiagram.
func Mermaid(tables []*schema.Table) (string, error) {
	var content strings.Builder

	content.WriteString("# Database Schema ERD\n\n")
	content.WriteString("```mermaid\nerDiagram\n")

	for _, table := range tables {
		cols, err := describe(table)
		if err != nil {
			return "", err
		}
		content.WriteString(fmt.Sprintf("    %s {\n", mermaidName(table.Name())))
		for _, col := range cols {
			line := fmt.Sprintf("        %s %s", col.typ, col.name)
			switch {
			case col.primary:
				line += " PK"
			case col.unique:
				line += " UK"
			}
			if col.def != "" {
				line += fmt.Sprintf(" \"default %s\"", strings.ReplaceAll(col.def, "\"", "'"))
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("    }\n")
	}

	for _, e := range edges(tables) {
		content.WriteString(fmt.Sprintf("    %s ||--o{ %s : %s\n", mermaidName(e.from), mermaidName(e.to), e.label))
	}

	content.WriteString("```\n")
	return content.String(), nil
}

// PlantUML renders a PlantUML entity diagram.
func PlantUML(tables []*schema.Table) (string, error) {
	var content strings.Builder

	content.WriteString("@startuml\n")
	content.WriteString("!theme plain\n")
	content.WriteString("skinparam linetype ortho\n\n")

	for _, table := range tables {
		cols, err := describe(table)
		if err != nil {
			return "", err
		}
		content.WriteString(fmt.Sprintf("entity \"%s\" {\n", table.Name()))
		for _, col := range cols {
			line := fmt.Sprintf("  %s : %s", col.name, col.typ)
			if col.primary {
				line += " <<PK>>"
			}
			if col.unique {
				line += " <<UQ>>"
			}
			if col.required {
				line += " <<NN>>"
			}
			if col.def != "" {
				line += fmt.Sprintf(" <<DEFAULT: %s>>", col.def)
			}
			content.WriteString(line + "\n")
		}
		content.WriteString("}\n\n")
	}

	for _, e := range edges(tables) {
		content.WriteString(fmt.Sprintf("\"%s\" ||--o{ \"%s\" : \"%s\"\n", e.from, e.to, e.label))
	}

	content.WriteString("@enduml\n")
	return content.String(), nil
}

// Graphviz renders a DOT digraph with one record node per table.
func Graphviz(tables []*schema.Table) (string, error) {
	var content strings.Builder

	content.WriteString("digraph ERD {\n")
	content.WriteString("  rankdir=LR;\n")
	content.WriteString("  node [shape=record];\n\n")

	for _, table := range tables {
		cols, err := describe(table)
		if err != nil {
			return "", err
		}
		var lines []string
		for _, col := range cols {
			line := fmt.Sprintf("%s: %s", col.name, col.typ)
			if col.primary {
				line += " (PK)"
			}
			if col.unique {
				line += " (UQ)"
			}
			lines = append(lines, line)
		}
		content.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s|%s\\l\"];\n", table.Name(), table.Name(), strings.Join(lines, "\\l")))
	}

	for _, e := range edges(tables) {
		content.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n", e.from, e.to, e.label))
	}

	content.WriteString("}\n")
	return content.String(), nil
}
