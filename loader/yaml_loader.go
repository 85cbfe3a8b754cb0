// Package loader reads schema definition files into a schema.Database.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/schema"
)

// File is the top level of a schema file.
type File struct {
	Tables []TableDef `yaml:"tables"`
}

// TableDef declares one table. Name may carry the schema as "schema.name"
// instead of setting Schema.
type TableDef struct {
	Name    string      `yaml:"name"`
	Schema  string      `yaml:"schema,omitempty"`
	Columns []ColumnDef `yaml:"columns"`
	Unique  [][]string  `yaml:"unique,omitempty"`
}

// ColumnDef declares one column. Type is one of primaryKey, reference,
// autoIncrement, string, number, decimal, guid, dateTime or boolean.
type ColumnDef struct {
	Name       string        `yaml:"name"`
	Type       string        `yaml:"type"`
	Unique     bool          `yaml:"unique,omitempty"`
	Required   *bool         `yaml:"required,omitempty"`
	Default    string        `yaml:"default,omitempty"`
	Check      string        `yaml:"check,omitempty"`
	References *ReferenceDef `yaml:"references,omitempty"`
}

// ReferenceDef is the target of a reference column. Table is resolved
// as written first, then inside the referencing table's schema.
type ReferenceDef struct {
	Table    string `yaml:"table"`
	Column   string `yaml:"column,omitempty"`
	OnUpdate string `yaml:"onUpdate,omitempty"`
	OnDelete string `yaml:"onDelete,omitempty"`
}

const (
	typePrimaryKey = "primaryKey"
	typeReference  = "reference"
)

// LoadFile reads and builds the schema file at filename.
func LoadFile(filename string) (*schema.Database, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.KindNotFound, "schema file "+filename+" not found", err)
		}
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a schema file. Unknown keys are rejected.
func Parse(data []byte) (*schema.Database, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.KindValidation, "unmarshalling YAML", err)
	}
	return Build(&f)
}

// Build turns a decoded file into a database. All tables are added before
// any column so that references may point at tables declared later.
func Build(f *File) (*schema.Database, error) {
	db := schema.NewDatabase()

	tables := make([]*schema.Table, len(f.Tables))
	for i, def := range f.Tables {
		name, schemaName, err := splitName(def)
		if err != nil {
			return nil, err
		}
		table, err := db.AddTable(name, schemaName)
		if err != nil {
			return nil, err
		}
		tables[i] = table
	}

	for i, def := range f.Tables {
		table := tables[i]
		for _, col := range def.Columns {
			if err := addColumn(db, table, col); err != nil {
				return nil, fmt.Errorf("table %s column %s: %w", table.Name(), col.Name, err)
			}
		}
		for _, cols := range def.Unique {
			if err := table.UniqueConstraint(cols...); err != nil {
				return nil, err
			}
		}
	}

	return db, nil
}

func splitName(def TableDef) (name, schemaName string, err error) {
	before, after, dotted := strings.Cut(def.Name, ".")
	if !dotted {
		return def.Name, def.Schema, nil
	}
	if def.Schema != "" && def.Schema != before {
		return "", "", errs.Newf(errs.KindValidation, "table %s: name says schema %s but schema is %s", def.Name, before, def.Schema)
	}
	return after, before, nil
}

func addColumn(db *schema.Database, table *schema.Table, def ColumnDef) error {
	if def.References != nil && def.Type != typeReference {
		return errs.Newf(errs.KindValidation, "references is only allowed on %s columns", typeReference)
	}

	opts := schema.ColumnOptions{
		Unique:   def.Unique,
		Required: def.Required,
		Default:  def.Default,
		Check:    def.Check,
	}

	switch def.Type {
	case typePrimaryKey:
		if def.Unique || def.Required != nil || def.Default != "" || def.Check != "" {
			return errs.Newf(errs.KindValidation, "%s columns take no unique, required, default or check options", typePrimaryKey)
		}
		return table.PrimaryKeyColumn(def.Name)
	case typeReference:
		return addReference(db, table, def, opts)
	}

	typ, ok := schema.ParseColumnType(def.Type)
	if !ok {
		return errs.Newf(errs.KindValidation, "unknown column type %q", def.Type)
	}
	return table.AddColumn(def.Name, typ, opts)
}

func addReference(db *schema.Database, table *schema.Table, def ColumnDef, opts schema.ColumnOptions) error {
	ref := def.References
	if ref == nil || ref.Table == "" {
		return errs.New(errs.KindValidation, "reference column needs references.table")
	}

	target, ok := db.Table(ref.Table)
	if !ok && !strings.Contains(ref.Table, ".") {
		target, ok = db.Table(schema.QualifiedName(table.Schema(), ref.Table))
	}
	if !ok {
		return errs.Newf(errs.KindNotFound, "referenced table %s is not declared", ref.Table)
	}

	refOpts := []schema.ReferenceOption{schema.WithColumnOptions(opts)}
	if ref.Column != "" {
		refOpts = append(refOpts, schema.RefColumn(ref.Column))
	}
	for _, a := range []struct {
		name string
		set  func(schema.ForeignKeyAction) schema.ReferenceOption
	}{
		{ref.OnUpdate, schema.OnUpdate},
		{ref.OnDelete, schema.OnDelete},
	} {
		if a.name == "" {
			continue
		}
		action, ok := schema.ParseForeignKeyAction(a.name)
		if !ok {
			return errs.Newf(errs.KindValidation, "unknown reference action %q", a.name)
		}
		refOpts = append(refOpts, a.set(action))
	}

	return table.ReferenceColumn(def.Name, target, refOpts...)
}
