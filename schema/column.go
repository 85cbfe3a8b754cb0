package schema

import "strings"

// Column is a single table column. Its type and options are fixed once it
// has been constructed.
type Column struct {
	name     string
	typ      ColumnType
	required bool
	unique   bool
	def      string
	check    string
}

// NewColumn builds a column, normalizing unset options: required defaults to
// true, unique to false, and blank default/check expressions mean "none".
// Default and check expressions are stored trimmed.
// Only the first ColumnOptions value is used.
func NewColumn(name string, typ ColumnType, opts ...ColumnOptions) *Column {
	var o ColumnOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	required := true
	if o.Required != nil {
		required = *o.Required
	}
	return &Column{
		name:     name,
		typ:      typ,
		required: required,
		unique:   o.Unique,
		def:      strings.TrimSpace(o.Default),
		check:    strings.TrimSpace(o.Check),
	}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Type() ColumnType { return c.typ }
func (c *Column) IsRequired() bool { return c.required }
func (c *Column) IsUnique() bool { return c.unique }
func (c *Column) Default() string { return c.def }
func (c *Column) Check() string { return c.check }
func (c *Column) HasDefault() bool { return c.def != "" }
func (c *Column) HasCheck() bool { return c.check != "" }
