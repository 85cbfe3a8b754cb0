// Package typegen renders client-side type declarations (TypeScript
// interfaces, Go structs) for the tables of a schema.
package typegen

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed templates
var embedded embed.FS

// Renderer renders the named template with data. Names are slash separated
// and carry no extension, e.g. "typescript/interface".
type Renderer interface {
	Render(name string, data any) (string, error)
}

// TemplateRenderer is a Renderer backed by text/template.
type TemplateRenderer struct {
	root *template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// NewRenderer parses every *.tmpl file below dir in fsys.
func NewRenderer(fsys fs.FS, dir string) (*TemplateRenderer, error) {
	root := template.New("").Funcs(funcs)
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".tmpl" {
			return nil
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, dir+"/"), ".tmpl")
		if _, err := root.New(name).Parse(string(src)); err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{root: root}, nil
}

// DefaultRenderer returns a renderer over the built-in templates.
func DefaultRenderer() *TemplateRenderer {
	r, err := NewRenderer(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("typegen: built-in templates: %v", err))
	}
	return r
}

func (r *TemplateRenderer) Render(name string, data any) (string, error) {
	tmpl := r.root.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}

// Overlay tries primary first and falls back to secondary for templates
// primary does not define, so a project can override single templates.
type Overlay struct {
	Primary, Secondary *TemplateRenderer
}

func (o Overlay) Render(name string, data any) (string, error) {
	if o.Primary != nil && o.Primary.root.Lookup(name) != nil {
		return o.Primary.Render(name, data)
	}
	return o.Secondary.Render(name, data)
}
