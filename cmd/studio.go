package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ridoystarlord/schemato/docs"
	"github.com/ridoystarlord/schemato/generator"
	"github.com/ridoystarlord/schemato/loader"
	"github.com/ridoystarlord/schemato/logger"
	"github.com/ridoystarlord/schemato/schema"
	"github.com/ridoystarlord/schemato/typegen"
	"github.com/ridoystarlord/schemato/validator"
)

var studioSchemaFile string

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Browse the schema and its generated artifacts in a browser",
	Long: `Launch schemato studio, a local web page that shows the tables of the
schema file together with the SQL, types and diagrams generated from it.

The schema file is re-read on every request, so edits show up on reload.

Routes:
  GET /                   table overview
  GET /sql                build script
  GET /types?lang=ts|go   type declarations
  GET /docs?format=...    ER diagram source
  GET /api/tables         tables as JSON
  GET /api/validate       validation result as JSON

The interface will be available at http://localhost:8080 by default.
SCHEMATO_STUDIO_PORT and SCHEMATO_STUDIO_HOST override the defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := viper.GetString("studio.port")
		if port == "" {
			port = "8080"
		}
		addr := net.JoinHostPort(viper.GetString("studio.host"), port)

		fmt.Fprintf(cmd.OutOrStdout(), "🚀 Starting schemato studio on http://%s\n", addr)
		fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop the server")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serveStudio(ctx, addr, newStudioRouter(schemaPath(studioSchemaFile), cfg.Types.TemplatesDir))
	},
}

func init() {
	studioCmd.Flags().StringVarP(&studioSchemaFile, "file", "f", "", "Schema YAML file to serve (default from config)")
	studioCmd.Flags().String("port", "8080", "Port to run the web server on")
	studioCmd.Flags().String("host", "localhost", "Interface to listen on")
	viper.BindPFlag("studio.port", studioCmd.Flags().Lookup("port"))
	viper.BindPFlag("studio.host", studioCmd.Flags().Lookup("host"))
	viper.BindEnv("studio.port", "SCHEMATO_STUDIO_PORT")
	viper.BindEnv("studio.host", "SCHEMATO_STUDIO_HOST")
}

func serveStudio(ctx context.Context, addr string, handler http.Handler) error {
	log := logger.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down studio")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type studioServer struct {
	schemaFile   string
	templatesDir string
	index        *template.Template
}

func newStudioRouter(schemaFile, templatesDir string) http.Handler {
	s := &studioServer{
		schemaFile:   schemaFile,
		templatesDir: templatesDir,
		index:        template.Must(template.New("index").Parse(studioIndexHTML)),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/sql", s.handleSQL)
	r.Get("/types", s.handleTypes)
	r.Get("/docs", s.handleDocs)
	r.Route("/api", func(r chi.Router) {
		r.Get("/tables", s.handleTables)
		r.Get("/validate", s.handleValidate)
	})
	return r
}

func (s *studioServer) load(w http.ResponseWriter) (*schema.Database, bool) {
	db, err := loader.LoadFile(s.schemaFile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}
	return db, true
}

func (s *studioServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	db, ok := s.load(w)
	if !ok {
		return
	}
	views, err := describeTables(db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		SchemaFile string
		Tables     []tableView
	}{s.schemaFile, views}
	if err := s.index.Execute(w, data); err != nil {
		logger.FromContext(r.Context()).ErrorWith("template error", err, nil)
	}
}

func (s *studioServer) handleSQL(w http.ResponseWriter, r *http.Request) {
	db, ok := s.load(w)
	if !ok {
		return
	}
	stmts, err := generator.NewPostgreSQL(db).Create()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeText(w, generator.Script(stmts, generator.ScriptOptions{Header: true, Source: s.schemaFile}))
}

func (s *studioServer) handleTypes(w http.ResponseWriter, r *http.Request) {
	db, ok := s.load(w)
	if !ok {
		return
	}
	rend, err := renderer(s.templatesDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var text string
	switch lang := r.URL.Query().Get("lang"); lang {
	case "", "ts", "typescript":
		text, err = typegen.RenderTypes(rend, db.Tables())
	case "go":
		pkg := r.URL.Query().Get("package")
		if pkg == "" {
			pkg = "models"
		}
		text, err = typegen.RenderStructs(rend, pkg, db.Tables())
	default:
		http.Error(w, fmt.Sprintf("unsupported language %q", lang), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeText(w, text)
}

func (s *studioServer) handleDocs(w http.ResponseWriter, r *http.Request) {
	db, ok := s.load(w)
	if !ok {
		return
	}
	format := docs.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = docs.FormatMermaid
	}
	text, err := docs.Render(format, db.Tables())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeText(w, text)
}

func (s *studioServer) handleTables(w http.ResponseWriter, r *http.Request) {
	db, ok := s.load(w)
	if !ok {
		return
	}
	views, err := describeTables(db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *studioServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	db, ok := s.load(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validator.Validate(db))
}

type columnView struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	SQLType  string `json:"sql_type"`
	Required bool   `json:"required"`
	Unique   bool   `json:"unique,omitempty"`
	Default  string `json:"default,omitempty"`
	Check    string `json:"check,omitempty"`
}

type foreignKeyView struct {
	Columns    []string `json:"columns"`
	RefTable   string   `json:"ref_table"`
	RefColumns []string `json:"ref_columns"`
	OnUpdate   string   `json:"on_update"`
	OnDelete   string   `json:"on_delete"`
}

type tableView struct {
	Name        string           `json:"name"`
	Schema      string           `json:"schema"`
	Interface   string           `json:"interface"`
	Columns     []columnView     `json:"columns"`
	PrimaryKey  []string         `json:"primary_key,omitempty"`
	Unique      [][]string       `json:"unique,omitempty"`
	ForeignKeys []foreignKeyView `json:"foreign_keys,omitempty"`
}

func describeTables(db *schema.Database) ([]tableView, error) {
	var mapper generator.PostgresTypeMapper
	views := make([]tableView, 0, len(db.Tables()))
	for _, t := range db.Tables() {
		view := tableView{
			Name:      t.Name(),
			Schema:    t.Schema(),
			Interface: typegen.InterfaceName(t.Name()),
		}
		for _, c := range t.Columns() {
			sqlType, err := mapper.MapColumnType(c.Type())
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name(), err)
			}
			view.Columns = append(view.Columns, columnView{
				Name:     c.Name(),
				Type:     c.Type().String(),
				SQLType:  sqlType,
				Required: c.IsRequired(),
				Unique:   c.IsUnique(),
				Default:  c.Default(),
				Check:    c.Check(),
			})
		}
		if pk := t.PrimaryKey(); pk != nil {
			view.PrimaryKey = pk.ColumnNames()
		}
		for _, u := range t.UniqueConstraints() {
			view.Unique = append(view.Unique, u.ColumnNames())
		}
		for _, fk := range t.ForeignKeys() {
			view.ForeignKeys = append(view.ForeignKeys, foreignKeyView{
				Columns:    fk.ColumnNames(),
				RefTable:   fk.RefTable().Name(),
				RefColumns: fk.RefColumns(),
				OnUpdate:   fk.OnUpdate().String(),
				OnDelete:   fk.OnDelete().String(),
			})
		}
		views = append(views, view)
	}
	return views, nil
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, text)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

const studioIndexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>schemato studio</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
th { background: #f4f4f4; }
code { color: #a33; }
nav a { margin-right: 1em; }
</style>
</head>
<body>
<h1>{{.SchemaFile}}</h1>
<nav>
<a href="/sql">SQL</a>
<a href="/types?lang=ts">TypeScript</a>
<a href="/types?lang=go">Go</a>
<a href="/docs?format=mermaid">Mermaid</a>
<a href="/docs?format=plantuml">PlantUML</a>
<a href="/docs?format=graphviz">Graphviz</a>
<a href="/api/validate">Validate</a>
</nav>
{{range .Tables}}
<h2 id="{{.Name}}">{{.Name}} <small><code>{{.Interface}}</code></small></h2>
<table>
<tr><th>Column</th><th>Type</th><th>SQL</th><th>Required</th><th>Default</th><th>Check</th></tr>
{{range .Columns}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.SQLType}}</td><td>{{if .Required}}yes{{end}}</td><td>{{.Default}}</td><td>{{.Check}}</td></tr>
{{end}}</table>
{{if .PrimaryKey}}<p>Primary key: {{range .PrimaryKey}}<code>{{.}}</code> {{end}}</p>{{end}}
{{range .ForeignKeys}}<p>{{range .Columns}}<code>{{.}}</code> {{end}}&rarr; <a href="#{{.RefTable}}">{{.RefTable}}</a> (on update {{.OnUpdate}}, on delete {{.OnDelete}})</p>
{{end}}{{else}}
<p>No tables declared.</p>
{{end}}
</body>
</html>
`
