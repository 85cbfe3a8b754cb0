package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const starterSchema = `# Schema definition. Column types: primaryKey, reference, autoIncrement,
# string, number, decimal, guid, dateTime, boolean.
tables:
  - name: users
    columns:
      - name: id
        type: primaryKey
      - name: email
        type: string
        unique: true
      - name: name
        type: string
      - name: active
        type: boolean
        default: "true"
      - name: created_at
        type: dateTime
        default: now()

  - name: blog.posts
    columns:
      - name: id
        type: primaryKey
      - name: title
        type: string
      - name: views
        type: number
        default: "0"
        check: views >= 0
      - name: author_id
        type: reference
        references:
          table: users
          column: id
          onDelete: cascade
      - name: published_at
        type: dateTime
        required: false

  - name: blog.tags
    columns:
      - name: id
        type: primaryKey
      - name: post_id
        type: reference
        references:
          table: posts
          column: id
      - name: slug
        type: string
    unique:
      - [post_id, slug]

# references.column defaults to the name of the referencing column.
# Reference actions: cascade, setNull.
# Default and check values are copied into the SQL as written.
`

const starterConfig = `schema_file: schema.yaml

output:
  sql: schema.sql
  types: types.ts
  # docs: erd.md

types:
  lang: ts
  package: models
  # templates_dir: templates

database:
  driver: pgx
  # url is usually taken from DATABASE_URL
  max_conns: 4
  connect_timeout: 10s

# storage:
#   endpoint: localhost:9000
#   use_ssl: false

log:
  level: info
  format: console
`

var initDir string
var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new schemato project",
	Long: `Create an example schema.yaml and a schemato.yaml config file.

Existing files are left untouched unless --force is given.

Examples:
  schemato init
  schemato init --dir db
  schemato init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		files := []struct {
			name    string
			content string
		}{
			{"schema.yaml", starterSchema},
			{"schemato.yaml", starterConfig},
		}

		if err := os.MkdirAll(initDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", initDir, err)
		}
		for _, f := range files {
			path := filepath.Join(initDir, f.name)
			if _, err := os.Stat(path); err == nil && !initForce {
				fmt.Fprintf(out, "⚠️  %s already exists, skipping\n", path)
				continue
			}
			if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
				return fmt.Errorf("error creating %s: %w", path, err)
			}
			fmt.Fprintf(out, "✅ Created %s\n", path)
		}

		fmt.Fprintln(out, "📝 Edit schema.yaml to define your database schema")
		fmt.Fprintln(out, "🚀 Run 'schemato generate' to create the build script")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Directory to create the files in")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
}
