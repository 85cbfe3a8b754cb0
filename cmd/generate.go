package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/schemato/generator"
)

var schemaFile string
var sqlOutput string
var dryRunGenerate bool
var noHeader bool

func init() {
	generateCmd.Flags().StringVarP(&schemaFile, "file", "f", "", "Schema YAML file to load (default from config)")
	generateCmd.Flags().StringVarP(&sqlOutput, "output", "o", "", "Output path or s3://bucket/key (default from config)")
	generateCmd.Flags().BoolVar(&dryRunGenerate, "dry-run", false, "Print the SQL instead of writing it")
	generateCmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the generated-by comment header")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the PostgreSQL build script from the schema",
	Long: `Generate a script that drops and recreates every schema, table and
constraint declared in the schema file.

Examples:
  schemato generate                        # schema.yaml -> schema.sql
  schemato generate -f db.yaml -o build.sql
  schemato generate -o s3://schemas/app.sql
  schemato generate --dry-run              # Print to stdout
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := schemaPath(schemaFile)

		stmts, err := buildStatements(ctx, path)
		if err != nil {
			return fmt.Errorf("generating from %s: %w", path, err)
		}

		script := generator.Script(stmts, generator.ScriptOptions{
			Header: !noHeader,
			Source: path,
		})

		out := cmd.OutOrStdout()
		if dryRunGenerate {
			fmt.Fprint(out, script)
			return nil
		}

		dest := sqlOutput
		if dest == "" {
			dest = cfg.Output.SQL
		}
		if err := writeArtifact(ctx, dest, []byte(script)); err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ Generated %d statements: %s\n", len(stmts), dest)
		fmt.Fprintf(out, "🔑 Fingerprint: %s\n", generator.Fingerprint(stmts))
		return nil
	},
}
