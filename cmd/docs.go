package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/schemato/docs"
)

var (
	docsFormat string
	docsOutput string
	docsFile   string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate an ER diagram from the schema",
	Long: `Generate an ER diagram of every table, column and foreign key in the
schema file.

Supported formats:
  - mermaid: Mermaid erDiagram inside a Markdown document
  - plantuml: PlantUML entity diagram
  - graphviz: Graphviz DOT digraph

Examples:
  schemato docs                            # erd.md
  schemato docs --format plantuml          # erd.puml
  schemato docs --format graphviz -o s3://docs/erd.dot
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := schemaPath(docsFile)

		db, err := loadDatabase(ctx, path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		if len(db.Tables()) == 0 {
			return fmt.Errorf("no tables found in %s", path)
		}

		format := docs.Format(docsFormat)
		text, err := docs.Render(format, db.Tables())
		if err != nil {
			return err
		}

		dest := docsOutput
		if dest == "" {
			dest = cfg.Output.Docs
		}
		if dest == "" {
			dest = format.DefaultOutput()
		}
		if err := writeArtifact(ctx, dest, []byte(text)); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated %s diagram: %s\n", format, dest)
		return nil
	},
}

func init() {
	docsCmd.Flags().StringVar(&docsFormat, "format", string(docs.FormatMermaid), "Diagram format (mermaid, plantuml, graphviz)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output path or s3://bucket/key")
	docsCmd.Flags().StringVarP(&docsFile, "file", "f", "", "Schema YAML file to load (default from config)")
}
