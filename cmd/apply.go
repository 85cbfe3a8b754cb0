package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/schemato/database"
	"github.com/ridoystarlord/schemato/generator"
	"github.com/ridoystarlord/schemato/runner"
)

var applySchemaFile string
var dryRunApply bool
var confirmApply bool

func init() {
	applyCmd.Flags().StringVarP(&applySchemaFile, "file", "f", "", "Schema YAML file to load (default from config)")
	applyCmd.Flags().BoolVar(&dryRunApply, "dry-run", false, "Print the script instead of running it")
	applyCmd.Flags().BoolVarP(&confirmApply, "yes", "y", false, "Confirm dropping and recreating every declared schema and table")
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Run the build script against the configured database",
	Long: `Generate the build script and run it against database.url (or
DATABASE_URL) in a single round trip.

The script drops every declared schema and table before recreating them, so
existing data in them is lost. Pass --yes to confirm.

Examples:
  schemato apply --dry-run
  schemato apply --yes
  DATABASE_URL=postgres://... schemato apply -y
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := schemaPath(applySchemaFile)

		stmts, err := buildStatements(ctx, path)
		if err != nil {
			return fmt.Errorf("generating from %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		if dryRunApply {
			fmt.Fprint(out, generator.Body(stmts))
			return nil
		}
		if !confirmApply {
			return errors.New("apply drops and recreates every declared table; rerun with --yes")
		}

		exec, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "🚀 Applying %d statements from %s\n", len(stmts), path)
		if err := runner.Apply(ctx, exec, stmts); err != nil {
			return err
		}
		fmt.Fprintln(out, "✅ Schema applied")
		return nil
	},
}
