package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/schemato/loader"
	"github.com/ridoystarlord/schemato/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema file against PostgreSQL rules",
	Long: `Validate your schema file without touching a database.

This command checks:
- Table and column naming (PostgreSQL identifier rules, reserved keywords)
- Default values against the column type
- Foreign key references (valid table/column references)
- Tables without a primary key

Examples:
  schemato validate                        # Validate schema.yaml
  schemato validate -f custom.yaml         # Validate a custom schema file
  schemato validate --format json          # Output results as JSON
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := schemaPath(validateSchemaFile)
		db, err := loader.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}

		result := validator.Validate(db)

		out := cmd.OutOrStdout()
		switch validateFormat {
		case "json":
			err = outputJSON(out, result)
		case "text":
			outputText(out, result)
		default:
			return fmt.Errorf("unsupported format %q (want text or json)", validateFormat)
		}
		if err != nil {
			return err
		}
		if !result.Valid {
			return errors.New("schema validation failed")
		}
		return nil
	},
}

var (
	validateSchemaFile string
	validateFormat     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "file", "f", "", "Schema file to validate (default from config)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func outputJSON(w io.Writer, result *validator.ValidationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(w io.Writer, result *validator.ValidationResult) {
	if result.Valid {
		color.New(color.FgGreen).Fprintln(w, "✅ Schema validation passed!")
	} else {
		color.New(color.FgRed).Fprintln(w, "❌ Schema validation failed!")
	}

	printFindings(w, "🔴 Errors", result.Errors)
	printFindings(w, "🟡 Warnings", result.Warnings)
	printFindings(w, "🔵 Info", result.Info)

	fmt.Fprintf(w, "\n📊 Summary:\n")
	fmt.Fprintf(w, "  • Errors: %d\n", len(result.Errors))
	fmt.Fprintf(w, "  • Warnings: %d\n", len(result.Warnings))
	fmt.Fprintf(w, "  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Fprintf(w, "\n🎉 Your schema is valid and ready for generation!\n")
	} else {
		fmt.Fprintf(w, "\n💡 Fix the errors above before generating.\n")
	}
}

func printFindings(w io.Writer, title string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(findings))
	for i, f := range findings {
		fmt.Fprintf(w, "  %d. ", i+1)
		if f.Table != "" {
			fmt.Fprintf(w, "[%s]", f.Table)
		}
		if f.Column != "" {
			fmt.Fprintf(w, ".%s", f.Column)
		}
		fmt.Fprintf(w, ": %s\n", f.Message)
	}
}
