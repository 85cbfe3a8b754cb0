package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/schemato/artifact"
	"github.com/ridoystarlord/schemato/config"
	"github.com/ridoystarlord/schemato/typegen"
)

var typesSchemaFile string
var typesOutput string
var typesLang string
var typesPackage string

func init() {
	typesCmd.Flags().StringVarP(&typesSchemaFile, "file", "f", "", "Schema YAML file to load (default from config)")
	typesCmd.Flags().StringVarP(&typesOutput, "output", "o", "", "Output path or s3://bucket/key (default from config)")
	typesCmd.Flags().StringVarP(&typesLang, "lang", "l", "", "Target language: ts or go (default from config)")
	typesCmd.Flags().StringVarP(&typesPackage, "package", "p", "", "Package name for Go output (default from config)")
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Generate TypeScript interfaces or Go structs for every table",
	Long: `Generate one type declaration per table. TypeScript output uses
interfaces named after the qualified table name (auth.users -> IAuthUsers);
Go output uses structs with db and json tags.

Templates can be overridden per project with types.templates_dir in the config,
e.g. <dir>/typescript/interface.tmpl.

Examples:
  schemato types                           # types.ts
  schemato types --lang go -o models/models.go -p models
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := schemaPath(typesSchemaFile)

		db, err := loadDatabase(ctx, path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		r, err := renderer(cfg.Types.TemplatesDir)
		if err != nil {
			return err
		}

		lang := typesLang
		if lang == "" {
			lang = cfg.Types.Lang
		}
		dest := typesOutput
		if dest == "" {
			dest = cfg.Output.Types
			if lang == "go" && dest == config.Default().Output.Types {
				dest = "models.go"
			}
		}
		w, err := artifact.ForPath(dest, cfg.Storage)
		if err != nil {
			return err
		}

		switch lang {
		case "ts", "typescript":
			err = typegen.CreateTypes(ctx, w, r, dest, db.Tables())
		case "go":
			pkg := typesPackage
			if pkg == "" {
				pkg = cfg.Types.Package
			}
			err = typegen.CreateStructs(ctx, w, r, dest, pkg, db.Tables())
		default:
			return fmt.Errorf("unsupported language %q (want ts or go)", lang)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Generated %s types for %d tables: %s\n", lang, len(db.Tables()), dest)
		return nil
	},
}
