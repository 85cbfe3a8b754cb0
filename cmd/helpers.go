package cmd

import (
	"context"
	"os"

	"github.com/ridoystarlord/schemato/artifact"
	"github.com/ridoystarlord/schemato/generator"
	"github.com/ridoystarlord/schemato/loader"
	"github.com/ridoystarlord/schemato/logger"
	"github.com/ridoystarlord/schemato/typegen"
)

// schemaPath prefers the -f flag over the configured schema file.
func schemaPath(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.SchemaFile
}

func loadDatabase(ctx context.Context, path string) (*generator.PostgreSQLDatabase, error) {
	db, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).With().
		Str("file", path).
		Int("tables", len(db.Tables())).
		Logger().
		Debug("schema loaded")
	return generator.NewPostgreSQL(db), nil
}

// buildStatements loads the schema at path and emits its build script.
func buildStatements(ctx context.Context, path string) ([]string, error) {
	db, err := loadDatabase(ctx, path)
	if err != nil {
		return nil, err
	}
	return db.Create()
}

func writeArtifact(ctx context.Context, path string, data []byte) error {
	w, err := artifact.ForPath(path, cfg.Storage)
	if err != nil {
		return err
	}
	return w.Write(ctx, path, data)
}

// renderer layers the project's template directory, when configured and
// present, over the built-in templates.
func renderer(templatesDir string) (typegen.Renderer, error) {
	builtin := typegen.DefaultRenderer()
	if templatesDir == "" {
		return builtin, nil
	}
	if _, err := os.Stat(templatesDir); err != nil {
		return builtin, nil
	}
	custom, err := typegen.NewRenderer(os.DirFS(templatesDir), ".")
	if err != nil {
		return nil, err
	}
	return typegen.Overlay{Primary: custom, Secondary: builtin}, nil
}
