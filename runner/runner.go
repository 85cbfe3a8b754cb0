// Package runner hands a generated build script to a database.
package runner

import (
	"context"
	"time"

	"github.com/ridoystarlord/schemato/database"
	"github.com/ridoystarlord/schemato/errs"
	"github.com/ridoystarlord/schemato/generator"
	"github.com/ridoystarlord/schemato/logger"
)

// Apply runs stmts as one script with a single Exec call and closes exec
// afterwards, whether or not the script succeeded. Failures are returned
// as errs.KindExecution without retry.
func Apply(ctx context.Context, exec database.Executor, stmts []string) error {
	defer exec.Close()

	log := logger.FromContext(ctx)
	if len(stmts) == 0 {
		log.Warn("nothing to apply")
		return nil
	}

	script := generator.Body(stmts)
	fingerprint := generator.Fingerprint(stmts)
	log.With().
		Int("statements", len(stmts)).
		Str("fingerprint", fingerprint).
		Logger().
		Info("applying script")

	start := time.Now()
	if err := exec.Exec(ctx, script); err != nil {
		log.ErrorWith("script failed", err, map[string]interface{}{"fingerprint": fingerprint})
		if errs.IsExecution(err) {
			return err
		}
		return errs.Wrap(errs.KindExecution, "applying script", err)
	}

	log.Infof("script applied in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
