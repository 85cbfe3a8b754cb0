package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/schemato/errs"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "pgx", cfg: Config{Driver: DriverPgx, URL: "postgres://localhost/db"}},
		{name: "pq", cfg: Config{Driver: DriverPq, URL: "postgres://localhost/db"}},
		{name: "unknown driver", cfg: Config{Driver: "mysql", URL: "postgres://localhost/db"}, wantErr: true},
		{name: "missing url", cfg: Config{Driver: DriverPgx}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, errs.IsConfig(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DriverPgx, cfg.Driver)
	assert.Empty(t, cfg.URL)
	assert.Positive(t, cfg.MaxConns)
}

func TestOpen_RejectsBadConfig(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: DriverPgx})
	assert.True(t, errs.IsConfig(err))

	_, err = Open(context.Background(), Config{Driver: DriverPgx, URL: "postgres://localhost:notaport/db"})
	assert.True(t, errs.IsConfig(err))
}

func TestPqDriverRegistered(t *testing.T) {
	assert.Contains(t, sql.Drivers(), "postgres")
}

func TestMapError(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "42P07", Message: "relation already exists"}, "executing script")
	assert.True(t, errs.IsExecution(err))
	assert.Contains(t, err.Error(), "SQLSTATE 42P07")

	err = mapError(&pq.Error{Code: "42601", Message: "syntax error"}, "executing script")
	assert.True(t, errs.IsExecution(err))
	assert.Contains(t, err.Error(), "SQLSTATE 42601")

	cause := errors.New("connection refused")
	err = mapError(cause, "unable to ping database")
	assert.True(t, errs.IsExecution(err))
	require.ErrorIs(t, err, cause)
}
