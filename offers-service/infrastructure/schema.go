package infrastructure

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates the offer tables when they do not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
