package database

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the birds table when it does not exist yet.  It is
// safe to call on every start and never touches existing rows.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if _, err := db.ExecContext(ctx, d.BirdsTableDDL()); err != nil {
		return fmt.Errorf("create birds table: %w", err)
	}
	return nil
}
