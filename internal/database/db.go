package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/birds-api/internal/config"
)

// Open resolves uri to a driver, connects, applies pool settings and
// verifies the connection with a ping bounded by pool.PingTimeout.
func Open(ctx context.Context, uri string, pool config.DBPoolConfig) (*sql.DB, Dialect, error) {
	t, err := ParseURI(uri)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(t.Dialect.Name, t.DSN)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("open %s: %w", t.Dialect.Name, err)
	}

	// Pool settings
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	if t.InMemory {
		// every new connection would see a fresh empty database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	pingCtx := ctx
	if pool.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, pool.PingTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("ping %s: %w", t.Dialect.Name, err)
	}
	return db, t.Dialect, nil
}
