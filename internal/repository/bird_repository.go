// Package repository contains data access logic separated from HTTP handlers.
// This file holds the birds queries: listing, counting, inserting and the
// count-guarded seed used at startup.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/birds-api/internal/database"
	"github.com/iliyamo/birds-api/internal/model"
)

// BirdRepo encapsulates all database queries related to birds.  The
// dialect decides placeholder style and how inserted ids come back.
type BirdRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewBirdRepo constructs a BirdRepo with the provided DB handle.
func NewBirdRepo(db *sql.DB, d database.Dialect) *BirdRepo {
	return &BirdRepo{db: db, dialect: d}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListAll returns every bird ordered by id.  The rows are always closed,
// so the pooled connection goes back to the pool on every path.
func (r *BirdRepo) ListAll(ctx context.Context) ([]model.Bird, error) {
	const q = `SELECT id, name, color FROM birds ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Bird, 0)
	for rows.Next() {
		var b model.Bird
		if err := rows.Scan(&b.ID, &b.Name, &b.Color); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of rows in the birds table.
func (r *BirdRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db)
}

// Create inserts a bird and fills in its generated ID.
func (r *BirdRepo) Create(ctx context.Context, b *model.Bird) error {
	return r.insert(ctx, r.db, b)
}

// SeedIfEmpty inserts seeds only when the table holds zero rows and returns
// how many rows it wrote.  The guard is the row count, not row identity:
// a table emptied externally is seeded again on the next call.  Count and
// inserts share one transaction.
func (r *BirdRepo) SeedIfEmpty(ctx context.Context, seeds []model.Bird) (n int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			n = 0
			return
		}
		err = tx.Commit()
		if err != nil {
			n = 0
		}
	}()

	total, err := count(ctx, tx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}
	for i := range seeds {
		b := seeds[i]
		if err = r.insert(ctx, tx, &b); err != nil {
			return 0, fmt.Errorf("seed %q: %w", b.Name, err)
		}
		n++
	}
	return n, nil
}

func count(ctx context.Context, q querier) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM birds`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *BirdRepo) insert(ctx context.Context, q querier, b *model.Bird) error {
	stmt := fmt.Sprintf("INSERT INTO birds (name, color) VALUES (%s, %s)",
		r.dialect.Placeholder(1), r.dialect.Placeholder(2))

	if r.dialect.Returning {
		return q.QueryRowContext(ctx, stmt+" RETURNING id", b.Name, b.Color).Scan(&b.ID)
	}
	res, err := q.ExecContext(ctx, stmt, b.Name, b.Color)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}
