package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/iliyamo/birds-api/internal/database"
	"github.com/iliyamo/birds-api/internal/database/dbtest"
)

func TestEnsureSchema(t *testing.T) {
	Convey("Given a fresh SQLite store", t, func() {
		ctx := context.Background()
		db, d, err := database.Open(ctx, dbtest.URI(t), dbtest.Pool)
		So(err, ShouldBeNil)
		defer db.Close()

		Convey("When the schema is ensured twice", func() {
			So(database.EnsureSchema(ctx, db, d), ShouldBeNil)
			So(database.EnsureSchema(ctx, db, d), ShouldBeNil)

			Convey("Then exactly one birds table exists", func() {
				var n int
				err := db.QueryRowContext(ctx,
					`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'birds'`).Scan(&n)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When rows exist before a second call", func() {
			So(database.EnsureSchema(ctx, db, d), ShouldBeNil)
			_, err := db.ExecContext(ctx, `INSERT INTO birds (name, color) VALUES ('Crow', NULL)`)
			So(err, ShouldBeNil)
			So(database.EnsureSchema(ctx, db, d), ShouldBeNil)

			Convey("Then the rows survive", func() {
				var n int
				So(db.QueryRowContext(ctx, `SELECT COUNT(*) FROM birds`).Scan(&n), ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When the store has been closed", func() {
			So(db.Close(), ShouldBeNil)

			Convey("Then schema creation fails", func() {
				So(database.EnsureSchema(ctx, db, d), ShouldNotBeNil)
			})
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given URIs the store cannot serve", t, func() {
		ctx := context.Background()

		Convey("An unsupported scheme is rejected before connecting", func() {
			_, _, err := database.Open(ctx, "mongodb://localhost/birds", dbtest.Pool)
			So(errors.Is(err, database.ErrUnsupportedScheme), ShouldBeTrue)
		})

		Convey("A file in a missing directory fails the ping", func() {
			uri := "sqlite:///" + filepath.Join(t.TempDir(), "missing", "birds.db")
			_, _, err := database.Open(ctx, uri, dbtest.Pool)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an in-memory URI", t, func() {
		ctx := context.Background()
		db, d, err := database.Open(ctx, "sqlite://", dbtest.Pool)
		So(err, ShouldBeNil)
		defer db.Close()

		Convey("The schema stays visible across calls on the single connection", func() {
			So(database.EnsureSchema(ctx, db, d), ShouldBeNil)
			_, err := db.ExecContext(ctx, `INSERT INTO birds (name) VALUES ('Owl')`)
			So(err, ShouldBeNil)
			So(db.Stats().MaxOpenConnections, ShouldEqual, 1)
		})
	})
}
