package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/birds-api/internal/config"
	"github.com/iliyamo/birds-api/pkg/logger"
)

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
}

func testConfig(t *testing.T, dbPath string) config.Config {
	return config.Config{
		Env:         "test",
		Port:        freePort(t),
		DatabaseURI: "sqlite:///" + dbPath,
		LogLevel:    "error",
		DB: config.DBPoolConfig{
			MaxOpenConns:    2,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
			PingTimeout:     2 * time.Second,
		},
	}
}

func countBirds(path string) (int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM birds`).Scan(&n)
	return n, err
}

func TestRun(t *testing.T) {
	Convey("Given an empty store and a cancelled context", t, func() {
		path := filepath.Join(t.TempDir(), "birds.db")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When the service starts and stops", func() {
			err := run(ctx, testConfig(t, path), logger.Nop())

			Convey("Then it exits cleanly with the two seed rows written", func() {
				So(err, ShouldBeNil)
				n, err := countBirds(path)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})

			Convey("Then a restart does not seed again", func() {
				So(run(ctx, testConfig(t, path), logger.Nop()), ShouldBeNil)
				n, err := countBirds(path)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a store that cannot be opened", t, func() {
		path := filepath.Join(t.TempDir(), "missing", "birds.db")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("Then startup fails before serving", func() {
			So(run(ctx, testConfig(t, path), logger.Nop()), ShouldNotBeNil)
		})
	})

	Convey("Given an invalid port", t, func() {
		cfg := testConfig(t, filepath.Join(t.TempDir(), "birds.db"))
		cfg.Port = "http"

		Convey("Then startup fails on validation", func() {
			err := run(context.Background(), cfg, logger.Nop())
			So(errors.Is(err, config.ErrInvalidPort), ShouldBeTrue)
		})
	})
}
