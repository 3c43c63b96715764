package database

import "strconv"

// Dialect captures what differs between the supported SQL backends.
type Dialect struct {
	Name   string // database/sql driver name
	schema string
	// numbered placeholders ($1, $2) instead of ?
	numbered bool
	// INSERT ... RETURNING id instead of LastInsertId
	Returning bool
}

// Placeholder returns the bind marker for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// BirdsTableDDL is the idempotent CREATE TABLE statement for birds.
func (d Dialect) BirdsTableDDL() string { return d.schema }

var (
	// AUTOINCREMENT keeps SQLite from handing out the id of a deleted max row again.
	SQLite = Dialect{
		Name: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS birds (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  VARCHAR(50) NOT NULL,
			color VARCHAR(50) NULL
		)`,
	}

	MySQL = Dialect{
		Name: "mysql",
		schema: `CREATE TABLE IF NOT EXISTS birds (
			id    INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name  VARCHAR(50) NOT NULL,
			color VARCHAR(50) NULL
		) DEFAULT CHARSET=utf8mb4`,
	}

	Postgres = Dialect{
		Name: "pgx",
		schema: `CREATE TABLE IF NOT EXISTS birds (
			id    SERIAL PRIMARY KEY,
			name  VARCHAR(50) NOT NULL,
			color VARCHAR(50) NULL
		)`,
		numbered:  true,
		Returning: true,
	}
)
