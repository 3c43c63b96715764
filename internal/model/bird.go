package model

import "database/sql"

// Bird is one row of the `birds` table.
//
// Fields:
//
//	ID    – primary key, assigned by the store and never reused.
//	Name  – required common name.
//	Color – optional plumage colour; NULL when unknown.
type Bird struct {
	ID    int64          // birds.id
	Name  string         // birds.name
	Color sql.NullString // birds.color
}

// DefaultBirds are the rows the seeder writes into an empty table.
func DefaultBirds() []Bird {
	return []Bird{
		{Name: "Parrot", Color: sql.NullString{String: "Green", Valid: true}},
		{Name: "Sparrow", Color: sql.NullString{String: "Brown", Valid: true}},
	}
}
