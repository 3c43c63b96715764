// Package queue defines message payloads exchanged over the message broker.
package queue

// BirdsSeededQueue is the durable queue seed events are published to.
const BirdsSeededQueue = "birds.seeded"

// BirdsSeededEvent is published after the startup seeder wrote rows into an
// empty birds table.
type BirdsSeededEvent struct {
	Rows     int          `json:"rows"`
	Birds    []SeededBird `json:"birds"`
	Store    string       `json:"store"`
	SeededAt string       `json:"seeded_at"`
}

// SeededBird is one seeded row as carried in the event.
type SeededBird struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}
