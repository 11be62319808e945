// Package models contains data structures for gamebook roster extraction
package models

// Participation status codes assigned to each roster entry
const (
	StatusStarter  = "S"
	StatusBackup   = "B"
	StatusInactive = "I"
)

// RosterEntry holds one player parsed from a gamebook roster section
type RosterEntry struct {
	Name     string
	Team     string // full team name as printed in the gamebook header
	Position string
	Status   string
}

// GameInfo holds the header metadata parsed from a gamebook
type GameInfo struct {
	VisitorTeam  string
	HomeTeam     string
	VisitorScore string
	HomeScore    string
	Week         int
	Season       int
}

// ResolvedPlayer is a roster entry joined with its GSIS identifier
type ResolvedPlayer struct {
	GsisID   string
	Team     string // team abbreviation
	Opponent string // opponent abbreviation
	Week     int
	Season   int
	Position string
	Status   string
}
