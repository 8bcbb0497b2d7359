// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

const (
	DefaultPoolSize   = 8
	DefaultSelectSize = 6
)

// Direction selects whether ranking favors the most or least frequent numbers.
type Direction int

const (
	// Least ranks by ascending frequency.
	Least Direction = iota
	// Most ranks by descending frequency.
	Most
)

// String returns the lowercase flag spelling of the direction.
func (d Direction) String() string {
	switch d {
	case Least:
		return "least"
	case Most:
		return "most"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Least || d == Most
}

// ParseDirection converts "most" or "least" (case-insensitive) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "least":
		return Least, nil
	case "most":
		return Most, nil
	default:
		return Least, fmt.Errorf("unknown direction %q (want most or least)", s)
	}
}

// DuplicatePolicy decides what happens when a number appears twice in a table.
type DuplicatePolicy int

const (
	// LastWins keeps the most recently parsed entry for a number.
	LastWins DuplicatePolicy = iota
	// Reject fails the parse on the first repeated number.
	Reject
)

// FrequencyEntry is one number with the count of draws it appeared in.
type FrequencyEntry struct {
	Number    int
	Frequency int
}

// Options defines a ranking and selection request.
type Options struct {
	PoolSize   int
	SelectSize int
	Direction  Direction
}

// DefaultOptions returns the documented defaults: pool 8, select 6, least frequent.
func DefaultOptions() Options {
	return Options{
		PoolSize:   DefaultPoolSize,
		SelectSize: DefaultSelectSize,
		Direction:  Least,
	}
}

// Pool is the ranked candidate numbers, in rank order.
type Pool []int

// Combination is one game, values in ascending numeric order.
type Combination []int

// GameSet is every combination produced for one request.
type GameSet []Combination
