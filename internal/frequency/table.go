// Package frequency parses draw-frequency rows into a table.
package frequency

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/lottopick/internal/model"
)

var (
	// ErrMalformedRow reports a row without exactly two integer fields.
	ErrMalformedRow = errors.New("frequency: malformed row")
	// ErrNegativeFrequency reports a frequency below zero.
	ErrNegativeFrequency = errors.New("frequency: negative frequency")
	// ErrNegativeNumber reports a number below zero. It is a kind of ErrMalformedRow.
	ErrNegativeNumber = fmt.Errorf("%w: negative number", ErrMalformedRow)
	// ErrDuplicateNumber reports a repeated number under the Reject policy.
	ErrDuplicateNumber = errors.New("frequency: duplicate number")
)

// RowError describes the row that failed to parse. It unwraps to one of the
// package sentinels.
type RowError struct {
	Row    int
	Fields []string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%v at row %d: %q", e.Err, e.Row, e.Fields)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Table is an unordered set of frequency entries keyed by number.
type Table struct {
	entries map[int]int
}

// Parse builds a table from raw rows. A number repeated across rows keeps the
// frequency from its last row.
func Parse(rows [][]string) (Table, error) {
	return ParseWithPolicy(rows, model.LastWins)
}

// ParseWithPolicy builds a table from raw rows using the given duplicate policy.
func ParseWithPolicy(rows [][]string, policy model.DuplicatePolicy) (Table, error) {
	entries := make(map[int]int, len(rows))
	for i, row := range rows {
		entry, err := parseRow(row)
		if err != nil {
			return Table{}, &RowError{Row: i + 1, Fields: row, Err: err}
		}
		if _, seen := entries[entry.Number]; seen && policy == model.Reject {
			return Table{}, &RowError{Row: i + 1, Fields: row, Err: ErrDuplicateNumber}
		}
		entries[entry.Number] = entry.Frequency
	}
	return Table{entries: entries}, nil
}

// FromEntries builds a table directly from entries, last entry winning.
func FromEntries(entries []model.FrequencyEntry) Table {
	m := make(map[int]int, len(entries))
	for _, e := range entries {
		m[e.Number] = e.Frequency
	}
	return Table{entries: m}
}

func parseRow(row []string) (model.FrequencyEntry, error) {
	if len(row) != 2 {
		return model.FrequencyEntry{}, ErrMalformedRow
	}
	number, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return model.FrequencyEntry{}, ErrMalformedRow
	}
	freq, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return model.FrequencyEntry{}, ErrMalformedRow
	}
	if number < 0 {
		return model.FrequencyEntry{}, ErrNegativeNumber
	}
	if freq < 0 {
		return model.FrequencyEntry{}, ErrNegativeFrequency
	}
	return model.FrequencyEntry{Number: number, Frequency: freq}, nil
}

// Len returns the number of distinct numbers in the table.
func (t Table) Len() int {
	return len(t.entries)
}

// Frequency returns the frequency recorded for n.
func (t Table) Frequency(n int) (int, bool) {
	f, ok := t.entries[n]
	return f, ok
}

// Entries returns a fresh copy of the entries ordered by number.
func (t Table) Entries() []model.FrequencyEntry {
	out := make([]model.FrequencyEntry, 0, len(t.entries))
	for n, f := range t.entries {
		out = append(out, model.FrequencyEntry{Number: n, Frequency: f})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}
