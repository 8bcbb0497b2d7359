// Package rank orders a frequency table and selects the candidate pool.
package rank

import (
	"errors"
	"sort"

	"github.com/verte-zerg/lottopick/internal/frequency"
	"github.com/verte-zerg/lottopick/internal/model"
)

var (
	// ErrInvalidPoolSize reports a pool size below one.
	ErrInvalidPoolSize = errors.New("rank: pool size must be greater than 0")
	// ErrInvalidDirection reports a direction other than Most or Least.
	ErrInvalidDirection = errors.New("rank: unknown direction")
)

// Rank returns up to poolSize numbers ordered by frequency, descending for
// Most and ascending for Least. Equal frequencies always order by ascending
// number, in both directions. A table smaller than poolSize yields a shorter
// pool rather than an error.
func Rank(table frequency.Table, poolSize int, dir model.Direction) (model.Pool, error) {
	if poolSize <= 0 {
		return nil, ErrInvalidPoolSize
	}
	if !dir.Valid() {
		return nil, ErrInvalidDirection
	}

	items := table.Entries()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Frequency == items[j].Frequency {
			return items[i].Number < items[j].Number
		}
		if dir == model.Most {
			return items[i].Frequency > items[j].Frequency
		}
		return items[i].Frequency < items[j].Frequency
	})

	n := poolSize
	if n > len(items) {
		n = len(items)
	}
	pool := make(model.Pool, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, items[i].Number)
	}
	return pool, nil
}

// Truncated reports whether the pool came back shorter than requested.
func Truncated(pool model.Pool, requested int) bool {
	return len(pool) < requested
}
