// Package combo enumerates fixed-size combinations of a pool.
package combo

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"slices"

	"github.com/verte-zerg/lottopick/internal/model"
)

const (
	// MaxGames is the default cap on how many combinations a Sequence may hold.
	MaxGames uint64 = 1_000_000
	// HardMaxGames bounds every Sequence, including ones built with a limit of 0.
	HardMaxGames uint64 = 20_000_000
)

var (
	// ErrInvalidSelectionSize reports k < 1 or k greater than the pool length.
	ErrInvalidSelectionSize = errors.New("combo: invalid selection size")
	// ErrSelectionTooLarge reports a request whose combination count exceeds the limit.
	ErrSelectionTooLarge = errors.New("combo: selection too large")
)

// TooLargeError carries the request that exceeded the limit.
type TooLargeError struct {
	N, K  int
	Limit uint64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%v: C(%d,%d) exceeds %d games", ErrSelectionTooLarge, e.N, e.K, e.Limit)
}

func (e *TooLargeError) Unwrap() error {
	return ErrSelectionTooLarge
}

// Count returns C(n, k). ok is false when the result does not fit in a uint64.
func Count(n, k int) (count uint64, ok bool) {
	if k < 0 || n < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}
	count = 1
	for i := 1; i <= k; i++ {
		// count*(n-k+i) is always divisible by i at this step.
		hi, lo := bits.Mul64(count, uint64(n-k+i))
		if hi >= uint64(i) {
			return 0, false
		}
		count, _ = bits.Div64(hi, lo, uint64(i))
	}
	return count, true
}

// Sequence is a finite, restartable enumeration of the k-combinations of a pool.
type Sequence struct {
	pool  model.Pool
	k     int
	count uint64
}

// New prepares the k-combinations of pool using the MaxGames limit.
func New(pool model.Pool, k int) (*Sequence, error) {
	return NewWithLimit(pool, k, MaxGames)
}

// NewWithLimit prepares the k-combinations of pool, failing before any
// enumeration when C(len(pool), k) exceeds limit. A limit of 0, or one above
// HardMaxGames, means HardMaxGames.
func NewWithLimit(pool model.Pool, k int, limit uint64) (*Sequence, error) {
	n := len(pool)
	if k < 1 || k > n {
		return nil, ErrInvalidSelectionSize
	}
	if limit == 0 || limit > HardMaxGames {
		limit = HardMaxGames
	}
	count, ok := Count(n, k)
	if !ok || count > limit {
		return nil, &TooLargeError{N: n, K: k, Limit: limit}
	}
	return &Sequence{pool: slices.Clone(pool), k: k, count: count}, nil
}

// Len returns the number of combinations the sequence yields.
func (s *Sequence) Len() uint64 {
	return s.count
}

// All yields every combination. Index tuples i1 < i2 < ... < ik over pool
// positions are visited in lexicographic order, and each yielded combination
// holds the selected values sorted ascending. Every call starts from the
// first combination, and yielded slices are owned by the caller.
func (s *Sequence) All() iter.Seq[model.Combination] {
	return func(yield func(model.Combination) bool) {
		n, k := len(s.pool), s.k
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			c := make(model.Combination, k)
			for i, p := range idx {
				c[i] = s.pool[p]
			}
			slices.Sort(c)
			if !yield(c) {
				return
			}

			// Rightmost index that can still advance.
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// Collect materializes the whole sequence.
func (s *Sequence) Collect() model.GameSet {
	games := make(model.GameSet, 0, s.count)
	for c := range s.All() {
		games = append(games, c)
	}
	return games
}
