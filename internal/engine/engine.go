// Package engine wires parsing, ranking, and combination generation.
package engine

import (
	"github.com/verte-zerg/lottopick/internal/combo"
	"github.com/verte-zerg/lottopick/internal/frequency"
	"github.com/verte-zerg/lottopick/internal/model"
	"github.com/verte-zerg/lottopick/internal/rank"
)

// Result holds the selected pool and every game drawn from it.
type Result struct {
	Pool      model.Pool
	Games     model.GameSet
	Requested int
}

// Truncated reports whether the table held fewer numbers than the requested pool size.
func (r Result) Truncated() bool {
	return rank.Truncated(r.Pool, r.Requested)
}

// Engine runs requests against a duplicate policy and a game limit. A zero
// MaxGames still applies combo.HardMaxGames.
type Engine struct {
	Policy   model.DuplicatePolicy
	MaxGames uint64
}

// New returns an Engine with last-wins duplicates and the default game limit.
func New() *Engine {
	return &Engine{Policy: model.LastWins, MaxGames: combo.MaxGames}
}

// Validate checks options that can be rejected before any input is parsed.
func Validate(opts model.Options) error {
	if opts.PoolSize <= 0 {
		return rank.ErrInvalidPoolSize
	}
	if opts.SelectSize <= 0 {
		return combo.ErrInvalidSelectionSize
	}
	if !opts.Direction.Valid() {
		return rank.ErrInvalidDirection
	}
	if opts.SelectSize > opts.PoolSize {
		return combo.ErrInvalidSelectionSize
	}
	return nil
}

// Generate parses rows and produces the pool and game set. Errors from the
// parser, ranker, and generator are returned as-is.
func Generate(rows [][]string, opts model.Options) (Result, error) {
	return New().Generate(rows, opts)
}

// Generate parses rows with the engine's policy and produces the pool and game set.
func (e *Engine) Generate(rows [][]string, opts model.Options) (Result, error) {
	table, err := frequency.ParseWithPolicy(rows, e.Policy)
	if err != nil {
		return Result{}, err
	}
	return e.GenerateTable(table, opts)
}

// GenerateTable ranks an already parsed table and produces the game set.
func (e *Engine) GenerateTable(table frequency.Table, opts model.Options) (Result, error) {
	if err := Validate(opts); err != nil {
		return Result{}, err
	}
	pool, err := rank.Rank(table, opts.PoolSize, opts.Direction)
	if err != nil {
		return Result{}, err
	}
	seq, err := combo.NewWithLimit(pool, opts.SelectSize, e.MaxGames)
	if err != nil {
		return Result{}, err
	}
	return Result{Pool: pool, Games: seq.Collect(), Requested: opts.PoolSize}, nil
}
