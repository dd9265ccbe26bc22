// Package tacmcts wires the concrete Tac domain (package tac) into the
// generic search engine (package mcts): agent construction, search
// configuration, and an arena that plays full rounds between
// searchers.
package tacmcts

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/alphabeth/tacmcts/mcts"
)

// Config holds everything a searching agent needs beyond the board
// itself.
type Config struct {
	Name string

	// MCTS carries the engine parameters.
	MCTS mcts.Config

	// Playouts is the per-move search budget, split across Threads
	// workers.
	Playouts int64
	Threads  int

	// MoveLimit caps a full arena round, guarding against rounds that
	// run out of cards without a winner.
	MoveLimit int
}

// DefaultConfig returns a configuration suitable for interactive play.
func DefaultConfig() Config {
	return Config{
		Name:      "tac",
		MCTS:      mcts.DefaultConfig(),
		Playouts:  10000,
		Threads:   4,
		MoveLimit: 400,
	}
}

// Validate returns every problem with the configuration at once.
func (c Config) Validate() error {
	var errs error
	if c.Playouts <= 0 {
		errs = multierror.Append(errs, errors.New("tacmcts: playout budget must be positive"))
	}
	if c.Threads <= 0 {
		errs = multierror.Append(errs, errors.New("tacmcts: thread count must be positive"))
	}
	if c.MoveLimit <= 0 {
		errs = multierror.Append(errs, errors.New("tacmcts: move limit must be positive"))
	}
	if err := c.MCTS.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}
