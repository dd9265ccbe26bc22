// Package game defines the abstract contracts the search engine (see
// package mcts) is written against: a move, a game state, a belief
// state over hidden information, and a value evaluator. A concrete
// game — package tac in this repository — implements these contracts
// without the engine ever importing it back, keeping mcts polymorphic
// over the (game, evaluator, policy) triple the way a generic search
// library should be.
package game

// Player is a small non-negative integer identifying one seat.
type Player int

// Move is a single legal action in some game. Implementations must be
// comparable by value (used as a map/slice key surrogate via Equal)
// and safe to copy.
type Move interface {
	// Equal reports whether two moves name the same action.
	Equal(other Move) bool
}

// Knowledge is one observer's belief about currently-hidden
// information. It is a plain, copyable value owned by the searcher.
type Knowledge interface {
	// Fork returns an independent copy, since each playout
	// determinizes against its own copy of the root knowledge.
	Fork() Knowledge
}

// State is a fully-observable game position. The engine never mutates
// a state it does not own a private clone of.
type State interface {
	// Mover returns the player to act, total for any non-terminal state.
	Mover() Player
	// Moves returns the (possibly empty) unordered set of legal moves.
	// It is empty iff the state is terminal.
	Moves() []Move
	// Advance applies m in place; m must be a member of Moves().
	Advance(m Move)
	// Fork returns an independent deep copy.
	Fork() State
	// Done reports whether the state is terminal and, if so, which
	// player (or partnership representative) has won.
	Done() (bool, Player)
	// InitialKnowledge returns the belief an observer holds about this
	// state before any moves have been observed.
	InitialKnowledge(observer Player) Knowledge
	// Observe folds the observation of move m, played from this
	// pre-move state, into k, returning the updated belief. It must be
	// a pure function of (state, m, k).
	Observe(m Move, k Knowledge) Knowledge
	// Determinize randomizes this state's hidden information in place,
	// consistent with observer's knowledge k: any fact k considers
	// certain must hold afterward, and any unconstrained hidden choice
	// is drawn from the posterior implied by k. rng is the calling
	// thread's private scratch source.
	Determinize(observer Player, k Knowledge, rng RNG)
}

// RNG is the minimal pseudo-random source the engine threads through
// per-thread scratch data. *golang.org/x/exp/rand.Rand satisfies it
// structurally without this package importing that dependency.
type RNG interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Evaluator values a state from the perspective of whichever player is
// asking, via MakeRelative.
type Evaluator interface {
	// EvalNew produces a scalar value for a freshly expanded node; it
	// may be expensive (e.g. a random rollout to terminal).
	EvalNew(s State) int64
	// EvalExisting refines a cached value given the current state; the
	// default behavior for most evaluators is to return cached unchanged.
	EvalExisting(s State, cached int64) int64
	// MakeRelative returns v as signed and seen by player p. For a
	// partnership game, partners share sign and opponents flip it.
	MakeRelative(v int64, p Player) int64
}
