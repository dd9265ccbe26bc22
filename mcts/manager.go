package mcts

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/alphabeth/tacmcts/game"
)

// Manager owns a search tree and orchestrates playout batches over it:
// worker fan-out, principal-variation extraction, root advancement, and
// the query surface. A Manager is not itself safe for concurrent use;
// it serializes phases, while the playouts inside a batch run in
// parallel.
type Manager struct {
	tree *Tree
	tld  *ThreadData // serial-playout scratch, lazily built
}

// NewManager validates conf and builds a manager over a fresh
// single-node tree.
func NewManager(state game.State, policy Policy, eval game.Evaluator, conf Config) (*Manager, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "mcts: invalid configuration")
	}
	return &Manager{tree: NewTree(state, policy, eval, conf)}, nil
}

// Tree returns the underlying search tree.
func (m *Manager) Tree() *Tree { return m.tree }

// Playout runs a single playout on the calling goroutine.
func (m *Manager) Playout() bool {
	if m.tld == nil {
		m.tld = NewThreadData(m.tree.conf.seed())
	}
	return m.tree.Playout(m.tld)
}

// PlayoutN runs n playouts across threads workers sharing the tree.
// Each worker owns its thread-local scratch and loops on a shared
// atomic budget, so cancellation is cooperative: zeroing the budget
// stops the batch. n <= 0 or threads <= 0 is a no-op.
func (m *Manager) PlayoutN(n int64, threads int) {
	if n <= 0 || threads <= 0 {
		return
	}
	budget := n
	var g errgroup.Group
	for i := 0; i < threads; i++ {
		seed := m.tree.conf.seed() + uint64(i)
		g.Go(func() error {
			tld := NewThreadData(seed)
			for atomic.AddInt64(&budget, -1) >= 0 {
				m.tree.Playout(tld)
			}
			return nil
		})
	}
	// Workers only ever return nil; Wait is the join barrier.
	_ = g.Wait()
}

// BestMove returns the root edge with the most visits, breaking ties
// by larger evaluation sum and then by expansion order. ok is false on
// a root with no explored edges.
func (m *Manager) BestMove() (mv game.Move, ok bool) {
	root := m.tree.root
	root.mu.RLock()
	defer root.mu.RUnlock()
	var best *Edge
	var bestVisits, bestSum int64
	for _, e := range root.edges {
		visits := e.stats.Visits()
		sum := e.stats.SumEvaluations()
		if best == nil || visits > bestVisits || (visits == bestVisits && sum > bestSum) {
			best = e
			bestVisits = visits
			bestSum = sum
		}
	}
	if best == nil {
		return nil, false
	}
	return best.mv, true
}

// PV returns the principal variation, up to k moves long.
func (m *Manager) PV(k int) []game.Move {
	return m.tree.PV(k)
}

// PVState is one stop along the principal variation: the state reached
// so far and the move taken from it (nil on the final entry).
type PVState struct {
	Move  game.Move
	State game.State
}

// PVStates returns the principal variation together with every
// intermediate state, starting at the root.
func (m *Manager) PVStates(k int) []PVState {
	moves := m.tree.PV(k)
	out := []PVState{{State: m.tree.RootState()}}
	for _, mv := range moves {
		last := len(out) - 1
		next := out[last].State.Fork()
		next.Advance(mv)
		out[last].Move = mv
		out = append(out, PVState{State: next})
	}
	return out
}

// EdgeStats snapshots the root edges' statistics.
func (m *Manager) EdgeStats() []ComputedStats {
	return m.tree.root.EdgeStats()
}

// RootState returns an independent copy of the root state.
func (m *Manager) RootState() game.State {
	return m.tree.RootState()
}

// Advance plays mv at the root, promoting its subtree and updating the
// searcher's knowledge from the pre-move state. It must not be called
// concurrently with PlayoutN.
func (m *Manager) Advance(mv game.Move) {
	m.tree.Advance(mv)
}

// NumNodes returns the tree's node counter (see Tree.NumNodes).
func (m *Manager) NumNodes() int64 { return m.tree.NumNodes() }

// ContentionEvents returns the expansion contention counter.
func (m *Manager) ContentionEvents() int64 { return m.tree.ContentionEvents() }
