package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabeth/tacmcts/game"
)

// The toy games below exercise the engine without dragging in a real
// domain: a single-move counting chain, a branching counter, and a
// two-outcome duel.

type nilKnowledge struct{}

func (nilKnowledge) Fork() game.Knowledge { return nilKnowledge{} }

type testMove int

func (m testMove) Equal(o game.Move) bool {
	mm, ok := o.(testMove)
	return ok && mm == m
}

// countState walks a counter toward target; steps lists the increments
// legal at every non-terminal state.
type countState struct {
	n      int
	target int
	steps  []int
}

func (s *countState) Mover() game.Player { return 0 }

func (s *countState) Moves() []game.Move {
	if s.n >= s.target {
		return nil
	}
	out := make([]game.Move, len(s.steps))
	for i, st := range s.steps {
		out[i] = testMove(st)
	}
	return out
}

func (s *countState) Advance(m game.Move) { s.n += int(m.(testMove)) }

func (s *countState) Fork() game.State {
	cp := *s
	return &cp
}

func (s *countState) Done() (bool, game.Player) { return s.n >= s.target, 0 }

func (s *countState) InitialKnowledge(game.Player) game.Knowledge { return nilKnowledge{} }

func (s *countState) Observe(_ game.Move, k game.Knowledge) game.Knowledge { return k }

func (s *countState) Determinize(game.Player, game.Knowledge, game.RNG) {}

// countEval rewards proximity to the target.
type countEval struct{}

func (countEval) EvalNew(s game.State) int64 {
	c := s.(*countState)
	d := c.target - c.n
	if d < 0 {
		d = -d
	}
	return -int64(d)
}

func (countEval) EvalExisting(_ game.State, cached int64) int64 { return cached }

func (countEval) MakeRelative(v int64, _ game.Player) int64 { return v }

// duelState offers exactly two root moves: A ends at +100, B at -100.
type duelState struct {
	played testMove // 0 at the root
}

func (s *duelState) Mover() game.Player { return 0 }

func (s *duelState) Moves() []game.Move {
	if s.played != 0 {
		return nil
	}
	return []game.Move{testMove(1), testMove(2)}
}

func (s *duelState) Advance(m game.Move) { s.played = m.(testMove) }

func (s *duelState) Fork() game.State {
	cp := *s
	return &cp
}

func (s *duelState) Done() (bool, game.Player) { return s.played != 0, 0 }

func (s *duelState) InitialKnowledge(game.Player) game.Knowledge { return nilKnowledge{} }

func (s *duelState) Observe(_ game.Move, k game.Knowledge) game.Knowledge { return k }

func (s *duelState) Determinize(game.Player, game.Knowledge, game.RNG) {}

type duelEval struct{}

func (duelEval) EvalNew(s game.State) int64 {
	switch s.(*duelState).played {
	case 1:
		return 100
	case 2:
		return -100
	default:
		return 0
	}
}

func (duelEval) EvalExisting(_ game.State, cached int64) int64 { return cached }

func (duelEval) MakeRelative(v int64, _ game.Player) int64 { return v }

func newCountManager(t *testing.T, conf Config, steps ...int) *Manager {
	t.Helper()
	state := &countState{target: 100, steps: steps}
	m, err := NewManager(state, UCT{C: conf.ExplorationC}, countEval{}, conf)
	require.NoError(t, err)
	return m
}

func TestSingleMoveChainPV(t *testing.T) {
	conf := DefaultConfig()
	conf.MaxPlayoutLength = 40
	m := newCountManager(t, conf, 1)

	m.PlayoutN(200, 1)

	pv := m.PV(conf.MaxPlayoutLength)
	require.Len(t, pv, conf.MaxPlayoutLength)
	for _, mv := range pv {
		assert.Equal(t, testMove(1), mv)
	}
}

func TestTwoOutcomeDuel(t *testing.T) {
	m, err := NewManager(&duelState{}, UCT{C: 1.0}, duelEval{}, DefaultConfig())
	require.NoError(t, err)

	m.PlayoutN(1000, 4)

	best, ok := m.BestMove()
	require.True(t, ok)
	assert.Equal(t, testMove(1), best)

	stats := m.EdgeStats()
	require.Len(t, stats, 2)
	byMove := map[testMove]ComputedStats{}
	for _, s := range stats {
		byMove[s.Move.(testMove)] = s
	}
	assert.Greater(t, byMove[1].Visits, byMove[2].Visits)
	assert.Greater(t, byMove[1].Mean, byMove[2].Mean)

	for _, s := range stats {
		assert.GreaterOrEqual(t, s.Visits, int64(0))
		assert.GreaterOrEqual(t, s.Availability, s.Visits)
	}
}

func TestDuelWithVirtualLoss(t *testing.T) {
	conf := DefaultConfig()
	conf.VirtualLoss = 100
	m, err := NewManager(&duelState{}, UCT{C: 1.0}, duelEval{}, conf)
	require.NoError(t, err)

	m.PlayoutN(1000, 4)

	best, ok := m.BestMove()
	require.True(t, ok)
	assert.Equal(t, testMove(1), best)
}

func TestNodeLimitBoundsTree(t *testing.T) {
	conf := DefaultConfig()
	conf.NodeLimit = 5
	m := newCountManager(t, conf, 1, 2, 3)

	m.PlayoutN(10000, 8)

	assert.LessOrEqual(t, m.NumNodes(), int64(5+8))
}

func TestAdvancePromotesChild(t *testing.T) {
	m := newCountManager(t, DefaultConfig(), 1, 2, 3)
	m.PlayoutN(500, 1)

	tree := m.Tree()
	tree.root.mu.RLock()
	idx := tree.root.findEdge(testMove(1))
	require.GreaterOrEqual(t, idx, 0)
	child := tree.root.edges[idx].Child()
	tree.root.mu.RUnlock()
	require.NotNil(t, child)

	visits := child.Visits()
	moves := child.Moves()

	m.Advance(testMove(1))

	require.Same(t, child, tree.Root())
	assert.Equal(t, visits, tree.Root().Visits())
	assert.Equal(t, moves, tree.Root().Moves())
	assert.Equal(t, 1, tree.RootState().(*countState).n)
}

func TestAdvanceWithoutEdgeBuildsFreshRoot(t *testing.T) {
	m := newCountManager(t, DefaultConfig(), 1, 2, 3)

	m.Advance(testMove(3))

	assert.Equal(t, 3, m.RootState().(*countState).n)
	assert.Equal(t, 0, m.Tree().Root().NumEdges())
}

func TestPlayoutNBoundaries(t *testing.T) {
	m := newCountManager(t, DefaultConfig(), 1)

	m.PlayoutN(0, 4)
	m.PlayoutN(100, 0)

	assert.Equal(t, int64(1), m.NumNodes())
	assert.Empty(t, m.PV(10))
	_, ok := m.BestMove()
	assert.False(t, ok)
	assert.Empty(t, m.EdgeStats())
}

func TestPVStates(t *testing.T) {
	m := newCountManager(t, DefaultConfig(), 1)
	m.PlayoutN(50, 1)

	states := m.PVStates(5)
	require.NotEmpty(t, states)
	assert.Nil(t, states[len(states)-1].Move)
	for i, ps := range states {
		assert.Equal(t, i, ps.State.(*countState).n)
	}
}

func TestLeafEvaluationMode(t *testing.T) {
	conf := DefaultConfig()
	conf.RolloutLength = -1 // back up the cached leaf evaluation
	m, err := NewManager(&duelState{}, UCT{C: 1.0}, duelEval{}, conf)
	require.NoError(t, err)

	m.PlayoutN(200, 2)

	best, ok := m.BestMove()
	require.True(t, ok)
	assert.Equal(t, testMove(1), best)
}

func TestContentionCounterMonotonic(t *testing.T) {
	m := newCountManager(t, DefaultConfig(), 1, 2, 3)
	m.PlayoutN(2000, 8)
	assert.GreaterOrEqual(t, m.ContentionEvents(), int64(0))
}

func TestConfigValidate(t *testing.T) {
	assert.True(t, DefaultConfig().IsValid())

	bad := DefaultConfig()
	bad.VirtualLoss = -1
	bad.MaxPlayoutLength = 0
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "virtual loss")
	assert.Contains(t, err.Error(), "max playout length")
}
