// Package mcts implements a parallel Monte Carlo tree search over
// imperfect-information games: per-playout determinization against an
// observer's knowledge, lock-minimized expansion with virtual loss,
// and availability-scoped UCT selection. The engine is polymorphic
// over the (game, evaluator, policy) triple defined in package game.
package mcts

import (
	"github.com/chewxy/math32"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/alphabeth/tacmcts/game"
)

// dirichletParam is the concentration used for the optional root
// exploration noise.
const dirichletParam = 0.03

// Config carries the per-search parameters.
type Config struct {
	// ExplorationC is the UCT exploration constant.
	ExplorationC float32

	// VirtualLoss is subtracted from an edge on the way down and added
	// back during backpropagation; zero reduces to classical MCTS.
	VirtualLoss int64

	// NodeLimit caps the tree's node counter (see Tree.NumNodes);
	// playouts become no-ops once it is reached. Zero means unbounded.
	NodeLimit int64

	// VisitsBeforeExpansion ends descent at a node whose visit count
	// before the current visit is at most this value; descent continues
	// past a node only once it has more visits than this.
	VisitsBeforeExpansion int64

	// MaxPlayoutLength bounds the in-tree descent path.
	MaxPlayoutLength int

	// RolloutLength bounds the random rollout after descent. Zero plays
	// to terminal; a negative value disables the rollout entirely and
	// backs up the leaf's cached evaluation instead.
	RolloutLength int

	// RootNoiseWeight enables Dirichlet exploration noise at the root
	// when positive.
	RootNoiseWeight float32

	// Seed feeds the per-thread policy streams. Zero falls back to the
	// fixed default seed.
	Seed uint64
}

// DefaultConfig returns the parameter set the engine is tuned for.
func DefaultConfig() Config {
	return Config{
		ExplorationC:          1.0,
		VisitsBeforeExpansion: 1,
		MaxPlayoutLength:      1000,
	}
}

// IsValid reports whether the configuration can run a search.
func (c Config) IsValid() bool { return c.Validate() == nil }

// Validate returns every problem with the configuration at once.
func (c Config) Validate() error {
	var errs error
	if math32.IsNaN(c.ExplorationC) || math32.IsInf(c.ExplorationC, 0) {
		errs = multierror.Append(errs, errors.New("mcts: exploration constant must be finite"))
	}
	if c.VirtualLoss < 0 {
		errs = multierror.Append(errs, errors.New("mcts: virtual loss must be non-negative"))
	}
	if c.NodeLimit < 0 {
		errs = multierror.Append(errs, errors.New("mcts: node limit must be non-negative"))
	}
	if c.VisitsBeforeExpansion < 0 {
		errs = multierror.Append(errs, errors.New("mcts: visits before expansion must be non-negative"))
	}
	if c.MaxPlayoutLength <= 0 {
		errs = multierror.Append(errs, errors.New("mcts: max playout length must be positive"))
	}
	return errs
}

func (c Config) seed() uint64 {
	if c.Seed == 0 {
		return policySeed
	}
	return c.Seed
}

// Tree is the shared search tree: the root node, the authoritative
// root state, and the observer's knowledge about hidden information.
// Playouts may run concurrently against it; Advance must not.
type Tree struct {
	conf   Config
	policy Policy
	eval   game.Evaluator

	root      *Node
	rootState game.State
	observer  game.Player
	knowledge game.Knowledge
	rootNoise []float64

	numNodes   int64
	contention int64
}

// NewTree builds a single-node tree over a private clone of state.
// The player to move at the root becomes the searcher's observer: the
// knowledge is initialized for them and every playout determinizes
// from their point of view, no matter how the root advances later.
func NewTree(state game.State, policy Policy, eval game.Evaluator, conf Config) *Tree {
	root := state.Fork()
	t := &Tree{
		conf:      conf,
		policy:    policy,
		eval:      eval,
		root:      newNode(eval.EvalNew(root)),
		rootState: root,
		observer:  root.Mover(),
		knowledge: root.InitialKnowledge(root.Mover()),
		numNodes:  1,
	}
	if conf.RootNoiseWeight > 0 {
		t.rootNoise = sampleRootNoise(len(root.Moves()), conf.seed())
	}
	return t
}

// sampleRootNoise draws one Dirichlet sample over n root moves.
func sampleRootNoise(n int, seed uint64) []float64 {
	if n == 0 {
		return nil
	}
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = dirichletParam
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(seed))
	return dist.Rand(nil)
}

// Config returns the active parameters.
func (t *Tree) Config() Config { return t.conf }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// RootState returns an independent copy of the authoritative root
// state.
func (t *Tree) RootState() game.State { return t.rootState.Fork() }

// Knowledge returns the searcher's current belief state.
func (t *Tree) Knowledge() game.Knowledge { return t.knowledge }

// Advance plays mv at the root: the edge carrying mv is promoted to be
// the new root (keeping its whole subtree and statistics) and every
// other subtree is dropped. The knowledge is updated from the pre-move
// state before the state itself advances. Advance must not run
// concurrently with playouts.
func (t *Tree) Advance(mv game.Move) {
	t.knowledge = t.rootState.Observe(mv, t.knowledge)

	next := t.rootState.Fork()
	next.Advance(mv)

	t.root.mu.Lock()
	idx := t.root.findEdge(mv)
	var promoted *Node
	if idx >= 0 {
		promoted = t.root.edges[idx].Child()
	}
	t.root.edges = nil
	t.root.mu.Unlock()

	if promoted == nil {
		promoted = newNode(t.eval.EvalNew(next))
	}
	t.root = promoted
	t.rootState = next
}

// PV walks up to k steps from the root, at each step taking the
// max-visits edge among those legal at the walked state, and returns
// the move sequence. The walk stops early at a terminal state or when
// an edge has no installed child.
func (t *Tree) PV(k int) []game.Move {
	var res []game.Move
	cur := t.root
	state := t.rootState.Fork()
	for len(res) < k {
		legal := state.Moves()
		if len(legal) == 0 {
			break
		}
		e := maxVisitsEdge(cur, legal)
		if e == nil {
			break
		}
		res = append(res, e.mv)
		state.Advance(e.mv)
		child := e.Child()
		if child == nil {
			break
		}
		cur = child
	}
	return res
}

func maxVisitsEdge(n *Node, legal []game.Move) *Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var best *Edge
	var bestVisits int64 = -1
	for _, e := range n.edges {
		if !moveIn(e.mv, legal) {
			continue
		}
		if v := e.stats.Visits(); v > bestVisits {
			best = e
			bestVisits = v
		}
	}
	return best
}

func moveIn(mv game.Move, list []game.Move) bool {
	for _, m := range list {
		if mv.Equal(m) {
			return true
		}
	}
	return false
}

// NumNodes returns the node counter: the root plus every node a
// playout has installed, plus in-flight playout admissions. Nodes
// dropped by Advance are not subtracted, and a fresh root built by
// Advance is not added.
func (t *Tree) NumNodes() int64 {
	return loadNumNodes(t)
}

// ContentionEvents returns how many child installations lost their
// compare-and-set race.
func (t *Tree) ContentionEvents() int64 {
	return loadContention(t)
}
