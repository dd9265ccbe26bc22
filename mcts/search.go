package mcts

import (
	"sync/atomic"

	"github.com/alphabeth/tacmcts/game"
)

// pathStep records one selected edge during descent so the
// backpropagation can walk the path in reverse.
type pathStep struct {
	parent  *Node
	child   *Node
	edgeIdx int
	player  game.Player
}

func loadNumNodes(t *Tree) int64   { return atomic.LoadInt64(&t.numNodes) }
func loadContention(t *Tree) int64 { return atomic.LoadInt64(&t.contention) }

// Playout runs one select→expand→rollout→backpropagate iteration
// against the shared tree. It is safe to call from many goroutines at
// once, each with its own ThreadData. It reports false when the node
// limit made the playout a no-op.
func (t *Tree) Playout(tld *ThreadData) bool {
	// Scope-guarded admission: the increment bounds concurrent
	// over-limit entries to the worker count.
	admitted := atomic.AddInt64(&t.numNodes, 1) - 1
	defer atomic.AddInt64(&t.numNodes, -1)
	if t.conf.NodeLimit > 0 && admitted >= t.conf.NodeLimit {
		return false
	}

	state := t.rootState.Fork()
	state.Determinize(t.observer, t.knowledge.Fork(), tld.Rand)

	path := tld.path[:0]
	node := t.root
	created := false

	for len(path) < t.conf.MaxPlayoutLength {
		legal := state.Moves()

		// Expand: append an edge for the first legal move this node has
		// never seen. Racing expanders either observe the new edge on
		// re-read or contribute a different untried move.
		untried := t.firstUntried(node, legal)
		if untried != nil {
			node.mu.Lock()
			if node.findEdge(untried) < 0 {
				node.edges = append(node.edges, newEdge(untried))
			}
			node.mu.Unlock()
		}

		// Candidates: the expanded edges legal under this
		// determinization.
		cands, indices := t.legalEdges(node, legal, tld)
		if len(cands) == 0 {
			break
		}
		for _, e := range cands {
			e.stats.incrementAvailable()
		}

		if node == t.root {
			tld.rootNoise = t.rootNoise
		} else {
			tld.rootNoise = nil
		}
		ci := t.policy.Choose(cands, tld)
		e := cands[ci]
		e.stats.down(t.conf.VirtualLoss)

		player := state.Mover()
		state.Advance(e.mv)

		child, didCreate := t.descend(state, e)
		created = didCreate
		path = append(path, pathStep{parent: node, child: child, edgeIdx: indices[ci], player: player})
		node = child

		preVisits := child.stats.down(t.conf.VirtualLoss)
		if preVisits <= t.conf.VisitsBeforeExpansion {
			break
		}
	}
	tld.path = path

	value := node.CachedEval()
	if !created {
		value = t.eval.EvalExisting(state, value)
	}
	if t.conf.RolloutLength >= 0 {
		t.rollout(state, tld)
		value = t.eval.EvalNew(state)
	}

	t.backpropagate(path, value)
	return true
}

// firstUntried returns the first legal move with no edge yet, or nil.
func (t *Tree) firstUntried(node *Node, legal []game.Move) game.Move {
	node.mu.RLock()
	defer node.mu.RUnlock()
	for _, mv := range legal {
		if node.findEdge(mv) < 0 {
			return mv
		}
	}
	return nil
}

// legalEdges collects the expanded edges whose moves are legal at the
// current determinization, together with their positions in the node's
// edge list. The returned slices are tld-owned scratch.
func (t *Tree) legalEdges(node *Node, legal []game.Move, tld *ThreadData) ([]*Edge, []int) {
	cands := tld.candidates[:0]
	indices := tld.indices[:0]
	node.mu.RLock()
	for i, e := range node.edges {
		if moveIn(e.mv, legal) {
			cands = append(cands, e)
			indices = append(indices, i)
		}
	}
	node.mu.RUnlock()
	tld.candidates = cands
	tld.indices = indices
	return cands, indices
}

// descend follows e to its child, installing a freshly evaluated node
// via compare-and-set when none exists. The losing installer discards
// its candidate and counts a contention event.
func (t *Tree) descend(state game.State, e *Edge) (*Node, bool) {
	if child := e.Child(); child != nil {
		return child, false
	}
	candidate := newNode(t.eval.EvalNew(state))
	winner, won := e.installChild(candidate)
	if !won {
		atomic.AddInt64(&t.contention, 1)
		return winner, false
	}
	atomic.AddInt64(&t.numNodes, 1)
	return winner, true
}

// rollout plays uniformly random legal moves in place until terminal
// or the rollout length cap.
func (t *Tree) rollout(state game.State, tld *ThreadData) {
	for i := 0; ; i++ {
		if t.conf.RolloutLength > 0 && i >= t.conf.RolloutLength {
			return
		}
		legal := state.Moves()
		if len(legal) == 0 {
			return
		}
		state.Advance(legal[tld.Rand.Intn(len(legal))])
	}
}

// backpropagate walks the recorded path in reverse: each child gets
// the rollout value relativized to the player who moved into it, and
// the parent's edge mirror is refreshed from the child's aggregates.
func (t *Tree) backpropagate(path []pathStep, value int64) {
	for i := len(path) - 1; i >= 0; i-- {
		st := path[i]
		rel := t.eval.MakeRelative(value, st.player)
		st.child.stats.up(t.conf.VirtualLoss, rel)

		st.parent.mu.RLock()
		e := st.parent.edges[st.edgeIdx]
		st.parent.mu.RUnlock()
		e.stats.replace(&st.child.stats)
	}
}
