package mcts

import (
	"math"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/alphabeth/tacmcts/game"
)

// Stats is the per-edge and per-node accounting triple: visit count,
// availability count, and the signed evaluation accumulator. All three
// are updated with relaxed atomics; the backpropagation replace step
// makes parent-edge mirrors eventually consistent, so no ordering
// between the counters is required.
type Stats struct {
	visits       int64
	availability int64
	sumEvals     int64
}

// Visits returns the visit count.
func (s *Stats) Visits() int64 { return atomic.LoadInt64(&s.visits) }

// Availability returns how often this edge was a legal candidate
// during descent.
func (s *Stats) Availability() int64 { return atomic.LoadInt64(&s.availability) }

// SumEvaluations returns the signed evaluation accumulator. Under
// virtual loss the intermediate value can be transiently negative.
func (s *Stats) SumEvaluations() int64 { return atomic.LoadInt64(&s.sumEvals) }

func (s *Stats) incrementAvailable() {
	atomic.AddInt64(&s.availability, 1)
}

// down applies the descent half of a visit: subtract the virtual loss
// and increment visits. It returns the pre-increment visit count.
func (s *Stats) down(virtualLoss int64) int64 {
	atomic.AddInt64(&s.sumEvals, -virtualLoss)
	return atomic.AddInt64(&s.visits, 1) - 1
}

// up applies the ascent half: add back the virtual loss plus the real
// evaluation.
func (s *Stats) up(virtualLoss, eval int64) {
	atomic.AddInt64(&s.sumEvals, eval+virtualLoss)
}

// replace mirrors another stats value into s (visits and accumulator;
// availability is owned by the edge and never mirrored), so reading an
// edge's statistics does not require following its child pointer.
func (s *Stats) replace(other *Stats) {
	atomic.StoreInt64(&s.visits, other.Visits())
	atomic.StoreInt64(&s.sumEvals, other.SumEvaluations())
}

// ComputedStats is a point-in-time snapshot of one edge with the
// derived quantities filled in.
type ComputedStats struct {
	Move           game.Move
	Visits         int64
	Availability   int64
	SumEvaluations int64
	Mean           float64
	Exploration    float64
}

func computedStats(e *Edge) ComputedStats {
	visits := e.stats.Visits()
	avail := e.stats.Availability()
	sum := e.stats.SumEvaluations()
	return ComputedStats{
		Move:           e.mv,
		Visits:         visits,
		Availability:   avail,
		SumEvaluations: sum,
		Mean:           float64(sum) / float64(visits),
		Exploration:    math.Sqrt(math.Log(1+float64(avail)) / float64(visits)),
	}
}

// Edge is one (move, stats, child) entry in a node's outgoing list.
// The child pointer starts nil and is installed exactly once by an
// atomic compare-and-set; the edge owns its child exclusively, so
// dropping the edge drops the subtree.
type Edge struct {
	mv    game.Move
	stats Stats
	child unsafe.Pointer // *Node
}

func newEdge(mv game.Move) *Edge {
	return &Edge{mv: mv}
}

// Move returns the move this edge carries.
func (e *Edge) Move() game.Move { return e.mv }

// Visits returns the edge's visit count.
func (e *Edge) Visits() int64 { return e.stats.Visits() }

// Availability returns the edge's availability count.
func (e *Edge) Availability() int64 { return e.stats.Availability() }

// SumEvaluations returns the edge's evaluation accumulator.
func (e *Edge) SumEvaluations() int64 { return e.stats.SumEvaluations() }

// Child returns the installed child node, or nil if descent has never
// passed through this edge.
func (e *Edge) Child() *Node {
	return (*Node)(atomic.LoadPointer(&e.child))
}

// installChild publishes candidate as the edge's child if no child has
// been installed yet. It returns the child that won and whether the
// candidate was it; a losing candidate must be discarded by the caller.
func (e *Edge) installChild(candidate *Node) (*Node, bool) {
	if atomic.CompareAndSwapPointer(&e.child, nil, unsafe.Pointer(candidate)) {
		return candidate, true
	}
	return e.Child(), false
}

// Node is one position in the search tree. The position's state is not
// stored (it is reconstructed by replaying moves from the root during
// descent); the node keeps only its cached evaluation, its aggregate
// statistics, and the outgoing edge list.
//
// The edge list is append-only under the RW lock: edges are added
// during expansion and removed only at root advancement, which is
// never concurrent with playouts.
type Node struct {
	mu    sync.RWMutex
	edges []*Edge
	eval  int64
	stats Stats
}

func newNode(eval int64) *Node {
	return &Node{eval: eval}
}

// CachedEval returns the evaluation computed when the node was
// expanded.
func (n *Node) CachedEval() int64 { return n.eval }

// Visits returns the node's aggregate visit count.
func (n *Node) Visits() int64 { return n.stats.Visits() }

// Moves returns the moves of all expanded edges, in expansion order.
func (n *Node) Moves() []game.Move {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]game.Move, len(n.edges))
	for i, e := range n.edges {
		out[i] = e.mv
	}
	return out
}

// EdgeStats snapshots every expanded edge's statistics, in expansion
// order.
func (n *Node) EdgeStats() []ComputedStats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]ComputedStats, len(n.edges))
	for i, e := range n.edges {
		out[i] = computedStats(e)
	}
	return out
}

// NumEdges returns the number of expanded edges.
func (n *Node) NumEdges() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.edges)
}

// findEdge returns the first edge carrying a move equal to mv, or -1.
// Callers must hold at least a read lock.
func (n *Node) findEdge(mv game.Move) int {
	for i, e := range n.edges {
		if e.mv.Equal(mv) {
			return i
		}
	}
	return -1
}
