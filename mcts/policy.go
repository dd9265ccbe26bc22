package mcts

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"
)

// policySeed is the default seed for per-thread policy streams; worker
// i derives its own stream from policySeed + i so concurrent playouts
// never share a source.
const policySeed uint64 = 1337

// tieTolerance is the score window within which candidate edges are
// treated as equally good and broken uniformly at random.
const tieTolerance float32 = 1e-3

// ThreadData is the per-worker scratch a playout threads through the
// engine: the policy's private random stream plus reusable buffers.
type ThreadData struct {
	Rand *rand.Rand

	// rootNoise is set while selecting at the root when exploration
	// noise is enabled, nil everywhere else.
	rootNoise []float64

	path       []pathStep
	candidates []*Edge
	indices    []int
}

// NewThreadData returns worker scratch with a policy stream seeded
// from seed.
func NewThreadData(seed uint64) *ThreadData {
	return &ThreadData{Rand: rand.New(rand.NewSource(seed))}
}

// Policy picks one edge out of a non-empty candidate list. The index
// returned addresses the candidates slice, not the node's full edge
// list.
type Policy interface {
	Choose(edges []*Edge, tld *ThreadData) int
}

// UCT is the upper-confidence-bound tree policy: an unvisited edge
// scores infinity, otherwise mean value plus C·2·sqrt(ln(availability
// +1)/visits). Availability rather than parent visits keeps the
// denominator scoped to the determinizations in which the edge was
// actually legal.
type UCT struct {
	C float32

	// RootNoiseWeight mixes the tree's Dirichlet sample into root
	// scores, softening the root distribution during long searches.
	// Zero disables the term.
	RootNoiseWeight float32
}

// Choose satisfies Policy.
func (p UCT) Choose(edges []*Edge, tld *ThreadData) int {
	noise := tld.rootNoise
	return selectByKey(edges, tld, func(i int, e *Edge) float32 {
		visits := e.stats.Visits()
		if visits == 0 {
			return math32.Inf(1)
		}
		avail := float32(e.stats.Availability())
		mean := float32(e.stats.SumEvaluations()) / float32(visits)
		explore := 2 * math32.Sqrt(math32.Log(avail+1)/float32(visits))
		score := mean + p.C*explore
		if noise != nil && p.RootNoiseWeight > 0 && i < len(noise) {
			score += p.RootNoiseWeight * float32(noise[i])
		}
		return score
	})
}

// Uniform picks uniformly at random among the candidates, ignoring all
// statistics. Useful as a baseline and in tests.
type Uniform struct{}

// Choose satisfies Policy.
func (Uniform) Choose(edges []*Edge, tld *ThreadData) int {
	return tld.Rand.Intn(len(edges))
}

// selectByKey returns the index of the maximal-scoring edge, breaking
// ties within tieTolerance by reservoir sampling: the k-th optimal
// candidate replaces the current choice with probability 1/k, so the
// selection is uniform over the optimal set.
func selectByKey(edges []*Edge, tld *ThreadData, key func(int, *Edge) float32) int {
	choice := -1
	numOptimal := 0
	best := math32.Inf(-1)
	for i, e := range edges {
		score := key(i, e)
		if score > best {
			choice = i
			numOptimal = 1
			best = score
		} else if score == best || math32.Abs(score-best) < tieTolerance {
			numOptimal++
			if tld.Rand.Float64() < 1/float64(numOptimal) {
				choice = i
			}
		}
	}
	return choice
}
