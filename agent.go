package tacmcts

import (
	"github.com/pkg/errors"

	"github.com/alphabeth/tacmcts/mcts"
	"github.com/alphabeth/tacmcts/tac"
)

// An Agent is one searching seat: it owns a search tree rooted at its
// own view of the game and advances it as moves are played.
type Agent struct {
	Manager *mcts.Manager
	Seat    tac.Color

	name     string
	playouts int64
	threads  int
}

// NewAgent builds an agent for seat searching from board.
func NewAgent(board *tac.Board, seat tac.Color, conf Config) (*Agent, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "tacmcts: agent %v", seat)
	}
	policy := mcts.UCT{
		C:               conf.MCTS.ExplorationC,
		RootNoiseWeight: conf.MCTS.RootNoiseWeight,
	}
	mgr, err := mcts.NewManager(board, policy, tac.Evaluator{}, conf.MCTS)
	if err != nil {
		return nil, errors.Wrapf(err, "tacmcts: agent %v", seat)
	}
	return &Agent{
		Manager:  mgr,
		Seat:     seat,
		name:     conf.Name,
		playouts: conf.Playouts,
		threads:  conf.Threads,
	}, nil
}

// Search burns the configured playout budget and returns the best
// move at the root. ok is false when the root has no legal moves.
func (a *Agent) Search() (tac.TacMove, bool) {
	a.Manager.PlayoutN(a.playouts, a.threads)
	mv, ok := a.Manager.BestMove()
	if !ok {
		return tac.TacMove{}, false
	}
	return mv.(tac.TacMove), true
}

// Observe advances the agent's tree past mv, whoever played it. The
// promoted subtree keeps its statistics; the agent's knowledge folds
// in the observation.
func (a *Agent) Observe(mv tac.TacMove) {
	a.Manager.Advance(mv)
}
