package tac

import "github.com/alphabeth/tacmcts/game"

// This file adapts Board/TacMove/Knowledge's native, richly-typed API
// to the engine's generic game.State/game.Move/game.Knowledge
// contracts, so package mcts never imports package tac: the dependency
// runs tac -> game, mcts -> game, and a top-level wiring package
// depends on both.

var (
	_ game.State     = (*Board)(nil)
	_ game.Move      = TacMove{}
	_ game.Knowledge = knowledgeHandle{}
	_ game.Evaluator = Evaluator{}
)

// Equal satisfies game.Move.
func (m TacMove) Equal(other game.Move) bool {
	o, ok := other.(TacMove)
	if !ok {
		return false
	}
	return m.sameAs(o)
}

func (m TacMove) sameAs(o TacMove) bool {
	if m.Card != o.Card || m.Action.Kind != o.Action.Kind {
		return false
	}
	a, b := m.Action, o.Action
	switch a.Kind {
	case ActionStep:
		return a.From == b.From && a.To == b.To
	case ActionStepHome:
		return a.From == b.From && a.HomeTo == b.HomeTo
	case ActionStepInHome:
		return a.HomeFrom == b.HomeFrom && a.HomeTo == b.HomeTo
	case ActionSwitch:
		return (a.Target1 == b.Target1 && a.Target2 == b.Target2) ||
			(a.Target1 == b.Target2 && a.Target2 == b.Target1)
	case ActionSevenSteps:
		if len(a.Steps) != len(b.Steps) {
			return false
		}
		for i := range a.Steps {
			if a.Steps[i] != b.Steps[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// knowledgeHandle adapts *Knowledge to game.Knowledge.
type knowledgeHandle struct{ k *Knowledge }

// Fork satisfies game.Knowledge.
func (h knowledgeHandle) Fork() game.Knowledge {
	return knowledgeHandle{h.k.Clone()}
}

func asKnowledge(k *Knowledge) game.Knowledge { return knowledgeHandle{k} }

func fromKnowledge(k game.Knowledge) *Knowledge {
	h, ok := k.(knowledgeHandle)
	if !ok {
		panic("tac: foreign game.Knowledge value")
	}
	return h.k
}

// Mover satisfies game.State.
func (b *Board) Mover() game.Player { return game.Player(b.CurrentPlayer()) }

// Moves satisfies game.State.
func (b *Board) Moves() []game.Move {
	lm := b.LegalMoves()
	out := make([]game.Move, len(lm))
	for i, m := range lm {
		out[i] = m
	}
	return out
}

// Advance satisfies game.State.
func (b *Board) Advance(m game.Move) {
	b.MakeMove(m.(TacMove))
}

// Fork satisfies game.State.
func (b *Board) Fork() game.State { return b.Clone() }

// Done satisfies game.State.
func (b *Board) Done() (bool, game.Player) {
	over, winner := b.Terminal()
	return over, game.Player(winner)
}

// InitialKnowledge satisfies game.State.
func (b *Board) InitialKnowledge(observer game.Player) game.Knowledge {
	return asKnowledge(b.NewKnowledgeFor(Color(observer)))
}

// Observe satisfies game.State.
func (b *Board) Observe(m game.Move, k game.Knowledge) game.Knowledge {
	return asKnowledge(b.UpdateKnowledge(m.(TacMove), fromKnowledge(k)))
}

// Determinize satisfies game.State, delegating to the calling thread's
// private RNG so concurrent playouts never share mutable random state.
func (b *Board) Determinize(observer game.Player, k game.Knowledge, rng game.RNG) {
	b.Redetermine(Color(observer), fromKnowledge(k), rng)
}

// Evaluator values a board with the bitboard-feature heuristic score
// (see eval.go), satisfying the engine's game.Evaluator contract.
type Evaluator struct{}

// EvalNew satisfies game.Evaluator. Board.Eval scores from the mover's
// side; EvalNew re-expresses that score from the Black/Green side, the
// frame MakeRelative expects.
func (Evaluator) EvalNew(s game.State) int64 {
	b := s.(*Board)
	v := b.Eval()
	if p := b.CurrentPlayer(); p == Blue || p == Red {
		return -v
	}
	return v
}

// EvalExisting satisfies game.Evaluator; the heuristic is a pure
// function of the position, so the cached value stands.
func (Evaluator) EvalExisting(_ game.State, cached int64) int64 {
	return cached
}

// MakeRelative satisfies game.Evaluator: the Black/Green partnership
// keeps the score's sign, the Blue/Red partnership flips it.
func (Evaluator) MakeRelative(v int64, p game.Player) int64 {
	switch Color(p) {
	case Black, Green:
		return v
	default:
		return -v
	}
}
