package tacmcts

import (
	"bytes"
	"log"

	"github.com/pkg/errors"

	"github.com/alphabeth/tacmcts/tac"
)

// Arena plays a full Tac round with a searching agent in every seat.
// Each seat's agent is created lazily on its first turn, so its belief
// state is initialized from its own point of view, and every agent
// observes every move played thereafter.
type Arena struct {
	game   *tac.Board
	agents [4]*Agent
	conf   Config

	buf    bytes.Buffer
	logger *log.Logger
}

// NewArena returns an arena over a freshly dealt board.
func NewArena(board *tac.Board, conf Config) *Arena {
	a := &Arena{game: board, conf: conf}
	a.logger = log.New(&a.buf, "", log.Ltime)
	return a
}

// Log returns everything the arena logged so far.
func (a *Arena) Log() string { return a.buf.String() }

// Play runs the round to completion or to the configured move limit.
// It returns the winning seat; ok is false when the round ended with
// no winner (cards ran out or the limit was hit).
func (a *Arena) Play() (winner tac.Color, ok bool, err error) {
	a.logger.Printf("starting round\n%v", a.game)
	for moves := 0; moves < a.conf.MoveLimit; moves++ {
		if over, w := a.game.Terminal(); over {
			a.logger.Printf("round over after %d moves, %v wins", moves, w)
			return w, true, nil
		}
		seat := a.game.CurrentPlayer()
		agent := a.agents[seat]
		if agent == nil {
			agent, err = NewAgent(a.game, seat, a.conf)
			if err != nil {
				return 0, false, errors.Wrap(err, "tacmcts: arena")
			}
			a.agents[seat] = agent
		}

		mv, found := agent.Search()
		if !found {
			a.logger.Printf("%v has no legal move, round ends", seat)
			return 0, false, nil
		}
		a.logger.Printf("move %d: %v plays %v %v", moves, seat, mv.Card, mv.Action.Kind)

		a.game.MakeMove(mv)
		for _, other := range a.agents {
			if other != nil {
				other.Observe(mv)
			}
		}
	}
	a.logger.Printf("move limit %d reached", a.conf.MoveLimit)
	return 0, false, nil
}
