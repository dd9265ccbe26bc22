package tac

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ballsPerColor is the number of balls each seat owns: one per home
// slot.
const ballsPerColor = 4

// snapshot captures everything ApplyAction mutates, so a Tac card can
// undo exactly the preceding move.
type snapshot struct {
	balls  [4]BitBoard
	homes  [4]Home
	fresh  [4]bool
	hands  [4]Hand
	player Color
	move   TacMove
}

// Board is the authoritative, fully-observable game state: ring
// positions, home tracks, hands, and the shared deck. Board holds every
// hand; what an observer believes about the hands hidden from them is
// carried by the caller's Knowledge, and Board.Redetermine resamples
// those hands consistent with a given Knowledge.
type Board struct {
	balls    [4]BitBoard
	homes    [4]Home
	fresh    [4]bool // true if the color's active ball has not left its entry square
	outside  [4]uint8
	player   Color
	hands    [4]Hand
	deck     *Deck
	discard  bool // true: next player(s) must discard (an Eight suspended play)
	traded   [4]*Card
	oneOr13  [4]bool
	moveNo   int
	prevSnap *snapshot
}

// NewBoard deals a fresh round and returns a board with play starting
// at Black.
func NewBoard(r rng) *Board {
	b := &Board{deck: NewDeck(), player: Black}
	for c := range b.outside {
		b.outside[c] = ballsPerColor
	}
	hands := b.deck.Deal(r)
	b.hands = hands
	for c := Black; c <= Red; c++ {
		b.oneOr13[c] = b.hands[c].Has(One) || b.hands[c].Has(Thirteen)
	}
	return b
}

// Clone returns an independent deep copy, as required by the engine's
// Game contract (game.State.Fork, see adapter.go).
func (b *Board) Clone() *Board {
	cp := *b
	for i, h := range b.hands {
		cp.hands[i] = h.Clone()
	}
	cp.deck = &Deck{cards: append([]Card(nil), b.deck.cards...)}
	cp.prevSnap = nil // undo history does not survive a clone boundary
	return &cp
}

// CurrentPlayer returns the seat to move.
func (b *Board) CurrentPlayer() Color { return b.player }

// MoveNumber returns the count of moves applied so far.
func (b *Board) MoveNumber() int { return b.moveNo }

// PlayFor redirects to a seat's partner once the seat's own home is
// full, matching the rule that a full home can no longer receive
// cards on its own behalf.
func (b *Board) PlayFor(c Color) Color {
	if b.homes[c].IsFull() {
		return c.Partner()
	}
	return c
}

// ForceDiscard reports whether the current player must discard rather
// than play normally (a prior Eight suspended ordinary play).
func (b *Board) ForceDiscard() bool { return b.discard }

// BallsWith returns the bitboard of c's balls currently on the ring.
func (b *Board) BallsWith(c Color) BitBoard { return b.balls[c] }

// AllBalls returns the union of every seat's on-ring balls.
func (b *Board) AllBalls() BitBoard {
	return b.balls[Black] | b.balls[Blue] | b.balls[Green] | b.balls[Red]
}

// Home returns c's home track.
func (b *Board) Home(c Color) Home { return b.homes[c] }

// NumOutside returns how many of c's balls have not yet entered play.
func (b *Board) NumOutside(c Color) int { return int(b.outside[c]) }

// ColorOn returns the seat owning a ball on s, if any.
func (b *Board) ColorOn(s Square) (Color, bool) {
	for c := Black; c <= Red; c++ {
		if b.balls[c].Has(s) {
			return c, true
		}
	}
	return 0, false
}

// Fresh reports whether c's active ball still sits untouched on its
// entry square.
func (b *Board) Fresh(c Color) bool { return b.fresh[c] }

// CanMove reports whether a ball may travel from..to, in either
// direction (the Four-backwards card uses it too). A move
// is blocked only by landing on one of the mover's own balls; passing
// over any ball (own or foreign) along the way is always allowed,
// since captures happen by landing, not by passing through.
func (b *Board) CanMove(from, to Square, player Color) bool {
	if owner, ok := b.ColorOn(to); ok && owner == player {
		return false
	}
	return true
}

// DistanceToNext returns the forward distance from m to the next ball
// of any color ahead of it on the ring, or 64 if m is alone.
func (b *Board) DistanceToNext(m Square) Square {
	others := b.AllBalls().Without(m)
	if others.IsEmpty() {
		return 64
	}
	rotated := others.RotateRight(uint8(m))
	next, _ := rotated.NextSquare()
	return next
}

// PutBallInPlay enters one of player's outside balls onto its entry
// square, capturing any foreign ball already sitting there.
func (b *Board) PutBallInPlay(player Color) {
	if b.outside[player] == 0 {
		return
	}
	entry := player.Home()
	if owner, ok := b.ColorOn(entry); ok && owner != player {
		b.capture(owner, entry)
	}
	b.balls[player] = b.balls[player].With(entry)
	b.outside[player]--
	b.fresh[player] = true
}

// capture removes victim's ball at s and returns it to their outside
// pool.
func (b *Board) capture(victim Color, s Square) {
	b.balls[victim] = b.balls[victim].Without(s)
	b.outside[victim]++
}

// MoveBall relocates player's ball from..to, capturing whatever sits
// on the destination. Squares passed over are not touched; only the
// Seven tramples (see TrampleBall).
func (b *Board) MoveBall(from, to Square, player Color) {
	if from != to {
		b.fresh[player] = false
	}
	if owner, ok := b.ColorOn(to); ok {
		b.capture(owner, to)
	}
	b.balls[player] = b.balls[player].Without(from).With(to)
}

// TrampleBall steps player's ball forward from..to one square at a
// time, capturing every ball found along the way, the destination
// included. Self-capture is allowed: a trampled own ball goes back to
// the outside pool before the stepping ball continues.
func (b *Board) TrampleBall(from, to Square, player Color) {
	if from != to {
		b.fresh[player] = false
	}
	dist := from.DistanceTo(to)
	cur := from
	for i := Square(0); i < dist; i++ {
		cur = cur.Add(1)
		if owner, ok := b.ColorOn(cur); ok {
			b.capture(owner, cur)
		}
	}
	b.balls[player] = b.balls[player].Without(from).With(to)
}

// MoveBallToGoal enters a ball into home slot `slot`.
func (b *Board) MoveBallToGoal(from Square, player Color, slot uint8) {
	b.balls[player] = b.balls[player].Without(from)
	b.homes[player] |= Home(1 << slot)
}

// MoveBallInGoal shuffles a ball already in home from one slot to
// another.
func (b *Board) MoveBallInGoal(player Color, fromSlot, toSlot uint8) {
	b.homes[player] = b.homes[player] &^ Home(1<<fromSlot) | Home(1<<toSlot)
}

// SwapBalls exchanges the occupants of two ring squares (the Trickster
// card), capturing neither.
func (b *Board) SwapBalls(s1, s2 Square) {
	c1, ok1 := b.ColorOn(s1)
	c2, ok2 := b.ColorOn(s2)
	if ok1 {
		b.balls[c1] = b.balls[c1].Without(s1)
	}
	if ok2 {
		b.balls[c2] = b.balls[c2].Without(s2)
	}
	if ok1 {
		b.balls[c1] = b.balls[c1].With(s2)
	}
	if ok2 {
		b.balls[c2] = b.balls[c2].With(s1)
	}
}

// Won reports whether player's partnership has filled both homes.
func (b *Board) Won(player Color) bool {
	return b.homes[player].IsFull() && b.homes[player.Partner()].IsFull()
}

// Terminal implements the engine's Game contract: the game ends when
// either partnership has filled both homes.
func (b *Board) Terminal() (bool, Color) {
	if b.Won(Black) {
		return true, Black
	}
	if b.Won(Blue) {
		return true, Blue
	}
	return false, 0
}

// Trade records player's face-down card for their partner at the start
// of a round.
func (b *Board) Trade(player Color, card Card) error {
	if !b.hands[player].Has(card) {
		return errors.Errorf("tac: player %v cannot trade a card they do not hold", player)
	}
	b.hands[player] = b.hands[player].Remove(card)
	b.traded[player] = &card
	return nil
}

// TakeTraded delivers every pending traded card to its partner, once
// all four trades have been placed.
func (b *Board) TakeTraded() error {
	for c := Black; c <= Red; c++ {
		if b.traded[c] == nil {
			return errors.New("tac: not every seat has traded yet")
		}
	}
	for c := Black; c <= Red; c++ {
		card := *b.traded[c]
		b.hands[c.Partner()] = append(b.hands[c.Partner()], card)
		b.traded[c] = nil
	}
	return nil
}

// TacUndo reverts the single most recently applied move, the effect of
// playing a Tac card.
func (b *Board) TacUndo() error {
	if b.prevSnap == nil {
		return errors.New("tac: no move to undo")
	}
	s := b.prevSnap
	b.balls = s.balls
	b.homes = s.homes
	b.fresh = s.fresh
	b.hands = s.hands
	b.player = s.player
	b.prevSnap = nil
	return nil
}

func (b *Board) snapshotBefore(mv TacMove) {
	s := &snapshot{balls: b.balls, homes: b.homes, fresh: b.fresh, player: b.player, move: mv}
	for i, h := range b.hands {
		s.hands[i] = h.Clone()
	}
	b.prevSnap = s
}

// MakeMove applies mv for the current player, discarding the card
// played and advancing the turn, matching the engine's Game contract
// (game.State.Advance, see adapter.go).
func (b *Board) MakeMove(mv TacMove) {
	actor := b.player
	if mv.Action.Kind == ActionTacUndo {
		// The Tac card reverts the previous move's board effect; the
		// undone card itself stays spent.
		if s := b.prevSnap; s != nil {
			b.balls = s.balls
			b.homes = s.homes
			b.fresh = s.fresh
		}
		b.hands[actor] = b.hands[actor].Remove(Tac)
		b.prevSnap = nil
		b.moveNo++
		b.player = b.player.Next()
		return
	}
	if mv.Action.Kind == ActionTrade {
		// Trade removes the card itself and parks it face-down.
		_ = b.Trade(actor, mv.Card)
		b.moveNo++
		b.player = b.player.Next()
		return
	}
	b.snapshotBefore(mv)
	target := b.PlayFor(actor)
	b.hands[actor] = b.hands[actor].Remove(mv.Card)
	b.applyAction(mv, actor, target)
	b.moveNo++
	b.player = b.player.Next()
}

func (b *Board) applyAction(mv TacMove, actor, target Color) {
	a := mv.Action
	switch a.Kind {
	case ActionEnter:
		b.PutBallInPlay(target)
	case ActionAngelEnter:
		b.PutBallInPlay(target.Next())
	case ActionStep:
		b.MoveBall(a.From, a.To, target)
	case ActionStepHome:
		b.MoveBallToGoal(a.From, target, a.HomeTo)
	case ActionStepInHome:
		b.MoveBallInGoal(target, a.HomeFrom, a.HomeTo)
	case ActionSwitch:
		b.SwapBalls(a.Target1, a.Target2)
	case ActionWarrior:
		b.MoveBall(a.From, a.To, target)
	case ActionSuspend:
		b.discard = true
	case ActionDiscard:
		b.discard = false
	case ActionJester:
		// Jester only swaps turn order for the round; Board records it by
		// leaving positions untouched, the caller's manager handles the
		// seat-order bookkeeping outside of ring/home state.
	case ActionDevil:
		// Devil's steal-a-move is orchestrated by the caller replaying a
		// chosen opponent's card; Board only records that it was played.
	case ActionSevenSteps:
		b.applySevenSteps(a.Steps, actor, target)
	}
}

func (b *Board) applySevenSteps(steps []SevenStep, actor, target Color) {
	mover := target
	for _, st := range steps {
		if st.PartnerSplit {
			mover = target.Partner()
		}
		if st.InHome {
			b.MoveBallInGoal(mover, st.HomeFrom, st.HomeSlot)
			continue
		}
		if st.ToHome {
			entry := st.Ball.Add(uint8(st.Ball.DistanceToHome(mover)))
			b.TrampleBall(st.Ball, entry, mover)
			b.MoveBallToGoal(entry, mover, st.HomeSlot)
			continue
		}
		to := st.Ball.Add(st.Units)
		b.TrampleBall(st.Ball, to, mover)
	}
}

// String renders the ring and the per-seat home/outside tallies, for
// logs and the bench command.
func (b *Board) String() string {
	symbols := [4]byte{'B', 'U', 'G', 'R'}
	var sb strings.Builder
	for s := Square(0); s < 64; s++ {
		if c, ok := b.ColorOn(s); ok {
			sb.WriteByte(symbols[c])
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte('\n')
	for c := Black; c <= Red; c++ {
		fmt.Fprintf(&sb, "%v home=%04b out=%d hand=%d  ",
			c, uint8(b.homes[c]), b.outside[c], len(b.hands[c]))
	}
	return sb.String()
}

// LegalMoves enumerates every move the current player may make with
// their hand, implementing the engine's Game contract.
func (b *Board) LegalMoves() []TacMove {
	actor := b.player
	return b.movesForHand(actor, b.hands[actor])
}

// Redetermine resamples the hidden hands consistent with observer's
// knowledge k: the observer's own hand is preserved, every opponent
// hand is pushed back into a scratch pool, Exact-quantified cards are
// assigned first, and the rest is drawn under rejection sampling
// against the knowledge's bounds. The bounds are enforced cumulatively
// across the whole redetermination: each draw spends from a mutable
// per-opponent allowance, so an AtMost(n) belief caps the resampled
// hand at n copies total, not just per draw.
func (b *Board) Redetermine(observer Color, k *Knowledge, r rng) {
	const maxRetries = 200
	scratch := NewDeck()
	scratch.cards = scratch.cards[:0]
	needed := [4]int{}
	// allowance[c][card] counts how many more copies c's hand may still
	// receive; unboundedAllowance means the belief puts no cap on it.
	var allowance [4][NumCards]int
	for c := Black; c <= Red; c++ {
		if c == observer {
			continue
		}
		for _, card := range Cards {
			allowance[c][card] = k.allowedCount(card, c)
		}
		for _, card := range b.hands[c] {
			scratch.Push(card)
		}
		needed[c] = len(b.hands[c])
		b.hands[c] = nil
	}
	// Exact-quantified cards are assigned first and removed from the
	// pool so rejection sampling below only has to deal with bounds.
	for c := Black; c <= Red; c++ {
		if c == observer {
			continue
		}
		for _, card := range Cards {
			n := k.exactCount(card, c)
			for i := 0; i < n && needed[c] > 0; i++ {
				taken := scratch.TakeAll(func(x Card) bool { return x == card })
				if len(taken) == 0 {
					continue
				}
				b.hands[c] = append(b.hands[c], taken[0])
				for _, extra := range taken[1:] {
					scratch.Push(extra)
				}
				needed[c]--
				if allowance[c][card] > 0 {
					allowance[c][card]--
				}
			}
		}
	}
	scratch.Shuffle(r)
	for c := Black; c <= Red; c++ {
		if c == observer {
			continue
		}
		for needed[c] > 0 {
			assigned := false
			for retry := 0; retry < maxRetries && scratch.Len() > 0; retry++ {
				card, ok := scratch.Draw()
				if !ok {
					break
				}
				if allowance[c][card] == 0 {
					scratch.Push(card)
					scratch.Shuffle(r)
					continue
				}
				b.hands[c] = append(b.hands[c], card)
				if allowance[c][card] > 0 {
					allowance[c][card]--
				}
				needed[c]--
				assigned = true
				break
			}
			if !assigned {
				// Fall back to a greedy best fit rather than loop forever:
				// the first pooled card c may still hold is drawn; only when
				// none fits is a card drawn regardless of the bounds.
				for i, card := range scratch.cards {
					if allowance[c][card] != 0 {
						last := len(scratch.cards) - 1
						scratch.cards[i], scratch.cards[last] = scratch.cards[last], scratch.cards[i]
						break
					}
				}
				if card, ok := scratch.Draw(); ok {
					b.hands[c] = append(b.hands[c], card)
					if allowance[c][card] > 0 {
						allowance[c][card]--
					}
					needed[c]--
				} else {
					break
				}
			}
		}
	}
}

func (k *Knowledge) exactCount(card Card, player Color) int {
	b := k.hands[k.idx(player)][card]
	if b.kind == beliefExact {
		return int(b.n)
	}
	return 0
}

// unboundedAllowance marks a card kind the belief puts no cap on.
const unboundedAllowance = -1

// allowedCount returns how many copies of card player's hand may hold
// under k, or unboundedAllowance when the belief is Unknown.
func (k *Knowledge) allowedCount(card Card, player Color) int {
	b := k.hands[k.idx(player)][card]
	switch b.kind {
	case beliefExact, beliefAtMost:
		return int(b.n)
	default:
		return unboundedAllowance
	}
}

func (k *Knowledge) violates(card Card, player Color) bool {
	return k.allowedCount(card, player) == 0
}

// NewKnowledgeFor returns the initial belief an observer holds given
// the current hands, announcing One/Thirteen ownership the way an
// opening round would.
func (b *Board) NewKnowledgeFor(observer Color) *Knowledge {
	k := NewKnowledge(observer)
	var announce [3]bool
	for c := Black; c <= Red; c++ {
		if c == observer {
			continue
		}
		announce[observer.Between(c)-1] = b.oneOr13[c]
	}
	k.SetAnnounce(announce)
	return k
}

// UpdateKnowledge folds the observation of mv played in pre-move state
// b into k, returning the updated belief. It is a pure function of
// (b, mv, k): b must be the state *before* mv was applied.
func (b *Board) UpdateKnowledge(mv TacMove, k *Knowledge) *Knowledge {
	next := k.Clone()
	next.UpdateAfterMove(mv, b)
	return next
}
