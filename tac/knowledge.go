package tac

// beliefKind is the three-valued lattice of what an observer knows
// about one opponent's count of one card kind.
type beliefKind uint8

const (
	beliefUnknown beliefKind = iota
	beliefAtMost
	beliefExact
)

type belief struct {
	kind beliefKind
	n    uint8
}

// Knowledge is one observer's belief about the three other seats'
// hands plus the public play history. It is the per-search, per-player
// belief state threaded through Board.Determinize and
// Board.UpdateKnowledge.
type Knowledge struct {
	observer Color
	hands    [3][NumCards]belief
	announce [3]bool
	history  [NumCards]uint8
}

// NewKnowledge returns the empty (all-Unknown) belief an observer
// holds at the very start of a round.
func NewKnowledge(observer Color) *Knowledge {
	return &Knowledge{observer: observer}
}

// Clone returns an independent copy, since each playout determinizes
// against its own copy of the root knowledge.
func (k *Knowledge) Clone() *Knowledge {
	cp := *k
	return &cp
}

func (k *Knowledge) idx(player Color) int {
	d := k.observer.Between(player)
	if d == 0 {
		panic("tac: knowledge has no opponent entry for the observer itself")
	}
	return d - 1
}

// SetAnnounce folds in the opening announcement each seat makes about
// holding a One or Thirteen, narrowing the corresponding beliefs.
// announce is indexed in turn-order-from-observer (0=next, 1=partner,
// 2=prev), matching idx's layout.
func (k *Knowledge) SetAnnounce(announce [3]bool) {
	k.announce = announce
	for i, hasOneThirteen := range announce {
		if i == 1 { // partner: observer can see partner's hand directly elsewhere;
			if !hasOneThirteen {
				k.hands[i][One] = belief{beliefExact, 0}
				k.hands[i][Thirteen] = belief{beliefExact, 0}
			}
			continue
		}
		if !hasOneThirteen {
			k.hands[i][One] = belief{beliefAtMost, 1}
			k.hands[i][Thirteen] = belief{beliefAtMost, 1}
		}
	}
}

// UpdateAfterMove folds the observation of mv, played from board state
// b (pre-move), into k. Moves by the observer themselves only feed the
// public history; there is no belief to narrow about a hand the
// observer can see.
func (k *Knowledge) UpdateAfterMove(mv TacMove, b *Board) {
	actor := b.CurrentPlayer()
	target := b.PlayFor(actor)
	k.UpdateWithCard(mv.Card)
	k.Sync()
	if actor == k.observer {
		return
	}
	if mv.Action.Kind == ActionDiscard && !b.ForceDiscard() {
		if b.BallsWith(target).IsEmpty() {
			k.discardedNoBallsInPlay(b, actor)
		} else {
			k.discardedBallsInPlay(b, actor, mv.Card)
		}
	}
}

// discardedNoBallsInPlay rules out every card that could have been
// played by a hand with no balls on the ring, since the actor chose to
// discard instead.
func (k *Knowledge) discardedNoBallsInPlay(b *Board, player Color) {
	home := b.Home(b.PlayFor(player))
	k.RuleOut(One, player)
	k.RuleOut(Thirteen, player)
	k.RuleOut(Devil, player)
	k.RuleOut(Jester, player)
	k.RuleOut(Angel, player)
	if !home.IsLocked() && !home.IsEmpty() {
		k.RuleOut(Seven, player)
		for _, c := range [...]Card{Two, Three} {
			if len(homeMovesForCard(home, c)) > 0 {
				k.RuleOut(c, player)
			}
		}
	}
}

// discardedBallsInPlay additionally rules out the simple step cards
// that could have captured or advanced a ball, measured by the gap to
// the nearest ball ahead.
func (k *Knowledge) discardedBallsInPlay(b *Board, player Color, card Card) {
	k.discardedNoBallsInPlay(b, player)
	if _, simple := card.IsSimple(); !simple {
		return
	}
	ours := b.BallsWith(player)
	all := b.AllBalls()
	var maxGap uint8
	for _, ball := range ours.Squares() {
		others := all.Without(ball)
		rotated := others.RotateRight(uint8(ball))
		if next, ok := rotated.NextSquare(); ok && uint8(next) > maxGap {
			maxGap = uint8(next)
		}
	}
	for steps := uint8(1); steps < maxGap; steps++ {
		if c, ok := FromSteps(steps); ok {
			k.RuleOut(c, player)
		}
	}
}

// KnownCards returns the cards k is certain player holds.
func (k *Knowledge) KnownCards(player Color) []Card {
	var out []Card
	for _, c := range Cards {
		b := k.hands[k.idx(player)][c]
		if b.kind == beliefExact {
			for i := uint8(0); i < b.n; i++ {
				out = append(out, c)
			}
		}
	}
	return out
}

// RuleOut records that player holds zero of card.
func (k *Knowledge) RuleOut(card Card, player Color) {
	k.hands[k.idx(player)][card] = belief{beliefExact, 0}
}

// MakeExact collapses an AtMost bound into an Exact one once the exact
// count becomes known by other means; Unknown is left untouched.
func (k *Knowledge) MakeExact(card Card, player Color) {
	b := &k.hands[k.idx(player)][card]
	if b.kind == beliefUnknown {
		return
	}
	b.kind = beliefExact
}

// SetExact directly records that player holds exactly amount of card.
func (k *Knowledge) SetExact(card Card, player Color, amount uint8) {
	k.hands[k.idx(player)][card] = belief{beliefExact, amount}
}

// UpdateWithCard records one more public sighting of card.
func (k *Knowledge) UpdateWithCard(card Card) {
	k.history[card]++
}

// UpdateWithHand records every card in hand as publicly sighted, used
// when a hand's contents are revealed outright (e.g. a trade reveal).
func (k *Knowledge) UpdateWithHand(hand Hand) {
	for _, c := range hand {
		k.history[c]++
	}
}

// Sync zeroes out every opponent's belief for any card kind whose
// public count has been exhausted.
func (k *Knowledge) Sync() {
	for _, c := range Cards {
		if !k.Possible(c) {
			for i := range k.hands {
				k.hands[i][c] = belief{beliefExact, 0}
			}
		}
	}
}

// Possible reports whether any copy of card could remain undealt or
// unplayed, based on the public history count.
func (k *Knowledge) Possible(card Card) bool {
	return k.history[card] < card.Amount()
}

// Reset clears all beliefs and history, used between rounds.
func (k *Knowledge) Reset() {
	k.hands = [3][NumCards]belief{}
	k.history = [NumCards]uint8{}
}
