package tac

// Table-driven move generation for every card except the Seven, whose
// combinatorial enumeration lives in seven.go.

// homeMovesForCard returns the home-track-only moves card can make
// given home's current occupancy, for the simple step cards that can
// move a ball already inside home (One/Two/Three).
func homeMovesForCard(home Home, card Card) []TacMove {
	if home.IsLocked() {
		return nil
	}
	var moves []TacMove
	switch card {
	case One:
		switch home {
		case 0b0001, 0b1001, 0b1101:
			moves = append(moves, newStepInHome(card, 0, 1))
		case 0b0010, 0b1010, 0b0011, 0b1011:
			moves = append(moves, newStepInHome(card, 1, 2))
		case 0b0100, 0b0110, 0b0111:
			moves = append(moves, newStepInHome(card, 2, 3))
		case 0b0101:
			moves = append(moves, newStepInHome(card, 0, 1), newStepInHome(card, 2, 3))
		}
	case Two:
		switch home {
		case 0b0001, 0b1001:
			moves = append(moves, newStepInHome(card, 0, 2))
		case 0b0010, 0b0011:
			moves = append(moves, newStepInHome(card, 1, 3))
		}
	case Three:
		if home == 0b0001 {
			moves = append(moves, newStepInHome(card, 0, 3))
		}
	}
	return moves
}

// movesForHand enumerates every legal move for player holding hand,
// the Go port of Board::get_moves.
func (b *Board) movesForHand(player Color, hand Hand) []TacMove {
	var moves []TacMove
	balls := b.BallsWith(player)
	seen := map[Card]bool{}
	for _, card := range hand {
		if seen[card] {
			continue
		}
		seen[card] = true

		if b.ForceDiscard() {
			if card == Tac {
				moves = append(moves, TacMove{Card: Tac, Action: TacAction{Kind: ActionSuspend}})
			}
			moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionDiscard}})
			continue
		}

		if (card == One || card == Thirteen) && b.NumOutside(player) > 0 {
			moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionEnter}})
		}
		if card == Jester {
			moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionJester}})
		}
		if card == Devil {
			moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionDevil}})
		}
		if card == Angel {
			if b.NumOutside(player.Next()) > 0 {
				moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionAngelEnter}})
			} else {
				for _, ball := range b.BallsWith(player.Next()).Squares() {
					moves = append(moves, b.movesForCard(ball, player.Next(), One)...)
					moves = append(moves, b.movesForCard(ball, player.Next(), Thirteen)...)
				}
			}
		}
		if card == Tac {
			moves = append(moves, b.handleTac(player)...)
		}
		if card == Seven {
			moves = append(moves, b.SevenMoves(player)...)
		}

		for _, hm := range homeMovesForCard(b.Home(player), card) {
			moves = append(moves, hm)
		}

		if !balls.IsEmpty() {
			switch card {
			case Trickster:
				moves = append(moves, b.SwitchingMoves()...)
			case Eight:
				moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionSuspend}})
			default:
				for _, ball := range balls.Squares() {
					moves = append(moves, b.movesForCard(ball, player, card)...)
				}
			}
		}
	}

	// A hand with no playable card must discard one instead; the
	// voluntary discard is itself an observation the opponents'
	// knowledge tracking feeds on.
	if len(moves) == 0 {
		for card := range seen {
			moves = append(moves, TacMove{Card: card, Action: TacAction{Kind: ActionDiscard}})
		}
	}
	return moves
}

// movesForCard returns the ring moves available for a single ball with
// a single card, including a direct entry into the home track when the
// step count reaches it, ignoring hand-wide cards.
func (b *Board) movesForCard(start Square, player Color, card Card) []TacMove {
	var moves []TacMove
	if amount, ok := card.IsSimple(); ok {
		to := start.Add(amount)
		if b.CanMove(start, to, player) {
			moves = append(moves, newStep(card, start, to))
		}
		if slot, ok := b.homeEntrySlot(start, player, amount); ok {
			moves = append(moves, newStepHome(card, start, slot))
		}
	}
	switch card {
	case Four:
		to := start.Add(60) // 60 == -4 mod 64: Four steps backward only
		if b.CanMove(start, to, player) {
			moves = append(moves, newStep(card, start, to))
		}
	case Warrior:
		moves = append(moves, newStep(card, start, b.WarriorTarget(start, player)))
	}
	return moves
}

// homeEntrySlot reports the home slot a ball at start would settle in
// when stepping amount units, if that entry is legal: home entry costs
// distance-to-entry + 1 + slot units, the slot and every slot below it
// must be free, and a fresh ball must complete its lap first.
func (b *Board) homeEntrySlot(start Square, player Color, amount uint8) (uint8, bool) {
	if b.Fresh(player) && start == player.Home() {
		return 0, false
	}
	dist := uint8(start.DistanceToHome(player))
	if amount <= dist {
		return 0, false
	}
	slot := amount - dist - 1
	if slot > 3 {
		return 0, false
	}
	home := b.Home(player)
	for i := uint8(0); i <= slot; i++ {
		if home&(1<<i) != 0 {
			return 0, false
		}
	}
	return slot, true
}

// SwitchingMoves returns every unordered pair of on-ring balls a
// Trickster card may swap.
func (b *Board) SwitchingMoves() []TacMove {
	all := b.AllBalls().Squares()
	var moves []TacMove
	for i, s1 := range all {
		for _, s2 := range all[i+1:] {
			moves = append(moves, TacMove{Card: Trickster, Action: TacAction{Kind: ActionSwitch, Target1: s1, Target2: s2}})
		}
	}
	return moves
}

// WarriorTarget returns the square a Warrior card sends start's ball
// to: the next ball ahead on the ring, or start itself if it is the
// only ball in play.
func (b *Board) WarriorTarget(start Square, player Color) Square {
	others := b.AllBalls().Without(start)
	if others.IsEmpty() {
		return start
	}
	rotated := others.RotateRight(uint8(start))
	next, _ := rotated.NextSquare()
	return start.Add(uint8(next))
}

// handleTac returns the Tac-undo move, available whenever a previous
// move exists to undo.
func (b *Board) handleTac(player Color) []TacMove {
	if b.prevSnap == nil {
		return nil
	}
	return []TacMove{{Card: Tac, Action: TacAction{Kind: ActionTacUndo}}}
}
