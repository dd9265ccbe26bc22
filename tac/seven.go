package tac

// The seven card splits exactly 7 step units across the player's balls.
// The budget is partitioned into an in-home share (spent shuffling
// balls already inside the home track) and a board share (spent on ring
// steps and entries into home); every partition is enumerated and the
// board share is distributed across the ring balls by closed-form
// composition loops.

// SevenMoves enumerates every distinct legal plan spending exactly 7
// units for player, including partial entries into home and one-level
// partner assistance once the player has no material of their own left
// to move.
func (b *Board) SevenMoves(player Color) []TacMove {
	target := b.PlayFor(player)
	balls := b.BallsWith(target).Squares()
	home := b.Home(target)

	if len(balls) == 0 {
		var moves []TacMove
		for _, seq := range homeShuffleMoves(home, 7) {
			moves = append(moves, sevenMove(seq))
		}
		return moves
	}

	var moves []TacMove
	for homeBudget := uint8(0); homeBudget <= 7; homeBudget++ {
		boardBudget := 7 - homeBudget
		var shuffles [][]SevenStep
		if homeBudget == 0 {
			shuffles = [][]SevenStep{nil}
		} else {
			shuffles = homeShuffleMoves(home, homeBudget)
		}
		for _, shuffle := range shuffles {
			occupied := homeAfterShuffle(home, shuffle)
			for _, plan := range b.boardPlans(balls, target, occupied, boardBudget, true) {
				steps := append(append([]SevenStep(nil), shuffle...), plan...)
				if len(steps) == 0 {
					continue
				}
				moves = append(moves, sevenMove(steps))
			}
		}
	}
	return moves
}

func sevenMove(steps []SevenStep) TacMove {
	return TacMove{Card: Seven, Action: TacAction{Kind: ActionSevenSteps, Steps: steps}}
}

// boardPlans returns every way to spend exactly budget units on the
// ring: plain step distributions, plus plans where one or two balls
// enter the home track. allowPartner permits a one-level handoff of
// leftover budget to the partner's balls once no own ring ball
// survives.
func (b *Board) boardPlans(balls []Square, player Color, home Home, budget uint8, allowPartner bool) [][]SevenStep {
	if budget == 0 {
		return [][]SevenStep{nil}
	}
	var plans [][]SevenStep

	for _, dist := range distributeBudget(len(balls), budget) {
		if steps := ringSteps(balls, dist); steps != nil {
			plans = append(plans, steps)
		}
	}

	free := openHomeSlots(home)
	for i, ball := range balls {
		if !b.canEnterHome(ball, player) {
			continue
		}
		d1 := uint16(ball.DistanceToHome(player))
		for _, slot := range free {
			if !entryPathClear(home, slot) {
				continue
			}
			base := d1 + 1 + uint16(slot)
			if base > uint16(budget) {
				continue
			}
			rem := uint8(uint16(budget) - base)
			entry := SevenStep{Ball: ball, ToHome: true, HomeSlot: slot}
			survivors := removeAt(balls, i)
			plans = append(plans, b.entryPlans(entry, survivors, player, home, slot, rem, allowPartner)...)
		}
	}
	return plans
}

// entryPlans completes a single-entry plan: the remainder goes to the
// surviving ring balls, to a second entering ball, or — when nothing
// of the player's own survives — to the partner tail.
func (b *Board) entryPlans(entry SevenStep, survivors []Square, player Color, home Home, usedSlot uint8, rem uint8, allowPartner bool) [][]SevenStep {
	var plans [][]SevenStep
	if len(survivors) == 0 {
		for _, tail := range b.remainderTails(player, rem, allowPartner) {
			plans = append(plans, append([]SevenStep{entry}, tail...))
		}
		return plans
	}
	for _, dist := range distributeBudget(len(survivors), rem) {
		steps := ringSteps(survivors, dist)
		plans = append(plans, append([]SevenStep{entry}, steps...))
	}
	for j, ball := range survivors {
		if !b.canEnterHome(ball, player) {
			continue
		}
		d2 := uint16(ball.DistanceToHome(player))
		for _, slot := range openHomeSlots(home) {
			if slot == usedSlot || !entryPathClear(home.With(usedSlot), slot) {
				continue
			}
			base := d2 + 1 + uint16(slot)
			if base > uint16(rem) {
				continue
			}
			rem2 := uint8(uint16(rem) - base)
			second := SevenStep{Ball: ball, ToHome: true, HomeSlot: slot}
			rest := removeAt(survivors, j)
			if len(rest) == 0 {
				for _, tail := range b.remainderTails(player, rem2, allowPartner) {
					plans = append(plans, append([]SevenStep{entry, second}, tail...))
				}
				continue
			}
			for _, dist := range distributeBudget(len(rest), rem2) {
				steps := ringSteps(rest, dist)
				plans = append(plans, append([]SevenStep{entry, second}, steps...))
			}
		}
	}
	return plans
}

// remainderTails spends budget left over after the player's last ring
// ball entered home. An even remainder may be wasted with back-and-
// forth motion (the cheapest non-productive move costs 2 units); the
// remainder may instead switch to the partner's balls, exactly one
// recursion level deep, but only once every one of the player's own
// balls is out of base — with balls still waiting outside, the
// leftover stays the player's to waste.
func (b *Board) remainderTails(player Color, rem uint8, allowPartner bool) [][]SevenStep {
	if rem == 0 {
		return [][]SevenStep{nil}
	}
	var tails [][]SevenStep
	if rem%2 == 0 {
		tails = append(tails, nil)
	}
	if !allowPartner || b.NumOutside(player) != 0 {
		return tails
	}
	partner := player.Partner()
	pballs := b.BallsWith(partner).Squares()
	if len(pballs) == 0 {
		return tails
	}
	for _, plan := range b.boardPlans(pballs, partner, b.Home(partner), rem, false) {
		if len(plan) == 0 {
			continue
		}
		marked := make([]SevenStep, len(plan))
		for i, st := range plan {
			st.PartnerSplit = true
			marked[i] = st
		}
		tails = append(tails, marked)
	}
	return tails
}

// canEnterHome reports whether a ball may enter the home track at all:
// a fresh ball sitting on its entry square must complete its lap first.
func (b *Board) canEnterHome(ball Square, player Color) bool {
	return !(b.Fresh(player) && ball == player.Home())
}

// entryPathClear reports whether slot can be reached from the entrance:
// every shallower slot must be empty, since home moves past occupied
// slots are illegal.
func entryPathClear(home Home, slot uint8) bool {
	for i := uint8(0); i <= slot; i++ {
		if home&(1<<i) != 0 {
			return false
		}
	}
	return true
}

// With returns home with slot occupied.
func (h Home) With(slot uint8) Home {
	return h | Home(1<<slot)
}

// ringSteps materializes a budget distribution over balls, dropping
// zero-unit legs. A nil result means the distribution moves nothing.
func ringSteps(balls []Square, dist []uint8) []SevenStep {
	var steps []SevenStep
	for i, ball := range balls {
		if dist[i] == 0 {
			continue
		}
		steps = append(steps, SevenStep{Ball: ball, Units: dist[i]})
	}
	return steps
}

// homeAfterShuffle applies a shuffle sequence's slot motion to home so
// later entry checks see the post-shuffle occupancy.
func homeAfterShuffle(home Home, shuffle []SevenStep) Home {
	for _, st := range shuffle {
		home = home&^Home(1<<st.HomeFrom) | Home(1<<st.HomeSlot)
	}
	return home
}

func inHome(from, to uint8) SevenStep {
	return SevenStep{InHome: true, HomeFrom: from, HomeSlot: to}
}

// homeShuffleMoves returns every sequence of in-home shuffles that can
// consume exactly budget units, as a fixed table keyed by the home's
// occupancy pattern and the parity of the budget: a ball can burn an
// even surplus with a back-and-forth, so only the parity and a few
// small-budget guards distinguish the cases.
func homeShuffleMoves(home Home, budget uint8) [][]SevenStep {
	if budget == 0 || home.IsLocked() || home.IsEmpty() {
		return nil
	}
	even := budget%2 == 0
	var out [][]SevenStep
	add := func(steps ...SevenStep) {
		out = append(out, steps)
	}
	switch len(home.GetAllUnlocked()) {
	case 1:
		switch home {
		case 0b0001:
			if even {
				add(inHome(0, 2))
			} else {
				add(inHome(0, 1))
				if budget > 1 {
					add(inHome(0, 3))
				}
			}
		case 0b0010:
			if even {
				add(inHome(1, 3))
			} else {
				add(inHome(1, 0))
				add(inHome(1, 2))
			}
		case 0b0100:
			if even {
				add(inHome(2, 0))
			} else {
				add(inHome(2, 1))
				add(inHome(2, 3))
			}
		case 0b1001:
			if even {
				add(inHome(0, 2))
			} else {
				add(inHome(0, 1))
			}
		case 0b1010:
			if !even {
				add(inHome(1, 0))
				add(inHome(1, 2))
			}
		case 0b1101:
			if !even {
				add(inHome(0, 1))
			}
		}
	case 2:
		switch home {
		case 0b0110:
			if even {
				add(inHome(2, 3), inHome(1, 2))
				add(inHome(2, 3), inHome(1, 0))
				add(inHome(1, 0), inHome(2, 1))
			} else {
				add(inHome(2, 3))
				add(inHome(1, 0))
			}
		case 0b0101:
			if even {
				add(inHome(2, 3), inHome(0, 1))
			} else {
				add(inHome(0, 1))
				add(inHome(2, 3))
				add(inHome(2, 1))
				if budget > 1 {
					add(inHome(2, 3), inHome(0, 2))
				}
			}
		case 0b0011:
			if even {
				add(inHome(1, 3))
				add(inHome(1, 2), inHome(0, 1))
				if budget > 2 {
					add(inHome(1, 3), inHome(0, 2))
				}
			} else {
				add(inHome(1, 2))
				if budget > 1 {
					add(inHome(1, 3), inHome(0, 1))
				}
			}
		case 0b1011:
			if even {
				add(inHome(1, 2), inHome(0, 1))
			} else {
				add(inHome(1, 2))
			}
		}
	case 3:
		if even {
			add(inHome(2, 3), inHome(1, 2))
		} else {
			add(inHome(2, 3))
			if budget > 2 {
				add(inHome(2, 3), inHome(1, 2), inHome(0, 1))
			}
		}
	}
	return out
}

// openHomeSlots returns home's unoccupied slot indices in ascending
// (shallowest-first) order.
func openHomeSlots(home Home) []uint8 {
	var out []uint8
	for i := uint8(0); i < 4; i++ {
		if home&(1<<i) == 0 {
			out = append(out, i)
		}
	}
	return out
}

func removeAt(s []Square, i int) []Square {
	out := make([]Square, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// distributeBudget returns every way to split total units across n
// balls as a non-negative integer composition, using closed-form loops
// for the four possible ball counts rather than a general recursive
// partition routine.
func distributeBudget(n int, total uint8) [][]uint8 {
	switch n {
	case 0:
		if total == 0 {
			return [][]uint8{{}}
		}
		return nil
	case 1:
		return [][]uint8{{total}}
	case 2:
		out := make([][]uint8, 0, int(total)+1)
		for i := uint8(0); i <= total; i++ {
			out = append(out, []uint8{i, total - i})
		}
		return out
	case 3:
		var out [][]uint8
		for i := uint8(0); i <= total; i++ {
			for j := uint8(0); j <= total-i; j++ {
				out = append(out, []uint8{i, j, total - i - j})
			}
		}
		return out
	case 4:
		var out [][]uint8
		for i := uint8(0); i <= total; i++ {
			for j := uint8(0); j <= total-i; j++ {
				for k := uint8(0); k <= total-i-j; k++ {
					out = append(out, []uint8{i, j, k, total - i - j - k})
				}
			}
		}
		return out
	default:
		return nil
	}
}
