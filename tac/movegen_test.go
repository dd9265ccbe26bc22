package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterMoves(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.outside[Black] = 4
	b.hands[Black] = Hand{One, Thirteen, Two}

	moves := b.LegalMoves()

	assert.Contains(t, moves, TacMove{Card: One, Action: TacAction{Kind: ActionEnter}})
	assert.Contains(t, moves, TacMove{Card: Thirteen, Action: TacAction{Kind: ActionEnter}})
	// A Two cannot enter and there is no ball to step: it contributes
	// nothing.
	for _, mv := range moves {
		assert.NotEqual(t, Two, mv.Card)
	}
}

func TestForcedDiscardMoves(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black, discard: true}
	b.balls[Black] = Square(10).Bitboard()
	b.hands[Black] = Hand{Two, Tac}

	moves := b.LegalMoves()

	assert.Contains(t, moves, TacMove{Card: Two, Action: TacAction{Kind: ActionDiscard}})
	assert.Contains(t, moves, TacMove{Card: Tac, Action: TacAction{Kind: ActionDiscard}})
	assert.Contains(t, moves, TacMove{Card: Tac, Action: TacAction{Kind: ActionSuspend}})
	for _, mv := range moves {
		assert.NotEqual(t, ActionStep, mv.Action.Kind)
	}
}

func TestNoPlayableCardFallsBackToDiscard(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.hands[Black] = Hand{Two, Two, Five}

	moves := b.LegalMoves()

	require.Len(t, moves, 2) // one discard per distinct card kind
	for _, mv := range moves {
		assert.Equal(t, ActionDiscard, mv.Action.Kind)
	}
}

func TestSimpleStepBlockedByOwnBall(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.balls[Black] = Square(10).Bitboard() | Square(12).Bitboard()
	b.hands[Black] = Hand{Two}

	moves := b.LegalMoves()

	// 10 -> 12 lands on an own ball and is illegal; 12 -> 14 is fine.
	assert.NotContains(t, moves, newStep(Two, 10, 12))
	assert.Contains(t, moves, newStep(Two, 12, 14))
}

func TestFourStepsBackward(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.balls[Black] = Square(10).Bitboard()
	b.hands[Black] = Hand{Four}

	moves := b.LegalMoves()

	assert.Contains(t, moves, newStep(Four, 10, 6))
}

func TestWarriorTargetsNextBall(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.balls[Black] = Square(10).Bitboard()
	b.balls[Blue] = Square(25).Bitboard()
	b.hands[Black] = Hand{Warrior}

	moves := b.LegalMoves()
	require.Contains(t, moves, newStep(Warrior, 10, 25))

	b.MakeMove(newStep(Warrior, 10, 25))
	assert.True(t, b.BallsWith(Black).Has(Square(25)))
	assert.Equal(t, 1, b.NumOutside(Blue))
}

func TestTricksterSwitchingMoves(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.balls[Black] = Square(10).Bitboard()
	b.balls[Blue] = Square(20).Bitboard()
	b.balls[Green] = Square(30).Bitboard()
	b.hands[Black] = Hand{Trickster}

	moves := b.LegalMoves()

	// Three balls yield three unordered pairs.
	require.Len(t, moves, 3)
	for _, mv := range moves {
		assert.Equal(t, ActionSwitch, mv.Action.Kind)
		assert.Equal(t, Trickster, mv.Card)
	}
}

func TestEightSuspends(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.balls[Black] = Square(10).Bitboard()
	b.hands[Black] = Hand{Eight}

	moves := b.LegalMoves()
	suspend := TacMove{Card: Eight, Action: TacAction{Kind: ActionSuspend}}
	require.Contains(t, moves, suspend)

	b.MakeMove(suspend)
	assert.True(t, b.ForceDiscard())
}

func TestHomeMovesForCardTable(t *testing.T) {
	assert.Len(t, homeMovesForCard(0b0001, One), 1)
	assert.Len(t, homeMovesForCard(0b0101, One), 2)
	assert.Len(t, homeMovesForCard(0b0001, Two), 1)
	assert.Len(t, homeMovesForCard(0b0001, Three), 1)
	assert.Empty(t, homeMovesForCard(0b1000, One)) // locked
	assert.Empty(t, homeMovesForCard(0b0001, Five))
}

func TestHomeEntrySlot(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.balls[Black] = Square(61).Bitboard() // three steps from the entry

	slot, ok := b.homeEntrySlot(61, Black, 5)
	require.True(t, ok)
	assert.Equal(t, uint8(1), slot)

	_, ok = b.homeEntrySlot(61, Black, 3)
	assert.False(t, ok) // reaches the entry square only

	b.homes[Black] = 0b0001
	_, ok = b.homeEntrySlot(61, Black, 5)
	assert.False(t, ok) // the path passes an occupied slot
}
