package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAnnounce(t *testing.T) {
	k := NewKnowledge(Black)
	k.SetAnnounce([3]bool{false, false, false})

	// Opponents without the announcement are bounded, the partner is
	// ruled out entirely (their hand never hides from the partnership
	// for these cards).
	assert.Equal(t, belief{beliefAtMost, 1}, k.hands[k.idx(Blue)][One])
	assert.Equal(t, belief{beliefExact, 0}, k.hands[k.idx(Green)][One])
	assert.Equal(t, belief{beliefExact, 0}, k.hands[k.idx(Green)][Thirteen])
	assert.Equal(t, belief{beliefAtMost, 1}, k.hands[k.idx(Red)][Thirteen])

	k2 := NewKnowledge(Black)
	k2.SetAnnounce([3]bool{true, true, true})
	assert.Equal(t, belief{beliefUnknown, 0}, k2.hands[k2.idx(Blue)][One])
}

func TestRuleOutAndKnownCards(t *testing.T) {
	k := NewKnowledge(Black)
	k.SetExact(Seven, Blue, 2)
	k.RuleOut(Angel, Blue)

	assert.Equal(t, []Card{Seven, Seven}, k.KnownCards(Blue))
	assert.True(t, k.violates(Angel, Blue))
	assert.False(t, k.violates(Seven, Blue))
	assert.Equal(t, 2, k.exactCount(Seven, Blue))
}

func TestSyncExhaustedCard(t *testing.T) {
	k := NewKnowledge(Black)
	for i := uint8(0); i < Angel.Amount(); i++ {
		k.UpdateWithCard(Angel)
	}
	k.Sync()

	assert.False(t, k.Possible(Angel))
	for _, opp := range [...]Color{Blue, Green, Red} {
		assert.Equal(t, belief{beliefExact, 0}, k.hands[k.idx(opp)][Angel])
	}
}

func TestUpdateKnowledgeIsPure(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Blue}
	b.hands[Blue] = Hand{Five}
	b.balls[Blue] = Square(20).Bitboard()

	k := NewKnowledge(Black)
	before := *k

	next := b.UpdateKnowledge(newStep(Five, 20, 25), k)

	assert.Equal(t, before, *k)
	assert.Equal(t, uint8(1), next.history[Five])
}

func TestVoluntaryDiscardRulesOutPlayableCards(t *testing.T) {
	// Blue discards a Five while holding a ball with open road ahead:
	// every simple card that could have stepped is ruled out.
	b := &Board{deck: NewDeck(), player: Blue}
	b.hands[Blue] = Hand{Five}
	b.balls[Blue] = Square(20).Bitboard()
	b.balls[Red] = Square(30).Bitboard() // ten squares of open road

	k := NewKnowledge(Black)
	next := b.UpdateKnowledge(TacMove{Card: Five, Action: TacAction{Kind: ActionDiscard}}, k)

	for steps := uint8(1); steps < 10; steps++ {
		if c, ok := FromSteps(steps); ok {
			assert.Truef(t, next.violates(c, Blue), "card %v should be ruled out", c)
		}
	}
	assert.Equal(t, belief{beliefExact, 0}, next.hands[next.idx(Blue)][Devil])
}

func TestForcedDiscardRevealsNothing(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Blue, discard: true}
	b.hands[Blue] = Hand{Five}
	b.balls[Blue] = Square(20).Bitboard()

	k := NewKnowledge(Black)
	next := b.UpdateKnowledge(TacMove{Card: Five, Action: TacAction{Kind: ActionDiscard}}, k)

	assert.Equal(t, belief{beliefUnknown, 0}, next.hands[next.idx(Blue)][One])
	assert.Equal(t, uint8(1), next.history[Five])
}

func TestNewKnowledgeForAnnounces(t *testing.T) {
	b := &Board{deck: NewDeck(), player: Black}
	b.hands[Black] = Hand{Two}
	b.hands[Blue] = Hand{Two, Three}
	b.hands[Green] = Hand{One}
	b.hands[Red] = Hand{Thirteen}
	for c := Black; c <= Red; c++ {
		b.oneOr13[c] = b.hands[c].Has(One) || b.hands[c].Has(Thirteen)
	}

	k := b.NewKnowledgeFor(Black)

	// Blue announced no One/Thirteen, Green and Red announced holding.
	assert.Equal(t, belief{beliefAtMost, 1}, k.hands[k.idx(Blue)][One])
	assert.Equal(t, belief{beliefUnknown, 0}, k.hands[k.idx(Green)][One])
	assert.Equal(t, belief{beliefUnknown, 0}, k.hands[k.idx(Red)][Thirteen])
}

func TestKnowledgeCloneAndReset(t *testing.T) {
	k := NewKnowledge(Black)
	k.SetExact(Seven, Blue, 1)
	k.UpdateWithCard(Seven)

	cp := k.Clone()
	cp.RuleOut(Seven, Blue)
	assert.Equal(t, 1, k.exactCount(Seven, Blue))

	k.Reset()
	assert.Equal(t, belief{}, k.hands[k.idx(Blue)][Seven])
	assert.Equal(t, uint8(0), k.history[Seven])
}

func TestKnowledgeObserverHasNoSelfEntry(t *testing.T) {
	k := NewKnowledge(Black)
	require.Panics(t, func() { k.idx(Black) })
}
