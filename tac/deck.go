package tac

// rng is the minimal pseudo-random source tac needs; it mirrors
// game.RNG so *golang.org/x/exp/rand.Rand satisfies both without this
// package importing the game package back.
type rng interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Deck holds the undealt cards plus any cards returned to it during
// determinization (see Board.Redetermine).
type Deck struct {
	cards []Card
}

// NewDeck builds the canonical 104-card deck in its per-kind amounts.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 104)}
	for _, c := range Cards {
		for i := uint8(0); i < c.Amount(); i++ {
			d.cards = append(d.cards, c)
		}
	}
	return d
}

// Len returns the number of cards remaining in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Shuffle randomizes the deck's order in place.
func (d *Deck) Shuffle(r rng) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Push returns a card to the deck, e.g. when resetting a hand before
// redetermination.
func (d *Deck) Push(c Card) {
	d.cards = append(d.cards, c)
}

// Draw removes and returns one card, or ok=false if the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	n := len(d.cards)
	if n == 0 {
		return 0, false
	}
	c := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return c, true
}

// TakeAll matching pred removes and returns every card satisfying pred,
// leaving the rest in place.
func (d *Deck) TakeAll(pred func(Card) bool) []Card {
	var taken []Card
	kept := d.cards[:0]
	for _, c := range d.cards {
		if pred(c) {
			taken = append(taken, c)
		} else {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	return taken
}

// Deal distributes a fresh shuffled deck to four hands in the game's
// traditional pattern: four deals of 20 cards followed by a fifth deal
// of the remaining 24, after which the deck is rebuilt and reshuffled
// for the next round.
func (d *Deck) Deal(r rng) [4]Hand {
	d.Shuffle(r)
	var hands [4]Hand
	deal := func(n int) {
		for i := 0; i < n; i++ {
			seat := i % 4
			c, ok := d.Draw()
			if !ok {
				return
			}
			hands[seat] = append(hands[seat], c)
		}
	}
	deal(80)
	deal(24)
	*d = *NewDeck()
	return hands
}
