// Package tac implements the four-player partnership card-board game
// ("Tac") used to exercise the mcts engine.
package tac

// Color identifies one of the four seats around the ring. Turn order
// and partnership both follow the cyclic order Black, Blue, Green, Red.
type Color uint8

const (
	Black Color = iota
	Blue
	Green
	Red
)

// AllColors lists the four seats in turn order.
var AllColors = [4]Color{Black, Blue, Green, Red}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	case Red:
		return "Red"
	default:
		return "Unknown"
	}
}

// Next returns the seat to play after c.
func (c Color) Next() Color {
	return (c + 1) % 4
}

// Prev returns the seat that played before c.
func (c Color) Prev() Color {
	return (c + 3) % 4
}

// Partner returns c's partnership teammate (the seat two turns away).
func (c Color) Partner() Color {
	return c.Next().Next()
}

// Home returns the ring square index where c's balls enter their home
// stretch, i.e. the start square of c's track.
func (c Color) Home() Square {
	switch c {
	case Black:
		return Square(0)
	case Blue:
		return Square(48)
	case Green:
		return Square(32)
	case Red:
		return Square(16)
	default:
		panic("tac: invalid color")
	}
}

// Between returns the seat distance, in turn order, from c to other:
// 0 if other == c, 1 if other is next, 2 partner, 3 previous.
func (c Color) Between(other Color) int {
	return int(other+4-c) % 4
}
