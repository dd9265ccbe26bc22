package tac

import "math/bits"

// BitBoard is a 64-bit set of ring squares.
type BitBoard uint64

// EmptyBoard is the zero-value bitboard.
const EmptyBoard BitBoard = 0

// IsEmpty reports whether no square is set.
func (b BitBoard) IsEmpty() bool {
	return b == EmptyBoard
}

// Len returns the number of set squares.
func (b BitBoard) Len() int {
	return bits.OnesCount64(uint64(b))
}

// Has reports whether s is a member of b.
func (b BitBoard) Has(s Square) bool {
	return b&s.Bitboard() != 0
}

// NextSquare returns the lowest-indexed member of b, or ok=false if
// b is empty.
func (b BitBoard) NextSquare() (s Square, ok bool) {
	if b.IsEmpty() {
		return 0, false
	}
	return Square(bits.TrailingZeros64(uint64(b))), true
}

// RotateRight rotates the 64-bit set right by n, wrapping around the
// ring the same way the underlying squares do.
func (b BitBoard) RotateRight(n uint8) BitBoard {
	return BitBoard(bits.RotateLeft64(uint64(b), -int(n)))
}

// RotateLeft rotates the 64-bit set left by n.
func (b BitBoard) RotateLeft(n uint8) BitBoard {
	return BitBoard(bits.RotateLeft64(uint64(b), int(n)))
}

// Squares returns the set's members in ascending order.
func (b BitBoard) Squares() []Square {
	out := make([]Square, 0, b.Len())
	for rem := b; !rem.IsEmpty(); {
		sq, _ := rem.NextSquare()
		out = append(out, sq)
		rem ^= sq.Bitboard()
	}
	return out
}

// With returns b with s added.
func (b BitBoard) With(s Square) BitBoard {
	return b | s.Bitboard()
}

// Without returns b with s removed.
func (b BitBoard) Without(s Square) BitBoard {
	return b &^ s.Bitboard()
}
