package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitBoardBasics(t *testing.T) {
	b := EmptyBoard.With(3).With(10).With(63)

	assert.Equal(t, 3, b.Len())
	assert.True(t, b.Has(10))
	assert.False(t, b.Has(11))

	s, ok := b.NextSquare()
	assert.True(t, ok)
	assert.Equal(t, Square(3), s)

	assert.Equal(t, []Square{3, 10, 63}, b.Squares())

	b = b.Without(10)
	assert.Equal(t, 2, b.Len())

	_, ok = EmptyBoard.NextSquare()
	assert.False(t, ok)
}

func TestBitBoardRotation(t *testing.T) {
	b := EmptyBoard.With(0).With(63)

	r := b.RotateLeft(1)
	assert.True(t, r.Has(1))
	assert.True(t, r.Has(0)) // 63 wraps around

	l := b.RotateRight(1)
	assert.True(t, l.Has(63))
	assert.True(t, l.Has(62))
}

func TestSquareArithmetic(t *testing.T) {
	assert.Equal(t, Square(2), Square(62).Add(4))
	assert.Equal(t, Square(10), Square(5).DistanceTo(15))
	assert.Equal(t, Square(54), Square(15).DistanceTo(5))
}

func TestDistanceToHome(t *testing.T) {
	assert.Equal(t, Square(5), Square(59).DistanceToHome(Black))
	assert.Equal(t, Square(64), Square(0).DistanceToHome(Black))
	assert.Equal(t, Square(1), Square(47).DistanceToHome(Blue))
	assert.Equal(t, Square(16), Square(16).DistanceToHome(Green))
}

func TestHomeOccupancy(t *testing.T) {
	assert.True(t, Home(0b1111).IsFull())
	assert.True(t, Home(0b1100).IsLocked())
	assert.False(t, Home(0b1010).IsLocked())
	assert.True(t, Home(0).IsEmpty())
	assert.Equal(t, uint8(2), Home(0b0101).Amount())
	assert.Equal(t, uint8(2), Home(0b0101).Free())
}

func TestHomeUnlocked(t *testing.T) {
	assert.Equal(t, []uint8{0, 2}, Home(0b0101).GetAllUnlocked())
	assert.Nil(t, Home(0b1100).GetAllUnlocked())

	slot, ok := Home(0b1101).GetSingleUnlocked()
	assert.True(t, ok)
	assert.Equal(t, uint8(0), slot)

	_, ok = Home(0b0101).GetSingleUnlocked()
	assert.False(t, ok)
}

func TestColorRelations(t *testing.T) {
	assert.Equal(t, Blue, Black.Next())
	assert.Equal(t, Black, Blue.Prev())
	assert.Equal(t, Green, Black.Partner())
	assert.Equal(t, Blue, Red.Partner())
	assert.Equal(t, 2, Black.Between(Green))
	assert.Equal(t, 3, Blue.Between(Black))
	assert.Equal(t, 0, Red.Between(Red))
}

func TestCardAmountsSumToDeck(t *testing.T) {
	total := 0
	for _, c := range Cards {
		total += int(c.Amount())
	}
	assert.Equal(t, 104, total)
}

func TestCardSteps(t *testing.T) {
	steps, ok := Thirteen.IsSimple()
	assert.True(t, ok)
	assert.Equal(t, uint8(13), steps)

	_, ok = Four.IsSimple()
	assert.False(t, ok)
	_, ok = Seven.IsSimple()
	assert.False(t, ok)

	c, ok := FromSteps(7)
	assert.True(t, ok)
	assert.Equal(t, Seven, c)
	_, ok = FromSteps(11)
	assert.False(t, ok)
}
