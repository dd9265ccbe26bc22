package tac

import "math/bits"

// Home is a 4-slot home track, bit i set meaning slot i (0 = entrance,
// 3 = deepest/final slot) is occupied by a ball.
type Home uint8

const fullHome Home = 0b1111

// lockedPatterns are the occupancy patterns in which every occupied
// slot is packed against the deepest end with no gap: no ball can
// advance further without evicting a teammate ball, so the whole home
// is considered locked (no further moves are legal inside it).
var lockedPatterns = [...]Home{0b1000, 0b1100, 0b1110, 0b1111}

// IsLocked reports whether h's occupied slots are fully packed against
// the deep end, i.e. no ball inside can move.
func (h Home) IsLocked() bool {
	for _, p := range lockedPatterns {
		if h == p {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no slot is occupied.
func (h Home) IsEmpty() bool {
	return h == 0
}

// IsFull reports whether all four slots are occupied.
func (h Home) IsFull() bool {
	return h == fullHome
}

// Amount returns the number of occupied slots.
func (h Home) Amount() uint8 {
	return uint8(bits.OnesCount8(uint8(h)))
}

// Free returns the number of unoccupied slots.
func (h Home) Free() uint8 {
	return 4 - h.Amount()
}

// GetAllUnlocked returns the slot indices of every occupied-but-movable
// ball: a ball is movable if some deeper slot is still empty.
func (h Home) GetAllUnlocked() []uint8 {
	if h.IsLocked() || h.IsEmpty() {
		return nil
	}
	var out []uint8
	for i := uint8(0); i < 4; i++ {
		if h&(1<<i) == 0 {
			continue
		}
		// A ball at slot i is unlocked if there is a strictly deeper
		// empty slot it could still advance into.
		for j := i + 1; j < 4; j++ {
			if h&(1<<j) == 0 {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// GetSingleUnlocked returns the one unlocked slot and true, or
// (0, false) if zero or more than one slot is unlocked.
func (h Home) GetSingleUnlocked() (uint8, bool) {
	u := h.GetAllUnlocked()
	if len(u) != 1 {
		return 0, false
	}
	return u[0], true
}
