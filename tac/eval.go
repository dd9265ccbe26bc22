package tac

import "github.com/chewxy/math32"

// Heuristic weight constants. Tuned as a set; change one and the
// others stop balancing.
const (
	winScore      int64 = 10000
	inHomeW       int64 = 500
	homeFreeW     int64 = 13
	homeCleanW    int64 = 4
	inPlayW       int64 = 28
	fwdDistMax    int64 = 17
	fwdInHome     int64 = 21
	mobilityW     int64 = 2
	capturability int64 = 12
	fourProximity int64 = 23
	backupW       int64 = 12
)

// Eval returns a signed heuristic score from the current player's
// partnership's perspective: positive favors the mover's side.
func (b *Board) Eval() int64 {
	p := b.CurrentPlayer()
	e := p.Next()
	pp := p.Partner()
	ep := e.Partner()

	if b.Won(p) {
		return winScore
	}
	if b.Won(e) {
		return -winScore
	}

	var eval int64

	goalCnt := int64(b.ballsInHome(p)) - int64(b.ballsInHome(e))
	eval += goalCnt * inHomeW

	free := boolToInt(b.homeFree(p)) + boolToInt(b.homeFree(pp)) -
		boolToInt(b.homeFree(e)) - boolToInt(b.homeFree(ep))
	eval += free * homeFreeW

	clean := boolToInt(b.homeClean(p)) + boolToInt(b.homeClean(pp)) -
		boolToInt(b.homeClean(e)) - boolToInt(b.homeClean(ep))
	eval += clean * homeCleanW

	our := b.nearGoal(p) + b.nearGoal(pp)
	theirs := b.nearGoal(e) + b.nearGoal(ep)
	eval += our - theirs

	inPlay := (boolToInt(b.ballInPlay(p)) + boolToInt(b.ballInPlay(pp)) -
		boolToInt(b.ballInPlay(e)) - boolToInt(b.ballInPlay(ep))) * inPlayW
	eval += inPlay

	cap := (b.capturabilityOf(e) + b.capturabilityOf(ep)) - (b.capturabilityOf(p) + b.capturabilityOf(pp))
	eval += cap

	mob := (b.mobilityOf(p) + b.mobilityOf(pp)) - (b.mobilityOf(e) + b.mobilityOf(ep))
	eval += mob

	backup := (int64(b.BallsWith(p).Len()+b.BallsWith(pp).Len()) -
		int64(b.BallsWith(e).Len()+b.BallsWith(ep).Len())) * backupW
	eval += backup

	return eval
}

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func (b *Board) ballInPlay(c Color) bool {
	return !b.BallsWith(c).IsEmpty()
}

func (b *Board) homeFree(c Color) bool {
	h := b.Home(c)
	return h.Amount() > 0 && h.Free() > 0
}

func (b *Board) homeClean(c Color) bool {
	h := b.Home(c)
	if h.IsLocked() {
		return true
	}
	return h.Amount()-uint8(len(h.GetAllUnlocked())) == 1
}

func (b *Board) ballsInHome(c Color) uint8 {
	return b.Home(c).Amount() + b.Home(c.Partner()).Amount()
}

// nearGoal scores how close to entering home c's ring balls are, plus
// a bonus when a Four card would land one directly in home.
func (b *Board) nearGoal(c Color) int64 {
	mine := b.BallsWith(c).Squares()
	inFourProximity := false
	for _, ball := range mine {
		if _, ok := fourHomeTarget(b, ball, c); ok {
			inFourProximity = true
			break
		}
	}
	var score int64
	for _, ball := range mine {
		dist := ball.DistanceToHome(c)
		distF := float32(dist)
		distFactor := math32.Pow(1.0-(distF/64.0), 2)
		score += int64(float32(fwdDistMax)*distFactor)
		if dist < 13 {
			score += fwdInHome
		}
	}
	if inFourProximity {
		score += fourProximity
	}
	return score
}

// fourHomeTarget reports whether a Four card could step ball directly
// into c's home track (within 4 units of entry).
func fourHomeTarget(b *Board, ball Square, c Color) (Square, bool) {
	dist := ball.DistanceToHome(c)
	if dist <= 4 {
		return ball.Add(uint8(dist)), true
	}
	return 0, false
}

// capturabilityOf sums, over c's ring balls, how many enemy balls
// threaten to capture them this turn.
func (b *Board) capturabilityOf(c Color) int64 {
	enemies := b.BallsWith(c.Prev()) | b.BallsWith(c.Next())
	var count int64
	for _, m := range b.BallsWith(c).Squares() {
		for _, enemy := range enemies.Squares() {
			enemyToMe := enemy.DistanceTo(m)
			meToEnemy := m.DistanceTo(enemy)
			canReach := enemyToMe < 14 && b.CanMove(enemy, m, c.Prev())
			canReachFour := meToEnemy == 4
			canReachSeven := enemyToMe < 8
			eleven := enemyToMe == 11
			if canReach || canReachFour || (canReachSeven && !eleven) {
				count++
			}
		}
	}
	return count * capturability
}

// mobilityOf sums, over c's ring balls, the clamped distance to the
// next forward obstacle (own progress potential).
func (b *Board) mobilityOf(c Color) int64 {
	var total int64
	for _, m := range b.BallsWith(c).Squares() {
		next := b.DistanceToNext(m)
		home := m.DistanceToHome(c)
		var dist Square
		if next > home {
			dist = home + Square(b.Home(c).Free())
		} else {
			dist = next
		}
		if dist > 13 {
			dist = 13
		}
		total += int64(dist)
	}
	return total * mobilityW
}
