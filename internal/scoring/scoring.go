// Package scoring tracks score, streak, combo, and lives for one quiz
// session. Point values computed here are display estimates; when the
// backend sends an authoritative points_awarded it replaces the local
// number.
package scoring

// Timer ceiling in seconds. The time bonus scales against this.
const MaxTimeSeconds = 30

// StartingLives is the multiplayer life count.
const StartingLives = 3

// PointsFor computes the local point estimate for one answer.
// priorCombo is the combo multiplier before this answer is applied.
func PointsFor(correct bool, timeLeftSeconds, priorCombo int) int {
	if !correct {
		return 0
	}
	if timeLeftSeconds < 0 {
		timeLeftSeconds = 0
	}
	if timeLeftSeconds > MaxTimeSeconds {
		timeLeftSeconds = MaxTimeSeconds
	}
	if priorCombo < 1 {
		priorCombo = 1
	}
	timeBonus := timeLeftSeconds * 50 / MaxTimeSeconds
	return 100 + timeBonus + priorCombo*10
}

// Engine holds cumulative session scoring state. It is owned by the
// quiz session controller and mutated only through RecordCorrect and
// RecordMiss.
type Engine struct {
	Score  int // correct answer count
	Streak int // consecutive correct answers
	Combo  int // bonus multiplier, never below 1
	Points int // accumulated point total
	Lives  int // multiplayer only; ignored in solo mode

	multiplayer  bool
	shieldActive bool
}

// Outcome describes the state change one answer produced.
type Outcome struct {
	Points         int  // points applied (backend value if overridden)
	ShieldConsumed bool // a miss was absorbed by the shield
	LifeLost       bool
	LivesRemaining int
}

// NewEngine creates an engine with combo at 1 and, in multiplayer mode,
// a full life pool.
func NewEngine(multiplayer bool) *Engine {
	e := &Engine{Combo: 1, multiplayer: multiplayer}
	if multiplayer {
		e.Lives = StartingLives
	}
	return e
}

// Multiplayer reports whether lives are in play.
func (e *Engine) Multiplayer() bool {
	return e.multiplayer
}

// ShieldActive reports whether an armed shield will absorb the next miss.
func (e *Engine) ShieldActive() bool {
	return e.shieldActive
}

// ArmShield activates the shield. Returns false if one is already armed.
func (e *Engine) ArmShield() bool {
	if e.shieldActive {
		return false
	}
	e.shieldActive = true
	return true
}

// RecordCorrect applies a correct answer. backendPoints overrides the
// local estimate when >= 0; pass -1 when the backend sent no value.
func (e *Engine) RecordCorrect(timeLeftSeconds, backendPoints int) Outcome {
	pts := PointsFor(true, timeLeftSeconds, e.Combo)
	if backendPoints >= 0 {
		pts = backendPoints
	}

	e.Score++
	e.Streak++
	e.Combo++
	e.Points += pts

	return Outcome{Points: pts, LivesRemaining: e.Lives}
}

// RecordMiss applies an incorrect or timed-out answer. Streak and combo
// reset together. In multiplayer an armed shield absorbs the life loss
// and disarms whether or not another miss follows.
func (e *Engine) RecordMiss() Outcome {
	e.Streak = 0
	e.Combo = 1

	out := Outcome{LivesRemaining: e.Lives}
	if !e.multiplayer {
		return out
	}

	if e.shieldActive {
		e.shieldActive = false
		out.ShieldConsumed = true
		return out
	}

	e.Lives--
	out.LifeLost = true
	out.LivesRemaining = e.Lives
	return out
}

// Exhausted reports whether the multiplayer life pool has run out.
func (e *Engine) Exhausted() bool {
	return e.multiplayer && e.Lives <= 0
}
