package session

// GatePhase is the per-question submission state.
type GatePhase int

const (
	GateUnanswered GatePhase = iota
	GateSubmitted
	GateResolved
)

// Gate serializes answer submission for one question: exactly one
// submission goes to the backend, and re-submission is rejected once
// the question is Submitted. The zero value is ready to use.
type Gate struct {
	phase GatePhase
}

// Phase returns the current gate phase.
func (g *Gate) Phase() GatePhase {
	return g.phase
}

// TrySubmit transitions Unanswered -> Submitted. Submission requires a
// selected label or an expired timer (timedOut); in the latter case the
// absent answer is what gets submitted. Returns false when the
// requirements aren't met or a submission is already in flight.
func (g *Gate) TrySubmit(selected string, timedOut bool) bool {
	if g.phase != GateUnanswered {
		return false
	}
	if selected == "" && !timedOut {
		return false
	}
	g.phase = GateSubmitted
	return true
}

// Resolve transitions Submitted -> Resolved. Returns false if no
// submission was in flight, which guards against stale responses
// arriving after a question has moved on.
func (g *Gate) Resolve() bool {
	if g.phase != GateSubmitted {
		return false
	}
	g.phase = GateResolved
	return true
}

// Reset rearms the gate for the next question.
func (g *Gate) Reset() {
	g.phase = GateUnanswered
}
