package session

import "github.com/anshgoel/quizarena/internal/scoring"

// Resolution is what one answer resolution produced, for the controller
// to act on (broadcast, lives display, termination check).
type Resolution struct {
	Outcome scoring.Outcome
	Record  AnswerRecord
	// Delta is the score broadcast value: points for a correct answer,
	// zero otherwise.
	Delta int
}

// Resolve applies a submission result to the session: appends the
// answer record, updates the scoring engine, and moves the session to
// PhaseResolved. The gate must be in Submitted state; a stale result
// for an already-resolved question returns nil.
func Resolve(s *State, result *Result) *Resolution {
	if !s.Gate.Resolve() {
		return nil
	}

	s.LastResult = result
	s.Phase = PhaseResolved

	rec := AnswerRecord{
		QuestionIndex: s.Index,
		Chosen:        s.Selected,
		Correct:       result.Correct,
		TimeSpent:     s.TimeSpent(),
	}
	s.Records = append(s.Records, rec)

	var out scoring.Outcome
	var delta int
	if result.Correct {
		out = s.Engine.RecordCorrect(s.TimeLeft, result.PointsAwarded)
		delta = out.Points
		if s.Engine.Streak >= 2 {
			s.Celebrate = true
		}
	} else {
		out = s.Engine.RecordMiss()
		if s.Engine.Exhausted() {
			s.Phase = PhaseTerminated
		}
	}

	return &Resolution{Outcome: out, Record: rec, Delta: delta}
}
