package session

import (
	"github.com/anshgoel/quizarena/internal/powerup"
	"github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/scoring"
)

// Phase is the quiz session lifecycle state.
type Phase int

const (
	PhaseLoading    Phase = iota // waiting on quiz payload / channel readiness
	PhaseActive                  // a question is live and the countdown runs
	PhaseResolved                // feedback shown, countdown suspended
	PhaseComplete                // last question resolved and dismissed
	PhaseTerminated              // multiplayer lives exhausted
)

// Result is the resolution of one submitted answer. PointsAwarded and
// TotalPoints are -1 when the backend sent no value; the local estimate
// then stands in for display.
type Result struct {
	Correct       bool
	CorrectLabel  string
	Explanation   string
	PointsAwarded int
	TotalPoints   int
	Verified      bool // false for the synthetic offline result
}

// AnswerRecord is one entry in the session's answer timeline.
// Appended once per question, never mutated.
type AnswerRecord struct {
	QuestionIndex int
	Chosen        string // empty when time expired with no selection
	Correct       bool
	TimeSpent     int // seconds, clamped >= 0
}

// State is the runtime state of an active quiz session. It is owned
// exclusively by the quiz session controller; collaborators report
// results back and the controller applies them here.
type State struct {
	Quiz  *quiz.Quiz
	Index int // current question index

	Selected   string // label picked before submit, empty if none
	LastResult *Result

	Engine *scoring.Engine
	Bank   *powerup.Bank
	Gate   Gate

	Records []AnswerRecord

	TimeLeft int // seconds remaining on the current question
	Phase    Phase

	// Celebrate is set when the latest resolution warrants the transient
	// celebration banner (streak >= 2). Cleared on question advance.
	Celebrate bool
}

// NewState creates session state positioned at question 0 with a full
// countdown. The caller supplies the engine (solo or multiplayer) and
// power-up bank.
func NewState(q *quiz.Quiz, engine *scoring.Engine, bank *powerup.Bank) *State {
	return &State{
		Quiz:     q,
		Engine:   engine,
		Bank:     bank,
		TimeLeft: scoring.MaxTimeSeconds,
		Phase:    PhaseActive,
	}
}

// Current returns the active question, or nil past the end.
func (s *State) Current() *quiz.Question {
	if s.Index < 0 || s.Index >= len(s.Quiz.Questions) {
		return nil
	}
	return &s.Quiz.Questions[s.Index]
}

// OnLast reports whether the current question is the final one.
func (s *State) OnLast() bool {
	return s.Index == len(s.Quiz.Questions)-1
}

// TimeSpent returns seconds elapsed on the current question.
func (s *State) TimeSpent() int {
	spent := scoring.MaxTimeSeconds - s.TimeLeft
	if spent < 0 {
		return 0
	}
	return spent
}

// Advance moves to the next question, resetting per-question transient
// state while preserving cumulative score, streak, combo, lives, and
// power-up counts. Returns false when already on the last question.
func (s *State) Advance() bool {
	if s.OnLast() {
		return false
	}
	s.Index++
	s.Selected = ""
	s.LastResult = nil
	s.TimeLeft = scoring.MaxTimeSeconds
	s.Celebrate = false
	s.Gate.Reset()
	s.Phase = PhaseActive
	return true
}

// VisibleOptions returns the current question's options after any
// reveal-reduction applied to it.
func (s *State) VisibleOptions() []string {
	q := s.Current()
	if q == nil {
		return nil
	}
	if kept := s.Bank.RevealedFor(s.Index); kept != nil {
		return kept
	}
	return q.Options
}
