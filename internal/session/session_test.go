package session

import (
	"math/rand"
	"testing"

	"github.com/anshgoel/quizarena/internal/powerup"
	"github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/scoring"
)

func testQuiz() *quiz.Quiz {
	mk := func(id string) quiz.Question {
		return quiz.Question{
			ID:      id,
			Prompt:  "prompt " + id,
			Options: []string{"A) one", "B) two", "C) three", "D) four"},
			Correct: "A",
		}
	}
	return &quiz.Quiz{
		ID:        "qz-1",
		Questions: []quiz.Question{mk("q0"), mk("q1"), mk("q2")},
	}
}

func newTestState(multiplayer bool) *State {
	return NewState(
		testQuiz(),
		scoring.NewEngine(multiplayer),
		powerup.NewBank(rand.New(rand.NewSource(1))),
	)
}

func TestNewStateStartsActive(t *testing.T) {
	s := newTestState(false)
	if s.Phase != PhaseActive {
		t.Errorf("phase = %d, want PhaseActive", s.Phase)
	}
	if s.Index != 0 {
		t.Errorf("index = %d, want 0", s.Index)
	}
	if s.TimeLeft != scoring.MaxTimeSeconds {
		t.Errorf("timeLeft = %d, want %d", s.TimeLeft, scoring.MaxTimeSeconds)
	}
	if s.Current() == nil || s.Current().ID != "q0" {
		t.Error("Current() should return the first question")
	}
}

func TestTimeSpent(t *testing.T) {
	s := newTestState(false)
	s.TimeLeft = 20
	if got := s.TimeSpent(); got != 10 {
		t.Errorf("TimeSpent = %d, want 10", got)
	}
	s.TimeLeft = scoring.MaxTimeSeconds + 5
	if got := s.TimeSpent(); got != 0 {
		t.Errorf("TimeSpent with inflated clock = %d, want clamp to 0", got)
	}
}

func TestAdvanceResetsTransientState(t *testing.T) {
	s := newTestState(false)
	s.Selected = "B"
	s.LastResult = &Result{Correct: true}
	s.TimeLeft = 3
	s.Celebrate = true
	s.Gate.TrySubmit("B", false)
	s.Phase = PhaseResolved

	if !s.Advance() {
		t.Fatal("Advance from question 0 should succeed")
	}
	if s.Index != 1 {
		t.Errorf("index = %d, want 1", s.Index)
	}
	if s.Selected != "" || s.LastResult != nil || s.Celebrate {
		t.Error("Advance must clear selection, result, and celebration")
	}
	if s.TimeLeft != scoring.MaxTimeSeconds {
		t.Errorf("timeLeft = %d, want full countdown", s.TimeLeft)
	}
	if s.Phase != PhaseActive {
		t.Error("Advance should return to PhaseActive")
	}
	if s.Gate.Phase() != GateUnanswered {
		t.Error("Advance should rearm the gate")
	}
}

func TestAdvancePreservesCumulativeState(t *testing.T) {
	s := newTestState(false)
	s.Engine.RecordCorrect(30, -1)
	points, streak := s.Engine.Points, s.Engine.Streak

	s.Advance()
	if s.Engine.Points != points || s.Engine.Streak != streak {
		t.Error("Advance must not touch the scoring engine")
	}
}

func TestAdvanceStopsOnLast(t *testing.T) {
	s := newTestState(false)
	s.Advance()
	s.Advance()
	if !s.OnLast() {
		t.Fatal("expected to be on the last question")
	}
	if s.Advance() {
		t.Error("Advance on the last question should return false")
	}
	if s.Index != 2 {
		t.Errorf("index = %d, want 2", s.Index)
	}
}

func TestCurrentPastEnd(t *testing.T) {
	s := newTestState(false)
	s.Index = len(s.Quiz.Questions)
	if s.Current() != nil {
		t.Error("Current past the end should be nil")
	}
}

func TestVisibleOptionsAfterReveal(t *testing.T) {
	s := newTestState(false)
	q := s.Current()

	kept := s.Bank.Reveal(0, q)
	got := s.VisibleOptions()
	if len(got) != len(kept) {
		t.Errorf("VisibleOptions = %v, want reveal result %v", got, kept)
	}

	// The reveal is bound to question 0; the next question shows all options.
	s.Advance()
	if got := s.VisibleOptions(); len(got) != 4 {
		t.Errorf("VisibleOptions after advance = %v, want all 4", got)
	}
}

func TestResolveRequiresSubmission(t *testing.T) {
	s := newTestState(false)
	if Resolve(s, &Result{Correct: true}) != nil {
		t.Error("Resolve without a submission should return nil")
	}
}

func TestResolveCorrectAnswer(t *testing.T) {
	s := newTestState(false)
	s.Selected = "A"
	s.TimeLeft = 30
	s.Gate.TrySubmit("A", false)

	res := Resolve(s, &Result{Correct: true, PointsAwarded: -1, Verified: true})
	if res == nil {
		t.Fatal("Resolve should succeed")
	}
	if s.Phase != PhaseResolved {
		t.Errorf("phase = %d, want PhaseResolved", s.Phase)
	}
	if res.Delta != 160 {
		t.Errorf("delta = %d, want 160", res.Delta)
	}
	if len(s.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(s.Records))
	}
	rec := s.Records[0]
	if rec.QuestionIndex != 0 || rec.Chosen != "A" || !rec.Correct {
		t.Errorf("record = %+v", rec)
	}
}

func TestResolveStaleResultDropped(t *testing.T) {
	s := newTestState(false)
	s.Selected = "A"
	s.Gate.TrySubmit("A", false)
	Resolve(s, &Result{Correct: true, PointsAwarded: -1})

	if Resolve(s, &Result{Correct: true, PointsAwarded: -1}) != nil {
		t.Error("second Resolve for the same question should return nil")
	}
	if len(s.Records) != 1 {
		t.Errorf("records = %d, want 1", len(s.Records))
	}
}

func TestResolveCelebrateOnStreak(t *testing.T) {
	s := newTestState(false)

	s.Selected = "A"
	s.Gate.TrySubmit("A", false)
	Resolve(s, &Result{Correct: true, PointsAwarded: -1})
	if s.Celebrate {
		t.Error("first correct answer should not celebrate")
	}

	s.Advance()
	s.Selected = "A"
	s.Gate.TrySubmit("A", false)
	Resolve(s, &Result{Correct: true, PointsAwarded: -1})
	if !s.Celebrate {
		t.Error("second consecutive correct answer should celebrate")
	}
}

func TestResolveMissDelta(t *testing.T) {
	s := newTestState(false)
	s.Selected = "B"
	s.Gate.TrySubmit("B", false)

	res := Resolve(s, &Result{Correct: false, CorrectLabel: "A", PointsAwarded: -1})
	if res == nil {
		t.Fatal("Resolve should succeed")
	}
	if res.Delta != 0 {
		t.Errorf("miss delta = %d, want 0", res.Delta)
	}
	if s.Phase != PhaseResolved {
		t.Errorf("phase = %d, want PhaseResolved", s.Phase)
	}
}

func TestResolveLivesExhaustionTerminates(t *testing.T) {
	s := NewState(testQuiz(), scoring.NewEngine(true), powerup.NewBank(rand.New(rand.NewSource(1))))

	for i := 0; i < 3; i++ {
		s.Selected = "B"
		s.Gate.TrySubmit("B", false)
		res := Resolve(s, &Result{Correct: false, CorrectLabel: "A", PointsAwarded: -1})
		if res == nil {
			t.Fatalf("miss %d: Resolve returned nil", i+1)
		}
		if i < 2 {
			if s.Phase != PhaseResolved {
				t.Errorf("miss %d: phase = %d, want PhaseResolved", i+1, s.Phase)
			}
			s.Advance()
		}
	}
	if s.Phase != PhaseTerminated {
		t.Errorf("phase = %d, want PhaseTerminated after third miss", s.Phase)
	}
}

func TestBuildSummary(t *testing.T) {
	s := newTestState(false)
	s.Records = []AnswerRecord{
		{QuestionIndex: 0, Chosen: "A", Correct: true, TimeSpent: 5},
		{QuestionIndex: 1, Chosen: "A", Correct: true, TimeSpent: 10},
		{QuestionIndex: 2, Chosen: "B", Correct: false, TimeSpent: 15},
	}
	s.Engine.Score = 2
	s.Engine.Points = 330
	s.Phase = PhaseComplete

	sum := BuildSummary(s)
	if sum.QuizID != "qz-1" {
		t.Errorf("quizID = %q", sum.QuizID)
	}
	if sum.Score != 2 || sum.TotalQuestions != 3 {
		t.Errorf("score = %d/%d, want 2/3", sum.Score, sum.TotalQuestions)
	}
	if sum.Points != 330 {
		t.Errorf("points = %d, want 330", sum.Points)
	}
	if sum.BestStreak != 2 {
		t.Errorf("bestStreak = %d, want 2", sum.BestStreak)
	}
	if sum.AvgTimeSeconds != 10 {
		t.Errorf("avgTime = %d, want 10", sum.AvgTimeSeconds)
	}
	if sum.Accuracy < 0.66 || sum.Accuracy > 0.67 {
		t.Errorf("accuracy = %f, want 2/3", sum.Accuracy)
	}
	if sum.Terminated {
		t.Error("completed session must not be terminated")
	}
}

func TestBuildSummaryTerminated(t *testing.T) {
	s := NewState(testQuiz(), scoring.NewEngine(true), powerup.NewBank(rand.New(rand.NewSource(1))))
	s.Phase = PhaseTerminated

	sum := BuildSummary(s)
	if !sum.Terminated {
		t.Error("expected terminated summary")
	}
	if !sum.Multiplayer {
		t.Error("expected multiplayer summary")
	}
}

func TestBuildSummaryBestStreakResets(t *testing.T) {
	s := newTestState(false)
	s.Records = []AnswerRecord{
		{Correct: true, TimeSpent: 1},
		{Correct: true, TimeSpent: 1},
		{Correct: false, TimeSpent: 1},
		{Correct: true, TimeSpent: 1},
	}
	if got := BuildSummary(s).BestStreak; got != 2 {
		t.Errorf("bestStreak = %d, want 2", got)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := newTestState(false)
	sum := BuildSummary(s)
	if sum.Accuracy != 0 || sum.AvgTimeSeconds != 0 || sum.BestStreak != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
}
