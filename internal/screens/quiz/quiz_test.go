package quiz

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anshgoel/quizarena/internal/api"
	quizdata "github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/recorder"
	"github.com/anshgoel/quizarena/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuiz() *quizdata.Quiz {
	mk := func(id string) quizdata.Question {
		return quizdata.Question{
			ID:      id,
			Prompt:  "prompt " + id,
			Options: []string{"A) one", "B) two", "C) three", "D) four"},
			Correct: "A",
		}
	}
	return &quizdata.Quiz{
		ID:        "qz-1",
		Questions: []quizdata.Question{mk("q0"), mk("q1"), mk("q2")},
	}
}

// mountedScreen builds a solo screen with the quiz already loaded, as if
// the fetch completed.
func mountedScreen(t *testing.T) *QuizScreen {
	t.Helper()
	s := NewSolo(Deps{API: api.New("http://127.0.0.1:0", time.Second)}, "qz-1")
	scr, _ := s.Update(quizLoadedMsg{Quiz: testQuiz()})
	qs, ok := scr.(*QuizScreen)
	if !ok {
		t.Fatal("Update returned an unexpected screen type")
	}
	if qs.state == nil {
		t.Fatal("screen did not mount")
	}
	return qs
}

func correctResult() *session.Result {
	return &session.Result{Correct: true, CorrectLabel: "A", PointsAwarded: -1, TotalPoints: -1, Verified: true}
}

func missResult() *session.Result {
	return &session.Result{Correct: false, CorrectLabel: "A", PointsAwarded: -1, TotalPoints: -1, Verified: true}
}

// countingBackend counts end-session calls and signals each flush.
type countingBackend struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func newCountingBackend() *countingBackend {
	return &countingBackend{done: make(chan struct{}, 4)}
}

func (b *countingBackend) EndSession(context.Context, api.EndSessionInput) error {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.done <- struct{}{}
	return nil
}

func (b *countingBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestQuizLoadError(t *testing.T) {
	s := NewSolo(Deps{API: api.New("http://127.0.0.1:0", time.Second)}, "missing")
	s.Update(quizLoadedMsg{Err: quizdata.ErrNotFound})
	if s.loading {
		t.Error("loading should clear on error")
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestTickCountsDown(t *testing.T) {
	s := mountedScreen(t)
	_, cmd := s.Update(timerTickMsg{QuestionIndex: 0, At: time.Now()})
	if s.state.TimeLeft != 29 {
		t.Errorf("timeLeft = %d, want 29", s.state.TimeLeft)
	}
	if cmd == nil {
		t.Error("expected the next tick to be armed")
	}
}

func TestStaleTickDropped(t *testing.T) {
	s := mountedScreen(t)

	// Tick armed for a different question.
	s.Update(timerTickMsg{QuestionIndex: 1, At: time.Now()})
	if s.state.TimeLeft != 30 {
		t.Errorf("timeLeft = %d, want untouched 30", s.state.TimeLeft)
	}

	// Tick arriving while feedback is shown.
	s.state.Phase = session.PhaseResolved
	s.Update(timerTickMsg{QuestionIndex: 0, At: time.Now()})
	if s.state.TimeLeft != 30 {
		t.Errorf("timeLeft = %d, want untouched 30", s.state.TimeLeft)
	}
}

func TestTimeoutSubmitsEmptyAnswer(t *testing.T) {
	s := mountedScreen(t)
	s.state.TimeLeft = 1

	_, cmd := s.Update(timerTickMsg{QuestionIndex: 0, At: time.Now()})
	if s.state.TimeLeft != 0 {
		t.Errorf("timeLeft = %d, want 0", s.state.TimeLeft)
	}
	if s.state.Gate.Phase() != session.GateSubmitted {
		t.Error("timeout should submit through the gate")
	}
	if s.state.Selected != "" {
		t.Errorf("selected = %q, want empty on timeout", s.state.Selected)
	}
	if cmd == nil {
		t.Error("expected a submit command")
	}
}

func TestTimeoutAfterManualSubmitDoesNothing(t *testing.T) {
	s := mountedScreen(t)
	s.state.Gate.TrySubmit("A", false)
	s.state.Selected = "A"
	s.state.TimeLeft = 1

	_, cmd := s.Update(timerTickMsg{QuestionIndex: 0, At: time.Now()})
	if cmd != nil {
		t.Error("no second submission should fire while one is in flight")
	}
}

func TestEnterSubmitsSelection(t *testing.T) {
	s := mountedScreen(t)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.state.Gate.Phase() != session.GateSubmitted {
		t.Error("enter should submit the highlighted option")
	}
	if s.state.Selected != "A" {
		t.Errorf("selected = %q, want A", s.state.Selected)
	}
	if cmd == nil {
		t.Error("expected a submit command")
	}

	// A second enter is absorbed by the gate.
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("second enter must not submit again")
	}
}

func TestSubmitResultResolves(t *testing.T) {
	s := mountedScreen(t)
	s.Update(specialKey(tea.KeyEnter))

	s.Update(submitResultMsg{QuestionIndex: 0, Result: correctResult()})
	if s.state.Phase != session.PhaseResolved {
		t.Errorf("phase = %d, want PhaseResolved", s.state.Phase)
	}
	if len(s.state.Records) != 1 {
		t.Errorf("records = %d, want 1", len(s.state.Records))
	}
	if s.state.Engine.Points == 0 {
		t.Error("points should accumulate on a correct answer")
	}
}

func TestSubmitResultForWrongQuestionDropped(t *testing.T) {
	s := mountedScreen(t)
	s.Update(specialKey(tea.KeyEnter))

	s.Update(submitResultMsg{QuestionIndex: 2, Result: correctResult()})
	if s.state.Phase != session.PhaseActive {
		t.Error("result for another question must not resolve the current one")
	}
	if len(s.state.Records) != 0 {
		t.Error("no record should be appended")
	}
}

func TestAdvanceAfterFeedback(t *testing.T) {
	s := mountedScreen(t)
	s.Update(specialKey(tea.KeyEnter))
	s.Update(submitResultMsg{QuestionIndex: 0, Result: correctResult()})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.state.Index != 1 {
		t.Errorf("index = %d, want 1", s.state.Index)
	}
	if s.state.Phase != session.PhaseActive {
		t.Error("advance should return to the active phase")
	}
	if s.state.TimeLeft != 30 {
		t.Errorf("timeLeft = %d, want full countdown", s.state.TimeLeft)
	}
	if cmd == nil {
		t.Error("expected a tick for the next question")
	}
}

func TestFiftyFiftyReducesOptions(t *testing.T) {
	s := mountedScreen(t)

	s.Update(keyPress('f'))
	if got := len(s.state.VisibleOptions()); got != 2 {
		t.Errorf("visible options = %d, want 2", got)
	}
	if len(s.opts.Options) != 2 {
		t.Errorf("option list = %d entries, want 2", len(s.opts.Options))
	}

	// Spent; the next question shows all options again.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(submitResultMsg{QuestionIndex: 0, Result: correctResult()})
	s.Update(specialKey(tea.KeyEnter))
	if got := len(s.state.VisibleOptions()); got != 4 {
		t.Errorf("visible options after advance = %d, want 4", got)
	}
}

func TestTimeExtendCapped(t *testing.T) {
	s := mountedScreen(t)
	s.state.TimeLeft = 25

	s.Update(keyPress('t'))
	if s.state.TimeLeft != 30 {
		t.Errorf("timeLeft = %d, want capped 30", s.state.TimeLeft)
	}

	// Only one charge.
	s.state.TimeLeft = 5
	s.Update(keyPress('t'))
	if s.state.TimeLeft != 5 {
		t.Errorf("timeLeft = %d, want unchanged 5", s.state.TimeLeft)
	}
}

func TestShieldSoloIgnored(t *testing.T) {
	s := mountedScreen(t)
	s.Update(keyPress('s'))
	if s.state.Engine.ShieldActive() {
		t.Error("shield must not arm in solo mode")
	}
}

func TestQuitConfirm(t *testing.T) {
	s := mountedScreen(t)

	s.Update(specialKey(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("esc should raise the quit confirmation")
	}

	s.Update(keyPress('n'))
	if s.quitConfirm {
		t.Error("n should dismiss the confirmation")
	}
	if s.state.Phase != session.PhaseActive {
		t.Error("declining should keep the session running")
	}
}

func TestChainedTerminalPathsFinalizeOnce(t *testing.T) {
	backend := newCountingBackend()
	s := NewMultiplayer(Deps{API: api.New("http://127.0.0.1:0", time.Second)}, testQuiz(), nil, nil)
	s.rec = recorder.New("sess-1", backend, nil)

	// Miss every question. The third miss exhausts the lives and
	// terminates the session, firing the first finalize.
	for i := 0; i < 3; i++ {
		s.Update(specialKey(tea.KeyEnter))
		s.Update(submitResultMsg{QuestionIndex: i, Result: missResult()})
		if i < 2 {
			s.Update(specialKey(tea.KeyEnter))
		}
	}
	if s.state.Phase != session.PhaseTerminated {
		t.Fatalf("phase = %d, want PhaseTerminated", s.state.Phase)
	}

	// The completion path and a confirmed manual exit route through the
	// same latch and must be absorbed.
	s.finish()
	s.quitConfirm = true
	s.Update(keyPress('y'))

	select {
	case <-backend.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the end-session call")
	}
	if got := backend.callCount(); got != 1 {
		t.Errorf("end-session calls = %d, want exactly 1", got)
	}
	if !s.rec.Closed() {
		t.Error("recorder should be closed after the terminal paths")
	}
}

func TestHeaderStats(t *testing.T) {
	s := mountedScreen(t)
	s.state.Engine.RecordCorrect(30, -1)

	points, streak := s.HeaderStats()
	if points != 160 || streak != 1 {
		t.Errorf("stats = %d, %d; want 160, 1", points, streak)
	}
}
