package quiz

import (
	"time"

	"github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/room"
	"github.com/anshgoel/quizarena/internal/session"
)

// quizLoadedMsg is sent when the solo quiz fetch completes.
type quizLoadedMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// sessionStartedMsg carries the analytics session id, or the start error.
type sessionStartedMsg struct {
	SessionID string
	Err       error
}

// timerTickMsg is sent every second while a question is live. It carries
// the question index it was armed for; ticks from a previous question
// are dropped instead of draining the new one's clock.
type timerTickMsg struct {
	QuestionIndex int
	At            time.Time
}

// submitResultMsg carries the backend verdict for one submission.
// Result is synthetic (unverified incorrect) when the call failed.
type submitResultMsg struct {
	QuestionIndex int
	Result        *session.Result
}

// roomEventMsg wraps one inbound room channel event. Closed reports the
// channel shut down.
type roomEventMsg struct {
	Event  room.Event
	Closed bool
}
