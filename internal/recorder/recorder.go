// Package recorder accumulates the answer timeline and power-up usage
// for one quiz session and ships it to the analytics backend exactly
// once at session end.
package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/anshgoel/quizarena/internal/api"
	"github.com/anshgoel/quizarena/internal/session"
)

// Backend is the slice of the API client the recorder needs.
type Backend interface {
	EndSession(ctx context.Context, in api.EndSessionInput) error
}

// HistoryWriter persists the local session history row. May be nil.
type HistoryWriter interface {
	AppendHistory(ctx context.Context, sum *session.Summary) error
}

const finalizeTimeout = 10 * time.Second

// Recorder owns the session timeline. Finalize is guarded by a
// closed-once latch: every terminal path (completion, lives exhausted,
// manual exit) routes through it, and only the first call ships
// anything. Safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	closed    bool
	sessionID string
	answers   []session.AnswerRecord
	powerups  []string

	backend Backend
	history HistoryWriter
}

// New creates a Recorder bound to a backend analytics session. The id
// may be empty when the start-session call failed; finalize then only
// writes local history.
func New(sessionID string, backend Backend, history HistoryWriter) *Recorder {
	return &Recorder{
		sessionID: sessionID,
		backend:   backend,
		history:   history,
	}
}

// SetSessionID binds the backend session id once the start-session call
// returns. No-op after finalize.
func (r *Recorder) SetSessionID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.sessionID = id
}

// Append adds one answer record to the timeline. No-op after finalize.
func (r *Recorder) Append(rec session.AnswerRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.answers = append(r.answers, rec)
}

// RecordPowerUp logs a power-up activation by wire name.
func (r *Recorder) RecordPowerUp(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.powerups = append(r.powerups, name)
}

// Finalize closes the session and fires the end-session call without
// blocking the caller. Returns false when the latch was already closed;
// duplicate and late attempts are absorbed silently, never errors.
func (r *Recorder) Finalize(sum *session.Summary, finalRank *int) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	r.closed = true

	timings := make([]api.QuestionTiming, 0, len(r.answers))
	for _, rec := range r.answers {
		timings = append(timings, api.QuestionTiming{
			QuestionIndex: rec.QuestionIndex,
			TimeTaken:     rec.TimeSpent,
			Correct:       rec.Correct,
		})
	}
	powerups := make([]string, len(r.powerups))
	copy(powerups, r.powerups)
	r.mu.Unlock()

	go r.flush(sum, timings, powerups, finalRank)
	return true
}

// Closed reports whether finalize has fired.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Recorder) flush(sum *session.Summary, timings []api.QuestionTiming, powerups []string, finalRank *int) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if r.backend != nil && r.sessionID != "" {
		// Fire-and-forget: a failed finalize never blocks the session.
		_ = r.backend.EndSession(ctx, api.EndSessionInput{
			SessionID:       r.sessionID,
			Score:           sum.Score,
			TotalQuestions:  sum.TotalQuestions,
			QuestionTimings: timings,
			PowerupsUsed:    powerups,
			FinalRank:       finalRank,
		})
	}

	if r.history != nil {
		_ = r.history.AppendHistory(ctx, sum)
	}
}
