package store

import (
	"context"
	"fmt"
	"time"

	"github.com/anshgoel/quizarena/internal/session"
)

// HistoryEntry is one finished session as stored locally.
type HistoryEntry struct {
	ID             int
	QuizID         string
	Multiplayer    bool
	Terminated     bool
	Score          int
	TotalQuestions int
	Points         int
	BestStreak     int
	AvgTimeSeconds float64
	Accuracy       float64
	PlayedAt       time.Time
}

// AppendHistory records a finished session. Satisfies the recorder's
// history writer.
func (s *Store) AppendHistory(ctx context.Context, sum *session.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_history
			(quiz_id, multiplayer, terminated, score, total_questions,
			 points, best_streak, avg_time_secs, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.QuizID, sum.Multiplayer, sum.Terminated, sum.Score,
		sum.TotalQuestions, sum.Points, sum.BestStreak,
		sum.AvgTimeSeconds, sum.Accuracy,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// RecentHistory returns the most recent sessions, newest first.
func (s *Store) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, quiz_id, multiplayer, terminated, score, total_questions,
		       points, best_streak, avg_time_secs, accuracy, played_at
		FROM session_history
		ORDER BY played_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.QuizID, &e.Multiplayer, &e.Terminated, &e.Score,
			&e.TotalQuestions, &e.Points, &e.BestStreak,
			&e.AvgTimeSeconds, &e.Accuracy, &e.PlayedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ClearHistory deletes all local session history rows and returns how
// many were removed.
func (s *Store) ClearHistory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session_history`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
