// Package history lists recent local quiz sessions.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/screen"
	"github.com/anshgoel/quizarena/internal/store"
	"github.com/anshgoel/quizarena/internal/ui/theme"
)

const pageSize = 15

// historyLoadedMsg carries the query result.
type historyLoadedMsg struct {
	Entries []store.HistoryEntry
	Err     error
}

// HistoryScreen shows the most recent sessions, newest first.
type HistoryScreen struct {
	st      *store.Store
	entries []store.HistoryEntry
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{st: st}
}

func (h *HistoryScreen) Init() tea.Cmd {
	st := h.st
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := st.RecentHistory(ctx, pageSize)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(historyLoadedMsg); ok {
		h.loaded = true
		if m.Err != nil {
			h.errMsg = m.Err.Error()
		} else {
			h.entries = m.Entries
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + h.errMsg)
	}
	if len(h.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No sessions yet. Play a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	header := fmt.Sprintf("  %-17s %-12s %-7s %-8s %-7s %s",
		"PLAYED", "QUIZ", "SCORE", "POINTS", "STREAK", "MODE")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(header))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render("  " + strings.Repeat("─", min(width-6, 64))))
	b.WriteString("\n")

	for _, e := range h.entries {
		mode := "solo"
		if e.Multiplayer {
			mode = "room"
		}
		if e.Terminated {
			mode += " ✕"
		}

		quizID := e.QuizID
		if len(quizID) > 10 {
			quizID = quizID[:10] + "…"
		}

		line := fmt.Sprintf("  %-17s %-12s %-7s %-8d %-7d %s",
			e.PlayedAt.Local().Format("2006-01-02 15:04"),
			quizID,
			fmt.Sprintf("%d/%d", e.Score, e.TotalQuestions),
			e.Points,
			e.BestStreak,
			mode,
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Terminated {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
