// Package home is the landing screen: quiz id entry and mode selection.
package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anshgoel/quizarena/internal/api"
	"github.com/anshgoel/quizarena/internal/config"
	"github.com/anshgoel/quizarena/internal/router"
	"github.com/anshgoel/quizarena/internal/screen"
	"github.com/anshgoel/quizarena/internal/screens/history"
	"github.com/anshgoel/quizarena/internal/screens/lobby"
	quizscreen "github.com/anshgoel/quizarena/internal/screens/quiz"
	"github.com/anshgoel/quizarena/internal/store"
	"github.com/anshgoel/quizarena/internal/ui/components"
)

// Deps are the dependencies the home screen threads into every flow.
type Deps struct {
	Config config.Config
	API    *api.Client
	Store  *store.Store

	// QuizID jumps straight into a solo session when set.
	QuizID string
}

// pendingAction is what the quiz id input feeds into.
type pendingAction int

const (
	actionNone pendingAction = iota
	actionSolo
	actionHost
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string

	input   components.TextInput
	pending pendingAction

	gamesPlayed int
	bestPoints  int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	// Lifetime stats for the stats bar.
	if deps.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if entries, err := deps.Store.RecentHistory(ctx, 50); err == nil {
			h.gamesPlayed = len(entries)
			for _, e := range entries {
				if e.Points > h.bestPoints {
					h.bestPoints = e.Points
				}
			}
		}
	}

	h.menuLabels = []string{"SOLO QUIZ", "HOST ROOM", "JOIN ROOM", "HISTORY", "EXIT"}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			h.promptQuizID(actionSolo)
			return nil
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			h.promptQuizID(actionHost)
			return nil
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lobby.NewJoin(h.quizDeps())}
			}
		}},
		{Label: h.menuLabels[3], Disabled: deps.Store == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Store)}
			}
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) quizDeps() quizscreen.Deps {
	return quizscreen.Deps{
		Config: h.deps.Config,
		API:    h.deps.API,
		Store:  h.deps.Store,
	}
}

func (h *HomeScreen) promptQuizID(action pendingAction) {
	h.pending = action
	h.input = components.NewTextInput("quiz id", false, 64)
	if h.deps.QuizID != "" {
		h.input.Model.SetValue(h.deps.QuizID)
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	// The play command bypasses the menu entirely.
	if h.deps.QuizID != "" {
		id := h.deps.QuizID
		h.deps.QuizID = ""
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: quizscreen.NewSolo(h.quizDeps(), id)}
		}
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.pending != actionNone {
		return h.updateInput(msg)
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			h.pending = actionNone
			return h, nil
		case "enter":
			id := strings.TrimSpace(h.input.Value())
			if id == "" {
				h.input.Submit(false)
				return h, nil
			}
			action := h.pending
			h.pending = actionNone
			switch action {
			case actionSolo:
				return h, func() tea.Msg {
					return router.PushScreenMsg{Screen: quizscreen.NewSolo(h.quizDeps(), id)}
				}
			case actionHost:
				return h, func() tea.Msg {
					return router.PushScreenMsg{Screen: lobby.NewHost(h.quizDeps(), id)}
				}
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.gamesPlayed, h.bestPoints, cw, compact))

	if h.pending != actionNone {
		sections = append(sections, renderQuizIDPrompt(h.input.View(), h.pending == actionHost, cw))
	} else {
		disabled := map[int]bool{}
		for i, item := range h.menu.Items {
			disabled[i] = item.Disabled
		}
		sections = append(sections, renderMenuButtons(h.menuLabels, h.menu.Selected, cw, disabled, compact))
	}

	content := strings.Join(sections, "\n\n")
	return components.BoardFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
