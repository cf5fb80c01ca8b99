package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/api"
	"github.com/anshgoel/quizarena/internal/config"
	"github.com/anshgoel/quizarena/internal/router"
	"github.com/anshgoel/quizarena/internal/screen"
	"github.com/anshgoel/quizarena/internal/screens/home"
	"github.com/anshgoel/quizarena/internal/store"
	"github.com/anshgoel/quizarena/internal/ui/layout"
)

// Options carries the shared dependencies into the UI.
type Options struct {
	Config config.Config
	API    *api.Client
	Store  *store.Store

	// QuizID, when set, skips the home screen input and jumps straight
	// into a solo session (the `play` command).
	QuizID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Config: opts.Config,
		API:    opts.API,
		Store:  opts.Store,
		QuizID: opts.QuizID,
	})
	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// Hard quit. Skips session finalize, the same as closing
			// the terminal window; esc is the graceful exit.
			return m, tea.Quit
		case "esc":
			// Screens with their own esc handling (quit confirm, input
			// fields) intercept before this fallback fires.
			if m.router.Depth() > 1 && !activeHandlesEsc(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// EscHandler is implemented by screens that own the esc key.
type EscHandler interface {
	HandlesEsc() bool
}

func activeHandlesEsc(s screen.Screen) bool {
	h, ok := s.(EscHandler)
	return ok && h.HandlesEsc()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var points, streak int
	if sp, ok := active.(screen.StatsProvider); ok {
		points, streak = sp.HeaderStats()
	}

	header := layout.RenderHeader(title, points, streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
