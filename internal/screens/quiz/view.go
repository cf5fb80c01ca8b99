package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/powerup"
	quizdata "github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/scoring"
	"github.com/anshgoel/quizarena/internal/session"
	"github.com/anshgoel/quizarena/internal/ui/components"
	"github.com/anshgoel/quizarena/internal/ui/theme"
)

const sidebarWidth = 26

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.loading || s.state == nil {
		return renderLoading(width)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}

	mainWidth := width
	if s.roomState != nil {
		mainWidth = width - sidebarWidth
	}

	main := s.renderQuestion(mainWidth)
	if s.roomState == nil {
		return main
	}

	sidebar := s.renderSidebar(sidebarWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, main, sidebar)
}

// renderQuestion renders the HUD, countdown, options, power-up bar, and
// feedback panel.
func (s *QuizScreen) renderQuestion(width int) string {
	state := s.state
	q := state.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	// HUD line.
	badge := quizdata.BadgeFor(state.Quiz.Difficulty)
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q %d/%d", state.Index+1, len(state.Quiz.Questions)))
	left += "  " + lipgloss.NewStyle().
		Foreground(lipgloss.Color(badge.Color)).
		Render(badge.Glyph+" "+badge.Label)

	var right string
	if state.Engine.Multiplayer() {
		right += renderLives(state.Engine.Lives) + "  "
		if state.Engine.ShieldActive() {
			right += lipgloss.NewStyle().Foreground(theme.Secondary).Render("🛡 ") + " "
		}
	}
	right += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("combo x%d", state.Engine.Combo))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n\n")

	// Countdown bar.
	fraction := float64(state.TimeLeft) / float64(scoring.MaxTimeSeconds)
	bar := components.ProgressBar{
		Label:     fmt.Sprintf("⏱ %2ds", state.TimeLeft),
		Percent:   fraction,
		Width:     min(width-8, 60),
		FillColor: components.TimerColor(fraction),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.opts.View()))
	b.WriteString("\n")

	// Power-up bar.
	if state.Phase == session.PhaseActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderPowerups()))
		b.WriteString("\n")
	}

	// Feedback.
	if state.Phase == session.PhaseResolved || state.Phase == session.PhaseTerminated {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	if s.toast != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.toast))
	}

	return b.String()
}

// renderPowerups shows remaining inventory with activation keys.
func (s *QuizScreen) renderPowerups() string {
	bank := s.state.Bank

	item := func(key, name string, remaining int) string {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if remaining <= 0 {
			style = lipgloss.NewStyle().Foreground(theme.TextDim).Strikethrough(true)
		}
		return style.Render(fmt.Sprintf("[%s] %s", key, name))
	}

	parts := []string{
		item("F", "50:50", bank.Remaining(powerup.KindFiftyFifty)),
		item("T", "+10s", bank.Remaining(powerup.KindTimeExtend)),
	}
	if s.state.Engine.Multiplayer() {
		parts = append(parts, item("S", "Shield", bank.Remaining(powerup.KindShield)))
	}
	return strings.Join(parts, "   ")
}

// renderFeedback renders the verdict panel under the options.
func (s *QuizScreen) renderFeedback(width int) string {
	state := s.state
	res := state.LastResult
	if res == nil {
		return ""
	}

	var b strings.Builder

	if res.Correct {
		verdict := fmt.Sprintf("Correct!  +%d pts", lastPoints(state))
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render(verdict))
		if state.Celebrate {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Gold).
				Bold(true).
				Render(fmt.Sprintf("🔥 %d in a row!", state.Engine.Streak)))
		}
	} else {
		verdict := "Not quite"
		if !res.Verified {
			verdict = "Could not verify answer"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render(verdict))
		if res.CorrectLabel != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render("Correct answer: " + res.CorrectLabel))
		}
	}

	if res.Explanation != "" {
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(res.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}

	if state.Phase == session.PhaseTerminated {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Out of lives!"))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to continue..."))

	return b.String()
}

// renderSidebar renders the live room leaderboard.
func (s *QuizScreen) renderSidebar(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("LEADERBOARD")

	rows := make([]components.RosterRow, 0, s.roomState.Size())
	for i, p := range s.roomState.Leaderboard() {
		rows = append(rows, components.RosterRow{
			Rank:   i + 1,
			Avatar: p.Avatar,
			Name:   p.Name,
			Score:  p.Score,
			Streak: p.Streak,
			Self:   p.Name == s.roomState.SelfName,
		})
	}

	status := lipgloss.NewStyle().Foreground(theme.Success).Render("● online")
	if !s.channel.Connected() {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render("● reconnecting")
	}

	body := title + "\n\n" + components.RenderLeaderboard(rows, width-4) + "\n" + status

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Padding(0, 1).
		Render(body)
}

func renderLives(lives int) string {
	full := lipgloss.NewStyle().Foreground(theme.Error).Render(strings.Repeat("❤ ", max(lives, 0)))
	lost := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("♡ ", max(scoring.StartingLives-lives, 0)))
	return full + lost
}

// lastPoints returns the points shown for the latest correct answer:
// the backend value when present, otherwise the local estimate already
// applied to the engine.
func lastPoints(state *session.State) int {
	if state.LastResult != nil && state.LastResult.PointsAwarded >= 0 {
		return state.LastResult.PointsAwarded
	}
	if n := len(state.Records); n > 0 {
		// Reconstruct from the combo prior to this answer.
		return scoring.PointsFor(true, state.TimeLeft, state.Engine.Combo-1)
	}
	return 0
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave the quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress so far will be recorded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep playing"))

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading quiz...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
