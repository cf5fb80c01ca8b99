// Package lobby hosts the multiplayer room screens: creating a room as
// host and joining one by code, up to the game-start handoff.
package lobby

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	quizdata "github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/room"
	"github.com/anshgoel/quizarena/internal/router"
	"github.com/anshgoel/quizarena/internal/screen"
	quizscreen "github.com/anshgoel/quizarena/internal/screens/quiz"
	"github.com/anshgoel/quizarena/internal/ui/components"
	"github.com/anshgoel/quizarena/internal/ui/layout"
	"github.com/anshgoel/quizarena/internal/ui/theme"
)

// roomEventMsg wraps one inbound room channel event.
type roomEventMsg struct {
	Event  room.Event
	Closed bool
}

// LobbyScreen implements screen.Screen for the pre-game room.
type LobbyScreen struct {
	deps quizscreen.Deps

	host   bool
	quizID string // host only

	channel   *room.Channel
	roomState *room.State
	quiz      *quizdata.Quiz
	avatar    string

	codeInput components.TextInput
	entered   bool // join: code submitted, join_room sent or queued
	requested bool // host: create_room sent

	status string
	errMsg string
}

var _ screen.Screen = (*LobbyScreen)(nil)
var _ screen.KeyHintProvider = (*LobbyScreen)(nil)

// NewHost creates a lobby that opens a room for the given quiz.
func NewHost(deps quizscreen.Deps, quizID string) *LobbyScreen {
	return &LobbyScreen{
		deps:   deps,
		host:   true,
		quizID: quizID,
		status: "Connecting...",
	}
}

// NewJoin creates a lobby that prompts for a room code.
func NewJoin(deps quizscreen.Deps) *LobbyScreen {
	return &LobbyScreen{
		deps:      deps,
		codeInput: components.NewTextInput("ABC123", true, 6),
	}
}

func (l *LobbyScreen) Init() tea.Cmd {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	l.avatar = l.deps.Config.Player.Avatar
	if l.avatar == "" {
		l.avatar = room.RandomAvatar(rng)
	}
	l.roomState = room.NewState(l.deps.Config.Player.Name)
	l.roomState.Host = l.host

	if l.host {
		return l.dial()
	}
	return l.codeInput.Init()
}

// dial opens the channel and starts consuming its events.
func (l *LobbyScreen) dial() tea.Cmd {
	l.channel = room.Dial(context.Background(), l.deps.Config.Socket.URL)
	return listenRoom(l.channel)
}

func (l *LobbyScreen) Title() string {
	if l.roomState != nil && l.roomState.Code != "" {
		return "Room " + l.roomState.Code
	}
	if l.host {
		return "Host Room"
	}
	return "Join Room"
}

// HandlesEsc claims esc so leaving the lobby also closes the channel.
func (l *LobbyScreen) HandlesEsc() bool {
	return true
}

func (l *LobbyScreen) KeyHints() []layout.KeyHint {
	if l.host && l.canStart() {
		return []layout.KeyHint{
			{Key: "S", Description: "Start game"},
			{Key: "Esc", Description: "Leave room"},
		}
	}
	if !l.host && !l.entered {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Join"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Leave room"},
	}
}

func (l *LobbyScreen) canStart() bool {
	return l.host && l.quiz != nil && l.roomState.Size() >= room.MinPlayersToStart
}

func (l *LobbyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roomEventMsg:
		return l.handleRoomEvent(msg)
	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if !l.host && !l.entered {
		var cmd tea.Cmd
		l.codeInput, cmd = l.codeInput.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LobbyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return l.leave()

	case "enter":
		if !l.host && !l.entered {
			code, ok := room.NormalizeCode(l.codeInput.Value())
			if !ok {
				l.codeInput.Submit(false)
				l.errMsg = "Room codes are 6 letters or digits."
				return l, nil
			}
			l.errMsg = ""
			l.codeInput.Submit(true)
			l.entered = true
			l.roomState.Code = code
			l.status = "Connecting..."
			return l, l.dial()
		}

	case "s", "S":
		if l.canStart() {
			l.channel.StartGame(l.roomState.Code)
			l.status = "Starting..."
			return l, nil
		}
	}

	if !l.host && !l.entered {
		var cmd tea.Cmd
		l.codeInput, cmd = l.codeInput.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LobbyScreen) handleRoomEvent(msg roomEventMsg) (screen.Screen, tea.Cmd) {
	if msg.Closed {
		return l, nil
	}

	ev := msg.Event
	switch ev.Type {
	case room.EventConnected:
		l.status = ""
		if l.host && !l.requested {
			l.requested = true
			l.channel.CreateRoom(l.quizID, l.roomState.SelfName, l.avatar)
			l.status = "Creating room..."
		} else if !l.host && l.entered {
			l.channel.JoinRoom(l.roomState.Code, l.roomState.SelfName, l.avatar)
			l.status = "Joining room..."
		}

	case room.EventDisconnected:
		l.status = "Reconnecting..."

	case room.EventConnectError:
		l.status = "Reconnecting..."

	case room.EventRoomCreated:
		l.roomState.Code = ev.RoomCode
		l.acceptQuiz(ev.QuizData)
		l.status = ""

	case room.EventQuizReceived:
		l.acceptQuiz(ev.QuizData)
		l.status = ""

	case room.EventRoomUpdate:
		l.roomState.ApplyRoster(ev.Roster)

	case room.EventPlayerJoined:
		l.status = ev.PlayerName + " joined"

	case room.EventGameStarted:
		if l.quiz == nil {
			l.errMsg = "Game started before the quiz arrived."
			break
		}
		// Hand the live channel and room state over to the session
		// controller; the lobby stops listening here.
		deps, q, ch, rs := l.deps, l.quiz, l.channel, l.roomState
		return l, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: quizscreen.NewMultiplayer(deps, q, ch, rs),
			}
		}

	case room.EventError:
		l.errMsg = ev.Message
	}

	return l, listenRoom(l.channel)
}

// acceptQuiz validates an inbound quiz payload. The first accepted
// payload wins; later duplicates are ignored.
func (l *LobbyScreen) acceptQuiz(raw []byte) {
	if l.quiz != nil || raw == nil {
		return
	}
	q, err := quizdata.Parse(raw)
	if err != nil {
		l.errMsg = "Received an invalid quiz payload."
		return
	}
	l.quiz = q
}

func (l *LobbyScreen) leave() (screen.Screen, tea.Cmd) {
	if l.channel != nil {
		l.channel.Close()
	}
	return l, func() tea.Msg { return router.PopScreenMsg{} }
}

func (l *LobbyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if !l.host && !l.entered {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render("Enter room code"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l.codeInput.View()))
		if l.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Render(l.errMsg))
		}
		return b.String()
	}

	// Room code banner.
	if l.roomState.Code != "" {
		code := lipgloss.NewStyle().
			Foreground(theme.Gold).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Gold).
			Padding(0, 3).
			Render(l.roomState.Code)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, code))
		b.WriteString("\n")
		if l.host {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render("Share this code with up to 7 friends"))
		}
		b.WriteString("\n\n")
	}

	// Roster.
	players := l.roomState.Players()
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Players %d/%d", len(players), room.MaxPlayers)))
	b.WriteString("\n\n")

	rows := make([]components.RosterRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, components.RosterRow{
			Avatar: p.Avatar,
			Name:   p.Name,
			Self:   p.Name == l.roomState.SelfName,
		})
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.RenderRoster(rows, 30)))
	b.WriteString("\n")

	// Status / prompts.
	switch {
	case l.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(l.errMsg))
	case l.host && l.canStart():
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Press S to start the game"))
	case l.host:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Waiting for players (%d needed to start)...", room.MinPlayersToStart)))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Waiting for the host to start..."))
	}

	if l.status != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(l.status))
	}

	return b.String()
}

// listenRoom waits for the next inbound room event.
func listenRoom(ch *room.Channel) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch.Events()
		if !ok {
			return roomEventMsg{Closed: true}
		}
		return roomEventMsg{Event: ev}
	}
}
