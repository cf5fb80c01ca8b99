package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anshgoel/quizarena/internal/screen"
)

// navScreen stands in for a real screen in navigation tests.
type navScreen struct {
	name    string
	initRan bool
}

func (s *navScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *navScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *navScreen) View(int, int) string                    { return s.name }
func (s *navScreen) Title() string                           { return s.name }

func TestPushRunsInit(t *testing.T) {
	home := &navScreen{name: "Home"}
	r := New(home)

	lobby := &navScreen{name: "Lobby"}
	r.Push(lobby)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "Lobby" {
		t.Errorf("active = %q, want Lobby", r.Active().Title())
	}
	if !lobby.initRan {
		t.Error("pushed screen's Init should run")
	}
}

func TestPopReturnsToPrevious(t *testing.T) {
	home := &navScreen{name: "Home"}
	r := New(home)

	r.Push(&navScreen{name: "History"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", r.Active().Title())
	}
}

func TestPopKeepsRootScreen(t *testing.T) {
	r := New(&navScreen{name: "Home"})

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth = %d after pop at root, want 1", r.Depth())
	}
	if r.Active().Title() != "Home" {
		t.Error("root screen must survive a pop")
	}
}

// Lobby to game is a replace so that backing out of the game does not
// land in a stale lobby.
func TestReplaceSwapsTopInPlace(t *testing.T) {
	home := &navScreen{name: "Home"}
	r := New(home)
	r.Push(&navScreen{name: "Lobby"})

	game := &navScreen{name: "Room ABC123"}
	r.Replace(game)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "Room ABC123" {
		t.Errorf("active = %q, want Room ABC123", r.Active().Title())
	}
	if !game.initRan {
		t.Error("replacement screen's Init should run")
	}

	r.Pop()
	if r.Active().Title() != "Home" {
		t.Error("pop after replace should skip the replaced screen")
	}
}

func TestNavigationMessages(t *testing.T) {
	r := New(&navScreen{name: "Home"})

	lobby := &navScreen{name: "Lobby"}
	r.Update(PushScreenMsg{Screen: lobby})
	if r.Active().Title() != "Lobby" || !lobby.initRan {
		t.Error("PushScreenMsg should push and init the screen")
	}

	results := &navScreen{name: "Results"}
	r.Update(ReplaceScreenMsg{Screen: results})
	if r.Active().Title() != "Results" || r.Depth() != 2 {
		t.Errorf("ReplaceScreenMsg: active=%q depth=%d", r.Active().Title(), r.Depth())
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "Home" {
		t.Errorf("PopScreenMsg: active = %q, want Home", r.Active().Title())
	}
}
