package room

import (
	"math/rand"
	"testing"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		valid bool
	}{
		{"abc123", "ABC123", true},
		{"  XyZ789  ", "XYZ789", true},
		{"ABC12", "ABC12", false},
		{"ABC1234", "ABC1234", false},
		{"ABC-12", "ABC-12", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, valid := NormalizeCode(tt.raw)
		if got != tt.want || valid != tt.valid {
			t.Errorf("NormalizeCode(%q) = %q, %v; want %q, %v", tt.raw, got, valid, tt.want, tt.valid)
		}
	}
}

func TestRandomAvatar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := RandomAvatar(rng)
	found := false
	for _, a := range Avatars {
		if a == got {
			found = true
		}
	}
	if !found {
		t.Errorf("RandomAvatar returned %q, not in the avatar set", got)
	}
}

func roster() []Player {
	return []Player{
		{ID: "1", Name: "ash", Score: 100, Streak: 1},
		{ID: "2", Name: "kai", Score: 250, Streak: 3},
		{ID: "3", Name: "rio", Score: 100, Streak: 0},
	}
}

func TestApplyRosterDiscardsPending(t *testing.T) {
	s := NewState("ash")
	s.ApplyRoster(roster())
	s.AddPending(160, 2)

	// A fresh snapshot is authoritative.
	s.ApplyRoster(roster())
	for _, p := range s.Players() {
		if p.Name == "ash" && p.Score != 100 {
			t.Errorf("ash score = %d, want snapshot value 100", p.Score)
		}
	}
}

func TestPlayersFoldsPendingIntoSelf(t *testing.T) {
	s := NewState("ash")
	s.ApplyRoster(roster())
	s.AddPending(160, 2)
	s.AddPending(170, 3)

	var self Player
	for _, p := range s.Players() {
		if p.Name == "ash" {
			self = p
		}
	}
	if self.Score != 430 {
		t.Errorf("self score = %d, want 100+160+170", self.Score)
	}
	if self.Streak != 3 {
		t.Errorf("self streak = %d, want latest 3", self.Streak)
	}

	// Other players are untouched.
	for _, p := range s.Players() {
		if p.Name == "kai" && p.Score != 250 {
			t.Errorf("kai score = %d, want 250", p.Score)
		}
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	s := NewState("ash")
	s.ApplyRoster(roster())

	board := s.Leaderboard()
	if len(board) != 3 {
		t.Fatalf("board = %d players, want 3", len(board))
	}
	if board[0].Name != "kai" {
		t.Errorf("leader = %q, want kai", board[0].Name)
	}
	// Equal scores tie-break by name.
	if board[1].Name != "ash" || board[2].Name != "rio" {
		t.Errorf("tie order = %q, %q; want ash, rio", board[1].Name, board[2].Name)
	}
}

func TestSelfRank(t *testing.T) {
	s := NewState("ash")
	s.ApplyRoster(roster())
	if got := s.SelfRank(); got != 2 {
		t.Errorf("rank = %d, want 2", got)
	}

	// Pending points can move the local player up before the snapshot.
	s.AddPending(500, 2)
	if got := s.SelfRank(); got != 1 {
		t.Errorf("rank with pending = %d, want 1", got)
	}
}

func TestSelfRankNotInRoster(t *testing.T) {
	s := NewState("ghost")
	s.ApplyRoster(roster())
	if got := s.SelfRank(); got != 0 {
		t.Errorf("rank = %d, want 0 for unknown player", got)
	}
}

func TestSize(t *testing.T) {
	s := NewState("ash")
	if s.Size() != 0 {
		t.Error("empty state size should be 0")
	}
	s.ApplyRoster(roster())
	if s.Size() != 3 {
		t.Errorf("size = %d, want 3", s.Size())
	}
}
