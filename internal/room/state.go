package room

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// MaxPlayers is the room capacity enforced by the backend.
const MaxPlayers = 8

// MinPlayersToStart is the backend's minimum for game start.
const MinPlayersToStart = 2

// Avatars are the glyphs a player can be assigned in the lobby.
var Avatars = []string{"🎯", "🚀", "🧠", "🦉", "🐉", "🦊", "⚡", "🌟"}

// RandomAvatar picks an avatar glyph.
func RandomAvatar(rng *rand.Rand) string {
	return Avatars[rng.Intn(len(Avatars))]
}

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// NormalizeCode upper-cases and validates a room code. Returns the
// canonical form and whether it is a valid 6-character code.
func NormalizeCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	return code, codePattern.MatchString(code)
}

// State is the local view of a multiplayer room. Mutated exclusively by
// inbound channel events; the session controller reads it.
type State struct {
	Code      string
	Host      bool
	Connected bool
	SelfName  string

	players []Player

	// pendingDelta is the locally applied score not yet confirmed by a
	// roster snapshot. Folded into the self row for display only and
	// discarded when the next snapshot arrives.
	pendingDelta  int
	pendingStreak int
	hasPending    bool
}

// NewState creates room state for the named local player.
func NewState(selfName string) *State {
	return &State{SelfName: selfName}
}

// ApplyRoster replaces the roster wholesale. The snapshot is
// authoritative: any pending optimistic score is discarded.
func (s *State) ApplyRoster(players []Player) {
	s.players = make([]Player, len(players))
	copy(s.players, players)
	s.hasPending = false
	s.pendingDelta = 0
	s.pendingStreak = 0
}

// AddPending tags an optimistic score delta for the local player,
// shown until the next snapshot confirms or supersedes it.
func (s *State) AddPending(delta, streak int) {
	s.pendingDelta += delta
	s.pendingStreak = streak
	s.hasPending = true
}

// Players returns the roster with any pending local delta folded into
// the self row, in stable backend order.
func (s *State) Players() []Player {
	out := make([]Player, len(s.players))
	copy(out, s.players)
	if s.hasPending {
		for i := range out {
			if out[i].Name == s.SelfName {
				out[i].Score += s.pendingDelta
				out[i].Streak = s.pendingStreak
				break
			}
		}
	}
	return out
}

// Leaderboard returns the roster sorted by score descending, ties
// broken by name for stable rendering.
func (s *State) Leaderboard() []Player {
	out := s.Players()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SelfRank returns the local player's 1-based leaderboard position, or
// 0 when the player is not in the roster.
func (s *State) SelfRank() int {
	for i, p := range s.Leaderboard() {
		if p.Name == s.SelfName {
			return i + 1
		}
	}
	return 0
}

// Size returns the roster size.
func (s *State) Size() int {
	return len(s.players)
}
