package quiz

import "strings"

// Difficulty is the closed set of quiz difficulty tags. Unknown tags
// parse to DifficultyMedium so a badge is always renderable.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// ParseDifficulty maps a backend difficulty string to the enumeration.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// String returns the wire form used in API requests.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "medium"
	}
}

// Badge is the display treatment for a difficulty tag.
type Badge struct {
	Glyph string
	Label string
	Color string // hex color, consumed by the theme
}

// BadgeFor returns the badge for a difficulty. Total over the enum.
func BadgeFor(d Difficulty) Badge {
	switch d {
	case DifficultyEasy:
		return Badge{Glyph: "●", Label: "EASY", Color: "#22C55E"}
	case DifficultyHard:
		return Badge{Glyph: "▲", Label: "HARD", Color: "#F43F5E"}
	default:
		return Badge{Glyph: "◆", Label: "MEDIUM", Color: "#F59E0B"}
	}
}
