// Package powerup manages the three consumable power-ups available in a
// quiz session and the usage log shipped to analytics at finalize.
package powerup

import (
	"math/rand"

	"github.com/anshgoel/quizarena/internal/quiz"
	"github.com/anshgoel/quizarena/internal/scoring"
)

// Kind identifies a power-up. The String form is the wire name the
// analytics backend expects in powerups_used.
type Kind int

const (
	KindFiftyFifty Kind = iota // hide all but one incorrect option
	KindTimeExtend             // +10 seconds, capped at the 30s ceiling
	KindShield                 // absorb the next life loss
)

func (k Kind) String() string {
	switch k {
	case KindFiftyFifty:
		return "fiftyFifty"
	case KindTimeExtend:
		return "timeFreeze"
	case KindShield:
		return "shield"
	default:
		return "unknown"
	}
}

// TimeExtendSeconds is added to the countdown by a time extension.
const TimeExtendSeconds = 10

// Bank tracks remaining uses per power-up for one session. Each counter
// starts at 1. Not safe for concurrent use; the session controller owns it.
type Bank struct {
	counts map[Kind]int
	usage  []string

	revealQuestion int      // question index the last reveal applied to
	revealKept     []string // options kept by that reveal

	rng *rand.Rand
}

// NewBank creates a bank with one use of each power-up.
func NewBank(rng *rand.Rand) *Bank {
	return &Bank{
		counts: map[Kind]int{
			KindFiftyFifty: 1,
			KindTimeExtend: 1,
			KindShield:     1,
		},
		revealQuestion: -1,
		rng:            rng,
	}
}

// Remaining returns the unused count for a power-up kind.
func (b *Bank) Remaining(k Kind) int {
	return b.counts[k]
}

// Usage returns the activation log in order, by wire name.
func (b *Bank) Usage() []string {
	out := make([]string, len(b.usage))
	copy(out, b.usage)
	return out
}

func (b *Bank) consume(k Kind) bool {
	if b.counts[k] <= 0 {
		return false
	}
	b.counts[k]--
	b.usage = append(b.usage, k.String())
	return true
}

// Reveal applies the fifty-fifty reduction to the question at
// questionIndex: the correct option plus one randomly chosen incorrect
// option remain. Calling it again for the same question returns the
// previous result without touching the inventory. Returns nil when no
// use remains.
func (b *Bank) Reveal(questionIndex int, q *quiz.Question) []string {
	if b.revealQuestion == questionIndex {
		return b.revealKept
	}
	if !b.consume(KindFiftyFifty) {
		return nil
	}

	var wrong []string
	for _, opt := range q.Options {
		if quiz.OptionLabel(opt) != q.Correct {
			wrong = append(wrong, opt)
		}
	}
	keepWrong := wrong[b.rng.Intn(len(wrong))]

	var kept []string
	for _, opt := range q.Options {
		if quiz.OptionLabel(opt) == q.Correct || opt == keepWrong {
			kept = append(kept, opt)
		}
	}

	b.revealQuestion = questionIndex
	b.revealKept = kept
	return kept
}

// RevealedFor returns the reveal result for a question, or nil when the
// reveal has not been applied to it.
func (b *Bank) RevealedFor(questionIndex int) []string {
	if b.revealQuestion == questionIndex {
		return b.revealKept
	}
	return nil
}

// ExtendTime adds the extension to the remaining countdown, capped at
// the original ceiling. The returned ok is false when no use remains.
func (b *Bank) ExtendTime(remainingSeconds int) (seconds int, ok bool) {
	if !b.consume(KindTimeExtend) {
		return remainingSeconds, false
	}
	extended := remainingSeconds + TimeExtendSeconds
	if extended > scoring.MaxTimeSeconds {
		extended = scoring.MaxTimeSeconds
	}
	return extended, true
}

// UseShield consumes a shield charge. The caller arms the scoring engine;
// the bank only tracks inventory and usage. Returns false when no use
// remains.
func (b *Bank) UseShield() bool {
	return b.consume(KindShield)
}
