package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the backend has no quiz for the requested ID,
// or the payload it returned was unusable. Callers show the terminal
// not-found view and offer a single way back home.
var ErrNotFound = errors.New("quiz not found")

// Question is a single multiple-choice question. Immutable once parsed.
type Question struct {
	ID         string
	Prompt     string
	Options    []string // each option starts with its label, e.g. "A) ..."
	Correct    string   // the correct option's label
	Difficulty Difficulty
}

// Quiz is the full question set delivered by the backend or over the
// room channel.
type Quiz struct {
	ID         string
	Difficulty Difficulty
	Questions  []Question
	ShareLink  string
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.Questions)
}

// OptionLabel extracts the label character from an option string.
// Options are shaped "A) text"; the label is the first character.
func OptionLabel(option string) string {
	if option == "" {
		return ""
	}
	return string(option[0])
}

// OptionText returns the option's display text without the label prefix.
func OptionText(option string) string {
	if i := strings.Index(option, ")"); i >= 0 && i+1 < len(option) {
		return strings.TrimSpace(option[i+1:])
	}
	return option
}

// payload mirrors the backend's playground response shape.
type payload struct {
	ID         string            `json:"id"`
	QuizID     string            `json:"quiz_id"`
	Difficulty string            `json:"difficulty"`
	ShareLink  string            `json:"share_link"`
	Questions  []questionPayload `json:"questions"`
}

type questionPayload struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// fromPayload converts a validated payload into the immutable Quiz model.
func fromPayload(p *payload) (*Quiz, error) {
	id := p.QuizID
	if id == "" {
		id = p.ID
	}

	q := &Quiz{
		ID:         id,
		Difficulty: ParseDifficulty(p.Difficulty),
		ShareLink:  p.ShareLink,
	}

	for i, qp := range p.Questions {
		if len(qp.Options) < 2 {
			return nil, fmt.Errorf("question %d: need at least 2 options, got %d", i, len(qp.Options))
		}
		correct := strings.ToUpper(strings.TrimSpace(qp.Correct))
		found := false
		for _, opt := range qp.Options {
			if OptionLabel(opt) == correct {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("question %d: correct label %q matches no option", i, qp.Correct)
		}

		qid := qp.ID
		if qid == "" {
			qid = fmt.Sprintf("%s-%d", id, i)
		}
		q.Questions = append(q.Questions, Question{
			ID:         qid,
			Prompt:     qp.Question,
			Options:    qp.Options,
			Correct:    correct,
			Difficulty: q.Difficulty,
		})
	}

	if len(q.Questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}
	return q, nil
}
