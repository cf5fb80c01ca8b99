package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anshgoel/quizarena/internal/ui/theme"
)

// Option is one selectable answer.
type Option struct {
	Label string // "A".."D"
	Text  string
}

// OptionList renders a question's answer options. Options may shrink
// mid-question (fifty-fifty); selection snaps back into range.
type OptionList struct {
	Prompt   string
	Options  []Option
	Selected int

	// Resolved freezes input and switches to verdict coloring.
	Resolved     bool
	ChosenLabel  string
	CorrectLabel string
}

// NewOptionList creates an option list for a question.
func NewOptionList(prompt string, options []Option) OptionList {
	return OptionList{
		Prompt:  prompt,
		Options: options,
	}
}

// SetOptions swaps the visible options, keeping the selection valid.
func (o *OptionList) SetOptions(options []Option) {
	o.Options = options
	if o.Selected >= len(options) {
		o.Selected = len(options) - 1
	}
	if o.Selected < 0 {
		o.Selected = 0
	}
}

// SelectedLabel returns the label of the highlighted option, or "".
func (o OptionList) SelectedLabel() string {
	if o.Selected < 0 || o.Selected >= len(o.Options) {
		return ""
	}
	return o.Options[o.Selected].Label
}

// SelectByLabel moves the highlight to the option with the given label.
func (o *OptionList) SelectByLabel(label string) bool {
	for i, opt := range o.Options {
		if opt.Label == label {
			o.Selected = i
			return true
		}
	}
	return false
}

// Resolve freezes the list with the verdict coloring.
func (o *OptionList) Resolve(chosen, correct string) {
	o.Resolved = true
	o.ChosenLabel = chosen
	o.CorrectLabel = correct
}

// Update handles keyboard navigation. Input is ignored once resolved.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Resolved {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	}

	return o, nil
}

// View renders the option list.
func (o OptionList) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(o.Prompt) + "\n\n"

	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Resolved {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, opt.Label, opt.Text)

		if o.Resolved {
			switch opt.Label {
			case o.CorrectLabel:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case o.ChosenLabel:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == o.Selected {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}

	return s
}
