package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdraft/internal/ui/theme"
)

// NumberInput is a single-line input that accepts digits only and parses
// to a bounded non-negative integer.
type NumberInput struct {
	Model textinput.Model
	Max   int
	err   string
}

// NewNumberInput creates a focused input prefilled with value.
func NewNumberInput(prompt string, value, max int) NumberInput {
	ti := textinput.New()
	ti.Prompt = prompt + ": "
	ti.CharLimit = len(strconv.Itoa(max))
	ti.Focus()
	ti.SetValue(strconv.Itoa(value))
	ti.CursorEnd()
	return NumberInput{Model: ti, Max: max}
}

// Reset replaces the text, clearing any error.
func (n *NumberInput) Reset(s string) {
	n.Model.SetValue(s)
	n.Model.CursorEnd()
	n.err = ""
}

func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if k := kmsg.String(); len(k) == 1 && (k[0] < '0' || k[0] > '9') {
			return n, nil
		}
	}
	n.err = ""
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// Parse returns the entered value, or records an error shown by View.
func (n *NumberInput) Parse() (int, bool) {
	s := strings.TrimSpace(n.Model.Value())
	v, err := strconv.Atoi(s)
	switch {
	case s == "":
		n.err = "enter a number"
	case err != nil:
		n.err = "not a number"
	case v > n.Max:
		n.err = fmt.Sprintf("at most %d", n.Max)
	default:
		n.err = ""
		return v, true
	}
	return 0, false
}

func (n NumberInput) View() string {
	view := n.Model.View()
	if n.err != "" {
		view += "  " + theme.Incorrect.Render("✗ "+n.err)
	}
	return view
}
