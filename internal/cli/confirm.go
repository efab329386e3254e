package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Prompt styles
var (
	promptSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	promptNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	promptDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ConfirmModel - Interactive yes/no prompt
// =============================================================================

// ConfirmModel is the bubbletea model for a yes/no question. The answer
// starts at "no"; quitting without choosing leaves Confirmed false.
type ConfirmModel struct {
	Question  string
	Yes       bool
	Confirmed bool
	Done      bool
}

// NewConfirmModel creates a prompt for question.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Done = true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab":
		m.Yes = !m.Yes
	case "y", "Y":
		m.Yes, m.Confirmed, m.Done = true, true, true
		return m, tea.Quit
	case "n", "N":
		m.Yes, m.Done = false, true
		return m, tea.Quit
	case "enter":
		m.Confirmed, m.Done = m.Yes, true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Done {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Question))
	b.WriteString("\n\n  ")
	for i, choice := range []string{"Yes", "No"} {
		selected := (i == 0) == m.Yes
		if i > 0 {
			b.WriteString("   ")
		}
		if selected {
			b.WriteString(promptSelectedStyle.Render("▸ " + choice))
		} else {
			b.WriteString(promptNormalStyle.Render("  " + choice))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(promptDimStyle.Render("←/→ choose  ⏎ confirm  y/n answer  q cancel"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Prompting
// =============================================================================

// isInteractive reports whether stdin is a terminal a prompt can read from.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm runs the prompt on the given streams and returns the answer.
func confirm(question string, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(question), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	return final.(ConfirmModel).Confirmed, nil
}
