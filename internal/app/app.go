// Package app hosts the interactive draft editor.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdraft/internal/router"
	"github.com/abhisek/examdraft/internal/screen"
	"github.com/abhisek/examdraft/internal/screens/home"
	"github.com/abhisek/examdraft/internal/ui/layout"
)

const quitNotice = "Unsaved changes. Ctrl+S to save, Ctrl+C again to quit without saving."

// AppModel is the root model. It owns the screen stack and the global keys:
// Ctrl+S saves from any screen, Esc goes back and Ctrl+C quits, asking
// once when the draft has unsaved changes.
type AppModel struct {
	env         *screen.Env
	router      *router.Router
	width       int
	height      int
	confirmQuit bool
}

func newAppModel(env *screen.Env) AppModel {
	return AppModel{
		env:    env,
		router: router.New(home.New(env)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.SavedMsg:
		m.env.MarkSaved(msg)

	case tea.KeyPressMsg:
		key := msg.String()
		if key != "ctrl+c" {
			m.confirmQuit = false
		}
		switch key {
		case "ctrl+c":
			if m.env.Dirty() && !m.confirmQuit {
				m.confirmQuit = true
				return m, nil
			}
			return m, tea.Quit
		case "ctrl+s":
			return m, m.env.SaveCmd()
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			return m, m.router.Pop()
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) hints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	notice := ""
	if m.confirmQuit {
		notice = quitNotice
	}
	header := layout.RenderHeader(m.router.Breadcrumb(), m.env.Draft.Code, m.env.Draft.Ready(), m.width)
	footer := layout.RenderFooter(m.hints(), notice, m.width)

	content := m.router.View(m.width, max(m.height-layout.HeaderHeight-layout.FooterHeight, 0))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run edits env's draft until the user quits.
func Run(env *screen.Env) error {
	if _, err := tea.NewProgram(newAppModel(env)).Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
