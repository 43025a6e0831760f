// Package pager shows a scrollable file or message preview.
package pager

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-browser/internal/theme"
)

// CloseMsg is sent when the user leaves the pager.
type CloseMsg struct{}

// Model is the preview pager view.
type Model struct {
	viewport viewport.Model
	title    string
	width    int
	height   int
}

// New creates a new pager model.
func New(width, height int) Model {
	vp := viewport.New(width-4, height-6)
	return Model{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// SetContent loads the text to display and scrolls to the top.
func (m *Model) SetContent(title, body string) {
	m.title = title
	m.viewport.SetContent(body)
	m.viewport.GotoTop()
}

// Update handles scrolling and closing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pager panel.
func (m Model) View() string {
	title := theme.HeaderStyle.Render(m.title)
	hint := theme.HelpStyle.Render("j/k scroll | q close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), hint)
	return theme.PreviewPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the pager dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 6
}
