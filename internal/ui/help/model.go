// Package help renders the full key binding reference for the folder
// browser.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-browser/internal/keys"
	"github.com/nhle/mail-browser/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates the help overlay over the browser key map.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view. The overlay is static;
// closing it is the root model's job.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the key reference grouped the way the key map groups
// its bindings: navigation, views, filtering, mailbox management.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Folder browser keys")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	bindings := m.help.View(m.keys)

	footer := theme.HelpStyle.Render(
		"Mailbox operations apply in the remote view; tagging needs multi-select mode.")

	content := lipgloss.JoinVertical(lipgloss.Left, title, bindings, "", footer)

	return theme.PreviewPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
