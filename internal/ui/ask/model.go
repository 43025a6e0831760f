// Package ask renders one-shot prompt overlays (line input, single
// choice, yes/no) and reports the answer back to the root model.
package ask

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/mail-browser/internal/theme"
)

// Kind selects which prompt shape the overlay shows.
type Kind int

const (
	KindLine Kind = iota
	KindChoose
	KindConfirm
)

// Option is one selectable answer for a choice prompt.
type Option struct {
	Label  string
	Letter rune
}

// DoneMsg carries the prompt answer. Cancelled is set when the user
// aborted the form.
type DoneMsg struct {
	Kind      Kind
	Line      string
	Choice    rune
	Yes       bool
	Cancelled bool
}

// Model is a single active prompt overlay.
type Model struct {
	form *huh.Form
	kind Kind

	// huh binds the answers to these.
	line   string
	choice string
	yes    bool

	width  int
	height int
}

// NewLine builds a free-form text prompt.
func NewLine(title, initial string, width, height int) Model {
	m := Model{kind: KindLine, line: initial, width: width, height: height}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&m.line),
		),
	)
	return m
}

// NewChoose builds a single-select prompt.
func NewChoose(title string, options []Option, width, height int) Model {
	m := Model{kind: KindChoose, width: width, height: height}
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, string(o.Letter))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(&m.choice),
		),
	)
	return m
}

// NewConfirm builds a yes/no prompt.
func NewConfirm(title string, width, height int) Model {
	m := Model{kind: KindConfirm, width: width, height: height}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&m.yes),
		),
	)
	return m
}

// Init starts the underlying form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update advances the form and emits DoneMsg once it completes or
// aborts.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		done := DoneMsg{Kind: m.kind, Line: m.line, Yes: m.yes}
		if m.choice != "" {
			done.Choice = rune(m.choice[0])
		}
		return m, func() tea.Msg { return done }
	case huh.StateAborted:
		kind := m.kind
		return m, func() tea.Msg { return DoneMsg{Kind: kind, Cancelled: true} }
	}

	return m, cmd
}

// View renders the prompt panel.
func (m Model) View() string {
	return theme.PreviewPanelStyle.
		Width(m.width - 4).
		Render(m.form.View())
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
