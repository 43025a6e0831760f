package folderlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/nhle/mail-browser/internal/keys"
	"github.com/nhle/mail-browser/internal/theme"
)

// CursorMovedMsg is sent when the highlighted index changes so the
// engine cursor can follow.
type CursorMovedMsg struct {
	Index int
}

// Model is the scrolling folder list.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	names       []string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new folder list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, EntryDelegate{}, width, height-2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "search entries..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetEntries replaces the visible rows and moves the highlight to
// cursor.
func (m *Model) SetEntries(items []EntryItem, cursor int) {
	rows := make([]list.Item, len(items))
	m.names = m.names[:0]
	for i, it := range items {
		rows[i] = it
		m.names = append(m.names, it.Name)
	}
	m.list.SetItems(rows)
	if cursor >= 0 && cursor < len(rows) {
		m.list.Select(cursor)
	}
}

// Index returns the highlighted row index.
func (m *Model) Index() int { return m.list.Index() }

// Searching reports whether the search input has focus.
func (m *Model) Searching() bool { return m.searchMode }

// Update handles messages for the folder list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.searchMode {
		return m.updateSearch(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, m.keys.Search) {
		m.searchMode = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	}

	before := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if after := m.list.Index(); after != before {
		moved := func() tea.Msg { return CursorMovedMsg{Index: after} }
		return m, tea.Batch(cmd, moved)
	}
	return m, cmd
}

// updateSearch handles keys while the search input has focus. Enter
// jumps to the best fuzzy match; escape closes the search.
func (m Model) updateSearch(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch kmsg.String() {
	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		matches := fuzzy.Find(query, m.names)
		if len(matches) == 0 {
			return m, nil
		}
		m.list.Select(matches[0].Index)
		idx := matches[0].Index
		return m, func() tea.Msg { return CursorMovedMsg{Index: idx} }

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

// View renders the list, with the search input below it when active.
func (m Model) View() string {
	if m.searchMode {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.list.View(),
			theme.HelpStyle.Render(m.searchInput.View()),
		)
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
