// Package app hosts the root Bubble Tea model. It translates key
// presses into engine commands, runs prompt overlays to collect the
// input those commands need, and mirrors the engine state into the
// folder list after every dispatch.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-browser/internal/browser"
	"github.com/nhle/mail-browser/internal/keys"
	"github.com/nhle/mail-browser/internal/prompt"
	"github.com/nhle/mail-browser/internal/theme"
	"github.com/nhle/mail-browser/internal/ui"
	"github.com/nhle/mail-browser/internal/ui/ask"
	"github.com/nhle/mail-browser/internal/ui/folderlist"
	helpview "github.com/nhle/mail-browser/internal/ui/help"
	"github.com/nhle/mail-browser/internal/ui/pager"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBrowse ViewState = iota
	ViewPrompt
	ViewPager
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing and
// drives the browsing session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	session *browser.Session
	queue   *prompt.Queue
	preview *PreviewHolder
	history browser.HistoryStore

	folderList folderlist.Model
	helpView   helpview.Model
	pagerView  pager.Model
	promptView ask.Model
	pendingOp  browser.Op

	ready   bool
	message string
	isError bool
}

// New creates the root application model around a started session.
// queue must be the same Queue the session was given as its Prompter,
// and holder the same PreviewHolder given as its Viewer.
func New(session *browser.Session, queue *prompt.Queue, holder *PreviewHolder, history browser.HistoryStore) Model {
	k := keys.DefaultKeyMap()
	m := Model{
		currentView: ViewBrowse,
		keys:        k,
		session:     session,
		queue:       queue,
		preview:     holder,
		history:     history,
		folderList:  folderlist.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		pagerView:   pager.New(80, 24),
	}
	m.refreshList()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.folderList.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.pagerView.SetSize(contentWidth, contentHeight)
		m.promptView.SetSize(contentWidth, contentHeight)
		return m.updateActiveView(msg)

	case folderlist.CursorMovedMsg:
		m.session.SetCursor(msg.Index)
		return m, nil

	case ask.DoneMsg:
		m.currentView = ViewBrowse
		if msg.Cancelled {
			m.queue.PushCancel()
		} else {
			switch msg.Kind {
			case ask.KindLine:
				m.queue.PushLine(msg.Line)
			case ask.KindChoose:
				m.queue.PushChoice(msg.Choice)
			case ask.KindConfirm:
				m.queue.PushConfirm(msg.Yes)
			}
		}
		return m.dispatch(m.pendingOp)

	case pager.CloseMsg:
		m.currentView = ViewBrowse
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.currentView == ViewBrowse && !m.folderList.Searching() {
			if handled, mdl, cmd := m.handleBrowseKey(msg); handled {
				return mdl, cmd
			}
		}
		if m.currentView == ViewHelp && key.Matches(msg, m.keys.Help) {
			m.currentView = m.previousView
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// handleBrowseKey maps a key press in the browse view to an engine
// command, opening a prompt overlay first when the command needs one.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		mdl, cmd := m.dispatch(browser.OpExit)
		return true, mdl, cmd
	case key.Matches(msg, k.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, k.Select):
		mdl, cmd := m.dispatch(browser.OpSelect)
		return true, mdl, cmd
	case key.Matches(msg, k.Descend):
		mdl, cmd := m.dispatch(browser.OpDescend)
		return true, mdl, cmd
	case key.Matches(msg, k.GotoParent):
		mdl, cmd := m.dispatch(browser.OpGotoParent)
		return true, mdl, cmd
	case key.Matches(msg, k.ToggleMailboxes):
		mdl, cmd := m.dispatch(browser.OpToggleMailboxes)
		return true, mdl, cmd
	case key.Matches(msg, k.GotoFolder):
		mdl, cmd := m.dispatch(browser.OpGotoFolder)
		return true, mdl, cmd
	case key.Matches(msg, k.Subscribe):
		mdl, cmd := m.dispatch(browser.OpSubscribe)
		return true, mdl, cmd
	case key.Matches(msg, k.Unsubscribe):
		mdl, cmd := m.dispatch(browser.OpUnsubscribe)
		return true, mdl, cmd
	case key.Matches(msg, k.ToggleLsub):
		mdl, cmd := m.dispatch(browser.OpToggleSubscribed)
		return true, mdl, cmd
	case key.Matches(msg, k.Tag):
		mdl, cmd := m.dispatch(browser.OpTag)
		return true, mdl, cmd
	case key.Matches(msg, k.Tell):
		mdl, cmd := m.dispatch(browser.OpTell)
		return true, mdl, cmd
	case key.Matches(msg, k.View):
		mdl, cmd := m.dispatch(browser.OpViewFile)
		return true, mdl, cmd

	case key.Matches(msg, k.ChangeDir):
		mdl, cmd := m.openPrompt(browser.OpChangeDir,
			ask.NewLine("Chdir to:", m.session.Dir(), m.layout.ContentWidth(), m.layout.ContentHeight()))
		return true, mdl, cmd
	case key.Matches(msg, k.Mask):
		mdl, cmd := m.openPrompt(browser.OpEnterMask,
			ask.NewLine("File mask:", m.session.MaskPattern(), m.layout.ContentWidth(), m.layout.ContentHeight()))
		return true, mdl, cmd
	case key.Matches(msg, k.NewFile):
		mdl, cmd := m.openPrompt(browser.OpNewFile,
			ask.NewLine("New file name:", m.session.Dir()+"/", m.layout.ContentWidth(), m.layout.ContentHeight()))
		return true, mdl, cmd
	case key.Matches(msg, k.CreateMailbox):
		mdl, cmd := m.openPrompt(browser.OpCreateMailbox,
			ask.NewLine("Create mailbox:", m.session.Dir(), m.layout.ContentWidth(), m.layout.ContentHeight()))
		return true, mdl, cmd
	case key.Matches(msg, k.RenameMailbox):
		mdl, cmd := m.openPrompt(browser.OpRenameMailbox,
			ask.NewLine("Rename mailbox to:", m.currentName(), m.layout.ContentWidth(), m.layout.ContentHeight()))
		return true, mdl, cmd
	case key.Matches(msg, k.DeleteMailbox):
		mdl, cmd := m.openPrompt(browser.OpDeleteMailbox,
			ask.NewConfirm(fmt.Sprintf("Really delete mailbox %q?", m.currentName()),
				m.layout.ContentWidth(), m.layout.ContentHeight()))
		return true, mdl, cmd
	case key.Matches(msg, k.Sort):
		mdl, cmd := m.openPrompt(browser.OpSort, m.sortPrompt())
		return true, mdl, cmd
	case key.Matches(msg, k.SortReverse):
		mdl, cmd := m.openPrompt(browser.OpSortReverse, m.sortPrompt())
		return true, mdl, cmd
	case key.Matches(msg, k.Recent):
		p, ok := m.recentPrompt()
		if !ok {
			m.message, m.isError = "No recent locations", false
			return true, m, nil
		}
		mdl, cmd := m.openPrompt(browser.OpRecentLocations, p)
		return true, mdl, cmd
	}

	return false, m, nil
}

// openPrompt stores the op waiting on input and shows its overlay.
func (m Model) openPrompt(op browser.Op, p ask.Model) (tea.Model, tea.Cmd) {
	m.pendingOp = op
	m.promptView = p
	m.previousView = m.currentView
	m.currentView = ViewPrompt
	return m, m.promptView.Init()
}

// sortPrompt builds the sort key chooser. The letters mirror the ones
// the engine accepts.
func (m Model) sortPrompt() ask.Model {
	options := []ask.Option{
		{Label: "Date", Letter: 'd'},
		{Label: "Alphabetical", Letter: 'a'},
		{Label: "Size", Letter: 'z'},
		{Label: "Description", Letter: 'e'},
		{Label: "Message count", Letter: 'c'},
		{Label: "New message count", Letter: 'w'},
		{Label: "Don't sort", Letter: 'n'},
	}
	return ask.NewChoose("Sort by:", options, m.layout.ContentWidth(), m.layout.ContentHeight())
}

// recentPrompt builds the recent-locations chooser from the history
// store. The digits match what the engine expects back.
func (m Model) recentPrompt() (ask.Model, bool) {
	if m.history == nil {
		return ask.Model{}, false
	}
	locs, err := m.history.RecentLocations(9)
	if err != nil || len(locs) == 0 {
		return ask.Model{}, false
	}
	options := make([]ask.Option, len(locs))
	for i, l := range locs {
		options[i] = ask.Option{Label: l, Letter: rune('1' + i)}
	}
	return ask.NewChoose("Recent locations:", options, m.layout.ContentWidth(), m.layout.ContentHeight()), true
}

// dispatch runs one engine command and folds the outcome back into
// the UI.
func (m Model) dispatch(op browser.Op) (tea.Model, tea.Cmd) {
	result := m.session.Dispatch(op)

	if m.session.Done() {
		return m, tea.Quit
	}

	m.message = m.session.Message()
	m.isError = result == browser.ResultError
	if result == browser.ResultNotImplemented && m.message == "" {
		m.message, m.isError = "Not available here", true
	}

	if doc := m.preview.Take(); doc != nil {
		m.pagerView.SetContent(doc.Path, doc.Render())
		m.previousView = ViewBrowse
		m.currentView = ViewPager
		return m, nil
	}

	m.refreshList()
	return m, nil
}

// refreshList mirrors the engine state into the folder list.
func (m *Model) refreshList() {
	state := m.session.State()
	items := make([]folderlist.EntryItem, state.Len())
	for i := range state.Entries {
		items[i] = folderlist.NewEntryItem(i, &state.Entries[i], m.session.Line(i))
	}
	m.folderList.SetEntries(items, m.session.Cursor())
}

// currentName returns the highlighted entry's display name.
func (m Model) currentName() string {
	state := m.session.State()
	if state.Len() == 0 {
		return ""
	}
	return state.Entries[m.session.Cursor()].Display()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBrowse:
		m.folderList, cmd = m.folderList.Update(msg)
	case ViewPrompt:
		m.promptView, cmd = m.promptView.Update(msg)
	case ViewPager:
		m.pagerView, cmd = m.pagerView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.session.Dir(), m.session.State().ViewMode.String())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusText())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPrompt:
		return m.promptView.View()
	case ViewPager:
		return m.pagerView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return m.folderList.View()
	}
}

// statusText picks the status bar content: engine messages win over
// key hints.
func (m Model) statusText() string {
	if m.message != "" {
		if m.isError {
			return theme.ErrorStyle.Render(m.message)
		}
		return m.message
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help"
	case ViewPager:
		return "j/k scroll | q close"
	case ViewPrompt:
		return "enter submit | esc cancel"
	default:
		return "enter select | tab mailboxes | c chdir | m mask | o sort | t tag | ? help | q quit"
	}
}
