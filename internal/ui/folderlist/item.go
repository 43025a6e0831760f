package folderlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/theme"
)

// EntryItem wraps one folder entry so it can be used in a bubbles/list.
type EntryItem struct {
	Index  int
	Name   string
	Line   string
	Kind   string
	Tagged bool
	HasNew bool
}

// FilterValue returns the string used for fuzzy matching.
func (e EntryItem) FilterValue() string { return e.Name }

// NewEntryItem builds a list item from a folder entry and its
// formatted row.
func NewEntryItem(i int, e *model.FolderEntry, line string) EntryItem {
	item := EntryItem{
		Index:  i,
		Name:   e.Display(),
		Line:   line,
		Tagged: e.Tagged,
	}
	switch {
	case e.IsDir():
		item.Kind = "dir"
	case e.IsSymlink():
		item.Kind = "link"
	case e.Kind == model.KindRemote:
		item.Kind = "remote"
	case e.Mailbox != nil:
		item.Kind = "mailbox"
	}
	if e.Mailbox != nil {
		item.HasNew = e.Mailbox.HasNew
	}
	return item
}

// EntryDelegate renders entries as single formatted rows.
type EntryDelegate struct{}

func (d EntryDelegate) Height() int                             { return 1 }
func (d EntryDelegate) Spacing() int                            { return 0 }
func (d EntryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d EntryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(EntryItem)
	if !ok {
		return
	}

	line := theme.EntryStyle(entry.Kind, entry.HasNew).Render(entry.Line)
	switch {
	case index == m.Index():
		line = theme.SelectedItemStyle.Render(entry.Line)
	case entry.Tagged:
		line = theme.TaggedItemStyle.Render(entry.Line)
	default:
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
