package browser

import (
	"sort"
	"strings"

	"github.com/nhle/mail-browser/internal/model"
)

// isParent reports whether an entry is the parent pseudo-entry.
func isParent(name string) bool {
	return name == ".." || name == "../"
}

// SortEntries orders the state in place. The parent pseudo-entry, when
// present, ends up at index 0 no matter which key or direction is in
// effect. SortOrder leaves the scan order untouched.
func SortEntries(state *model.BrowserState, key model.SortKey, reverse bool) {
	if key == model.SortOrder {
		return
	}

	cmp := comparatorFor(key)
	es := state.Entries
	sort.SliceStable(es, func(i, j int) bool {
		a, b := &es[i], &es[j]
		if isParent(a.Name) {
			return true
		}
		if isParent(b.Name) {
			return false
		}
		r := cmp(a, b)
		if reverse {
			r = -r
		}
		return r < 0
	})
}

func comparatorFor(key model.SortKey) func(a, b *model.FolderEntry) int {
	switch key {
	case model.SortDate:
		return compareDate
	case model.SortSize:
		return compareSize
	case model.SortDesc:
		return compareDesc
	case model.SortCount:
		return compareCount
	case model.SortUnread:
		return compareUnread
	default:
		return compareAlpha
	}
}

func compareAlpha(a, b *model.FolderEntry) int {
	return strings.Compare(a.Name, b.Name)
}

func compareDesc(a, b *model.FolderEntry) int {
	return strings.Compare(a.Display(), b.Display())
}

func compareDate(a, b *model.FolderEntry) int {
	at, bt := a.Mtime(), b.Mtime()
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	default:
		return 0
	}
}

func compareSize(a, b *model.FolderEntry) int {
	as, bs := a.Size(), b.Size()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// Entries with mailbox counters sort before plain entries; two plain
// entries fall back to name order.
func compareCount(a, b *model.FolderEntry) int {
	switch {
	case a.Mailbox != nil && b.Mailbox != nil:
		return a.Mailbox.MsgCount - b.Mailbox.MsgCount
	case a.Mailbox != nil:
		return -1
	case b.Mailbox != nil:
		return 1
	default:
		return compareAlpha(a, b)
	}
}

func compareUnread(a, b *model.FolderEntry) int {
	switch {
	case a.Mailbox != nil && b.Mailbox != nil:
		return a.Mailbox.MsgUnread - b.Mailbox.MsgUnread
	case a.Mailbox != nil:
		return -1
	case b.Mailbox != nil:
		return 1
	default:
		return compareAlpha(a, b)
	}
}
