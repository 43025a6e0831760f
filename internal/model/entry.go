package model

import (
	"io/fs"
	"time"
)

// EntryKind discriminates which backend produced a FolderEntry and
// which metadata block is valid for it.
type EntryKind int

const (
	// KindLocal is a file or directory found on the local filesystem.
	KindLocal EntryKind = iota
	// KindRegistry is a configured mailbox listed from the registry
	// without a local stat (IMAP and other non-file-backed mailboxes).
	KindRegistry
	// KindRemote is a node of a remote IMAP hierarchy.
	KindRemote
)

// LocalMeta holds filesystem metadata. Valid only for KindLocal entries.
type LocalMeta struct {
	Mode  fs.FileMode
	Size  int64
	Mtime time.Time
	UID   uint32
	GID   uint32
	Nlink uint32
}

// MailboxMeta holds live mailbox counters. Valid for any entry that
// also represents a configured mailbox, whatever its kind.
type MailboxMeta struct {
	MsgCount  int
	MsgUnread int
	HasNew    bool

	// Gen is the registry generation the counters were copied at,
	// used to detect stale rows after a registry change.
	Gen int
}

// RemoteMeta holds IMAP hierarchy metadata. Valid only for KindRemote.
type RemoteMeta struct {
	// Delim is the hierarchy delimiter reported by the server for
	// this node; zero when the node has none.
	Delim rune

	HasChildren bool
	Selectable  bool
	Subscribed  bool
}

// FolderEntry is one row in the browsable list: a file, a directory,
// a configured mailbox, or a remote folder. Exactly one of the three
// kind-specific metadata blocks is non-nil per the entry's Kind;
// Mailbox may accompany Local when a file-backed mailbox is listed.
type FolderEntry struct {
	// Name is the raw identifier as returned by the backend.
	Name string

	// Desc is the human label; empty means "use Name".
	Desc string

	Kind    EntryKind
	Local   *LocalMeta
	Mailbox *MailboxMeta
	Remote  *RemoteMeta

	// Tagged marks the entry for multi-selection. Containers are
	// never tagged.
	Tagged bool
}

// Display returns the label to show for the entry.
func (e *FolderEntry) Display() string {
	if e.Desc != "" {
		return e.Desc
	}
	return e.Name
}

// IsDir reports whether a local entry is a directory. Symlinks are not
// resolved here; callers that care about link targets stat them.
func (e *FolderEntry) IsDir() bool {
	return e.Local != nil && e.Local.Mode.IsDir()
}

// IsSymlink reports whether a local entry is a symbolic link.
func (e *FolderEntry) IsSymlink() bool {
	return e.Local != nil && e.Local.Mode&fs.ModeSymlink != 0
}

// Mtime returns the local modification time, zero for non-local entries.
func (e *FolderEntry) Mtime() time.Time {
	if e.Local == nil {
		return time.Time{}
	}
	return e.Local.Mtime
}

// Size returns the local file size, zero for non-local entries.
func (e *FolderEntry) Size() int64 {
	if e.Local == nil {
		return 0
	}
	return e.Local.Size
}

// ViewMode identifies which namespace the entry list represents.
type ViewMode int

const (
	FileSystemView ViewMode = iota
	MailboxRegistryView
	RemoteHierarchyView
)

func (v ViewMode) String() string {
	switch v {
	case MailboxRegistryView:
		return "mailboxes"
	case RemoteHierarchyView:
		return "remote"
	default:
		return "directory"
	}
}

// BrowserState is the scan result for the currently displayed
// namespace. It is rebuilt from scratch on every navigation step; the
// only incremental mutation is single-entry removal after an explicit
// mailbox deletion.
type BrowserState struct {
	Entries  []FolderEntry
	ViewMode ViewMode

	// RemoteRoot records the hierarchy root of a remote scan so
	// re-scans can be made relative to it. Empty outside
	// RemoteHierarchyView.
	RemoteRoot string
}

// NewState returns an empty state for the given view.
func NewState(mode ViewMode) *BrowserState {
	return &BrowserState{
		Entries:  make([]FolderEntry, 0, 256),
		ViewMode: mode,
	}
}

// Add appends an entry in discovery order.
func (s *BrowserState) Add(e FolderEntry) {
	s.Entries = append(s.Entries, e)
}

// Remove deletes the entry at index i, shifting later entries up.
func (s *BrowserState) Remove(i int) {
	if i < 0 || i >= len(s.Entries) {
		return
	}
	s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
}

// Len returns the number of entries.
func (s *BrowserState) Len() int { return len(s.Entries) }

// SortKey selects the comparison used to order a scan result.
type SortKey int

const (
	SortOrder SortKey = iota // discovery order, unsorted
	SortAlpha
	SortDate
	SortSize
	SortDesc
	SortCount
	SortUnread
)

// ParseSortKey maps a config string to a SortKey, defaulting to alpha.
func ParseSortKey(s string) SortKey {
	switch s {
	case "unsorted", "order":
		return SortOrder
	case "date":
		return SortDate
	case "size":
		return SortSize
	case "description", "desc":
		return SortDesc
	case "count":
		return SortCount
	case "unread", "new":
		return SortUnread
	default:
		return SortAlpha
	}
}

func (k SortKey) String() string {
	switch k {
	case SortOrder:
		return "unsorted"
	case SortDate:
		return "date"
	case SortSize:
		return "size"
	case SortDesc:
		return "description"
	case SortCount:
		return "count"
	case SortUnread:
		return "unread"
	default:
		return "alpha"
	}
}
