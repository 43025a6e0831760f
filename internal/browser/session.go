package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/prompt"
	"github.com/nhle/mail-browser/internal/registry"
)

// Op identifies a browser command.
type Op int

const (
	OpSelect Op = iota
	OpDescend
	OpExit
	OpChangeDir
	OpGotoParent
	OpGotoFolder
	OpToggleMailboxes
	OpCreateMailbox
	OpDeleteMailbox
	OpRenameMailbox
	OpSubscribe
	OpUnsubscribe
	OpToggleSubscribed
	OpEnterMask
	OpSort
	OpSortReverse
	OpTag
	OpNewFile
	OpTell
	OpViewFile
	OpRecentLocations
)

// Result is the outcome of dispatching one Op.
type Result int

const (
	// ResultSuccess means the op ran and changed something.
	ResultSuccess Result = iota
	// ResultNoAction means the op ran but declined to act, typically
	// after a cancelled prompt.
	ResultNoAction
	// ResultError means the op failed; the session message says why.
	ResultError
	// ResultDone means the session is over; consult Results.
	ResultDone
	// ResultNotImplemented means the op needs a collaborator the
	// session was not given.
	ResultNotImplemented
	// ResultUnknown means the op is not one the browser handles.
	ResultUnknown
)

// HistoryStore records visited locations and serves them back most
// recent first.
type HistoryStore interface {
	RecordVisit(location string, mode model.ViewMode) error
	RecentLocations(limit int) ([]string, error)
}

// Viewer displays the contents of a regular file or message.
type Viewer interface {
	View(path string) error
}

// Options configures a browsing session.
type Options struct {
	// Multiple enables tagging and multi-selection.
	Multiple bool

	// Mailboxes starts the session in the mailbox registry view.
	Mailboxes bool

	// StartPath seeds the location: a directory to list, a file whose
	// directory is listed with the cursor on it, or a remote location.
	StartPath string

	// CurrentMailbox is the mailbox currently open in the caller, if
	// any. It is protected from deletion.
	CurrentMailbox string

	Prompter prompt.Prompter
	Remote   RemoteClient
	History  HistoryStore
	Viewer   Viewer
	Log      func(format string, args ...any)
}

// Session is the browser engine: it owns the scanned state, the
// cursor, the navigation tracker and all command handling. It is not
// safe for concurrent use; the UI drives it from a single goroutine.
type Session struct {
	ctx context.Context
	cfg *model.AppConfig
	reg *registry.Registry

	remote  RemoteClient
	prompt  prompt.Prompter
	history HistoryStore
	viewer  Viewer
	logf    func(format string, args ...any)

	state  *model.BrowserState
	nav    Nav
	cursor int

	mask        *Mask
	maskPattern string
	prefix      string

	sortKey     model.SortKey
	sortReverse bool

	multiple       bool
	tagged         []string
	currentMailbox string
	lastSelected   string
	gotoSwap       string
	subscribedOnly bool

	message string
	done    bool
	results []string
}

// NewSession builds a session and performs the initial scan. A failed
// initial scan is an error; the caller closes with no selection.
func NewSession(ctx context.Context, cfg *model.AppConfig, reg *registry.Registry, opts Options) (*Session, error) {
	mask, err := CompileMask(cfg.Browser.Mask)
	if err != nil {
		return nil, fmt.Errorf("compiling file mask %q: %w", cfg.Browser.Mask, err)
	}

	s := &Session{
		ctx:            ctx,
		cfg:            cfg,
		reg:            reg,
		remote:         opts.Remote,
		prompt:         opts.Prompter,
		history:        opts.History,
		viewer:         opts.Viewer,
		logf:           opts.Log,
		mask:           mask,
		maskPattern:    cfg.Browser.Mask,
		sortKey:        model.ParseSortKey(cfg.Browser.SortKey),
		sortReverse:    cfg.Browser.SortReverse,
		multiple:       opts.Multiple,
		currentMailbox: opts.CurrentMailbox,
		subscribedOnly: cfg.Browser.ListSubscribedOnly,
	}
	if s.prompt == nil {
		s.prompt = prompt.NewQueue()
	}
	if s.logf == nil {
		s.logf = func(string, ...any) {}
	}

	mode := model.FileSystemView
	switch {
	case opts.Mailboxes:
		mode = model.MailboxRegistryView
	case registry.IsRemotePath(opts.StartPath):
		mode = model.RemoteHierarchyView
		s.nav.Dir = opts.StartPath
	case opts.StartPath != "":
		if fi, err := os.Stat(opts.StartPath); err == nil && fi.IsDir() {
			s.nav.Dir = opts.StartPath
		} else {
			// A file path: list its directory, remember the file for
			// placement and narrow the listing to its name prefix.
			s.nav.SelectDir(opts.StartPath)
			s.prefix = filepath.Base(opts.StartPath)
		}
	default:
		s.nav.Dir = s.startDir()
	}

	if err := s.scanInto(mode); err != nil {
		return nil, err
	}
	return s, nil
}

// startDir picks the initial directory when none is given.
func (s *Session) startDir() string {
	if s.cfg.Folder != "" {
		return s.cfg.Folder
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "/"
}

var opHandlers = map[Op]func(*Session) Result{
	OpSelect:           (*Session).opSelect,
	OpDescend:          (*Session).opDescend,
	OpExit:             (*Session).opExit,
	OpChangeDir:        (*Session).opChangeDir,
	OpGotoParent:       (*Session).opGotoParent,
	OpGotoFolder:       (*Session).opGotoFolder,
	OpToggleMailboxes:  (*Session).opToggleMailboxes,
	OpCreateMailbox:    (*Session).opCreateMailbox,
	OpDeleteMailbox:    (*Session).opDeleteMailbox,
	OpRenameMailbox:    (*Session).opRenameMailbox,
	OpSubscribe:        (*Session).opSubscribe,
	OpUnsubscribe:      (*Session).opUnsubscribe,
	OpToggleSubscribed: (*Session).opToggleSubscribed,
	OpEnterMask:        (*Session).opEnterMask,
	OpSort:             (*Session).opSort,
	OpSortReverse:      (*Session).opSortReverse,
	OpTag:              (*Session).opTag,
	OpNewFile:          (*Session).opNewFile,
	OpTell:             (*Session).opTell,
	OpViewFile:         (*Session).opViewFile,
	OpRecentLocations:  (*Session).opRecentLocations,
}

// Dispatch runs one command and returns its outcome. Unknown ops are
// reported, never panicked on.
func (s *Session) Dispatch(op Op) Result {
	if s.done {
		return ResultDone
	}
	h, ok := opHandlers[op]
	if !ok {
		return ResultUnknown
	}
	s.message = ""
	return h(s)
}

// State returns the current entry list.
func (s *Session) State() *model.BrowserState { return s.state }

// Cursor returns the highlighted index.
func (s *Session) Cursor() int { return s.cursor }

// SetCursor moves the highlight, clamped to the entry list.
func (s *Session) SetCursor(i int) { s.cursor = ClampCursor(s.state, i) }

// Dir returns the location currently listed.
func (s *Session) Dir() string { return s.nav.Dir }

// Message returns the status line text from the last command.
func (s *Session) Message() string { return s.message }

// Done reports whether the session is over.
func (s *Session) Done() bool { return s.done }

// Results returns the selected paths after Done; empty means the user
// left without selecting.
func (s *Session) Results() []string { return s.results }

// MaskPattern returns the active file mask pattern.
func (s *Session) MaskPattern() string { return s.maskPattern }

// SortState returns the active sort key and direction.
func (s *Session) SortState() (model.SortKey, bool) { return s.sortKey, s.sortReverse }

// Line renders one entry for display.
func (s *Session) Line(i int) string {
	if i < 0 || i >= s.state.Len() {
		return ""
	}
	return FormatEntry(s.cfg.Browser.FolderFormat, &s.state.Entries[i], i+1)
}

// current returns the highlighted entry, or nil for an empty list.
func (s *Session) current() *model.FolderEntry {
	if s.state == nil || s.state.Len() == 0 {
		return nil
	}
	s.cursor = ClampCursor(s.state, s.cursor)
	return &s.state.Entries[s.cursor]
}

// entryPath resolves an entry to its full location.
func (s *Session) entryPath(e *model.FolderEntry) string {
	if s.state.ViewMode == model.FileSystemView && !filepath.IsAbs(e.Name) {
		return filepath.Join(s.nav.Dir, e.Name)
	}
	return e.Name
}

// scanInto replaces the state with a fresh scan of the current
// location in the given view mode, re-sorts and places the cursor.
func (s *Session) scanInto(mode model.ViewMode) error {
	switch mode {
	case model.MailboxRegistryView:
		root := ""
		if s.cfg.Browser.AbbreviateMailboxes {
			root = s.cfg.Folder
		}
		s.state = ScanMailboxes(s.reg, root)

	case model.RemoteHierarchyView:
		st, err := ScanRemote(s.ctx, s.remote, s.reg, s.nav.Dir, s.subscribedOnly)
		if err != nil {
			return err
		}
		s.state = st

	default:
		st, dir, err := ScanDirectory(s.nav.Dir, s.prefix, s.mask, s.reg)
		if err != nil {
			return err
		}
		s.state = st
		s.nav.Dir = dir
	}

	SortEntries(s.state, s.sortKey, s.sortReverse)
	for i := range s.state.Entries {
		e := &s.state.Entries[i]
		e.Tagged = s.isTagged(s.entryPath(e))
	}
	s.placeCursor()
	return nil
}

// Tags live on the session, not the scan, so they survive navigating
// away and back.
func (s *Session) isTagged(path string) bool {
	for _, t := range s.tagged {
		if t == path {
			return true
		}
	}
	return false
}

func (s *Session) toggleTag(path string) bool {
	for i, t := range s.tagged {
		if t == path {
			s.tagged = append(s.tagged[:i], s.tagged[i+1:]...)
			return false
		}
	}
	s.tagged = append(s.tagged, path)
	return true
}

// placeCursor applies the navigation tracker when the sort key allows
// it, otherwise uses the default highlight.
func (s *Session) placeCursor() {
	if s.trackingEnabled() {
		s.cursor = ClampCursor(s.state, s.nav.Placement(s.state, s.remote))
		return
	}
	s.cursor = ClampCursor(s.state, defaultHighlight(s.state))
}

// Cursor tracking fights non-positional sort orders, so it stays off
// unless entries keep their scan or description order.
func (s *Session) trackingEnabled() bool {
	return s.sortKey == model.SortOrder || s.sortKey == model.SortDesc
}

// changeLocation moves to a new location and rescans, restoring the
// previous location when the scan fails.
func (s *Session) changeLocation(dir string, mode model.ViewMode) Result {
	prevDir, prevState, prevCursor := s.nav.Dir, s.state, s.cursor
	s.nav.Dir = dir
	if err := s.scanInto(mode); err != nil {
		s.nav.Dir, s.state, s.cursor = prevDir, prevState, prevCursor
		s.message = err.Error()
		s.logf("scan %s failed: %v", dir, err)
		return ResultError
	}
	return ResultSuccess
}

// expandPath resolves the shortcuts accepted at path prompts: "=" and
// "+" for the folder directory, "~" for home, "!" for the spool file.
func (s *Session) expandPath(p string) string {
	switch {
	case p == "!":
		return s.cfg.SpoolFile
	case strings.HasPrefix(p, "=") || strings.HasPrefix(p, "+"):
		return filepath.Join(s.cfg.Folder, p[1:])
	case p == "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return home
	case strings.HasPrefix(p, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[2:])
	default:
		return p
	}
}

// finish ends the session with the given selections.
func (s *Session) finish(paths ...string) Result {
	for _, p := range paths {
		if s.history != nil {
			if err := s.history.RecordVisit(p, s.state.ViewMode); err != nil {
				s.logf("recording visit %s: %v", p, err)
			}
		}
	}
	s.results = paths
	s.done = true
	return ResultDone
}
