package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/registry"
)

const sortPrompt = "Sort by (d)ate, (a)lpha, si(z)e, d(e)scription, (c)ount, ne(w) count, or do(n)'t sort?"

func (s *Session) opSelect() Result  { return s.selectEntry(false) }
func (s *Session) opDescend() Result { return s.selectEntry(true) }

// selectEntry acts on the highlighted entry. Containers are entered;
// mailboxes and files finalize the session, unless descendOnly forces
// entering a container-shaped mailbox instead of selecting it.
func (s *Session) selectEntry(descendOnly bool) Result {
	e := s.current()
	if e == nil {
		s.message = "No files match the file mask"
		return ResultError
	}

	switch s.state.ViewMode {
	case model.RemoteHierarchyView:
		if e.Remote != nil && e.Remote.HasChildren && (descendOnly || !e.Remote.Selectable) {
			s.nav.Backup = ""
			return s.changeLocation(e.Name, model.RemoteHierarchyView)
		}
		if e.Remote != nil && !e.Remote.Selectable {
			s.message = fmt.Sprintf("%s is not selectable", e.Display())
			return ResultError
		}
		return s.finish(e.Name)

	case model.MailboxRegistryView:
		if descendOnly && registry.IsRemotePath(e.Name) {
			s.lastSelected = e.Name
			s.nav.Backup = ""
			return s.changeLocation(e.Name, model.RemoteHierarchyView)
		}
		return s.finish(e.Name)
	}

	if isParent(e.Name) {
		return s.ascend()
	}

	full := filepath.Join(s.nav.Dir, e.Name)
	if s.entryIsContainer(e) {
		// Maildir and MH mailboxes are directories too; selecting one
		// picks the mailbox, descending lists its contents.
		if !descendOnly {
			switch registry.ProbePath(full) {
			case registry.StoreMaildir, registry.StoreMH:
				return s.finish(full)
			}
		}
		canon, err := Canonical(full)
		if err != nil {
			s.message = fmt.Sprintf("%s: %v", full, err)
			return ResultError
		}
		s.prefix = ""
		return s.changeLocation(canon, model.FileSystemView)
	}

	if descendOnly {
		return ResultNoAction
	}
	return s.finish(full)
}

// entryIsContainer reports whether a filesystem entry can be entered.
// Symlinks count when their target is a directory.
func (s *Session) entryIsContainer(e *model.FolderEntry) bool {
	if e.IsDir() {
		return true
	}
	if !e.IsSymlink() {
		return false
	}
	fi, err := os.Stat(filepath.Join(s.nav.Dir, e.Name))
	return err == nil && fi.IsDir()
}

// ascend moves one level up. The old location is remembered so the
// cursor lands on the directory just left.
func (s *Session) ascend() Result {
	switch s.state.ViewMode {
	case model.RemoteHierarchyView:
		if s.remote == nil {
			return ResultNoAction
		}
		parent := s.remote.Parent(s.nav.Dir)
		if parent == s.nav.Dir {
			return ResultNoAction
		}
		s.nav.Backup = s.nav.Dir
		return s.changeLocation(parent, model.RemoteHierarchyView)

	case model.MailboxRegistryView:
		// Leaving the registry drops back to the tracked directory.
		if e := s.current(); e != nil {
			s.lastSelected = e.Name
		}
		s.prefix = ""
		return s.changeLocation(s.nav.Dir, model.FileSystemView)
	}

	if s.nav.Dir == "/" {
		return ResultNoAction
	}
	up := AscendPath(s.nav.Dir)
	// A failed resolve keeps the literal path; the scan recovery walk
	// still gets a chance at it.
	if canon, err := Canonical(up); err == nil {
		up = canon
	}
	s.nav.Backup = s.nav.Dir
	s.prefix = ""
	return s.changeLocation(up, model.FileSystemView)
}

func (s *Session) opGotoParent() Result { return s.ascend() }

func (s *Session) opExit() Result {
	if s.multiple {
		paths := append([]string(nil), s.tagged...)
		if len(paths) == 0 {
			if e := s.current(); e != nil && !isParent(e.Name) && !s.entryIsContainer(e) {
				paths = append(paths, s.entryPath(e))
			}
		}
		if len(paths) > 0 {
			return s.finish(paths...)
		}
	}
	s.results = nil
	s.done = true
	return ResultDone
}

func (s *Session) opToggleMailboxes() Result {
	s.prefix = ""
	if s.state.ViewMode == model.MailboxRegistryView {
		// Remember where the registry cursor was for the next visit.
		if e := s.current(); e != nil {
			s.lastSelected = e.Name
		}
		return s.changeLocation(s.nav.Dir, model.FileSystemView)
	}

	if err := s.scanInto(model.MailboxRegistryView); err != nil {
		s.message = err.Error()
		return ResultError
	}
	if s.lastSelected != "" {
		for i := range s.state.Entries {
			if s.state.Entries[i].Name == s.lastSelected {
				s.cursor = i
				break
			}
		}
	}
	return ResultSuccess
}

// opGotoFolder flips between the folder directory and wherever the
// browser was before the last flip.
func (s *Session) opGotoFolder() Result {
	var dest string
	if s.gotoSwap == "" {
		if s.cfg.Folder == "" {
			s.message = "No folder directory configured"
			return ResultNoAction
		}
		dest = s.cfg.Folder
		s.gotoSwap = s.nav.Dir
	} else {
		dest = s.gotoSwap
		s.gotoSwap = ""
	}

	mode := model.FileSystemView
	if registry.IsRemotePath(dest) {
		mode = model.RemoteHierarchyView
	}
	s.prefix = ""
	s.nav.Backup = s.nav.Dir
	return s.changeLocation(dest, mode)
}

func (s *Session) opChangeDir() Result {
	line, ok := s.prompt.Line("Chdir to: ", s.nav.Dir)
	if !ok {
		return ResultNoAction
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return ResultNoAction
	}

	dest := s.expandPath(line)
	if registry.IsRemotePath(dest) {
		s.prefix = ""
		s.nav.Backup = s.nav.Dir
		return s.changeLocation(dest, model.RemoteHierarchyView)
	}

	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		canon, err := Canonical(dest)
		if err != nil {
			s.message = fmt.Sprintf("%s: %v", dest, err)
			return ResultError
		}
		s.prefix = ""
		s.nav.Backup = s.nav.Dir
		return s.changeLocation(canon, model.FileSystemView)
	}

	// Not a directory: treat the last component as a file mask over
	// its parent.
	dir, base := filepath.Split(dest)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" || base == "" {
		s.message = fmt.Sprintf("%s is not a directory", dest)
		return ResultError
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		s.message = fmt.Sprintf("%s is not a directory", dest)
		return ResultError
	}
	mask, err := CompileMask(base)
	if err != nil {
		s.message = fmt.Sprintf("invalid file mask %q: %v", base, err)
		return ResultError
	}
	canon, err := Canonical(dir)
	if err != nil {
		s.message = fmt.Sprintf("%s: %v", dir, err)
		return ResultError
	}
	s.mask, s.maskPattern = mask, base
	s.prefix = ""
	s.nav.Backup = s.nav.Dir
	return s.changeLocation(canon, model.FileSystemView)
}

func (s *Session) opEnterMask() Result {
	line, ok := s.prompt.Line("File Mask: ", s.maskPattern)
	if !ok {
		return ResultNoAction
	}
	if strings.TrimSpace(line) == "" {
		line = "."
	}
	mask, err := CompileMask(line)
	if err != nil {
		s.message = fmt.Sprintf("invalid file mask %q: %v", line, err)
		return ResultError
	}
	s.mask, s.maskPattern = mask, line
	s.prefix = ""
	return s.changeLocation(s.nav.Dir, model.FileSystemView)
}

func (s *Session) opSort() Result        { return s.chooseSort(false) }
func (s *Session) opSortReverse() Result { return s.chooseSort(true) }

func (s *Session) chooseSort(reverse bool) Result {
	r, ok := s.prompt.Choose(sortPrompt, "dazecwn")
	if !ok {
		return ResultNoAction
	}

	var key model.SortKey
	switch r {
	case 'd':
		key = model.SortDate
	case 'a':
		key = model.SortAlpha
	case 'z':
		key = model.SortSize
	case 'e':
		key = model.SortDesc
	case 'c':
		key = model.SortCount
	case 'w':
		key = model.SortUnread
	case 'n':
		key = model.SortOrder
	default:
		return ResultNoAction
	}

	s.sortKey, s.sortReverse = key, reverse
	SortEntries(s.state, s.sortKey, s.sortReverse)
	s.placeCursor()
	return ResultSuccess
}

func (s *Session) opTag() Result {
	e := s.current()
	if e == nil {
		s.message = "No files match the file mask"
		return ResultError
	}
	if !s.multiple {
		s.message = "Tagging is not supported"
		return ResultError
	}
	if isParent(e.Name) || s.state.ViewMode == model.FileSystemView && s.entryIsContainer(e) ||
		e.Remote != nil && !e.Remote.Selectable {
		s.message = "Can't attach a directory"
		return ResultError
	}

	e.Tagged = s.toggleTag(s.entryPath(e))
	if s.cursor+1 < s.state.Len() {
		s.cursor++
	}
	return ResultSuccess
}

func (s *Session) opCreateMailbox() Result {
	if s.state.ViewMode != model.RemoteHierarchyView || s.remote == nil {
		s.message = "Create is only supported for IMAP mailboxes"
		return ResultError
	}
	name, ok := s.prompt.Line("Create mailbox: ", s.nav.Dir)
	if !ok || strings.TrimSpace(name) == "" {
		return ResultNoAction
	}
	if err := s.remote.Create(s.ctx, name); err != nil {
		s.message = err.Error()
		return ResultError
	}
	r := s.changeLocation(s.nav.Dir, model.RemoteHierarchyView)
	if r == ResultSuccess {
		s.message = "Mailbox created"
	}
	return r
}

func (s *Session) opRenameMailbox() Result {
	if s.state.ViewMode != model.RemoteHierarchyView || s.remote == nil {
		s.message = "Rename is only supported for IMAP mailboxes"
		return ResultError
	}
	e := s.current()
	if e == nil {
		return ResultNoAction
	}
	newName, ok := s.prompt.Line(fmt.Sprintf("Rename mailbox %s to: ", e.Display()), e.Name)
	if !ok || strings.TrimSpace(newName) == "" || newName == e.Name {
		return ResultNoAction
	}
	if err := s.remote.Rename(s.ctx, e.Name, newName); err != nil {
		s.message = err.Error()
		return ResultError
	}
	r := s.changeLocation(s.nav.Dir, model.RemoteHierarchyView)
	if r == ResultSuccess {
		s.message = "Mailbox renamed"
	}
	return r
}

func (s *Session) opDeleteMailbox() Result {
	if s.state.ViewMode != model.RemoteHierarchyView || s.remote == nil {
		s.message = "Delete is only supported for IMAP mailboxes"
		return ResultError
	}
	e := s.current()
	if e == nil {
		return ResultNoAction
	}
	if s.currentMailbox != "" && e.Name == s.currentMailbox {
		s.message = "Can't delete currently open mailbox"
		return ResultError
	}

	yes, ok := s.prompt.Confirm(fmt.Sprintf("Really delete mailbox %q?", e.Display()))
	if !ok || !yes {
		s.message = "Mailbox not deleted"
		return ResultNoAction
	}
	if err := s.remote.Delete(s.ctx, e.Name); err != nil {
		s.message = err.Error()
		return ResultError
	}

	s.state.Remove(s.cursor)
	s.cursor = ClampCursor(s.state, s.cursor)
	s.message = "Mailbox deleted"
	return ResultSuccess
}

func (s *Session) opSubscribe() Result   { return s.setSubscription(true) }
func (s *Session) opUnsubscribe() Result { return s.setSubscription(false) }

func (s *Session) setSubscription(sub bool) Result {
	if s.state.ViewMode != model.RemoteHierarchyView || s.remote == nil {
		s.message = "Subscribing is only supported for IMAP mailboxes"
		return ResultError
	}
	e := s.current()
	if e == nil {
		return ResultNoAction
	}
	if err := s.remote.Subscribe(s.ctx, e.Name, sub); err != nil {
		s.message = err.Error()
		return ResultError
	}
	if e.Remote != nil {
		e.Remote.Subscribed = sub
	}
	if sub {
		s.message = fmt.Sprintf("Subscribed to %s", e.Display())
	} else {
		s.message = fmt.Sprintf("Unsubscribed from %s", e.Display())
	}
	return ResultSuccess
}

// opToggleSubscribed flips between listing all remote folders and only
// the subscribed ones.
func (s *Session) opToggleSubscribed() Result {
	if s.state.ViewMode != model.RemoteHierarchyView {
		s.message = "Subscribing is only supported for IMAP mailboxes"
		return ResultError
	}
	s.subscribedOnly = !s.subscribedOnly
	return s.changeLocation(s.nav.Dir, model.RemoteHierarchyView)
}

func (s *Session) opNewFile() Result {
	line, ok := s.prompt.Line("New file name: ", s.nav.Dir+"/")
	if !ok || strings.TrimSpace(line) == "" {
		return ResultNoAction
	}
	return s.finish(s.expandPath(line))
}

func (s *Session) opTell() Result {
	e := s.current()
	if e == nil {
		return ResultNoAction
	}
	s.message = s.entryPath(e)
	return ResultSuccess
}

func (s *Session) opViewFile() Result {
	e := s.current()
	if e == nil {
		return ResultNoAction
	}
	if s.state.ViewMode == model.RemoteHierarchyView {
		// A selectable mailbox is the selection; there is no file
		// behind an imap:// location to page through.
		if e.Remote != nil && e.Remote.Selectable {
			return s.finish(e.Name)
		}
		return s.selectEntry(true)
	}
	if s.state.ViewMode == model.FileSystemView && s.entryIsContainer(e) {
		return s.selectEntry(true)
	}
	if s.viewer == nil {
		return ResultNotImplemented
	}
	if err := s.viewer.View(s.entryPath(e)); err != nil {
		s.message = err.Error()
		return ResultError
	}
	return ResultSuccess
}

func (s *Session) opRecentLocations() Result {
	if s.history == nil {
		return ResultNotImplemented
	}
	locs, err := s.history.RecentLocations(9)
	if err != nil {
		s.message = err.Error()
		return ResultError
	}
	if len(locs) == 0 {
		s.message = "No recent locations"
		return ResultNoAction
	}

	letters := "123456789"[:len(locs)]
	var b strings.Builder
	b.WriteString("Go to recent location:")
	for i, l := range locs {
		fmt.Fprintf(&b, " (%c) %s", letters[i], l)
	}
	r, ok := s.prompt.Choose(b.String(), letters)
	if !ok {
		return ResultNoAction
	}
	i := int(r - '1')
	if i < 0 || i >= len(locs) {
		return ResultNoAction
	}

	dest := locs[i]
	s.prefix = ""
	if registry.IsRemotePath(dest) {
		s.nav.Backup = s.nav.Dir
		return s.changeLocation(dest, model.RemoteHierarchyView)
	}
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		s.nav.Backup = s.nav.Dir
		return s.changeLocation(dest, model.FileSystemView)
	}
	// A file or mailbox path: list its directory with the cursor on it.
	s.nav.SelectDir(dest)
	return s.changeLocation(s.nav.Dir, model.FileSystemView)
}
