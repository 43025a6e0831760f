package browser

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/registry"
)

// Mask is a compiled file mask. A pattern starting with '!' keeps the
// names that do NOT match the rest of the pattern.
type Mask struct {
	re  *regexp.Regexp
	neg bool
}

// CompileMask builds a Mask from a pattern string. An empty pattern
// returns nil, meaning no filtering.
func CompileMask(pattern string) (*Mask, error) {
	if pattern == "" {
		return nil, nil
	}
	neg := false
	if pattern[0] == '!' {
		neg = true
		pattern = pattern[1:]
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Mask{re: re, neg: neg}, nil
}

// Match reports whether a name survives the mask. A nil mask keeps
// everything.
func (m *Mask) Match(name string) bool {
	if m == nil {
		return true
	}
	return m.re.MatchString(name) != m.neg
}

// RemoteListing is what a remote protocol client returns from Browse:
// the canonical hierarchy root the listing is relative to and the
// entries themselves, with their remote metadata already populated.
type RemoteListing struct {
	Root    string
	Entries []model.FolderEntry
}

// RemoteClient is the contract the engine consumes for remote
// hierarchies. Delimiter knowledge stays behind this interface; the
// navigation tracker never hardcodes one.
type RemoteClient interface {
	Browse(ctx context.Context, location string, subscribedOnly bool) (*RemoteListing, error)
	Subscribe(ctx context.Context, location string, subscribe bool) error
	Create(ctx context.Context, location string) error
	Delete(ctx context.Context, location string) error
	Rename(ctx context.Context, location, newName string) error

	// CleanPath normalizes a remote location: resolves the account
	// part and strips a trailing hierarchy delimiter.
	CleanPath(location string) string

	// Parent returns the location one hierarchy level up, stopping at
	// the account root.
	Parent(location string) string
}

// ScanDirectory lists a local directory into a fresh BrowserState.
//
// If the directory has vanished, path segments are stripped until an
// existing ancestor is found; the effective directory actually listed
// is returned alongside the state. A non-empty prefix keeps only names
// starting with it; the mask keeps only names matching it. The parent
// pseudo-entry is added whenever dir is not the filesystem root and is
// exempt from both filters. Surviving names are cross-referenced
// against the mailbox registry so open mailboxes show live counts.
func ScanDirectory(dir, prefix string, mask *Mask, reg *registry.Registry) (*model.BrowserState, string, error) {
	st, err := os.Stat(dir)
	for err != nil {
		if !os.IsNotExist(err) {
			return nil, dir, &ScanError{Path: dir, Err: err}
		}
		// The last used directory is gone; retry with its parent.
		c := strings.LastIndexByte(dir, '/')
		if c <= 0 {
			return nil, dir, &ScanError{Path: dir, Err: err}
		}
		dir = dir[:c]
		st, err = os.Stat(dir)
	}
	if !st.IsDir() {
		return nil, dir, &ScanError{Path: dir, Err: errNotDirectory}
	}

	if reg != nil {
		reg.CheckAll()
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, dir, &ScanError{Path: dir, Err: err}
	}

	state := model.NewState(model.FileSystemView)

	if dir != "/" {
		parent := filepath.Dir(dir)
		entry := model.FolderEntry{Name: "..", Desc: "..", Kind: model.KindLocal}
		if pst, err := os.Lstat(parent); err == nil {
			entry.Local = localMeta(pst)
		} else {
			entry.Local = &model.LocalMeta{Mode: fs.ModeDir}
		}
		entry.Local.Size = 0
		state.Add(entry)
	}

	for _, de := range dirents {
		name := de.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if !mask.Match(name) {
			continue
		}

		full := filepath.Join(dir, name)
		fi, err := os.Lstat(full)
		if err != nil {
			continue
		}

		mode := fi.Mode()
		if !mode.IsRegular() && !mode.IsDir() && mode&fs.ModeSymlink == 0 {
			continue
		}

		lm := localMeta(fi)
		if mode.IsDir() || mode&fs.ModeSymlink != 0 {
			lm.Size = 0
		}

		entry := model.FolderEntry{
			Name:  name,
			Kind:  model.KindLocal,
			Local: lm,
		}

		if reg != nil {
			realpath := full
			if rp, err := filepath.EvalSymlinks(full); err == nil {
				realpath = rp
			}
			if mb := reg.Lookup(realpath); mb != nil {
				entry.Mailbox = &model.MailboxMeta{
					MsgCount:  mb.MsgCount,
					MsgUnread: mb.MsgUnread,
					HasNew:    mb.HasNew,
					Gen:       mb.Gen,
				}
			}
		}

		state.Add(entry)
	}

	return state, dir, nil
}

// ScanMailboxes lists the configured mailbox registry into a fresh
// BrowserState. Remote mailboxes are added straight from registry
// metadata; file-backed mailboxes are stat'ed and skipped when the
// path is missing or the wrong file type. abbrevRoot, when non-empty,
// shortens displayed paths under it to "=name" (display only).
func ScanMailboxes(reg *registry.Registry, abbrevRoot string) *model.BrowserState {
	state := model.NewState(model.MailboxRegistryView)
	reg.CheckAll()

	for _, mb := range reg.Mailboxes() {
		counts := &model.MailboxMeta{
			MsgCount:  mb.MsgCount,
			MsgUnread: mb.MsgUnread,
			HasNew:    mb.HasNew,
			Gen:       mb.Gen,
		}

		if mb.Type == registry.StoreIMAP {
			state.Add(model.FolderEntry{
				Name:    mb.Path,
				Desc:    mailboxLabel(mb, abbrevRoot),
				Kind:    model.KindRegistry,
				Mailbox: counts,
			})
			continue
		}

		fi, err := os.Lstat(mb.Path)
		if err != nil {
			continue
		}
		mode := fi.Mode()
		if !mode.IsRegular() && !mode.IsDir() && mode&fs.ModeSymlink == 0 {
			continue
		}

		lm := localMeta(fi)
		if mb.Type == registry.StoreMaildir {
			lm.Mtime = registry.MaildirMtime(mb.Path)
		}

		state.Add(model.FolderEntry{
			Name:    mb.Path,
			Desc:    mailboxLabel(mb, abbrevRoot),
			Kind:    model.KindLocal,
			Local:   lm,
			Mailbox: counts,
		})
	}

	return state
}

// ScanRemote delegates to the remote client and wraps the listing in a
// RemoteHierarchyView state. Entry semantics (children flags,
// delimiter, subscribed flag) are left exactly as returned. Counters
// the server reported are copied back into the registry.
func ScanRemote(ctx context.Context, rc RemoteClient, reg *registry.Registry, location string, subscribedOnly bool) (*model.BrowserState, error) {
	if rc == nil {
		return nil, &BackendError{Message: "no remote accounts configured"}
	}

	listing, err := rc.Browse(ctx, location, subscribedOnly)
	if err != nil {
		return nil, err
	}

	state := model.NewState(model.RemoteHierarchyView)
	state.RemoteRoot = listing.Root
	for _, e := range listing.Entries {
		state.Add(e)
		if reg != nil && e.Mailbox != nil {
			reg.SetRemoteCounts(e.Name, e.Mailbox.MsgCount, e.Mailbox.MsgUnread)
		}
	}

	return state, nil
}

// mailboxLabel picks the display label for a registry mailbox.
func mailboxLabel(mb *registry.Mailbox, abbrevRoot string) string {
	if mb.Name != "" {
		return mb.Name
	}
	if abbrevRoot != "" {
		root := strings.TrimSuffix(abbrevRoot, "/")
		if strings.HasPrefix(mb.Path, root+"/") {
			return "=" + mb.Path[len(root)+1:]
		}
	}
	return mb.Path
}

// localMeta copies filesystem metadata out of a stat result. Owner,
// group and link count come from the underlying stat when available.
func localMeta(fi fs.FileInfo) *model.LocalMeta {
	lm := &model.LocalMeta{
		Mode:  fi.Mode(),
		Size:  fi.Size(),
		Mtime: fi.ModTime(),
		Nlink: 1,
	}
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		lm.UID = st.Uid
		lm.GID = st.Gid
		lm.Nlink = uint32(st.Nlink)
	}
	return lm
}
