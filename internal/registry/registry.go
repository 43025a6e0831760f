// Package registry holds the configured set of mailboxes and their
// live message counters. The browser engine only reads it, except for
// copying freshly checked counters into scan entries.
package registry

import (
	"path/filepath"

	"github.com/nhle/mail-browser/internal/model"
)

// Mailbox is one configured mailbox with its last checked counters.
type Mailbox struct {
	// Path is the configured location (filesystem path or imap:// URL).
	Path string

	// Realpath is Path with symlinks resolved, used for identity
	// comparisons. Equal to Path for remote mailboxes.
	Realpath string

	// Name is the display label; empty means "use Path".
	Name string

	Type StoreType

	MsgCount  int
	MsgUnread int
	HasNew    bool

	// Gen is the registry generation the counters were computed at.
	Gen int
}

// Registry is the ordered list of configured mailboxes.
type Registry struct {
	mailboxes []*Mailbox
	gen       int
}

// NewFromConfig builds a registry from the configured mailbox list.
// Paths of file-backed mailboxes are resolved; the forced type from
// config wins over probing.
func NewFromConfig(configs []model.MailboxConfig) *Registry {
	r := &Registry{gen: 1}
	for _, mc := range configs {
		mb := &Mailbox{
			Path: mc.Path,
			Name: mc.Name,
			Type: ParseStoreType(mc.Type),
		}
		if mb.Type == StoreUnknown {
			mb.Type = ProbePath(mc.Path)
		}
		mb.Realpath = mc.Path
		if mb.Type != StoreIMAP {
			if rp, err := filepath.EvalSymlinks(mc.Path); err == nil {
				mb.Realpath = rp
			}
		}
		r.mailboxes = append(r.mailboxes, mb)
	}
	return r
}

// Mailboxes returns the configured mailboxes in config order.
func (r *Registry) Mailboxes() []*Mailbox {
	return r.mailboxes
}

// Gen returns the current registry generation. It is bumped by every
// CheckAll so consumers can detect stale counter copies.
func (r *Registry) Gen() int { return r.gen }

// Lookup finds a mailbox by realized path, or nil.
func (r *Registry) Lookup(realpath string) *Mailbox {
	for _, mb := range r.mailboxes {
		if mb.Realpath == realpath {
			return mb
		}
	}
	return nil
}

// CheckAll refreshes message counters for every file-backed mailbox
// and bumps the generation. Remote mailboxes keep whatever counters
// the remote client last reported. Returns the number of mailboxes
// with new mail.
func (r *Registry) CheckAll() int {
	r.gen++
	withNew := 0
	for _, mb := range r.mailboxes {
		switch mb.Type {
		case StoreMbox, StoreMMDF:
			mb.MsgCount, mb.MsgUnread = countMbox(mb.Realpath, mb.Type)
		case StoreMaildir:
			mb.MsgCount, mb.MsgUnread = countMaildir(mb.Realpath)
		case StoreMH:
			mb.MsgCount, mb.MsgUnread = countMH(mb.Realpath)
		default:
			mb.Gen = r.gen
			if mb.HasNew {
				withNew++
			}
			continue
		}
		mb.HasNew = mb.MsgUnread > 0
		mb.Gen = r.gen
		if mb.HasNew {
			withNew++
		}
	}
	return withNew
}

// SetRemoteCounts copies counters reported by a remote client into the
// registry entry for path, if one is configured.
func (r *Registry) SetRemoteCounts(path string, count, unread int) {
	if mb := r.Lookup(path); mb != nil {
		mb.MsgCount = count
		mb.MsgUnread = unread
		mb.HasNew = unread > 0
		mb.Gen = r.gen
	}
}
