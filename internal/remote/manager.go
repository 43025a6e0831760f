package remote

import (
	"context"
	"strings"

	"github.com/emersion/go-imap/v2"

	"github.com/nhle/mail-browser/internal/browser"
	"github.com/nhle/mail-browser/internal/model"
)

// Manager routes remote locations to their account clients and
// implements the engine's RemoteClient contract. It caches each
// server's hierarchy delimiter after the first listing so path
// arithmetic works without extra round trips.
type Manager struct {
	accounts     []model.AccountConfig
	clients      map[string]*Client
	delims       map[string]rune
	lookupSecret func(key string) (string, error)
}

// NewManager builds a manager over the configured accounts.
// lookupSecret resolves passwords left empty in the config, keyed by
// account ID.
func NewManager(accounts []model.AccountConfig, lookupSecret func(string) (string, error)) *Manager {
	return &Manager{
		accounts:     accounts,
		clients:      make(map[string]*Client),
		delims:       make(map[string]rune),
		lookupSecret: lookupSecret,
	}
}

// clientFor finds or builds the client for a location's account.
func (m *Manager) clientFor(loc *Location) (*Client, error) {
	if c, ok := m.clients[loc.Host]; ok {
		return c, nil
	}

	for _, a := range m.accounts {
		if !strings.EqualFold(a.Host, loc.Host) {
			continue
		}
		password := a.Password
		if password == "" && m.lookupSecret != nil {
			p, err := m.lookupSecret(a.ID)
			if err != nil {
				return nil, &AuthError{
					Account: a.Username + "@" + a.Host,
					Message: "no stored password: " + err.Error(),
				}
			}
			password = p
		}
		port := a.Port
		if port == "" {
			if a.TLS {
				port = "993"
			} else {
				port = "143"
			}
		}
		c := NewClient(a.Host, port, a.Username, password, a.TLS)
		m.clients[loc.Host] = c
		return c, nil
	}

	return nil, &browser.BackendError{
		Account: loc.Host,
		Message: "no account configured for " + loc.Host,
	}
}

// delim returns the cached hierarchy delimiter for a host, asking the
// server when unknown. Zero means a flat namespace.
func (m *Manager) delim(ctx context.Context, host string, c *Client) (rune, error) {
	if d, ok := m.delims[host]; ok {
		return d, nil
	}
	d, err := c.Delim(ctx)
	if err != nil {
		return 0, err
	}
	m.delims[host] = d
	return d, nil
}

// Browse lists the children of a remote location. Entry names are full
// URLs so they stay valid outside the listing.
func (m *Manager) Browse(ctx context.Context, location string, subscribedOnly bool) (*browser.RemoteListing, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, &browser.BackendError{Message: err.Error()}
	}
	c, err := m.clientFor(loc)
	if err != nil {
		return nil, err
	}

	pattern := "%"
	base := loc.Mailbox
	if base != "" {
		d, err := m.delim(ctx, loc.Host, c)
		if err != nil {
			return nil, wrapBackend(loc, err)
		}
		base = trimDelim(base, d)
		if d != 0 {
			pattern = base + string(d) + "%"
		} else {
			pattern = base
		}
	}

	data, err := c.List(ctx, pattern, subscribedOnly)
	if err != nil {
		return nil, wrapBackend(loc, err)
	}

	listing := &browser.RemoteListing{Root: loc.WithMailbox(base).String()}
	for _, ld := range data {
		if ld.Mailbox == base {
			continue
		}
		m.delims[loc.Host] = ld.Delim

		meta := &model.RemoteMeta{
			Delim:      ld.Delim,
			Selectable: true,
			Subscribed: subscribedOnly,
		}
		for _, attr := range ld.Attrs {
			switch attr {
			case imap.MailboxAttrNoSelect:
				meta.Selectable = false
			case imap.MailboxAttrHasChildren:
				meta.HasChildren = true
			case imap.MailboxAttrSubscribed:
				meta.Subscribed = true
			}
		}

		entry := model.FolderEntry{
			Name:   loc.WithMailbox(ld.Mailbox).String(),
			Desc:   lastComponent(ld.Mailbox, ld.Delim),
			Kind:   model.KindRemote,
			Remote: meta,
		}
		if ld.Status != nil {
			mb := &model.MailboxMeta{}
			if ld.Status.NumMessages != nil {
				mb.MsgCount = int(*ld.Status.NumMessages)
			}
			if ld.Status.NumUnseen != nil {
				mb.MsgUnread = int(*ld.Status.NumUnseen)
				mb.HasNew = mb.MsgUnread > 0
			}
			entry.Mailbox = mb
		}
		listing.Entries = append(listing.Entries, entry)
	}

	return listing, nil
}

// Subscribe implements the RemoteClient subscription operation.
func (m *Manager) Subscribe(ctx context.Context, location string, subscribe bool) error {
	loc, c, err := m.resolve(location)
	if err != nil {
		return err
	}
	return c.Subscribe(ctx, loc.Mailbox, subscribe)
}

// Create makes a new mailbox at the given location.
func (m *Manager) Create(ctx context.Context, location string) error {
	loc, c, err := m.resolve(location)
	if err != nil {
		return err
	}
	return c.Create(ctx, loc.Mailbox)
}

// Delete removes the mailbox at the given location.
func (m *Manager) Delete(ctx context.Context, location string) error {
	loc, c, err := m.resolve(location)
	if err != nil {
		return err
	}
	return c.Delete(ctx, loc.Mailbox)
}

// Rename changes the name of the mailbox at the given location. The
// new name may be relative, in which case it replaces the last
// hierarchy component.
func (m *Manager) Rename(ctx context.Context, location, newName string) error {
	loc, c, err := m.resolve(location)
	if err != nil {
		return err
	}
	if nl, err := ParseLocation(newName); err == nil && nl.Host == loc.Host {
		newName = nl.Mailbox
	}
	return c.Rename(ctx, loc.Mailbox, newName)
}

// CleanPath normalizes a remote URL: lowercased host, default ports
// dropped, trailing hierarchy delimiter stripped.
func (m *Manager) CleanPath(location string) string {
	loc, err := ParseLocation(location)
	if err != nil {
		return location
	}
	loc.Mailbox = trimDelim(loc.Mailbox, m.cachedDelim(loc.Host))
	return loc.String()
}

// Parent returns the location one hierarchy level up, stopping at the
// account root.
func (m *Manager) Parent(location string) string {
	loc, err := ParseLocation(location)
	if err != nil {
		return location
	}
	d := m.cachedDelim(loc.Host)
	mbox := trimDelim(loc.Mailbox, d)
	if mbox == "" {
		return loc.WithMailbox("").String()
	}
	if d == 0 {
		return loc.WithMailbox("").String()
	}
	if i := strings.LastIndex(mbox, string(d)); i >= 0 {
		return loc.WithMailbox(mbox[:i]).String()
	}
	return loc.WithMailbox("").String()
}

func (m *Manager) resolve(location string) (*Location, *Client, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, nil, &browser.BackendError{Message: err.Error()}
	}
	c, err := m.clientFor(loc)
	if err != nil {
		return nil, nil, err
	}
	return loc, c, nil
}

func (m *Manager) cachedDelim(host string) rune {
	if d, ok := m.delims[strings.ToLower(host)]; ok {
		return d
	}
	return '/'
}

func wrapBackend(loc *Location, err error) error {
	if IsAuthError(err) {
		return err
	}
	return &browser.BackendError{Account: loc.Host, Message: err.Error()}
}

func trimDelim(mailbox string, d rune) string {
	if d == 0 {
		return mailbox
	}
	return strings.TrimRight(mailbox, string(d))
}

func lastComponent(mailbox string, d rune) string {
	if d == 0 {
		return mailbox
	}
	if i := strings.LastIndex(mailbox, string(d)); i >= 0 {
		return mailbox[i+1:]
	}
	return mailbox
}
