package remote

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is a parsed imap:// or imaps:// URL.
type Location struct {
	TLS     bool
	Host    string
	Port    string
	User    string
	Mailbox string
}

// ParseLocation splits a remote URL into its parts. The mailbox is
// everything after the host, verbatim; it may contain the server's
// hierarchy delimiter.
func ParseLocation(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing remote location %q: %w", raw, err)
	}

	loc := &Location{Host: strings.ToLower(u.Hostname()), Port: u.Port()}
	switch u.Scheme {
	case "imap":
	case "imaps":
		loc.TLS = true
	default:
		return nil, fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
	if loc.Host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}
	if u.User != nil {
		loc.User = u.User.Username()
	}
	loc.Mailbox = strings.TrimPrefix(u.Path, "/")
	return loc, nil
}

// Addr returns the dial address, applying the default port for the
// scheme.
func (l *Location) Addr() string {
	port := l.Port
	if port == "" {
		if l.TLS {
			port = "993"
		} else {
			port = "143"
		}
	}
	return l.Host + ":" + port
}

// String rebuilds the canonical URL form. Default ports are omitted.
func (l *Location) String() string {
	var b strings.Builder
	if l.TLS {
		b.WriteString("imaps://")
	} else {
		b.WriteString("imap://")
	}
	if l.User != "" {
		b.WriteString(url.User(l.User).String())
		b.WriteByte('@')
	}
	b.WriteString(l.Host)
	if l.Port != "" && l.Port != "143" && l.Port != "993" {
		b.WriteByte(':')
		b.WriteString(l.Port)
	}
	b.WriteByte('/')
	b.WriteString(l.Mailbox)
	return b.String()
}

// WithMailbox returns a copy of the location pointing at a different
// mailbox.
func (l *Location) WithMailbox(mailbox string) *Location {
	c := *l
	c.Mailbox = mailbox
	return &c
}
