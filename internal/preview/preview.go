// Package preview renders the head of a file for the view-file
// overlay. Mail messages get their headers and first text part
// extracted; anything else is shown as plain text.
package preview

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emersion/go-message/mail"
)

// maxPreviewBytes caps how much of a file is read for a preview.
const maxPreviewBytes = 1 << 20

// Document is a rendered preview.
type Document struct {
	Path    string
	From    string
	To      string
	Subject string
	Date    string
	Body    string

	// IsMessage reports whether the file parsed as a mail message.
	IsMessage bool
}

// Load reads the head of path and renders it. Mbox files are previewed
// through their first message.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc := &Document{Path: path}

	msg := raw
	if bytes.HasPrefix(raw, []byte("From ")) {
		msg = firstMboxMessage(raw)
	}
	if parseMessage(msg, doc) {
		doc.IsMessage = true
		return doc, nil
	}

	doc.Body = string(raw)
	return doc, nil
}

// firstMboxMessage strips the mbox From_ line and cuts at the next
// message separator.
func firstMboxMessage(raw []byte) []byte {
	nl := bytes.IndexByte(raw, '\n')
	if nl < 0 {
		return nil
	}
	body := raw[nl+1:]
	if i := bytes.Index(body, []byte("\nFrom ")); i >= 0 {
		body = body[:i+1]
	}
	return body
}

// parseMessage fills doc from an RFC 2822 message, returning false
// when the bytes do not parse as one.
func parseMessage(raw []byte, doc *Document) bool {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return false
	}
	defer mr.Close()

	h := mr.Header
	doc.Subject, _ = h.Subject()
	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		doc.From = from[0].String()
	}
	if to, err := h.AddressList("To"); err == nil {
		var addrs []string
		for _, a := range to {
			addrs = append(addrs, a.String())
		}
		doc.To = strings.Join(addrs, ", ")
	}
	if d, err := h.Date(); err == nil {
		doc.Date = d.Format("Mon, 02 Jan 2006 15:04")
	}
	if doc.Subject == "" && doc.From == "" {
		return false
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		if h, ok := part.Header.(*mail.InlineHeader); ok {
			contentType, _, _ := h.ContentType()
			if strings.HasPrefix(contentType, "text/plain") {
				body, readErr := io.ReadAll(part.Body)
				if readErr == nil {
					doc.Body = string(body)
					break
				}
			}
		}
	}

	return true
}

// Render flattens a document into pager text.
func (d *Document) Render() string {
	if !d.IsMessage {
		return d.Body
	}
	var b strings.Builder
	w := bufio.NewWriter(&b)
	if d.From != "" {
		fmt.Fprintf(w, "From: %s\n", d.From)
	}
	if d.To != "" {
		fmt.Fprintf(w, "To: %s\n", d.To)
	}
	if d.Date != "" {
		fmt.Fprintf(w, "Date: %s\n", d.Date)
	}
	if d.Subject != "" {
		fmt.Fprintf(w, "Subject: %s\n", d.Subject)
	}
	fmt.Fprintf(w, "\n%s", d.Body)
	w.Flush()
	return b.String()
}
