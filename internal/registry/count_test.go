package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nhle/mail-browser/internal/model"
)

func writeMbox(t *testing.T, dir, name string) string {
	t.Helper()
	content := "From alice@example.com Thu Jan  1 00:00:00 2023\n" +
		"Subject: first\n" +
		"Status: RO\n" +
		"\n" +
		"read body\n" +
		"From bob@example.com Thu Jan  2 00:00:00 2023\n" +
		"Subject: second\n" +
		"\n" +
		"unread body\n"
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing mbox: %v", err)
	}
	return p
}

func TestCountMbox(t *testing.T) {
	p := writeMbox(t, t.TempDir(), "inbox")

	count, unread := countMbox(p, StoreMbox)
	if count != 2 {
		t.Fatalf("expected 2 messages, got %d", count)
	}
	if unread != 1 {
		t.Fatalf("expected 1 unread, got %d", unread)
	}
}

func TestCountMboxIgnoresBodyFromLines(t *testing.T) {
	content := "From a@x Thu Jan  1 00:00:00 2023\n" +
		"Subject: quoting\n" +
		"\n" +
		">From the body, this is not a separator\n"
	p := filepath.Join(t.TempDir(), "inbox")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing mbox: %v", err)
	}

	count, unread := countMbox(p, StoreMbox)
	if count != 1 || unread != 1 {
		t.Fatalf("expected 1 message 1 unread, got %d/%d", count, unread)
	}
}

func TestCountMMDF(t *testing.T) {
	sep := "\x01\x01\x01\x01\n"
	content := sep + "Subject: a\nStatus: R\n\nbody\n" + sep +
		sep + "Subject: b\n\nbody\n" + sep
	p := filepath.Join(t.TempDir(), "mmdf")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing mmdf: %v", err)
	}

	count, unread := countMbox(p, StoreMMDF)
	if count != 2 {
		t.Fatalf("expected 2 messages, got %d", count)
	}
	if unread != 1 {
		t.Fatalf("expected 1 unread, got %d", unread)
	}
}

func makeMaildir(t *testing.T, dir string) string {
	t.Helper()
	md := filepath.Join(dir, "box")
	for _, sub := range []string{"new", "cur", "tmp"} {
		if err := os.MkdirAll(filepath.Join(md, sub), 0o755); err != nil {
			t.Fatalf("creating maildir: %v", err)
		}
	}
	return md
}

func TestCountMaildir(t *testing.T) {
	md := makeMaildir(t, t.TempDir())

	files := map[string]string{
		"new/1700000001.a.host":      "new message",
		"cur/1700000002.b.host:2,S":  "read message",
		"cur/1700000003.c.host:2,FS": "read flagged message",
		"cur/1700000004.d.host:2,":   "unread in cur",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(md, name), []byte(body), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	count, unread := countMaildir(md)
	if count != 4 {
		t.Fatalf("expected 4 messages, got %d", count)
	}
	if unread != 2 {
		t.Fatalf("expected 2 unread (new/ plus unflagged cur/), got %d", unread)
	}
}

func TestCountMH(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1", "2", "3", "7"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("msg"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	// Non-numeric names are not messages.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing notes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".mh_sequences"), []byte("unseen: 2-3 7\n"), 0o644); err != nil {
		t.Fatalf("writing sequences: %v", err)
	}

	count, unread := countMH(dir)
	if count != 4 {
		t.Fatalf("expected 4 messages, got %d", count)
	}
	if unread != 3 {
		t.Fatalf("expected 3 unseen, got %d", unread)
	}
}

func TestMaildirMtime(t *testing.T) {
	md := makeMaildir(t, t.TempDir())

	older := time.Now().Add(-2 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)
	if err := os.Chtimes(filepath.Join(md, "cur"), older, older); err != nil {
		t.Fatalf("setting cur mtime: %v", err)
	}
	if err := os.Chtimes(filepath.Join(md, "new"), newer, newer); err != nil {
		t.Fatalf("setting new mtime: %v", err)
	}

	got := MaildirMtime(md)
	if got.Before(newer.Add(-2 * time.Second)) {
		t.Fatalf("expected the later timestamp near %v, got %v", newer, got)
	}
}

func TestRegistryCheckAll(t *testing.T) {
	dir := t.TempDir()
	mboxPath := writeMbox(t, dir, "inbox")

	reg := NewFromConfig([]model.MailboxConfig{
		{Path: mboxPath},
		{Path: "imap://mail.example.com/INBOX", Type: "imap"},
	})

	gen := reg.Gen()
	withNew := reg.CheckAll()
	if withNew != 1 {
		t.Fatalf("expected 1 mailbox with new mail, got %d", withNew)
	}
	if reg.Gen() != gen+1 {
		t.Fatalf("expected generation bump, got %d -> %d", gen, reg.Gen())
	}

	mb := reg.Lookup(mboxPath)
	if mb == nil {
		t.Fatalf("mailbox not found by realpath")
	}
	if mb.MsgCount != 2 || mb.MsgUnread != 1 || !mb.HasNew {
		t.Fatalf("unexpected counters: %+v", mb)
	}

	reg.SetRemoteCounts("imap://mail.example.com/INBOX", 10, 4)
	remote := reg.Lookup("imap://mail.example.com/INBOX")
	if remote == nil || remote.MsgCount != 10 || remote.MsgUnread != 4 || !remote.HasNew {
		t.Fatalf("remote counters not applied: %+v", remote)
	}
}
