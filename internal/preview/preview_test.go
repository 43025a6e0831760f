package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return p
}

const sampleMessage = "From: Alice <alice@example.com>\r\n" +
	"To: Bob <bob@example.com>\r\n" +
	"Subject: lunch\r\n" +
	"Date: Thu, 02 Mar 2023 12:00:00 +0000\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"noon at the usual place\r\n"

func TestLoadPlainFile(t *testing.T) {
	p := writeFile(t, "notes.txt", "just some text\nsecond line\n")

	doc, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.IsMessage {
		t.Fatalf("plain text parsed as a message")
	}
	if !strings.Contains(doc.Body, "second line") {
		t.Fatalf("body truncated: %q", doc.Body)
	}
	if doc.Render() != doc.Body {
		t.Fatalf("plain render should be the raw body")
	}
}

func TestLoadMessage(t *testing.T) {
	p := writeFile(t, "msg.eml", sampleMessage)

	doc, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !doc.IsMessage {
		t.Fatalf("message not recognized")
	}
	if doc.Subject != "lunch" {
		t.Fatalf("subject = %q", doc.Subject)
	}
	if !strings.Contains(doc.From, "alice@example.com") {
		t.Fatalf("from = %q", doc.From)
	}
	if !strings.Contains(doc.Body, "usual place") {
		t.Fatalf("body = %q", doc.Body)
	}

	out := doc.Render()
	if !strings.Contains(out, "Subject: lunch") {
		t.Fatalf("render missing headers: %q", out)
	}
	if !strings.Contains(out, "usual place") {
		t.Fatalf("render missing body: %q", out)
	}
}

func TestLoadMboxFirstMessage(t *testing.T) {
	content := "From alice@example.com Thu Mar  2 12:00:00 2023\n" +
		sampleMessage +
		"From bob@example.com Thu Mar  2 13:00:00 2023\n" +
		"Subject: second\n" +
		"\n" +
		"other body\n"
	p := writeFile(t, "inbox", content)

	doc, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !doc.IsMessage {
		t.Fatalf("mbox message not recognized")
	}
	if doc.Subject != "lunch" {
		t.Fatalf("previewed the wrong message: %q", doc.Subject)
	}
	if strings.Contains(doc.Body, "other body") {
		t.Fatalf("preview leaked the second message: %q", doc.Body)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
