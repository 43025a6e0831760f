package browser

import (
	"context"
	"strings"
	"testing"

	"github.com/nhle/mail-browser/internal/model"
)

func TestAscendPath(t *testing.T) {
	cases := []struct {
		dir  string
		want string
	}{
		{"/a/b", "/a"},
		{"/a", "/"},
		{"/", "/"},
		{"..", "../.."},
		{"x/..", "x/../.."},
		{"../..", "../../.."},
		{"rel", ".."},
	}
	for _, tc := range cases {
		if got := AscendPath(tc.dir); got != tc.want {
			t.Fatalf("AscendPath(%q) = %q, want %q", tc.dir, got, tc.want)
		}
	}
}

func TestSelectDir(t *testing.T) {
	var n Nav
	n.SelectDir("/home/u/Mail/archive")
	if n.Dir != "/home/u/Mail" {
		t.Fatalf("Dir = %q", n.Dir)
	}
	if n.Backup != "/home/u/Mail/archive" {
		t.Fatalf("Backup = %q", n.Backup)
	}
}

func TestPlacementLocal(t *testing.T) {
	state := stateOf(
		model.FolderEntry{Name: "..", Kind: model.KindLocal},
		model.FolderEntry{Name: "archive", Kind: model.KindLocal},
		model.FolderEntry{Name: "drafts", Kind: model.KindLocal},
	)

	n := Nav{Dir: "/home/u/Mail", Backup: "/home/u/Mail/drafts"}
	if got := n.Placement(state, nil); got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
}

func TestPlacementDefaultWhenBackupElsewhere(t *testing.T) {
	state := stateOf(
		model.FolderEntry{Name: "..", Kind: model.KindLocal},
		model.FolderEntry{Name: "archive", Kind: model.KindLocal},
	)

	n := Nav{Dir: "/home/u/Mail", Backup: "/tmp/other"}
	if got := n.Placement(state, nil); got != 1 {
		t.Fatalf("cursor = %d, want the default highlight 1", got)
	}
}

func TestPlacementDefaultSkipsParent(t *testing.T) {
	withEntries := stateOf(
		model.FolderEntry{Name: "..", Kind: model.KindLocal},
		model.FolderEntry{Name: "a", Kind: model.KindLocal},
	)
	if got := defaultHighlight(withEntries); got != 1 {
		t.Fatalf("default = %d, want 1", got)
	}

	parentOnly := stateOf(model.FolderEntry{Name: "..", Kind: model.KindLocal})
	if got := defaultHighlight(parentOnly); got != 0 {
		t.Fatalf("default with lone parent = %d, want 0", got)
	}
}

type stubRemote struct {
	listing *RemoteListing
	err     error

	deleted    []string
	created    []string
	renamed    [][2]string
	subscribed map[string]bool
}

func (s *stubRemote) Browse(_ context.Context, _ string, _ bool) (*RemoteListing, error) {
	return s.listing, s.err
}

func (s *stubRemote) Subscribe(_ context.Context, location string, subscribe bool) error {
	if s.subscribed == nil {
		s.subscribed = map[string]bool{}
	}
	s.subscribed[location] = subscribe
	return nil
}

func (s *stubRemote) Create(_ context.Context, location string) error {
	s.created = append(s.created, location)
	return nil
}

func (s *stubRemote) Delete(_ context.Context, location string) error {
	s.deleted = append(s.deleted, location)
	return nil
}

func (s *stubRemote) Rename(_ context.Context, location, newName string) error {
	s.renamed = append(s.renamed, [2]string{location, newName})
	return nil
}

func (s *stubRemote) CleanPath(location string) string {
	return strings.TrimSuffix(location, "/")
}

func (s *stubRemote) Parent(location string) string {
	location = strings.TrimSuffix(location, "/")
	if i := strings.LastIndexByte(location, '/'); i > len("imap://") {
		return location[:i]
	}
	return location
}

func TestPlacementRemote(t *testing.T) {
	state := model.NewState(model.RemoteHierarchyView)
	state.Add(model.FolderEntry{Name: "imap://mail.example.com/INBOX", Kind: model.KindRemote})
	state.Add(model.FolderEntry{Name: "imap://mail.example.com/Sent", Kind: model.KindRemote})

	n := Nav{
		Dir:    "imap://mail.example.com/",
		Backup: "imap://mail.example.com/Sent/",
	}
	if got := n.Placement(state, &stubRemote{}); got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}
}

func TestClampCursor(t *testing.T) {
	state := stateOf(
		model.FolderEntry{Name: "a", Kind: model.KindLocal},
		model.FolderEntry{Name: "b", Kind: model.KindLocal},
	)
	if got := ClampCursor(state, 5); got != 1 {
		t.Fatalf("clamp high = %d", got)
	}
	if got := ClampCursor(state, -1); got != 0 {
		t.Fatalf("clamp low = %d", got)
	}
}
