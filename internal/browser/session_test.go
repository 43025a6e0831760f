package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/prompt"
	"github.com/nhle/mail-browser/internal/registry"
)

func testConfig() *model.AppConfig {
	return &model.AppConfig{
		Browser: model.BrowserConfig{
			SortKey:      "alpha",
			FolderFormat: model.DefaultFolderFormat,
		},
	}
}

// canonTempDir returns a temp dir with symlinks resolved, so paths
// derived from it survive the canonicalization navigation applies.
func canonTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}
	return dir
}

func newTestSession(t *testing.T, cfg *model.AppConfig, opts Options) *Session {
	t.Helper()
	s, err := NewSession(t.Context(), cfg, nil, opts)
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}
	return s
}

// moveCursorTo places the cursor on the named entry.
func moveCursorTo(t *testing.T, s *Session, name string) {
	t.Helper()
	for i := range s.State().Entries {
		if s.State().Entries[i].Name == name {
			s.SetCursor(i)
			return
		}
	}
	t.Fatalf("entry %q not listed: %v", name, entryNames(s.State()))
}

type fakeHistory struct {
	visits []string
	recent []string
}

func (h *fakeHistory) RecordVisit(location string, _ model.ViewMode) error {
	h.visits = append(h.visits, location)
	return nil
}

func (h *fakeHistory) RecentLocations(int) ([]string, error) {
	return h.recent, nil
}

func TestSessionTagAndExitMultiple(t *testing.T) {
	mail := filepath.Join(canonTempDir(t), "Mail")
	archive := filepath.Join(mail, "archive")
	if err := os.MkdirAll(archive, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mbox := filepath.Join(archive, "2023.mbox")
	if err := os.WriteFile(mbox, []byte("From a@x Thu Jan  1 00:00:00 2023\n\nbody\n"), 0o644); err != nil {
		t.Fatalf("writing mbox: %v", err)
	}

	s := newTestSession(t, testConfig(), Options{
		Multiple:  true,
		StartPath: mail,
		Prompter:  prompt.NewQueue(),
	})

	moveCursorTo(t, s, "archive")
	if r := s.Dispatch(OpSelect); r != ResultSuccess {
		t.Fatalf("descend: %v (%s)", r, s.Message())
	}
	if s.Dir() != archive {
		t.Fatalf("after descend in %q, want %q", s.Dir(), archive)
	}

	moveCursorTo(t, s, "2023.mbox")
	if r := s.Dispatch(OpTag); r != ResultSuccess {
		t.Fatalf("tag: %v (%s)", r, s.Message())
	}

	if r := s.Dispatch(OpGotoParent); r != ResultSuccess {
		t.Fatalf("ascend: %v (%s)", r, s.Message())
	}
	if s.Dir() != mail {
		t.Fatalf("after ascend in %q, want %q", s.Dir(), mail)
	}

	if r := s.Dispatch(OpExit); r != ResultDone {
		t.Fatalf("exit: %v", r)
	}
	got := s.Results()
	if len(got) != 1 || got[0] != mbox {
		t.Fatalf("results = %v, want [%s]", got, mbox)
	}
}

func TestSessionAscendPlacesCursorOnLeftDirectory(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"alpha", "beta", "gamma"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	cfg := testConfig()
	cfg.Browser.SortKey = "order"
	s := newTestSession(t, cfg, Options{StartPath: root, Prompter: prompt.NewQueue()})

	moveCursorTo(t, s, "beta")
	if r := s.Dispatch(OpDescend); r != ResultSuccess {
		t.Fatalf("descend: %v (%s)", r, s.Message())
	}
	if r := s.Dispatch(OpGotoParent); r != ResultSuccess {
		t.Fatalf("ascend: %v (%s)", r, s.Message())
	}
	if got := s.State().Entries[s.Cursor()].Name; got != "beta" {
		t.Fatalf("cursor on %q after round trip, want beta", got)
	}
}

func TestSessionTagDirectoryRefused(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := newTestSession(t, testConfig(), Options{
		Multiple:  true,
		StartPath: root,
		Prompter:  prompt.NewQueue(),
	})

	moveCursorTo(t, s, "subdir")
	if r := s.Dispatch(OpTag); r != ResultError {
		t.Fatalf("tagging a directory: %v", r)
	}
	if s.Message() != "Can't attach a directory" {
		t.Fatalf("message = %q", s.Message())
	}
	if s.State().Entries[s.Cursor()].Tagged {
		t.Fatalf("directory ended up tagged")
	}
}

func TestSessionTagNeedsMultiple(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file")

	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})
	moveCursorTo(t, s, "file")
	if r := s.Dispatch(OpTag); r != ResultError {
		t.Fatalf("tag without multiple: %v", r)
	}
	if s.Message() != "Tagging is not supported" {
		t.Fatalf("message = %q", s.Message())
	}
}

func TestSessionSelectFileFinishes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "pick.me")

	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})
	moveCursorTo(t, s, "pick.me")
	if r := s.Dispatch(OpSelect); r != ResultDone {
		t.Fatalf("select: %v", r)
	}
	want := filepath.Join(root, "pick.me")
	if got := s.Results(); len(got) != 1 || got[0] != want {
		t.Fatalf("results = %v, want [%s]", got, want)
	}
}

func TestSessionSelectMaildirPicksMailbox(t *testing.T) {
	root := t.TempDir()
	md := filepath.Join(root, "box")
	for _, sub := range []string{"new", "cur", "tmp"} {
		if err := os.MkdirAll(filepath.Join(md, sub), 0o755); err != nil {
			t.Fatalf("creating maildir: %v", err)
		}
	}

	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})
	moveCursorTo(t, s, "box")

	// Selecting picks the maildir as a mailbox rather than entering it.
	if r := s.Dispatch(OpSelect); r != ResultDone {
		t.Fatalf("select: %v", r)
	}
	if got := s.Results(); len(got) != 1 || got[0] != md {
		t.Fatalf("results = %v, want [%s]", got, md)
	}
}

func TestSessionDescendEntersMaildir(t *testing.T) {
	root := canonTempDir(t)
	md := filepath.Join(root, "box")
	for _, sub := range []string{"new", "cur"} {
		if err := os.MkdirAll(filepath.Join(md, sub), 0o755); err != nil {
			t.Fatalf("creating maildir: %v", err)
		}
	}

	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})
	moveCursorTo(t, s, "box")
	if r := s.Dispatch(OpDescend); r != ResultSuccess {
		t.Fatalf("descend: %v (%s)", r, s.Message())
	}
	if s.Dir() != md {
		t.Fatalf("descend landed in %q, want %q", s.Dir(), md)
	}
}

func TestSessionExitWithoutSelection(t *testing.T) {
	root := t.TempDir()
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})

	if r := s.Dispatch(OpExit); r != ResultDone {
		t.Fatalf("exit: %v", r)
	}
	if got := s.Results(); got != nil {
		t.Fatalf("expected no selection, got %v", got)
	}
}

func TestSessionExitMultipleFallsBackToHighlight(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "only.file")

	s := newTestSession(t, testConfig(), Options{
		Multiple:  true,
		StartPath: root,
		Prompter:  prompt.NewQueue(),
	})
	moveCursorTo(t, s, "only.file")
	if r := s.Dispatch(OpExit); r != ResultDone {
		t.Fatalf("exit: %v", r)
	}
	want := filepath.Join(root, "only.file")
	if got := s.Results(); len(got) != 1 || got[0] != want {
		t.Fatalf("results = %v, want [%s]", got, want)
	}
}

func TestSessionEnterMaskEmptyMatchesEverything(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt", "b.md")

	q := prompt.NewQueue().PushLine("")
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q})

	if r := s.Dispatch(OpEnterMask); r != ResultSuccess {
		t.Fatalf("mask: %v (%s)", r, s.Message())
	}
	if s.MaskPattern() != "." {
		t.Fatalf("pattern = %q, want .", s.MaskPattern())
	}
}

func TestSessionEnterMaskInvalid(t *testing.T) {
	root := t.TempDir()
	q := prompt.NewQueue().PushLine("[")
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q})

	if r := s.Dispatch(OpEnterMask); r != ResultError {
		t.Fatalf("invalid mask: %v", r)
	}
	if s.Message() == "" {
		t.Fatalf("expected an error message")
	}
}

func TestSessionEnterMaskFiltersListing(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "keep.txt", "drop.md")

	q := prompt.NewQueue().PushLine(`\.txt$`)
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q})

	if r := s.Dispatch(OpEnterMask); r != ResultSuccess {
		t.Fatalf("mask: %v (%s)", r, s.Message())
	}
	names := entryNames(s.State())
	for _, n := range names {
		if n == "drop.md" {
			t.Fatalf("mask did not filter: %v", names)
		}
	}
}

func TestSessionCancelledPromptIsNoAction(t *testing.T) {
	root := t.TempDir()
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})

	for _, op := range []Op{OpChangeDir, OpEnterMask, OpSort, OpNewFile} {
		if r := s.Dispatch(op); r != ResultNoAction {
			t.Fatalf("op %d on an exhausted prompt queue: %v", op, r)
		}
	}
}

func TestSessionChangeDirWithMask(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFiles(t, sub, "x.txt", "y.md")

	q := prompt.NewQueue().PushLine(filepath.Join(sub, `.*\.txt$`))
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q})

	if r := s.Dispatch(OpChangeDir); r != ResultSuccess {
		t.Fatalf("chdir: %v (%s)", r, s.Message())
	}
	names := entryNames(s.State())
	if len(names) != 2 || names[1] != "x.txt" {
		t.Fatalf("expected [.. x.txt], got %v", names)
	}
}

func TestSessionGotoFolderSwap(t *testing.T) {
	root := t.TempDir()
	start := filepath.Join(root, "start")
	folder := filepath.Join(root, "folder")
	for _, d := range []string{start, folder} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	cfg := testConfig()
	cfg.Folder = folder
	s := newTestSession(t, cfg, Options{StartPath: start, Prompter: prompt.NewQueue()})

	if r := s.Dispatch(OpGotoFolder); r != ResultSuccess {
		t.Fatalf("goto: %v (%s)", r, s.Message())
	}
	if s.Dir() != folder {
		t.Fatalf("first goto landed in %q", s.Dir())
	}

	if r := s.Dispatch(OpGotoFolder); r != ResultSuccess {
		t.Fatalf("goto back: %v (%s)", r, s.Message())
	}
	if s.Dir() != start {
		t.Fatalf("swap back landed in %q, want %q", s.Dir(), start)
	}

	// Register is cleared; a third invocation jumps to the folder again.
	if r := s.Dispatch(OpGotoFolder); r != ResultSuccess {
		t.Fatalf("third goto: %v (%s)", r, s.Message())
	}
	if s.Dir() != folder {
		t.Fatalf("third goto landed in %q", s.Dir())
	}
}

func TestSessionGotoFolderUnconfigured(t *testing.T) {
	root := t.TempDir()
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})

	if r := s.Dispatch(OpGotoFolder); r != ResultNoAction {
		t.Fatalf("goto without a folder: %v", r)
	}
	if s.Message() != "No folder directory configured" {
		t.Fatalf("message = %q", s.Message())
	}
}

func TestSessionChooseSort(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a", "b")

	q := prompt.NewQueue().PushChoice('z')
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q})

	if r := s.Dispatch(OpSort); r != ResultSuccess {
		t.Fatalf("sort: %v", r)
	}
	key, reverse := s.SortState()
	if key != model.SortSize || reverse {
		t.Fatalf("sort state = %v/%v, want size ascending", key, reverse)
	}
}

func TestSessionNewFile(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, "fresh.mbox")

	q := prompt.NewQueue().PushLine(want)
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q})

	if r := s.Dispatch(OpNewFile); r != ResultDone {
		t.Fatalf("new file: %v", r)
	}
	if got := s.Results(); len(got) != 1 || got[0] != want {
		t.Fatalf("results = %v, want [%s]", got, want)
	}
}

func TestSessionFileStartPathNarrowsListing(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "report.txt", "readme.md", "note.txt")

	s := newTestSession(t, testConfig(), Options{
		StartPath: filepath.Join(root, "re"),
		Prompter:  prompt.NewQueue(),
	})

	names := entryNames(s.State())
	if len(names) != 3 || names[1] != "readme.md" || names[2] != "report.txt" {
		t.Fatalf("prefix narrowing failed: %v", names)
	}
}

func TestSessionViewFileNeedsViewer(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file")

	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})
	moveCursorTo(t, s, "file")
	if r := s.Dispatch(OpViewFile); r != ResultNotImplemented {
		t.Fatalf("view without viewer: %v", r)
	}
}

func TestSessionRecentLocations(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "dest")
	if err := os.Mkdir(dest, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	hist := &fakeHistory{recent: []string{dest}}
	q := prompt.NewQueue().PushChoice('1')
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: q, History: hist})

	if r := s.Dispatch(OpRecentLocations); r != ResultSuccess {
		t.Fatalf("recent: %v (%s)", r, s.Message())
	}
	if s.Dir() != dest {
		t.Fatalf("landed in %q, want %q", s.Dir(), dest)
	}
}

func TestSessionRecentLocationsEmpty(t *testing.T) {
	root := t.TempDir()
	s := newTestSession(t, testConfig(), Options{
		StartPath: root,
		Prompter:  prompt.NewQueue(),
		History:   &fakeHistory{},
	})

	if r := s.Dispatch(OpRecentLocations); r != ResultNoAction {
		t.Fatalf("recent with no history: %v", r)
	}
	if s.Message() != "No recent locations" {
		t.Fatalf("message = %q", s.Message())
	}
}

func TestSessionExitRecordsHistory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "pick")

	hist := &fakeHistory{}
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue(), History: hist})
	moveCursorTo(t, s, "pick")
	if r := s.Dispatch(OpSelect); r != ResultDone {
		t.Fatalf("select: %v", r)
	}
	want := filepath.Join(root, "pick")
	if len(hist.visits) != 1 || hist.visits[0] != want {
		t.Fatalf("visits = %v, want [%s]", hist.visits, want)
	}
}

func remoteSession(t *testing.T, rc RemoteClient, opts Options) *Session {
	t.Helper()
	opts.Remote = rc
	if opts.Prompter == nil {
		opts.Prompter = prompt.NewQueue()
	}
	opts.StartPath = "imap://mail.example.com/"
	return newTestSession(t, testConfig(), opts)
}

func remoteListing() *RemoteListing {
	return &RemoteListing{
		Root: "imap://mail.example.com/",
		Entries: []model.FolderEntry{
			{
				Name:   "imap://mail.example.com/INBOX",
				Desc:   "INBOX",
				Kind:   model.KindRemote,
				Remote: &model.RemoteMeta{Delim: '/', Selectable: true},
			},
			{
				Name:   "imap://mail.example.com/Old",
				Desc:   "Old",
				Kind:   model.KindRemote,
				Remote: &model.RemoteMeta{Delim: '/', Selectable: true},
			},
		},
	}
}

func TestSessionDeleteCurrentMailboxRejected(t *testing.T) {
	rc := &stubRemote{listing: remoteListing()}
	s := remoteSession(t, rc, Options{
		CurrentMailbox: "imap://mail.example.com/INBOX",
	})

	moveCursorTo(t, s, "imap://mail.example.com/INBOX")
	before := s.State().Len()
	if r := s.Dispatch(OpDeleteMailbox); r != ResultError {
		t.Fatalf("delete current mailbox: %v", r)
	}
	if s.Message() != "Can't delete currently open mailbox" {
		t.Fatalf("message = %q", s.Message())
	}
	if s.State().Len() != before {
		t.Fatalf("entry list changed")
	}
	if len(rc.deleted) != 0 {
		t.Fatalf("delete reached the server: %v", rc.deleted)
	}
}

func TestSessionDeleteMailboxConfirmed(t *testing.T) {
	rc := &stubRemote{listing: remoteListing()}
	q := prompt.NewQueue().PushConfirm(true)
	s := remoteSession(t, rc, Options{Prompter: q})

	moveCursorTo(t, s, "imap://mail.example.com/Old")
	if r := s.Dispatch(OpDeleteMailbox); r != ResultSuccess {
		t.Fatalf("delete: %v (%s)", r, s.Message())
	}
	if s.Message() != "Mailbox deleted" {
		t.Fatalf("message = %q", s.Message())
	}
	if len(rc.deleted) != 1 || rc.deleted[0] != "imap://mail.example.com/Old" {
		t.Fatalf("deleted = %v", rc.deleted)
	}
	for _, n := range entryNames(s.State()) {
		if n == "imap://mail.example.com/Old" {
			t.Fatalf("deleted mailbox still listed")
		}
	}
}

func TestSessionDeleteMailboxDeclined(t *testing.T) {
	rc := &stubRemote{listing: remoteListing()}
	q := prompt.NewQueue().PushConfirm(false)
	s := remoteSession(t, rc, Options{Prompter: q})

	moveCursorTo(t, s, "imap://mail.example.com/Old")
	if r := s.Dispatch(OpDeleteMailbox); r != ResultNoAction {
		t.Fatalf("declined delete: %v", r)
	}
	if s.Message() != "Mailbox not deleted" {
		t.Fatalf("message = %q", s.Message())
	}
	if len(rc.deleted) != 0 {
		t.Fatalf("delete reached the server: %v", rc.deleted)
	}
}

func TestSessionDeleteMailboxWrongView(t *testing.T) {
	root := t.TempDir()
	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})

	if r := s.Dispatch(OpDeleteMailbox); r != ResultError {
		t.Fatalf("delete in filesystem view: %v", r)
	}
}

func TestSessionSubscribe(t *testing.T) {
	rc := &stubRemote{listing: remoteListing()}
	s := remoteSession(t, rc, Options{})

	moveCursorTo(t, s, "imap://mail.example.com/Old")
	if r := s.Dispatch(OpSubscribe); r != ResultSuccess {
		t.Fatalf("subscribe: %v (%s)", r, s.Message())
	}
	if !rc.subscribed["imap://mail.example.com/Old"] {
		t.Fatalf("subscribe did not reach the client")
	}
	if !s.State().Entries[s.Cursor()].Remote.Subscribed {
		t.Fatalf("entry not marked subscribed")
	}
}

func TestSessionSelectRemoteMailbox(t *testing.T) {
	rc := &stubRemote{listing: remoteListing()}
	s := remoteSession(t, rc, Options{})

	moveCursorTo(t, s, "imap://mail.example.com/INBOX")
	if r := s.Dispatch(OpSelect); r != ResultDone {
		t.Fatalf("select: %v", r)
	}
	if got := s.Results(); len(got) != 1 || got[0] != "imap://mail.example.com/INBOX" {
		t.Fatalf("results = %v", got)
	}
}

func TestSessionDescendResolvesSymlink(t *testing.T) {
	root := canonTempDir(t)
	real := filepath.Join(root, "sub", "real")
	if err := os.MkdirAll(real, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	s := newTestSession(t, testConfig(), Options{StartPath: root, Prompter: prompt.NewQueue()})
	moveCursorTo(t, s, "link")
	if r := s.Dispatch(OpSelect); r != ResultSuccess {
		t.Fatalf("descend: %v (%s)", r, s.Message())
	}
	if s.Dir() != real {
		t.Fatalf("descend through a symlink landed in %q, want %q", s.Dir(), real)
	}

	// Ascending now walks the target's parent, not the link's.
	if r := s.Dispatch(OpGotoParent); r != ResultSuccess {
		t.Fatalf("ascend: %v (%s)", r, s.Message())
	}
	if want := filepath.Join(root, "sub"); s.Dir() != want {
		t.Fatalf("ascend landed in %q, want %q", s.Dir(), want)
	}
}

func TestSessionToggleMailboxesRestoresCursor(t *testing.T) {
	root := canonTempDir(t)
	a := filepath.Join(root, "a.mbox")
	b := filepath.Join(root, "b.mbox")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatalf("writing %s: %v", p, err)
		}
	}

	reg := registry.NewFromConfig([]model.MailboxConfig{{Path: a}, {Path: b}})
	s, err := NewSession(t.Context(), testConfig(), reg, Options{
		StartPath: root,
		Prompter:  prompt.NewQueue(),
	})
	if err != nil {
		t.Fatalf("starting session: %v", err)
	}

	if r := s.Dispatch(OpToggleMailboxes); r != ResultSuccess {
		t.Fatalf("toggle to registry: %v (%s)", r, s.Message())
	}
	moveCursorTo(t, s, b)

	if r := s.Dispatch(OpToggleMailboxes); r != ResultSuccess {
		t.Fatalf("toggle back to directory: %v (%s)", r, s.Message())
	}
	if r := s.Dispatch(OpToggleMailboxes); r != ResultSuccess {
		t.Fatalf("toggle to registry again: %v (%s)", r, s.Message())
	}
	if got := s.State().Entries[s.Cursor()].Name; got != b {
		t.Fatalf("registry cursor on %q after round trip, want %q", got, b)
	}
}

func TestSessionViewFileRemoteSelectableFinalizes(t *testing.T) {
	rc := &stubRemote{listing: remoteListing()}
	s := remoteSession(t, rc, Options{})

	moveCursorTo(t, s, "imap://mail.example.com/INBOX")
	if r := s.Dispatch(OpViewFile); r != ResultDone {
		t.Fatalf("view on a selectable mailbox: %v", r)
	}
	if got := s.Results(); len(got) != 1 || got[0] != "imap://mail.example.com/INBOX" {
		t.Fatalf("results = %v", got)
	}
}

func TestSessionViewFileRemoteContainerDescends(t *testing.T) {
	listing := remoteListing()
	listing.Entries = append(listing.Entries, model.FolderEntry{
		Name:   "imap://mail.example.com/Lists",
		Desc:   "Lists",
		Kind:   model.KindRemote,
		Remote: &model.RemoteMeta{Delim: '/', HasChildren: true},
	})
	rc := &stubRemote{listing: listing}
	s := remoteSession(t, rc, Options{})

	moveCursorTo(t, s, "imap://mail.example.com/Lists")
	if r := s.Dispatch(OpViewFile); r != ResultSuccess {
		t.Fatalf("view on a container: %v (%s)", r, s.Message())
	}
	if s.Dir() != "imap://mail.example.com/Lists" {
		t.Fatalf("view did not descend, dir = %q", s.Dir())
	}
}

func TestSessionSelectUnselectableRemote(t *testing.T) {
	listing := remoteListing()
	listing.Entries[0].Remote.Selectable = false
	rc := &stubRemote{listing: listing}
	s := remoteSession(t, rc, Options{})

	moveCursorTo(t, s, "imap://mail.example.com/INBOX")
	if r := s.Dispatch(OpSelect); r != ResultError {
		t.Fatalf("select unselectable: %v", r)
	}
}
