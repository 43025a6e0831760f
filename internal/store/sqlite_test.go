package store_test

import (
	"testing"
	"time"

	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/tests/testutil"
)

func TestRecordVisitBumpsCount(t *testing.T) {
	s := testutil.NewTestStore(t)

	for i := 0; i < 3; i++ {
		if err := s.RecordVisit("/home/u/Mail", model.FileSystemView); err != nil {
			t.Fatalf("recording visit: %v", err)
		}
	}

	visits, err := s.FrequentLocations(10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(visits) != 1 {
		t.Fatalf("expected one row, got %d", len(visits))
	}
	if visits[0].VisitCount != 3 {
		t.Fatalf("visit count = %d, want 3", visits[0].VisitCount)
	}
	if visits[0].ViewMode != model.FileSystemView.String() {
		t.Fatalf("view mode = %q", visits[0].ViewMode)
	}
}

func TestRecordVisitIgnoresEmptyLocation(t *testing.T) {
	s := testutil.NewTestStore(t)

	if err := s.RecordVisit("", model.FileSystemView); err != nil {
		t.Fatalf("recording empty location: %v", err)
	}
	locs, err := s.RecentLocations(10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(locs) != 0 {
		t.Fatalf("empty location was stored: %v", locs)
	}
}

func TestRecentLocationsOrder(t *testing.T) {
	s := testutil.NewTestStore(t)

	for _, loc := range []string{"/a", "/b", "/c"} {
		if err := s.RecordVisit(loc, model.FileSystemView); err != nil {
			t.Fatalf("recording %s: %v", loc, err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	// Revisiting /a makes it the most recent again.
	if err := s.RecordVisit("/a", model.FileSystemView); err != nil {
		t.Fatalf("revisiting: %v", err)
	}

	locs, err := s.RecentLocations(2)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(locs) != 2 || locs[0] != "/a" || locs[1] != "/c" {
		t.Fatalf("recent = %v, want [/a /c]", locs)
	}
}

func TestForget(t *testing.T) {
	s := testutil.NewTestStore(t)

	if err := s.RecordVisit("/a", model.FileSystemView); err != nil {
		t.Fatalf("recording: %v", err)
	}
	if err := s.Forget("/a"); err != nil {
		t.Fatalf("forgetting: %v", err)
	}
	locs, err := s.RecentLocations(10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(locs) != 0 {
		t.Fatalf("location survived Forget: %v", locs)
	}
}

func TestPruneOlderThan(t *testing.T) {
	s := testutil.NewTestStore(t)

	if err := s.RecordVisit("/old", model.FileSystemView); err != nil {
		t.Fatalf("recording: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(2 * time.Millisecond)
	if err := s.RecordVisit("/new", model.FileSystemView); err != nil {
		t.Fatalf("recording: %v", err)
	}

	n, err := s.PruneOlderThan(cutoff)
	if err != nil {
		t.Fatalf("pruning: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned %d rows, want 1", n)
	}
	locs, err := s.RecentLocations(10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(locs) != 1 || locs[0] != "/new" {
		t.Fatalf("recent after prune = %v", locs)
	}
}
