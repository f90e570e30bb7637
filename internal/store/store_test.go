package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/planweave/planweave/internal/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "planweave.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.LoadState(); err != nil || ok {
		t.Fatalf("LoadState() on empty store = ok %v, err %v; want false, nil", ok, err)
	}

	doc := plan.DefaultDocument()
	doc.EmailMeta.Title = "Sprint Recap"
	doc, _ = plan.ToggleSectionVisibility(doc, "overview")

	if err := s.SaveState(doc); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}

	got, ok, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if !ok {
		t.Fatal("LoadState() found no mirror after save")
	}
	if got.EmailMeta.Title != "Sprint Recap" {
		t.Errorf("title = %q, want Sprint Recap", got.EmailMeta.Title)
	}
	sec, _ := got.Section("overview")
	if sec.Visible {
		t.Error("visibility change did not survive the round trip")
	}
	if !reflect.DeepEqual(got, doc) {
		t.Error("rehydrated document differs from saved document")
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)

	doc := plan.DefaultDocument()
	if err := s.SaveState(doc); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	if _, err := s.SaveDraft("keep me", doc); err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if _, ok, _ := s.LoadState(); ok {
		t.Error("mirror survived reset")
	}
	drafts, err := s.ListDrafts()
	if err != nil {
		t.Fatalf("ListDrafts() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Errorf("len(drafts) after reset = %d, want 1", len(drafts))
	}
}
