package store

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/planweave/planweave/internal/plan"
)

func TestSaveAndListDrafts_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	doc := plan.DefaultDocument()

	first, err := s.SaveDraft("first", doc)
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	second, err := s.SaveDraft("second", doc)
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if first.ID == second.ID {
		t.Error("drafts share an id")
	}

	drafts, err := s.ListDrafts()
	if err != nil {
		t.Fatalf("ListDrafts() error = %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("len(drafts) = %d, want 2", len(drafts))
	}
	if drafts[0].Name != "second" || drafts[1].Name != "first" {
		t.Errorf("draft order = [%s, %s], want newest first", drafts[0].Name, drafts[1].Name)
	}
}

func TestLoadDraft_CopiesNotAliases(t *testing.T) {
	s := newTestStore(t)
	doc := plan.DefaultDocument()

	draft, err := s.SaveDraft("snapshot", doc)
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}

	loaded, err := s.LoadDraft(draft.ID)
	if err != nil {
		t.Fatalf("LoadDraft() error = %v", err)
	}

	// Mutating the loaded document must not reach into the stored draft.
	loaded, _ = plan.PatchSectionContent(loaded, "glance", "heading", "MUTATED")

	again, err := s.LoadDraft(draft.ID)
	if err != nil {
		t.Fatalf("LoadDraft() error = %v", err)
	}
	sec, _ := again.Section("glance")
	if sec.Content.(plan.GlanceContent).Heading == "MUTATED" {
		t.Error("draft aliased the loaded document")
	}

	if _, err := s.LoadDraft("no-such-draft"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadDraft(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteDraft(t *testing.T) {
	s := newTestStore(t)
	doc := plan.DefaultDocument()

	draft, _ := s.SaveDraft("doomed", doc)
	kept, _ := s.SaveDraft("kept", doc)

	if err := s.DeleteDraft(draft.ID); err != nil {
		t.Fatalf("DeleteDraft() error = %v", err)
	}
	drafts, _ := s.ListDrafts()
	if len(drafts) != 1 || drafts[0].ID != kept.ID {
		t.Errorf("drafts after delete = %+v, want only %q", drafts, kept.ID)
	}

	// Deleting an absent id is a no-op.
	if err := s.DeleteDraft("already-gone"); err != nil {
		t.Errorf("DeleteDraft(absent) error = %v", err)
	}
}

func TestExportDrafts_EmptyCollection(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.ExportDrafts(); !errors.Is(err, ErrNoDrafts) {
		t.Errorf("ExportDrafts() on empty collection error = %v, want ErrNoDrafts", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	doc := plan.DefaultDocument()
	s.SaveDraft("alpha", doc)
	s.SaveDraft("beta", doc)

	before, _ := s.ListDrafts()
	blob, err := s.ExportDrafts()
	if err != nil {
		t.Fatalf("ExportDrafts() error = %v", err)
	}

	// Import into a fresh store: already-id'd records come through
	// untouched.
	other := newTestStore(t)
	merged, err := other.ImportDrafts(blob)
	if err != nil {
		t.Fatalf("ImportDrafts() error = %v", err)
	}
	if !reflect.DeepEqual(draftKeys(merged), draftKeys(before)) {
		t.Errorf("imported drafts = %v, want %v", draftKeys(merged), draftKeys(before))
	}

	stored, _ := other.ListDrafts()
	if !reflect.DeepEqual(draftKeys(stored), draftKeys(before)) {
		t.Error("import did not persist the merged collection")
	}
}

func TestImportDrafts_PrependsAndRepairsIDs(t *testing.T) {
	s := newTestStore(t)
	existing, _ := s.SaveDraft("existing", plan.DefaultDocument())

	blob := []byte(`[{"name": "imported", "emailMeta": {"title": "T"}, "sections": []}]`)
	merged, err := s.ImportDrafts(blob)
	if err != nil {
		t.Fatalf("ImportDrafts() error = %v", err)
	}

	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[0].Name != "imported" {
		t.Error("imported records not prepended ahead of existing collection")
	}
	if merged[0].ID == "" {
		t.Error("missing id was not repaired")
	}
	if merged[1].ID != existing.ID {
		t.Error("existing draft displaced by import")
	}
}

func TestImportDrafts_MalformedPayloadLeavesStoreUntouched(t *testing.T) {
	s := newTestStore(t)
	s.SaveDraft("precious", plan.DefaultDocument())

	before, err := s.ExportDrafts()
	if err != nil {
		t.Fatalf("ExportDrafts() error = %v", err)
	}

	for _, payload := range []string{
		`{"not": "an array"}`,
		`"scalar"`,
		`null`,
		`true`,
		`42`,
		`[{"name": "broken"`,
		`not json at all`,
		``,
	} {
		if _, err := s.ImportDrafts([]byte(payload)); err == nil {
			t.Errorf("ImportDrafts(%q) succeeded, want error", payload)
		}
	}

	after, err := s.ExportDrafts()
	if err != nil {
		t.Fatalf("ExportDrafts() error = %v", err)
	}
	if string(before) != string(after) {
		t.Error("failed imports mutated the stored collection")
	}
}

func draftKeys(drafts []Draft) []string {
	keys := make([]string, len(drafts))
	for i, d := range drafts {
		keys[i] = d.ID + "/" + d.Name
	}
	return keys
}

func TestDraftJSONShape(t *testing.T) {
	s := newTestStore(t)
	s.SaveDraft("shape", plan.DefaultDocument())

	blob, _ := s.ExportDrafts()
	var generic []map[string]any
	if err := json.Unmarshal(blob, &generic); err != nil {
		t.Fatalf("export is not a JSON array: %v", err)
	}
	for _, key := range []string{"id", "name", "createdAt", "emailMeta", "sections"} {
		if _, ok := generic[0][key]; !ok {
			t.Errorf("exported draft missing %q", key)
		}
	}
}
