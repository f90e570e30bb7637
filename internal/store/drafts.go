package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/planweave/planweave/internal/plan"
)

// ErrNoDrafts is returned when exporting an empty draft collection.
var ErrNoDrafts = errors.New("no drafts to export")

// Draft is a named, timestamped snapshot of a document. Drafts are
// immutable once saved; loading one copies its state into the live
// document.
type Draft struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	EmailMeta plan.EmailMeta `json:"emailMeta"`
	Sections  []plan.Section `json:"sections"`
}

// Document reconstructs the snapshotted document.
func (d Draft) Document() plan.Document {
	doc := plan.Document{EmailMeta: d.EmailMeta, Sections: d.Sections}
	return doc.Clone()
}

// SaveDraft snapshots the document under a name and prepends it to the
// collection, newest first. The whole collection is written back as one
// blob.
func (s *Store) SaveDraft(name string, doc plan.Document) (Draft, error) {
	snapshot := doc.Clone()
	draft := Draft{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		EmailMeta: snapshot.EmailMeta,
		Sections:  snapshot.Sections,
	}

	err := s.updateDrafts(func(drafts []Draft) ([]Draft, error) {
		return append([]Draft{draft}, drafts...), nil
	})
	if err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// ListDrafts returns the draft collection, newest first.
func (s *Store) ListDrafts() ([]Draft, error) {
	var drafts []Draft
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		drafts, err = readDrafts(tx)
		return err
	})
	return drafts, err
}

// CountDrafts reports the number of stored drafts.
func (s *Store) CountDrafts() (int, error) {
	drafts, err := s.ListDrafts()
	if err != nil {
		return 0, err
	}
	return len(drafts), nil
}

// LoadDraft returns the document snapshotted in the draft with the given
// id, or ErrNotFound. The caller is expected to have confirmed the
// destructive load with the user before overwriting unsaved work.
func (s *Store) LoadDraft(id string) (plan.Document, error) {
	drafts, err := s.ListDrafts()
	if err != nil {
		return plan.Document{}, err
	}
	for _, d := range drafts {
		if d.ID == id {
			return d.Document(), nil
		}
	}
	return plan.Document{}, fmt.Errorf("draft %q: %w", id, ErrNotFound)
}

// DeleteDraft removes the draft with the given id and rewrites the
// collection. Deleting an absent id is a no-op.
func (s *Store) DeleteDraft(id string) error {
	return s.updateDrafts(func(drafts []Draft) ([]Draft, error) {
		kept := drafts[:0]
		for _, d := range drafts {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		return kept, nil
	})
}

// ExportDrafts serializes the full draft collection to one JSON document.
// An empty collection is an error; an empty export is never useful.
func (s *Store) ExportDrafts() ([]byte, error) {
	drafts, err := s.ListDrafts()
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrNoDrafts
	}
	return json.MarshalIndent(drafts, "", "  ")
}

// ImportDrafts parses a JSON array of drafts and prepends the records to
// the existing collection. Records missing an id get a fresh one. A
// malformed payload is rejected wholesale: the stored collection is not
// touched.
func (s *Store) ImportDrafts(data []byte) ([]Draft, error) {
	// json.Unmarshal accepts "null" into a slice, so check the first
	// token before decoding.
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("import must be a JSON array of drafts: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("import must be a JSON array of drafts, got %v", tok)
	}

	var incoming []Draft
	if err := json.Unmarshal(data, &incoming); err != nil {
		return nil, fmt.Errorf("import must be a JSON array of drafts: %w", err)
	}

	for i := range incoming {
		if incoming[i].ID == "" {
			incoming[i].ID = uuid.New().String()
		}
		if incoming[i].CreatedAt.IsZero() {
			incoming[i].CreatedAt = time.Now()
		}
	}

	var merged []Draft
	err = s.updateDrafts(func(drafts []Draft) ([]Draft, error) {
		merged = append(append([]Draft(nil), incoming...), drafts...)
		return merged, nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func readDrafts(tx *bolt.Tx) ([]Draft, error) {
	v := tx.Bucket(bucketState).Get(keyDrafts)
	if v == nil {
		return nil, nil
	}
	var drafts []Draft
	if err := json.Unmarshal(v, &drafts); err != nil {
		return nil, fmt.Errorf("failed to parse stored drafts: %w", err)
	}
	return drafts, nil
}

func (s *Store) updateDrafts(fn func([]Draft) ([]Draft, error)) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		drafts, err := readDrafts(tx)
		if err != nil {
			return err
		}
		next, err := fn(drafts)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal drafts: %w", err)
		}
		return tx.Bucket(bucketState).Put(keyDrafts, data)
	})
}
