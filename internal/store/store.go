package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/planweave/planweave/internal/plan"
)

var bucketState = []byte("weekly_plan")

// Persisted keys, kept byte-compatible with the browser editor's local
// storage layout.
var (
	keyEmailData = []byte("weeklyPlanEmailData")
	keySections  = []byte("weeklyPlanSections")
	keyDrafts    = []byte("weeklyPlanDrafts")
)

// ErrNotFound is returned when a draft id does not resolve.
var ErrNotFound = errors.New("not found")

// Store is the local persistence adapter: it mirrors the live document and
// keeps the named draft collection, all in one BoltDB file.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the store at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveState mirrors the live document to the store so a restart resumes
// the last working state. Email metadata and sections are stored under
// their own keys.
func (s *Store) SaveState(doc plan.Document) error {
	metaData, err := json.Marshal(doc.EmailMeta)
	if err != nil {
		return fmt.Errorf("failed to marshal email metadata: %w", err)
	}
	sectionData, err := json.Marshal(doc.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if err := b.Put(keyEmailData, metaData); err != nil {
			return fmt.Errorf("failed to store email metadata: %w", err)
		}
		if err := b.Put(keySections, sectionData); err != nil {
			return fmt.Errorf("failed to store sections: %w", err)
		}
		return nil
	})
}

// LoadState rehydrates the mirrored document. The second return value is
// false when no mirror exists yet (first run, or after Reset).
func (s *Store) LoadState() (plan.Document, bool, error) {
	var metaData, sectionData []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if v := b.Get(keyEmailData); v != nil {
			metaData = append([]byte(nil), v...)
		}
		if v := b.Get(keySections); v != nil {
			sectionData = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return plan.Document{}, false, err
	}
	if metaData == nil && sectionData == nil {
		return plan.Document{}, false, nil
	}

	doc := plan.DefaultDocument()
	if metaData != nil {
		if err := json.Unmarshal(metaData, &doc.EmailMeta); err != nil {
			return plan.Document{}, false, fmt.Errorf("failed to parse email metadata: %w", err)
		}
	}
	if sectionData != nil {
		var sections []plan.Section
		if err := json.Unmarshal(sectionData, &sections); err != nil {
			return plan.Document{}, false, fmt.Errorf("failed to parse sections: %w", err)
		}
		doc.Sections = sections
	}
	return doc, true, nil
}

// Reset clears the live-document mirror. Drafts are untouched.
func (s *Store) Reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketState)
		if err := b.Delete(keyEmailData); err != nil {
			return err
		}
		return b.Delete(keySections)
	})
}
