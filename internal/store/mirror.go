package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/planweave/planweave/internal/plan"
)

// DefaultMirrorDelay is how long the mirror coalesces document updates
// before writing. Every keystroke mutates the document; writing each one
// through to disk buys nothing, so writes are debounced.
const DefaultMirrorDelay = 500 * time.Millisecond

// Mirror debounces live-document writes to the store. The contract it
// keeps is the editor's: the current document is always recoverable after
// a reload, at most one debounce window behind.
type Mirror struct {
	store   *Store
	delay   time.Duration
	logger  *slog.Logger
	onWrite func(err error)

	mu      sync.Mutex
	pending *plan.Document
	timer   *time.Timer
	closed  bool
}

// NewMirror creates a mirror writing through the given store. onWrite, if
// non-nil, observes every flush result (used for metrics).
func NewMirror(s *Store, delay time.Duration, logger *slog.Logger, onWrite func(err error)) *Mirror {
	if delay <= 0 {
		delay = DefaultMirrorDelay
	}
	return &Mirror{store: s, delay: delay, logger: logger, onWrite: onWrite}
}

// Touch schedules the document to be mirrored. Rapid successive calls
// collapse into one write of the latest document.
func (m *Mirror) Touch(doc plan.Document) {
	snapshot := doc.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.pending = &snapshot
	if m.timer == nil {
		m.timer = time.AfterFunc(m.delay, m.flush)
	} else {
		m.timer.Reset(m.delay)
	}
}

// Flush writes any pending document immediately.
func (m *Mirror) Flush() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	m.flush()
}

// Close flushes pending state and stops the mirror.
func (m *Mirror) Close() {
	m.Flush()
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *Mirror) flush() {
	m.mu.Lock()
	doc := m.pending
	m.pending = nil
	m.mu.Unlock()

	if doc == nil {
		return
	}

	err := m.store.SaveState(*doc)
	if err != nil {
		// The in-memory document stays valid; nothing is lost beyond
		// this write.
		m.logger.Error("failed to mirror document", "error", err)
	}
	if m.onWrite != nil {
		m.onWrite(err)
	}
}
