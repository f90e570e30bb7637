package plan

import (
	"strconv"
	"sync"
	"time"
)

// CustomSectionPrefix marks ids of sections added at runtime.
const CustomSectionPrefix = "custom-section-"

var (
	idMu    sync.Mutex
	lastID  int64
	idClock = func() int64 { return time.Now().UnixMilli() }
)

// NewItemID returns a millisecond-timestamp id for a repeated sub-item.
// Two calls inside the same millisecond get strictly increasing values, so
// ids never collide within a session.
func NewItemID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := idClock()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

// NewSectionID returns a prefixed id for a runtime-added section.
func NewSectionID() string {
	return CustomSectionPrefix + NewItemID()
}
