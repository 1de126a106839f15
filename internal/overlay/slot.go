package overlay

import (
	"sync"

	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

// Slot holds the most recently received snapshot. Writers replace the whole
// value and readers get a whole value back; snapshots are never modified
// after they are decoded.
type Slot struct {
	mu      sync.Mutex
	info    schema.GameInfo
	version int
	set     bool
}

// Store replaces the held snapshot and returns its version, starting at 1.
func (s *Slot) Store(info schema.GameInfo) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
	s.version++
	s.set = true
	return s.version
}

// Load returns the held snapshot. ok is false until the first Store.
func (s *Slot) Load() (info schema.GameInfo, version int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info, s.version, s.set
}
