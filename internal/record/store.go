// internal/record/store.go
package record

import (
	"sync"
	"time"
)

// Section identifies one decodable top-level object.
type Section uint8

const (
	SectionStatus Section = 1 << iota
	SectionSettings
	SectionCalibration
)

// AllSections is the set of every known section.
const AllSections = SectionStatus | SectionSettings | SectionCalibration

// Name returns the payload key of a single section.
func (s Section) Name() string {
	switch s {
	case SectionStatus:
		return "status"
	case SectionSettings:
		return "settings"
	case SectionCalibration:
		return "calibration"
	}
	return ""
}

// Has reports whether every section in o is set in s.
func (s Section) Has(o Section) bool { return s&o == o && o != 0 }

// ParseSection maps a payload key back to its Section.
func ParseSection(name string) (Section, bool) {
	switch name {
	case "status":
		return SectionStatus, true
	case "settings":
		return SectionSettings, true
	case "calibration":
		return SectionCalibration, true
	}
	return 0, false
}

// Set groups one instance of every decodable record.
type Set struct {
	Status      Status
	Settings    Settings
	Calibration Calibration

	// Valid marks sections decoded at least once.
	Valid Section
	// UpdatedAt is the time of the last successful decode of any section.
	UpdatedAt time.Time
}

// Store serializes record writers against concurrent readers.
// The zero value is ready to use.
type Store struct {
	mu  sync.RWMutex
	set Set
}

// Update runs fn with exclusive access to the stored set.
func (s *Store) Update(fn func(*Set)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.set)
}

// Snapshot returns a copy of the stored set.
func (s *Store) Snapshot() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}
