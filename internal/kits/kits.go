package kits

import (
	"strings"
	"sync"
	"time"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/util"

	"go.uber.org/zap"
)

// Store keeps named snapshots of relief packages for the lifetime of the
// session. It is a log, not a map: duplicate names are allowed and kits
// are keyed by insertion order.
type Store struct {
	mu     sync.Mutex
	kits   []models.CustomKit
	logger *zap.Logger
}

// NewStore creates an empty kit store
func NewStore() *Store {
	return &Store{
		logger: util.GetLogger(),
	}
}

// SaveKit appends a kit holding a deep copy of resources. A blank trimmed
// name or an empty resource list is rejected without error. Later changes
// to the live package never alter a saved kit.
func (s *Store) SaveKit(name string, resources []models.PackageEntry) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(resources) == 0 {
		return false
	}

	kit := models.CustomKit{
		Name:      name,
		Resources: copyEntries(resources),
		SavedAt:   time.Now(),
	}

	s.mu.Lock()
	s.kits = append(s.kits, kit)
	s.mu.Unlock()

	util.KitsSavedTotal.Inc()
	s.logger.Info("Custom kit saved",
		zap.String("name", name),
		zap.Int("resources", len(kit.Resources)))

	return true
}

// Kits returns the saved kits in insertion order. Snapshots are copied so
// callers cannot reach into stored state.
func (s *Store) Kits() []models.CustomKit {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CustomKit, len(s.kits))
	for i, kit := range s.kits {
		out[i] = models.CustomKit{
			Name:      kit.Name,
			Resources: copyEntries(kit.Resources),
			SavedAt:   kit.SavedAt,
		}
	}
	return out
}

// DeleteKit removes the kit at index; out-of-range indexes are ignored.
// Kits are immutable, so editing one means saving a new kit and deleting
// the old.
func (s *Store) DeleteKit(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.kits) {
		return false
	}

	s.kits = append(s.kits[:index], s.kits[index+1:]...)
	return true
}

// Len returns the number of saved kits
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.kits)
}

func copyEntries(entries []models.PackageEntry) []models.PackageEntry {
	out := make([]models.PackageEntry, len(entries))
	copy(out, entries)
	return out
}
