package pack

import (
	"strings"
	"sync"

	"relief-coordinator/internal/models"
	"relief-coordinator/internal/util"

	"go.uber.org/zap"
)

// Subscriber is invoked synchronously after every mutating call, so
// dependent views (cart badge, drawer list) observe the new state before
// the mutation returns.
type Subscriber func(entries []models.PackageEntry)

// Store owns the in-progress relief package: an ordered set of package
// entries, at most one per resource id.
type Store struct {
	mu          sync.Mutex
	entries     []models.PackageEntry
	subscribers []Subscriber
	logger      *zap.Logger
}

// NewStore creates an empty package store
func NewStore() *Store {
	return &Store{
		logger: util.GetLogger(),
	}
}

// Subscribe registers a subscriber for state changes. Subscribers are not
// removable; they live as long as the store (session-scoped views).
func (s *Store) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// AddResource merges item into the package. An existing entry with the
// same id has its quantity incremented, clamped at MaxQuantity; a new
// entry starts at 1 and keeps its insertion position. Returns the entry's
// resulting quantity so callers can report it.
func (s *Store) AddResource(item models.ResourceItem) int {
	s.mu.Lock()

	quantity := 0
	for i := range s.entries {
		if s.entries[i].ID == item.ID {
			if s.entries[i].Quantity < models.MaxQuantity {
				s.entries[i].Quantity++
			}
			quantity = s.entries[i].Quantity
			break
		}
	}

	if quantity == 0 {
		entry := models.PackageEntry{ResourceItem: item, Quantity: 1}
		if entry.Status == "" {
			entry.Status = models.StatusUnknown
		}
		s.entries = append(s.entries, entry)
		quantity = 1
	}

	util.PackageAddsTotal.Inc()
	s.logger.Debug("Resource added to package",
		zap.String("resource_id", item.ID),
		zap.Int("quantity", quantity))

	s.finishMutation()
	return quantity
}

// UpdateQuantity sets the entry's quantity. Values outside [1, MaxQuantity]
// and unknown ids are ignored without error; this is a UI convenience
// operation, not a strict API.
func (s *Store) UpdateQuantity(id string, newQuantity int) {
	if newQuantity < 1 || newQuantity > models.MaxQuantity {
		return
	}

	s.mu.Lock()

	changed := false
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Quantity = newQuantity
			changed = true
			break
		}
	}

	if !changed {
		s.mu.Unlock()
		return
	}

	s.finishMutation()
}

// RemoveResource removes the entry if present; removing an absent id is a
// silent no-op.
func (s *Store) RemoveResource(id string) {
	s.mu.Lock()

	removed := false
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			removed = true
			break
		}
	}

	if !removed {
		s.mu.Unlock()
		return
	}

	util.PackageRemovalsTotal.Inc()
	s.logger.Debug("Resource removed from package", zap.String("resource_id", id))

	s.finishMutation()
}

// ClearPackage empties the package unconditionally.
func (s *Store) ClearPackage() {
	s.mu.Lock()
	s.entries = nil

	util.PackageClearsTotal.Inc()
	s.logger.Debug("Package cleared")

	s.finishMutation()
}

// IsInPackage reports whether the resource id has an entry
func (s *Store) IsInPackage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			return true
		}
	}
	return false
}

// ResourceQuantity returns the entry's quantity, 0 when absent
func (s *Store) ResourceQuantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			return s.entries[i].Quantity
		}
	}
	return 0
}

// TotalItems returns the sum of all entry quantities, 0 when empty
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Entries returns a copied snapshot in insertion order
func (s *Store) Entries() []models.PackageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Summary renders a short human-readable line for logs and notifications
func (s *Store) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return "empty package"
	}

	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}

func (s *Store) totalLocked() int {
	total := 0
	for i := range s.entries {
		total += s.entries[i].Quantity
	}
	return total
}

func (s *Store) snapshotLocked() []models.PackageEntry {
	snapshot := make([]models.PackageEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

// finishMutation updates the gauge, snapshots state, releases the lock and
// notifies subscribers. Called with the lock held; notification happens
// outside the lock so subscribers may query the store.
func (s *Store) finishMutation() {
	util.PackageItemsGauge.Set(float64(s.totalLocked()))
	snapshot := s.snapshotLocked()
	subs := s.subscribers
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}
