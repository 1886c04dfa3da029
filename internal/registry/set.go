// Package registry holds the in-memory backup sets: per title and medium, the
// ordered list of backup folders known to exist on disk. The filesystem is
// the durable source of truth; a Set is a cache of it kept in sync by the
// engine.
package registry

import (
	"sort"
	"sync"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

// Set is an ordered collection of backup entries sorted by folder name.
// Every access goes through the lock it was created with, which is shared
// with the controller so that readers rendering the list never observe a
// half-applied mutation.
type Set struct {
	mu      sync.Locker
	entries []types.BackupEntry
}

// NewSet returns an empty set guarded by mu. A nil mu gives the set a lock
// of its own.
func NewSet(mu sync.Locker) *Set {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Set{mu: mu}
}

// Append adds e and re-sorts the set by folder name. Duplicate folder names
// are kept; the later insert sorts after the earlier one.
func (s *Set) Append(e types.BackupEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Folder < s.entries[j].Folder
	})
}

// RemoveAt removes and returns the entry at index i.
// Returns ErrInvalidIndex if i is out of range.
func (s *Set) RemoveAt(i int) (types.BackupEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return types.BackupEntry{}, types.ErrInvalidIndex
	}
	e := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return e, nil
}

// Replace swaps the whole contents of the set, sorted by folder name.
func (s *Set) Replace(entries []types.BackupEntry) {
	sorted := make([]types.BackupEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Folder < sorted[j].Folder
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = sorted
}

// List returns a snapshot of the entries in order.
func (s *Set) List() []types.BackupEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.BackupEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Find returns the index of the last entry named folder, or -1.
func (s *Set) Find(folder string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Folder == folder {
			return i
		}
	}
	return -1
}
