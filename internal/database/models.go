package database

import (
	"sort"
	"time"
)

// SavedScheme is a scheme the user bookmarked
type SavedScheme struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedSet is the set of bookmarked scheme names
type SavedSet map[string]struct{}

// NewSavedSet builds a set from names
func NewSavedSet(names ...string) SavedSet {
	s := make(SavedSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is saved
func (s SavedSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the saved names in sorted order
func (s SavedSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
