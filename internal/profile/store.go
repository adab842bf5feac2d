package profile

import (
	"fmt"
	"sort"
)

// Store is a read-only profile lookup. Absence is a valid result.
type Store interface {
	Lookup(userID string) (Profile, bool)
}

// StaticStore is an immutable in-memory Store built once at startup.
type StaticStore struct {
	profiles map[string]Profile
}

// Compile-time interface check.
var _ Store = (*StaticStore)(nil)

// NewStaticStore creates a store over the given profiles.
func NewStaticStore(profiles map[string]Profile) *StaticStore {
	cp := make(map[string]Profile, len(profiles))
	for id, p := range profiles {
		cp[id] = p
	}
	return &StaticStore{profiles: cp}
}

// Lookup implements Store.
func (s *StaticStore) Lookup(userID string) (Profile, bool) {
	p, ok := s.profiles[userID]
	return p, ok
}

// UserIDs returns all known user IDs, sorted.
func (s *StaticStore) UserIDs() []string {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entry is the YAML shape of a configured profile. Role selects the
// variant; fields irrelevant to the role are rejected at build time
// rather than silently dropped.
type Entry struct {
	Role           string     `yaml:"role"`
	ActiveGame     string     `yaml:"active_game"`
	Progress       string     `yaml:"progress"`
	CompletedGames []string   `yaml:"completed_games"`
	Views          *ViewStats `yaml:"views"`
	FavouriteGame  string     `yaml:"favourite_game"`
	Budget         string     `yaml:"budget"`
}

// FromEntries builds a StaticStore from configuration entries.
func FromEntries(entries map[string]Entry) (*StaticStore, error) {
	profiles := make(map[string]Profile, len(entries))
	for id, e := range entries {
		p, err := e.toProfile()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", id, err)
		}
		profiles[id] = p
	}
	return NewStaticStore(profiles), nil
}

func (e Entry) toProfile() (Profile, error) {
	switch e.Role {
	case "developer":
		if e.FavouriteGame != "" || e.Budget != "" {
			return nil, fmt.Errorf("developer profile must not set buyer fields")
		}
		d := Developer{
			ActiveGame:     e.ActiveGame,
			Progress:       e.Progress,
			CompletedGames: e.CompletedGames,
		}
		if e.Views != nil {
			d.Views = *e.Views
		}
		return d, nil
	case "buyer":
		if e.ActiveGame != "" || e.Progress != "" || e.Views != nil {
			return nil, fmt.Errorf("buyer profile must not set developer fields")
		}
		return Buyer{
			FavouriteGame:  e.FavouriteGame,
			Budget:         e.Budget,
			CompletedGames: e.CompletedGames,
		}, nil
	default:
		return nil, fmt.Errorf("unknown role %q (want developer or buyer)", e.Role)
	}
}
