package teams

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
)

// Service holds the enumeration of every known team, sorted by display name, indexed by slug.
type Service struct {
	mu     sync.RWMutex
	order  []teams.Team
	bySlug map[string]int
	loaded bool
}

// NewService constructs an empty Service.
func NewService() *Service {
	return &Service{bySlug: make(map[string]int)}
}

// Teams returns a copy of the enumerated teams.
func (s *Service) Teams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]teams.Team(nil), s.order...)
}

// TeamBySlug returns the enumeration entry for slug.
func (s *Service) TeamBySlug(slug string) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[slug]
	if !ok {
		return teams.Team{}, false
	}
	return s.order[i], true
}

// Loaded reports whether an enumeration has been stored.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ReplaceTeams swaps the enumeration. Entries without a slug and repeated slugs are skipped.
func (s *Service) ReplaceTeams(items []teams.Team) {
	order := make([]teams.Team, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, t := range items {
		if t.Slug == "" || seen[t.Slug] {
			continue
		}
		seen[t.Slug] = true
		order = append(order, t)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].DisplayName() < order[j].DisplayName()
	})

	bySlug := make(map[string]int, len(order))
	for i, t := range order {
		bySlug[t.Slug] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.bySlug = bySlug
	s.loaded = true
}
