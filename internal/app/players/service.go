package players

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
)

// Service holds the enumeration of every known player, sorted by name, indexed by slug.
type Service struct {
	mu     sync.RWMutex
	order  []players.Player
	bySlug map[string]int
	loaded bool
}

// NewService constructs an empty Service.
func NewService() *Service {
	return &Service{bySlug: make(map[string]int)}
}

// Players returns a copy of the enumerated players.
func (s *Service) Players() []players.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]players.Player(nil), s.order...)
}

// PlayerBySlug returns the enumeration entry for slug.
func (s *Service) PlayerBySlug(slug string) (players.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[slug]
	if !ok {
		return players.Player{}, false
	}
	return s.order[i], true
}

// Slugs returns every known slug in name order.
func (s *Service) Slugs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, p.Slug)
	}
	return out
}

// Loaded reports whether an enumeration has been stored.
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ReplacePlayers swaps the enumeration. Entries without a slug and repeated slugs are skipped.
func (s *Service) ReplacePlayers(items []players.Player) {
	order := make([]players.Player, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, p := range items {
		if p.Slug == "" || seen[p.Slug] {
			continue
		}
		seen[p.Slug] = true
		order = append(order, p)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Name < order[j].Name
	})

	bySlug := make(map[string]int, len(order))
	for i, p := range order {
		bySlug[p.Slug] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.bySlug = bySlug
	s.loaded = true
}
