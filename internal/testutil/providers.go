package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

// StubProvider is an in-memory StatsProvider. Missing documents fail with providers.ErrNotFound,
// Errs fails a whole endpoint kind, and Gate (when set) holds every call until it is closed.
type StubProvider struct {
	mu              sync.Mutex
	Players         map[string]players.Player
	PlayerSummaries map[string]*stats.Summary // keyed by SummaryKey
	Teams           map[string]teams.Team
	TeamSummaries   map[string]*stats.Summary // keyed by SummaryKey
	Errs            map[string]error          // keyed by providers.Endpoint*
	Gate            chan struct{}
	calls           map[string]int
}

// NewStubProvider returns an empty stub ready for documents to be added.
func NewStubProvider() *StubProvider {
	return &StubProvider{
		Players:         map[string]players.Player{},
		PlayerSummaries: map[string]*stats.Summary{},
		Teams:           map[string]teams.Team{},
		TeamSummaries:   map[string]*stats.Summary{},
		Errs:            map[string]error{},
	}
}

// SummaryKey indexes summaries by group and slug.
func SummaryKey(group players.Group, slug string) string {
	return string(group) + "/" + slug
}

// AddPlayer registers a player with an optional summary for their position's group.
func (s *StubProvider) AddPlayer(p players.Player, summary *stats.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Players[p.Slug] = p
	if group, ok := p.Group(); ok && summary != nil {
		s.PlayerSummaries[SummaryKey(group, p.Slug)] = summary
	}
}

// AddTeam registers a team with its group summaries.
func (s *StubProvider) AddTeam(t teams.Team, batting, pitching *stats.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Teams[t.Slug] = t
	if batting != nil {
		s.TeamSummaries[SummaryKey(players.GroupBatting, t.Slug)] = batting
	}
	if pitching != nil {
		s.TeamSummaries[SummaryKey(players.GroupPitching, t.Slug)] = pitching
	}
}

// SetErr fails every call to an endpoint kind; a nil err clears it.
func (s *StubProvider) SetErr(endpoint string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.Errs, endpoint)
		return
	}
	s.Errs[endpoint] = err
}

// SetGate replaces the gate; calls made afterwards wait on it.
func (s *StubProvider) SetGate(gate chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gate = gate
}

// Calls returns how many times an endpoint kind was invoked.
func (s *StubProvider) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// TotalCalls returns the number of invocations across every endpoint.
func (s *StubProvider) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *StubProvider) enter(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[endpoint]++
	gate := s.Gate
	err := s.Errs[endpoint]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func notFound(path string) error {
	return &providers.FetchError{Path: path, StatusCode: 404, Err: providers.ErrNotFound}
}

func (s *StubProvider) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	if err := s.enter(ctx, providers.EndpointPlayers); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]players.Player, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *StubProvider) FetchPlayer(ctx context.Context, slug string) (players.Player, error) {
	if err := s.enter(ctx, providers.EndpointPlayer); err != nil {
		return players.Player{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Players[slug]
	if !ok {
		return players.Player{}, notFound(providers.PlayerDetailsPath(slug))
	}
	return p, nil
}

func (s *StubProvider) FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	if err := s.enter(ctx, providers.EndpointPlayerSummary); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.PlayerSummaries[SummaryKey(group, slug)]
	if !ok {
		return nil, notFound(providers.PlayerSummaryPath(group, slug))
	}
	return summary, nil
}

func (s *StubProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	if err := s.enter(ctx, providers.EndpointTeams); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]teams.Team, 0, len(s.Teams))
	for _, t := range s.Teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *StubProvider) FetchTeam(ctx context.Context, slug string) (teams.Team, error) {
	if err := s.enter(ctx, providers.EndpointTeam); err != nil {
		return teams.Team{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Teams[slug]
	if !ok {
		return teams.Team{}, notFound(providers.TeamDetailsPath(slug))
	}
	return t, nil
}

func (s *StubProvider) FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	if err := s.enter(ctx, providers.EndpointTeamSummary); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.TeamSummaries[SummaryKey(group, slug)]
	if !ok {
		return nil, notFound(providers.TeamSummaryPath(group, slug))
	}
	return summary, nil
}
