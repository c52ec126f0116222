// Package fixture serves a small embedded league laid out exactly like the statistics API, for local
// development, tests and offline prerendering.
package fixture

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/stats"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/providers"
)

//go:embed data
var embedded embed.FS

// Provider reads documents from a file tree keyed by upstream path.
type Provider struct {
	files fs.FS
}

// New creates a fixture provider over the embedded league.
func New() *Provider {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("fixture: embedded data: %v", err))
	}
	return &Provider{files: sub}
}

// NewFromFS creates a fixture provider over an arbitrary file tree, such as a saved API mirror.
func NewFromFS(files fs.FS) *Provider {
	return &Provider{files: files}
}

func (p *Provider) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	var out []players.Player
	if err := p.read(ctx, providers.PlayersPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Provider) FetchPlayer(ctx context.Context, slug string) (players.Player, error) {
	var out players.Player
	if err := p.read(ctx, providers.PlayerDetailsPath(slug), &out); err != nil {
		return players.Player{}, err
	}
	return out, nil
}

func (p *Provider) FetchPlayerSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	var out stats.Summary
	if err := p.read(ctx, providers.PlayerSummaryPath(group, slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Provider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	var out []teams.Team
	if err := p.read(ctx, providers.TeamsPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Provider) FetchTeam(ctx context.Context, slug string) (teams.Team, error) {
	var out teams.Team
	if err := p.read(ctx, providers.TeamDetailsPath(slug), &out); err != nil {
		return teams.Team{}, err
	}
	return out, nil
}

func (p *Provider) FetchTeamSummary(ctx context.Context, group players.Group, slug string) (*stats.Summary, error) {
	var out stats.Summary
	if err := p.read(ctx, providers.TeamSummaryPath(group, slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Provider) read(ctx context.Context, path string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := strings.TrimPrefix(path, "/")
	if !fs.ValidPath(name) {
		return &providers.FetchError{Path: path, Err: providers.ErrNotFound}
	}
	data, err := fs.ReadFile(p.files, name)
	if errors.Is(err, fs.ErrNotExist) {
		return &providers.FetchError{Path: path, Err: providers.ErrNotFound}
	}
	if err != nil {
		return &providers.FetchError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &providers.FetchError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
