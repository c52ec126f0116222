package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/http/requestutil"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
)

// IndexLoader reloads the player and team enumerations.
type IndexLoader interface {
	LoadIndex(ctx context.Context) error
	Players() []players.Player
	Teams() []teams.Team
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	index  IndexLoader
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(index IndexLoader, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		index:  index,
		token:  token,
		logger: logger,
	}
}

// RefreshIndex reloads the enumerations so new players and teams get pages without a restart.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshIndex(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.index == nil {
		writeError(w, r, http.StatusServiceUnavailable, "index not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.index.LoadIndex(r.Context()); err != nil {
		logging.Warn(logger, "admin index refresh failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "failed to load index", logger)
		return
	}

	playerCount, teamCount := len(h.index.Players()), len(h.index.Teams())
	writeJSON(w, http.StatusOK, map[string]any{
		"players": playerCount,
		"teams":   teamCount,
		"status":  "ok",
	}, logger)
	logging.Info(logger, "admin index refreshed",
		slog.Int("players", playerCount),
		slog.Int("teams", teamCount),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
