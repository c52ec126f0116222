package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/blaseball-reference/internal/domain/players"
	"github.com/preston-bernstein/blaseball-reference/internal/domain/teams"
	"github.com/preston-bernstein/blaseball-reference/internal/http/requestutil"
	"github.com/preston-bernstein/blaseball-reference/internal/logging"
	"github.com/preston-bernstein/blaseball-reference/internal/pages"
	"github.com/preston-bernstein/blaseball-reference/internal/views"
)

// Route parameters.
const (
	ParamPlayerSlug = "playerSlug"
	ParamTeamSlug   = "teamSlug"
)

// Site is the read side of the page registry.
type Site interface {
	Ready() bool
	Players() []players.Player
	Teams() []teams.Team
	PlayerView(ctx context.Context, slug string) pages.PlayerView
	TeamView(ctx context.Context, slug string) pages.TeamView
}

// Handler serves the HTML pages, their JSON documents and the health endpoints.
type Handler struct {
	site     Site
	composer *pages.Composer
	logger   *slog.Logger
}

// NewHandler constructs a Handler. A nil composer uses the embedded column catalog.
func NewHandler(site Site, composer *pages.Composer, logger *slog.Logger) *Handler {
	if composer == nil {
		composer = pages.NewComposer(nil)
	}
	return &Handler{
		site:     site,
		composer: composer,
		logger:   logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: both enumerations must have loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.site != nil && h.site.Ready() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, http.StatusServiceUnavailable, "index not loaded", h.logger)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.Home())
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.About())
}

// NotFound renders the not-found document for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, views.NotFound())
}

// Players lists every known player.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	var list []players.Player
	if h.site != nil {
		list = h.site.Players()
	}
	render(w, r, http.StatusOK, views.Players(list))
}

// Teams lists every known team.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	var list []teams.Team
	if h.site != nil {
		list = h.site.Teams()
	}
	render(w, r, http.StatusOK, views.Teams(list))
}

// Player renders a player page.
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	page := h.playerPage(r)
	h.logPage(r, page)
	render(w, r, pageStatus(page), views.Entity(page))
}

// Team renders a team page.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	page := h.teamPage(r)
	h.logPage(r, page)
	render(w, r, pageStatus(page), views.Entity(page))
}

// PlayerJSON returns the composed player document.
func (h *Handler) PlayerJSON(w http.ResponseWriter, r *http.Request) {
	page := h.playerPage(r)
	if page.Status == pages.StatusNotFound {
		writeError(w, r, http.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, pageStatus(page), page, h.logger)
}

// TeamJSON returns the composed team document.
func (h *Handler) TeamJSON(w http.ResponseWriter, r *http.Request) {
	page := h.teamPage(r)
	if page.Status == pages.StatusNotFound {
		writeError(w, r, http.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, pageStatus(page), page, h.logger)
}

func (h *Handler) playerPage(r *http.Request) pages.Page {
	slug, ok := requestutil.Slug(chi.URLParam(r, ParamPlayerSlug))
	if !ok || h.site == nil {
		return h.composer.ComposePlayer(pages.PlayerView{Slug: slug}, pages.Query{})
	}
	return h.composer.ComposePlayer(h.site.PlayerView(r.Context(), slug), requestutil.PageQuery(r.URL.Query()))
}

func (h *Handler) teamPage(r *http.Request) pages.Page {
	slug, ok := requestutil.Slug(chi.URLParam(r, ParamTeamSlug))
	if !ok || h.site == nil {
		return h.composer.ComposeTeam(pages.TeamView{Slug: slug}, pages.Query{})
	}
	return h.composer.ComposeTeam(h.site.TeamView(r.Context(), slug), requestutil.PageQuery(r.URL.Query()))
}

func (h *Handler) logPage(r *http.Request, page pages.Page) {
	if page.Status != pages.StatusError {
		return
	}
	logging.Warn(loggerFromContext(r, h.logger), "page served without data",
		slog.String(logging.FieldView, string(page.Kind)),
		slog.String(logging.FieldSlug, page.Slug),
	)
}

// pageStatus maps a page state to its response code. A loading page is a success that refreshes
// itself; a page whose data could not be fetched is temporarily unavailable.
func pageStatus(page pages.Page) int {
	switch page.Status {
	case pages.StatusNotFound:
		return http.StatusNotFound
	case pages.StatusError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}
