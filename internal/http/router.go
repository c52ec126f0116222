package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/blaseball-reference/internal/http/handlers"
	"github.com/preston-bernstein/blaseball-reference/internal/http/middleware"
	"github.com/preston-bernstein/blaseball-reference/internal/metrics"
	"github.com/preston-bernstein/blaseball-reference/internal/views"
)

// requestTimeout bounds a single request, first-render waits included.
const requestTimeout = 30 * time.Second

// RouterConfig carries the cross-cutting dependencies of the router.
type RouterConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers the site's routes. admin may be nil, in which case admin routes are not mounted.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.NotFound(h.NotFound)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/static/*", nethttp.StripPrefix("/static/", nethttp.FileServer(nethttp.FS(views.Static()))))

	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/players", h.Players)
	r.Get("/players/{"+handlers.ParamPlayerSlug+"}", h.Player)
	r.Get("/teams", h.Teams)
	r.Get("/teams/{"+handlers.ParamTeamSlug+"}", h.Team)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		r.Get("/players/{"+handlers.ParamPlayerSlug+"}", h.PlayerJSON)
		r.Get("/teams/{"+handlers.ParamTeamSlug+"}", h.TeamJSON)
	})

	if admin != nil {
		r.Post("/admin/index/refresh", admin.RefreshIndex)
	}
	return r
}
