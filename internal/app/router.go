package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/profitpulse/profitpulse/internal/auth"
	"github.com/profitpulse/profitpulse/internal/dashboard"
	"github.com/profitpulse/profitpulse/internal/insights"
	"github.com/profitpulse/profitpulse/internal/menu"
	"github.com/profitpulse/profitpulse/internal/observability"
	"github.com/profitpulse/profitpulse/internal/staff"
	"github.com/profitpulse/profitpulse/internal/summaries"
	"github.com/profitpulse/profitpulse/internal/trends"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Metrics          *observability.Metrics
	Tokens           *auth.TokenManager
	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	MenuHandler      *menu.Handler
	StaffHandler     *staff.Handler
	TrendsHandler    *trends.Handler
	SummariesHandler *summaries.Handler
	InsightsHandler  *insights.Handler
}

// NewRouter constructs the chi.Router with ProfitPulse defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Handle("/metrics", params.Metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.Tokens.Middleware(params.Logger))

			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
			r.Route("/menu", params.MenuHandler.MountRoutes)
			r.Route("/staff", params.StaffHandler.MountRoutes)
			r.Route("/trends", params.TrendsHandler.MountRoutes)
			r.Route("/summaries", params.SummariesHandler.MountRoutes)
			r.Route("/insights", params.InsightsHandler.MountRoutes)
		})
	})

	return r
}
