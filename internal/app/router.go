package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tillbook/tillbook/internal/cart"
	"github.com/tillbook/tillbook/internal/catalog"
	"github.com/tillbook/tillbook/internal/checkout"
	"github.com/tillbook/tillbook/internal/reports"
	"github.com/tillbook/tillbook/internal/settings"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	CatalogHandler  *catalog.Handler
	CartHandler     *cart.Handler
	CheckoutHandler *checkout.Handler
	ReportsHandler  *reports.Handler
	SettingsHandler *settings.Handler
}

// NewRouter constructs the chi.Router with tillbook defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(api chi.Router) {
		params.CatalogHandler.MountRoutes(api)
		params.CartHandler.MountRoutes(api)
		params.CheckoutHandler.MountRoutes(api)
		params.ReportsHandler.MountRoutes(api)
		params.SettingsHandler.MountRoutes(api)
	})

	return r
}
