package routes

import (
	"log/slog"
	"net/http"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/auth"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/config"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/handlers"
	appmiddleware "github.com/bugrabasbostanci/funny-yellow-sub001/internal/middleware"
	pkghttp "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/http"
	"github.com/go-chi/chi/v5"
)

// Dependencies holds everything route registration needs.
type Dependencies struct {
	AuthHandler  *handlers.AuthHandler
	AdminHandler *handlers.AdminHandler
	TokenService *auth.TokenService
	Logger       *slog.Logger
	Config       *config.Config
}

// Register mounts the public and gated admin routes on the router.
func Register(r chi.Router, deps Dependencies) {
	gate := auth.AuthGate(deps.TokenService, deps.Logger, auth.GateConfig{
		DebugLogging: deps.Config.Auth.DebugLogging,
	})

	r.Route("/api", func(r chi.Router) {
		// Public: download counting for the catalog site.
		r.Post("/stickers/{id}/download", deps.AdminHandler.RecordDownload)

		r.Route("/admin", func(r chi.Router) {
			// Login stays outside the gate but behind an edge throttle.
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RateLimitByIP(appmiddleware.DefaultLoginRateLimit()))
				r.Post("/login", deps.AuthHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(gate)

				r.Post("/logout", deps.AuthHandler.Logout)
				r.Get("/session", deps.AuthHandler.Session)
				r.Get("/stats", deps.AdminHandler.GetStats)
				r.Get("/stickers", deps.AdminHandler.ListStickers)
				r.Get("/packs", deps.AdminHandler.ListPacks)
				r.Patch("/stickers/{id}/tags", deps.AdminHandler.UpdateStickerTags)
				r.Delete("/stickers/{id}", deps.AdminHandler.DeleteSticker)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		pkghttp.WriteNotFound(w, "Route not found")
	})
}
