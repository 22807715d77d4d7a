// Package router wires the HTTP routes: auth flows, the metered
// summarize endpoint guarded by the two gates, and guest status.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidbrief/vidbrief-server/internal/api/http/cookie"
	"github.com/vidbrief/vidbrief-server/internal/api/http/handler"
	"github.com/vidbrief/vidbrief-server/internal/api/http/middleware"
	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/service"
)

// Router assembles handlers and middleware into the HTTP surface.
type Router struct {
	sessions  *service.Session
	tokens    *service.TokenService
	quota     *service.Quota
	summaries *service.Summary
	google    handler.GoogleVerifier
	cookies   *cookie.Writer
	logger    *logger.Logger
}

// New creates a new Router instance.
func New(
	sessions *service.Session,
	tokens *service.TokenService,
	quota *service.Quota,
	summaries *service.Summary,
	google handler.GoogleVerifier,
	cookies *cookie.Writer,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessions:  sessions,
		tokens:    tokens,
		quota:     quota,
		summaries: summaries,
		google:    google,
		cookies:   cookies,
		logger:    logger,
	}
}

// Register builds the route tree. The summarize endpoint runs optional
// authentication first, then the guest gate; authenticated requests
// bypass metering inside the gate.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.sessions, r.logger)
	guestLimit := middleware.NewGuestLimit(r.quota, r.logger)

	authHandler := handler.NewAuth(r.sessions, r.google, r.cookies, r.logger)
	summaryHandler := handler.NewSummary(r.summaries, r.quota, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
			auth.Post("/google", authHandler.Google)
			auth.Post("/refresh", authHandler.Refresh)
			auth.Post("/logout", authHandler.Logout)

			auth.Group(func(protected chi.Router) {
				protected.Use(authenticate.Require)
				protected.Post("/logout-all", authHandler.LogoutAll)
				protected.Get("/me", authHandler.Me)
			})
		})

		api.Group(func(metered chi.Router) {
			metered.Use(authenticate.Optional)
			metered.Use(guestLimit.Handle)
			metered.Post("/summaries", summaryHandler.Summarize)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Require)
			protected.Get("/summaries", summaryHandler.History)
		})

		api.Get("/guest/status", summaryHandler.GuestStatus)
	})

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
