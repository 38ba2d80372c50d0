package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitledger/internal/auth"
	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

// NewRouter wires the REST surface: public auth routes, authenticated
// ledger routes, health and metrics.
func NewRouter(
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
	users *service.UserService,
	events *service.EventService,
) http.Handler {
	authHandler := NewAuthHandler(authenticator, jwtManager)
	userHandler := NewUserHandler(users)
	eventHandler := NewEventHandler(events)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/verify", authHandler.Verify)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.Me)
				r.Put("/username", userHandler.SetUsername)
				r.Get("/balances", userHandler.Balances)
				r.Get("/transactions", userHandler.Transactions)
			})

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.Create)
				r.Get("/", eventHandler.List)
				r.Get("/{id}", eventHandler.Get)
				r.Put("/{id}", eventHandler.Update)
				r.Delete("/{id}", eventHandler.Delete)
				r.Post("/{id}/cancel", eventHandler.Cancel)
				r.Post("/{id}/debitors", eventHandler.AddDebitor)
			})

			r.Route("/debitors/{id}", func(r chi.Router) {
				r.Delete("/", eventHandler.DeleteDebitor)
				r.Post("/payments", eventHandler.RecordPayment)
			})
		})
	})

	return r
}
