package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/finance-tracker/api"
	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/category"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/frahmantamala/finance-tracker/internal/goal"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/finance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/finance-tracker/internal/user"
)

type Handlers struct {
	Auth       *auth.Handler
	Identity   *auth.IdentityMiddleware
	Users      *user.Handler
	Categories *category.Handler
	Expenses   *expense.Handler
	Goals      *goal.Handler
	Health     *HealthHandler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, origins []string, logger *slog.Logger) {
	router.Use(middleware.CORS(origins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(h.Identity.Identify)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteErrorEnvelope(w, errors.NewNotFoundError("route not found: "+r.Method+" "+r.URL.Path, errors.ErrCodeRouteNotFound))
	})

	router.Get(swagger.SpecURL, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", h.Health.Liveness)
	router.Get("/health/ready", h.Health.Readiness)

	router.Post("/signup", h.Auth.Signup)
	router.Post("/login", h.Auth.Login)

	router.Route("/api", func(r chi.Router) {
		r.Use(h.Identity.RequireUser)

		r.Get("/profiles/{id}", h.Users.GetProfile)
		r.Put("/profiles/{id}", h.Users.UpdateProfile)

		r.Route("/categories", func(cr chi.Router) {
			cr.Get("/", h.Categories.GetCategories)
			cr.Post("/", h.Categories.CreateCategory)
			cr.Delete("/{id}", h.Categories.DeleteCategory)
		})

		r.Route("/expenses", func(er chi.Router) {
			er.Get("/", h.Expenses.GetExpenses)
			er.Post("/", h.Expenses.CreateExpense)
			er.Get("/summary", h.Expenses.GetSummary)
			er.Put("/{id}", h.Expenses.UpdateExpense)
			er.Delete("/{id}", h.Expenses.DeleteExpense)
		})

		r.Route("/goals", func(gr chi.Router) {
			gr.Get("/", h.Goals.GetGoals)
			gr.Post("/", h.Goals.CreateGoal)
			gr.Put("/{id}", h.Goals.UpdateGoal)
			gr.Delete("/{id}", h.Goals.DeleteGoal)
			gr.Post("/{id}/progress", h.Goals.AddProgress)
			gr.Post("/{id}/pin", h.Goals.TogglePin)
		})
	})
}
