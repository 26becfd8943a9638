package rest

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	authPostgres "github.com/frahmantamala/finance-tracker/internal/auth/postgres"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/goal"
	goalPostgres "github.com/frahmantamala/finance-tracker/internal/goal/postgres"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/user"
	userPostgres "github.com/frahmantamala/finance-tracker/internal/user/postgres"
)

// Dependencies are the process wide resources the HTTP surface is built on.
type Dependencies struct {
	DB             *gorm.DB
	SQLX           *sqlx.DB
	Security       internal.SecurityConfig
	AllowedOrigins []string
	Events         events.Publisher
	Logger         *slog.Logger
}

// NewAccountService builds the account service on its own so the CLI can
// register users without an HTTP server.
func NewAccountService(deps Dependencies) *auth.Service {
	return auth.NewService(
		authPostgres.NewRepository(deps.DB),
		auth.NewBcryptHasher(deps.Security.BCryptCost),
		auth.NewJWTTokenCodec(deps.Security.JWTSecret, deps.Security.TokenTTL),
		deps.Events,
		deps.Logger,
	)
}

// NewRouter wires repositories, services and handlers into a chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	if deps.Events == nil {
		deps.Events = events.Discard
	}
	base := transport.NewBaseHandler(deps.Logger)

	tokens := auth.NewJWTTokenCodec(deps.Security.JWTSecret, deps.Security.TokenTTL)
	accounts := NewAccountService(deps)

	categoryRepo := categoryPostgres.NewCategoryRepository(deps.DB)
	categories := category.NewService(categoryRepo, deps.Logger)
	expenses := expense.NewService(expensePostgres.NewExpenseRepository(deps.DB), categoryRepo, deps.Events, deps.Logger)
	goals := goal.NewService(goalPostgres.NewGoalRepository(deps.DB), deps.Events, deps.Logger)
	profiles := user.NewService(userPostgres.NewRepository(deps.SQLX), deps.Logger)

	router := chi.NewRouter()
	RegisterAllRoutes(router, Handlers{
		Auth:       auth.NewHandler(base, accounts),
		Identity:   auth.NewIdentityMiddleware(tokens),
		Users:      user.NewHandler(base, profiles),
		Categories: category.NewHandler(base, categories),
		Expenses:   expense.NewHandler(base, expenses),
		Goals:      goal.NewHandler(base, goals),
		Health:     NewHealthHandler(base, deps.SQLX),
	}, deps.AllowedOrigins, deps.Logger)

	return router
}
