package app

import (
	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/internal/utils"
	"github.com/fintrack/fintrack/pkg/auth"
	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/fintrack/fintrack/pkg/summary"
	"github.com/fintrack/fintrack/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories are the storage implementations the services run on.
type Repositories struct {
	Expenses expense.Repository
	Incomes  income.Repository
	Users    user.Repo
	Tokens   auth.TokenRepo
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Expenses: expense.NewRepository(db),
		Incomes:  income.NewRepository(db),
		Users:    user.NewUserRepo(db),
		Tokens:   auth.NewTokenRepo(db),
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	AuthService auth.Service
	AuthHandler *auth.Handler

	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	IncomeService income.Service
	IncomeHandler *income.Handler

	SummaryService summary.Service
	SummaryHandler *summary.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()
	subscribeAuditLog(deps.EventBus)

	deps.UserService = user.NewUserService(repos.Users)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AuthService = auth.NewService(repos.Tokens, deps.UserService, deps.Clock, cfg.Auth.TokenTTL)
	deps.AuthHandler = auth.NewHandler(deps.AuthService)

	rule := record.DuplicateRule{IncludeYear: cfg.Validation.DuplicateCheckIncludesYear}

	deps.ExpenseService = expense.NewService(repos.Expenses, rule, deps.EventBus)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.IncomeService = income.NewService(repos.Incomes, rule, deps.EventBus)
	deps.IncomeHandler = income.NewHandler(deps.IncomeService)

	deps.SummaryService = summary.NewService(deps.ExpenseService, deps.IncomeService)
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService, summary.NewCsvRenderer())

	return deps
}
