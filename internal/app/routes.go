package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Auth
	r.HandleFunc("/auth", deps.AuthHandler.Authenticate).Methods("POST")
	r.HandleFunc("/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Expenses
	r.HandleFunc("/expenses", deps.ExpenseHandler.List).Methods("GET")
	r.HandleFunc("/expenses", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/expenses/{id:[0-9]+}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/expenses/{id:[0-9]+}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/expenses/{id:[0-9]+}", deps.ExpenseHandler.Delete).Methods("DELETE")
	r.HandleFunc("/expenses/{year:[0-9]+}/{month:[0-9]+}", deps.ExpenseHandler.ListByMonth).Methods("GET")

	// Incomes
	r.HandleFunc("/incomes", deps.IncomeHandler.List).Methods("GET")
	r.HandleFunc("/incomes", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/incomes/{id:[0-9]+}", deps.IncomeHandler.Get).Methods("GET")
	r.HandleFunc("/incomes/{id:[0-9]+}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/incomes/{id:[0-9]+}", deps.IncomeHandler.Delete).Methods("DELETE")
	r.HandleFunc("/incomes/{year:[0-9]+}/{month:[0-9]+}", deps.IncomeHandler.ListByMonth).Methods("GET")

	// Summary
	r.HandleFunc("/summary/{year:[0-9]+}/{month:[0-9]+}", deps.SummaryHandler.GetMonthlySummary).Methods("GET")
}
