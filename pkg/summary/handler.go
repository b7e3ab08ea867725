package summary

import (
	"net/http"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type MonthlySummaryDTO struct {
	Year               int                        `json:"year"`
	Month              int                        `json:"month"`
	TotalIncomes       decimal.Decimal            `json:"totalIncomes"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	Balance            decimal.Decimal            `json:"balance"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
}

type Handler struct {
	service     Service
	csvRenderer Renderer
}

func NewHandler(service Service, csvRenderer Renderer) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer}
}

// GetMonthlySummary godoc
// @Summary Monthly summary
// @Description Totals of incomes and expenses of a month, the balance and expenses per category.
// @Description Send "Accept: text/csv" to get a CSV export.
// @Tags Summary
// @Produce json
// @Produce text/csv
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} MonthlySummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year or month"
// @Router /summary/{year}/{month} [get]
// @Security Bearer
func (h *Handler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scope, err := record.ParseMonthScope(vars["year"], vars["month"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year or month", err.Error())
		return
	}

	summary, err := h.service.GetMonthlySummary(r.Context(), scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.Render(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv summary: %v", err)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, ToDTO(summary))
}

func ToDTO(summary MonthlySummary) MonthlySummaryDTO {
	byCategory := make(map[string]decimal.Decimal, len(summary.ExpensesByCategory))
	for category, sum := range summary.ExpensesByCategory {
		byCategory[string(category)] = sum
	}
	return MonthlySummaryDTO{
		Year:               summary.Year,
		Month:              int(summary.Month),
		TotalIncomes:       summary.TotalIncomes,
		TotalExpenses:      summary.TotalExpenses,
		Balance:            summary.Balance,
		ExpensesByCategory: byCategory,
	}
}

