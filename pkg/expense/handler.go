package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id          int             `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
	Category    Category        `json:"category"`
}

// ExpenseRequestDTO is the body of create and update requests. Create requires description, value and date;
// update changes only the fields present.
type ExpenseRequestDTO struct {
	Description *string          `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List expenses
// @Description List all expenses, or those whose description contains the given text
// @Tags Expense
// @Produce json
// @Param description query string false "Description substring"
// @Success 200 {array} ExpenseDTO
// @Failure 404 {object} rest.ErrorResponse "No expense matches the filter"
// @Router /expenses [get]
// @Security Bearer
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	expenses, err := h.service.List(r.Context(), r.URL.Query().Get("description"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTOs(expenses))
}

// Get godoc
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /expenses/{id} [get]
// @Security Bearer
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(expense))
}

// ListByMonth godoc
// @Summary List expenses of a month
// @Tags Expense
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year or month"
// @Router /expenses/{year}/{month} [get]
// @Security Bearer
func (h *Handler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scope, err := record.ParseMonthScope(vars["year"], vars["month"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year or month", err.Error())
		return
	}
	expenses, err := h.service.ListByMonth(r.Context(), scope)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTOs(expenses))
}

// Create godoc
// @Summary Register an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseRequestDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Header 201 {string} Location "/expenses/{id}"
// @Failure 400 {object} rest.ErrorResponse "Invalid expense or description already used in the month"
// @Router /expenses [post]
// @Security Bearer
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating expense")
	var request ExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	expense, err := request.toExpense()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/expenses/%d", created.Id))
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// Update godoc
// @Summary Update an expense
// @Description Partial update, omitted fields keep their current value
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseRequestDTO true "Fields to change"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid expense or description already used in the month"
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /expenses/{id} [put]
// @Security Bearer
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var request ExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	patch, err := request.toPatch()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// Delete godoc
// @Summary Delete an expense
// @Tags Expense
// @Param id path int true "Expense ID"
// @Success 200 "OK"
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /expenses/{id} [delete]
// @Security Bearer
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		rest.WriteError(w, http.StatusNotFound, "Expense not found", err.Error())
	case errors.Is(err, record.ErrDuplicateInMonth):
		rest.WriteError(w, http.StatusBadRequest, "Description already registered in this month", err.Error())
	case errors.Is(err, record.ErrInvalidRecord):
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := rest.ParseId(mux.Vars(r)["id"])
	if errors.Is(err, rest.ErrIdOutOfRange) {
		writeServiceError(w, fmt.Errorf("%w: %v", ErrExpenseNotFound, err))
		return 0, false
	}
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid id", err.Error())
		return 0, false
	}
	return id, true
}

func (dto ExpenseRequestDTO) toExpense() (Expense, error) {
	if dto.Description == nil {
		return Expense{}, fmt.Errorf("%w: description is required", record.ErrInvalidRecord)
	}
	if dto.Value == nil {
		return Expense{}, fmt.Errorf("%w: value is required", record.ErrInvalidRecord)
	}
	if dto.Date == nil {
		return Expense{}, fmt.Errorf("%w: date is required", record.ErrInvalidRecord)
	}
	date, err := record.ParseDate(*dto.Date)
	if err != nil {
		return Expense{}, err
	}
	category := DefaultCategory
	if dto.Category != nil {
		category, err = ParseCategory(*dto.Category)
		if err != nil {
			return Expense{}, err
		}
	}
	return Expense{
		Description: *dto.Description,
		Value:       *dto.Value,
		Date:        date,
		Category:    category,
	}, nil
}

func (dto ExpenseRequestDTO) toPatch() (Patch, error) {
	patch := Patch{Description: dto.Description, Value: dto.Value}
	if dto.Date != nil {
		date, err := record.ParseDate(*dto.Date)
		if err != nil {
			return Patch{}, err
		}
		patch.Date = &date
	}
	if dto.Category != nil && strings.TrimSpace(*dto.Category) != "" {
		category, err := ParseCategory(*dto.Category)
		if err != nil {
			return Patch{}, err
		}
		patch.Category = &category
	}
	return patch, nil
}

func ToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:          expense.Id,
		Description: expense.Description,
		Value:       expense.Value,
		Date:        record.FormatDate(expense.Date),
		Category:    expense.Category,
	}
}

func ToDTOs(expenses []Expense) []ExpenseDTO {
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, ToDTO(expense))
	}
	return dtos
}
