package income

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type IncomeDTO struct {
	Id          int             `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        string          `json:"date"`
}

type IncomeRequestDTO struct {
	Description *string          `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List incomes
// @Description List all incomes, or those whose description contains the given text
// @Tags Income
// @Produce json
// @Param description query string false "Description substring"
// @Success 200 {array} IncomeDTO
// @Failure 404 {object} rest.ErrorResponse "No income matches the filter"
// @Router /incomes [get]
// @Security Bearer
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing incomes")
	incomes, err := h.service.List(r.Context(), r.URL.Query().Get("description"))
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTOs(incomes))
}

// Get godoc
// @Summary Get an income
// @Tags Income
// @Produce json
// @Param id path int true "Income ID"
// @Success 200 {object} IncomeDTO
// @Failure 404 {object} rest.ErrorResponse "Income not found"
// @Router /incomes/{id} [get]
// @Security Bearer
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	income, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(income))
}

// ListByMonth godoc
// @Summary List incomes of a month
// @Tags Income
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} IncomeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year or month"
// @Router /incomes/{year}/{month} [get]
// @Security Bearer
func (h *Handler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scope, err := record.ParseMonthScope(vars["year"], vars["month"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year or month", err.Error())
		return
	}
	incomes, err := h.service.ListByMonth(r.Context(), scope)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTOs(incomes))
}

// Create godoc
// @Summary Register an income
// @Tags Income
// @Accept json
// @Produce json
// @Param income body IncomeRequestDTO true "Income"
// @Success 201 {object} IncomeDTO
// @Header 201 {string} Location "/incomes/{id}"
// @Failure 400 {object} rest.ErrorResponse "Invalid income or description already used in the month"
// @Router /incomes [post]
// @Security Bearer
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var request IncomeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	income, err := request.toIncome()
	if err != nil {
		handleError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), income)
	if err != nil {
		handleError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/incomes/%d", created.Id))
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// Update godoc
// @Summary Update an income
// @Description Partial update, omitted fields keep their current value
// @Tags Income
// @Accept json
// @Produce json
// @Param id path int true "Income ID"
// @Param income body IncomeRequestDTO true "Fields to change"
// @Success 200 {object} IncomeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid income or description already used in the month"
// @Failure 404 {object} rest.ErrorResponse "Income not found"
// @Router /incomes/{id} [put]
// @Security Bearer
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var request IncomeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	patch := Patch{Description: request.Description, Value: request.Value}
	if request.Date != nil {
		date, err := record.ParseDate(*request.Date)
		if err != nil {
			handleError(w, err)
			return
		}
		patch.Date = &date
	}
	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		handleError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// Delete godoc
// @Summary Delete an income
// @Tags Income
// @Param id path int true "Income ID"
// @Success 200 "OK"
// @Failure 404 {object} rest.ErrorResponse "Income not found"
// @Router /incomes/{id} [delete]
// @Security Bearer
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrIncomeNotFound):
		rest.WriteError(w, http.StatusNotFound, "Income not found", err.Error())
	case errors.Is(err, record.ErrDuplicateInMonth):
		rest.WriteError(w, http.StatusBadRequest, "Description already registered in this month", err.Error())
	case errors.Is(err, record.ErrInvalidRecord):
		rest.WriteError(w, http.StatusBadRequest, "Invalid income", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (dto IncomeRequestDTO) toIncome() (Income, error) {
	if dto.Description == nil || dto.Value == nil || dto.Date == nil {
		return Income{}, fmt.Errorf("%w: description, value and date are required", record.ErrInvalidRecord)
	}
	date, err := record.ParseDate(*dto.Date)
	if err != nil {
		return Income{}, err
	}
	return Income{Description: *dto.Description, Value: *dto.Value, Date: date}, nil
}

func ToDTO(income Income) IncomeDTO {
	return IncomeDTO{
		Id:          income.Id,
		Description: income.Description,
		Value:       income.Value,
		Date:        record.FormatDate(income.Date),
	}
}

func ToDTOs(incomes []Income) []IncomeDTO {
	dtos := make([]IncomeDTO, 0, len(incomes))
	for _, income := range incomes {
		dtos = append(dtos, ToDTO(income))
	}
	return dtos
}

func pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := rest.ParseId(mux.Vars(r)["id"])
	if errors.Is(err, rest.ErrIdOutOfRange) {
		handleError(w, fmt.Errorf("%w: %v", ErrIncomeNotFound, err))
		return 0, false
	}
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid id", err.Error())
		return 0, false
	}
	return id, true
}
