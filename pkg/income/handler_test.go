package income

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrack/fintrack/internal/rest"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() *mux.Router {
	handler := NewHandler(NewService(NewRepositoryStub(), record.DuplicateRule{}, nil))
	router := mux.NewRouter()
	router.HandleFunc("/incomes", handler.List).Methods("GET")
	router.HandleFunc("/incomes", handler.Create).Methods("POST")
	router.HandleFunc("/incomes/{id:[0-9]+}", handler.Get).Methods("GET")
	router.HandleFunc("/incomes/{id:[0-9]+}", handler.Update).Methods("PUT")
	router.HandleFunc("/incomes/{id:[0-9]+}", handler.Delete).Methods("DELETE")
	router.HandleFunc("/incomes/{year:[0-9]+}/{month:[0-9]+}", handler.ListByMonth).Methods("GET")
	return router
}

func doRequest(router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, target, &payload)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func decimalPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestHandler_CreateAndGet(t *testing.T) {
	router := setupHandlerTest()

	// given
	body := IncomeRequestDTO{Description: strPtr("Salary"), Value: decimalPtr("960.00"), Date: strPtr("2022-08-01")}

	// when
	w := doRequest(router, http.MethodPost, "/incomes", body)

	// then
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/incomes/1", w.Header().Get("Location"))

	w = doRequest(router, http.MethodGet, "/incomes/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dto IncomeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "Salary", dto.Description)
	assert.True(t, decimal.NewFromInt(960).Equal(dto.Value))
	assert.Equal(t, "2022-08-01", dto.Date)
}

func TestHandler_Create_Invalid(t *testing.T) {
	router := setupHandlerTest()

	w := doRequest(router, http.MethodPost, "/incomes", IncomeRequestDTO{Description: strPtr("Salary")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/incomes", IncomeRequestDTO{
		Description: strPtr("Salary"), Value: decimalPtr("1"), Date: strPtr("2022-13-01"),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Create_Duplicate(t *testing.T) {
	router := setupHandlerTest()
	body := IncomeRequestDTO{Description: strPtr("Salary"), Value: decimalPtr("960"), Date: strPtr("2022-08-01")}
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/incomes", body).Code)

	w := doRequest(router, http.MethodPost, "/incomes", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListUpdateDelete(t *testing.T) {
	router := setupHandlerTest()
	doRequest(router, http.MethodPost, "/incomes", IncomeRequestDTO{Description: strPtr("Salary"), Value: decimalPtr("960"), Date: strPtr("2022-08-01")})

	w := doRequest(router, http.MethodGet, "/incomes?description=Lottery", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/incomes/2022/8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dtos []IncomeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 1)

	w = doRequest(router, http.MethodGet, "/incomes/2022/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/incomes/1", IncomeRequestDTO{Value: decimalPtr("-10")})
	require.Equal(t, http.StatusOK, w.Code)
	var dto IncomeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "Salary", dto.Description)
	assert.True(t, decimal.NewFromInt(-10).Equal(dto.Value))

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodDelete, "/incomes/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodDelete, "/incomes/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/incomes/1", nil).Code)
}

func TestHandler_IdAboveInt32IsNotFound(t *testing.T) {
	// given
	repo := NewRepositoryStub()
	repo.Err = errors.New("3000000000 is greater than maximum value for int4")
	handler := NewHandler(NewService(repo, record.DuplicateRule{}, nil))
	router := mux.NewRouter()
	router.HandleFunc("/incomes/{id:[0-9]+}", handler.Get).Methods("GET")
	router.HandleFunc("/incomes/{id:[0-9]+}", handler.Update).Methods("PUT")
	router.HandleFunc("/incomes/{id:[0-9]+}", handler.Delete).Methods("DELETE")

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			// when
			w := doRequest(router, method, "/incomes/3000000000", IncomeRequestDTO{Description: strPtr("Salary")})

			// then
			assert.Equal(t, http.StatusNotFound, w.Code)
			var response rest.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "Income not found", response.Error)
		})
	}
}
