package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func setupService(t *testing.T) (*ServiceImpl, *expense.RepositoryStub, *income.RepositoryStub) {
	expenseRepo := expense.NewRepositoryStub()
	incomeRepo := income.NewRepositoryStub()
	expenses := expense.NewService(expenseRepo, record.DuplicateRule{}, nil)
	incomes := income.NewService(incomeRepo, record.DuplicateRule{}, nil)

	for _, e := range augustExpenses {
		_, err := expenses.Create(ctx, e)
		require.NoError(t, err)
	}
	for _, i := range augustIncomes {
		_, err := incomes.Create(ctx, i)
		require.NoError(t, err)
	}
	_, err := expenses.Create(ctx, expense.Expense{Description: "Gym", Value: dec("45"), Date: day(2022, time.September, 1), Category: expense.Health})
	require.NoError(t, err)

	return NewService(expenses, incomes), expenseRepo, incomeRepo
}

func TestServiceImpl_GetMonthlySummary(t *testing.T) {
	service, _, _ := setupService(t)

	// when
	summary, err := service.GetMonthlySummary(ctx, record.MonthScope{Year: 2022, Month: time.August})

	// then
	require.NoError(t, err)
	assert.Equal(t, 2022, summary.Year)
	assert.Equal(t, time.August, summary.Month)
	assertDecimal(t, "960", summary.TotalIncomes)
	assertDecimal(t, "1820", summary.TotalExpenses)
	assertDecimal(t, "-860", summary.Balance)
	assert.NotContains(t, summary.ExpensesByCategory, expense.Health)
}

func TestServiceImpl_GetMonthlySummary_EmptyMonth(t *testing.T) {
	service, _, _ := setupService(t)

	summary, err := service.GetMonthlySummary(ctx, record.MonthScope{Year: 2021, Month: time.August})

	require.NoError(t, err)
	assert.True(t, summary.Balance.IsZero())
	assert.Empty(t, summary.ExpensesByCategory)
}

func TestServiceImpl_GetMonthlySummary_RepositoryError(t *testing.T) {
	service, _, incomeRepo := setupService(t)
	failure := errors.New("db down")
	incomeRepo.Err = failure

	_, err := service.GetMonthlySummary(ctx, record.MonthScope{Year: 2022, Month: time.August})

	assert.ErrorIs(t, err, failure)
}
