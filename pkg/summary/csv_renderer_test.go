package summary

import (
	"testing"
	"time"

	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvRendererImpl_Render(t *testing.T) {
	// given
	summary := MonthlySummary{
		Year:          2022,
		Month:         time.August,
		TotalIncomes:  dec("960"),
		TotalExpenses: dec("1820.5"),
		Balance:       dec("-860.5"),
		ExpensesByCategory: map[expense.Category]decimal.Decimal{
			expense.Other:   dec("20.5"),
			expense.Housing: dec("1800"),
		},
	}

	// when
	csv, err := NewCsvRenderer().Render(summary)

	// then
	require.NoError(t, err)
	expected := "Category,Value\n" +
		"HOUSING,1800.00\n" +
		"OTHER,20.50\n" +
		"Total incomes,960.00\n" +
		"Total expenses,1820.50\n" +
		"Balance,-860.50\n"
	assert.Equal(t, expected, csv)
}

func TestCsvRendererImpl_Render_Empty(t *testing.T) {
	csv, err := NewCsvRenderer().Render(Summarize(nil, nil))

	require.NoError(t, err)
	assert.Equal(t, "Category,Value\nTotal incomes,0.00\nTotal expenses,0.00\nBalance,0.00\n", csv)
}

func TestCsvRendererImpl_Render_KeepsSubCentValues(t *testing.T) {
	// given
	summary := Summarize(
		[]expense.Expense{{Description: "Rent", Value: dec("1800.125"), Date: day(2022, time.August, 5), Category: expense.Housing}},
		nil,
	)

	// when
	csv, err := NewCsvRenderer().Render(summary)

	// then
	require.NoError(t, err)
	expected := "Category,Value\n" +
		"HOUSING,1800.125\n" +
		"Total incomes,0.00\n" +
		"Total expenses,1800.125\n" +
		"Balance,-1800.125\n"
	assert.Equal(t, expected, csv)
}
