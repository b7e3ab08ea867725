package summary

import (
	"time"

	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/shopspring/decimal"
)

type MonthlySummary struct {
	Year               int
	Month              time.Month
	TotalIncomes       decimal.Decimal
	TotalExpenses      decimal.Decimal
	Balance            decimal.Decimal
	ExpensesByCategory map[expense.Category]decimal.Decimal
}

// Summarize totals the given records. Balance is incomes minus expenses. A category appears in
// ExpensesByCategory only when its sum is strictly positive. Values are not validated here.
func Summarize(expenses []expense.Expense, incomes []income.Income) MonthlySummary {
	totalIncomes := decimal.Zero
	for _, i := range incomes {
		totalIncomes = totalIncomes.Add(i.Value)
	}

	totalExpenses := decimal.Zero
	sums := make(map[expense.Category]decimal.Decimal, len(expense.Categories))
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Value)
		sums[e.Category] = sums[e.Category].Add(e.Value)
	}

	byCategory := make(map[expense.Category]decimal.Decimal)
	for _, category := range expense.Categories {
		if sum, ok := sums[category]; ok && sum.IsPositive() {
			byCategory[category] = sum
		}
	}

	return MonthlySummary{
		TotalIncomes:       totalIncomes,
		TotalExpenses:      totalExpenses,
		Balance:            totalIncomes.Sub(totalExpenses),
		ExpensesByCategory: byCategory,
	}
}
