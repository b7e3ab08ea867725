package summary

import (
	"bytes"
	"encoding/csv"

	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	Render(summary MonthlySummary) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

// Render writes one row per category with expenses, in Categories order, followed by the totals.
func (r *CsvRendererImpl) Render(summary MonthlySummary) (string, error) {
	data := make([][]string, 0, len(expense.Categories)+4)
	data = append(data, []string{"Category", "Value"})
	for _, category := range expense.Categories {
		sum, ok := summary.ExpensesByCategory[category]
		if !ok {
			continue
		}
		data = append(data, []string{string(category), formatMoney(sum)})
	}
	data = append(data,
		[]string{"Total incomes", formatMoney(summary.TotalIncomes)},
		[]string{"Total expenses", formatMoney(summary.TotalExpenses)},
		[]string{"Balance", formatMoney(summary.Balance)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

// formatMoney pads to two decimals but never rounds, so the export agrees with the JSON summary.
func formatMoney(value decimal.Decimal) string {
	if value.Equal(value.Round(2)) {
		return value.StringFixed(2)
	}
	return value.String()
}
