package summary

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/pkg/expense"
	"github.com/fintrack/fintrack/pkg/income"
	"github.com/fintrack/fintrack/pkg/record"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetMonthlySummary(ctx context.Context, scope record.MonthScope) (MonthlySummary, error)
}

type ServiceImpl struct {
	expenses expense.Service
	incomes  income.Service
}

func NewService(expenses expense.Service, incomes income.Service) *ServiceImpl {
	return &ServiceImpl{expenses: expenses, incomes: incomes}
}

func (s *ServiceImpl) GetMonthlySummary(ctx context.Context, scope record.MonthScope) (MonthlySummary, error) {
	log.Debugf("Calculating summary for %s", scope)
	expenses, err := s.expenses.ListByMonth(ctx, scope)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("could not read expenses of %s: %w", scope, err)
	}
	incomes, err := s.incomes.ListByMonth(ctx, scope)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("could not read incomes of %s: %w", scope, err)
	}

	summary := Summarize(expenses, incomes)
	summary.Year = scope.Year
	summary.Month = scope.Month
	return summary, nil
}
