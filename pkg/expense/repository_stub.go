package expense

import (
	"context"
	"sort"

	"github.com/fintrack/fintrack/pkg/record"
)

type RepositoryStub struct {
	nextId   int
	expenses map[int]Expense
	Err      error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 0, expenses: map[int]Expense{}}
}

func (s *RepositoryStub) FindAll(ctx context.Context) ([]Expense, error) {
	return s.filter(func(Expense) bool { return true })
}

func (s *RepositoryStub) FindById(ctx context.Context, id int) (Expense, error) {
	if s.Err != nil {
		return Expense{}, s.Err
	}
	if expense, exists := s.expenses[id]; exists {
		return expense, nil
	}
	return Expense{}, ErrExpenseNotFound
}

func (s *RepositoryStub) FindByDescriptionContaining(ctx context.Context, substring string) ([]Expense, error) {
	return s.filter(func(e Expense) bool { return record.ContainsLike(e.Description, substring) })
}

func (s *RepositoryStub) FindByYearAndMonth(ctx context.Context, scope record.MonthScope) ([]Expense, error) {
	return s.filter(func(e Expense) bool { return scope.Contains(e.Date) })
}

func (s *RepositoryStub) CountByDescriptionInMonth(ctx context.Context, description string, query record.MonthQuery, excludeId int) (int, error) {
	matching, err := s.filter(func(e Expense) bool {
		return e.Id != excludeId && e.Description == description && query.Matches(e.Date)
	})
	return len(matching), err
}

func (s *RepositoryStub) Store(ctx context.Context, expense Expense) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextId++
	expense.Id = s.nextId
	s.expenses[expense.Id] = expense
	return expense.Id, nil
}

func (s *RepositoryStub) Update(ctx context.Context, expense Expense) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, exists := s.expenses[expense.Id]; !exists {
		return false, nil
	}
	s.expenses[expense.Id] = expense
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, exists := s.expenses[id]; !exists {
		return false, nil
	}
	delete(s.expenses, id)
	return true, nil
}

func (s *RepositoryStub) filter(keep func(Expense) bool) ([]Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]Expense, 0, len(s.expenses))
	for _, expense := range s.expenses {
		if keep(expense) {
			result = append(result, expense)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *RepositoryStub) Count() int {
	return len(s.expenses)
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.expenses = map[int]Expense{}
	s.Err = nil
}
