package income

import (
	"context"
	"slices"

	"github.com/fintrack/fintrack/pkg/record"
)

type RepositoryStub struct {
	incomes []Income
	nextId  int
	Err     error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) FindAll(ctx context.Context) ([]Income, error) {
	return s.where(func(Income) bool { return true })
}

func (s *RepositoryStub) FindById(ctx context.Context, id int) (Income, error) {
	if s.Err != nil {
		return Income{}, s.Err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return Income{}, ErrIncomeNotFound
	}
	return s.incomes[idx], nil
}

func (s *RepositoryStub) FindByDescriptionContaining(ctx context.Context, substring string) ([]Income, error) {
	return s.where(func(i Income) bool { return record.ContainsLike(i.Description, substring) })
}

func (s *RepositoryStub) FindByYearAndMonth(ctx context.Context, scope record.MonthScope) ([]Income, error) {
	return s.where(func(i Income) bool { return scope.Contains(i.Date) })
}

func (s *RepositoryStub) CountByDescriptionInMonth(ctx context.Context, description string, query record.MonthQuery, excludeId int) (int, error) {
	found, err := s.where(func(i Income) bool {
		return i.Id != excludeId && i.Description == description && query.Matches(i.Date)
	})
	return len(found), err
}

func (s *RepositoryStub) Store(ctx context.Context, income Income) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.nextId++
	income.Id = s.nextId
	s.incomes = append(s.incomes, income)
	return income.Id, nil
}

func (s *RepositoryStub) Update(ctx context.Context, income Income) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	idx := s.indexOf(income.Id)
	if idx < 0 {
		return false, nil
	}
	s.incomes[idx] = income
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.incomes = slices.Delete(s.incomes, idx, idx+1)
	return true, nil
}

func (s *RepositoryStub) Count() int {
	return len(s.incomes)
}

func (s *RepositoryStub) Cleanup() {
	s.incomes = nil
	s.nextId = 0
	s.Err = nil
}

func (s *RepositoryStub) indexOf(id int) int {
	return slices.IndexFunc(s.incomes, func(i Income) bool { return i.Id == id })
}

func (s *RepositoryStub) where(keep func(Income) bool) ([]Income, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]Income, 0)
	for _, income := range s.incomes {
		if keep(income) {
			result = append(result, income)
		}
	}
	return result, nil
}
