package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/record"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// List returns every expense when descriptionFilter is blank. Otherwise it returns the expenses whose
	// description contains the filter, or ErrExpenseNotFound when there are none.
	List(ctx context.Context, descriptionFilter string) ([]Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	ListByMonth(ctx context.Context, scope record.MonthScope) ([]Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, id int, patch Patch) (Expense, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo     Repository
	rule     record.DuplicateRule
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, rule record.DuplicateRule, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, rule: rule, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context, descriptionFilter string) ([]Expense, error) {
	if strings.TrimSpace(descriptionFilter) == "" {
		return s.repo.FindAll(ctx)
	}
	expenses, err := s.repo.FindByDescriptionContaining(ctx, descriptionFilter)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("%w: no expense matches %q", ErrExpenseNotFound, descriptionFilter)
	}
	return expenses, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Expense, error) {
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) ListByMonth(ctx context.Context, scope record.MonthScope) ([]Expense, error) {
	return s.repo.FindByYearAndMonth(ctx, scope)
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	if expense.Category == "" {
		expense.Category = DefaultCategory
	}
	if err := expense.Validate(); err != nil {
		return Expense{}, err
	}
	err := record.CheckDescriptionFree(ctx, s.repo, s.rule, Kind, expense.Description, expense.Date, 0)
	if err != nil {
		return Expense{}, err
	}

	id, err := s.repo.Store(ctx, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.Id = id

	s.publish(ctx, event_bus.ExpenseCreated, expense)
	return expense, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, patch Patch) (Expense, error) {
	existing, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Expense{}, err
	}

	merged := Merge(existing, patch)
	if err := merged.Validate(); err != nil {
		return Expense{}, err
	}
	err = record.CheckDescriptionFree(ctx, s.repo, s.rule, Kind, merged.Description, merged.Date, id)
	if err != nil {
		return Expense{}, err
	}

	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		// deleted between the read and the write
		return Expense{}, ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpenseUpdated, merged)
	return merged, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	existing, err := s.repo.FindById(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("expense %d not deleted, probably because it no longer exists", id)
		return ErrExpenseNotFound
	}

	s.publish(ctx, event_bus.ExpenseDeleted, existing)
	return nil
}

// publish notifies subscribers after a committed write. A failing subscriber does not undo the write.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, expense Expense) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.RecordChanged{
		Kind:        Kind,
		Id:          expense.Id,
		Description: expense.Description,
		Value:       expense.Value,
		Date:        expense.Date,
		Category:    string(expense.Category),
	}))
	if err != nil {
		log.Errorf("failed to publish %s event for expense %d: %v", eventType, expense.Id, err)
	}
}
