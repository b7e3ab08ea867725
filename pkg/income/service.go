package income

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/record"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// List returns every income when descriptionFilter is blank, otherwise the matching ones or
	// ErrIncomeNotFound when nothing matches.
	List(ctx context.Context, descriptionFilter string) ([]Income, error)
	Get(ctx context.Context, id int) (Income, error)
	ListByMonth(ctx context.Context, scope record.MonthScope) ([]Income, error)
	Create(ctx context.Context, income Income) (Income, error)
	Update(ctx context.Context, id int, patch Patch) (Income, error)
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

func (s *ServiceImpl) List(ctx context.Context, descriptionFilter string) ([]Income, error) {
	if strings.TrimSpace(descriptionFilter) == "" {
		return s.repo.FindAll(ctx)
	}
	incomes, err := s.repo.FindByDescriptionContaining(ctx, descriptionFilter)
	if err != nil {
		return nil, err
	}
	if len(incomes) == 0 {
		return nil, fmt.Errorf("%w: no income matches %q", ErrIncomeNotFound, descriptionFilter)
	}
	return incomes, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Income, error) {
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) ListByMonth(ctx context.Context, scope record.MonthScope) ([]Income, error) {
	return s.repo.FindByYearAndMonth(ctx, scope)
}

func (s *ServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	if err := income.Validate(); err != nil {
		return Income{}, err
	}
	if err := record.CheckDescriptionFree(ctx, s.repo, s.rule, Kind, income.Description, income.Date, 0); err != nil {
		return Income{}, err
	}

	id, err := s.repo.Store(ctx, income)
	if err != nil {
		return Income{}, err
	}
	income.Id = id
	s.publish(ctx, event_bus.IncomeCreated, income)
	return income, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, patch Patch) (Income, error) {
	existing, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Income{}, err
	}
	merged := Merge(existing, patch)
	if err := merged.Validate(); err != nil {
		return Income{}, err
	}
	if err := record.CheckDescriptionFree(ctx, s.repo, s.rule, Kind, merged.Description, merged.Date, id); err != nil {
		return Income{}, err
	}

	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return Income{}, err
	}
	if !updated {
		return Income{}, ErrIncomeNotFound
	}
	s.publish(ctx, event_bus.IncomeUpdated, merged)
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
		return ErrIncomeNotFound
	}
	s.publish(ctx, event_bus.IncomeDeleted, existing)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, income Income) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.RecordChanged{
		Kind:        Kind,
		Id:          income.Id,
		Description: income.Description,
		Value:       income.Value,
		Date:        income.Date,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event for income %d: %v", eventType, income.Id, err)
	}
}
