package income

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/record"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrIncomeNotFound = errors.New("income not found")

type Repository interface {
	record.DescriptionFinder
	FindAll(ctx context.Context) ([]Income, error)
	FindById(ctx context.Context, id int) (Income, error)
	FindByDescriptionContaining(ctx context.Context, substring string) ([]Income, error)
	FindByYearAndMonth(ctx context.Context, scope record.MonthScope) ([]Income, error)
	Store(ctx context.Context, income Income) (int, error)
	Update(ctx context.Context, income Income) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectIncome = `SELECT id, description, value, date FROM income`

func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Income, error) {
	return r.query(ctx, selectIncome+` ORDER BY date, id`)
}

func (r *RepositoryImpl) FindById(ctx context.Context, id int) (Income, error) {
	var income Income
	err := r.db.QueryRow(ctx, selectIncome+` WHERE id = $1`, id).
		Scan(&income.Id, &income.Description, &income.Value, &income.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Income{}, ErrIncomeNotFound
		}
		err := fmt.Errorf("could not get income %d: %w", id, err)
		log.Error(err)
		return Income{}, err
	}
	return income, nil
}

func (r *RepositoryImpl) FindByDescriptionContaining(ctx context.Context, substring string) ([]Income, error) {
	return r.query(ctx, selectIncome+` WHERE description LIKE $1 ORDER BY date, id`, "%"+substring+"%")
}

func (r *RepositoryImpl) FindByYearAndMonth(ctx context.Context, scope record.MonthScope) ([]Income, error) {
	from, to := scope.Bounds()
	return r.query(ctx, selectIncome+` WHERE date >= $1 AND date < $2 ORDER BY date, id`, from, to)
}

func (r *RepositoryImpl) CountByDescriptionInMonth(ctx context.Context, description string, q record.MonthQuery, excludeId int) (int, error) {
	query := `SELECT COUNT(*) FROM income
			  WHERE description = $1
			    AND EXTRACT(MONTH FROM date) = $2
			    AND ($3::int = 0 OR EXTRACT(YEAR FROM date) = $3::int)
			    AND id <> $4`
	var count int
	err := r.db.QueryRow(ctx, query, description, int(q.Month), q.Year, excludeId).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count incomes by description: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, income Income) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO income (description, value, date) VALUES ($1, $2, $3) RETURNING id`,
		income.Description, income.Value, income.Date,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store income: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, income Income) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE income SET description = $1, value = $2, date = $3 WHERE id = $4`,
		income.Description, income.Value, income.Date, income.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update income %d: %w", income.Id, err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM income WHERE id = $1", id)
	if err != nil {
		err := fmt.Errorf("could not delete income %d: %w", id, err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]Income, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	incomes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Income, error) {
		var income Income
		err := row.Scan(&income.Id, &income.Description, &income.Value, &income.Date)
		return income, err
	})
	if err != nil {
		err := fmt.Errorf("error scanning incomes: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}
