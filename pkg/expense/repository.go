package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/pkg/record"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

type Repository interface {
	record.DescriptionFinder
	FindAll(ctx context.Context) ([]Expense, error)
	FindById(ctx context.Context, id int) (Expense, error)
	// FindByDescriptionContaining matches descriptions with SQL LIKE semantics, the substring wrapped in '%'.
	FindByDescriptionContaining(ctx context.Context, substring string) ([]Expense, error)
	FindByYearAndMonth(ctx context.Context, scope record.MonthScope) ([]Expense, error)
	Store(ctx context.Context, expense Expense) (int, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectExpense = `SELECT id, description, value, date, category FROM expense`

func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Expense, error) {
	return r.query(ctx, selectExpense+` ORDER BY date, id`)
}

func (r *RepositoryImpl) FindById(ctx context.Context, id int) (Expense, error) {
	row := r.db.QueryRow(ctx, selectExpense+` WHERE id = $1`, id)
	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ErrExpenseNotFound
		}
		err := fmt.Errorf("could not get expense %d: %w", id, err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) FindByDescriptionContaining(ctx context.Context, substring string) ([]Expense, error) {
	return r.query(ctx, selectExpense+` WHERE description LIKE $1 ORDER BY date, id`, "%"+substring+"%")
}

func (r *RepositoryImpl) FindByYearAndMonth(ctx context.Context, scope record.MonthScope) ([]Expense, error) {
	from, to := scope.Bounds()
	return r.query(ctx, selectExpense+` WHERE date >= $1 AND date < $2 ORDER BY date, id`, from, to)
}

func (r *RepositoryImpl) CountByDescriptionInMonth(ctx context.Context, description string, q record.MonthQuery, excludeId int) (int, error) {
	query := `SELECT COUNT(*) FROM expense
			  WHERE description = $1
			    AND EXTRACT(MONTH FROM date) = $2
			    AND ($3::int = 0 OR EXTRACT(YEAR FROM date) = $3::int)
			    AND id <> $4`
	var count int
	err := r.db.QueryRow(ctx, query, description, int(q.Month), q.Year, excludeId).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count expenses by description: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, expense Expense) (int, error) {
	query := `INSERT INTO expense (description, value, date, category) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		expense.Description,
		expense.Value,
		expense.Date,
		string(expense.Category),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expense SET
                  description = $1,
                  value = $2,
                  date = $3,
                  category = $4
              WHERE id = $5`
	result, err := r.db.Exec(ctx, query,
		expense.Description,
		expense.Value,
		expense.Date,
		string(expense.Category),
		expense.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM expense WHERE id = $1", id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var expense Expense
	var category string
	err := row.Scan(
		&expense.Id,
		&expense.Description,
		&expense.Value,
		&expense.Date,
		&category,
	)
	if err != nil {
		return Expense{}, err
	}
	expense.Category = Category(category)
	return expense, nil
}
