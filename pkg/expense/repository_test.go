package expense

import (
	"os"
	"testing"
	"time"

	"github.com/fintrack/fintrack/internal/test_utils"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB test_utils.TestDB

func TestMain(m *testing.M) {
	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) *RepositoryImpl {
	pool := testDB.Pool(t)
	test_utils.Truncate(t, pool, "expense")
	return NewRepository(pool)
}

func TestRepositoryImpl_StoreAndFind(t *testing.T) {
	repository := setupTestRepository(t)

	// given
	expense := Expense{
		Description: "Rent",
		Value:       decimal.RequireFromString("1800.125"),
		Date:        day(2022, time.August, 5),
		Category:    Housing,
	}

	// when
	id, err := repository.Store(ctx, expense)
	require.NoError(t, err)

	// then
	found, err := repository.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, found.Id)
	assert.Equal(t, "Rent", found.Description)
	assert.True(t, expense.Value.Equal(found.Value), "value %s lost precision", found.Value)
	assert.Equal(t, "2022-08-05", record.FormatDate(found.Date))
	assert.Equal(t, Housing, found.Category)
}

func TestRepositoryImpl_FindById_NotFound(t *testing.T) {
	repository := setupTestRepository(t)

	_, err := repository.FindById(ctx, 123)

	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestRepositoryImpl_Queries(t *testing.T) {
	repository := setupTestRepository(t)
	for _, e := range []Expense{
		newExpense("Rent", 1800, day(2022, time.August, 5), Housing),
		newExpense("Snack", 20, day(2022, time.August, 31), Other),
		newExpense("Rental car", 300, day(2022, time.September, 1), Transport),
		newExpense("Rent", 1700, day(2023, time.August, 5), Housing),
	} {
		_, err := repository.Store(ctx, e)
		require.NoError(t, err)
	}

	t.Run("find all", func(t *testing.T) {
		all, err := repository.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("description containing", func(t *testing.T) {
		found, err := repository.FindByDescriptionContaining(ctx, "Rent")
		require.NoError(t, err)
		assert.Len(t, found, 3)

		found, err = repository.FindByDescriptionContaining(ctx, "rent")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("description containing treats LIKE wildcards as patterns", func(t *testing.T) {
		found, err := repository.FindByDescriptionContaining(ctx, "R_nt")
		require.NoError(t, err)
		assert.Len(t, found, 3)

		found, err = repository.FindByDescriptionContaining(ctx, "Sn%k")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Snack", found[0].Description)

		found, err = repository.FindByDescriptionContaining(ctx, `R\_nt`)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("year and month", func(t *testing.T) {
		found, err := repository.FindByYearAndMonth(ctx, record.MonthScope{Year: 2022, Month: time.August})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Rent", found[0].Description)
		assert.Equal(t, "Snack", found[1].Description)
	})

	t.Run("count by description in month ignores year by default", func(t *testing.T) {
		count, err := repository.CountByDescriptionInMonth(ctx, "Rent", record.MonthQuery{Month: time.August}, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("count by description in month and year", func(t *testing.T) {
		count, err := repository.CountByDescriptionInMonth(ctx, "Rent", record.MonthQuery{Month: time.August, Year: 2023}, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("count excludes the given id", func(t *testing.T) {
		count, err := repository.CountByDescriptionInMonth(ctx, "Rent", record.MonthQuery{Month: time.August, Year: 2022}, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestRepositoryImpl_UpdateAndDelete(t *testing.T) {
	repository := setupTestRepository(t)
	id, err := repository.Store(ctx, newExpense("Rent", 1800, day(2022, time.August, 5), Housing))
	require.NoError(t, err)

	// update
	updated, err := repository.Update(ctx, Expense{
		Id:          id,
		Description: "Rent August",
		Value:       decimal.NewFromInt(1850),
		Date:        day(2022, time.August, 6),
		Category:    Housing,
	})
	require.NoError(t, err)
	assert.True(t, updated)
	found, err := repository.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Rent August", found.Description)

	// update missing
	updated, err = repository.Update(ctx, Expense{Id: 999, Description: "x", Date: day(2022, time.August, 6)})
	require.NoError(t, err)
	assert.False(t, updated)

	// delete
	deleted, err := repository.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repository.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
