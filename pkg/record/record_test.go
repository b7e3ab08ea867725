package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finderStub struct {
	dates     map[int]time.Time
	names     map[int]string
	err       error
	lastQuery MonthQuery
}

func (f *finderStub) CountByDescriptionInMonth(_ context.Context, description string, query MonthQuery, excludeId int) (int, error) {
	f.lastQuery = query
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for id, name := range f.names {
		if id != excludeId && name == description && query.Matches(f.dates[id]) {
			count++
		}
	}
	return count, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2022-08-05")
	require.NoError(t, err)
	assert.Equal(t, date(2022, time.August, 5), parsed)
	assert.Equal(t, "2022-08-05", FormatDate(parsed))

	_, err = ParseDate("05/08/2022")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription("Rent"))
	assert.ErrorIs(t, ValidateDescription(""), ErrInvalidRecord)
	assert.ErrorIs(t, ValidateDescription("   "), ErrInvalidRecord)
}

func TestNewMonthScope(t *testing.T) {
	scope, err := NewMonthScope(2022, 8)
	require.NoError(t, err)
	from, to := scope.Bounds()
	assert.Equal(t, date(2022, time.August, 1), from)
	assert.Equal(t, date(2022, time.September, 1), to)
	assert.True(t, scope.Contains(date(2022, time.August, 31)))
	assert.False(t, scope.Contains(date(2023, time.August, 1)))
	assert.Equal(t, "2022-08", scope.String())

	_, err = NewMonthScope(2022, 13)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	_, err = NewMonthScope(2022, 0)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestDuplicateRule_Query(t *testing.T) {
	d := date(2022, time.August, 5)

	assert.Equal(t, MonthQuery{Month: time.August}, DuplicateRule{}.Query(d))
	assert.Equal(t, MonthQuery{Month: time.August, Year: 2022}, DuplicateRule{IncludeYear: true}.Query(d))
}

func TestIsDescriptionTakenInMonth(t *testing.T) {
	ctx := context.Background()
	finder := &finderStub{
		names: map[int]string{1: "Rent", 2: "Snack"},
		dates: map[int]time.Time{1: date(2022, time.August, 5), 2: date(2022, time.August, 11)},
	}

	t.Run("same description in same month is taken", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{}, "Rent", date(2022, time.August, 20), 0)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("same month number of another year is taken by default", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{}, "Rent", date(2023, time.August, 1), 0)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("another year is free when the year is compared", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{IncludeYear: true}, "Rent", date(2023, time.August, 1), 0)
		require.NoError(t, err)
		assert.False(t, taken)
		assert.Equal(t, 2023, finder.lastQuery.Year)
	})

	t.Run("another month is free", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{}, "Rent", date(2022, time.September, 5), 0)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("comparison is exact", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{}, "rent", date(2022, time.August, 5), 0)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("record does not collide with itself", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{}, "Rent", date(2022, time.August, 5), 1)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("record collides with another one when excluded id differs", func(t *testing.T) {
		taken, err := IsDescriptionTakenInMonth(ctx, finder, DuplicateRule{}, "Rent", date(2022, time.August, 5), 2)
		require.NoError(t, err)
		assert.True(t, taken)
	})
}

func TestCheckDescriptionFree(t *testing.T) {
	ctx := context.Background()
	finder := &finderStub{
		names: map[int]string{1: "Salary"},
		dates: map[int]time.Time{1: date(2022, time.August, 5)},
	}

	err := CheckDescriptionFree(ctx, finder, DuplicateRule{}, "income", "Salary", date(2022, time.August, 30), 0)
	assert.ErrorIs(t, err, ErrDuplicateInMonth)

	err = CheckDescriptionFree(ctx, finder, DuplicateRule{}, "income", "Bonus", date(2022, time.August, 30), 0)
	assert.NoError(t, err)

	failure := errors.New("connection refused")
	err = CheckDescriptionFree(ctx, &finderStub{err: failure}, DuplicateRule{}, "income", "Bonus", date(2022, time.August, 30), 0)
	assert.ErrorIs(t, err, failure)
	assert.NotErrorIs(t, err, ErrDuplicateInMonth)
}

func TestParseMonthScope(t *testing.T) {
	scope, err := ParseMonthScope("2022", "08")
	require.NoError(t, err)
	assert.Equal(t, MonthScope{Year: 2022, Month: time.August}, scope)

	_, err = ParseMonthScope("abc", "08")
	assert.ErrorIs(t, err, ErrInvalidRecord)
	_, err = ParseMonthScope("2022", "x")
	assert.ErrorIs(t, err, ErrInvalidRecord)
	_, err = ParseMonthScope("2022", "13")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
