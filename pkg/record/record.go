// Package record holds what expenses and incomes share: the date format of the API, month scoping and the
// rule that a description may be used only once per month for each kind of record.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidRecord = errors.New("invalid record")
var ErrDuplicateInMonth = errors.New("description already registered in this month")

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be in YYYY-MM-DD format", ErrInvalidRecord, value)
	}
	return date, nil
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ValidateDescription rejects blank descriptions.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRecord)
	}
	return nil
}

// MonthScope is a calendar month of a given year.
type MonthScope struct {
	Year  int
	Month time.Month
}

func NewMonthScope(year, month int) (MonthScope, error) {
	if month < 1 || month > 12 {
		return MonthScope{}, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidRecord, month)
	}
	if year < 1 || year > 9999 {
		return MonthScope{}, fmt.Errorf("%w: year must be between 1 and 9999, got %d", ErrInvalidRecord, year)
	}
	return MonthScope{Year: year, Month: time.Month(month)}, nil
}

// Bounds returns the first day of the month and the first day of the next one.
func (m MonthScope) Bounds() (time.Time, time.Time) {
	from := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (m MonthScope) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

func (m MonthScope) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ParseMonthScope parses year and month path values such as "2022" and "08".
func ParseMonthScope(year, month string) (MonthScope, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return MonthScope{}, fmt.Errorf("%w: invalid year %q", ErrInvalidRecord, year)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return MonthScope{}, fmt.Errorf("%w: invalid month %q", ErrInvalidRecord, month)
	}
	return NewMonthScope(y, m)
}
