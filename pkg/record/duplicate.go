package record

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// MonthQuery selects records by month number and, when Year is non-zero, by year as well.
type MonthQuery struct {
	Month time.Month
	Year  int
}

// Matches reports whether date falls into the queried month.
func (q MonthQuery) Matches(date time.Time) bool {
	if date.Month() != q.Month {
		return false
	}
	return q.Year == 0 || date.Year() == q.Year
}

// DuplicateRule decides which records collide on description. The default compares only the month number,
// so records from the same month of different years collide too.
type DuplicateRule struct {
	IncludeYear bool
}

func (r DuplicateRule) Query(date time.Time) MonthQuery {
	q := MonthQuery{Month: date.Month()}
	if r.IncludeYear {
		q.Year = date.Year()
	}
	return q
}

type DescriptionFinder interface {
	// CountByDescriptionInMonth counts records with exactly this description in the queried month,
	// skipping the record with id excludeId (0 skips nothing).
	CountByDescriptionInMonth(ctx context.Context, description string, query MonthQuery, excludeId int) (int, error)
}

func IsDescriptionTakenInMonth(ctx context.Context, finder DescriptionFinder, rule DuplicateRule,
	description string, date time.Time, excludeId int) (bool, error) {
	count, err := finder.CountByDescriptionInMonth(ctx, description, rule.Query(date), excludeId)
	if err != nil {
		return false, fmt.Errorf("could not check description uniqueness: %w", err)
	}
	return count > 0, nil
}

// CheckDescriptionFree returns ErrDuplicateInMonth when description is taken by another record in date's month.
func CheckDescriptionFree(ctx context.Context, finder DescriptionFinder, rule DuplicateRule, kind string,
	description string, date time.Time, excludeId int) error {
	taken, err := IsDescriptionTakenInMonth(ctx, finder, rule, description, date, excludeId)
	if err != nil {
		return err
	}
	if taken {
		log.Infof("rejecting %s %q: description already used in month %d", kind, description, date.Month())
		return fmt.Errorf("%w: %s %q", ErrDuplicateInMonth, kind, description)
	}
	return nil
}
