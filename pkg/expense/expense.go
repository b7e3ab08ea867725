package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/record"
	"github.com/shopspring/decimal"
)

const Kind = "expense"

type Expense struct {
	Id          int
	Description string
	Value       decimal.Decimal
	Date        time.Time
	Category    Category
}

// Patch holds the fields of a partial update. Nil fields keep their current value.
type Patch struct {
	Description *string
	Value       *decimal.Decimal
	Date        *time.Time
	Category    *Category
}

// Merge applies patch on top of existing. A blank description in the patch keeps the existing description.
// The id is never changed.
func Merge(existing Expense, patch Patch) Expense {
	merged := existing
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		merged.Description = *patch.Description
	}
	if patch.Value != nil {
		merged.Value = *patch.Value
	}
	if patch.Date != nil {
		merged.Date = *patch.Date
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	return merged
}

// Validate checks the fields of a complete expense.
func (e Expense) Validate() error {
	if err := record.ValidateDescription(e.Description); err != nil {
		return err
	}
	if e.Value.IsNegative() {
		return fmt.Errorf("%w: value must not be negative", record.ErrInvalidRecord)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", record.ErrInvalidRecord)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", record.ErrInvalidRecord, e.Category)
	}
	return nil
}
