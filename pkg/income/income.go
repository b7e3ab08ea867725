package income

import (
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/fintrack/pkg/record"
	"github.com/shopspring/decimal"
)

const Kind = "income"

// Income is money received. Negative values are accepted and count as corrections in the summary.
type Income struct {
	Id          int
	Description string
	Value       decimal.Decimal
	Date        time.Time
}

// Patch holds the fields of a partial update. Nil fields keep their current value.
type Patch struct {
	Description *string
	Value       *decimal.Decimal
	Date        *time.Time
}

func Merge(existing Income, patch Patch) Income {
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
	return merged
}

func (i Income) Validate() error {
	if err := record.ValidateDescription(i.Description); err != nil {
		return err
	}
	if i.Date.IsZero() {
		return fmt.Errorf("%w: date is required", record.ErrInvalidRecord)
	}
	return nil
}
