package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseCreated EventType = "expense.created"
	ExpenseUpdated EventType = "expense.updated"
	ExpenseDeleted EventType = "expense.deleted"
	IncomeCreated  EventType = "income.created"
	IncomeUpdated  EventType = "income.updated"
	IncomeDeleted  EventType = "income.deleted"
)

// RecordChanged describes an expense or income after a write. For deletions it carries the last known state.
type RecordChanged struct {
	Kind        string
	Id          int
	Description string
	Value       decimal.Decimal
	Date        time.Time
	Category    string
}
