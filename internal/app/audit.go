package app

import (
	"github.com/fintrack/fintrack/internal/event_bus"
	"github.com/fintrack/fintrack/pkg/record"
	"github.com/fintrack/fintrack/pkg/user"
	log "github.com/sirupsen/logrus"
)

var auditedEvents = []event_bus.EventType{
	event_bus.ExpenseCreated, event_bus.ExpenseUpdated, event_bus.ExpenseDeleted,
	event_bus.IncomeCreated, event_bus.IncomeUpdated, event_bus.IncomeDeleted,
}

// subscribeAuditLog logs every record write together with the account that made it.
func subscribeAuditLog(bus *event_bus.EventBus) {
	for _, eventType := range auditedEvents {
		event_bus.SubscribeTyped(bus, eventType, func(e event_bus.EventT[event_bus.RecordChanged]) error {
			actor := "anonymous"
			if u, err := user.CurrentUser(e.Context()); err == nil {
				actor = u.Username
			}
			log.WithFields(log.Fields{
				"event":       e.Type,
				"id":          e.Data.Id,
				"description": e.Data.Description,
				"value":       e.Data.Value.String(),
				"date":        record.FormatDate(e.Data.Date),
				"category":    e.Data.Category,
				"user":        actor,
			}).Info("record changed")
			return nil
		})
	}
}
