package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAccountRegistered = "account.registered"
	EventTypeExpenseRecorded   = "expense.recorded"
	EventTypeGoalCompleted     = "goal.completed"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// NewAccountRegistered carries no credentials, only the public identity.
func NewAccountRegistered(userID int64, email string) BaseEvent {
	return newBase(EventTypeAccountRegistered, map[string]interface{}{
		"user_id": userID,
		"email":   email,
	})
}

// NewExpenseRecorded reports amounts in cents.
func NewExpenseRecorded(expenseID, userID, amountCents int64, category string) BaseEvent {
	return newBase(EventTypeExpenseRecorded, map[string]interface{}{
		"expense_id":   expenseID,
		"user_id":      userID,
		"amount_cents": amountCents,
		"category":     category,
	})
}

func NewGoalCompleted(goalID, userID, targetCents int64) BaseEvent {
	return newBase(EventTypeGoalCompleted, map[string]interface{}{
		"goal_id":      goalID,
		"user_id":      userID,
		"target_cents": targetCents,
	})
}

// NewCustom builds an ad hoc event, used by the CLI for smoke tests.
func NewCustom(eventType string, data map[string]interface{}) BaseEvent {
	return newBase(eventType, data)
}
