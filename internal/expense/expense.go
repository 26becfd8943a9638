package expense

import (
	"errors"
	"time"

	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

var ErrNotFound = errors.New("expense not found")

// Expense is a single spending record. Category is the label shown to the
// user; CategoryID links to an owned category while it exists.
type Expense struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"userId"`
	Amount      money.Amount `json:"amount"`
	CategoryID  *int64       `json:"categoryId"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CategoryTotal struct {
	Category string       `json:"category" gorm:"column:category"`
	Total    money.Amount `json:"total" gorm:"column:total"`
	Count    int64        `json:"count" gorm:"column:count"`
}

type DailyTotal struct {
	Day   string       `json:"day"`
	Total money.Amount `json:"total"`
}

// Summary aggregates an owner's expenses over an inclusive date range.
type Summary struct {
	From       string          `json:"from"`
	To         string          `json:"to"`
	Total      money.Amount    `json:"total"`
	Count      int64           `json:"count"`
	ByCategory []CategoryTotal `json:"byCategory"`
	ByDay      []DailyTotal    `json:"byDay"`
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
