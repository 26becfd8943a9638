package expense

import (
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

type Expense struct {
	ID          int64        `gorm:"primaryKey"`
	UserID      int64        `gorm:"column:user_id;not null;index:idx_expenses_user_date,priority:1"`
	Amount      money.Amount `gorm:"column:amount;not null"`
	CategoryID  *int64       `gorm:"column:category_id;index"`
	Category    string       `gorm:"column:category;not null"`
	Description string       `gorm:"column:description"`
	Date        time.Time    `gorm:"column:date;not null;index:idx_expenses_user_date,priority:2"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string { return "expenses" }
