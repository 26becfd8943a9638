package goal

import (
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

type Goal struct {
	ID            int64        `gorm:"primaryKey"`
	UserID        int64        `gorm:"column:user_id;not null;index"`
	Title         string       `gorm:"column:title;not null"`
	Description   string       `gorm:"column:description"`
	TargetAmount  money.Amount `gorm:"column:target_amount;not null"`
	CurrentAmount money.Amount `gorm:"column:current_amount;not null;default:0"`
	Deadline      *time.Time   `gorm:"column:deadline"`
	IsPinned      bool         `gorm:"column:is_pinned;not null;default:false"`
	IsCompleted   bool         `gorm:"column:is_completed;not null;default:false"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}

func (Goal) TableName() string { return "goals" }
