package goal

import (
	"errors"
	"time"

	goalDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/goal"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

var ErrNotFound = errors.New("goal not found")

type Goal struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"userId"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	TargetAmount  money.Amount `json:"targetAmount"`
	CurrentAmount money.Amount `json:"currentAmount"`
	Deadline      *time.Time   `json:"deadline"`
	IsPinned      bool         `json:"isPinned"`
	IsCompleted   bool         `json:"isCompleted"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Completed is the only rule for completion.
func Completed(current, target money.Amount) bool {
	return current >= target
}

func FromDataModel(g *goalDatamodel.Goal) *Goal {
	return &Goal{
		ID:            g.ID,
		UserID:        g.UserID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline,
		IsPinned:      g.IsPinned,
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}
