package goal

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

type CreateGoalDTO struct {
	UserID        *int64        `json:"userId,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	TargetAmount  *money.Amount `json:"targetAmount"`
	CurrentAmount *money.Amount `json:"currentAmount,omitempty"`
	Deadline      string        `json:"deadline,omitempty"`
}

// UpdateGoalDTO is a partial update. An empty deadline string clears it.
type UpdateGoalDTO struct {
	ID            *int64        `json:"id,omitempty"`
	UserID        *int64        `json:"userId,omitempty"`
	Title         *string       `json:"title,omitempty"`
	Description   *string       `json:"description,omitempty"`
	TargetAmount  *money.Amount `json:"targetAmount,omitempty"`
	CurrentAmount *money.Amount `json:"currentAmount,omitempty"`
	Deadline      *string       `json:"deadline,omitempty"`
	IsPinned      *bool         `json:"isPinned,omitempty"`
}

type ProgressDTO struct {
	Amount *money.Amount `json:"amount"`
}

// validateGoal checks a fully merged record.
func validateGoal(title, description string, target, current money.Amount) *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", title).Required().MaxLength(validation.MaxTitleLength)
	v.Field("description", description).MaxLength(validation.MaxDescriptionLength)
	v.Field("targetAmount", target).PositiveAmount()
	v.Field("currentAmount", current).NonNegativeAmount()
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if current > target {
		return errors.NewValidationFieldError("currentAmount", "current amount exceeds target", errors.ErrCodeGoalExceedsTarget)
	}
	return nil
}

func parseDeadline(raw string) (*time.Time, *errors.AppError) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, appErr := validation.ParseDate("deadline", raw)
	if appErr != nil {
		return nil, appErr
	}
	return &d, nil
}
