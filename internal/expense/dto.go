package expense

import (
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

// CreateExpenseDTO accepts the category either as an owned category id
// (categoryId or cat_id) or as a free-text label.
type CreateExpenseDTO struct {
	UserID      *int64        `json:"userId,omitempty"`
	Amount      *money.Amount `json:"amount"`
	CategoryID  *int64        `json:"categoryId,omitempty"`
	CatID       *int64        `json:"cat_id,omitempty"`
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	Date        string        `json:"date,omitempty"`
}

// UpdateExpenseDTO is a partial update; nil fields are left untouched.
type UpdateExpenseDTO struct {
	ID          *int64        `json:"id,omitempty"`
	UserID      *int64        `json:"userId,omitempty"`
	Amount      *money.Amount `json:"amount,omitempty"`
	CategoryID  *int64        `json:"categoryId,omitempty"`
	CatID       *int64        `json:"cat_id,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Description *string       `json:"description,omitempty"`
	Date        *string       `json:"date,omitempty"`
}

func firstID(ids ...*int64) *int64 {
	for _, id := range ids {
		if id != nil {
			return id
		}
	}
	return nil
}

func (d CreateExpenseDTO) categoryRef() *int64 { return firstID(d.CategoryID, d.CatID) }

func (d UpdateExpenseDTO) categoryRef() *int64 { return firstID(d.CategoryID, d.CatID) }

func (d CreateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Amount == nil {
		v.Field("amount", "").Required()
	} else {
		v.Field("amount", *d.Amount).PositiveAmount()
	}
	if d.categoryRef() == nil {
		v.Field("category", d.Category).Required().MaxLength(validation.MaxNameLength)
	}
	v.Field("description", strings.TrimSpace(d.Description)).MaxLength(validation.MaxDescriptionLength)
	return v.Validate()
}

func (d UpdateExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Amount != nil {
		v.Field("amount", *d.Amount).PositiveAmount()
	}
	if d.Category != nil && d.categoryRef() == nil {
		v.Field("category", *d.Category).Required().MaxLength(validation.MaxNameLength)
	}
	if d.Description != nil {
		v.Field("description", strings.TrimSpace(*d.Description)).MaxLength(validation.MaxDescriptionLength)
	}
	return v.Validate()
}
