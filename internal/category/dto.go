package category

import (
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
)

// CreateCategoryDTO accepts "desc" as well as "description".
type CreateCategoryDTO struct {
	UserID      *int64 `json:"userId,omitempty"`
	Name        string `json:"name"`
	Desc        string `json:"desc,omitempty"`
	Description string `json:"description,omitempty"`
}

func (d CreateCategoryDTO) NormalizedName() string {
	return validation.NormalizeName(d.Name)
}

func (d CreateCategoryDTO) Text() string {
	if d.Description != "" {
		return strings.TrimSpace(d.Description)
	}
	return strings.TrimSpace(d.Desc)
}

func (d CreateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.NormalizedName()).Required().MaxLength(validation.MaxNameLength)
	v.Field("description", d.Text()).MaxLength(validation.MaxDescriptionLength)
	return v.Validate()
}
