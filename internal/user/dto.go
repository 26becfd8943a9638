package user

import (
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
)

type UpdateProfileDTO struct {
	Username string `json:"username"`
}

func (dto UpdateProfileDTO) Normalized() string {
	return strings.TrimSpace(dto.Username)
}

func (dto UpdateProfileDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", dto.Username).Required().MaxLength(validation.MaxNameLength)
	return v.Validate()
}
