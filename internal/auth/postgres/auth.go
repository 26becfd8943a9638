package postgres

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/finance-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ auth.Repository = (*Repository)(nil)

// Create inserts the account; a duplicate email surfaces as
// gorm.ErrDuplicatedKey when the connection translates errors.
func (r *Repository) Create(ctx context.Context, user *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
