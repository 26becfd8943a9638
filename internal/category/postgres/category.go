package postgres

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ category.RepositoryAPI = (*CategoryRepository)(nil)

func (r *CategoryRepository) ListByOwner(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByName(ctx context.Context, userID int64, name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&cat).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, userID int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

// Delete detaches the owner's expenses from the category and removes it in
// one transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&categoryDatamodel.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return category.ErrNotFound
		}

		return tx.Model(&expenseDatamodel.Expense{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("category_id", nil).Error
	})
}
