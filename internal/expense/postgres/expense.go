package postgres

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/expense"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

var _ expense.Repository = (*ExpenseRepository)(nil)

func (r *ExpenseRepository) ListByOwner(ctx context.Context, userID int64) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("id DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id, userID int64) (*expenseDatamodel.Expense, error) {
	var e expenseDatamodel.Expense
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expenseDatamodel.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update writes the mutable columns, including zero values, for the owner's row.
func (r *ExpenseRepository) Update(ctx context.Context, e *expenseDatamodel.Expense) error {
	res := r.db.WithContext(ctx).
		Model(e).
		Where("user_id = ?", e.UserID).
		Select("amount", "category_id", "category", "description", "date", "updated_at").
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return expense.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&expenseDatamodel.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return expense.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID int64, from, to time.Time) ([]expense.CategoryTotal, error) {
	var totals []expense.CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Select("category, CAST(SUM(amount) AS BIGINT) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Group("category").
		Order("total DESC").
		Order("category ASC").
		Scan(&totals).Error
	return totals, err
}

func (r *ExpenseRepository) AmountsByDate(ctx context.Context, userID int64, from, to time.Time) ([]*expenseDatamodel.Expense, error) {
	var rows []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Select("id", "date", "amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}
