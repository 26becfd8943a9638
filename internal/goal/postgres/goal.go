package postgres

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	goalDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/goal"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/goal"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

var _ goal.Repository = (*GoalRepository)(nil)

func (r *GoalRepository) ListByOwner(ctx context.Context, userID int64) ([]*goalDatamodel.Goal, error) {
	var goals []*goalDatamodel.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) GetByID(ctx context.Context, id, userID int64) (*goalDatamodel.Goal, error) {
	var g goalDatamodel.Goal
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goal.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) Create(ctx context.Context, g *goalDatamodel.Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// AddProgress runs
//
//	UPDATE goals SET current_amount = current_amount + Δ,
//	  is_completed = (current_amount + Δ >= target_amount)
//	WHERE id = ? AND user_id = ? AND current_amount + Δ <= target_amount
//
// and reads the row back in the same transaction. Both SET expressions see
// the pre-update row, and the UPDATE holds the row lock until commit, so the
// returned goal is exactly the state this increment produced.
func (r *GoalRepository) AddProgress(ctx context.Context, id, userID int64, delta money.Amount) (*goalDatamodel.Goal, bool, error) {
	var (
		g       goalDatamodel.Goal
		applied bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&goalDatamodel.Goal{}).
			Where("id = ? AND user_id = ? AND current_amount + ? <= target_amount", id, userID, delta).
			Updates(map[string]interface{}{
				"current_amount": gorm.Expr("current_amount + ?", delta),
				"is_completed":   gorm.Expr("current_amount + ? >= target_amount", delta),
			})
		if res.Error != nil {
			return res.Error
		}
		applied = res.RowsAffected > 0

		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return goal.ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &g, applied, nil
}

func (r *GoalRepository) UpdateGuarded(ctx context.Context, g *goalDatamodel.Goal, readCurrent, readTarget money.Amount) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&goalDatamodel.Goal{}).
		Where("id = ? AND user_id = ? AND current_amount = ? AND target_amount = ?", g.ID, g.UserID, readCurrent, readTarget).
		Updates(map[string]interface{}{
			"title":          g.Title,
			"description":    g.Description,
			"target_amount":  g.TargetAmount,
			"current_amount": g.CurrentAmount,
			"deadline":       g.Deadline,
			"is_pinned":      g.IsPinned,
			"is_completed":   g.IsCompleted,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GoalRepository) TogglePin(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&goalDatamodel.Goal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_pinned", gorm.Expr("NOT is_pinned"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return goal.ErrNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&goalDatamodel.Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return goal.ErrNotFound
	}
	return nil
}
