package goal

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/finance-tracker/internal"
	goalDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/goal"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

type Repository interface {
	ListByOwner(ctx context.Context, userID int64) ([]*goalDatamodel.Goal, error)
	// GetByID, TogglePin and Delete return ErrNotFound when the owner has no
	// such goal.
	GetByID(ctx context.Context, id, userID int64) (*goalDatamodel.Goal, error)
	Create(ctx context.Context, goal *goalDatamodel.Goal) error
	// AddProgress increments the saved amount in one conditional statement
	// and returns the row as that statement left it, plus whether it
	// changed. ErrNotFound when the owner has no such goal.
	AddProgress(ctx context.Context, id, userID int64, delta money.Amount) (*goalDatamodel.Goal, bool, error)
	// UpdateGuarded writes goal only if the stored amounts still equal the
	// ones it was read with.
	UpdateGuarded(ctx context.Context, goal *goalDatamodel.Goal, readCurrent, readTarget money.Amount) (bool, error)
	TogglePin(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Goal, error) {
	data, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list goals", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to list goals", err)
	}

	goals := make([]*Goal, 0, len(data))
	for _, g := range data {
		goals = append(goals, FromDataModel(g))
	}
	return goals, nil
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateGoalDTO) (*Goal, error) {
	if dto.TargetAmount == nil {
		return nil, errors.NewValidationFieldError("targetAmount", "targetAmount is required", errors.ErrCodeInvalidAmount)
	}
	var current money.Amount
	if dto.CurrentAmount != nil {
		current = *dto.CurrentAmount
	}

	title := strings.TrimSpace(dto.Title)
	description := strings.TrimSpace(dto.Description)
	if appErr := validateGoal(title, description, *dto.TargetAmount, current); appErr != nil {
		return nil, appErr
	}

	deadline, appErr := parseDeadline(dto.Deadline)
	if appErr != nil {
		return nil, appErr
	}

	data := &goalDatamodel.Goal{
		UserID:        userID,
		Title:         title,
		Description:   description,
		TargetAmount:  *dto.TargetAmount,
		CurrentAmount: current,
		Deadline:      deadline,
		IsCompleted:   Completed(current, *dto.TargetAmount),
	}
	if err := s.repo.Create(ctx, data); err != nil {
		s.logger.Error("failed to create goal", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to create goal", err)
	}

	s.logger.Info("goal created", "goal_id", data.ID, "user_id", userID)
	return FromDataModel(data), nil
}

// AddProgress adds delta to the saved amount. The bound check and the
// increment happen in one store statement; a delta that would overshoot the
// target is rejected, never clamped.
func (s *Service) AddProgress(ctx context.Context, id, userID int64, delta money.Amount) (*Goal, error) {
	if !delta.IsPositive() {
		return nil, errors.NewValidationFieldError("amount", "amount must be positive", errors.ErrCodeInvalidAmount)
	}

	data, applied, err := s.repo.AddProgress(ctx, id, userID, delta)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to update goal")
	}
	if !applied {
		return nil, errors.NewValidationFieldError("amount", "amount exceeds target", errors.ErrCodeGoalExceedsTarget)
	}

	// data is the post-increment row, so the pre-increment amount is exact.
	if data.IsCompleted && !Completed(data.CurrentAmount-delta, data.TargetAmount) {
		s.publishCompleted(ctx, data)
	}
	return FromDataModel(data), nil
}

// Update applies a partial patch and writes it only if the amounts have not
// changed since they were read.
func (s *Service) Update(ctx context.Context, id, userID int64, dto UpdateGoalDTO) (*Goal, error) {
	if dto.ID != nil && *dto.ID != id {
		return nil, errors.NewValidationError("id in body does not match path", errors.ErrCodeInvalidID)
	}

	data, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load goal")
	}
	readCurrent, readTarget := data.CurrentAmount, data.TargetAmount
	wasCompleted := data.IsCompleted

	if dto.Title != nil {
		data.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		data.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.TargetAmount != nil {
		data.TargetAmount = *dto.TargetAmount
	}
	if dto.CurrentAmount != nil {
		data.CurrentAmount = *dto.CurrentAmount
	}
	if dto.Deadline != nil {
		deadline, appErr := parseDeadline(*dto.Deadline)
		if appErr != nil {
			return nil, appErr
		}
		data.Deadline = deadline
	}
	if dto.IsPinned != nil {
		data.IsPinned = *dto.IsPinned
	}

	if appErr := validateGoal(data.Title, data.Description, data.TargetAmount, data.CurrentAmount); appErr != nil {
		return nil, appErr
	}
	data.IsCompleted = Completed(data.CurrentAmount, data.TargetAmount)

	applied, err := s.repo.UpdateGuarded(ctx, data, readCurrent, readTarget)
	if err != nil {
		s.logger.Error("failed to update goal", "goal_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update goal", err)
	}
	if !applied {
		if _, err := s.repo.GetByID(ctx, id, userID); err != nil {
			return nil, s.notFoundOr(err, "failed to load goal")
		}
		return nil, errors.NewConflictError("goal was modified concurrently", errors.ErrCodeConcurrentUpdate)
	}

	if data.IsCompleted && !wasCompleted {
		s.publishCompleted(ctx, data)
	}
	return FromDataModel(data), nil
}

func (s *Service) TogglePin(ctx context.Context, id, userID int64) (*Goal, error) {
	if err := s.repo.TogglePin(ctx, id, userID); err != nil {
		return nil, s.notFoundOr(err, "failed to toggle pin")
	}
	data, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load goal")
	}
	return FromDataModel(data), nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return s.notFoundOr(err, "failed to delete goal")
	}
	return nil
}

func (s *Service) publishCompleted(ctx context.Context, data *goalDatamodel.Goal) {
	s.logger.Info("goal completed", "goal_id", data.ID, "user_id", data.UserID)
	if err := s.publisher.Publish(ctx, events.NewGoalCompleted(data.ID, data.UserID, data.TargetAmount.Cents())); err != nil {
		s.logger.Warn("failed to publish event", "event_type", events.EventTypeGoalCompleted, "error", err)
	}
}

func (s *Service) notFoundOr(err error, message string) error {
	if stderrors.Is(err, ErrNotFound) {
		return errors.NewNotFoundError("goal not found", errors.ErrCodeGoalNotFound)
	}
	s.logger.Error(message, "error", err)
	return errors.NewInternalError(message, err)
}
