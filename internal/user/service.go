package user

import (
	"context"
	stderrors "errors"
	"log/slog"

	errors "github.com/frahmantamala/finance-tracker/internal"
)

type Repository interface {
	// Get and UpdateUsername return ErrNotFound for unknown ids.
	Get(ctx context.Context, id int64) (*Profile, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the caller's own profile. Any other id is reported as not
// found so account ids cannot be probed.
func (s *Service) Get(ctx context.Context, id, caller int64) (*Profile, error) {
	if id != caller {
		return nil, errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	}

	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load profile")
	}
	return profile, nil
}

func (s *Service) UpdateUsername(ctx context.Context, id, caller int64, dto UpdateProfileDTO) (*UsernameUpdate, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}
	if id != caller {
		return nil, errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	}

	username := dto.Normalized()
	if err := s.repo.UpdateUsername(ctx, id, username); err != nil {
		return nil, s.notFoundOr(err, "failed to update profile")
	}

	s.logger.Info("username updated", "user_id", id)
	return &UsernameUpdate{ID: id, Username: username}, nil
}

func (s *Service) notFoundOr(err error, message string) error {
	if stderrors.Is(err, ErrNotFound) {
		return errors.NewNotFoundError("user not found", errors.ErrCodeUserNotFound)
	}
	s.logger.Error(message, "error", err)
	return errors.NewInternalError(message, err)
}
