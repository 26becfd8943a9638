package category

import (
	"context"
	stderrors "errors"
	"log/slog"

	"gorm.io/gorm"

	errors "github.com/frahmantamala/finance-tracker/internal"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	ListByOwner(ctx context.Context, userID int64) ([]*categoryDatamodel.Category, error)
	// GetByName and GetByID return nil, nil when nothing matches.
	GetByName(ctx context.Context, userID int64, name string) (*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id, userID int64) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
	// Delete returns ErrNotFound when the owner has no such category.
	Delete(ctx context.Context, id, userID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Category, error) {
	dataCategories, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, errors.NewInternalError("failed to list categories", err)
	}

	categories := make([]*Category, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		categories = append(categories, FromDataModel(dataCategory))
	}
	return categories, nil
}

// Create stores a category under a normalized name. The lookup gives a
// friendly message; the (user_id, name) index decides under concurrency.
func (s *Service) Create(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := dto.NormalizedName()
	existing, err := s.repo.GetByName(ctx, userID, name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err)
		return nil, errors.NewInternalError("failed to create category", err)
	}
	if existing != nil {
		return nil, duplicateName()
	}

	data := &categoryDatamodel.Category{
		UserID:      userID,
		Name:        name,
		Description: dto.Text(),
	}
	if err := s.repo.Create(ctx, data); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateName()
		}
		s.logger.Error("failed to create category", "error", err)
		return nil, errors.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", data.ID, "user_id", userID)
	return FromDataModel(data), nil
}

// Delete removes the category; expenses that referenced it keep their label.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if stderrors.Is(err, ErrNotFound) {
			return errors.NewNotFoundError("category not found", errors.ErrCodeCategoryNotFound)
		}
		s.logger.Error("failed to delete category", "category_id", id, "error", err)
		return errors.NewInternalError("failed to delete category", err)
	}
	return nil
}

func duplicateName() *errors.AppError {
	return errors.NewConflictError("similar category name found", errors.ErrCodeDuplicateCategory)
}
