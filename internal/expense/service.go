package expense

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-tracker/internal/core/events"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
)

const defaultSummaryWindow = 30 * 24 * time.Hour

// Repository interface defines the data access methods for expenses
type Repository interface {
	ListByOwner(ctx context.Context, userID int64) ([]*expenseDatamodel.Expense, error)
	// GetByID, Update and Delete return ErrNotFound when the owner has no
	// such expense.
	GetByID(ctx context.Context, id, userID int64) (*expenseDatamodel.Expense, error)
	Create(ctx context.Context, expense *expenseDatamodel.Expense) error
	Update(ctx context.Context, expense *expenseDatamodel.Expense) error
	Delete(ctx context.Context, id, userID int64) error
	// Range bounds are [from, to).
	TotalsByCategory(ctx context.Context, userID int64, from, to time.Time) ([]CategoryTotal, error)
	AmountsByDate(ctx context.Context, userID int64, from, to time.Time) ([]*expenseDatamodel.Expense, error)
}

// CategoryReader resolves an owned category; nil, nil means not found.
type CategoryReader interface {
	GetByID(ctx context.Context, id, userID int64) (*categoryDatamodel.Category, error)
}

// Service handles expense business logic
type Service struct {
	repo       Repository
	categories CategoryReader
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new expense service
func NewService(repo Repository, categories CategoryReader, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:       repo,
		categories: categories,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int64) ([]*Expense, error) {
	data, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list expenses", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to list expenses", err)
	}

	expenses := make([]*Expense, 0, len(data))
	for _, e := range data {
		expenses = append(expenses, FromDataModel(e))
	}
	return expenses, nil
}

func (s *Service) Create(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	data := &expenseDatamodel.Expense{
		UserID:      userID,
		Amount:      *dto.Amount,
		Category:    strings.TrimSpace(dto.Category),
		Description: strings.TrimSpace(dto.Description),
		Date:        s.now().UTC(),
	}

	if ref := dto.categoryRef(); ref != nil {
		if err := s.linkCategory(ctx, data, *ref); err != nil {
			return nil, err
		}
	}

	if dto.Date != "" {
		date, appErr := validation.ParseDate("date", dto.Date)
		if appErr != nil {
			return nil, appErr
		}
		data.Date = date
	}

	if err := s.repo.Create(ctx, data); err != nil {
		s.logger.Error("failed to create expense", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense recorded", "expense_id", data.ID, "user_id", userID)
	event := events.NewExpenseRecorded(data.ID, userID, data.Amount.Cents(), data.Category)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", events.EventTypeExpenseRecorded, "error", err)
	}

	return FromDataModel(data), nil
}

func (s *Service) Update(ctx context.Context, id, userID int64, dto UpdateExpenseDTO) (*Expense, error) {
	if dto.ID != nil && *dto.ID != id {
		return nil, errors.NewValidationError("id in body does not match path", errors.ErrCodeInvalidID)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	data, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, s.notFoundOr(err, "failed to load expense")
	}

	if dto.Amount != nil {
		data.Amount = *dto.Amount
	}
	if ref := dto.categoryRef(); ref != nil {
		if err := s.linkCategory(ctx, data, *ref); err != nil {
			return nil, err
		}
	} else if dto.Category != nil {
		data.Category = strings.TrimSpace(*dto.Category)
		data.CategoryID = nil
	}
	if dto.Description != nil {
		data.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Date != nil {
		date, appErr := validation.ParseDate("date", *dto.Date)
		if appErr != nil {
			return nil, appErr
		}
		data.Date = date
	}

	if err := s.repo.Update(ctx, data); err != nil {
		return nil, s.notFoundOr(err, "failed to update expense")
	}
	return FromDataModel(data), nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return s.notFoundOr(err, "failed to delete expense")
	}
	return nil
}

// Summary totals the owner's expenses per category and per day. Both
// dates are inclusive; missing bounds default to the last 30 days.
func (s *Service) Summary(ctx context.Context, userID int64, fromRaw, toRaw string) (*Summary, error) {
	to := s.now().UTC().Truncate(24 * time.Hour)
	if toRaw != "" {
		parsed, appErr := validation.ParseDate("to", toRaw)
		if appErr != nil {
			return nil, appErr
		}
		to = parsed.Truncate(24 * time.Hour)
	}
	from := to.Add(-defaultSummaryWindow)
	if fromRaw != "" {
		parsed, appErr := validation.ParseDate("from", fromRaw)
		if appErr != nil {
			return nil, appErr
		}
		from = parsed.Truncate(24 * time.Hour)
	}
	if from.After(to) {
		return nil, errors.NewValidationFieldError("from", "from must not be after to", errors.ErrCodeInvalidDate)
	}
	end := to.Add(24 * time.Hour)

	var (
		byCategory []CategoryTotal
		rows       []*expenseDatamodel.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byCategory, err = s.repo.TotalsByCategory(gctx, userID, from, end)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.AmountsByDate(gctx, userID, from, end)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to summarize expenses", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to summarize expenses", err)
	}

	summary := &Summary{
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		ByCategory: byCategory,
		ByDay:      dailyTotals(rows),
	}
	if summary.ByCategory == nil {
		summary.ByCategory = []CategoryTotal{}
	}
	for _, c := range byCategory {
		summary.Total += c.Total
		summary.Count += c.Count
	}
	return summary, nil
}

func dailyTotals(rows []*expenseDatamodel.Expense) []DailyTotal {
	totals := make(map[string]money.Amount)
	for _, r := range rows {
		totals[r.Date.UTC().Format("2006-01-02")] += r.Amount
	}

	out := make([]DailyTotal, 0, len(totals))
	for day, total := range totals {
		out = append(out, DailyTotal{Day: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// linkCategory points data at an owned category and copies its name as the
// label. Unknown or foreign ids are a validation failure.
func (s *Service) linkCategory(ctx context.Context, data *expenseDatamodel.Expense, categoryID int64) error {
	cat, err := s.categories.GetByID(ctx, categoryID, data.UserID)
	if err != nil {
		s.logger.Error("failed to load category", "category_id", categoryID, "error", err)
		return errors.NewInternalError("failed to load category", err)
	}
	if cat == nil {
		return errors.NewValidationFieldError("categoryId", "category not found", errors.ErrCodeInvalidCategory)
	}
	data.CategoryID = &cat.ID
	data.Category = cat.Name
	return nil
}

func (s *Service) notFoundOr(err error, message string) error {
	if stderrors.Is(err, ErrNotFound) {
		return errors.NewNotFoundError("expense not found", errors.ErrCodeExpenseNotFound)
	}
	s.logger.Error(message, "error", err)
	return errors.NewInternalError(message, err)
}
