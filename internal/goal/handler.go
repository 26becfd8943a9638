package goal

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/money"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, userID int64) ([]*Goal, error)
	Create(ctx context.Context, userID int64, dto CreateGoalDTO) (*Goal, error)
	Update(ctx context.Context, id, userID int64, dto UpdateGoalDTO) (*Goal, error)
	AddProgress(ctx context.Context, id, userID int64, delta money.Amount) (*Goal, error)
	TogglePin(ctx context.Context, id, userID int64) (*Goal, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	goals, err := h.Service.List(r.Context(), owner)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, goals)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var dto CreateGoalDTO
	if appErr := h.DecodeJSONBody(w, r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	owner, appErr := h.Owner(r, dto.UserID)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	created, err := h.Service.Create(r.Context(), owner, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, created)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto UpdateGoalDTO
	if appErr := h.DecodeJSONBody(w, r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	owner, appErr := h.Owner(r, dto.UserID)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, owner, dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, updated)
}

func (h *Handler) AddProgress(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto ProgressDTO
	if appErr := h.DecodeJSONBody(w, r, &dto); appErr != nil {
		h.WriteError(w, appErr)
		return
	}
	if dto.Amount == nil {
		h.WriteError(w, errors.NewValidationFieldError("amount", "amount is required", errors.ErrCodeInvalidAmount))
		return
	}

	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	updated, err := h.Service.AddProgress(r.Context(), id, owner, *dto.Amount)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, updated)
}

func (h *Handler) TogglePin(w http.ResponseWriter, r *http.Request) {
	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	updated, err := h.Service.TogglePin(r.Context(), id, owner)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, updated)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	if err := h.Service.Delete(r.Context(), id, owner); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, nil)
}
