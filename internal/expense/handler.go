package expense

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, userID int64) ([]*Expense, error)
	Create(ctx context.Context, userID int64, dto CreateExpenseDTO) (*Expense, error)
	Update(ctx context.Context, id, userID int64, dto UpdateExpenseDTO) (*Expense, error)
	Delete(ctx context.Context, id, userID int64) error
	Summary(ctx context.Context, userID int64, from, to string) (*Summary, error)
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

func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	expenses, err := h.Service.List(r.Context(), owner)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, expenses)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	q := r.URL.Query()
	summary, err := h.Service.Summary(r.Context(), owner, q.Get("from"), q.Get("to"))
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, summary)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
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

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, appErr := h.PathID(r, "id")
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	var dto UpdateExpenseDTO
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

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
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
