package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, userID int64) ([]*Category, error)
	Create(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error)
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	owner, appErr := h.Owner(r, nil)
	if appErr != nil {
		h.WriteError(w, appErr)
		return
	}

	categories, err := h.Service.List(r.Context(), owner)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
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

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
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
