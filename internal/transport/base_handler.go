package transport

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess wraps data in the success envelope.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	h.WriteJSON(w, status, successEnvelope{Success: true, Data: data})
}

// WriteError wraps an application error in the failure envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, appErr *errors.AppError) {
	WriteErrorEnvelope(w, appErr)
}

// WriteErrorEnvelope is used by middleware that has no handler at hand.
func WriteErrorEnvelope(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: appErr})
}

// HandleServiceError maps err onto the envelope. Anything that is not an
// *AppError is reported as a generic 500 and only the cause is logged.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.From(r.Context())

	appErr, ok := errors.IsAppError(err)
	if !ok {
		log.Error("unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		h.WriteError(w, errors.NewInternalError("internal server error", nil))
		return
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", "path", r.URL.Path, "code", appErr.Code, "error", appErr.Error())
		h.WriteError(w, errors.NewInternalError(appErr.Message, nil))
		return
	}

	log.Debug("request rejected", "path", r.URL.Path, "code", appErr.Code, "message", appErr.GetDetailedMessage())
	h.WriteError(w, appErr)
}

// DecodeJSONBody decodes a single JSON object into dst. Unknown fields,
// trailing data and bodies over 1 MiB are rejected.
func (h *BaseHandler) DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) *errors.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.Is(err, io.EOF):
			return errors.NewValidationError("request body is required", errors.ErrCodeInvalidRequestBody)
		case stderrors.As(err, &maxErr):
			return errors.NewValidationError("request body too large", errors.ErrCodeInvalidRequestBody)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return errors.NewValidationError("unknown field "+field, errors.ErrCodeInvalidRequestBody)
		default:
			return errors.NewValidationError("invalid request body: "+err.Error(), errors.ErrCodeInvalidRequestBody)
		}
	}

	if dec.More() {
		return errors.NewValidationError("request body must contain a single JSON object", errors.ErrCodeInvalidRequestBody)
	}
	return nil
}

// PathID parses a positive integer URL parameter.
func (h *BaseHandler) PathID(r *http.Request, name string) (int64, *errors.AppError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("invalid "+name+": "+raw, errors.ErrCodeInvalidID)
	}
	return id, nil
}

// Caller returns the authenticated user id or an unauthenticated error.
func (h *BaseHandler) Caller(r *http.Request) (int64, *errors.AppError) {
	userID, ok := errors.UserIDFromContext(r.Context())
	if !ok {
		return 0, errors.ErrUnauthenticated
	}
	return userID, nil
}

// Owner resolves the owner filter for a request. The authenticated caller is
// always the owner; a userId supplied in the query or body is only accepted
// when it names the caller.
func (h *BaseHandler) Owner(r *http.Request, bodyUserID *int64) (int64, *errors.AppError) {
	caller, appErr := h.Caller(r)
	if appErr != nil {
		return 0, appErr
	}

	if raw := r.URL.Query().Get("userId"); raw != "" {
		supplied, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errors.NewValidationError("invalid userId: "+raw, errors.ErrCodeInvalidID)
		}
		if supplied != caller {
			return 0, errors.ErrOwnerMismatch
		}
	}

	if bodyUserID != nil && *bodyUserID != caller {
		return 0, errors.ErrOwnerMismatch
	}
	return caller, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}
