package rest

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

const readinessTimeout = 2 * time.Second

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checkedAt"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	Driver     string       `json:"driver,omitempty"`
	DurationMs int64        `json:"durationMs"`
}

type HealthHandler struct {
	*transport.BaseHandler
	db *sqlx.DB
}

func NewHealthHandler(base *transport.BaseHandler, db *sqlx.DB) *HealthHandler {
	return &HealthHandler{BaseHandler: base, db: db}
}

// Liveness answers GET /health.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.WriteSuccess(w, http.StatusOK, true)
}

// Readiness answers GET /health/ready by pinging the store.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	start := time.Now()
	entry := CheckEntry{Status: HealthHealthy, Driver: h.db.DriverName()}
	if err := h.db.PingContext(ctx); err != nil {
		h.Logger.Warn("readiness check failed", "error", err)
		entry.Status = HealthUnhealthy
		entry.Message = "database unreachable"
	}
	entry.DurationMs = time.Since(start).Milliseconds()

	resp := HealthResponse{
		Status:     entry.Status,
		CheckedAt:  time.Now().UTC(),
		Components: map[string]CheckEntry{"database": entry},
	}

	if entry.Status == HealthUnhealthy {
		h.WriteJSON(w, http.StatusServiceUnavailable, struct {
			Success bool           `json:"success"`
			Data    HealthResponse `json:"data"`
		}{Success: false, Data: resp})
		return
	}
	h.WriteSuccess(w, http.StatusOK, resp)
}
