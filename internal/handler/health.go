package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/focusflow/internal/respond"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check failed", "error", err)
		respond.Error(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	respond.OK(w, map[string]string{"status": "ok"})
}
