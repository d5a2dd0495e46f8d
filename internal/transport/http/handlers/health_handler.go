package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/neubri/threads-clone/internal/logging"
)

// Pinger is implemented by the store and cache clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	deps   map[string]Pinger
	logger *logging.Logger
}

func NewHealthHandler(deps map[string]Pinger, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{deps: deps, logger: logger}
}

// Health reports ok when every dependency answers a ping within two seconds.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failing := map[string]string{}
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.WithContext(ctx).WithError(err).WithField("dependency", name).Error("health check failed")
			failing[name] = "unavailable"
		}
	}

	if len(failing) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "dependencies": failing})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
