package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks    map[string]HealthCheck
	version   string
	startedAt time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler checks the database and, when the queued notifier is in
// use, the broker connection. A nil dependency is reported as not configured.
func NewHealthHandler(db Pinger, rabbitMQ *amqp091.Connection, version string) *HealthHandler {
	h := &HealthHandler{
		checks:    make(map[string]HealthCheck),
		version:   version,
		startedAt: time.Now(),
	}

	if db != nil {
		h.checks["database"] = db.PingContext
	} else {
		h.checks["database"] = nil
	}

	if rabbitMQ != nil {
		h.checks["rabbitmq"] = func(context.Context) error {
			if rabbitMQ.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	} else {
		h.checks["rabbitmq"] = nil
	}

	return h
}

// Handle answers GET /health: 200 while every configured dependency responds,
// 503 otherwise.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	status, code := "healthy", http.StatusOK
	for _, name := range names {
		check := h.checks[name]
		if check == nil {
			deps[name] = "not configured"
			continue
		}
		if err := check(ctx); err != nil {
			deps[name] = "unhealthy: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "healthy"
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.version,
		Uptime:       time.Since(h.startedAt).Round(time.Second).String(),
		Dependencies: deps,
	})
}
