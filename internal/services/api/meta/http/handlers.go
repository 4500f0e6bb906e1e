// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"rolegate/internal/core/version"
	"rolegate/internal/modkit/httpkit"
	"rolegate/internal/platform/logger"
	"rolegate/internal/platform/store"
)

// Deps are the handler dependencies
// a nil check is reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	RDS         any
	// ReadyTimeout bounds all dependency pings together; zero means two seconds
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, now: time.Now}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// ReadyCheck describes a single dependency check
// Error is a fixed label; the ping cause is only logged
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		Status:  "ok",
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	checks := []ReadyCheck{check(ctx, "pg", h.deps.PG), check(ctx, "redis", h.deps.RDS)}
	overall := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			overall = "fail"
		case "skipped":
			if overall == "ok" {
				overall = "degraded"
			}
		}
	}
	out := ReadyResponse{Status: overall, Checks: checks}
	if overall == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func check(ctx context.Context, name string, dep any) ReadyCheck {
	p, ok := dep.(store.Pinger)
	if !ok || p == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	if err := p.Ping(ctx); err != nil {
		logger.C(ctx).Warn().Err(err).Str("check", name).Msg("readiness ping failed")
		return ReadyCheck{Name: name, Status: "fail", Error: "unavailable"}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
