package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

const probeTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type boxCounter interface {
	CountFree(ctx context.Context) (map[domain.CapacityClass]int64, error)
}

// HealthHandler serves the liveness, readiness and full health endpoints.
type HealthHandler struct {
	db      dbPinger
	boxes   boxCounter
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, boxes boxCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, boxes: boxes, version: version}
}

// HealthResponse is the JSON body for /live, /ready and /health.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// ComponentHealth reports one dependency inside a HealthResponse.
type ComponentHealth struct {
	Status    string           `json:"status"`
	Latency   string           `json:"latency,omitempty"`
	FreeBoxes map[string]int64 `json:"free_boxes,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. The service is ready when the database
// answers a ping; box availability does not gate readiness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: database ping with latency, plus the
// count of free boxes per capacity class. An empty box pool degrades the
// report but still returns 200, since reads and cancellations keep working.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]ComponentHealth)
	overall := "ok"

	start := time.Now()
	pingErr := h.db.Ping(ctx)
	latency := time.Since(start)

	if pingErr != nil {
		components["database"] = ComponentHealth{Status: "down"}
		overall = "down"
	} else {
		components["database"] = ComponentHealth{
			Status:  "ok",
			Latency: latency.String(),
		}
	}

	if overall == "down" {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:     overall,
			Version:    h.version,
			Components: components,
			Timestamp:  time.Now(),
		})
		return
	}

	free, err := h.boxes.CountFree(ctx)
	switch {
	case err != nil:
		components["box_pool"] = ComponentHealth{Status: "down"}
		overall = "degraded"
	case len(free) == 0:
		components["box_pool"] = ComponentHealth{Status: "exhausted"}
		overall = "degraded"
	default:
		counts := make(map[string]int64, len(free))
		for class, n := range free {
			counts[string(class)] = n
		}
		components["box_pool"] = ComponentHealth{
			Status:    "ok",
			FreeBoxes: counts,
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
