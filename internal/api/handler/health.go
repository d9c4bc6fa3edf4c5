// Package handler holds the ops server's HTTP handlers.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/embebot/embebot/internal/relay"
)

var startTime = time.Now()

// HealthHandler reports liveness and relay counters.
type HealthHandler struct {
	stats *relay.Stats
}

// NewHealthHandler creates a health handler backed by the relay's counters.
func NewHealthHandler(stats *relay.Stats) *HealthHandler {
	return &HealthHandler{stats: stats}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status        string         `json:"status"`
	Timestamp     string         `json:"timestamp"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Relay         relay.Snapshot `json:"relay"`
}

// Live handles GET /health - liveness probe plus relay stats.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Relay:         h.stats.Snapshot(),
	})
}
