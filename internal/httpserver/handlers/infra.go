package handlers

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Mode   string `json:"mode,omitempty"`
	Count  *int   `json:"count,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each component.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := d.Board.Len()
		listeners := d.Sessions.Subscribers()

		components := map[string]componentStatus{
			"backend":  checkBackend(r.Context(), d),
			"views":    {OK: true, Count: &views},
			"sessions": {OK: true, Mode: "bearer-jwt", Count: &listeners},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	if b, ok := components["backend"]; ok && !b.OK {
		return "critical"
	}
	return "ok"
}

func checkBackend(ctx context.Context, d deps.Deps) componentStatus {
	if d.Pinger == nil {
		return componentStatus{OK: false, Mode: d.Backend, Error: "backend not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.Pinger.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Backend,
			Impact: "links-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.Backend}
}
