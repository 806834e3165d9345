// Package diag exposes device diagnostics over HTTP. The returned mux
// serves a small JSON API that reports the device description, its
// current state and task statistics, for wiring into an operational
// endpoint next to the embedding application's own handlers.
package diag

import (
	"encoding/json"
	"net/http"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/core"
)

type DeviceInfo struct {
	Backend     string                  `json:"backend"`
	Description *core.DeviceDescription `json:"description,omitempty"`
	State       string                  `json:"state"`
}

// NewServeMux returns an *http.ServeMux serving the diagnostics API for
// the given backend under /api.
func NewServeMux(b backend.Backend) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/device", func(w http.ResponseWriter, r *http.Request) {
		// Only support GET requests
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		state, err := b.State(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		desc, err := b.DeviceDescription(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, &DeviceInfo{
			Backend:     b.Name(),
			Description: desc,
			State:       state.String(),
		})
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		stats, err := b.GetStats(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		writeJSON(w, stats)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
