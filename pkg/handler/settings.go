package handler

import (
	"encoding/json"
	"net/http"
)

// EnabledSetting is the body of the enabled flag endpoints.
type EnabledSetting struct {
	Enabled *bool `json:"enabled"`
}

// getEnabled handles GET /settings/enabled
func (h *Achievements) getEnabled(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.engine.Enabled(r.Context())
	if err != nil {
		writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, EnabledSetting{Enabled: &enabled})
}

// putEnabled handles PUT /settings/enabled
func (h *Achievements) putEnabled(w http.ResponseWriter, r *http.Request) {
	var body EnabledSetting
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		writeBadRequest(w, r, `body must be {"enabled": true|false}`)
		return
	}

	if err := h.engine.SetEnabled(r.Context(), *body.Enabled); err != nil {
		writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
