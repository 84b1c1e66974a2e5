package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/AccelByte/extend-visitor-achievements/pkg/achievement"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/go-chi/chi/v5"
)

// AchievementsResponse is the badge list of a visitor.
type AchievementsResponse struct {
	VisitorID   string                 `json:"visitorId"`
	Badges      []rule.AchievementRule `json:"badges"`
	ActiveTheme rule.ThemeSpec         `json:"activeTheme"`
}

// ThemeResponse carries a visitor's active theme.
type ThemeResponse struct {
	VisitorID   string         `json:"visitorId"`
	ActiveTheme rule.ThemeSpec `json:"activeTheme"`
}

// refresh handles POST /visitors/{visitorID}/refresh
func (h *Achievements) refresh(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, visitorIDParam)

	res, err := h.engine.Refresh(r.Context(), visitorID)
	writeResult(w, r, res, err, true)
}

// evaluate handles POST /visitors/{visitorID}/evaluate with a stats document as body
func (h *Achievements) evaluate(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, visitorIDParam)

	snap, err := snapshot.Decode(io.LimitReader(r.Body, maxSnapshotBytes), visitorID)
	if err != nil {
		writeError(w, r, err, false)
		return
	}

	res, err := h.engine.Evaluate(r.Context(), snap)
	writeResult(w, r, res, err, false)
}

// writeResult reports a pass. A storage failure after some unlocks succeeded
// still returns the partial result, with 207 so clients can tell.
func writeResult(w http.ResponseWriter, r *http.Request, res *achievement.Result, err error, upstream bool) {
	if err != nil {
		if res != nil && errors.Is(err, ledger.ErrStorage) {
			writeJSON(w, http.StatusMultiStatus, res)
			return
		}
		writeError(w, r, err, upstream)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// achievements handles GET /visitors/{visitorID}/achievements
func (h *Achievements) achievements(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, visitorIDParam)

	badges, err := h.engine.Badges(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, err, false)
		return
	}

	active, err := h.engine.ActiveTheme(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, err, false)
		return
	}

	writeJSON(w, http.StatusOK, AchievementsResponse{
		VisitorID:   visitorID,
		Badges:      badges,
		ActiveTheme: active,
	})
}

// theme handles GET /visitors/{visitorID}/theme
func (h *Achievements) theme(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, visitorIDParam)

	active, err := h.engine.ActiveTheme(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, err, false)
		return
	}

	writeJSON(w, http.StatusOK, ThemeResponse{VisitorID: visitorID, ActiveTheme: active})
}
