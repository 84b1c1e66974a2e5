package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AccelByte/extend-visitor-achievements/pkg/achievement"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	// URL parameter carrying the visitor id
	visitorIDParam = "visitorID"

	// Upper bound on posted snapshot documents
	maxSnapshotBytes = 8 << 20
)

// Engine is the part of the achievement engine the HTTP API drives.
type Engine interface {
	Refresh(ctx context.Context, visitorID string) (*achievement.Result, error)
	Evaluate(ctx context.Context, snap *snapshot.StatSnapshot) (*achievement.Result, error)
	Badges(ctx context.Context, visitorID string) ([]rule.AchievementRule, error)
	ActiveTheme(ctx context.Context, visitorID string) (rule.ThemeSpec, error)
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}

// Achievements serves the achievement API for the presentation layer.
type Achievements struct {
	engine Engine
}

// NewAchievements creates the achievement API handler.
func NewAchievements(engine Engine) *Achievements {
	return &Achievements{engine: engine}
}

// Routes registers the API on r.
func (h *Achievements) Routes(r chi.Router) {
	r.Route("/visitors/{"+visitorIDParam+"}", func(r chi.Router) {
		r.Post("/refresh", h.refresh)
		r.Post("/evaluate", h.evaluate)
		r.Get("/achievements", h.achievements)
		r.Get("/theme", h.theme)
	})

	r.Get("/settings/enabled", h.getEnabled)
	r.Put("/settings/enabled", h.putEnabled)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("failed to encode response: %v", err)
	}
}
