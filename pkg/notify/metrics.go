package notify

import (
	"context"

	"github.com/AccelByte/extend-visitor-achievements/pkg/metrics"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/theme"
)

// MetricsListener counts unlocks and theme changes.
type MetricsListener struct {
	catalog *rule.Catalog
}

// NewMetricsListener creates a metrics listener. The catalog maps a theme
// back to the rule that owns it for the theme change label.
func NewMetricsListener(catalog *rule.Catalog) *MetricsListener {
	return &MetricsListener{catalog: catalog}
}

func (m *MetricsListener) OnNewUnlock(_ context.Context, _ string, r rule.AchievementRule) error {
	metrics.UnlocksTotal.WithLabelValues(r.ID).Inc()
	return nil
}

func (m *MetricsListener) OnThemeChanged(_ context.Context, _ string, t rule.ThemeSpec) error {
	metrics.ThemeChangesTotal.WithLabelValues(m.owner(t)).Inc()
	return nil
}

func (m *MetricsListener) owner(t rule.ThemeSpec) string {
	if t == theme.Default {
		return "default"
	}
	for _, r := range m.catalog.AllRules() {
		if r.Theme == t {
			return r.ID
		}
	}
	return "unknown"
}
