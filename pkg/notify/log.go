package notify

import (
	"context"

	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/sirupsen/logrus"
)

// LogListener writes a structured log line per event.
type LogListener struct {
	logger logrus.FieldLogger
}

// NewLogListener creates a log listener. A nil logger uses the standard logger.
func NewLogListener(logger logrus.FieldLogger) *LogListener {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) OnNewUnlock(_ context.Context, visitorID string, r rule.AchievementRule) error {
	l.logger.WithFields(logrus.Fields{
		"visitorID": visitorID,
		"ruleID":    r.ID,
		"icon":      r.Icon,
	}).Infof("achievement unlocked: %s (%s)", r.Name, r.Description)
	return nil
}

func (l *LogListener) OnThemeChanged(_ context.Context, visitorID string, theme rule.ThemeSpec) error {
	l.logger.WithFields(logrus.Fields{
		"visitorID":  visitorID,
		"background": theme.Background,
		"text":       theme.Text,
	}).Info("active theme changed")
	return nil
}
