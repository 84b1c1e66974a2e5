package achievement

import (
	"context"

	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
)

// Listener receives the events the presentation layer renders.
// Errors are logged by the engine and never fail an evaluation.
type Listener interface {
	// OnNewUnlock is called once per newly unlocked rule, in catalog order.
	OnNewUnlock(ctx context.Context, visitorID string, r rule.AchievementRule) error

	// OnThemeChanged is called after a pass whose unlocks changed the active theme.
	OnThemeChanged(ctx context.Context, visitorID string, theme rule.ThemeSpec) error
}

type noopListener struct{}

func (noopListener) OnNewUnlock(context.Context, string, rule.AchievementRule) error { return nil }

func (noopListener) OnThemeChanged(context.Context, string, rule.ThemeSpec) error { return nil }
