// Package notify delivers engine events to the presentation layer.
package notify

import (
	"context"
	"errors"

	"github.com/AccelByte/extend-visitor-achievements/pkg/achievement"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/sirupsen/logrus"
)

// Fanout forwards every event to each listener in order.
// A failing listener does not stop delivery to the ones after it.
type Fanout struct {
	listeners []achievement.Listener
}

// NewFanout creates a fan-out over listeners. Nil entries are dropped.
func NewFanout(listeners ...achievement.Listener) *Fanout {
	f := &Fanout{}
	for _, l := range listeners {
		if l != nil {
			f.listeners = append(f.listeners, l)
		}
	}
	return f
}

// Count returns the number of listeners.
func (f *Fanout) Count() int {
	return len(f.listeners)
}

func (f *Fanout) OnNewUnlock(ctx context.Context, visitorID string, r rule.AchievementRule) error {
	var errs []error
	for _, l := range f.listeners {
		if err := l.OnNewUnlock(ctx, visitorID, r); err != nil {
			logrus.Errorf("listener %T failed on unlock %s: %v", l, r.ID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) OnThemeChanged(ctx context.Context, visitorID string, theme rule.ThemeSpec) error {
	var errs []error
	for _, l := range f.listeners {
		if err := l.OnThemeChanged(ctx, visitorID, theme); err != nil {
			logrus.Errorf("listener %T failed on theme change: %v", l, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ achievement.Listener = (*Fanout)(nil)
	_ achievement.Listener = (*LogListener)(nil)
	_ achievement.Listener = (*MetricsListener)(nil)
	_ achievement.Listener = (*RedisPublisher)(nil)
)
