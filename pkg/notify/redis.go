package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Event types published on the notification channel.
const (
	EventNewUnlock    = "new_unlock"
	EventThemeChanged = "theme_changed"

	// DefaultChannel is the pub/sub channel presentation clients subscribe to.
	DefaultChannel = "achievements:events"
)

// Event is the JSON message published per engine event.
type Event struct {
	Type      string                `json:"type"`
	VisitorID string                `json:"visitorId"`
	Rule      *rule.AchievementRule `json:"rule,omitempty"`
	Theme     *rule.ThemeSpec       `json:"theme,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// RedisPublisherConfig configures a RedisPublisher.
type RedisPublisherConfig struct {
	Channel string
}

// RedisPublisher publishes engine events on a Redis pub/sub channel.
type RedisPublisher struct {
	client *redis.Client
	cfg    RedisPublisherConfig
}

// NewRedisPublisher creates a new Redis publisher.
func NewRedisPublisher(client *redis.Client, cfg RedisPublisherConfig) *RedisPublisher {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	return &RedisPublisher{
		client: client,
		cfg:    cfg,
	}
}

func (p *RedisPublisher) OnNewUnlock(ctx context.Context, visitorID string, r rule.AchievementRule) error {
	return p.publish(ctx, Event{
		Type:      EventNewUnlock,
		VisitorID: visitorID,
		Rule:      &r,
		Timestamp: time.Now().UTC(),
	})
}

func (p *RedisPublisher) OnThemeChanged(ctx context.Context, visitorID string, theme rule.ThemeSpec) error {
	return p.publish(ctx, Event{
		Type:      EventThemeChanged,
		VisitorID: visitorID,
		Theme:     &theme,
		Timestamp: time.Now().UTC(),
	})
}

func (p *RedisPublisher) publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", ev.Type, err)
	}

	if err := p.client.Publish(ctx, p.cfg.Channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}

	logrus.Debugf("published %s event for visitor %s on %s", ev.Type, ev.VisitorID, p.cfg.Channel)
	return nil
}
