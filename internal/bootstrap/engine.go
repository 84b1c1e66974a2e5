// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"net/http"

	"github.com/AccelByte/extend-visitor-achievements/internal/config"
	"github.com/AccelByte/extend-visitor-achievements/pkg/achievement"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/AccelByte/extend-visitor-achievements/pkg/notify"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// InitSource creates the stats source: the portal endpoint when STATS_URL is
// set, the portal's stats file otherwise.
func InitSource(cfg *config.Config) snapshot.Source {
	if cfg.StatsURL == "" {
		logrus.Infof("reading visitor stats from %s", cfg.StatsFile)
		return snapshot.NewFileSource(cfg.StatsFile)
	}

	logrus.Infof("fetching visitor stats from %s", cfg.StatsURL)
	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	return snapshot.NewHTTPSource(client, snapshot.HTTPSourceConfig{
		URL:        cfg.StatsURL,
		Timeout:    cfg.StatsTimeout,
		MaxRetries: cfg.StatsMaxRetries,
	})
}

// InitListener builds the notification fan-out. The Redis publisher is only
// added when a client and channel are available.
func InitListener(cfg *config.Config, client *redis.Client, catalog *rule.Catalog) achievement.Listener {
	listeners := []achievement.Listener{
		notify.NewLogListener(logrus.StandardLogger()),
		notify.NewMetricsListener(catalog),
	}
	if client != nil && cfg.NotifyChannel != "" {
		listeners = append(listeners, notify.NewRedisPublisher(client, notify.RedisPublisherConfig{
			Channel: cfg.NotifyChannel,
		}))
		logrus.Infof("publishing achievement events to %s", cfg.NotifyChannel)
	}

	fanout := notify.NewFanout(listeners...)
	logrus.Infof("registered %d achievement listeners", fanout.Count())
	return fanout
}

// InitEngine wires the achievement engine.
func InitEngine(catalog *rule.Catalog, l ledger.Ledger, source snapshot.Source, listener achievement.Listener) *achievement.Engine {
	engine := achievement.NewEngine(catalog, l, source, listener)
	logrus.Infof("initialized achievement engine")
	return engine
}
