// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Ledger backends.
const (
	LedgerBackendRedis  = "redis"
	LedgerBackendMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"VisitorAchievements"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// RequestTimeout bounds every HTTP API request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// ============================================================
	// Ledger configuration
	// ============================================================
	// LedgerBackend selects where unlocks are kept: "redis" or "memory".
	LedgerBackend   string `env:"LEDGER_BACKEND" envDefault:"redis"`
	LedgerKeyPrefix string `env:"LEDGER_KEY_PREFIX"`
	// EnabledDefault applies until the achievementsEnabled flag is first stored.
	EnabledDefault bool `env:"ACHIEVEMENTS_ENABLED_DEFAULT" envDefault:"true"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Rule catalog
	// ============================================================
	// CatalogPath points at a YAML catalog. Empty uses the built-in table.
	CatalogPath string `env:"CATALOG_PATH"`

	// ============================================================
	// Stats source
	// ============================================================
	// StatsURL is the portal's stats endpoint. When empty, StatsFile is read.
	StatsURL        string        `env:"STATS_URL"`
	StatsFile       string        `env:"STATS_FILE" envDefault:"data/visitor_stats.json"`
	StatsTimeout    time.Duration `env:"STATS_TIMEOUT" envDefault:"5s"`
	StatsMaxRetries uint64        `env:"STATS_MAX_RETRIES" envDefault:"2"`

	// ============================================================
	// Notifications
	// ============================================================
	// NotifyChannel is the Redis pub/sub channel for unlock events.
	// Empty disables publishing.
	NotifyChannel string `env:"NOTIFY_CHANNEL" envDefault:"achievements:events"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	// ZipkinEndpoint enables span export when set,
	// e.g. http://localhost:9411/api/v2/spans
	ZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
}

// RedisAddr returns the host:port of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
