// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	ports := []struct {
		name string
		port int
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"GRPC_PORT", c.GRPCPort},
		{"METRICS_PORT", c.MetricsPort},
	}
	seen := make(map[int]string, len(ports))
	for _, p := range ports {
		if p.port < 1 || p.port > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", p.name, p.port)
		}
		if other, dup := seen[p.port]; dup {
			return fmt.Errorf("%s and %s both use port %d", other, p.name, p.port)
		}
		seen[p.port] = p.name
	}

	switch c.LedgerBackend {
	case LedgerBackendRedis, LedgerBackendMemory:
	default:
		return fmt.Errorf("invalid LEDGER_BACKEND: %q (must be %s or %s)",
			c.LedgerBackend, LedgerBackendRedis, LedgerBackendMemory)
	}

	if c.StatsURL != "" {
		u, err := url.Parse(c.StatsURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid STATS_URL: %q", c.StatsURL)
		}
	} else if c.StatsFile == "" {
		return fmt.Errorf("one of STATS_URL or STATS_FILE is required")
	}

	if c.StatsTimeout <= 0 {
		return fmt.Errorf("invalid STATS_TIMEOUT: %s (must be positive)", c.StatsTimeout)
	}

	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d", c.RedisMaxRetries)
	}

	if c.ZipkinEndpoint != "" {
		if _, err := url.ParseRequestURI(c.ZipkinEndpoint); err != nil {
			return fmt.Errorf("invalid OTEL_EXPORTER_ZIPKIN_ENDPOINT: %w", err)
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}
