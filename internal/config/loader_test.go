// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
)

func validConfig() *Config {
	return &Config{
		HTTPPort:      8000,
		GRPCPort:      6565,
		MetricsPort:   8080,
		LogLevel:      "info",
		LedgerBackend: LedgerBackendRedis,
		StatsFile:     "data/visitor_stats.json",
		StatsTimeout:  5 * time.Second,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "memory")
	t.Setenv("STATS_URL", "http://portal.local/api/visitor-stats")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		t.Fatalf("env.Parse() error = %v", err)
	}

	if cfg.HTTPPort != 8000 || cfg.GRPCPort != 6565 || cfg.MetricsPort != 8080 {
		t.Errorf("unexpected default ports: %d %d %d", cfg.HTTPPort, cfg.GRPCPort, cfg.MetricsPort)
	}
	if cfg.LedgerBackend != LedgerBackendMemory {
		t.Errorf("LedgerBackend = %q, want memory", cfg.LedgerBackend)
	}
	if !cfg.EnabledDefault {
		t.Error("EnabledDefault should default to true")
	}
	if cfg.StatsTimeout != 5*time.Second {
		t.Errorf("StatsTimeout = %s, want 5s", cfg.StatsTimeout)
	}
	if cfg.NotifyChannel != "achievements:events" {
		t.Errorf("NotifyChannel = %q", cfg.NotifyChannel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.GRPCPort = 70000 },
			wantErr: "GRPC_PORT",
		},
		{
			name:    "port collision",
			mutate:  func(c *Config) { c.HTTPPort = c.MetricsPort },
			wantErr: "both use port",
		},
		{
			name:    "unknown ledger backend",
			mutate:  func(c *Config) { c.LedgerBackend = "sqlite" },
			wantErr: "LEDGER_BACKEND",
		},
		{
			name:    "stats url without scheme",
			mutate:  func(c *Config) { c.StatsURL = "portal.local/api" },
			wantErr: "STATS_URL",
		},
		{
			name:    "no stats source",
			mutate:  func(c *Config) { c.StatsFile = "" },
			wantErr: "STATS_URL or STATS_FILE",
		},
		{
			name:    "zero stats timeout",
			mutate:  func(c *Config) { c.StatsTimeout = 0 },
			wantErr: "STATS_TIMEOUT",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
