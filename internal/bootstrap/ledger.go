// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-visitor-achievements/internal/config"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitLedger creates the unlock ledger for the configured backend.
// client may be nil for the memory backend.
func InitLedger(cfg *config.Config, client *redis.Client, catalog *rule.Catalog) (ledger.Ledger, error) {
	switch cfg.LedgerBackend {
	case config.LedgerBackendMemory:
		logrus.Warn("using in-memory ledger, unlocks are lost on restart")
		return ledger.NewMemoryLedger(cfg.EnabledDefault), nil

	case config.LedgerBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis ledger requires a redis client")
		}
		logrus.Infof("using redis ledger (key prefix %q)", cfg.LedgerKeyPrefix)
		return ledger.NewRedisLedger(client, ledger.RedisLedgerConfig{
			KeyPrefix:      cfg.LedgerKeyPrefix,
			RuleIDs:        catalog.IDs(),
			EnabledDefault: cfg.EnabledDefault,
		}), nil

	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
