// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const unlockedValue = "true"

// RedisLedgerConfig configures a RedisLedger.
type RedisLedgerConfig struct {
	// KeyPrefix is prepended to every key. Empty keeps the browser-compatible
	// layout {ruleId}_{visitorId}.
	KeyPrefix string
	// RuleIDs is the key space UnlockedRuleIDs scans, normally the catalog ids.
	RuleIDs []string
	// EnabledDefault is returned while the enabled flag has never been stored.
	EnabledDefault bool
}

// RedisLedger implements Ledger using Redis.
// Unlock keys carry no TTL: the ledger only grows.
type RedisLedger struct {
	client *redis.Client
	cfg    RedisLedgerConfig
}

// NewRedisLedger creates a new Redis-backed ledger.
func NewRedisLedger(client *redis.Client, cfg RedisLedgerConfig) *RedisLedger {
	return &RedisLedger{
		client: client,
		cfg:    cfg,
	}
}

func (r *RedisLedger) key(visitorID, ruleID string) string {
	return MakeKey(r.cfg.KeyPrefix, visitorID, ruleID)
}

// IsUnlocked reports whether the rule is unlocked for the visitor.
func (r *RedisLedger) IsUnlocked(ctx context.Context, visitorID, ruleID string) (bool, error) {
	val, err := r.client.Get(ctx, r.key(visitorID, ruleID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logrus.Errorf("failed to read unlock %s for visitor %s: %v", ruleID, visitorID, err)
		return false, fmt.Errorf("%w: get %s: %v", ErrStorage, ruleID, err)
	}

	return val == unlockedValue, nil
}

// MarkUnlocked unlocks the rule with SETNX, so exactly one caller ever
// observes the transition for a given pair.
func (r *RedisLedger) MarkUnlocked(ctx context.Context, visitorID, ruleID string) (bool, error) {
	created, err := r.client.SetNX(ctx, r.key(visitorID, ruleID), unlockedValue, 0).Result()
	if err != nil {
		logrus.Errorf("failed to mark %s unlocked for visitor %s: %v", ruleID, visitorID, err)
		return false, fmt.Errorf("%w: setnx %s: %v", ErrStorage, ruleID, err)
	}

	if created {
		logrus.Infof("unlocked %s for visitor %s", ruleID, visitorID)
	} else {
		logrus.Debugf("%s already unlocked for visitor %s", ruleID, visitorID)
	}
	return created, nil
}

// UnlockedRuleIDs reads every configured rule key for the visitor in one MGET.
func (r *RedisLedger) UnlockedRuleIDs(ctx context.Context, visitorID string) (map[string]struct{}, error) {
	unlocked := make(map[string]struct{})
	if len(r.cfg.RuleIDs) == 0 {
		return unlocked, nil
	}

	keys := make([]string, len(r.cfg.RuleIDs))
	for i, id := range r.cfg.RuleIDs {
		keys[i] = r.key(visitorID, id)
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		logrus.Errorf("failed to read unlocks for visitor %s: %v", visitorID, err)
		return nil, fmt.Errorf("%w: mget: %v", ErrStorage, err)
	}

	for i, v := range vals {
		if s, ok := v.(string); ok && s == unlockedValue {
			unlocked[r.cfg.RuleIDs[i]] = struct{}{}
		}
	}

	return unlocked, nil
}

// AchievementsEnabled reads the global enabled flag.
func (r *RedisLedger) AchievementsEnabled(ctx context.Context) (bool, error) {
	val, err := r.client.Get(ctx, r.cfg.KeyPrefix+EnabledKey).Result()
	if err == redis.Nil {
		return r.cfg.EnabledDefault, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrStorage, EnabledKey, err)
	}

	enabled, err := strconv.ParseBool(val)
	if err != nil {
		logrus.Warnf("ignoring malformed %s value %q", EnabledKey, val)
		return r.cfg.EnabledDefault, nil
	}
	return enabled, nil
}

// SetAchievementsEnabled stores the global enabled flag.
func (r *RedisLedger) SetAchievementsEnabled(ctx context.Context, enabled bool) error {
	if err := r.client.Set(ctx, r.cfg.KeyPrefix+EnabledKey, strconv.FormatBool(enabled), 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStorage, EnabledKey, err)
	}

	logrus.Infof("achievements enabled set to %t", enabled)
	return nil
}
