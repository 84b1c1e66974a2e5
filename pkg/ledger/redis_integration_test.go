// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package ledger

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// Run with: go test -tags integration ./pkg/ledger/...
// Requires: Redis running on REDIS_ADDR (default localhost:6379)
func TestRedisLedger_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	prefix := fmt.Sprintf("it-%d:", time.Now().UnixNano())
	l := NewRedisLedger(client, RedisLedgerConfig{KeyPrefix: prefix, RuleIDs: testRuleIDs, EnabledDefault: true})
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})

	isNew, err := l.MarkUnlocked(ctx, "visitor", "first_visit")
	if err != nil || !isNew {
		t.Fatalf("MarkUnlocked() = %v, %v", isNew, err)
	}
	isNew, err = l.MarkUnlocked(ctx, "visitor", "first_visit")
	if err != nil || isNew {
		t.Fatalf("repeat MarkUnlocked() = %v, %v", isNew, err)
	}

	ids, err := l.UnlockedRuleIDs(ctx, "visitor")
	if err != nil || len(ids) != 1 {
		t.Fatalf("UnlockedRuleIDs() = %v, %v", ids, err)
	}

	if err := l.SetAchievementsEnabled(ctx, false); err != nil {
		t.Fatalf("SetAchievementsEnabled() error = %v", err)
	}
	if enabled, _ := l.AchievementsEnabled(ctx); enabled {
		t.Error("flag did not persist")
	}

	if err := NewHealthChecker(client).Check(ctx); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}
