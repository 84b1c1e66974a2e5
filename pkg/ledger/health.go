// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the ledger's store is reachable.
// A nil client (memory backend) is always healthy.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Check pings Redis.
func (h *HealthChecker) Check(ctx context.Context) error {
	if h.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrStorage, err)
	}
	return nil
}

// Watch runs Check every interval and reports transitions to onChange,
// starting with the first result. It returns when ctx is done.
func (h *HealthChecker) Watch(ctx context.Context, interval time.Duration, onChange func(healthy bool)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	first := true
	var last bool
	for {
		err := h.Check(ctx)
		healthy := err == nil
		if first || healthy != last {
			if healthy {
				logrus.Infof("ledger store healthy")
			} else {
				logrus.Errorf("ledger store unhealthy: %v", err)
			}
			onChange(healthy)
			first = false
			last = healthy
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
