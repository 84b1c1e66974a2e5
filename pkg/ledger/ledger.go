// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ledger

import (
	"context"
	"errors"
)

// ErrStorage marks a failed read or write against the ledger's backing store.
// Callers must treat the affected rule as still locked.
var ErrStorage = errors.New("ledger storage failure")

// EnabledKey is the global flag that switches achievements on for the portal.
const EnabledKey = "achievementsEnabled"

// Ledger is the durable record of which (visitor, rule) pairs are unlocked.
// Entries are only ever added; there is no revocation.
type Ledger interface {
	// IsUnlocked reports whether the rule is unlocked for the visitor.
	IsUnlocked(ctx context.Context, visitorID, ruleID string) (bool, error)

	// MarkUnlocked unlocks the rule for the visitor. It returns true only when
	// this call performed the Locked -> Unlocked transition.
	MarkUnlocked(ctx context.Context, visitorID, ruleID string) (bool, error)

	// UnlockedRuleIDs returns every unlocked rule id for the visitor.
	UnlockedRuleIDs(ctx context.Context, visitorID string) (map[string]struct{}, error)

	// AchievementsEnabled reads the global enabled flag. A missing flag reads
	// as the ledger's configured default.
	AchievementsEnabled(ctx context.Context) (bool, error)

	// SetAchievementsEnabled stores the global enabled flag.
	SetAchievementsEnabled(ctx context.Context, enabled bool) error
}

// MakeKey returns the storage key for a (visitor, rule) pair: {ruleId}_{visitorId}.
func MakeKey(prefix, visitorID, ruleID string) string {
	return prefix + ruleID + "_" + visitorID
}
