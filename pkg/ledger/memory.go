package ledger

import (
	"context"
	"sync"
)

// MemoryLedger is an in-process Ledger. State is lost on restart.
type MemoryLedger struct {
	mu       sync.Mutex
	unlocked map[string]map[string]struct{}
	enabled  bool
}

// NewMemoryLedger creates an empty ledger with the given enabled flag.
func NewMemoryLedger(enabled bool) *MemoryLedger {
	return &MemoryLedger{
		unlocked: make(map[string]map[string]struct{}),
		enabled:  enabled,
	}
}

func (m *MemoryLedger) IsUnlocked(_ context.Context, visitorID, ruleID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.unlocked[visitorID][ruleID]
	return ok, nil
}

func (m *MemoryLedger) MarkUnlocked(_ context.Context, visitorID, ruleID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rules, ok := m.unlocked[visitorID]
	if !ok {
		rules = make(map[string]struct{})
		m.unlocked[visitorID] = rules
	}
	if _, done := rules[ruleID]; done {
		return false, nil
	}
	rules[ruleID] = struct{}{}
	return true, nil
}

func (m *MemoryLedger) UnlockedRuleIDs(_ context.Context, visitorID string) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]struct{}, len(m.unlocked[visitorID]))
	for id := range m.unlocked[visitorID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *MemoryLedger) AchievementsEnabled(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled, nil
}

func (m *MemoryLedger) SetAchievementsEnabled(_ context.Context, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
	return nil
}
