// Package achievement ties the rule evaluator, the unlock ledger and the
// theme resolver into one engine instance per deployment.
package achievement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-visitor-achievements/pkg/common"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/AccelByte/extend-visitor-achievements/pkg/metrics"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/AccelByte/extend-visitor-achievements/pkg/theme"
	"golang.org/x/sync/singleflight"
)

// Result is the outcome of one evaluation pass for a visitor.
// NewlyUnlocked and Unlocked are in catalog order. Disabled is set when the
// pass was skipped because achievements are switched off.
type Result struct {
	VisitorID     string                 `json:"visitorId"`
	NewlyUnlocked []rule.AchievementRule `json:"newlyUnlocked"`
	Unlocked      []string               `json:"unlocked"`
	ActiveTheme   rule.ThemeSpec         `json:"activeTheme"`
	ThemeRuleID   string                 `json:"themeRuleId,omitempty"`
	ThemeChanged  bool                   `json:"themeChanged"`
	Disabled      bool                   `json:"disabled,omitempty"`
}

// Engine evaluates visitor statistics against the catalog and keeps the
// unlock ledger. It holds no global state; every dependency is injected.
type Engine struct {
	catalog   *rule.Catalog
	ledger    ledger.Ledger
	source    snapshot.Source
	evaluator *rule.Evaluator
	listener  Listener

	inflight singleflight.Group
}

// NewEngine creates a new achievement engine. listener may be nil.
func NewEngine(catalog *rule.Catalog, l ledger.Ledger, source snapshot.Source, listener Listener) *Engine {
	if listener == nil {
		listener = noopListener{}
	}

	return &Engine{
		catalog:   catalog,
		ledger:    l,
		source:    source,
		evaluator: rule.NewEvaluator(catalog, l),
		listener:  listener,
	}
}

// Refresh fetches the visitor's statistics and evaluates them.
//
// Concurrent calls for the same visitor collapse into one pass: later callers
// wait for the in-flight pass and share its result, which must be treated as
// read-only. The pass runs under the first caller's context. If the fetch is
// abandoned, no ledger write has happened.
func (e *Engine) Refresh(ctx context.Context, visitorID string) (*Result, error) {
	if visitorID == "" {
		return nil, fmt.Errorf("%w: missing visitor id", snapshot.ErrInvalidSnapshot)
	}

	v, err, shared := e.inflight.Do(visitorID, func() (interface{}, error) {
		return e.refresh(ctx, visitorID)
	})
	if shared {
		metrics.CoalescedRefreshesTotal.Inc()
	}

	res, _ := v.(*Result)
	return res, err
}

func (e *Engine) refresh(ctx context.Context, visitorID string) (*Result, error) {
	start := time.Now()
	scope := common.StartScope(ctx, "Engine.Refresh").WithVisitor(visitorID)
	defer scope.Finish()

	enabled, err := e.ledger.AchievementsEnabled(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		observe(metrics.OutcomeStorageError, start)
		return nil, err
	}
	if !enabled {
		scope.Log.Debug("achievements disabled, skipping refresh")
		observe(metrics.OutcomeDisabled, start)
		return &Result{VisitorID: visitorID, ActiveTheme: theme.Default, Disabled: true}, nil
	}

	snap, err := e.source.FetchStats(scope.Ctx, visitorID)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Warnf("failed to fetch stats: %v", err)
		outcome := metrics.OutcomeInvalidSnapshot
		if ctx.Err() != nil {
			outcome = metrics.OutcomeError
		}
		observe(outcome, start)
		return nil, err
	}
	scope.TraceEvent("snapshot fetched")

	return e.evaluate(scope, snap)
}

// Evaluate runs one pass over a snapshot that is already in hand.
// Callers must not evaluate the same visitor concurrently; Refresh does that
// serialization itself.
func (e *Engine) Evaluate(ctx context.Context, snap *snapshot.StatSnapshot) (*Result, error) {
	scope := common.StartScope(ctx, "Engine.Evaluate")
	defer scope.Finish()

	if snap != nil {
		scope.WithVisitor(snap.VisitorID)
	}
	return e.evaluate(scope, snap)
}

func (e *Engine) evaluate(scope *common.Scope, snap *snapshot.StatSnapshot) (*Result, error) {
	start := time.Now()
	ctx := scope.Ctx

	if err := snap.Validate(); err != nil {
		scope.TraceError(err)
		observe(metrics.OutcomeInvalidSnapshot, start)
		return nil, err
	}
	visitorID := snap.VisitorID

	before, err := e.ledger.UnlockedRuleIDs(ctx, visitorID)
	if err != nil {
		scope.TraceError(err)
		observe(metrics.OutcomeStorageError, start)
		return nil, err
	}
	themeBefore := theme.ResolveRule(before, e.catalog)
	scope.Log.Debugf("unlocked before pass: %v", common.SortedKeys(before))

	newly, evalErr := e.evaluator.Evaluate(ctx, snap)
	if evalErr != nil {
		scope.TraceError(evalErr)
		if errors.Is(evalErr, snapshot.ErrInvalidSnapshot) {
			observe(metrics.OutcomeInvalidSnapshot, start)
			return nil, evalErr
		}
	}

	after := make(map[string]struct{}, len(before)+len(newly))
	for id := range before {
		after[id] = struct{}{}
	}
	for _, r := range newly {
		after[r.ID] = struct{}{}
	}
	themeAfter := theme.ResolveRule(after, e.catalog)

	res := &Result{
		VisitorID:     visitorID,
		NewlyUnlocked: newly,
		Unlocked:      e.orderedIDs(after),
		ActiveTheme:   theme.Default,
		ThemeChanged:  ruleID(themeBefore) != ruleID(themeAfter),
	}
	if themeAfter != nil {
		res.ActiveTheme = themeAfter.Theme
		res.ThemeRuleID = themeAfter.ID
	}

	for _, r := range newly {
		if err := e.listener.OnNewUnlock(ctx, visitorID, r); err != nil {
			scope.Log.Errorf("new unlock listener failed for %s: %v", r.ID, err)
		}
	}
	if res.ThemeChanged {
		scope.Log.Infof("active theme changed to %s", res.ThemeRuleID)
		if err := e.listener.OnThemeChanged(ctx, visitorID, res.ActiveTheme); err != nil {
			scope.Log.Errorf("theme listener failed: %v", err)
		}
	}

	scope.SetAttributes("achievements.new", len(newly))
	if evalErr != nil {
		observe(metrics.OutcomeStorageError, start)
	} else {
		observe(metrics.OutcomeOK, start)
	}

	return res, evalErr
}

// UnlockedRuleIDs returns the visitor's unlocked rule ids.
func (e *Engine) UnlockedRuleIDs(ctx context.Context, visitorID string) (map[string]struct{}, error) {
	return e.ledger.UnlockedRuleIDs(ctx, visitorID)
}

// ActiveTheme resolves the visitor's theme from the ledger.
func (e *Engine) ActiveTheme(ctx context.Context, visitorID string) (rule.ThemeSpec, error) {
	unlocked, err := e.ledger.UnlockedRuleIDs(ctx, visitorID)
	if err != nil {
		return theme.Default, err
	}
	return theme.Resolve(unlocked, e.catalog), nil
}

// Badges returns the visitor's unlocked rules in catalog order.
func (e *Engine) Badges(ctx context.Context, visitorID string) ([]rule.AchievementRule, error) {
	unlocked, err := e.ledger.UnlockedRuleIDs(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	badges := make([]rule.AchievementRule, 0, len(unlocked))
	for _, r := range e.catalog.AllRules() {
		if _, ok := unlocked[r.ID]; ok {
			badges = append(badges, r)
		}
	}
	return badges, nil
}

// Enabled reports whether achievements are switched on.
func (e *Engine) Enabled(ctx context.Context) (bool, error) {
	return e.ledger.AchievementsEnabled(ctx)
}

// SetEnabled switches achievements on or off.
func (e *Engine) SetEnabled(ctx context.Context, enabled bool) error {
	return e.ledger.SetAchievementsEnabled(ctx, enabled)
}

// Catalog returns the engine's rule catalog.
func (e *Engine) Catalog() *rule.Catalog {
	return e.catalog
}

func (e *Engine) orderedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for _, id := range e.catalog.IDs() {
		if _, ok := set[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func ruleID(r *rule.AchievementRule) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func observe(outcome string, start time.Time) {
	metrics.EvaluationsTotal.WithLabelValues(outcome).Inc()
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
}
