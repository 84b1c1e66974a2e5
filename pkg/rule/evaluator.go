package rule

import (
	"context"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/sirupsen/logrus"
)

// UnlockMarker records unlocks. MarkUnlocked must return true only for the
// call that moved the pair from locked to unlocked.
type UnlockMarker interface {
	MarkUnlocked(ctx context.Context, visitorID, ruleID string) (bool, error)
}

// Evaluator checks a snapshot against every catalog rule and records the
// rules it satisfies.
type Evaluator struct {
	catalog *Catalog
	marker  UnlockMarker
}

// NewEvaluator creates a new rule evaluator.
func NewEvaluator(catalog *Catalog, marker UnlockMarker) *Evaluator {
	return &Evaluator{
		catalog: catalog,
		marker:  marker,
	}
}

// Evaluate returns the rules newly unlocked by snap, in catalog order.
//
// An invalid snapshot fails with snapshot.ErrInvalidSnapshot before any
// ledger write. A failed write leaves that rule locked; the error is joined
// into the returned error and evaluation moves on to the next rule, so the
// returned slice is meaningful even when err is non-nil.
func (e *Evaluator) Evaluate(ctx context.Context, snap *snapshot.StatSnapshot) ([]AchievementRule, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	detail, hasDetail := snap.Detail()
	if !hasDetail {
		logrus.Warnf("no visitor detail for %s, skipping device scoped rules", snap.VisitorID)
	}

	var (
		unlocked []AchievementRule
		errs     []error
	)

	for _, r := range e.catalog.rules {
		if r.Class() == ClassDevice && !hasDetail {
			continue
		}
		if !satisfied(r, snap, detail) {
			continue
		}

		isNew, err := e.marker.MarkUnlocked(ctx, snap.VisitorID, r.ID)
		if err != nil {
			logrus.Errorf("rule %s unlock failed for visitor %s: %v", r.ID, snap.VisitorID, err)
			errs = append(errs, fmt.Errorf("rule %s: %w", r.ID, err))
			continue
		}

		if isNew {
			logrus.Infof("rule %s unlocked for visitor %s", r.ID, snap.VisitorID)
			unlocked = append(unlocked, r)
		}
	}

	return unlocked, errors.Join(errs...)
}

// satisfied applies the rule's predicate. snap must be valid.
func satisfied(r AchievementRule, snap *snapshot.StatSnapshot, detail snapshot.VisitorDetail) bool {
	switch r.Class() {
	case ClassFirstVisit:
		return *snap.TotalVisits == 1
	case ClassMonthly:
		return *snap.MonthlyVisits >= *r.Threshold
	case ClassLifetime:
		return *snap.TotalVisits >= *r.Threshold
	case ClassDevice:
		if !inScope(r.DeviceScope, detail.Category()) {
			return false
		}
		return detail.Visits >= *r.Threshold
	default:
		return false
	}
}

func inScope(scope DeviceScope, category snapshot.Category) bool {
	switch scope {
	case ScopeMobile:
		return category == snapshot.CategoryMobile
	case ScopeDesktop:
		return category == snapshot.CategoryDesktop
	default:
		return true
	}
}

// Catalog returns the catalog the evaluator checks.
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}
