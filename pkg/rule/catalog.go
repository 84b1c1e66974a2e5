package rule

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrConfig marks a catalog that cannot be used, e.g. two rules sharing an id.
var ErrConfig = errors.New("invalid achievement catalog")

// Catalog is the ordered, immutable table of achievement rules.
// Declaration order is significant: it orders evaluation results and breaks
// ties when resolving the active theme.
type Catalog struct {
	rules []AchievementRule
	index map[string]int
}

// NewCatalog builds a catalog from rules in declaration order.
// Returns an error wrapping ErrConfig if an id is empty or repeated, or if a
// rule carries an unknown period, scope or a negative threshold.
func NewCatalog(rules ...AchievementRule) (*Catalog, error) {
	c := &Catalog{
		rules: make([]AchievementRule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}

	for i, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: rule at position %d has empty id", ErrConfig, i)
		}
		if _, exists := c.index[r.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate rule id %s", ErrConfig, r.ID)
		}
		if r.Period == "" {
			r.Period = PeriodNone
		}
		if r.DeviceScope == "" {
			r.DeviceScope = ScopeAny
		}
		if err := checkRule(r); err != nil {
			return nil, err
		}

		if r.Threshold != nil {
			r.Threshold = Threshold(*r.Threshold)
		}
		c.index[r.ID] = len(c.rules)
		c.rules = append(c.rules, r)
	}

	logrus.Debugf("built achievement catalog with %d rules", len(c.rules))
	return c, nil
}

func checkRule(r AchievementRule) error {
	switch r.Period {
	case PeriodNone, PeriodMonthly:
	default:
		return fmt.Errorf("%w: rule %s has unknown period %q", ErrConfig, r.ID, r.Period)
	}

	switch r.DeviceScope {
	case ScopeAny, ScopeMobile, ScopeDesktop:
	default:
		return fmt.Errorf("%w: rule %s has unknown device scope %q", ErrConfig, r.ID, r.DeviceScope)
	}

	if r.Threshold != nil && *r.Threshold < 0 {
		return fmt.Errorf("%w: rule %s has negative threshold %d", ErrConfig, r.ID, *r.Threshold)
	}
	if r.Threshold == nil && r.DeviceScope != ScopeAny {
		return fmt.Errorf("%w: device scoped rule %s needs a threshold", ErrConfig, r.ID)
	}

	return nil
}

// AllRules returns the rules in declaration order.
// The returned slice is a copy; the catalog itself cannot be mutated.
func (c *Catalog) AllRules() []AchievementRule {
	out := make([]AchievementRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Get returns the rule with the given id.
func (c *Catalog) Get(ruleID string) (AchievementRule, bool) {
	i, ok := c.index[ruleID]
	if !ok {
		return AchievementRule{}, false
	}
	return c.rules[i], true
}

// Position returns the declaration index of a rule, or -1 if unknown.
func (c *Catalog) Position(ruleID string) int {
	if i, ok := c.index[ruleID]; ok {
		return i
	}
	return -1
}

// IDs returns the rule ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.rules))
	for i, r := range c.rules {
		ids[i] = r.ID
	}
	return ids
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}
