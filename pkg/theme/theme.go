// Package theme derives the single active theme from a visitor's unlocks.
package theme

import "github.com/AccelByte/extend-visitor-achievements/pkg/rule"

// Default is applied while a visitor has no unlocks.
var Default = rule.ThemeSpec{
	Background: "bg-white",
	Text:       "text-gray-800",
	Border:     "border-gray-200",
	Hover:      "hover:bg-gray-50",
}

// Resolve returns the theme of the highest ranked unlocked rule. Rules
// without a threshold rank as zero and ties go to the rule declared first.
// Ids missing from the catalog are ignored.
func Resolve(unlocked map[string]struct{}, catalog *rule.Catalog) rule.ThemeSpec {
	if r := ResolveRule(unlocked, catalog); r != nil {
		return r.Theme
	}
	return Default
}

// ResolveRule returns the rule whose theme is active, or nil if none is.
func ResolveRule(unlocked map[string]struct{}, catalog *rule.Catalog) *rule.AchievementRule {
	var best *rule.AchievementRule
	for _, r := range catalog.AllRules() {
		if _, ok := unlocked[r.ID]; !ok {
			continue
		}
		// strict comparison keeps the earliest rule on ties
		if best == nil || r.Rank() > best.Rank() {
			r := r
			best = &r
		}
	}
	return best
}
