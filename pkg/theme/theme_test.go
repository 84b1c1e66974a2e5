package theme

import (
	"testing"

	"github.com/AccelByte/extend-visitor-achievements/pkg/common"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
)

func TestResolve(t *testing.T) {
	catalog := rule.DefaultCatalog()
	get := func(id string) rule.ThemeSpec {
		r, _ := catalog.Get(id)
		return r.Theme
	}

	tests := []struct {
		name     string
		unlocked []string
		want     rule.ThemeSpec
	}{
		{"nothing unlocked", nil, Default},
		{"first visit only", []string{rule.FirstVisitID}, get(rule.FirstVisitID)},
		{"highest threshold wins", []string{rule.FirstVisitID, rule.SuperFanID, rule.FrequentVisitorID}, get(rule.SuperFanID)},
		{"order of the set does not matter", []string{rule.PowerUserID, rule.FirstVisitID}, get(rule.PowerUserID)},
		{"tie goes to the earlier rule", []string{rule.DesktopDevoteeID, rule.FrequentVisitorID}, get(rule.FrequentVisitorID)},
		{"unknown ids are ignored", []string{"retired_badge"}, Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(common.SetOf(tt.unlocked...), catalog); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveRule_TieBreak(t *testing.T) {
	catalog, err := rule.NewCatalog(
		rule.AchievementRule{ID: "a", Threshold: rule.Threshold(50), Theme: rule.ThemeSpec{Background: "bg-a"}},
		rule.AchievementRule{ID: "b", Threshold: rule.Threshold(50), Theme: rule.ThemeSpec{Background: "bg-b"}},
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	r := ResolveRule(common.SetOf("b", "a"), catalog)
	if r == nil || r.ID != "a" {
		t.Fatalf("ResolveRule() = %v, want a", r)
	}
	if ResolveRule(nil, catalog) != nil {
		t.Error("ResolveRule(nil) should be nil")
	}
}
