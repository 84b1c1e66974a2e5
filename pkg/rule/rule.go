package rule

import "fmt"

// Period is the time window a threshold rule counts visits over.
type Period string

const (
	PeriodNone    Period = "none"
	PeriodMonthly Period = "monthly"
)

// DeviceScope restricts a rule to visitors on a device category.
type DeviceScope string

const (
	ScopeAny     DeviceScope = "any"
	ScopeMobile  DeviceScope = "mobile"
	ScopeDesktop DeviceScope = "desktop"
)

// ThemeSpec is the set of style tokens the presentation layer applies to
// page chrome. The engine treats every token as opaque.
type ThemeSpec struct {
	Background string `yaml:"background" json:"background"`
	Text       string `yaml:"text" json:"text"`
	Border     string `yaml:"border" json:"border"`
	Hover      string `yaml:"hover" json:"hover"`
}

// Class identifies which predicate the evaluator applies to a rule.
type Class int

const (
	// ClassFirstVisit fires on the visitor's first recorded visit.
	ClassFirstVisit Class = iota
	// ClassMonthly compares the aggregate monthly visit count to the threshold.
	ClassMonthly
	// ClassLifetime compares the total visit count to the threshold.
	ClassLifetime
	// ClassDevice compares the visitor's own visit count to the threshold,
	// provided the visitor's device falls in the rule's scope.
	ClassDevice
)

func (c Class) String() string {
	switch c {
	case ClassFirstVisit:
		return "first_visit"
	case ClassMonthly:
		return "monthly"
	case ClassLifetime:
		return "lifetime"
	case ClassDevice:
		return "device"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// AchievementRule is an immutable achievement definition.
type AchievementRule struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Threshold   *int        `json:"threshold,omitempty"` // nil for rules without a threshold
	Period      Period      `json:"period"`
	DeviceScope DeviceScope `json:"deviceScope"`
	Theme       ThemeSpec   `json:"theme"`
}

// Class derives the predicate class from the rule's threshold, period and scope.
func (r AchievementRule) Class() Class {
	switch {
	case r.Threshold == nil:
		return ClassFirstVisit
	case r.DeviceScope == ScopeMobile || r.DeviceScope == ScopeDesktop:
		return ClassDevice
	case r.Period == PeriodMonthly:
		return ClassMonthly
	default:
		return ClassLifetime
	}
}

// Rank returns the threshold used for theme precedence; rules without a
// threshold rank as zero.
func (r AchievementRule) Rank() int {
	if r.Threshold == nil {
		return 0
	}
	return *r.Threshold
}

// Threshold is a convenience for building rules in code.
func Threshold(n int) *int {
	return &n
}
