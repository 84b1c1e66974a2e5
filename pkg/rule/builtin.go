package rule

// Built-in rule ids. Keep these stable: stored unlocks are keyed by them.
const (
	FirstVisitID      = "first_visit"
	FrequentVisitorID = "frequent_visitor"
	PowerUserID       = "power_user"
	SuperFanID        = "super_fan"
	MobileMasterID    = "mobile_master"
	DesktopDevoteeID  = "desktop_devotee"
)

// DefaultRules returns the portal's built-in achievement table in
// declaration order.
func DefaultRules() []AchievementRule {
	return []AchievementRule{
		{
			ID:          FirstVisitID,
			Name:        "Nováček",
			Description: "První návštěva na portálu",
			Icon:        "fa-star",
			Period:      PeriodNone,
			DeviceScope: ScopeAny,
			Theme: ThemeSpec{
				Background: "bg-yellow-50",
				Text:       "text-yellow-500",
				Border:     "border-yellow-300",
				Hover:      "hover:bg-yellow-100",
			},
		},
		{
			ID:          FrequentVisitorID,
			Name:        "Pravidelný návštěvník",
			Description: "10 návštěv za měsíc",
			Icon:        "fa-clock-rotate-left",
			Threshold:   Threshold(10),
			Period:      PeriodMonthly,
			DeviceScope: ScopeAny,
			Theme: ThemeSpec{
				Background: "bg-blue-50",
				Text:       "text-blue-500",
				Border:     "border-blue-300",
				Hover:      "hover:bg-blue-100",
			},
		},
		{
			ID:          PowerUserID,
			Name:        "Power User",
			Description: "50 návštěv za měsíc",
			Icon:        "fa-rocket",
			Threshold:   Threshold(50),
			Period:      PeriodMonthly,
			DeviceScope: ScopeAny,
			Theme: ThemeSpec{
				Background: "bg-purple-50",
				Text:       "text-purple-500",
				Border:     "border-purple-300",
				Hover:      "hover:bg-purple-100",
			},
		},
		{
			ID:          SuperFanID,
			Name:        "Super Fan",
			Description: "100 návštěv za měsíc",
			Icon:        "fa-award",
			Threshold:   Threshold(100),
			Period:      PeriodMonthly,
			DeviceScope: ScopeAny,
			Theme: ThemeSpec{
				Background: "bg-amber-50",
				Text:       "text-gold",
				Border:     "border-amber-400",
				Hover:      "hover:bg-amber-100",
			},
		},
		{
			ID:          MobileMasterID,
			Name:        "Mobile Master",
			Description: "10 návštěv z mobilu",
			Icon:        "fa-mobile-screen",
			Threshold:   Threshold(10),
			Period:      PeriodMonthly,
			DeviceScope: ScopeMobile,
			Theme: ThemeSpec{
				Background: "bg-green-50",
				Text:       "text-green-500",
				Border:     "border-green-300",
				Hover:      "hover:bg-green-100",
			},
		},
		{
			ID:          DesktopDevoteeID,
			Name:        "Desktop Devotee",
			Description: "10 návštěv z počítače",
			Icon:        "fa-desktop",
			Threshold:   Threshold(10),
			Period:      PeriodMonthly,
			DeviceScope: ScopeDesktop,
			Theme: ThemeSpec{
				Background: "bg-slate-50",
				Text:       "text-slate-600",
				Border:     "border-slate-300",
				Hover:      "hover:bg-slate-100",
			},
		},
	}
}

// DefaultCatalog returns a catalog over DefaultRules.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultRules()...)
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(err)
	}
	return c
}
