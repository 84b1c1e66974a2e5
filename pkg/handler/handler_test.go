package handler

import (
	"net/http"
	"testing"

	"github.com/AccelByte/extend-visitor-achievements/pkg/achievement"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/theme"
	"github.com/alicebob/miniredis/v2"
)

const portalStats = `{
	"total_visits": 120,
	"monthly_visits": 10,
	"unique_visitors": {
		"v-1": {"visits": 10, "device": "Android Phone"}
	}
}`

func TestAchievements_Refresh_UnlocksFromStatsEndpoint(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	api := setupTestAPI(t, mr, portalStats, 0)

	rec := doRequest(api, http.MethodPost, "/visitors/v-1/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res achievement.Result
	decodeBody(t, rec, &res)

	got := make([]string, 0, len(res.NewlyUnlocked))
	for _, r := range res.NewlyUnlocked {
		got = append(got, r.ID)
	}
	want := []string{rule.FrequentVisitorID, rule.MobileMasterID}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("newly unlocked = %v, want %v", got, want)
	}
	if !res.ThemeChanged {
		t.Error("expected theme change on first unlocks")
	}

	if v, _ := mr.Get("frequent_visitor_v-1"); v != "true" {
		t.Errorf("ledger key frequent_visitor_v-1 = %q, want true", v)
	}

	// second pass is idempotent
	rec = doRequest(api, http.MethodPost, "/visitors/v-1/refresh", "")
	var again achievement.Result
	decodeBody(t, rec, &again)
	if len(again.NewlyUnlocked) != 0 || again.ThemeChanged {
		t.Errorf("second refresh unlocked %v, themeChanged=%v", again.NewlyUnlocked, again.ThemeChanged)
	}
}

func TestAchievements_Refresh_UpstreamFailure(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	api := setupTestAPI(t, mr, "", http.StatusNotFound)

	rec := doRequest(api, http.MethodPost, "/visitors/v-1/refresh", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}

	var body ErrorResponse
	decodeBody(t, rec, &body)
	if body.Code != CodeUpstream {
		t.Errorf("code = %q, want %q", body.Code, CodeUpstream)
	}
	if body.RequestID == "" {
		t.Error("expected request id in error envelope")
	}
}

func TestAchievements_Evaluate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantNew    []string
		wantCode   string
	}{
		{
			name:       "first visit",
			body:       `{"total_visits": 1, "monthly_visits": 1, "unique_visitors": {}}`,
			wantStatus: http.StatusOK,
			wantNew:    []string{rule.FirstVisitID},
		},
		{
			name:       "monthly tiers",
			body:       `{"total_visits": 500, "monthly_visits": 100}`,
			wantStatus: http.StatusOK,
			wantNew:    []string{rule.FrequentVisitorID, rule.PowerUserID, rule.SuperFanID},
		},
		{
			name:       "missing monthly visits",
			body:       `{"total_visits": 5}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidSnapshot,
		},
		{
			name:       "malformed body",
			body:       `{"total_visits":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, err := miniredis.Run()
			if err != nil {
				t.Fatalf("failed to start miniredis: %v", err)
			}
			defer mr.Close()

			api := setupTestAPI(t, mr, portalStats, 0)
			rec := doRequest(api, http.MethodPost, "/visitors/v-9/evaluate", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantCode != "" {
				var body ErrorResponse
				decodeBody(t, rec, &body)
				if body.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
				}
				if keys := mr.Keys(); len(keys) != 0 {
					t.Errorf("ledger written on rejected snapshot: %v", keys)
				}
				return
			}

			var res achievement.Result
			decodeBody(t, rec, &res)
			if len(res.NewlyUnlocked) != len(tt.wantNew) {
				t.Fatalf("newly unlocked = %v, want %v", res.NewlyUnlocked, tt.wantNew)
			}
			for i, id := range tt.wantNew {
				if res.NewlyUnlocked[i].ID != id {
					t.Errorf("newly unlocked[%d] = %s, want %s", i, res.NewlyUnlocked[i].ID, id)
				}
			}
		})
	}
}

func TestAchievements_ListAndTheme(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	api := setupTestAPI(t, mr, portalStats, 0)

	rec := doRequest(api, http.MethodGet, "/visitors/v-2/theme", "")
	var before ThemeResponse
	decodeBody(t, rec, &before)
	if before.ActiveTheme != theme.Default {
		t.Errorf("theme without unlocks = %+v, want default", before.ActiveTheme)
	}

	_ = mr.Set("power_user_v-2", "true")
	_ = mr.Set("first_visit_v-2", "true")

	rec = doRequest(api, http.MethodGet, "/visitors/v-2/achievements", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list AchievementsResponse
	decodeBody(t, rec, &list)

	if len(list.Badges) != 2 || list.Badges[0].ID != rule.FirstVisitID || list.Badges[1].ID != rule.PowerUserID {
		t.Errorf("badges = %+v, want first_visit then power_user", list.Badges)
	}

	power, _ := rule.DefaultCatalog().Get(rule.PowerUserID)
	if list.ActiveTheme != power.Theme {
		t.Errorf("active theme = %+v, want %+v", list.ActiveTheme, power.Theme)
	}
}

func TestAchievements_StorageUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	api := setupTestAPI(t, mr, portalStats, 0)
	mr.Close()

	rec := doRequest(api, http.MethodGet, "/visitors/v-1/achievements", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var body ErrorResponse
	decodeBody(t, rec, &body)
	if body.Code != CodeStorage {
		t.Errorf("code = %q, want %q", body.Code, CodeStorage)
	}
}

func TestSettings_Enabled(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	api := setupTestAPI(t, mr, portalStats, 0)

	var setting EnabledSetting
	decodeBody(t, doRequest(api, http.MethodGet, "/settings/enabled", ""), &setting)
	if setting.Enabled == nil || !*setting.Enabled {
		t.Fatalf("default enabled = %v, want true", setting.Enabled)
	}

	rec := doRequest(api, http.MethodPut, "/settings/enabled", `{"enabled": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}
	if v, _ := mr.Get("achievementsEnabled"); v != "false" {
		t.Errorf("stored flag = %q, want false", v)
	}

	// refresh is skipped while disabled
	rec = doRequest(api, http.MethodPost, "/visitors/v-1/refresh", "")
	var res achievement.Result
	decodeBody(t, rec, &res)
	if !res.Disabled || len(res.NewlyUnlocked) != 0 {
		t.Errorf("refresh while disabled = %+v", res)
	}
	if v, _ := mr.Get("frequent_visitor_v-1"); v != "" {
		t.Errorf("unlock written while disabled: %q", v)
	}

	rec = doRequest(api, http.MethodPut, "/settings/enabled", `{"on": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid body status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
