package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-visitor-achievements/pkg/metrics"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/theme"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type countingListener struct {
	unlocks int
	themes  int
	err     error
}

func (c *countingListener) OnNewUnlock(context.Context, string, rule.AchievementRule) error {
	c.unlocks++
	return c.err
}

func (c *countingListener) OnThemeChanged(context.Context, string, rule.ThemeSpec) error {
	c.themes++
	return c.err
}

func testRule(t *testing.T, id string) rule.AchievementRule {
	r, ok := rule.DefaultCatalog().Get(id)
	if !ok {
		t.Fatalf("rule %s not in catalog", id)
	}
	return r
}

func TestFanout_DeliversToAll(t *testing.T) {
	boom := errors.New("boom")
	failing := &countingListener{err: boom}
	ok := &countingListener{}

	f := NewFanout(failing, nil, ok)
	if f.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", f.Count())
	}

	ctx := context.Background()
	if err := f.OnNewUnlock(ctx, "v", testRule(t, rule.FirstVisitID)); !errors.Is(err, boom) {
		t.Errorf("OnNewUnlock() error = %v, want boom", err)
	}
	if err := f.OnThemeChanged(ctx, "v", theme.Default); !errors.Is(err, boom) {
		t.Errorf("OnThemeChanged() error = %v, want boom", err)
	}

	if ok.unlocks != 1 || ok.themes != 1 {
		t.Errorf("listener after failing one got %d unlocks, %d themes", ok.unlocks, ok.themes)
	}
}

func TestLogListener(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	l := NewLogListener(logger)

	_ = l.OnNewUnlock(context.Background(), "v", testRule(t, rule.SuperFanID))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry written")
	}
	if entry.Level != logrus.InfoLevel {
		t.Errorf("level = %s, want info", entry.Level)
	}
	if entry.Data["ruleID"] != rule.SuperFanID || entry.Data["visitorID"] != "v" {
		t.Errorf("fields = %v", entry.Data)
	}
}

func TestMetricsListener(t *testing.T) {
	catalog := rule.DefaultCatalog()
	m := NewMetricsListener(catalog)
	ctx := context.Background()

	unlocks := metrics.UnlocksTotal.WithLabelValues(rule.PowerUserID)
	before := testutil.ToFloat64(unlocks)
	_ = m.OnNewUnlock(ctx, "v", testRule(t, rule.PowerUserID))
	if got := testutil.ToFloat64(unlocks) - before; got != 1 {
		t.Errorf("unlocks delta = %v, want 1", got)
	}

	tests := []struct {
		theme rule.ThemeSpec
		label string
	}{
		{testRule(t, rule.PowerUserID).Theme, rule.PowerUserID},
		{theme.Default, "default"},
		{rule.ThemeSpec{Background: "bg-pink-50"}, "unknown"},
	}
	for _, tt := range tests {
		counter := metrics.ThemeChangesTotal.WithLabelValues(tt.label)
		before := testutil.ToFloat64(counter)
		_ = m.OnThemeChanged(ctx, "v", tt.theme)
		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Errorf("theme change label %s delta = %v, want 1", tt.label, got)
		}
	}
}

func TestRedisPublisher(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, DefaultChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	p := NewRedisPublisher(client, RedisPublisherConfig{})
	superFan := testRule(t, rule.SuperFanID)
	if err := p.OnNewUnlock(ctx, "v", superFan); err != nil {
		t.Fatalf("OnNewUnlock() error = %v", err)
	}
	if err := p.OnThemeChanged(ctx, "v", superFan.Theme); err != nil {
		t.Fatalf("OnThemeChanged() error = %v", err)
	}

	want := []string{EventNewUnlock, EventThemeChanged}
	for _, wantType := range want {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			t.Fatalf("ReceiveMessage() error = %v", err)
		}

		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			t.Fatalf("bad payload %q: %v", msg.Payload, err)
		}
		if ev.Type != wantType || ev.VisitorID != "v" {
			t.Errorf("event = %+v, want type %s", ev, wantType)
		}
		switch ev.Type {
		case EventNewUnlock:
			if ev.Rule == nil || ev.Rule.ID != rule.SuperFanID {
				t.Errorf("unlock event rule = %+v", ev.Rule)
			}
		case EventThemeChanged:
			if ev.Theme == nil || *ev.Theme != superFan.Theme {
				t.Errorf("theme event theme = %+v", ev.Theme)
			}
		}
	}
}

func TestRedisPublisher_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	p := NewRedisPublisher(client, RedisPublisherConfig{Channel: "custom"})
	if err := p.OnNewUnlock(context.Background(), "v", testRule(t, rule.FirstVisitID)); err == nil {
		t.Error("expected publish error")
	}
}
