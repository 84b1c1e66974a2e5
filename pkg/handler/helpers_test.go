package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AccelByte/extend-visitor-achievements/pkg/achievement"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"
	"github.com/AccelByte/extend-visitor-achievements/pkg/rule"
	"github.com/AccelByte/extend-visitor-achievements/pkg/snapshot"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
)

// setupTestAPI wires the API over a miniredis ledger. statsBody is what the
// fake stats endpoint serves; statsStatus overrides its status when non-zero.
func setupTestAPI(t *testing.T, mr *miniredis.Miniredis, statsBody string, statsStatus int) http.Handler {
	t.Helper()

	stats := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if statsStatus != 0 {
			w.WriteHeader(statsStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(statsBody))
	}))
	t.Cleanup(stats.Close)

	catalog := rule.DefaultCatalog()
	client := getRedisClient(mr)
	t.Cleanup(func() { _ = client.Close() })

	l := ledger.NewRedisLedger(client, ledger.RedisLedgerConfig{
		RuleIDs:        catalog.IDs(),
		EnabledDefault: true,
	})
	source := snapshot.NewHTTPSource(stats.Client(), snapshot.HTTPSourceConfig{URL: stats.URL})
	engine := achievement.NewEngine(catalog, l, source, nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	NewAchievements(engine).Routes(r)
	return r
}

// getRedisClient returns a Redis client connected to the miniredis instance
func getRedisClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
}

// doRequest sends a request through h and returns the recorded response.
func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
