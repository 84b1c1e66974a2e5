package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultStatsPath is the portal endpoint serving visitor statistics.
	DefaultStatsPath = "/api/visitor-stats"

	visitorCookieName = "visitor_id"
	maxBodyBytes      = 8 << 20
)

// HTTPSourceConfig configures an HTTPSource.
type HTTPSourceConfig struct {
	// URL is the full address of the stats endpoint.
	URL string
	// Timeout bounds a single request. Zero means 5s.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// InitialInterval is the first backoff delay. Zero means 200ms.
	InitialInterval time.Duration
}

// HTTPSource fetches snapshots from the portal's stats endpoint.
type HTTPSource struct {
	client *http.Client
	cfg    HTTPSourceConfig
}

// NewHTTPSource creates a new HTTP-backed snapshot source.
func NewHTTPSource(client *http.Client, cfg HTTPSourceConfig) *HTTPSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &HTTPSource{
		client: client,
		cfg:    cfg,
	}
}

// FetchStats retrieves the portal statistics and binds them to visitorID.
// Every failure is reported as ErrInvalidSnapshot.
func (s *HTTPSource) FetchStats(ctx context.Context, visitorID string) (*StatSnapshot, error) {
	var snap *StatSnapshot

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.cfg.MaxRetries), ctx)

	err := backoff.Retry(func() error {
		var err error
		snap, err = s.fetchOnce(ctx, visitorID)
		if err != nil {
			logrus.Warnf("fetching visitor stats for %s failed: %v", visitorID, err)
		}
		return err
	}, policy)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	return snap, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, visitorID string) (*StatSnapshot, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: visitorID})

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("stats endpoint returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("stats endpoint returned %d", resp.StatusCode))
	}

	snap, err := Decode(io.LimitReader(resp.Body, maxBodyBytes), visitorID)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	return snap, nil
}

// Decode parses a stats document and binds it to visitorID.
// The returned snapshot is validated.
func Decode(r io.Reader, visitorID string) (*StatSnapshot, error) {
	var doc StatSnapshot
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode stats: %v", ErrInvalidSnapshot, err)
	}

	snap := doc.ForVisitor(visitorID)
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}
