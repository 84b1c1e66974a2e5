package snapshot

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidSnapshot marks statistics that cannot be evaluated: missing
// aggregate fields, a failed fetch or an undecodable payload.
var ErrInvalidSnapshot = errors.New("invalid stat snapshot")

// StatSnapshot is a point-in-time read of visitor statistics.
// Aggregate counts are pointers so that a missing field can be told apart
// from a zero count.
type StatSnapshot struct {
	VisitorID      string                   `json:"visitor_id"`
	TotalVisits    *int                     `json:"total_visits"`
	MonthlyVisits  *int                     `json:"monthly_visits"`
	DeviceCategory Category                 `json:"device_category,omitempty"`
	Visitors       map[string]VisitorDetail `json:"unique_visitors"`
}

// VisitorDetail is the per-visitor entry of the unique visitor map.
type VisitorDetail struct {
	Visits    int    `json:"visits"`
	Device    string `json:"device,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Source produces snapshots for a visitor.
type Source interface {
	FetchStats(ctx context.Context, visitorID string) (*StatSnapshot, error)
}

// Validate checks that the fields every evaluation needs are present.
func (s *StatSnapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	if s.VisitorID == "" {
		return fmt.Errorf("%w: missing visitor id", ErrInvalidSnapshot)
	}
	if s.TotalVisits == nil {
		return fmt.Errorf("%w: missing total_visits", ErrInvalidSnapshot)
	}
	if s.MonthlyVisits == nil {
		return fmt.Errorf("%w: missing monthly_visits", ErrInvalidSnapshot)
	}
	if *s.TotalVisits < 0 || *s.MonthlyVisits < 0 {
		return fmt.Errorf("%w: negative visit count", ErrInvalidSnapshot)
	}
	return nil
}

// Detail returns the current visitor's entry in the unique visitor map.
func (s *StatSnapshot) Detail() (VisitorDetail, bool) {
	d, ok := s.Visitors[s.VisitorID]
	return d, ok
}

// Normalize fills DeviceCategory from the visitor's detail entry.
// Snapshots without a detail entry keep CategoryUnknown.
func (s *StatSnapshot) Normalize() {
	s.DeviceCategory = CategoryUnknown
	if d, ok := s.Detail(); ok {
		s.DeviceCategory = d.Category()
	}
}

// ForVisitor returns a shallow copy of s bound to visitorID.
// The stats endpoint serves the whole portal; the copy is what a single
// visitor's evaluation sees.
func (s *StatSnapshot) ForVisitor(visitorID string) *StatSnapshot {
	out := *s
	out.VisitorID = visitorID
	out.Normalize()
	return &out
}

// Count is a convenience for building snapshots in code.
func Count(n int) *int {
	return &n
}
