package snapshot

import (
	"context"
	"fmt"
	"os"
)

// DefaultStatsFile is where the portal persists its visitor statistics.
const DefaultStatsFile = "data/visitor_stats.json"

// FileSource reads snapshots from the stats document the portal writes to disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchStats reads and decodes the stats file.
func (s *FileSource) FetchStats(ctx context.Context, visitorID string) (*StatSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	defer f.Close()

	return Decode(f, visitorID)
}
