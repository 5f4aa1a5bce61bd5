package report

import (
	"fmt"
	"time"

	"github.com/hupe1980/kmeans2d"
	"github.com/hupe1980/kmeans2d/core"
)

// Summary is the published record of a run.
type Summary struct {
	ID            string       `json:"id"`
	Source        string       `json:"source,omitempty"`
	Strategy      string       `json:"strategy"`
	K             int          `json:"k"`
	N             int          `json:"n"`
	Outcome       string       `json:"outcome"`
	Iterations    int          `json:"iterations"`
	Shift         float64      `json:"shift"`
	EmptyClusters int          `json:"empty_clusters"`
	ElapsedNanos  int64        `json:"elapsed_ns"`
	Centroids     []core.Point `json:"centroids"`
	Sizes         []uint64     `json:"sizes"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewSummary summarizes res. source names where the points came from.
func NewSummary(source string, res *kmeans2d.Result) *Summary {
	now := time.Now().UTC()
	return &Summary{
		ID:            fmt.Sprintf("%s-%d", res.Strategy, now.UnixNano()),
		Source:        source,
		Strategy:      res.Strategy.String(),
		K:             res.K(),
		N:             len(res.Assignment),
		Outcome:       res.Outcome.String(),
		Iterations:    res.Iterations,
		Shift:         res.Shift,
		EmptyClusters: res.EmptyClusters,
		ElapsedNanos:  res.Elapsed.Nanoseconds(),
		Centroids:     append([]core.Point(nil), res.Centroids...),
		Sizes:         res.Sizes(),
		CreatedAt:     now,
	}
}

// Elapsed returns the run time.
func (s *Summary) Elapsed() time.Duration {
	return time.Duration(s.ElapsedNanos)
}
