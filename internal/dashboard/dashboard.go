// Package dashboard computes the metrics shown on the dashboard page.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jonathan/vettedge/internal/activity"
	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/provider"
	"golang.org/x/sync/errgroup"
)

const (
	// recentLimit is how many activities the feed shows.
	recentLimit = 4
	// loadConcurrency bounds concurrent per-role candidate loads.
	loadConcurrency = 4
)

// Trend is the direction of a stat's change.
type Trend string

// Trends.
const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Arrow returns the arrow rendered before the trend value.
func (t Trend) Arrow() string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	default:
		return ""
	}
}

// StatCard is a headline metric.
type StatCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Trend       Trend  `json:"trend,omitempty"`
	TrendValue  string `json:"trend_value,omitempty"`
}

// Slice is one bar of a chart.
type Slice struct {
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Color   string `json:"color"`
	Percent int    `json:"percent"` // bar length relative to the largest slice
}

// RecentItem is an activity with its relative time.
type RecentItem struct {
	activity.Activity
	Ago string `json:"ago"`
}

// Overview is everything the dashboard page renders.
type Overview struct {
	Stats    []StatCard   `json:"stats"`
	ByRole   []Slice      `json:"by_role"`
	Scores   []Slice      `json:"scores"`
	Activity []RecentItem `json:"activity"`
}

var (
	roleColors = []string{"#4051e2", "#7e95f7", "#a5bafc", "#c7d7fe", "#e0eaff"}

	scoreBuckets = []struct {
		name  string
		min   int
		color string
	}{
		{"90-100", 90, "#10B981"},
		{"80-89", 80, "#34D399"},
		{"70-79", 70, "#6EE7B7"},
		{"60-69", 60, "#A7F3D0"},
		{"Below 60", math.MinInt, "#D1FAE5"},
	}
)

// Service assembles the dashboard overview.
type Service struct {
	provider   provider.Provider
	activities activity.Store
	now        func() time.Time
}

// NewService creates a dashboard service over the given data sources.
func NewService(p provider.Provider, activities activity.Store) *Service {
	return &Service{provider: p, activities: activities, now: time.Now}
}

// Overview loads every role's candidates concurrently and computes the dashboard metrics.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	roles, err := s.provider.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	lists := make([][]candidates.Candidate, len(roles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, role := range roles {
		g.Go(func() error {
			list, err := s.provider.ListCandidates(gctx, role.ID)
			if err != nil {
				return fmt.Errorf("failed to list candidates for role %s: %w", role.ID, err)
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recent, err := s.activities.ListActivities(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	var all []candidates.Candidate
	byRole := make([]Slice, len(roles))
	for i, role := range roles {
		all = append(all, lists[i]...)
		byRole[i] = Slice{Name: role.Name, Value: len(lists[i]), Color: roleColors[i%len(roleColors)]}
	}

	now := s.now()
	items := make([]RecentItem, len(recent))
	for i, a := range recent {
		items[i] = RecentItem{Activity: a, Ago: activity.Ago(a.At, now)}
	}

	return &Overview{
		Stats:    Stats(all),
		ByRole:   scale(byRole),
		Scores:   ScoreDistribution(all),
		Activity: items,
	}, nil
}

// Stats returns the headline cards. Time saved and interviews are not tracked yet and
// show fixed values; applications and average score come from the candidates.
func Stats(all []candidates.Candidate) []StatCard {
	return []StatCard{
		{Title: "Time Saved", Value: "24h", Description: "This month", Trend: TrendUp, TrendValue: "12%"},
		{Title: "Candidates Interviewed", Value: "48", Description: "This month", Trend: TrendUp, TrendValue: "8%"},
		{Title: "Applications Received", Value: fmt.Sprintf("%d", len(all)), Description: "This month", Trend: TrendUp, TrendValue: "24%"},
		{Title: "Average Score", Value: fmt.Sprintf("%.1f", AverageScore(all)), Description: "This month", Trend: TrendUp, TrendValue: "3%"},
	}
}

// AverageScore returns the mean overall score, or 0 for no candidates.
func AverageScore(all []candidates.Candidate) float64 {
	if len(all) == 0 {
		return 0
	}
	total := 0
	for _, c := range all {
		total += c.Score
	}
	return float64(total) / float64(len(all))
}

// ScoreDistribution buckets candidates by overall score.
func ScoreDistribution(all []candidates.Candidate) []Slice {
	out := make([]Slice, len(scoreBuckets))
	for i, b := range scoreBuckets {
		out[i] = Slice{Name: b.name, Color: b.color}
	}
	for _, c := range all {
		for i, b := range scoreBuckets {
			if c.Score >= b.min {
				out[i].Value++
				break
			}
		}
	}
	return scale(out)
}

func scale(bars []Slice) []Slice {
	largest := 0
	for _, b := range bars {
		largest = max(largest, b.Value)
	}
	if largest == 0 {
		return bars
	}
	for i := range bars {
		bars[i].Percent = bars[i].Value * 100 / largest
	}
	return bars
}
