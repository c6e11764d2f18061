package analysis

import (
	"fmt"

	"github.com/jonathan/vettedge/internal/candidates"
)

// recommendationTemplate is the placeholder recommendation; only the role varies.
const recommendationTemplate = "This candidate shows strong technical skills and relevant experience for the %s position. " +
	"Their communication skills are above average, making them suitable for team collaborations. " +
	"We recommend proceeding with a technical interview to validate their practical knowledge."

// Recommendation returns the recommendation text for role.
func Recommendation(role string) string {
	return fmt.Sprintf(recommendationTemplate, role)
}

// Metric is a labelled sub-score with its proportional indicator.
type Metric struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Value   int             `json:"value"`
	Band    candidates.Band `json:"band"`
	Percent int             `json:"percent"` // indicator fill, Value clamped to 0-100
}

// Detail is the assessment view of one candidate.
type Detail struct {
	Candidate      candidates.Candidate `json:"candidate"`
	Description    string               `json:"description"`
	Band           candidates.Band      `json:"band"`
	Breakdown      []Metric             `json:"breakdown"`
	Recommendation string               `json:"recommendation"`
}

// BuildDetail formats c for the detail view of role.
func BuildDetail(role string, c candidates.Candidate) Detail {
	items := c.Breakdown.Items()
	metrics := make([]Metric, 0, len(items))
	for _, item := range items {
		metrics = append(metrics, Metric{
			Key:     item.Key,
			Label:   item.Label,
			Value:   item.Value,
			Band:    candidates.Classify(item.Value),
			Percent: candidates.ClampScore(item.Value),
		})
	}

	return Detail{
		Candidate:      c,
		Description:    "AI assessment for " + c.Name,
		Band:           candidates.Classify(c.Score),
		Breakdown:      metrics,
		Recommendation: Recommendation(role),
	}
}
