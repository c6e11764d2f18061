// Package candidates holds the candidate table core: the candidate record, score bands,
// and the pure filter, sort and selection logic behind the analysis view.
package candidates

// Breakdown holds the five assessment sub-scores of a candidate.
// Each value is on a 0-100 scale and is independent of the overall score.
type Breakdown struct {
	Technical     int `json:"technical"`
	Communication int `json:"communication"`
	Leadership    int `json:"leadership"`
	Cultural      int `json:"cultural"`
	Experience    int `json:"experience"`
}

// Candidate is a single applicant for a role.
type Candidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Score      int       `json:"score"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	Breakdown  Breakdown `json:"breakdown"`
}

// Role is a job opening that candidates are grouped under.
type Role struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BreakdownItem is a labelled sub-score.
type BreakdownItem struct {
	Key   string
	Label string
	Value int
}

// Items returns the sub-scores in display order.
func (b Breakdown) Items() []BreakdownItem {
	return []BreakdownItem{
		{Key: "technical", Label: "Technical Skills", Value: b.Technical},
		{Key: "communication", Label: "Communication", Value: b.Communication},
		{Key: "leadership", Label: "Leadership", Value: b.Leadership},
		{Key: "cultural", Label: "Cultural Fit", Value: b.Cultural},
		{Key: "experience", Label: "Experience Relevance", Value: b.Experience},
	}
}

// ClampScore limits a score to the 0-100 display range.
func ClampScore(score int) int {
	return min(max(score, 0), 100)
}
