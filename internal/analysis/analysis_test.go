package analysis

import (
	"net/url"
	"testing"

	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var role = candidates.Role{ID: "2", Name: "Data Scientist"}

func scenario() []candidates.Candidate {
	return []candidates.Candidate{
		{ID: "ds-1", Name: "Candidate 1", Email: "candidate1@example.com", Score: 71,
			Skills:    []string{"Python", "SQL", "Pandas", "Statistics", "TensorFlow"},
			Breakdown: candidates.Breakdown{Technical: 91, Communication: 78, Leadership: 64, Cultural: 55, Experience: 120}},
		{ID: "ds-2", Name: "Candidate 2", Email: "candidate2@example.com", Score: 95, Skills: []string{"Python", "SQL", "Pandas"}},
		{ID: "ds-3", Name: "Candidate 3", Email: "candidate3@example.com", Score: 50, Skills: []string{"SQL"}},
		{ID: "ds-4", Name: "Candidate 4", Email: "candidate4@example.com", Score: 82, Skills: []string{"Python", "Machine Learning", "SQL", "Pandas"}},
		{ID: "ds-5", Name: "Candidate 5", Email: "candidate5@example.com", Score: 65, Skills: []string{"Statistics"}},
	}
}

func rowScores(tbl Table) []int {
	out := make([]int, len(tbl.Rows))
	for i, r := range tbl.Rows {
		out[i] = r.Candidate.Score
	}
	return out
}

func TestBuildTable_DefaultView(t *testing.T) {
	tbl := BuildTable(role, scenario(), candidates.DefaultState(), language.English)

	assert.Equal(t, []int{95, 82, 71, 65, 50}, rowScores(tbl))
	assert.Equal(t, 5, tbl.Count)
	assert.Equal(t, "5 candidates for Data Scientist", tbl.Summary())
	assert.Nil(t, tbl.Detail)

	assert.True(t, tbl.ScoreSort.Active)
	assert.Equal(t, "↓", tbl.ScoreSort.Indicator)
	assert.False(t, tbl.NameSort.Active)
	assert.Empty(t, tbl.NameSort.Indicator)
}

func TestBuildTable_SortHeadersCarryNextState(t *testing.T) {
	state := candidates.DefaultState().Select("ds-1")
	tbl := BuildTable(role, scenario(), state, language.English)

	assert.Equal(t, candidates.SortByScore, tbl.ScoreSort.Next.SortField)
	assert.Equal(t, candidates.Ascending, tbl.ScoreSort.Next.SortDirection)
	assert.Equal(t, candidates.SortByName, tbl.NameSort.Next.SortField)
	assert.Equal(t, candidates.Descending, tbl.NameSort.Next.SortDirection)
	assert.Empty(t, tbl.NameSort.Next.SelectedID)

	asc := BuildTable(role, scenario(), tbl.ScoreSort.Next, language.English)
	assert.Equal(t, []int{50, 65, 71, 82, 95}, rowScores(asc))
	assert.Equal(t, "↑", asc.ScoreSort.Indicator)
}

func TestBuildTable_SearchCountsFilteredRows(t *testing.T) {
	tbl := BuildTable(role, scenario(), candidates.DefaultState().WithQuery("pandas"), language.English)
	assert.Equal(t, []int{95, 82, 71}, rowScores(tbl))
	assert.Equal(t, "3 candidates for Data Scientist", tbl.Summary())

	empty := BuildTable(role, scenario(), candidates.DefaultState().WithQuery("nonexistent"), language.English)
	assert.Empty(t, empty.Rows)
	assert.Equal(t, 0, empty.Count)
}

func TestBuildTable_SkillTruncation(t *testing.T) {
	tbl := BuildTable(role, scenario(), candidates.DefaultState(), language.English)

	byID := map[string]Row{}
	for _, r := range tbl.Rows {
		byID[r.Candidate.ID] = r
	}

	assert.Equal(t, []string{"Python", "SQL", "Pandas"}, byID["ds-1"].VisibleSkills)
	assert.Equal(t, 2, byID["ds-1"].HiddenSkills)
	assert.Equal(t, []string{"Python", "SQL", "Pandas"}, byID["ds-2"].VisibleSkills)
	assert.Equal(t, 0, byID["ds-2"].HiddenSkills)
	assert.Equal(t, 1, byID["ds-4"].HiddenSkills)
	assert.Len(t, byID["ds-1"].Candidate.Skills, 5, "row keeps the full skill list")
}

func TestBuildTable_RowSelectionAndDetail(t *testing.T) {
	tbl := BuildTable(role, scenario(), candidates.DefaultState(), language.English)

	var row Row
	for _, r := range tbl.Rows {
		if r.Candidate.Score == 71 {
			row = r
		}
	}
	require.Equal(t, "ds-1", row.Select.SelectedID)
	assert.Equal(t, candidates.BandMediumHigh, row.Band)

	selected := BuildTable(role, scenario(), row.Select, language.English)
	require.NotNil(t, selected.Detail)
	assert.Equal(t, 71, selected.Detail.Candidate.Score)
	assert.Equal(t, candidates.BandMediumHigh, selected.Detail.Band)
	assert.Empty(t, selected.Close.SelectedID)
	assert.Equal(t, row.Select.SortField, selected.Close.SortField)

	t.Run("unknown selection has no detail", func(t *testing.T) {
		tbl := BuildTable(role, scenario(), candidates.DefaultState().Select("ghost"), language.English)
		assert.Nil(t, tbl.Detail)
	})
}

func TestBuildDetail(t *testing.T) {
	d := BuildDetail("Data Scientist", scenario()[0])

	assert.Equal(t, "AI assessment for Candidate 1", d.Description)
	assert.Contains(t, d.Recommendation, "for the Data Scientist position")
	require.Len(t, d.Breakdown, 5)

	assert.Equal(t, Metric{Key: "technical", Label: "Technical Skills", Value: 91, Band: candidates.BandHigh, Percent: 91}, d.Breakdown[0])
	assert.Equal(t, candidates.BandMediumHigh, d.Breakdown[1].Band)
	assert.Equal(t, candidates.BandMedium, d.Breakdown[2].Band)
	assert.Equal(t, candidates.BandLow, d.Breakdown[3].Band)
	assert.Equal(t, 120, d.Breakdown[4].Value)
	assert.Equal(t, 100, d.Breakdown[4].Percent)
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t,
		"This candidate shows strong technical skills and relevant experience for the UX Designer position. "+
			"Their communication skills are above average, making them suitable for team collaborations. "+
			"We recommend proceeding with a technical interview to validate their practical knowledge.",
		Recommendation("UX Designer"))
}

func TestQueryRoundTrip(t *testing.T) {
	state := candidates.State{Query: "machine learning", SortField: candidates.SortByName, SortDirection: candidates.Ascending, SelectedID: "ds-4"}
	encoded := Encode("2", state)

	v, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, "2", v.Get(ParamRole))
	assert.Equal(t, state, StateFromQuery(v))
}

func TestStateFromQuery_Defaults(t *testing.T) {
	assert.Equal(t, candidates.DefaultState(), StateFromQuery(url.Values{}))
	assert.Equal(t, candidates.DefaultState(), StateFromQuery(url.Values{"sort": {"salary"}, "dir": {"up"}}))
}

func TestEncode_OmitsEmptyFields(t *testing.T) {
	assert.Equal(t, "dir=desc&sort=score", Encode("", candidates.DefaultState()))
}
