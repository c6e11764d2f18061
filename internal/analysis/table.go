// Package analysis builds the view models of the candidate analysis page:
// the sortable, searchable table and the assessment detail of the selected candidate.
package analysis

import (
	"fmt"

	"github.com/jonathan/vettedge/internal/candidates"
	"golang.org/x/text/language"
)

// visibleSkills is how many skills a table row shows before collapsing the rest.
const visibleSkills = 3

// RowActions are the entries of the per-row action menu.
var RowActions = []string{"View Profile", "Schedule Interview", "Download Resume", "Remove Candidate"}

// SortHeader describes a sortable column header.
type SortHeader struct {
	Field     candidates.SortField
	Label     string
	Active    bool
	Indicator string
	// Next is the state a click on this header produces.
	Next candidates.State
}

// Row is one rendered table row.
type Row struct {
	Candidate     candidates.Candidate
	Band          candidates.Band
	VisibleSkills []string
	HiddenSkills  int
	// Select is the state a click on the row produces.
	Select candidates.State
}

// Table is the analysis table for one role.
type Table struct {
	Role      candidates.Role
	State     candidates.State
	Count     int
	Rows      []Row
	NameSort  SortHeader
	ScoreSort SortHeader
	Detail    *Detail
	// Close is the state that dismisses the detail view.
	Close candidates.State
}

// Summary is the line above the table, e.g. "12 candidates for Data Scientist".
func (t Table) Summary() string {
	return fmt.Sprintf("%d candidates for %s", t.Count, t.Role.Name)
}

// BuildTable projects list through state and builds the table view for role.
// The detail view is present when the selected id resolves against the full list.
func BuildTable(role candidates.Role, list []candidates.Candidate, state candidates.State, tag language.Tag) Table {
	projected := candidates.ProjectLocale(list, state, tag)

	rows := make([]Row, 0, len(projected))
	for _, c := range projected {
		rows = append(rows, newRow(c, state))
	}

	t := Table{
		Role:      role,
		State:     state,
		Count:     len(rows),
		Rows:      rows,
		NameSort:  newSortHeader(state, candidates.SortByName, "Candidate"),
		ScoreSort: newSortHeader(state, candidates.SortByScore, "Score"),
		Close:     state.ClearSelection(),
	}

	if selected, ok := state.Selected(list); ok {
		d := BuildDetail(role.Name, selected)
		t.Detail = &d
	}

	return t
}

func newRow(c candidates.Candidate, state candidates.State) Row {
	r := Row{
		Candidate: c,
		Band:      candidates.Classify(c.Score),
		Select:    state.Select(c.ID),
	}
	if len(c.Skills) > visibleSkills {
		r.VisibleSkills = c.Skills[:visibleSkills]
		r.HiddenSkills = len(c.Skills) - visibleSkills
	} else {
		r.VisibleSkills = c.Skills
	}
	return r
}

func newSortHeader(state candidates.State, field candidates.SortField, label string) SortHeader {
	h := SortHeader{
		Field: field,
		Label: label,
		Next:  state.ToggleSort(field).ClearSelection(),
	}
	if state.SortField == field {
		h.Active = true
		if state.SortDirection == candidates.Ascending {
			h.Indicator = "↑"
		} else {
			h.Indicator = "↓"
		}
	}
	return h
}
