package candidates

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField is the column the table is ordered by.
type SortField string

// Sortable columns.
const (
	SortByName  SortField = "name"
	SortByScore SortField = "score"
)

// SortDirection is the ordering direction.
type SortDirection string

// Sort directions.
const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortField returns the field named by s, or SortByScore when s is unknown.
func ParseSortField(s string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(s))) {
	case SortByName:
		return SortByName
	default:
		return SortByScore
	}
}

// ParseSortDirection returns the direction named by s, or Descending when s is unknown.
func ParseSortDirection(s string) SortDirection {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending
	default:
		return Descending
	}
}

// State is the transient view state of one candidate table.
// SelectedID is empty when nothing is selected.
type State struct {
	Query         string
	SortField     SortField
	SortDirection SortDirection
	SelectedID    string
}

// DefaultState returns the initial table state: no query, highest score first, no selection.
func DefaultState() State {
	return State{SortField: SortByScore, SortDirection: Descending}
}

// ToggleSort returns the state after the user chose to sort by field.
// Choosing the active field flips the direction; choosing another field sorts it descending.
func (s State) ToggleSort(field SortField) State {
	if s.SortField == field {
		if s.SortDirection == Ascending {
			s.SortDirection = Descending
		} else {
			s.SortDirection = Ascending
		}
		return s
	}
	s.SortField = field
	s.SortDirection = Descending
	return s
}

// WithQuery returns the state with the search text replaced.
func (s State) WithQuery(q string) State {
	s.Query = q
	return s
}

// Select returns the state with id as the only selected candidate.
func (s State) Select(id string) State {
	s.SelectedID = id
	return s
}

// ClearSelection returns the state with nothing selected.
func (s State) ClearSelection() State {
	s.SelectedID = ""
	return s
}

// HasSelection reports whether a candidate is selected.
func (s State) HasSelection() bool {
	return s.SelectedID != ""
}

// Selected resolves the selected candidate against the full list.
func (s State) Selected(list []Candidate) (Candidate, bool) {
	if s.SelectedID == "" {
		return Candidate{}, false
	}
	for _, c := range list {
		if c.ID == s.SelectedID {
			return c, true
		}
	}
	return Candidate{}, false
}

// Matches reports whether c passes the search query q.
// Matching is a case-insensitive substring test on name, email and every skill.
func Matches(c Candidate, q string) bool {
	q = strings.ToLower(q)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

// Filter returns the candidates of list that match q, in their original order.
func Filter(list []Candidate, q string) []Candidate {
	out := make([]Candidate, 0, len(list))
	for _, c := range list {
		if Matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

// Sort returns a sorted copy of list using English collation for names.
func Sort(list []Candidate, field SortField, dir SortDirection) []Candidate {
	return SortLocale(list, field, dir, language.English)
}

// SortLocale returns a sorted copy of list, comparing names with the collation rules of tag.
// Equal keys keep their relative order.
func SortLocale(list []Candidate, field SortField, dir SortDirection, tag language.Tag) []Candidate {
	out := slices.Clone(list)

	var compare func(a, b Candidate) int
	switch field {
	case SortByName:
		// Collators carry iteration buffers, so each sort gets its own.
		col := collate.New(tag)
		compare = func(a, b Candidate) int {
			return col.CompareString(a.Name, b.Name)
		}
	default:
		compare = func(a, b Candidate) int {
			return cmp.Compare(a.Score, b.Score)
		}
	}

	if dir == Ascending {
		slices.SortStableFunc(out, compare)
	} else {
		slices.SortStableFunc(out, func(a, b Candidate) int { return compare(b, a) })
	}
	return out
}

// Project derives the visible rows for state: filter the full list, then sort the result.
func Project(list []Candidate, state State) []Candidate {
	return ProjectLocale(list, state, language.English)
}

// ProjectLocale is Project with an explicit collation language.
func ProjectLocale(list []Candidate, state State, tag language.Tag) []Candidate {
	return SortLocale(Filter(list, state.Query), state.SortField, state.SortDirection, tag)
}
