package analysis

import (
	"net/url"

	"github.com/jonathan/vettedge/internal/candidates"
)

// Query parameter names carrying the table state.
const (
	ParamRole     = "role"
	ParamQuery    = "q"
	ParamSort     = "sort"
	ParamDir      = "dir"
	ParamSelected = "selected"
)

// StateFromQuery reads the table state from request query values.
// Missing or unknown sort values fall back to the defaults.
func StateFromQuery(v url.Values) candidates.State {
	return candidates.State{
		Query:         v.Get(ParamQuery),
		SortField:     candidates.ParseSortField(v.Get(ParamSort)),
		SortDirection: candidates.ParseSortDirection(v.Get(ParamDir)),
		SelectedID:    v.Get(ParamSelected),
	}
}

// Encode renders roleID and state as a query string.
func Encode(roleID string, state candidates.State) string {
	v := url.Values{}
	if roleID != "" {
		v.Set(ParamRole, roleID)
	}
	if state.Query != "" {
		v.Set(ParamQuery, state.Query)
	}
	v.Set(ParamSort, string(state.SortField))
	v.Set(ParamDir, string(state.SortDirection))
	if state.SelectedID != "" {
		v.Set(ParamSelected, state.SelectedID)
	}
	return v.Encode()
}
