package provider

import (
	"context"
	"slices"

	"github.com/jonathan/vettedge/internal/candidates"
)

// Memory serves a fixed set of roles and candidates.
// It is read-only after construction and safe for concurrent use.
type Memory struct {
	roles      []candidates.Role
	candidates map[string][]candidates.Candidate
	byID       map[string]candidates.Candidate
}

// NewMemory builds a provider over roles and their candidates, keyed by role id.
// A role's Count is set from the number of candidates given for it.
func NewMemory(roles []candidates.Role, byRole map[string][]candidates.Candidate) *Memory {
	m := &Memory{
		roles:      make([]candidates.Role, len(roles)),
		candidates: make(map[string][]candidates.Candidate, len(roles)),
		byID:       make(map[string]candidates.Candidate),
	}
	for i, r := range roles {
		list := slices.Clone(byRole[r.ID])
		r.Count = len(list)
		m.roles[i] = r
		m.candidates[r.ID] = list
		for _, c := range list {
			m.byID[c.ID] = c
		}
	}
	return m
}

// ListRoles returns the roles in their configured order.
func (m *Memory) ListRoles(_ context.Context) ([]candidates.Role, error) {
	return slices.Clone(m.roles), nil
}

// ListCandidates returns a copy of the candidates for roleID.
func (m *Memory) ListCandidates(_ context.Context, roleID string) ([]candidates.Candidate, error) {
	list, ok := m.candidates[roleID]
	if !ok {
		return nil, &ErrRoleNotFound{RoleID: roleID}
	}
	return slices.Clone(list), nil
}

// GetCandidate looks a candidate up by id across all roles.
func (m *Memory) GetCandidate(_ context.Context, id string) (*candidates.Candidate, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, &ErrCandidateNotFound{CandidateID: id}
	}
	return &c, nil
}
