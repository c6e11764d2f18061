// Package provider supplies candidate data to the views.
// Implementations range from fixed in-memory fixtures to the PostgreSQL store in internal/db.
package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/vettedge/internal/candidates"
)

// Provider lists roles and the candidates that applied to them.
type Provider interface {
	ListRoles(ctx context.Context) ([]candidates.Role, error)
	ListCandidates(ctx context.Context, roleID string) ([]candidates.Candidate, error)
	GetCandidate(ctx context.Context, id string) (*candidates.Candidate, error)
}

// ErrRoleNotFound indicates an unknown role id.
type ErrRoleNotFound struct {
	RoleID string
}

func (e *ErrRoleNotFound) Error() string {
	return fmt.Sprintf("role not found: %s", e.RoleID)
}

// ErrCandidateNotFound indicates an unknown candidate id.
type ErrCandidateNotFound struct {
	CandidateID string
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate not found: %s", e.CandidateID)
}

// DefaultRoles returns the job openings the dashboard ships with.
func DefaultRoles() []candidates.Role {
	return []candidates.Role{
		{ID: "1", Name: "Frontend Developer", Count: 28},
		{ID: "2", Name: "Data Scientist", Count: 23},
		{ID: "3", Name: "UX Designer", Count: 19},
		{ID: "4", Name: "Product Manager", Count: 15},
		{ID: "5", Name: "DevOps Engineer", Count: 12},
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// RoleSlug turns a role name into the prefix used for candidate ids ("UX Designer" -> "ux-designer").
func RoleSlug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// FindRole returns the role with the given id.
func FindRole(roles []candidates.Role, id string) (candidates.Role, bool) {
	for _, r := range roles {
		if r.ID == id {
			return r, true
		}
	}
	return candidates.Role{}, false
}
