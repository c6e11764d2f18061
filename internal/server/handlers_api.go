package server

import (
	"context"
	"net/http"

	"github.com/jonathan/vettedge/internal/analysis"
	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/rs/zerolog"
)

type roleCandidatesResponse struct {
	Role       candidates.Role        `json:"role"`
	Count      int                    `json:"count"`
	Candidates []candidates.Candidate `json:"candidates"`
}

// apiError replies with err's status. Internal errors are logged and not exposed.
func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.provider.ListRoles(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	if roles == nil {
		roles = []candidates.Role{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"roles": roles})
}

// handleListRoleCandidates returns the role's candidates filtered and sorted by q, sort and dir.
func (s *Server) handleListRoleCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, role, _, err := s.loadRole(ctx, r.PathValue("id"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	list, err := s.provider.ListCandidates(ctx, role.ID)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	rows := candidates.ProjectLocale(list, analysis.StateFromQuery(r.URL.Query()), s.language)
	if rows == nil {
		rows = []candidates.Candidate{}
	}

	s.jsonResponse(w, http.StatusOK, roleCandidatesResponse{Role: role, Count: len(rows), Candidates: rows})
}

// handleGetCandidate returns the assessment detail of one candidate. The optional role
// query parameter names the role used in the recommendation; otherwise it is looked up.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := s.provider.GetCandidate(ctx, r.PathValue("id"))
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	var role candidates.Role
	if id := r.URL.Query().Get(analysis.ParamRole); id != "" {
		_, role, _, err = s.loadRole(ctx, id)
	} else {
		role, err = s.roleOf(ctx, c.ID)
	}
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis.BuildDetail(role.Name, *c))
}

// roleOf finds the role a candidate applied to. It returns the zero Role when none lists it.
func (s *Server) roleOf(ctx context.Context, candidateID string) (candidates.Role, error) {
	roles, err := s.provider.ListRoles(ctx)
	if err != nil {
		return candidates.Role{}, err
	}
	for _, role := range roles {
		list, err := s.provider.ListCandidates(ctx, role.ID)
		if err != nil {
			return candidates.Role{}, err
		}
		for _, c := range list {
			if c.ID == candidateID {
				return role, nil
			}
		}
	}
	return candidates.Role{}, nil
}
