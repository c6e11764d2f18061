package server

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"

	"github.com/jonathan/vettedge/internal/analysis"
	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/export"
	"github.com/jonathan/vettedge/internal/provider"
)

type analysisPage struct {
	Roles   []candidates.Role
	Table   *analysis.Table
	Actions []string
}

// loadRole resolves the role named by id, or the first role when id is empty.
// It returns ok=false when there are no roles at all.
func (s *Server) loadRole(ctx context.Context, id string) (roles []candidates.Role, role candidates.Role, ok bool, err error) {
	roles, err = s.provider.ListRoles(ctx)
	if err != nil {
		return nil, candidates.Role{}, false, fmt.Errorf("failed to list roles: %w", err)
	}
	if id == "" {
		if len(roles) == 0 {
			return roles, candidates.Role{}, false, nil
		}
		return roles, roles[0], true, nil
	}
	role, found := provider.FindRole(roles, id)
	if !found {
		return roles, candidates.Role{}, false, &provider.ErrRoleNotFound{RoleID: id}
	}
	return roles, role, true, nil
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	roles, role, ok, err := s.loadRole(ctx, query.Get(analysis.ParamRole))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	page := analysisPage{Roles: roles, Actions: analysis.RowActions}
	if ok {
		list, err := s.provider.ListCandidates(ctx, role.ID)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		table := analysis.BuildTable(role, list, analysis.StateFromQuery(query), s.language)
		page.Table = &table
	}

	s.render(w, r, http.StatusOK, "analysis", pageData{Title: "Analysis", Nav: "analysis", Data: page})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	_, role, ok, err := s.loadRole(ctx, query.Get(analysis.ParamRole))
	if err == nil && !ok {
		err = &ErrValidation{Field: "role", Message: "no roles to export"}
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	list, err := s.provider.ListCandidates(ctx, role.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	rows := candidates.ProjectLocale(list, analysis.StateFromQuery(query), s.language)

	var buf bytes.Buffer
	if err := export.WriteTable(&buf, role.Name, rows); err != nil {
		s.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(export.FileName(role.Name)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// attachment builds a Content-Disposition value; non-ASCII names use the RFC 2231 form.
func attachment(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
