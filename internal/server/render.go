package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jonathan/vettedge/internal/analysis"
	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/server/middleware"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "dashboard", "upload", "analysis", "error"}

var templateFuncs = template.FuncMap{
	"analysisURL": func(roleID string, state candidates.State) template.URL {
		return template.URL("/analysis?" + analysis.Encode(roleID, state))
	},
	"exportURL": func(roleID string, state candidates.State) template.URL {
		return template.URL("/analysis/export.xlsx?" + analysis.Encode(roleID, state.ClearSelection()))
	},
}

// parsePages builds one template set per page, each combined with the shared layout.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// pageData is what the layout renders around a page body.
type pageData struct {
	Title string
	Nav   string // active sidebar entry, empty hides the sidebar
	User  string
	Flash *Flash
	Data  any
}

// render writes the named page. A pending flash is shown unless data already carries one.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if data.Flash == nil {
		data.Flash = popFlash(w, r)
	}
	if session, err := middleware.GetSession(r); err == nil {
		data.User = session.GetEmail()
	}

	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows err as an error page with the status HTTPStatus assigns it.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		message = "Something went wrong. Please try again."
	}
	s.render(w, r, status, "error", pageData{
		Title: http.StatusText(status),
		Nav:   "none",
		Data:  map[string]any{"Status": status, "Message": message},
	})
}
