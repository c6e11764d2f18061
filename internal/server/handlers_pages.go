package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/vettedge/internal/activity"
	"github.com/jonathan/vettedge/internal/upload"
	"github.com/rs/zerolog"
)

// uploadFormOverhead allows for multipart framing and the role field on top of the file.
const uploadFormOverhead = 1 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "dashboard", pageData{Title: "Dashboard", Nav: "dashboard", Data: overview})
}

type uploadPage struct {
	Role   string
	Header []string
	Rows   [][]string
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s.renderUpload(w, r, http.StatusOK, "", nil)
}

func (s *Server) renderUpload(w http.ResponseWriter, r *http.Request, status int, role string, flash *Flash) {
	s.render(w, r, status, "upload", pageData{
		Title: "Upload",
		Nav:   "upload",
		Flash: flash,
		Data:  uploadPage{Role: role, Header: upload.SampleHeader, Rows: upload.SampleRows},
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+uploadFormOverhead)

	sub, err := readSubmission(r)
	if err == nil {
		err = upload.Validate(sub)
	}
	if err != nil {
		var vErr *upload.ValidationError
		if !errors.As(err, &vErr) {
			s.renderError(w, r, err)
			return
		}
		s.renderUpload(w, r, http.StatusBadRequest, sub.Role, &Flash{Kind: FlashError, Title: vErr.Title, Description: vErr.Description})
		return
	}

	role := strings.TrimSpace(sub.Role)
	a := activity.Upload(sub.File.Name, role, s.now())
	if err := s.activities.RecordActivity(r.Context(), a); err != nil {
		s.renderError(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("file", sub.File.Name).Str("role", role).Int64("size", sub.File.Size).Msg("candidates uploaded")

	setFlash(w, Flash{Kind: FlashSuccess, Title: "Upload successful", Description: a.Description})
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}

// readSubmission extracts the upload form. A body over the size cap is reported as a
// too-large file rather than a server error.
func readSubmission(r *http.Request) (upload.Submission, error) {
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return upload.Submission{}, &upload.ValidationError{Field: "file", Title: "File too large", Description: "CSV files only, max 5MB"}
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			return upload.Submission{}, &ErrValidation{Field: "form", Message: err.Error()}
		}
	}

	sub := upload.Submission{Role: r.FormValue("role")}
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		file.Close()
		sub.File = &upload.File{Name: header.Filename, Size: header.Size}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return sub, &ErrValidation{Field: "file", Message: err.Error()}
	}
	return sub, nil
}

func (s *Server) handleSampleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates-sample.csv"`)
	if err := upload.WriteSample(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write sample CSV")
	}
}
