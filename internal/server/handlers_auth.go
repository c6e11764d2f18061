package server

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/vettedge/internal/config"
	"github.com/rs/zerolog"
)

// loginRequest is the login form.
type loginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type loginPage struct {
	Email    string
	DemoMode bool
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(config.SessionCookie); err == nil {
		if _, err := s.jwtService.ValidateToken(c.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}
	s.render(w, r, http.StatusOK, "login", pageData{Title: "Login", Data: loginPage{DemoMode: s.auth.DemoMode()}})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := loginRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}

	if err := s.login(req); err != nil {
		zerolog.Ctx(r.Context()).Info().Err(err).Msg("login rejected")
		s.render(w, r, HTTPStatus(err), "login", pageData{
			Title: "Login",
			Flash: &Flash{Kind: FlashError, Title: "Login failed", Description: "Please check your credentials and try again"},
			Data:  loginPage{Email: req.Email, DemoMode: s.auth.DemoMode()},
		})
		return
	}

	token, err := s.jwtService.GenerateToken(req.Email)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.jwtService.config.Expiration().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	setFlash(w, Flash{Kind: FlashSuccess, Title: "Login successful", Description: "Welcome back to VettEdge"})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// login checks the form and credentials.
func (s *Server) login(req loginRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return validationError(err)
	}
	if !s.auth.Check(req.Email, req.Password, s.password) {
		return &ErrInvalidCredentials{}
	}
	return nil
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: config.SessionCookie, Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) apiUnauthorized(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
}

// validationError converts the first validator failure into an ErrValidation.
func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &ErrValidation{Field: strings.ToLower(errs[0].Field()), Message: errs[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
