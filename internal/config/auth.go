package config

import (
	"fmt"
	"os"
	"strings"
)

// AuthConfig names the single operator allowed to sign in. When both fields are
// empty the dashboard runs in demo mode and accepts any non-empty credentials.
type AuthConfig struct {
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
	PasswordHash string `json:"password_hash,omitempty" yaml:"password_hash,omitempty"` // bcrypt hash
}

// NewAuthConfig reads AUTH_EMAIL and AUTH_PASSWORD_HASH.
func NewAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{
		Email:        strings.TrimSpace(os.Getenv("AUTH_EMAIL")),
		PasswordHash: strings.TrimSpace(os.Getenv("AUTH_PASSWORD_HASH")),
	}
	if (cfg.Email == "") != (cfg.PasswordHash == "") {
		return nil, fmt.Errorf("AUTH_EMAIL and AUTH_PASSWORD_HASH must be set together")
	}
	return cfg, nil
}

// DemoMode reports whether no operator is configured.
func (c AuthConfig) DemoMode() bool {
	return c.Email == "" && c.PasswordHash == ""
}

// Check verifies credentials. In demo mode any non-empty email and password pass.
func (c AuthConfig) Check(email, password string, pw *PasswordConfig) bool {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false
	}
	if c.DemoMode() {
		return true
	}
	if !strings.EqualFold(email, c.Email) {
		return false
	}
	return pw.VerifyPassword(password, c.PasswordHash)
}
