package config

import (
	"errors"
	"os"
)

// Environment variables supplying default credentials. They are typically
// loaded from a .env file at startup.
const (
	EnvEmail    = "LINKEDIN_EMAIL"
	EnvPassword = "LINKEDIN_PASSWORD"
)

// ErrMissingCredentials is returned when neither explicit arguments nor the
// environment supply a complete credential pair.
var ErrMissingCredentials = errors.New("missing credentials")

// Credentials holds one resolved credential pair. Never persisted and never
// logged.
type Credentials struct {
	Email    string
	Password string
}

// ResolveCredentials resolves a credential pair with explicit precedence:
// a non-empty call argument wins over the corresponding environment
// variable. If either field is still empty after fallback it returns
// ErrMissingCredentials; callers must fail fast without touching the
// browser.
func ResolveCredentials(email, password string) (Credentials, error) {
	if email == "" {
		email = os.Getenv(EnvEmail)
	}
	if password == "" {
		password = os.Getenv(EnvPassword)
	}

	if email == "" || password == "" {
		return Credentials{}, ErrMissingCredentials
	}

	return Credentials{Email: email, Password: password}, nil
}
