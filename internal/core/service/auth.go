package service

import (
	"crypto/subtle"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CredentialVerifier = StaticCredentials{}

// StaticCredentials accepts a single configured username and password.
// With either of them empty nobody can log in.
type StaticCredentials struct {
	username string
	password string
}

func NewStaticCredentials(username, password string) StaticCredentials {
	return StaticCredentials{username, password}
}

func (c StaticCredentials) VerifyCredentials(username, password string) error {
	const op = "StaticCredentials.VerifyCredentials"

	if c.username == "" || c.password == "" {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.password))
	if userOK&passOK != 1 {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}
	return nil
}
