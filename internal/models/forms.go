package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks boundary form validation failures. Wrap with
// field-specific context; match with errors.Is.
var ErrValidation = errors.New("validation error")

const minPasswordLen = 8

// RegisterForm carries the fields needed to create a new identity.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

func (f *RegisterForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validateEmail(f.Email); err != nil {
		return err
	}
	return validatePassword(f.Password)
}

// LoginForm carries the credentials for establishing a session.
type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() error {
	if err := validateEmail(f.Email); err != nil {
		return err
	}
	return validatePassword(f.Password)
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: malformed email %q", ErrValidation, email)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	return nil
}
