// Package common defines shared sentinel errors and random-token helpers
// used across the dropspace core. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Remote-store errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmailTaken   = errors.New("email already registered")

	// Token lifecycle errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")

	// Identity reconciliation (recovered locally, never surfaced to callers).
	ErrIdentityMismatch = errors.New("cached identity does not match remote identity")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
