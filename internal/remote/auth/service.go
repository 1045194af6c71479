// Package auth defines the remote authentication collaborator: identity
// creation, session establishment and teardown, and preference updates.
// The Postgres adapter backs it with identities and sessions tables and
// HS256 session tokens.
package auth

import (
	"context"

	"github.com/eshmelev/dropspace/internal/models"
)

// Service is the auth collaborator consumed by the session gateway and the
// identity verifier.
type Service interface {
	// CreateIdentity registers a new identity under a client-generated id.
	// A taken email yields common.ErrEmailTaken.
	CreateIdentity(ctx context.Context, id, email, password, name string) (*models.Identity, error)

	// CreateSession verifies credentials and opens a session. Bad
	// credentials yield common.ErrUnauthorized.
	CreateSession(ctx context.Context, email, password string) (*models.Session, error)

	// DeleteSession terminates the session; deleting an unknown token is
	// not an error.
	DeleteSession(ctx context.Context, token string) error

	// CurrentIdentity resolves the identity behind an active session.
	CurrentIdentity(ctx context.Context, token string) (*models.Identity, error)

	// UpdatePreferences merges patch into the session identity's
	// preferences and returns the updated identity.
	UpdatePreferences(ctx context.Context, token string, patch map[string]string) (*models.Identity, error)
}
