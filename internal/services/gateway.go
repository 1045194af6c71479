package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/eshmelev/dropspace/internal/localstore"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/models"
	"github.com/eshmelev/dropspace/internal/remote/auth"
)

// Gateway owns the session lifecycle: register, login, logout and the
// current-user lookup that feeds the verifier.
type Gateway struct {
	auth     auth.Service
	slot     *localstore.Slot
	verifier *Verifier
	log      logging.Logger
}

func NewGateway(authSvc auth.Service, slot *localstore.Slot, verifier *Verifier, log logging.Logger) *Gateway {
	return &Gateway{auth: authSvc, slot: slot, verifier: verifier, log: log}
}

// Register creates an identity under a fresh client-generated id and opens
// a session for it.
func (g *Gateway) Register(ctx context.Context, form models.RegisterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := g.auth.CreateIdentity(ctx, uuid.NewString(), form.Email, form.Password, form.Name); err != nil {
		return err
	}
	return g.openSession(ctx, form.Email, form.Password)
}

// Login opens a session for existing credentials.
func (g *Gateway) Login(ctx context.Context, form models.LoginForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return g.openSession(ctx, form.Email, form.Password)
}

func (g *Gateway) openSession(ctx context.Context, email, password string) error {
	session, err := g.auth.CreateSession(ctx, email, password)
	if err != nil {
		return err
	}
	return g.slot.SaveToken(ctx, session.Token)
}

// Logout terminates the remote session if one exists and always wipes the
// local slot, so a remote fault cannot leave the client signed in.
func (g *Gateway) Logout(ctx context.Context) error {
	token, err := g.slot.Token(ctx)
	if err != nil {
		g.log.Warn(ctx, "reading session token on logout", "error", err)
	}
	if token != "" {
		if err := g.auth.DeleteSession(ctx, token); err != nil {
			g.log.Warn(ctx, "terminating remote session", "error", err)
		}
	}
	return g.slot.Clear(ctx)
}

// CurrentUser resolves the identity behind the active session and then runs
// a verification pass over the local cache.
func (g *Gateway) CurrentUser(ctx context.Context) (*models.Identity, error) {
	token, err := g.slot.Token(ctx)
	if err != nil {
		return nil, err
	}
	identity, err := g.auth.CurrentIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	g.verifier.Verify(ctx)
	return identity, nil
}

// Token exposes the stored session token for services that call the auth
// collaborator directly.
func (g *Gateway) Token(ctx context.Context) (string, error) {
	return g.slot.Token(ctx)
}
