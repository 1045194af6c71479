package services

import (
	"context"

	"github.com/eshmelev/dropspace/internal/common"
	"github.com/eshmelev/dropspace/internal/localstore"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/remote/auth"
)

// Verifier reconciles the locally cached identity against the identity the
// auth service reports for the stored session token.
type Verifier struct {
	auth auth.Service
	slot *localstore.Slot
	nav  Navigator
	log  logging.Logger
}

func NewVerifier(authSvc auth.Service, slot *localstore.Slot, nav Navigator, log logging.Logger) *Verifier {
	return &Verifier{auth: authSvc, slot: slot, nav: nav, log: log}
}

// Verify runs one reconciliation pass. It never returns an error: every
// failure mode resolves to a cache or navigation adjustment.
func (v *Verifier) Verify(ctx context.Context) {
	cached, err := v.slot.Identity(ctx)
	if err != nil {
		v.log.Warn(ctx, "discarding unreadable identity cache", "error", err)
		cached = nil
	}

	token, err := v.slot.Token(ctx)
	if err != nil {
		v.log.Warn(ctx, "reading session token", "error", err)
	}

	current, err := v.auth.CurrentIdentity(ctx, token)
	if err != nil {
		// Identity lookup failed. Only a protected route needs recovery:
		// drop the cached identity and send the user back to sign-in.
		if v.nav.Location() == RouteDashboard {
			if cerr := v.slot.ClearIdentity(ctx); cerr != nil {
				v.log.Error(ctx, "clearing identity cache", "error", cerr)
			}
			v.nav.Replace(RouteAuthenticate)
		}
		v.log.Warn(ctx, "identity verification failed", "error", err)
		return
	}

	if cached == nil {
		if current != nil {
			if err := v.slot.SaveIdentity(ctx, current); err != nil {
				v.log.Error(ctx, "caching identity", "error", err)
			}
		}
		return
	}

	if current != nil {
		if cached.ID == current.ID {
			return
		}
		// The local cache belongs to somebody else. Terminate the remote
		// session, wipe the slot and force re-authentication.
		v.log.Warn(ctx, "recovering local state", "error", common.ErrIdentityMismatch,
			"cached", cached.ID, "current", current.ID)
		if err := v.auth.DeleteSession(ctx, token); err != nil {
			v.log.Warn(ctx, "terminating mismatched session", "error", err)
		}
		if err := v.slot.Clear(ctx); err != nil {
			v.log.Error(ctx, "clearing local cache", "error", err)
		}
		v.nav.Replace(RouteAuthenticate)
		return
	}

	// Remote session resolves to no identity while a cached one remains.
	if err := v.slot.ClearIdentity(ctx); err != nil {
		v.log.Error(ctx, "clearing stale identity cache", "error", err)
	}
}
