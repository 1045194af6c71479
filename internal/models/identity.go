// Package models defines the data model shared by the dropspace core:
// identities, staged files, document records, and boundary forms.
package models

import "time"

// Identity is the authenticated user's profile as known by the remote auth
// service. A local single-slot cache mirrors it for fast access; the remote
// service stays authoritative and the two are reconciled by the verifier.
type Identity struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Prefs     map[string]string `json:"prefs,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Session is an authenticated connection to the auth service, distinct from
// the locally cached identity mirror.
type Session struct {
	Token      string
	IdentityID string
	Expires    time.Time
}
