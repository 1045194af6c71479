package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eshmelev/dropspace/internal/models"
)

// Slot wraps the raw store with the identity-mirror schema: one cached
// identity snapshot and one session token.
type Slot struct {
	store Store
}

func NewSlot(store Store) *Slot {
	return &Slot{store: store}
}

// Identity returns the cached identity snapshot, or nil if none is cached.
func (s *Slot) Identity(ctx context.Context) (*models.Identity, error) {
	raw, err := s.store.Get(ctx, KeyIdentity)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("decode cached identity: %w", err)
	}
	return &identity, nil
}

func (s *Slot) SaveIdentity(ctx context.Context, identity *models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return s.store.Set(ctx, KeyIdentity, raw)
}

func (s *Slot) ClearIdentity(ctx context.Context) error {
	return s.store.Delete(ctx, KeyIdentity)
}

// Token returns the stored session token, or "" when logged out.
func (s *Slot) Token(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, KeySessionToken)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Slot) SaveToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, KeySessionToken, []byte(token))
}

// Clear wipes both the identity mirror and the session token.
func (s *Slot) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
