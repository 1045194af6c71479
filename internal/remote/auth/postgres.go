package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eshmelev/dropspace/internal/common"
	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/dbx"
	"github.com/eshmelev/dropspace/internal/logging"
	"github.com/eshmelev/dropspace/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresService implements Service over identities and sessions tables.
// Session tokens are HS256 JWTs that must also match a live sessions row,
// so deleting the row revokes the token before its expiry.
type PostgresService struct {
	db       dbx.DBTX
	secret   []byte
	validity time.Duration
	log      logging.Logger
}

func NewPostgresService(db dbx.DBTX, config *sc.Config, log logging.Logger) *PostgresService {
	return &PostgresService{
		db:       db,
		secret:   []byte(config.SecretKey),
		validity: config.SessionValidityDuration,
		log:      log.With("component", "auth"),
	}
}

func (s *PostgresService) CreateIdentity(ctx context.Context, id, email, password, name string) (*models.Identity, error) {
	salt, hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	createdAt := time.Now().UTC()
	query := `
		INSERT INTO identities (id, email, name, password_salt, password_hash, prefs, created_at)
		VALUES ($1, $2, $3, $4, $5, '{}'::jsonb, $6)
	`
	if _, err := s.db.ExecContext(ctx, query, id, email, name, salt, hash, createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("create identity: %w", err)
	}

	return &models.Identity{ID: id, Email: email, Name: name, CreatedAt: createdAt}, nil
}

func (s *PostgresService) CreateSession(ctx context.Context, email, password string) (*models.Session, error) {
	var (
		identityID string
		salt, hash []byte
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, password_salt, password_hash FROM identities WHERE email=$1`, email)
	if err := row.Scan(&identityID, &salt, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	if !VerifyPassword(password, salt, hash) {
		return nil, common.ErrUnauthorized
	}

	token, err := GenerateToken(identityID, s.secret, s.validity)
	if err != nil {
		return nil, common.ErrInternal
	}

	expires := time.Now().UTC().Add(s.validity)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, identity_id, expires) VALUES ($1, $2, $3)`,
		token, identityID, expires)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &models.Session{Token: token, IdentityID: identityID, Expires: expires}, nil
}

func (s *PostgresService) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token=$1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresService) CurrentIdentity(ctx context.Context, token string) (*models.Identity, error) {
	identityID, err := s.resolveSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.getIdentity(ctx, identityID)
}

func (s *PostgresService) UpdatePreferences(ctx context.Context, token string, patch map[string]string) (*models.Identity, error) {
	identityID, err := s.resolveSession(ctx, token)
	if err != nil {
		return nil, err
	}

	identity, err := s.getIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if identity.Prefs == nil {
		identity.Prefs = make(map[string]string, len(patch))
	}
	for k, v := range patch {
		identity.Prefs[k] = v
	}

	prefs, err := json.Marshal(identity.Prefs)
	if err != nil {
		return nil, fmt.Errorf("marshal prefs: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE identities SET prefs=$2 WHERE id=$1`, identityID, prefs); err != nil {
		return nil, fmt.Errorf("update prefs: %w", err)
	}

	return identity, nil
}

// resolveSession validates the token signature and checks the sessions
// table, so revoked sessions fail even with an unexpired token.
func (s *PostgresService) resolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrUnauthorized
	}

	identityID, err := IdentityIDFromToken(token, s.secret)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	var expires time.Time
	row := s.db.QueryRowContext(ctx, `SELECT expires FROM sessions WHERE token=$1`, token)
	if err := row.Scan(&expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if expires.Before(time.Now()) {
		return "", common.ErrSessionExpired
	}

	return identityID, nil
}

func (s *PostgresService) getIdentity(ctx context.Context, id string) (*models.Identity, error) {
	var (
		identity models.Identity
		prefs    []byte
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, prefs, created_at FROM identities WHERE id=$1`, id)
	if err := row.Scan(&identity.ID, &identity.Email, &identity.Name, &prefs, &identity.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Session row outlived its identity; report "no identity"
			// rather than an auth failure.
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}

	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &identity.Prefs); err != nil {
			s.log.Warn(ctx, "malformed prefs, resetting", "identity", id, "error", err)
			identity.Prefs = nil
		}
	}
	return &identity, nil
}
