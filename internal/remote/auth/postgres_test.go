package auth

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshmelev/dropspace/internal/common"
	sc "github.com/eshmelev/dropspace/internal/config"
	"github.com/eshmelev/dropspace/internal/logging"
)

func newMockService(t *testing.T) (*PostgresService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	cfg := &sc.Config{SecretKey: "test-secret", SessionValidityDuration: time.Hour}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewPostgresService(db, cfg, log), mock, db
}

func TestCreateIdentity(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO identities").
		WillReturnResult(sqlmock.NewResult(0, 1))

	identity, err := svc.CreateIdentity(context.Background(), "id1", "ann@example.com", "longenough", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "id1", identity.ID)
	assert.Equal(t, "ann@example.com", identity.Email)
	assert.Equal(t, "Ann", identity.Name)
	assert.False(t, identity.CreatedAt.IsZero())
}

func TestCreateIdentityEmailTaken(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO identities").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := svc.CreateIdentity(context.Background(), "id1", "ann@example.com", "longenough", "Ann")
	require.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestCreateSession(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	salt, hash, err := HashPassword("longenough")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, password_salt, password_hash FROM identities").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_salt", "password_hash"}).
			AddRow("id1", salt, hash))
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	session, err := svc.CreateSession(context.Background(), "ann@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "id1", session.IdentityID)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.Expires.After(time.Now()))

	id, err := IdentityIDFromToken(session.Token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, "id1", id)
}

func TestCreateSessionBadPassword(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	salt, hash, err := HashPassword("longenough")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, password_salt, password_hash FROM identities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_salt", "password_hash"}).
			AddRow("id1", salt, hash))

	_, err = svc.CreateSession(context.Background(), "ann@example.com", "wrong-password")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCreateSessionUnknownEmail(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, password_salt, password_hash FROM identities").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.CreateSession(context.Background(), "ghost@example.com", "whatever-pw")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCurrentIdentity(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	token, err := GenerateToken("id1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT expires FROM sessions").
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows([]string{"expires"}).AddRow(time.Now().Add(time.Hour)))
	mock.ExpectQuery("SELECT id, email, name, prefs, created_at FROM identities").
		WithArgs("id1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "prefs", "created_at"}).
			AddRow("id1", "ann@example.com", "Ann", []byte(`{"profile":"https://p"}`), created))

	identity, err := svc.CurrentIdentity(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "id1", identity.ID)
	assert.Equal(t, "https://p", identity.Prefs["profile"])
	assert.Equal(t, created, identity.CreatedAt)
}

func TestCurrentIdentityEmptyToken(t *testing.T) {
	svc, _, db := newMockService(t)
	defer db.Close()

	_, err := svc.CurrentIdentity(context.Background(), "")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCurrentIdentityRevokedSession(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	token, err := GenerateToken("id1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT expires FROM sessions").
		WillReturnError(sql.ErrNoRows)

	_, err = svc.CurrentIdentity(context.Background(), token)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCurrentIdentityExpiredSession(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	token, err := GenerateToken("id1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT expires FROM sessions").
		WillReturnRows(sqlmock.NewRows([]string{"expires"}).AddRow(time.Now().Add(-time.Minute)))

	_, err = svc.CurrentIdentity(context.Background(), token)
	require.ErrorIs(t, err, common.ErrSessionExpired)
}

func TestCurrentIdentityGoneIdentity(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	token, err := GenerateToken("id1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT expires FROM sessions").
		WillReturnRows(sqlmock.NewRows([]string{"expires"}).AddRow(time.Now().Add(time.Hour)))
	mock.ExpectQuery("SELECT id, email, name, prefs, created_at FROM identities").
		WillReturnError(sql.ErrNoRows)

	identity, err := svc.CurrentIdentity(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestDeleteSession(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, svc.DeleteSession(context.Background(), "tok"))
}

func TestUpdatePreferences(t *testing.T) {
	svc, mock, db := newMockService(t)
	defer db.Close()

	token, err := GenerateToken("id1", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT expires FROM sessions").
		WillReturnRows(sqlmock.NewRows([]string{"expires"}).AddRow(time.Now().Add(time.Hour)))
	mock.ExpectQuery("SELECT id, email, name, prefs, created_at FROM identities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "prefs", "created_at"}).
			AddRow("id1", "ann@example.com", "Ann", []byte(`{"theme":"dark"}`), time.Now()))
	mock.ExpectExec("UPDATE identities SET prefs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	identity, err := svc.UpdatePreferences(context.Background(), token, map[string]string{"profile": "https://p"})
	require.NoError(t, err)
	assert.Equal(t, "dark", identity.Prefs["theme"])
	assert.Equal(t, "https://p", identity.Prefs["profile"])
}
