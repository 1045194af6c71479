package localstore

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/eshmelev/dropspace/internal/localstore/migrations"
)

// InitDatabase opens (creating if needed) the local SQLite cache database
// and applies pending migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
