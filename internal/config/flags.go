package config

import (
	"flag"
	"os"
	"time"

	"github.com/eshmelev/dropspace/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short and long forms):
//
//	-d, --database-dsn string     PostgreSQL DSN
//	-s, --secret-key string       JWT HMAC secret key
//	-t, --session-minutes int     session validity, minutes
//	-u, --s3-user string          S3 root user
//	-p, --s3-password string      S3 root password
//	-b, --s3-bucket string        S3 bucket name
//	-g, --s3-region string        S3 region
//	-e, --s3-endpoint string      S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i, --database-id string      document store database id
//	-o, --collection-id string    document store collection id
//	-l, --local-db string         local SQLite cache path
//	-w, --watch-dir string        staging watch directory (empty disables the watcher)
//	-m, --watch-pattern string    staging watch glob pattern
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-d", "--database-dsn",
		"-s", "--secret-key",
		"-t", "--session-minutes",
		"-u", "--s3-user",
		"-p", "--s3-password",
		"-b", "--s3-bucket",
		"-g", "--s3-region",
		"-e", "--s3-endpoint",
		"-i", "--database-id",
		"-o", "--collection-id",
		"-l", "--local-db",
		"-w", "--watch-dir",
		"-m", "--watch-pattern",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDSN, "database-dsn", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.SecretKey, "secret-key", config.SecretKey, "secret key")

	sessionValidityDuration := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")
	fs.IntVar(sessionValidityDuration, "session-minutes", *sessionValidityDuration, "session_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.DatabaseID, "i", config.DatabaseID, "document store database id")
	fs.StringVar(&config.DatabaseID, "database-id", config.DatabaseID, "document store database id")
	fs.StringVar(&config.CollectionID, "o", config.CollectionID, "document store collection id")
	fs.StringVar(&config.CollectionID, "collection-id", config.CollectionID, "document store collection id")
	fs.StringVar(&config.LocalDBPath, "l", config.LocalDBPath, "local SQLite cache path")
	fs.StringVar(&config.LocalDBPath, "local-db", config.LocalDBPath, "local SQLite cache path")
	fs.StringVar(&config.WatchDir, "w", config.WatchDir, "staging watch directory")
	fs.StringVar(&config.WatchDir, "watch-dir", config.WatchDir, "staging watch directory")
	fs.StringVar(&config.WatchPattern, "m", config.WatchPattern, "staging watch glob pattern")
	fs.StringVar(&config.WatchPattern, "watch-pattern", config.WatchPattern, "staging watch glob pattern")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidityDuration) * time.Minute
}
