package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
	"github.com/eshmelev/dropspace/internal/config"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "dropspace",
	Short: "Stage local files, upload them to object storage and track their metadata",
	Long: `Dropspace stages local files, uploads them to an S3-compatible object
store and keeps a metadata record per document in a remote document store.
A local single-slot cache mirrors the signed-in identity between runs.`,
	SilenceUsage: true,
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Configuration is resolved by the config package (defaults, JSON file,
	// short flags). The flags are registered here so cobra accepts them.
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "path to JSON config file")
	pf.StringP("database-dsn", "d", "", "PostgreSQL DSN")
	pf.StringP("secret-key", "s", "", "JWT HMAC secret key")
	pf.IntP("session-minutes", "t", 0, "session validity, minutes")
	pf.StringP("s3-user", "u", "", "S3 root user")
	pf.StringP("s3-password", "p", "", "S3 root password")
	pf.StringP("s3-bucket", "b", "", "S3 bucket name")
	pf.StringP("s3-region", "g", "", "S3 region")
	pf.StringP("s3-endpoint", "e", "", "S3 base endpoint")
	pf.StringP("database-id", "i", "", "document store database id")
	pf.StringP("collection-id", "o", "", "document store collection id")
	pf.StringP("local-db", "l", "", "local SQLite cache path")
	pf.StringP("watch-dir", "w", "", "staging watch directory")
	pf.StringP("watch-pattern", "m", "", "staging watch glob pattern")
}

// withApp assembles the application for one command invocation and tears it
// down afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, config.LoadConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
