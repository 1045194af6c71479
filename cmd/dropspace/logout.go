package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Terminate the session and clear the local cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Services.Gateway.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
