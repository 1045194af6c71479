package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			identity, err := a.Services.Gateway.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if identity == nil {
				return fmt.Errorf("not signed in")
			}
			fmt.Printf("%s <%s> (%s)\n", identity.Name, identity.Email, identity.ID)
			for k, v := range identity.Prefs {
				fmt.Printf("  %s: %s\n", k, v)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
