package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
	"github.com/eshmelev/dropspace/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with existing credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			reader := bufio.NewReader(os.Stdin)

			email, err := promptLine(reader, "Enter email", os.Stdout)
			if err != nil {
				return err
			}
			password, err := promptPassword(os.Stdout)
			if err != nil {
				return err
			}

			if err := a.Services.Gateway.Login(ctx, models.LoginForm{Email: email, Password: password}); err != nil {
				return err
			}
			fmt.Println("Signed in.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
