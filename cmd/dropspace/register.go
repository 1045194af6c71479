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

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an identity and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			reader := bufio.NewReader(os.Stdin)

			name, err := promptLine(reader, "Enter name", os.Stdout)
			if err != nil {
				return err
			}
			email, err := promptLine(reader, "Enter email", os.Stdout)
			if err != nil {
				return err
			}
			password, err := promptPassword(os.Stdout)
			if err != nil {
				return err
			}

			form := models.RegisterForm{Name: name, Email: email, Password: password}
			if err := a.Services.Gateway.Register(ctx, form); err != nil {
				return err
			}
			fmt.Println("Registered and signed in.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
