package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id> [id...]",
	Short: "Delete documents and their stored objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			for _, id := range args {
				if err := a.Services.Mutation.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Printf("deleted %s\n", id)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
