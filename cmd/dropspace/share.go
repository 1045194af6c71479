package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
	"github.com/eshmelev/dropspace/internal/common"
	"github.com/eshmelev/dropspace/internal/models"
)

var sharePrivate bool

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Make a document public (or private again with --private)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if id == "" {
			return fmt.Errorf("document id required")
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Services.Mutation.SetVisibility(ctx, id, !sharePrivate); err != nil {
				return err
			}

			doc, err := a.Services.Query.ByID(ctx, id)
			if err != nil {
				return err
			}
			out, err := describeShare(doc)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		})
	},
}

// describeShare renders the post-update state of a document. A nil record
// (the query layer's empty-id guard) reports not-found instead of being
// dereferenced.
func describeShare(doc *models.DocumentRecord) (string, error) {
	if doc == nil {
		return "", common.ErrNotFound
	}
	if doc.Public {
		return fmt.Sprintf("%s is public\nview: %s\naccess code: %s\n", doc.ID, doc.ViewURL, doc.AccessCode), nil
	}
	return fmt.Sprintf("%s is private\n", doc.ID), nil
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.Flags().BoolVar(&sharePrivate, "private", false, "Revoke public visibility")
}
