package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
	"github.com/eshmelev/dropspace/internal/models"
)

var (
	lsAll    bool
	lsBucket bool
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List your documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if lsBucket {
				infos, err := a.Services.Query.ListBucket(ctx, a.Config.S3Bucket)
				if err != nil {
					return err
				}
				for _, info := range infos {
					fmt.Printf("%s  %d  %s\n", info.ID, info.Size, info.LastModified.Format("2006-01-02 15:04"))
				}
				return nil
			}

			if lsAll {
				// The global view holds the fresh set after the refresh.
				if _, err := a.Services.Query.All(ctx); err != nil {
					return err
				}
				printDocs(a.Services.AllDocuments.Get())
				return nil
			}

			identity, err := a.Services.Gateway.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if identity == nil {
				return fmt.Errorf("not signed in")
			}
			result, err := a.Services.Query.ByOwner(ctx, identity.ID)
			if err != nil {
				return err
			}
			a.Services.GlobalDocuments.Set(result.Documents)
			printDocs(result.Documents)
			if result.Total > len(result.Documents) {
				fmt.Printf("(%d of %d)\n", len(result.Documents), result.Total)
			}
			return nil
		})
	},
}

func printDocs(docs []*models.DocumentRecord) {
	for _, doc := range docs {
		visibility := "private"
		if doc.Public {
			visibility = "public"
		}
		fmt.Printf("%s  %-8s  %-9s  %s\n", doc.ID, doc.SizeLabel, visibility, doc.Filename)
	}
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&lsAll, "all", false, "List documents across all owners")
	lsCmd.Flags().BoolVar(&lsBucket, "bucket", false, "List raw bucket objects instead of documents")
}
