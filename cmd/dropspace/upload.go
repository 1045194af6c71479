package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
	"github.com/eshmelev/dropspace/internal/filex"
)

var uploadProfile bool

var uploadCmd = &cobra.Command{
	Use:   "upload <path> [path...]",
	Short: "Upload local files as documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			for _, path := range args {
				file, err := filex.StageFromPath(path)
				if err != nil {
					return err
				}

				if uploadProfile {
					url, err := a.Services.Uploader.UploadProfile(ctx, file)
					if err != nil {
						return err
					}
					fmt.Printf("profile picture set: %s\n", url)
					continue
				}

				a.Services.Staging.Select(file)
				docs, err := a.Services.Uploader.Upload(ctx, file)
				if err != nil {
					return err
				}
				uploaded := docs[len(docs)-1]
				fmt.Printf("%s  %s  %s\n", uploaded.ID, uploaded.SizeLabel, uploaded.Filename)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVar(&uploadProfile, "profile", false, "Store as profile picture instead of a document")
}
