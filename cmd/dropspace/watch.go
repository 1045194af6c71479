package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eshmelev/dropspace/internal/app"
	"github.com/eshmelev/dropspace/internal/models"
)

var watchUpload bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the staging directory and stage files as they appear",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if a.Config.WatchDir == "" {
				return fmt.Errorf("no watch directory configured (-w)")
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			staged := make(chan models.StagedFile, 16)
			cancel := a.Services.StagedFiles.Subscribe(func(files []models.StagedFile) {
				if len(files) == 0 {
					return
				}
				// New selections are prepended, so the head is the latest.
				select {
				case staged <- files[0]:
				default:
				}
			})
			defer cancel()

			if watchUpload {
				go func() {
					for file := range staged {
						docs, err := a.Services.Uploader.Upload(ctx, file)
						if err != nil {
							a.Log.Error(ctx, "uploading watched file", "name", file.Name, "error", err)
							continue
						}
						fmt.Printf("uploaded %s as %s\n", file.Name, docs[len(docs)-1].ID)
					}
				}()
			}

			err := a.RunWatcher(ctx)
			close(staged)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchUpload, "upload", false, "Upload each staged file immediately")
}
