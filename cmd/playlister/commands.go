package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "playlister",
		Short: "A command line tool to manage and play media lists",
		Long:  `A command line tool to build, edit and play lists of media from local files, playlists, a media library and S3 storage.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createAddCommand(ctx))
	rootCmd.AddCommand(app.createDeleteCommand(ctx))
	rootCmd.AddCommand(app.createDownloadCommand(ctx))
	rootCmd.AddCommand(app.createScanCommand(ctx))
	rootCmd.AddCommand(app.createExportCommand())
	rootCmd.AddCommand(app.createTUICommand())

	return rootCmd
}
