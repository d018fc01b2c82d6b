package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/fetch"
)

// createDownloadCommand создает команду download с привязкой к экземпляру приложения
func (app *Application) createDownloadCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "download [YouTube URL]",
		Short: "Download audio from YouTube video as MP3",
		Long:  `Download audio from YouTube video and save it as MP3 file to the configured download directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.downloadAudio(ctx, args[0])
		},
	}
}

// downloadAudio скачивает аудио из YouTube видео
func (app *Application) downloadAudio(ctx context.Context, url string) error {
	videoID, err := fetch.ExtractVideoID(url)
	if err != nil {
		return fmt.Errorf("ошибка извлечения ID видео: %w", err)
	}

	fmt.Printf("Скачиваем аудио для видео ID: %s\n", videoID)

	fetcher := fetch.NewFetcher(app.Config.DownloadDir)
	result, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	fmt.Printf("Название: %s\n", result.Title)
	fmt.Printf("Автор: %s\n", result.Author)
	fmt.Printf("Использован формат: itag=%d, качество=%s\n", result.ItagNo, result.Quality)
	fmt.Printf("✅ Аудио успешно скачано: %s\n", result.FilePath)

	return nil
}
