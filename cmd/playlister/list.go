package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tracks from the media library",
		Long:  `Display a list of all tracks stored in the media library catalog.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listTracks()
		},
	}
}

func (app *Application) listTracks() {
	if len(app.Catalog.Tracks) == 0 {
		fmt.Println("📚 Библиотека пуста. Добавьте треки с помощью команды 'add'.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(app.Catalog.Tracks))

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %-30s %-30s %-20s %-12s %-12s\n",
		"ID", "Исполнитель", "Название", "Альбом", "Длительность", "Размер")
	fmt.Println(strings.Repeat("-", 120))

	// Выводим каждый трек
	for _, track := range app.Catalog.Tracks {
		duration := utils.FormatDurationFromSeconds(track.Length)
		fileSize := utils.FormatFileSize(track.FileSize)

		// Обрезаем длинные строки для красивого отображения
		artist := utils.TruncateString(track.Artist, 28)
		title := utils.TruncateString(track.Title, 28)
		album := utils.TruncateString(track.Album, 18)

		fmt.Printf("%-4d %-30s %-30s %-20s %-12s %-12s\n",
			track.ID, artist, title, album, duration, fileSize)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'playlister play [ID]' для воспроизведения трека")
}
