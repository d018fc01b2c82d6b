package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/playlist"
)

// createExportCommand создает команду export с привязкой к экземпляру приложения
func (app *Application) createExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.m3u]",
		Short: "Export the media library to an m3u playlist",
		Long:  `Write all tracks of the media library catalog into an m3u playlist file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.exportLibrary(args[0])
		},
	}
}

// exportLibrary выгружает каталог библиотеки в файл плейлиста
func (app *Application) exportLibrary(outPath string) error {
	lib := medialist.NewLibrary(app.Instance)
	if !lib.Valid() {
		return fmt.Errorf("не удалось создать объект библиотеки")
	}
	defer lib.Release()

	if lib.Load() != 0 {
		return fmt.Errorf("не удалось загрузить библиотеку из %s", app.Config.DataFile)
	}

	list := medialist.FromLibrary(lib)
	if !list.Valid() {
		return fmt.Errorf("не удалось получить список библиотеки")
	}
	defer list.Release()

	// Собираем записи плейлиста под блокировкой списка
	var entries []playlist.Entry
	list.Locked(func() {
		count := list.Count()
		entries = make([]playlist.Entry, 0, count)
		for i := 0; i < count; i++ {
			item := list.ItemAtIndex(i)
			if item == nil {
				continue
			}

			entry := playlist.Entry{
				Location: item.MRL(),
				Title:    displayTitle(item),
				Length:   -1,
			}
			if ms := item.Duration(); ms > 0 {
				entry.Length = int(ms / 1000)
			}
			item.Release()
			entries = append(entries, entry)
		}
	})

	if len(entries) == 0 {
		return fmt.Errorf("библиотека пуста, нечего экспортировать")
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ошибка создания файла плейлиста: %w", err)
	}
	defer file.Close()

	if err := playlist.Write(file, entries); err != nil {
		return fmt.Errorf("ошибка записи плейлиста: %w", err)
	}

	fmt.Printf("✅ Экспортировано треков: %d\n", len(entries))
	fmt.Printf("📄 Плейлист сохранен: %s\n", outPath)
	return nil
}

// displayTitle возвращает заголовок записи вида "Исполнитель - Название"
func displayTitle(item *medialist.Media) string {
	artist := item.Meta(medialist.MetaArtist)
	title := item.Meta(medialist.MetaTitle)
	if artist != "" && title != "" {
		return artist + " - " + title
	}
	return title
}
