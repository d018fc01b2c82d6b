package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/medialist"
)

// createScanCommand создает команду scan с привязкой к экземпляру приложения
func (app *Application) createScanCommand(ctx context.Context) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Discover audio files in a directory",
		Long: `Scan a directory for audio files using the media discovery service.
Without arguments the configured media directory is scanned.
With --watch the command keeps running and reports files as they appear.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := app.Config.MediaDir
			if len(args) > 0 {
				dir = args[0]
			}
			return app.scanDirectory(ctx, dir, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep watching the directory for new files")
	return cmd
}

// scanDirectory запускает сервис обнаружения и печатает найденные файлы
func (app *Application) scanDirectory(ctx context.Context, dir string, watch bool) error {
	discoverer := medialist.NewDiscoverer(app.Instance, dir)
	if !discoverer.Valid() {
		return fmt.Errorf("не удалось создать сервис обнаружения для %s", dir)
	}
	defer discoverer.Release()

	list := medialist.FromDiscoverer(discoverer)
	if !list.Valid() {
		return fmt.Errorf("не удалось получить список результатов обнаружения")
	}
	defer list.Release()

	// Печатаем каждый найденный файл через события живого списка
	em := list.EventManager()
	addedID := em.Attach(medialist.EventItemAdded, func(e medialist.Event) {
		fmt.Printf("🎵 Найдено: %s\n", friendlyName(app, e))
	})
	defer em.Detach(medialist.EventItemAdded, addedID)

	fmt.Printf("🔍 Сканируем каталог: %s\n\n", dir)

	if discoverer.Start() != 0 {
		return fmt.Errorf("не удалось запустить сканирование каталога %s", dir)
	}
	defer discoverer.Stop()

	var count int
	list.Locked(func() {
		count = list.Count()
	})
	fmt.Printf("\n✅ Найдено файлов: %d\n", count)

	if !watch {
		return nil
	}

	fmt.Println("👀 Отслеживаем появление новых файлов. Ctrl+C для выхода.")
	<-ctx.Done()
	fmt.Println("\n⏹️  Отслеживание остановлено")
	return nil
}

// friendlyName возвращает имя найденного файла для вывода
func friendlyName(app *Application, e medialist.Event) string {
	media := medialist.EventMedia(app.Instance, e)
	if media == nil {
		return "(неизвестно)"
	}
	return filepath.Base(media.MRL())
}
