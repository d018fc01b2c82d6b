package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/player"
	"github.com/hazadus/go-playlister/internal/playlist"
	"github.com/hazadus/go-playlister/internal/streaming"
	"github.com/hazadus/go-playlister/internal/utils"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [source...]",
		Short: "Play media from files, playlists, URLs or library track IDs",
		Long: `Build a media list from the given sources and play it.
Each source may be a local mp3 file, an m3u playlist, a URL, or a numeric track ID from the library.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.playSources(ctx, args)
		},
	}
}

// playSources собирает список медиа из источников и воспроизводит его
func (app *Application) playSources(ctx context.Context, sources []string) error {
	list := medialist.New(app.Instance)
	if !list.Valid() {
		return fmt.Errorf("не удалось создать список медиа")
	}
	defer list.Release()

	// Печатаем каждый добавленный элемент через диспетчер событий списка
	em := list.EventManager()
	addedID := em.Attach(medialist.EventItemAdded, func(e medialist.Event) {
		fmt.Printf("➕ В очереди (позиция %d)\n", e.Index+1)
	})
	defer em.Detach(medialist.EventItemAdded, addedID)

	for _, source := range sources {
		if err := app.appendSource(list, source); err != nil {
			return err
		}
	}

	var count int
	list.Locked(func() {
		count = list.Count()
	})
	if count == 0 {
		return fmt.Errorf("ни один источник не дал воспроизводимых элементов")
	}

	fmt.Printf("\n🎵 Элементов в очереди: %d\n\n", count)

	return app.runPlayback(ctx, list)
}

// appendSource добавляет один источник в список.
// Файлы плейлистов разворачиваются через подэлементы медиа.
func (app *Application) appendSource(list *medialist.MediaList, source string) error {
	// Числовой аргумент — ID трека из каталога
	if id, err := strconv.Atoi(source); err == nil {
		return app.appendCatalogTrack(list, id)
	}

	media := medialist.NewMedia(app.Instance, source)
	if !media.Valid() {
		return fmt.Errorf("не удалось открыть источник: %s", source)
	}
	defer media.Release()

	if playlist.IsPlaylistFile(source) {
		return appendSubitems(list, media)
	}

	list.Locked(func() {
		list.AddMedia(media)
	})
	return nil
}

// appendCatalogTrack добавляет трек каталога по его ID
func (app *Application) appendCatalogTrack(list *medialist.MediaList, id int) error {
	track, err := app.Catalog.TrackByID(id)
	if err != nil {
		return fmt.Errorf("ошибка поиска трека: %w", err)
	}
	if track.URL == "" {
		return fmt.Errorf("у трека с ID %d отсутствует URL", id)
	}

	media := medialist.NewMedia(app.Instance, track.URL)
	if !media.Valid() {
		return fmt.Errorf("не удалось открыть трек с ID %d", id)
	}
	defer media.Release()

	media.SetMeta(medialist.MetaArtist, track.Artist)
	media.SetMeta(medialist.MetaTitle, track.Title)
	media.SetMeta(medialist.MetaAlbum, track.Album)
	media.SetMeta(medialist.MetaCatalogID, strconv.Itoa(track.ID))

	list.Locked(func() {
		list.AddMedia(media)
	})
	return nil
}

// appendSubitems переносит подэлементы медиа-плейлиста в список
func appendSubitems(list *medialist.MediaList, media *medialist.Media) error {
	sublist := medialist.FromMedia(media)
	if !sublist.Valid() {
		return fmt.Errorf("не удалось прочитать плейлист: %s", media.MRL())
	}
	defer sublist.Release()

	var items []*medialist.Media
	sublist.Locked(func() {
		count := sublist.Count()
		for i := 0; i < count; i++ {
			if item := sublist.ItemAtIndex(i); item != nil {
				items = append(items, item)
			}
		}
	})

	list.Locked(func() {
		for _, item := range items {
			list.AddMedia(item)
		}
	})
	for _, item := range items {
		item.Release()
	}
	return nil
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readSingleChar читает одиночный символ без ожидания Enter
func readSingleChar() (byte, error) {
	buffer := make([]byte, 1)
	_, err := os.Stdin.Read(buffer)
	return buffer[0], err
}

// runPlayback воспроизводит список с консольным управлением
func (app *Application) runPlayback(ctx context.Context, list *medialist.MediaList) error {
	p := player.NewPlayer()
	defer p.Close()

	if err := p.PlayList(list, 0); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}

	printCurrentTrack(p)

	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [n] - следующий трек, [p] - предыдущий\n")
	fmt.Printf("   [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	// Запускаем горутину для обработки клавиш
	keys := make(chan byte)
	go func() {
		for {
			char, err := readSingleChar()
			if err != nil {
				continue
			}
			keys <- char
		}
	}()

	// Главный цикл обработки событий
	for {
		select {
		case char := <-keys:
			switch char {
			case ' ', '\n', '\r':
				p.Pause()
				fmt.Printf("\r\033[K") // Очищаем текущую строку
				if p.IsPlaying() {
					fmt.Printf("▶️  Воспроизведение\n")
				} else {
					fmt.Printf("⏸️  Пауза\n")
				}
			case 'n':
				if err := p.Next(); err == nil {
					fmt.Printf("\r\033[K")
					printCurrentTrack(p)
				}
			case 'p':
				if err := p.Prev(); err == nil {
					fmt.Printf("\r\033[K")
					printCurrentTrack(p)
				}
			}
		case status := <-p.Progress():
			displayProgress(status)
		case <-p.Done():
			// Трек закончился, переходим к следующему
			if err := p.Next(); err != nil {
				fmt.Println("\n✅ Воспроизведение списка завершено")
				return nil
			}
			fmt.Printf("\r\033[K")
			printCurrentTrack(p)
		case <-ctx.Done():
			fmt.Println("\n⏹️  Воспроизведение остановлено")
			p.Stop()
			return nil
		}
	}
}

// printCurrentTrack выводит информацию об играющем элементе
func printCurrentTrack(p *player.Player) {
	current := p.Current()
	if current == nil {
		return
	}

	artist := current.Meta(medialist.MetaArtist)
	title := current.Meta(medialist.MetaTitle)
	if title == "" {
		title = filepath.Base(current.MRL())
	}

	if artist != "" {
		fmt.Printf("🎵 Сейчас играет: %s - %s\n", artist, title)
	} else {
		fmt.Printf("🎵 Сейчас играет: %s\n", title)
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(status player.Status) {
	// Определяем процент завершения
	var progress string
	if status.Total > 0 {
		percent := float64(status.Current) / float64(status.Total) * 100
		progress = fmt.Sprintf("%.1f%%", percent)
	} else {
		progress = "??%"
	}

	// Выбираем иконку статуса
	statusIcon := "⏱️"
	statusText := streaming.StatusText(status.StuckCount)

	if !status.IsPlaying {
		statusIcon = "⏸️"
		statusText = "На паузе"
	} else if status.StuckCount > 3 {
		statusIcon = "⚠️"
	} else if status.Speed >= 0.98 && status.Speed <= 1.02 {
		statusIcon = "✅"
	}

	// Отображаем прогресс
	if status.Total > 0 {
		fmt.Printf("\r%s  %s | %s / %s | Статус: %s",
			statusIcon,
			progress,
			utils.FormatDuration(status.Current),
			utils.FormatDuration(status.Total),
			statusText)
	} else {
		fmt.Printf("\r%s  %s | Потоковое воспроизведение | Статус: %s",
			statusIcon,
			utils.FormatDuration(status.Current),
			statusText)
	}
}
