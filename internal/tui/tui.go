// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	mediaList *medialist.MediaList
}

// NewApp создает новый экземпляр TUI приложения поверх списка медиа
func NewApp(mediaList *medialist.MediaList) *App {
	return &App{
		mediaList: mediaList,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	// Создаем модель для Bubble Tea
	model := app.NewMainModel(tuiApp.mediaList)

	// Создаем программу Bubble Tea
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Запускаем программу
	_, err := p.Run()

	// Закрываем плеер и отписываемся от событий после завершения программы
	model.Close()

	return err
}
