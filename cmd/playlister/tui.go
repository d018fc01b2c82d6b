package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for browsing and playing the media library.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	// Строим список библиотеки для интерфейса
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

	tuiApp := tui.NewApp(list)
	return tuiApp.Run()
}
