package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-playlister/internal/config"
	"github.com/hazadus/go-playlister/internal/library"
	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/native"
	"github.com/hazadus/go-playlister/internal/native/memlist"
	"github.com/hazadus/go-playlister/internal/native/vlc"
)

const (
	defaultConfigPath = "~/.playlister"
)

// Application связывает конфигурацию, каталог и нативный бэкенд списков
type Application struct {
	Config   *config.Config
	Catalog  *library.Catalog
	API      native.API
	Instance *medialist.Instance
}

// newApplication загружает конфигурацию и создает экземпляр приложения
func newApplication() (*Application, error) {
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	catalog := library.NewCatalog()
	if err := catalog.Load(cfg.DataFile); err != nil {
		return nil, fmt.Errorf("ошибка загрузки каталога: %w", err)
	}

	api, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:   cfg,
		Catalog:  catalog,
		API:      api,
		Instance: medialist.NewInstance(api),
	}, nil
}

// newBackend выбирает бэкенд списков согласно конфигурации
func newBackend(cfg *config.Config) (native.API, error) {
	switch cfg.Backend {
	case "memlist":
		return memlist.NewWithOptions(memlist.Options{DataFile: cfg.DataFile}), nil
	case "vlc":
		if !vlc.Supported {
			return nil, fmt.Errorf("бэкенд vlc недоступен: соберите приложение с тегом with_libvlc")
		}
		return vlc.New()
	default:
		return nil, fmt.Errorf("неизвестный бэкенд списков: %s", cfg.Backend)
	}
}

// SaveCatalog сохраняет каталог в файл данных
func (app *Application) SaveCatalog() error {
	return app.Catalog.Save(app.Config.DataFile)
}

// Close освобождает ресурсы приложения
func (app *Application) Close() {
	if app.Instance != nil {
		app.Instance.Release()
	}
}

func main() {
	// Контекст с отменой по сигналам прерывания
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication()
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}
	defer app.Close()

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
