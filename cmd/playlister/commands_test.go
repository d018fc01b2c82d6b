package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazadus/go-playlister/internal/config"
	"github.com/hazadus/go-playlister/internal/library"
	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/native/memlist"
	"github.com/hazadus/go-playlister/internal/native/vlc"
)

// captureOutput перехватывает stdout и stderr во время выполнения функции
func captureOutput(t *testing.T, fn func()) string {
	// Сохраняем оригинальные stdout и stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Ошибка создания pipe: %v", err)
	}

	os.Stdout = w
	os.Stderr = w

	fn()

	os.Stdout = oldStdout
	os.Stderr = oldStderr

	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("Ошибка чтения результата: %v", err)
	}

	return buf.String()
}

// createTestApplication создает тестовое приложение с временными данными
func createTestApplication(t *testing.T, tempDir string) *Application {
	t.Helper()

	dataFile := filepath.Join(tempDir, "playlister.data")

	testConfig := &config.Config{
		DataFile:      dataFile,
		MediaDir:      tempDir,
		DownloadDir:   tempDir,
		Backend:       "memlist",
		AwsRegion:     "us-east-1",
		AwsAccessKey:  "test-key",
		AwsSecretKey:  "test-secret",
		AwsEndpoint:   "http://localhost:9000",
		AwsBucketName: "test-bucket",
	}

	api := memlist.NewWithOptions(memlist.Options{DataFile: dataFile})

	app := &Application{
		Config:   testConfig,
		Catalog:  library.NewCatalog(),
		API:      api,
		Instance: medialist.NewInstance(api),
	}

	t.Cleanup(app.Close)
	return app
}

// TestCmdList проверяет, что команда `list` корректно выводит список треков
func TestCmdList(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	app.Catalog.AddTrack(library.Track{
		Artist:   "Test Artist",
		Title:    "Test Title",
		Album:    "Test Album",
		Length:   180,
		FileSize: 1024000,
		URL:      "https://s3.example.com/test.mp3",
	})

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	expectedStrings := []string{
		"📚 Найдено треков: 1",
		"Test Artist",
		"Test Title",
		"Test Album",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
}

// TestCmdListEmpty проверяет, что команда `list` корректно обрабатывает пустую библиотеку
func TestCmdListEmpty(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "📚 Библиотека пуста") {
		t.Errorf("Команда list не отобразила сообщение о пустой библиотеке: %s", output)
	}
}

// TestCmdDelete проверяет, что команда `delete` удаляет указанный трек
func TestCmdDelete(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	// Треки без URL: S3 при удалении не затрагивается
	app.Catalog.AddTrack(library.Track{Artist: "Artist 1", Title: "Title 1"})
	app.Catalog.AddTrack(library.Track{Artist: "Artist 2", Title: "Title 2"})

	if len(app.Catalog.Tracks) != 2 {
		t.Fatalf("Ожидалось 2 трека, получено %d", len(app.Catalog.Tracks))
	}

	deleteCmd := app.createDeleteCommand(context.Background())

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"1"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды delete: %v", err)
		}
	})

	if !strings.Contains(output, "🗑️  Удаляем трек: Artist 1 - Title 1") {
		t.Errorf("Команда delete не отобразила ожидаемый вывод: %s", output)
	}

	if len(app.Catalog.Tracks) != 1 {
		t.Errorf("Ожидался 1 трек после удаления, получено %d", len(app.Catalog.Tracks))
	}

	if app.Catalog.Tracks[0].Artist != "Artist 2" {
		t.Errorf("Ожидался Artist: Artist 2, получено: %s", app.Catalog.Tracks[0].Artist)
	}
}

// TestCmdDeleteInvalidID проверяет обработку неверного ID в команде delete
func TestCmdDeleteInvalidID(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	deleteCmd := app.createDeleteCommand(context.Background())

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"invalid"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Команда delete завершилась с ошибкой при неверном ID: %v", err)
		}
	})

	if !strings.Contains(output, "❌ Ошибка: неверный ID") {
		t.Errorf("Команда delete не отобразила ошибку для неверного ID: %s", output)
	}
}

// TestCmdDownloadInvalidURL проверяет обработку неверного URL в команде download
func TestCmdDownloadInvalidURL(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	downloadCmd := app.createDownloadCommand(context.Background())
	downloadCmd.SetOut(io.Discard)
	downloadCmd.SetErr(io.Discard)

	downloadCmd.SetArgs([]string{"invalid-url"})
	err := downloadCmd.Execute()

	if err == nil {
		t.Fatal("Ожидалась ошибка при выполнении команды download с неверным URL")
	}

	if !strings.Contains(err.Error(), "ошибка извлечения ID видео") {
		t.Errorf("Неожиданная ошибка команды download: %v", err)
	}
}

// TestCmdScan проверяет, что команда `scan` находит аудио-файлы
func TestCmdScan(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	musicDir := filepath.Join(tempDir, "music")
	if err := os.MkdirAll(musicDir, 0755); err != nil {
		t.Fatalf("Ошибка создания каталога: %v", err)
	}
	for _, name := range []string{"one.mp3", "two.flac", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(musicDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Ошибка создания файла: %v", err)
		}
	}

	scanCmd := app.createScanCommand(context.Background())

	output := captureOutput(t, func() {
		scanCmd.SetArgs([]string{musicDir})
		if err := scanCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды scan: %v", err)
		}
	})

	if !strings.Contains(output, "✅ Найдено файлов: 2") {
		t.Errorf("Команда scan не отобразила число найденных файлов: %s", output)
	}
	if !strings.Contains(output, "one.mp3") {
		t.Errorf("Команда scan не отобразила найденный файл one.mp3: %s", output)
	}
	if strings.Contains(output, "notes.txt") {
		t.Errorf("Команда scan отобразила не-аудио файл: %s", output)
	}
}

// TestCmdExport проверяет экспорт библиотеки в m3u-плейлист
func TestCmdExport(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	// Наполняем каталог и сохраняем его в файл данных бэкенда
	app.Catalog.AddTrack(library.Track{
		Artist: "Exported Artist",
		Title:  "Exported Title",
		Length: 213,
		URL:    "https://s3.example.com/exported.mp3",
	})
	if err := app.SaveCatalog(); err != nil {
		t.Fatalf("Ошибка сохранения каталога: %v", err)
	}

	outPath := filepath.Join(tempDir, "library.m3u")
	exportCmd := app.createExportCommand()

	output := captureOutput(t, func() {
		exportCmd.SetArgs([]string{outPath})
		if err := exportCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды export: %v", err)
		}
	})

	if !strings.Contains(output, "✅ Экспортировано треков: 1") {
		t.Errorf("Команда export не отобразила число треков: %s", output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Плейлист не был создан: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "#EXTM3U") {
		t.Errorf("Плейлист не содержит заголовок #EXTM3U: %s", content)
	}
	if !strings.Contains(content, "#EXTINF:213,Exported Artist - Exported Title") {
		t.Errorf("Плейлист не содержит запись EXTINF: %s", content)
	}
	if !strings.Contains(content, "https://s3.example.com/exported.mp3") {
		t.Errorf("Плейлист не содержит URL трека: %s", content)
	}
}

// TestCmdAddInvalidArgs проверяет обработку неверных аргументов в команде add
func TestCmdAddInvalidArgs(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addCmd := app.createAddCommand(context.Background())

	var buf bytes.Buffer
	addCmd.SetOut(&buf)
	addCmd.SetErr(&buf)

	err := addCmd.Execute()
	if err == nil {
		t.Error("Ожидалась ошибка при выполнении команды add без аргументов")
	}

	output := buf.String()
	if !strings.Contains(output, "requires exactly 1 arg") && !strings.Contains(output, "accepts 1 arg") {
		t.Errorf("Команда add не отобразила ошибку о неверных аргументах: %s", output)
	}
}

func TestNewBackendSelection(t *testing.T) {
	t.Run("Memlist", func(t *testing.T) {
		cfg := &config.Config{Backend: "memlist", DataFile: filepath.Join(t.TempDir(), "playlister.data")}
		api, err := newBackend(cfg)
		if err != nil {
			t.Fatalf("Неожиданная ошибка для бэкенда memlist: %v", err)
		}
		if api == nil {
			t.Fatal("Бэкенд memlist не должен быть nil")
		}
	})

	t.Run("VLCUnavailable", func(t *testing.T) {
		if vlc.Supported {
			t.Skip("Сборка с libvlc: бэкенд vlc доступен")
		}
		cfg := &config.Config{Backend: "vlc"}
		_, err := newBackend(cfg)
		if err == nil {
			t.Fatal("Ожидалась ошибка для бэкенда vlc без поддержки libvlc")
		}
		if !strings.Contains(err.Error(), "with_libvlc") {
			t.Errorf("Ошибка должна подсказывать тег сборки with_libvlc: %v", err)
		}
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		cfg := &config.Config{Backend: "tape-deck"}
		_, err := newBackend(cfg)
		if err == nil {
			t.Fatal("Ожидалась ошибка для неизвестного бэкенда")
		}
	})
}
