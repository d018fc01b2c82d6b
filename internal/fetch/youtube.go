// Package fetch предоставляет функционал для скачивания аудио из YouTube
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// Result содержит сведения о скачанном аудио
type Result struct {
	FilePath string
	Title    string
	Author   string
	ItagNo   int
	Quality  string
}

// Fetcher скачивает аудиодорожки YouTube-видео в локальную директорию
type Fetcher struct {
	client      youtube.Client
	downloadDir string
}

// NewFetcher создает новый Fetcher, сохраняющий файлы в downloadDir
func NewFetcher(downloadDir string) *Fetcher {
	return &Fetcher{
		client:      youtube.Client{},
		downloadDir: downloadDir,
	}
}

// Fetch скачивает аудио по YouTube URL и сохраняет его как MP3-файл
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	// Извлекаем ID видео из URL
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return nil, fmt.Errorf("ошибка извлечения ID видео: %w", err)
	}

	// Получаем информацию о видео
	video, err := f.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о видео: %w", err)
	}

	// Находим лучший аудио формат
	audioFormat := findBestAudioFormat(video.Formats)
	if audioFormat == nil {
		return nil, fmt.Errorf("аудио формат не найден")
	}

	// Получаем поток для скачивания
	stream, _, err := f.client.GetStreamContext(ctx, video, audioFormat)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения потока: %w", err)
	}
	defer stream.Close()

	// Создаем директорию если она не существует
	if err := os.MkdirAll(f.downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории: %w", err)
	}

	fileName := SanitizeFileName(video.Title) + ".mp3"
	filePath := filepath.Join(f.downloadDir, fileName)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer file.Close()

	// Копируем данные из потока в файл
	if _, err := io.Copy(file, stream); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("ошибка скачивания: %w", err)
	}

	return &Result{
		FilePath: filePath,
		Title:    video.Title,
		Author:   video.Author,
		ItagNo:   audioFormat.ItagNo,
		Quality:  audioFormat.Quality,
	}, nil
}

// ExtractVideoID извлекает ID видео из различных форматов YouTube URL
func ExtractVideoID(url string) (string, error) {
	// Паттерны для различных форматов YouTube URL
	patterns := []string{
		`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`,
		`(?:youtube\.com/embed/)([a-zA-Z0-9_-]{11})`,
		`(?:youtube\.com/v/)([a-zA-Z0-9_-]{11})`,
	}

	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		matches := re.FindStringSubmatch(url)
		if len(matches) > 1 {
			return matches[1], nil
		}
	}

	// Если это просто ID видео (11 символов)
	if len(url) == 11 && regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("не удалось извлечь ID видео из URL: %s", url)
}

// findBestAudioFormat находит лучший аудио формат для скачивания
func findBestAudioFormat(formats youtube.FormatList) *youtube.Format {
	// Сначала ищем форматы только с аудио
	audioFormats := formats.WithAudioChannels()

	if len(audioFormats) == 0 {
		// Если нет только аудио форматов, ищем видео+аудио форматы
		videoAudioFormats := formats.Type("video")
		for i := range videoAudioFormats {
			if videoAudioFormats[i].AudioChannels > 0 {
				return &videoAudioFormats[i]
			}
		}
		return nil
	}

	// Ищем форматы с лучшим качеством аудио
	bestFormat := &audioFormats[0]

	for i := range audioFormats {
		format := &audioFormats[i]

		// Предпочитаем форматы с более высоким битрейтом
		if format.Bitrate > bestFormat.Bitrate {
			bestFormat = format
		}

		// Предпочитаем MP4/M4A форматы для лучшей совместимости
		if strings.Contains(format.MimeType, "mp4") || strings.Contains(format.MimeType, "m4a") {
			if !strings.Contains(bestFormat.MimeType, "mp4") && !strings.Contains(bestFormat.MimeType, "m4a") {
				bestFormat = format
			}
		}
	}

	return bestFormat
}

// SanitizeFileName очищает имя файла от недопустимых символов
func SanitizeFileName(name string) string {
	// Заменяем недопустимые символы
	re := regexp.MustCompile(`[<>:"/\\|?*]`)
	name = re.ReplaceAllString(name, "_")

	// Убираем лишние пробелы
	name = strings.TrimSpace(name)

	// Ограничиваем длину имени файла
	if len(name) > 200 {
		name = name[:200]
	}

	return name
}
