// Package uploader предоставляет функционал для выгрузки медиафайлов в хранилище
package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazadus/go-playlister/internal/library"
	"github.com/hazadus/go-playlister/internal/metadata"
	"github.com/hazadus/go-playlister/internal/s3"
)

// Service управляет процессом выгрузки файлов
type Service struct {
	s3Uploader        *s3.Uploader
	metadataExtractor *metadata.Extractor
	catalog           *library.Catalog
}

// NewService создает новый сервис выгрузки
func NewService(s3Uploader *s3.Uploader, catalog *library.Catalog) *Service {
	return &Service{
		s3Uploader:        s3Uploader,
		metadataExtractor: metadata.NewExtractor(),
		catalog:           catalog,
	}
}

// UploadResult содержит результат выгрузки
type UploadResult struct {
	URL      string
	Metadata metadata.TrackMetadata
	FileInfo *metadata.FileInfo
}

// UploadFile выгружает файл с метаданными
func (s *Service) UploadFile(ctx context.Context, filePath string, progressCallback func(int64)) (*UploadResult, error) {
	// Проверяем существование файла
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("файл не найден: %s", filePath)
	}

	// Получаем информацию о файле
	fileInfo, err := s.metadataExtractor.Info(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	// Извлекаем метаданные
	trackMetadata := s.metadataExtractor.ExtractFromFile(filePath)

	// Открываем файл для выгрузки
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	// Создаем reader с отслеживанием прогресса
	var reader io.Reader = file
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       fileInfo.Size,
			OnProgress: progressCallback,
		}
	}

	// Формируем ключ для S3
	fileName := getFileNameWithoutExt(filePath)
	s3Key := fileName + ".mp3"

	// Выгружаем файл с контекстом
	url, err := s.s3Uploader.UploadFile(ctx, reader, s3Key)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки в S3: %w", err)
	}

	return &UploadResult{
		URL:      url,
		Metadata: trackMetadata,
		FileInfo: fileInfo,
	}, nil
}

// UpdateCatalog добавляет выгруженный трек в каталог и возвращает его идентификатор
func (s *Service) UpdateCatalog(result *UploadResult) int {
	track := library.Track{
		Artist:   result.Metadata.Artist,
		Title:    result.Metadata.Title,
		Album:    result.Metadata.Album,
		Length:   int(result.FileInfo.Duration.Seconds()),
		FileSize: result.FileInfo.Size,
		URL:      result.URL,
	}

	return s.catalog.AddTrack(track)
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}

// getFileNameWithoutExt возвращает имя файла без расширения
func getFileNameWithoutExt(filePath string) string {
	fileName := filepath.Base(filePath)
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
