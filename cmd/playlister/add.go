package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-playlister/internal/metadata"
	"github.com/hazadus/go-playlister/internal/s3"
	"github.com/hazadus/go-playlister/internal/uploader"
	"github.com/hazadus/go-playlister/internal/utils"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "add [file path]",
		Short: "Upload an mp3 file to S3 storage and add it to the library",
		Long:  `Upload an mp3 file to S3 storage with progress tracking and register it in the media library catalog.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Создаем контекст с таймаутом для загрузки (10 минут)
			uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.uploadToS3(uploadCtx, args[0])
		},
	}
}

// uploadToS3 выгружает файл в S3 с отображением прогресса
func (app *Application) uploadToS3(ctx context.Context, filePath string) error {
	s3Uploader, err := s3.NewUploader(app.Config)
	if err != nil {
		return fmt.Errorf("ошибка создания S3 uploader: %w", err)
	}

	// Создаем сервис выгрузки
	uploadService := uploader.NewService(s3Uploader, app.Catalog)

	// Получаем информацию о файле для отображения
	metadataExtractor := metadata.NewExtractor()
	fileInfo, err := metadataExtractor.Info(filePath)
	if err != nil {
		return fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	// Отображаем информацию о выгрузке
	fmt.Printf("📤 Загружаем файл в S3:\n")
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Размер: %s\n", utils.FormatFileSize(fileInfo.Size))
	fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
	fmt.Println()

	// Создаем канал для отслеживания прогресса
	progressChan := make(chan int64)

	// Запускаем горутину для отображения прогресса
	go func() {
		startTime := time.Now()

		for {
			select {
			case progress, ok := <-progressChan:
				if !ok {
					return // Канал закрыт
				}
				if progress > 0 {
					elapsed := time.Since(startTime)
					percentage := float64(progress) / float64(fileInfo.Size) * 100

					// Вычисляем скорость загрузки
					speed := float64(progress) / elapsed.Seconds()

					// Вычисляем оставшееся время
					remainingBytes := fileInfo.Size - progress
					var remainingTime time.Duration
					if speed > 0 {
						remainingTime = time.Duration(float64(remainingBytes)/speed) * time.Second
					}

					// Очищаем строку и выводим прогресс
					fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s | Осталось: %s",
						percentage,
						utils.FormatFileSize(int64(speed)),
						utils.FormatDuration(elapsed),
						utils.FormatDuration(remainingTime))
				}
			case <-ctx.Done():
				fmt.Printf("\n🚫 Загрузка отменена\n")
				return
			}
		}
	}()

	// Выполняем выгрузку с контекстом
	result, err := uploadService.UploadFile(ctx, filePath, func(bytesRead int64) {
		progressChan <- bytesRead
	})

	// Закрываем канал прогресса
	close(progressChan)

	if err != nil {
		return fmt.Errorf("ошибка загрузки файла: %w", err)
	}

	// Проверяем, не была ли операция отменена
	if ctx.Err() != nil {
		return fmt.Errorf("операция отменена: %w", ctx.Err())
	}

	fmt.Printf("\n✅ Файл успешно загружен в S3!\n")
	fmt.Printf("   URL: %s\n", result.URL)

	// Добавляем трек в каталог и сохраняем его
	id := uploadService.UpdateCatalog(result)
	if err := app.SaveCatalog(); err != nil {
		return fmt.Errorf("ошибка сохранения каталога: %w", err)
	}

	fmt.Printf("\n📦 Трек добавлен в библиотеку с ID %d\n", id)
	return nil
}
