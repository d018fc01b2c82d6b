// Package library содержит постоянный каталог медиа, хранящийся в YAML-файле
package library

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Track описывает одну запись каталога
type Track struct {
	ID        int    `yaml:"id"`
	Artist    string `yaml:"artist"`
	Title     string `yaml:"title"`
	Album     string `yaml:"album"`
	Length    int    `yaml:"length"`     // Длина трека в секундах
	FileSize  int64  `yaml:"file_size"`  // Размер файла в байтах
	URL       string `yaml:"url"`        // URL трека в хранилище S3
	SourceURL string `yaml:"source_url"` // Откуда трек был получен (если скачан)
}

// Catalog хранит все записи каталога медиа
type Catalog struct {
	Tracks []Track `yaml:"tracks"`
}

// NewCatalog создает пустой каталог
func NewCatalog() *Catalog {
	return &Catalog{
		Tracks: make([]Track, 0),
	}
}

// Load загружает каталог из файла
func (c *Catalog) Load(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Если файл не найден, начинаем с пустого каталога
		if os.IsNotExist(err) {
			*c = *NewCatalog()
			return nil
		}
		return fmt.Errorf("ошибка чтения файла каталога: %w", err)
	}
	if len(data) == 0 {
		*c = *NewCatalog()
		return nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("ошибка разбора каталога: %w", err)
	}
	return nil
}

// Save сохраняет каталог в файл
func (c *Catalog) Save(filePath string) error {
	path, err := ExpandPath(filePath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("ошибка сериализации каталога: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла каталога: %w", err)
	}
	return nil
}

// AddTrack добавляет запись в каталог, присваивая ей следующий свободный ID
func (c *Catalog) AddTrack(track Track) int {
	maxID := 0
	for _, t := range c.Tracks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	track.ID = maxID + 1
	c.Tracks = append(c.Tracks, track)
	return track.ID
}

// TrackByID возвращает запись каталога по ID
func (c *Catalog) TrackByID(id int) (*Track, error) {
	for i := range c.Tracks {
		if c.Tracks[i].ID == id {
			return &c.Tracks[i], nil
		}
	}
	return nil, fmt.Errorf("трека с ID %d не найдено", id)
}

// DeleteTrackByID удаляет запись каталога по ID
func (c *Catalog) DeleteTrackByID(id int) error {
	for i := range c.Tracks {
		if c.Tracks[i].ID == id {
			c.Tracks = append(c.Tracks[:i], c.Tracks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("трека с ID %d не найдено", id)
}

// ExpandPath раскрывает тильду в начале пути до домашнего каталога
func ExpandPath(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(filePath, "~", home, 1), nil
}
