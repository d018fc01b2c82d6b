// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	DataFile      string `yaml:"data_file"`     // YAML-файл каталога медиа
	MediaDir      string `yaml:"media_dir"`     // Каталог для сервиса обнаружения
	DownloadDir   string `yaml:"download_dir"`  // Куда сохранять скачанные файлы
	Backend       string `yaml:"backend"`       // Бэкенд списков: memlist или vlc
	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// LoadConfig загружает конфигурацию приложения из указанного файла
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// Без файла конфигурации работаем со значениями по умолчанию
	default:
		return nil, err
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.DataFile == "" {
		config.DataFile = "~/.playlister.data"
	}
	if config.DownloadDir == "" {
		config.DownloadDir = "~/Downloads"
	}
	if config.MediaDir == "" {
		config.MediaDir = "~/Music"
	}
	if config.Backend == "" {
		config.Backend = "memlist"
	}

	// Раскрываем тильду в путях
	config.DataFile = strings.Replace(config.DataFile, "~", home, 1)
	config.DownloadDir = strings.Replace(config.DownloadDir, "~", home, 1)
	config.MediaDir = strings.Replace(config.MediaDir, "~", home, 1)

	return config, nil
}
