// Package playlist содержит разбор и генерацию плейлистов в формате M3U
package playlist

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Entry представляет одну запись плейлиста
type Entry struct {
	Location string // Путь к файлу или URL
	Title    string // Название из #EXTINF, если есть
	Length   int    // Длительность в секундах из #EXTINF (-1, если неизвестна)
}

// Parse разбирает содержимое M3U-плейлиста (обычного или расширенного).
// Относительные пути раскрываются относительно baseDir.
func Parse(r io.Reader, baseDir string) ([]Entry, error) {
	var entries []Entry

	// Накопленные атрибуты из #EXTINF для следующей записи
	pendingTitle := ""
	pendingLength := -1

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "#EXTM3U" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF:") {
			pendingLength, pendingTitle = parseExtInf(line)
			continue
		}
		if strings.HasPrefix(line, "#") {
			// Прочие директивы пропускаем
			continue
		}

		location := line
		if !isRemote(location) && !filepath.IsAbs(location) && baseDir != "" {
			location = filepath.Join(baseDir, location)
		}

		entries = append(entries, Entry{
			Location: location,
			Title:    pendingTitle,
			Length:   pendingLength,
		})
		pendingTitle = ""
		pendingLength = -1
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения плейлиста: %w", err)
	}
	return entries, nil
}

// Write записывает записи в расширенном формате M3U
func Write(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintln(w, "#EXTM3U"); err != nil {
		return fmt.Errorf("ошибка записи плейлиста: %w", err)
	}
	for _, e := range entries {
		if e.Title != "" || e.Length >= 0 {
			length := e.Length
			if length < 0 {
				length = -1
			}
			if _, err := fmt.Fprintf(w, "#EXTINF:%d,%s\n", length, e.Title); err != nil {
				return fmt.Errorf("ошибка записи плейлиста: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w, e.Location); err != nil {
			return fmt.Errorf("ошибка записи плейлиста: %w", err)
		}
	}
	return nil
}

// IsPlaylistFile сообщает, является ли путь файлом плейлиста M3U
func IsPlaylistFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".m3u" || ext == ".m3u8"
}

// parseExtInf разбирает директиву "#EXTINF:length,title"
func parseExtInf(line string) (int, string) {
	payload := strings.TrimPrefix(line, "#EXTINF:")
	length := -1
	title := ""

	if idx := strings.Index(payload, ","); idx >= 0 {
		title = strings.TrimSpace(payload[idx+1:])
		payload = payload[:idx]
	}

	// Длительность может содержать дополнительные атрибуты после пробела
	if fields := strings.Fields(payload); len(fields) > 0 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			length = n
		}
	}
	return length, title
}

// isRemote проверяет, является ли расположение URL
func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
