package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddTrackAssignsIDs(t *testing.T) {
	catalog := NewCatalog()

	id1 := catalog.AddTrack(Track{Artist: "Artist 1", Title: "Title 1"})
	id2 := catalog.AddTrack(Track{Artist: "Artist 2", Title: "Title 2"})

	if id1 != 1 {
		t.Errorf("Ожидался ID: 1, получено: %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Ожидался ID: 2, получено: %d", id2)
	}

	// После удаления первой записи счетчик продолжает от максимума
	if err := catalog.DeleteTrackByID(1); err != nil {
		t.Fatalf("Ошибка удаления трека: %v", err)
	}
	id3 := catalog.AddTrack(Track{Artist: "Artist 3", Title: "Title 3"})
	if id3 != 3 {
		t.Errorf("Ожидался ID: 3, получено: %d", id3)
	}
}

func TestTrackByID(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddTrack(Track{Artist: "The Beatles", Title: "Hey Jude"})
	catalog.AddTrack(Track{Artist: "Queen", Title: "Bohemian Rhapsody"})

	track, err := catalog.TrackByID(2)
	if err != nil {
		t.Fatalf("Ошибка поиска трека: %v", err)
	}
	if track.Artist != "Queen" {
		t.Errorf("Ожидался Artist: Queen, получено: %s", track.Artist)
	}

	if _, err := catalog.TrackByID(999); err == nil {
		t.Error("Ожидалась ошибка при поиске несуществующего трека")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	dataPath := filepath.Join(tempDir, "library.yaml")

	catalog := NewCatalog()
	catalog.AddTrack(Track{
		Artist:    "Test Artist",
		Title:     "Test Title",
		Album:     "Test Album",
		Length:    180,
		FileSize:  1024000,
		URL:       "https://s3.example.com/test.mp3",
		SourceURL: "https://example.com/source",
	})

	if err := catalog.Save(dataPath); err != nil {
		t.Fatalf("Ошибка сохранения каталога: %v", err)
	}

	loaded := NewCatalog()
	if err := loaded.Load(dataPath); err != nil {
		t.Fatalf("Ошибка загрузки каталога: %v", err)
	}

	if len(loaded.Tracks) != 1 {
		t.Fatalf("Ожидался 1 трек, получено %d", len(loaded.Tracks))
	}
	track := loaded.Tracks[0]
	if track.Artist != "Test Artist" || track.Title != "Test Title" {
		t.Errorf("Метаданные трека загружены некорректно: %+v", track)
	}
	if track.URL != "https://s3.example.com/test.mp3" {
		t.Errorf("Ожидался URL: https://s3.example.com/test.mp3, получено: %s", track.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddTrack(Track{Artist: "A", Title: "B"})

	// Отсутствующий файл не ошибка: каталог становится пустым
	err := catalog.Load(filepath.Join(t.TempDir(), "no_such_file.yaml"))
	if err != nil {
		t.Fatalf("Ожидалась инициализация пустым каталогом, получена ошибка: %v", err)
	}
	if len(catalog.Tracks) != 0 {
		t.Errorf("Ожидался пустой каталог, получено %d треков", len(catalog.Tracks))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	dataPath := filepath.Join(tempDir, "empty.yaml")
	if err := os.WriteFile(dataPath, []byte{}, 0644); err != nil {
		t.Fatalf("Ошибка создания файла: %v", err)
	}

	catalog := NewCatalog()
	if err := catalog.Load(dataPath); err != nil {
		t.Fatalf("Ошибка загрузки пустого файла: %v", err)
	}
	if len(catalog.Tracks) != 0 {
		t.Errorf("Ожидался пустой каталог, получено %d треков", len(catalog.Tracks))
	}
}
