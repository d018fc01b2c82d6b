package playlist

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSimpleM3U(t *testing.T) {
	content := `track1.mp3
track2.mp3

track3.mp3
`
	entries, err := Parse(strings.NewReader(content), "/music")
	if err != nil {
		t.Fatalf("Ошибка разбора плейлиста: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Ожидалось 3 записи, получено %d", len(entries))
	}

	// Относительные пути должны раскрываться относительно baseDir
	expected := filepath.Join("/music", "track1.mp3")
	if entries[0].Location != expected {
		t.Errorf("Ожидался путь %s, получено: %s", expected, entries[0].Location)
	}

	// Для простого формата длительность неизвестна
	if entries[0].Length != -1 {
		t.Errorf("Ожидалась длительность -1, получено: %d", entries[0].Length)
	}
}

func TestParseExtendedM3U(t *testing.T) {
	content := `#EXTM3U
#EXTINF:213,The Beatles - Hey Jude
hey_jude.mp3
#EXTINF:-1,Online Stream
https://stream.example.com/radio.mp3
`
	entries, err := Parse(strings.NewReader(content), "/music")
	if err != nil {
		t.Fatalf("Ошибка разбора плейлиста: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Ожидалось 2 записи, получено %d", len(entries))
	}

	if entries[0].Title != "The Beatles - Hey Jude" {
		t.Errorf("Ожидался Title: The Beatles - Hey Jude, получено: %s", entries[0].Title)
	}
	if entries[0].Length != 213 {
		t.Errorf("Ожидалась длительность 213, получено: %d", entries[0].Length)
	}

	// URL не должен раскрываться относительно baseDir
	if entries[1].Location != "https://stream.example.com/radio.mp3" {
		t.Errorf("URL изменился при разборе: %s", entries[1].Location)
	}
	if entries[1].Length != -1 {
		t.Errorf("Ожидалась длительность -1, получено: %d", entries[1].Length)
	}
}

func TestParseAbsolutePath(t *testing.T) {
	content := "/abs/path/track.mp3\n"
	entries, err := Parse(strings.NewReader(content), "/music")
	if err != nil {
		t.Fatalf("Ошибка разбора плейлиста: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Ожидалась 1 запись, получено %d", len(entries))
	}
	if entries[0].Location != "/abs/path/track.mp3" {
		t.Errorf("Абсолютный путь изменился при разборе: %s", entries[0].Location)
	}
}

func TestWriteM3U(t *testing.T) {
	entries := []Entry{
		{Location: "/music/a.mp3", Title: "Track A", Length: 120},
		{Location: "/music/b.mp3"},
	}

	var sb strings.Builder
	if err := Write(&sb, entries); err != nil {
		t.Fatalf("Ошибка записи плейлиста: %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "#EXTM3U\n") {
		t.Error("Ожидался заголовок #EXTM3U")
	}
	if !strings.Contains(out, "#EXTINF:120,Track A") {
		t.Errorf("Ожидалась директива #EXTINF для первой записи, получено:\n%s", out)
	}

	// Результат должен разбираться обратно без потерь расположений
	parsed, err := Parse(strings.NewReader(out), "")
	if err != nil {
		t.Fatalf("Ошибка обратного разбора: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("Ожидалось 2 записи после обратного разбора, получено %d", len(parsed))
	}
	if parsed[0].Location != "/music/a.mp3" || parsed[1].Location != "/music/b.mp3" {
		t.Errorf("Расположения изменились после обратного разбора: %+v", parsed)
	}
}

func TestIsPlaylistFile(t *testing.T) {
	if !IsPlaylistFile("mix.m3u") {
		t.Error("Ожидалось, что mix.m3u — файл плейлиста")
	}
	if !IsPlaylistFile("mix.M3U8") {
		t.Error("Ожидалось, что mix.M3U8 — файл плейлиста")
	}
	if IsPlaylistFile("song.mp3") {
		t.Error("Файл song.mp3 не должен считаться плейлистом")
	}
}
