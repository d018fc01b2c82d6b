package fetch

import (
	"strings"
	"testing"
)

// TestExtractVideoID тестирует извлечение ID видео из разных форматов URL
func TestExtractVideoID(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "WatchURL",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "ShortURL",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "EmbedURL",
			url:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "BareID",
			url:      "dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:    "InvalidURL",
			url:     "https://example.com/video",
			wantErr: true,
		},
		{
			name:    "EmptyString",
			url:     "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ExtractVideoID(tc.url)

			if tc.wantErr {
				if err == nil {
					t.Errorf("Ожидалась ошибка для URL: %s", tc.url)
				}
				return
			}

			if err != nil {
				t.Fatalf("Неожиданная ошибка: %v", err)
			}
			if id != tc.expected {
				t.Errorf("Ожидался ID: %s, получено: %s", tc.expected, id)
			}
		})
	}
}

// TestSanitizeFileName тестирует очистку имени файла
func TestSanitizeFileName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "CleanName",
			input:    "My Song",
			expected: "My Song",
		},
		{
			name:     "ForbiddenChars",
			input:    `Artist: "Song" <live>/remix?`,
			expected: "Artist_ _Song_ _live__remix_",
		},
		{
			name:     "SurroundingSpaces",
			input:    "  spaced out  ",
			expected: "spaced out",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeFileName(tc.input)
			if result != tc.expected {
				t.Errorf("Ожидалось: %q, получено: %q", tc.expected, result)
			}
		})
	}
}

// TestSanitizeFileNameLength тестирует ограничение длины имени файла
func TestSanitizeFileNameLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	result := SanitizeFileName(long)
	if len(result) != 200 {
		t.Errorf("Ожидалась длина 200, получено: %d", len(result))
	}
}
