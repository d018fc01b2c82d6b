package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{65 * time.Second, "00:01:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.duration); got != c.expected {
			t.Errorf("Ожидалось %s, получено: %s", c.expected, got)
		}
	}
}

func TestFormatDurationFromSeconds(t *testing.T) {
	if got := FormatDurationFromSeconds(431); got != "00:07:11" {
		t.Errorf("Ожидалось 00:07:11, получено: %s", got)
	}
	if got := FormatDurationFromSeconds(3601); got != "01:00:01" {
		t.Errorf("Ожидалось 01:00:01, получено: %s", got)
	}
}

func TestFormatMilliseconds(t *testing.T) {
	if got := FormatMilliseconds(213000); got != "00:03:33" {
		t.Errorf("Ожидалось 00:03:33, получено: %s", got)
	}
	if got := FormatMilliseconds(-1); got != "--:--:--" {
		t.Errorf("Ожидалось --:--:--, получено: %s", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("Короткая строка не должна меняться, получено: %s", got)
	}
	if got := TruncateString("a very long string", 10); got != "a very ..." {
		t.Errorf("Ожидалось 'a very ...', получено: %s", got)
	}
	if got := TruncateString("abcdef", 3); got != "abc" {
		t.Errorf("Ожидалось 'abc', получено: %s", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	if got := FormatFileSize(512); got != "512 B" {
		t.Errorf("Ожидалось 512 B, получено: %s", got)
	}
	if got := FormatFileSize(1536); got != "1.5 KB" {
		t.Errorf("Ожидалось 1.5 KB, получено: %s", got)
	}
	if got := FormatFileSize(5 * 1024 * 1024); got != "5.0 MB" {
		t.Errorf("Ожидалось 5.0 MB, получено: %s", got)
	}
}
