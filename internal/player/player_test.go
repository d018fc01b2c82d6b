package player

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/native/memlist"
)

// newTestList создает список с указанными MRL на встроенном бэкенде
func newTestList(t *testing.T, mrls ...string) *medialist.MediaList {
	t.Helper()

	backend := memlist.New()
	inst := medialist.NewInstance(backend)
	list := medialist.New(inst)
	if list == nil || !list.Valid() {
		t.Fatal("Не удалось создать список медиа")
	}

	for _, mrl := range mrls {
		media := medialist.NewMedia(inst, mrl)
		list.Locked(func() {
			list.AddMedia(media)
		})
		media.Release()
	}
	return list
}

func TestPlayListMissingFile(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	list := newTestList(t, "/nonexistent/test.mp3")

	// Ожидаем ошибку открытия файла
	err := player.PlayList(list, 0)
	if err == nil {
		t.Fatal("Ожидалась ошибка при воспроизведении несуществующего файла")
	}
	if !strings.Contains(err.Error(), "ошибка открытия файла") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}

	// После неудачного запуска текущего элемента нет
	if player.Current() != nil {
		t.Error("Текущий элемент должен быть очищен после ошибки запуска")
	}
	if player.IsPlaying() {
		t.Error("Плеер не должен воспроизводить после ошибки запуска")
	}
}

func TestPlayListInvalidData(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	// Файл существует, но не является MP3
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "broken.mp3")
	if err := os.WriteFile(filePath, []byte("definitely not an mp3"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	list := newTestList(t, filePath)

	err := player.PlayList(list, 0)
	if err == nil {
		t.Fatal("Ожидалась ошибка декодирования")
	}
	if !strings.Contains(err.Error(), "ошибка декодирования MP3") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestPlayListEmptyList(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	list := newTestList(t)

	err := player.PlayList(list, 0)
	if err == nil {
		t.Error("Ожидалась ошибка при воспроизведении пустого списка")
	}
}

func TestNextWithoutList(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	if err := player.Next(); err == nil {
		t.Error("Ожидалась ошибка при переключении без заданного списка")
	}
}

func TestNextOutOfRange(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	list := newTestList(t, "/nonexistent/only.mp3")
	_ = player.PlayList(list, 0)

	// За границами списка переключение не происходит
	if err := player.Next(); err == nil {
		t.Error("Ожидалась ошибка при переключении за конец списка")
	}
	if err := player.Prev(); err == nil {
		t.Error("Ожидалась ошибка при переключении перед началом списка")
	}
}

func TestPauseStopIdle(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	// Пауза и остановка без активного воспроизведения безопасны
	player.Pause()
	player.Stop()

	if player.IsPlaying() {
		t.Error("Плеер не должен воспроизводить в начальном состоянии")
	}
	if player.Current() != nil {
		t.Error("Текущий элемент должен быть nil в начальном состоянии")
	}
}

func TestPlayerChannels(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	progressChan := player.Progress()
	if progressChan == nil {
		t.Error("Канал прогресса не должен быть nil")
	}

	doneChan := player.Done()
	if doneChan == nil {
		t.Error("Канал завершения не должен быть nil")
	}

	// Проверяем, что каналы не закрыты изначально
	select {
	case <-progressChan:
		t.Error("Канал прогресса не должен быть закрыт изначально")
	default:
		// Ожидаемое поведение
	}

	select {
	case <-doneChan:
		t.Error("Канал завершения не должен быть закрыт изначально")
	default:
		// Ожидаемое поведение
	}
}

func TestPlayerConcurrentAccess(t *testing.T) {
	player := NewPlayer()
	defer player.Close()

	list := newTestList(t, "/nonexistent/one.mp3", "/nonexistent/two.mp3")

	// Запускаем несколько горутин для тестирования конкурентного доступа
	done := make(chan bool, 3)

	go func() {
		_ = player.PlayList(list, 0)
		done <- true
	}()

	go func() {
		time.Sleep(10 * time.Millisecond)
		player.Pause()
		done <- true
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		player.Stop()
		done <- true
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
			// Успешно
		case <-time.After(1 * time.Second):
			t.Error("Таймаут при тестировании конкурентного доступа")
		}
	}

	if player.IsPlaying() {
		t.Error("Плеер не должен воспроизводить после конкурентных операций")
	}
}

// TestPlayedItemSurvivesRemoval проверяет, что ссылка плеера удерживает
// элемент живым после его удаления из списка
func TestPlayedItemSurvivesRemoval(t *testing.T) {
	backend := memlist.New()
	inst := medialist.NewInstance(backend)
	list := medialist.New(inst)

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "gone.mp3")
	if err := os.WriteFile(filePath, []byte("not an mp3"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	media := medialist.NewMedia(inst, filePath)
	list.Locked(func() {
		list.AddMedia(media)
	})
	media.Release()

	// Берем элемент так же, как это делает плеер
	var item *medialist.Media
	list.Locked(func() {
		item = list.ItemAtIndex(0)
	})
	if item == nil {
		t.Fatal("Элемент не получен из списка")
	}

	// Удаляем элемент из списка: наша ссылка должна остаться действительной
	list.Locked(func() {
		list.RemoveIndex(0)
	})

	if got := item.MRL(); got != filePath {
		t.Errorf("Ожидался MRL %s, получено: %s", filePath, got)
	}
	item.Release()
}
