package playlist

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playlister/internal/library"
	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/native/memlist"
)

// newTestList создает список с двумя элементами на базе встроенного бэкенда
func newTestList(t *testing.T) *medialist.MediaList {
	t.Helper()

	backend := memlist.New()
	inst := medialist.NewInstance(backend)
	list := medialist.New(inst)
	if list == nil {
		t.Fatal("Failed to create media list")
	}

	for _, name := range []string{"first.mp3", "second.mp3"} {
		media := medialist.NewMedia(inst, "/music/"+name)
		media.SetMeta(medialist.MetaArtist, "Test Artist")
		media.SetMeta(medialist.MetaTitle, name)
		list.Locked(func() {
			list.AddMedia(media)
		})
		media.Release()
	}

	return list
}

func TestNewModel(t *testing.T) {
	list := newTestList(t)

	model := NewModel(list)
	defer model.Close()

	if model == nil {
		t.Fatal("NewModel returned nil")
	}

	if len(model.list.Items()) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(model.list.Items()))
	}

	item, ok := model.list.Items()[0].(mediaItem)
	if !ok {
		t.Fatal("Expected mediaItem in list")
	}
	if item.entry.title != "first.mp3" {
		t.Errorf("Expected title 'first.mp3', got %q", item.entry.title)
	}
}

func TestRefreshDataAfterMutation(t *testing.T) {
	list := newTestList(t)

	model := NewModel(list)
	defer model.Close()

	list.Locked(func() {
		list.RemoveIndex(0)
	})
	model.RefreshData()

	if len(model.list.Items()) != 1 {
		t.Fatalf("Expected 1 item after removal, got %d", len(model.list.Items()))
	}

	item := model.list.Items()[0].(mediaItem)
	if item.entry.title != "second.mp3" {
		t.Errorf("Expected remaining title 'second.mp3', got %q", item.entry.title)
	}
}

func TestChangeNotification(t *testing.T) {
	list := newTestList(t)

	model := NewModel(list)
	defer model.Close()

	// Мутация списка должна положить уведомление в канал модели
	list.Locked(func() {
		list.RemoveIndex(0)
	})

	select {
	case <-model.changes:
		// Уведомление получено
	default:
		t.Error("Expected change notification after list mutation")
	}

	// Обработка ItemsChangedMsg перечитывает элементы
	updated, _ := model.Update(ItemsChangedMsg{})
	if len(updated.list.Items()) != 1 {
		t.Fatalf("Expected 1 item after refresh, got %d", len(updated.list.Items()))
	}
}

// newLibraryList строит доступный только для чтения список каталога
func newLibraryList(t *testing.T) *medialist.MediaList {
	t.Helper()

	dataFile := filepath.Join(t.TempDir(), "catalog.yaml")
	catalog := library.NewCatalog()
	catalog.AddTrack(library.Track{
		Artist: "Library Artist",
		Title:  "Library Song",
		Length: 180,
		URL:    "https://example.com/bucket/library-song.mp3",
	})
	if err := catalog.Save(dataFile); err != nil {
		t.Fatalf("Failed to save catalog: %v", err)
	}

	backend := memlist.NewWithOptions(memlist.Options{DataFile: dataFile})
	inst := medialist.NewInstance(backend)

	lib := medialist.NewLibrary(inst)
	if !lib.Valid() {
		t.Fatal("Failed to create library object")
	}
	defer lib.Release()
	if lib.Load() != 0 {
		t.Fatal("Failed to load library")
	}

	list := medialist.FromLibrary(lib)
	if !list.Valid() {
		t.Fatal("Failed to get library list")
	}
	return list
}

func TestDeleteKeyRemovesItem(t *testing.T) {
	list := newTestList(t)

	model := NewModel(list)
	defer model.Close()

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	var count int
	list.Locked(func() {
		count = list.Count()
	})
	if count != 1 {
		t.Fatalf("Expected 1 item after delete key, got %d", count)
	}
	if updated.statusMsg != "" {
		t.Errorf("Expected no status message after successful delete, got %q", updated.statusMsg)
	}
}

func TestDeleteKeyOnReadonlyList(t *testing.T) {
	list := newLibraryList(t)

	model := NewModel(list)
	defer model.Close()
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	var count int
	list.Locked(func() {
		count = list.Count()
	})
	if count != 1 {
		t.Fatalf("Expected item to survive delete key on readonly list, count = %d", count)
	}
	if updated.statusMsg == "" {
		t.Error("Expected status message explaining the list is readonly")
	}
	if !strings.Contains(updated.View(), updated.statusMsg) {
		t.Error("Expected status message to be visible in the view")
	}
}

func TestHelpLineMatchesListMutability(t *testing.T) {
	mutable := NewModel(newTestList(t))
	defer mutable.Close()
	mutable.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(mutable.View(), "d: удалить из списка") {
		t.Error("Expected delete key in help line for a mutable list")
	}

	readonly := NewModel(newLibraryList(t))
	defer readonly.Close()
	readonly.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if strings.Contains(readonly.View(), "d: удалить из списка") {
		t.Error("Expected no delete key in help line for a readonly list")
	}
}

func TestFallbackMetadataFromFileName(t *testing.T) {
	backend := memlist.New()
	inst := medialist.NewInstance(backend)
	list := medialist.New(inst)

	// Метаданные не заданы: бэкенд восстанавливает их из имени файла
	media := medialist.NewMedia(inst, "/music/Some Artist - Some Song.mp3")
	list.Locked(func() {
		list.AddMedia(media)
	})
	media.Release()

	entries := snapshot(list)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].title != "Some Song" {
		t.Errorf("Expected title 'Some Song', got %q", entries[0].title)
	}
	if entries[0].artist != "Some Artist" {
		t.Errorf("Expected artist 'Some Artist', got %q", entries[0].artist)
	}
}
