package memlist

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/hazadus/go-playlister/internal/native"
)

// discovererObject сканирует каталог с медиа-файлами и наполняет живой
// список результатов. После первичного обхода каталог отслеживается через
// fsnotify: новые аудио-файлы добавляются в список по мере появления.
type discovererObject struct {
	refs int // защищен Backend.mu

	backend *Backend
	dir     string
	list    native.ListRef

	mu      sync.Mutex // защищает running, watcher и seen
	running bool
	watcher *fsnotify.Watcher
	done    chan struct{}
	seen    map[string]bool
}

// NewDiscoverer создает сервис обнаружения для каталога dir
func (b *Backend) NewDiscoverer(inst native.InstanceRef, dir string) native.DiscovererRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.instances[inst]; !ok {
		return 0
	}

	ref := native.DiscovererRef(b.allocRef())
	b.discoverers[ref] = &discovererObject{
		refs:    1,
		backend: b,
		dir:     dir,
		list:    b.newListLocked(true),
		seen:    make(map[string]bool),
	}
	return ref
}

// StartDiscoverer запускает первичный обход каталога и отслеживание изменений
func (b *Backend) StartDiscoverer(ref native.DiscovererRef) int {
	b.mu.Lock()
	d, ok := b.discoverers[ref]
	b.mu.Unlock()
	if !ok {
		return -1
	}
	return d.start()
}

// StopDiscoverer останавливает отслеживание каталога
func (b *Backend) StopDiscoverer(ref native.DiscovererRef) {
	b.mu.Lock()
	d, ok := b.discoverers[ref]
	b.mu.Unlock()
	if !ok {
		return
	}
	d.stop()
}

// ReleaseDiscoverer уменьшает счетчик ссылок сервиса обнаружения
func (b *Backend) ReleaseDiscoverer(ref native.DiscovererRef) {
	b.mu.Lock()
	d, ok := b.discoverers[ref]
	if !ok {
		b.mu.Unlock()
		return
	}
	d.refs--
	if d.refs > 0 {
		b.mu.Unlock()
		return
	}
	delete(b.discoverers, ref)
	b.releaseListLocked(d.list)
	b.mu.Unlock()

	d.stop()
}

// DiscovererList возвращает живой список результатов обнаружения
func (b *Backend) DiscovererList(ref native.DiscovererRef) native.ListRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.discoverers[ref]
	if !ok {
		return 0
	}
	b.lists[d.list].refs++
	return d.list
}

func (d *discovererObject) start() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return 0
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return -1
	}

	// Первичный обход: собираем уже существующие файлы и подписываемся на
	// изменения в каждом подкаталоге
	err = filepath.WalkDir(d.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // Недоступные каталоги пропускаем
		}
		if entry.IsDir() {
			_ = watcher.Add(path)
			return nil
		}
		d.addFileLocked(path)
		return nil
	})
	if err != nil {
		watcher.Close()
		return -1
	}

	d.watcher = watcher
	d.done = make(chan struct{})
	d.running = true
	go d.watchLoop(watcher, d.done)
	return 0
}

func (d *discovererObject) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}
	d.running = false
	close(d.done)
	d.watcher.Close()
	d.watcher = nil
}

// watchLoop добавляет в список файлы, появившиеся после первичного обхода
func (d *discovererObject) watchLoop(watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			d.mu.Lock()
			if d.running {
				d.addFileLocked(event.Name)
			}
			d.mu.Unlock()
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Ошибки отслеживания не фатальны для уже собранного списка
		}
	}
}

// addFileLocked добавляет аудио-файл в список результатов, если он еще не
// встречался. Вызывается под discovererObject.mu.
func (d *discovererObject) addFileLocked(path string) {
	if !isAudioFile(path) || d.seen[path] {
		return
	}
	d.seen[path] = true

	d.backend.mu.Lock()
	media := d.backend.newMediaLocked(path)
	d.backend.mu.Unlock()

	d.backend.appendInternal(d.list, media)
}

// isAudioFile проверяет расширение файла
func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".ogg", ".wav", ".m4a":
		return true
	}
	return false
}
