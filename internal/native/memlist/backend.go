// Package memlist реализует контракт нативной медиа-библиотеки внутри процесса.
//
// Бэкенд владеет хранилищем списков, их блокировками и доставкой событий —
// всем тем, что обертка internal/medialist сама не реализует. Используется
// в тестах обертки и как рабочий бэкенд, когда libvlc не подключен.
package memlist

import (
	"sync"

	"github.com/hazadus/go-playlister/internal/native"
)

// Options задает настройки бэкенда
type Options struct {
	DataFile string // Путь к YAML-файлу каталога для LoadLibrary
}

// Backend реализует интерфейс native.API
type Backend struct {
	opts Options

	// Таблицы дескрипторов. Защищены mu; блокировки отдельных списков
	// (listObject.mu) сюда не входят.
	mu          sync.Mutex
	nextRef     uintptr
	instances   map[native.InstanceRef]*instanceObject
	medias      map[native.MediaRef]*mediaObject
	lists       map[native.ListRef]*listObject
	discoverers map[native.DiscovererRef]*discovererObject
	libraries   map[native.LibraryRef]*libraryObject
	managers    map[native.EventManagerRef]*eventManager
}

type instanceObject struct {
	refs int
}

// New создает бэкенд с настройками по умолчанию
func New() *Backend {
	return NewWithOptions(Options{})
}

// NewWithOptions создает бэкенд с указанными настройками
func NewWithOptions(opts Options) *Backend {
	return &Backend{
		opts:        opts,
		instances:   make(map[native.InstanceRef]*instanceObject),
		medias:      make(map[native.MediaRef]*mediaObject),
		lists:       make(map[native.ListRef]*listObject),
		discoverers: make(map[native.DiscovererRef]*discovererObject),
		libraries:   make(map[native.LibraryRef]*libraryObject),
		managers:    make(map[native.EventManagerRef]*eventManager),
	}
}

var _ native.API = (*Backend)(nil)

// allocRef выдает следующий свободный дескриптор. Вызывается под mu.
func (b *Backend) allocRef() uintptr {
	b.nextRef++
	return b.nextRef
}

// NewInstance создает экземпляр библиотеки
func (b *Backend) NewInstance() native.InstanceRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	ref := native.InstanceRef(b.allocRef())
	b.instances[ref] = &instanceObject{refs: 1}
	return ref
}

// ReleaseInstance освобождает экземпляр библиотеки
func (b *Backend) ReleaseInstance(ref native.InstanceRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inst, ok := b.instances[ref]
	if !ok {
		return
	}
	inst.refs--
	if inst.refs <= 0 {
		delete(b.instances, ref)
	}
}
