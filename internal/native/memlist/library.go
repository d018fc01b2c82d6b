package memlist

import (
	"strconv"

	"github.com/hazadus/go-playlister/internal/library"
	"github.com/hazadus/go-playlister/internal/native"
)

// libraryObject материализует постоянный каталог (internal/library) в виде
// списка медиа, доступного только для чтения.
type libraryObject struct {
	refs int // защищен Backend.mu

	list   native.ListRef
	loaded bool
}

// NewLibrary создает объект каталога
func (b *Backend) NewLibrary(inst native.InstanceRef) native.LibraryRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.instances[inst]; !ok {
		return 0
	}

	ref := native.LibraryRef(b.allocRef())
	b.libraries[ref] = &libraryObject{
		refs: 1,
		list: b.newListLocked(true),
	}
	return ref
}

// LoadLibrary загружает каталог из файла данных бэкенда
func (b *Backend) LoadLibrary(ref native.LibraryRef) int {
	b.mu.Lock()
	lib, ok := b.libraries[ref]
	dataFile := b.opts.DataFile
	b.mu.Unlock()
	if !ok {
		return -1
	}
	if lib.loaded {
		return 0
	}
	if dataFile == "" {
		return -1
	}

	catalog := library.NewCatalog()
	if err := catalog.Load(dataFile); err != nil {
		return -1
	}

	for _, track := range catalog.Tracks {
		mrl := track.URL
		if mrl == "" {
			continue
		}

		b.mu.Lock()
		media := b.newMediaLocked(mrl)
		obj := b.medias[media]
		b.mu.Unlock()

		obj.mu.Lock()
		obj.meta[native.MetaArtist] = track.Artist
		obj.meta[native.MetaTitle] = track.Title
		obj.meta[native.MetaAlbum] = track.Album
		if track.Length > 0 {
			obj.duration = int64(track.Length) * 1000
		}
		// Каталожная запись уже содержит метаданные, файл не трогаем
		obj.probed = true
		obj.mu.Unlock()

		b.setCatalogID(media, track.ID)
		b.appendInternal(lib.list, media)
	}

	b.mu.Lock()
	lib.loaded = true
	b.mu.Unlock()
	return 0
}

// ReleaseLibrary уменьшает счетчик ссылок каталога
func (b *Backend) ReleaseLibrary(ref native.LibraryRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lib, ok := b.libraries[ref]
	if !ok {
		return
	}
	lib.refs--
	if lib.refs > 0 {
		return
	}
	delete(b.libraries, ref)
	b.releaseListLocked(lib.list)
}

// LibraryList возвращает список медиа каталога
func (b *Backend) LibraryList(ref native.LibraryRef) native.ListRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	lib, ok := b.libraries[ref]
	if !ok {
		return 0
	}
	b.lists[lib.list].refs++
	return lib.list
}

// setCatalogID сохраняет ID каталожной записи в метаданных медиа, чтобы
// команды приложения могли адресовать трек по номеру
func (b *Backend) setCatalogID(media native.MediaRef, id int) {
	m := b.media(media)
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[native.MetaCatalogID] = strconv.Itoa(id)
}
