package memlist

import (
	"os"
	"strings"
	"sync"

	"github.com/hazadus/go-playlister/internal/metadata"
	"github.com/hazadus/go-playlister/internal/native"
	"github.com/hazadus/go-playlister/internal/playlist"
)

// mediaObject хранит состояние одного медиа-объекта
type mediaObject struct {
	refs int // защищен Backend.mu

	mu       sync.Mutex // защищает метаданные и флаг probed
	mrl      string
	meta     map[native.MetaKey]string
	duration int64 // в миллисекундах, -1 — неизвестна
	probed   bool

	subitems native.ListRef // ленивый список подэлементов, 0 пока не создан
}

// NewMediaFromMRL создает медиа-объект по MRL
func (b *Backend) NewMediaFromMRL(inst native.InstanceRef, mrl string) native.MediaRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.instances[inst]; !ok {
		return 0
	}
	return b.newMediaLocked(mrl)
}

// newMediaLocked создает медиа-объект с одной ссылкой. Вызывается под mu.
func (b *Backend) newMediaLocked(mrl string) native.MediaRef {
	ref := native.MediaRef(b.allocRef())
	b.medias[ref] = &mediaObject{
		refs:     1,
		mrl:      mrl,
		meta:     make(map[native.MetaKey]string),
		duration: -1,
	}
	return ref
}

// RetainMedia увеличивает счетчик ссылок медиа-объекта
func (b *Backend) RetainMedia(ref native.MediaRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.medias[ref]; ok {
		m.refs++
	}
}

// ReleaseMedia уменьшает счетчик ссылок медиа-объекта
func (b *Backend) ReleaseMedia(ref native.MediaRef) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseMediaLocked(ref)
}

// releaseMediaLocked уменьшает счетчик ссылок; на нуле объект уничтожается
// вместе со своим списком подэлементов. Вызывается под mu.
func (b *Backend) releaseMediaLocked(ref native.MediaRef) {
	m, ok := b.medias[ref]
	if !ok {
		return
	}
	m.refs--
	if m.refs > 0 {
		return
	}
	delete(b.medias, ref)
	if m.subitems != 0 {
		b.releaseListLocked(m.subitems)
	}
}

// MediaMRL возвращает MRL медиа-объекта
func (b *Backend) MediaMRL(ref native.MediaRef) string {
	m := b.media(ref)
	if m == nil {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mrl
}

// MediaMeta возвращает значение метаданных по ключу
func (b *Backend) MediaMeta(ref native.MediaRef, key native.MetaKey) string {
	m := b.media(ref)
	if m == nil {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeLocked()
	return m.meta[key]
}

// SetMediaMeta задает значение метаданных
func (b *Backend) SetMediaMeta(ref native.MediaRef, key native.MetaKey, value string) {
	m := b.media(ref)
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[key] = value
}

// MediaDuration возвращает длительность в миллисекундах
func (b *Backend) MediaDuration(ref native.MediaRef) int64 {
	m := b.media(ref)
	if m == nil {
		return -1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeLocked()
	return m.duration
}

// MediaSubitems возвращает список подэлементов медиа
func (b *Backend) MediaSubitems(ref native.MediaRef) native.ListRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.medias[ref]
	if !ok {
		return 0
	}
	if m.subitems == 0 {
		m.subitems = b.newListLocked(true)
		b.populateSubitemsLocked(m)
	}
	// Вызывающий получает собственную ссылку на список
	b.lists[m.subitems].refs++
	return m.subitems
}

// populateSubitemsLocked наполняет список подэлементов из файла плейлиста.
// Для обычных медиа список остается пустым. Вызывается под mu.
func (b *Backend) populateSubitemsLocked(m *mediaObject) {
	m.mu.Lock()
	mrl := m.mrl
	m.mu.Unlock()

	if !playlist.IsPlaylistFile(mrl) || isRemoteMRL(mrl) {
		return
	}
	file, err := os.Open(mrl)
	if err != nil {
		return
	}
	defer file.Close()

	entries, err := playlist.Parse(file, baseDirOf(mrl))
	if err != nil {
		return
	}

	list := b.lists[m.subitems]
	for _, entry := range entries {
		sub := b.newMediaLocked(entry.Location)
		obj := b.medias[sub]
		obj.mu.Lock()
		if entry.Title != "" {
			obj.meta[native.MetaTitle] = entry.Title
		}
		if entry.Length > 0 {
			obj.duration = int64(entry.Length) * 1000
		}
		obj.mu.Unlock()
		// Ссылка, созданная newMediaLocked, переходит во владение списка
		list.items = append(list.items, sub)
	}
}

// probeLocked однократно извлекает метаданные из локального файла.
// Вызывается под mediaObject.mu.
func (m *mediaObject) probeLocked() {
	if m.probed {
		return
	}
	m.probed = true

	if isRemoteMRL(m.mrl) || playlist.IsPlaylistFile(m.mrl) {
		return
	}

	extractor := metadata.NewExtractor()
	meta := extractor.ExtractFromFile(m.mrl)
	if _, ok := m.meta[native.MetaArtist]; !ok && meta.Artist != "" {
		m.meta[native.MetaArtist] = meta.Artist
	}
	if _, ok := m.meta[native.MetaTitle]; !ok && meta.Title != "" {
		m.meta[native.MetaTitle] = meta.Title
	}
	if _, ok := m.meta[native.MetaAlbum]; !ok && meta.Album != "" {
		m.meta[native.MetaAlbum] = meta.Album
	}

	if m.duration < 0 {
		if duration, err := extractor.Duration(m.mrl); err == nil {
			m.duration = duration.Milliseconds()
		}
	}
}

// media возвращает объект по дескриптору
func (b *Backend) media(ref native.MediaRef) *mediaObject {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.medias[ref]
}

// isRemoteMRL проверяет, указывает ли MRL на сетевой ресурс
func isRemoteMRL(mrl string) bool {
	return strings.HasPrefix(mrl, "http://") || strings.HasPrefix(mrl, "https://")
}

// baseDirOf возвращает каталог, в котором лежит файл с указанным MRL
func baseDirOf(mrl string) string {
	idx := strings.LastIndexByte(mrl, '/')
	if idx < 0 {
		return ""
	}
	return mrl[:idx]
}
