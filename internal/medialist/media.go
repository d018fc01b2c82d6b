package medialist

import (
	"github.com/hazadus/go-playlister/internal/native"
)

// MetaKey — ключ метаданных медиа-объекта
type MetaKey = native.MetaKey

// Ключи метаданных, переэкспортированные для вызывающего кода
const (
	MetaTitle     = native.MetaTitle
	MetaArtist    = native.MetaArtist
	MetaAlbum     = native.MetaAlbum
	MetaCatalogID = native.MetaCatalogID
)

// Media представляет один воспроизводимый элемент
type Media struct {
	api native.API
	ref native.MediaRef
}

// NewMedia создает медиа-объект по MRL (путь к файлу или URL).
// Вызывающий владеет одной ссылкой и отпускает её через Release.
func NewMedia(inst *Instance, mrl string) *Media {
	return &Media{
		api: inst.api,
		ref: inst.api.NewMediaFromMRL(inst.ref, mrl),
	}
}

// wrapMedia оборачивает дескриптор, уже удерживающий ссылку
func wrapMedia(api native.API, ref native.MediaRef) *Media {
	return &Media{api: api, ref: ref}
}

// Valid сообщает, что за оберткой стоит живой нативный объект
func (m *Media) Valid() bool {
	return m.ref != 0
}

// Same проверяет, указывают ли две обертки на один нативный объект
func (m *Media) Same(other *Media) bool {
	return other != nil && m.ref == other.ref
}

// Retain увеличивает счетчик ссылок медиа-объекта
func (m *Media) Retain() {
	m.api.RetainMedia(m.ref)
}

// Release отпускает ссылку на медиа-объект
func (m *Media) Release() {
	m.api.ReleaseMedia(m.ref)
}

// MRL возвращает расположение медиа
func (m *Media) MRL() string {
	return m.api.MediaMRL(m.ref)
}

// Meta возвращает значение метаданных по ключу
func (m *Media) Meta(key MetaKey) string {
	return m.api.MediaMeta(m.ref, key)
}

// SetMeta задает значение метаданных
func (m *Media) SetMeta(key MetaKey, value string) {
	m.api.SetMediaMeta(m.ref, key, value)
}

// Duration возвращает длительность в миллисекундах (-1, если неизвестна)
func (m *Media) Duration() int64 {
	return m.api.MediaDuration(m.ref)
}
