package medialist

import (
	"github.com/hazadus/go-playlister/internal/native"
)

// MediaLibrary представляет постоянный каталог медиа
type MediaLibrary struct {
	api native.API
	ref native.LibraryRef
}

// NewLibrary создает объект каталога.
// Вызывающий владеет одной ссылкой и отпускает её через Release.
func NewLibrary(inst *Instance) *MediaLibrary {
	return &MediaLibrary{
		api: inst.api,
		ref: inst.api.NewLibrary(inst.ref),
	}
}

// Valid сообщает, что за оберткой стоит живой нативный объект
func (l *MediaLibrary) Valid() bool {
	return l.ref != 0
}

// Load загружает содержимое каталога. Возвращает 0 при успехе, -1 при ошибке.
func (l *MediaLibrary) Load() int {
	return l.api.LoadLibrary(l.ref)
}

// Release отпускает ссылку на каталог
func (l *MediaLibrary) Release() {
	l.api.ReleaseLibrary(l.ref)
}
