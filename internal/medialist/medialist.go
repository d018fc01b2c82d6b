package medialist

import (
	"sync"

	"github.com/hazadus/go-playlister/internal/native"
)

// MediaList оборачивает нативный список медиа.
//
// Обертка владеет одной ссылкой на нативный список, полученной от фабрики
// при конструировании; Release отпускает её. Мутации и позиционные чтения
// при работе из нескольких потоков выполняются под блокировкой списка
// (Lock/Unlock или Locked).
type MediaList struct {
	api native.API
	ref native.ListRef

	emOnce sync.Once
	em     *EventManager
}

// New создает пустой изменяемый список медиа
func New(inst *Instance) *MediaList {
	return wrapList(inst.api, inst.api.NewList(inst.ref))
}

// FromMedia возвращает список подэлементов медиа-объекта
func FromMedia(m *Media) *MediaList {
	return wrapList(m.api, m.api.MediaSubitems(m.ref))
}

// FromDiscoverer возвращает живой список результатов сервиса обнаружения
func FromDiscoverer(d *MediaDiscoverer) *MediaList {
	return wrapList(d.api, d.api.DiscovererList(d.ref))
}

// FromLibrary возвращает список медиа постоянного каталога
func FromLibrary(l *MediaLibrary) *MediaList {
	return wrapList(l.api, l.api.LibraryList(l.ref))
}

// wrapList оборачивает дескриптор, уже удерживающий ссылку
func wrapList(api native.API, ref native.ListRef) *MediaList {
	return &MediaList{api: api, ref: ref}
}

// Valid сообщает, что за оберткой стоит живой нативный объект
func (ml *MediaList) Valid() bool {
	return ml.ref != 0
}

// Same проверяет, указывают ли две обертки на один нативный список
func (ml *MediaList) Same(other *MediaList) bool {
	return other != nil && ml.ref == other.ref
}

// Retain увеличивает счетчик ссылок списка
func (ml *MediaList) Retain() {
	ml.api.RetainList(ml.ref)
}

// Release отпускает ссылку обертки на список
func (ml *MediaList) Release() {
	ml.api.ReleaseList(ml.ref)
}

// SetMedia связывает список с медиа-объектом, замещая предыдущий.
// Блокировка списка НЕ должна удерживаться при вызове.
func (ml *MediaList) SetMedia(m *Media) {
	ml.api.ListSetMedia(ml.ref, m.ref)
}

// AddMedia добавляет элемент в конец списка.
// Возвращает 0 при успехе, -1 если список только для чтения.
func (ml *MediaList) AddMedia(m *Media) int {
	return ml.api.ListAddMedia(ml.ref, m.ref)
}

// InsertMedia вставляет элемент на позицию pos.
// Возвращает 0 при успехе, -1 если список только для чтения.
func (ml *MediaList) InsertMedia(m *Media, pos int) int {
	return ml.api.ListInsertMedia(ml.ref, m.ref, pos)
}

// RemoveIndex удаляет элемент с позиции pos.
// Возвращает 0 при успехе, -1 если список только для чтения или позиции нет.
func (ml *MediaList) RemoveIndex(pos int) int {
	return ml.api.ListRemoveIndex(ml.ref, pos)
}

// Count возвращает число элементов списка
func (ml *MediaList) Count() int {
	return ml.api.ListCount(ml.ref)
}

// ItemAtIndex возвращает элемент на позиции pos или nil, если позиции нет.
// При успехе счетчик ссылок медиа увеличен; вызывающий отпускает его
// через Release.
func (ml *MediaList) ItemAtIndex(pos int) *Media {
	ref := ml.api.ListItemAtIndex(ml.ref, pos)
	if ref == 0 {
		return nil
	}
	return wrapMedia(ml.api, ref)
}

// IndexOfItem возвращает позицию первого вхождения медиа или -1
func (ml *MediaList) IndexOfItem(m *Media) int {
	return ml.api.ListIndexOfItem(ml.ref, m.ref)
}

// IsReadonly сообщает, запрещена ли мутация списка
func (ml *MediaList) IsReadonly() bool {
	return ml.api.ListIsReadonly(ml.ref)
}

// Lock захватывает блокировку списка. Блокирует до освобождения; повторный
// захват из той же горутины недопустим.
func (ml *MediaList) Lock() {
	ml.api.ListLock(ml.ref)
}

// Unlock освобождает блокировку списка. Вызывается строго один раз на
// каждый Lock и только держателем блокировки.
func (ml *MediaList) Unlock() {
	ml.api.ListUnlock(ml.ref)
}

// Locked выполняет fn под блокировкой списка, гарантируя её освобождение
func (ml *MediaList) Locked(fn func()) {
	ml.Lock()
	defer ml.Unlock()
	fn()
}

// EventManager возвращает диспетчер событий списка. Диспетчер создается при
// первом обращении и дальше переиспользуется на все время жизни обертки.
func (ml *MediaList) EventManager() *EventManager {
	ml.emOnce.Do(func() {
		ml.em = &EventManager{
			api: ml.api,
			ref: ml.api.ListEventManager(ml.ref),
		}
	})
	return ml.em
}
