package medialist

import (
	"github.com/hazadus/go-playlister/internal/native"
)

// Event описывает одно событие изменения списка
type Event = native.Event

// EventType — тип события списка
type EventType = native.EventType

// События списка, переэкспортированные для вызывающего кода
const (
	EventItemAdded      = native.EventItemAdded
	EventWillAddItem    = native.EventWillAddItem
	EventItemDeleted    = native.EventItemDeleted
	EventWillDeleteItem = native.EventWillDeleteItem
)

// EventManager оборачивает нативный диспетчер событий списка. Диспетчер
// неизменяем и живет столько же, сколько его список, поэтому обертка не
// управляет его временем жизни.
type EventManager struct {
	api native.API
	ref native.EventManagerRef
}

// Valid сообщает, что за оберткой стоит живой нативный объект
func (em *EventManager) Valid() bool {
	return em.ref != 0
}

// Same проверяет, указывают ли две обертки на один нативный диспетчер
func (em *EventManager) Same(other *EventManager) bool {
	return other != nil && em.ref == other.ref
}

// Attach регистрирует подписчика на события типа et и возвращает
// идентификатор регистрации для Detach.
//
// Подписчик вызывается синхронно из потока, выполнившего мутацию списка,
// и не должен сам мутировать этот список.
func (em *EventManager) Attach(et EventType, cb func(Event)) int {
	return em.api.EventAttach(em.ref, et, cb)
}

// Detach снимает регистрацию подписчика
func (em *EventManager) Detach(et EventType, id int) {
	em.api.EventDetach(em.ref, et, id)
}

// EventMedia оборачивает медиа из события. Ссылкой на медиа владеет список,
// поэтому обертка действительна только внутри обработчика; чтобы сохранить
// её дольше, вызовите Retain.
func EventMedia(inst *Instance, e Event) *Media {
	if e.Media == 0 {
		return nil
	}
	return wrapMedia(inst.api, e.Media)
}
