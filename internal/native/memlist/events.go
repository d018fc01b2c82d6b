package memlist

import (
	"sync"

	"github.com/hazadus/go-playlister/internal/native"
)

// eventManager доставляет события изменения списка подписчикам.
// Доставка синхронная: подписчик вызывается в том потоке, который выполнил
// мутацию, поэтому обработчики не должны сами мутировать этот же список.
type eventManager struct {
	mu        sync.Mutex
	nextID    int
	listeners map[native.EventType]map[int]native.Callback
}

func newEventManager() *eventManager {
	return &eventManager{
		listeners: make(map[native.EventType]map[int]native.Callback),
	}
}

// attach регистрирует подписчика и возвращает идентификатор регистрации
func (em *eventManager) attach(et native.EventType, cb native.Callback) int {
	em.mu.Lock()
	defer em.mu.Unlock()

	em.nextID++
	id := em.nextID
	if em.listeners[et] == nil {
		em.listeners[et] = make(map[int]native.Callback)
	}
	em.listeners[et][id] = cb
	return id
}

// detach снимает регистрацию подписчика
func (em *eventManager) detach(et native.EventType, id int) {
	em.mu.Lock()
	defer em.mu.Unlock()
	delete(em.listeners[et], id)
}

// dispatch рассылает событие всем подписчикам его типа
func (em *eventManager) dispatch(event native.Event) {
	em.mu.Lock()
	callbacks := make([]native.Callback, 0, len(em.listeners[event.Type]))
	for _, cb := range em.listeners[event.Type] {
		callbacks = append(callbacks, cb)
	}
	em.mu.Unlock()

	for _, cb := range callbacks {
		cb(event)
	}
}

// EventAttach регистрирует подписчика на события диспетчера
func (b *Backend) EventAttach(ref native.EventManagerRef, et native.EventType, cb native.Callback) int {
	b.mu.Lock()
	em, ok := b.managers[ref]
	b.mu.Unlock()
	if !ok {
		return -1
	}
	return em.attach(et, cb)
}

// EventDetach снимает регистрацию подписчика
func (b *Backend) EventDetach(ref native.EventManagerRef, et native.EventType, id int) {
	b.mu.Lock()
	em, ok := b.managers[ref]
	b.mu.Unlock()
	if !ok {
		return
	}
	em.detach(et, id)
}
