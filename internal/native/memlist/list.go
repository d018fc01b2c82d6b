package memlist

import (
	"sync"

	"github.com/hazadus/go-playlister/internal/native"
)

// listObject хранит состояние одного списка медиа.
//
// Срез items не имеет собственной внутренней синхронизации: по контракту
// нативной библиотеки вызывающий обязан удерживать блокировку списка (mu)
// вокруг мутаций и позиционных чтений при работе из нескольких потоков.
// Сам бэкенд эту блокировку при мутациях не захватывает, иначе дисциплина
// "вызвал Lock — зови Add" приводила бы к самоблокировке.
type listObject struct {
	refs int // защищен Backend.mu

	mu       sync.Mutex // блокировка, выдаваемая через ListLock/ListUnlock
	items    []native.MediaRef
	backing  native.MediaRef // медиа, связанное через ListSetMedia
	readonly bool

	em    *eventManager
	emRef native.EventManagerRef
}

// NewList создает пустой изменяемый список
func (b *Backend) NewList(inst native.InstanceRef) native.ListRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.instances[inst]; !ok {
		return 0
	}
	return b.newListLocked(false)
}

// newListLocked создает список с одной ссылкой и его диспетчер событий.
// Вызывается под mu.
func (b *Backend) newListLocked(readonly bool) native.ListRef {
	ref := native.ListRef(b.allocRef())
	emRef := native.EventManagerRef(b.allocRef())
	em := newEventManager()

	b.lists[ref] = &listObject{
		refs:     1,
		readonly: readonly,
		em:       em,
		emRef:    emRef,
	}
	b.managers[emRef] = em
	return ref
}

// RetainList увеличивает счетчик ссылок списка
func (b *Backend) RetainList(ref native.ListRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if l, ok := b.lists[ref]; ok {
		l.refs++
	}
}

// ReleaseList уменьшает счетчик ссылок списка
func (b *Backend) ReleaseList(ref native.ListRef) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseListLocked(ref)
}

// releaseListLocked уменьшает счетчик ссылок; на нуле список уничтожается,
// отпуская ссылки на все свои элементы. Вызывается под mu.
func (b *Backend) releaseListLocked(ref native.ListRef) {
	l, ok := b.lists[ref]
	if !ok {
		return
	}
	l.refs--
	if l.refs > 0 {
		return
	}
	delete(b.lists, ref)
	delete(b.managers, l.emRef)
	for _, item := range l.items {
		b.releaseMediaLocked(item)
	}
	if l.backing != 0 {
		b.releaseMediaLocked(l.backing)
	}
}

// ListSetMedia связывает список с медиа-объектом, замещая предыдущий
func (b *Backend) ListSetMedia(ref native.ListRef, media native.MediaRef) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[ref]
	if !ok {
		return
	}
	if _, ok := b.medias[media]; !ok {
		return
	}
	if l.backing != 0 {
		b.releaseMediaLocked(l.backing)
	}
	b.medias[media].refs++
	l.backing = media
}

// ListAddMedia добавляет элемент в конец списка
func (b *Backend) ListAddMedia(ref native.ListRef, media native.MediaRef) int {
	b.mu.Lock()
	l, ok := b.lists[ref]
	if !ok || l.readonly {
		b.mu.Unlock()
		return -1
	}
	if _, ok := b.medias[media]; !ok {
		b.mu.Unlock()
		return -1
	}
	pos := len(l.items)
	em := l.em
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventWillAddItem, Media: media, Index: pos})

	b.mu.Lock()
	b.medias[media].refs++
	l.items = append(l.items, media)
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventItemAdded, Media: media, Index: pos})
	return 0
}

// ListInsertMedia вставляет элемент на позицию pos
func (b *Backend) ListInsertMedia(ref native.ListRef, media native.MediaRef, pos int) int {
	b.mu.Lock()
	l, ok := b.lists[ref]
	if !ok || l.readonly {
		b.mu.Unlock()
		return -1
	}
	if _, ok := b.medias[media]; !ok {
		b.mu.Unlock()
		return -1
	}
	if pos < 0 || pos > len(l.items) {
		b.mu.Unlock()
		return -1
	}
	em := l.em
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventWillAddItem, Media: media, Index: pos})

	b.mu.Lock()
	b.medias[media].refs++
	l.items = append(l.items, 0)
	copy(l.items[pos+1:], l.items[pos:])
	l.items[pos] = media
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventItemAdded, Media: media, Index: pos})
	return 0
}

// ListRemoveIndex удаляет элемент с позиции pos
func (b *Backend) ListRemoveIndex(ref native.ListRef, pos int) int {
	b.mu.Lock()
	l, ok := b.lists[ref]
	if !ok || l.readonly {
		b.mu.Unlock()
		return -1
	}
	if pos < 0 || pos >= len(l.items) {
		b.mu.Unlock()
		return -1
	}
	media := l.items[pos]
	em := l.em
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventWillDeleteItem, Media: media, Index: pos})

	b.mu.Lock()
	l.items = append(l.items[:pos], l.items[pos+1:]...)
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventItemDeleted, Media: media, Index: pos})

	b.mu.Lock()
	b.releaseMediaLocked(media)
	b.mu.Unlock()
	return 0
}

// ListCount возвращает число элементов списка
func (b *Backend) ListCount(ref native.ListRef) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[ref]
	if !ok {
		return 0
	}
	return len(l.items)
}

// ListItemAtIndex возвращает элемент на позиции pos
func (b *Backend) ListItemAtIndex(ref native.ListRef, pos int) native.MediaRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[ref]
	if !ok {
		return 0
	}
	if pos < 0 || pos >= len(l.items) {
		return 0
	}
	media := l.items[pos]
	b.medias[media].refs++
	return media
}

// ListIndexOfItem возвращает позицию первого вхождения медиа
func (b *Backend) ListIndexOfItem(ref native.ListRef, media native.MediaRef) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[ref]
	if !ok {
		return -1
	}
	for i, item := range l.items {
		if item == media {
			return i
		}
	}
	return -1
}

// ListIsReadonly сообщает, запрещена ли мутация списка
func (b *Backend) ListIsReadonly(ref native.ListRef) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[ref]
	if !ok {
		return false
	}
	return l.readonly
}

// ListLock захватывает блокировку списка
func (b *Backend) ListLock(ref native.ListRef) {
	l := b.list(ref)
	if l == nil {
		return
	}
	l.mu.Lock()
}

// ListUnlock освобождает блокировку списка
func (b *Backend) ListUnlock(ref native.ListRef) {
	l := b.list(ref)
	if l == nil {
		return
	}
	l.mu.Unlock()
}

// ListEventManager возвращает диспетчер событий списка
func (b *Backend) ListEventManager(ref native.ListRef) native.EventManagerRef {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.lists[ref]
	if !ok {
		return 0
	}
	return l.emRef
}

// appendInternal добавляет элемент в список в обход проверки readonly.
// Так бэкенд наполняет собственные списки (результаты обнаружения,
// каталог); ссылка на медиа переходит во владение списка.
func (b *Backend) appendInternal(ref native.ListRef, media native.MediaRef) {
	b.mu.Lock()
	l, ok := b.lists[ref]
	if !ok {
		b.mu.Unlock()
		return
	}
	pos := len(l.items)
	em := l.em
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventWillAddItem, Media: media, Index: pos})

	b.mu.Lock()
	l.items = append(l.items, media)
	b.mu.Unlock()

	em.dispatch(native.Event{Type: native.EventItemAdded, Media: media, Index: pos})
}

// list возвращает объект списка по дескриптору
func (b *Backend) list(ref native.ListRef) *listObject {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lists[ref]
}
