//go:build with_libvlc

// Package vlc привязывает контракт native.API к libvlc через cgo.
//
// Подключается тегом сборки with_libvlc; без него используется бэкенд
// memlist. Правила владения повторяют libvlc: каждая фабрика возвращает
// дескриптор с одной ссылкой, release-вызовы уменьшают счетчик на единицу.
package vlc

/*
#cgo LDFLAGS: -lvlc
#include <stdlib.h>
#include <vlc/vlc.h>

extern void mediaListEventBridge(const libvlc_event_t *event, void *userData);

static int attachListEvent(libvlc_event_manager_t *em, libvlc_event_type_t et, uintptr_t id)
{
    return libvlc_event_attach(em, et, mediaListEventBridge, (void *)id);
}

static void detachListEvent(libvlc_event_manager_t *em, libvlc_event_type_t et, uintptr_t id)
{
    libvlc_event_detach(em, et, mediaListEventBridge, (void *)id);
}

// Полезная нагрузка всех четырех событий списка имеет одинаковую раскладку
static libvlc_media_t *listEventItem(const libvlc_event_t *e)
{
    return e->u.media_list_item_added.item;
}

static int listEventIndex(const libvlc_event_t *e)
{
    return e->u.media_list_item_added.index;
}
*/
import "C"

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/hazadus/go-playlister/internal/native"
)

// Supported сообщает, что бэкенд libvlc скомпилирован
const Supported = true

// Backend реализует native.API поверх libvlc
type Backend struct{}

// New создает бэкенд libvlc
func New() (native.API, error) {
	return &Backend{}, nil
}

var _ native.API = (*Backend)(nil)

// подписки на события, адресуемые через user_data коллбэка
var (
	subsMu   sync.Mutex
	subsNext uintptr
	subs     = map[uintptr]native.Callback{}
)

//export mediaListEventBridge
func mediaListEventBridge(event *C.libvlc_event_t, userData unsafe.Pointer) {
	subsMu.Lock()
	cb := subs[uintptr(userData)]
	subsMu.Unlock()
	if cb == nil {
		return
	}
	cb(convertEvent(event))
}

func convertEvent(event *C.libvlc_event_t) native.Event {
	e := native.Event{}
	switch event._type {
	case C.libvlc_MediaListItemAdded:
		e.Type = native.EventItemAdded
	case C.libvlc_MediaListWillAddItem:
		e.Type = native.EventWillAddItem
	case C.libvlc_MediaListItemDeleted:
		e.Type = native.EventItemDeleted
	case C.libvlc_MediaListWillDeleteItem:
		e.Type = native.EventWillDeleteItem
	}
	e.Media = native.MediaRef(uintptr(unsafe.Pointer(C.listEventItem(event))))
	e.Index = int(C.listEventIndex(event))
	return e
}

func eventTypeC(et native.EventType) C.libvlc_event_type_t {
	switch et {
	case native.EventItemAdded:
		return C.libvlc_MediaListItemAdded
	case native.EventWillAddItem:
		return C.libvlc_MediaListWillAddItem
	case native.EventItemDeleted:
		return C.libvlc_MediaListItemDeleted
	case native.EventWillDeleteItem:
		return C.libvlc_MediaListWillDeleteItem
	}
	return C.libvlc_MediaListItemAdded
}

func metaC(key native.MetaKey) C.libvlc_meta_t {
	switch key {
	case native.MetaTitle:
		return C.libvlc_meta_Title
	case native.MetaArtist:
		return C.libvlc_meta_Artist
	case native.MetaAlbum:
		return C.libvlc_meta_Album
	case native.MetaCatalogID:
		return C.libvlc_meta_TrackID
	}
	return C.libvlc_meta_Title
}

func instPtr(ref native.InstanceRef) *C.libvlc_instance_t {
	return (*C.libvlc_instance_t)(unsafe.Pointer(uintptr(ref)))
}

func mediaPtr(ref native.MediaRef) *C.libvlc_media_t {
	return (*C.libvlc_media_t)(unsafe.Pointer(uintptr(ref)))
}

func listPtr(ref native.ListRef) *C.libvlc_media_list_t {
	return (*C.libvlc_media_list_t)(unsafe.Pointer(uintptr(ref)))
}

func discPtr(ref native.DiscovererRef) *C.libvlc_media_discoverer_t {
	return (*C.libvlc_media_discoverer_t)(unsafe.Pointer(uintptr(ref)))
}

func libPtr(ref native.LibraryRef) *C.libvlc_media_library_t {
	return (*C.libvlc_media_library_t)(unsafe.Pointer(uintptr(ref)))
}

func emPtr(ref native.EventManagerRef) *C.libvlc_event_manager_t {
	return (*C.libvlc_event_manager_t)(unsafe.Pointer(uintptr(ref)))
}

// NewInstance создает экземпляр libvlc
func (b *Backend) NewInstance() native.InstanceRef {
	inst := C.libvlc_new(0, nil)
	return native.InstanceRef(uintptr(unsafe.Pointer(inst)))
}

// ReleaseInstance освобождает экземпляр libvlc
func (b *Backend) ReleaseInstance(ref native.InstanceRef) {
	if ref == 0 {
		return
	}
	C.libvlc_release(instPtr(ref))
}

// NewMediaFromMRL создает медиа-объект по пути или URL
func (b *Backend) NewMediaFromMRL(inst native.InstanceRef, mrl string) native.MediaRef {
	if inst == 0 {
		return 0
	}
	cMRL := C.CString(mrl)
	defer C.free(unsafe.Pointer(cMRL))

	var media *C.libvlc_media_t
	if strings.Contains(mrl, "://") {
		media = C.libvlc_media_new_location(instPtr(inst), cMRL)
	} else {
		media = C.libvlc_media_new_path(instPtr(inst), cMRL)
	}
	return native.MediaRef(uintptr(unsafe.Pointer(media)))
}

// RetainMedia увеличивает счетчик ссылок медиа-объекта
func (b *Backend) RetainMedia(ref native.MediaRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_retain(mediaPtr(ref))
}

// ReleaseMedia уменьшает счетчик ссылок медиа-объекта
func (b *Backend) ReleaseMedia(ref native.MediaRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_release(mediaPtr(ref))
}

// MediaMRL возвращает MRL медиа-объекта
func (b *Backend) MediaMRL(ref native.MediaRef) string {
	if ref == 0 {
		return ""
	}
	cMRL := C.libvlc_media_get_mrl(mediaPtr(ref))
	if cMRL == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cMRL))
	return C.GoString(cMRL)
}

// MediaMeta возвращает значение метаданных по ключу
func (b *Backend) MediaMeta(ref native.MediaRef, key native.MetaKey) string {
	if ref == 0 {
		return ""
	}
	cValue := C.libvlc_media_get_meta(mediaPtr(ref), metaC(key))
	if cValue == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cValue))
	return C.GoString(cValue)
}

// SetMediaMeta задает значение метаданных
func (b *Backend) SetMediaMeta(ref native.MediaRef, key native.MetaKey, value string) {
	if ref == 0 {
		return
	}
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	C.libvlc_media_set_meta(mediaPtr(ref), metaC(key), cValue)
}

// MediaDuration возвращает длительность в миллисекундах
func (b *Backend) MediaDuration(ref native.MediaRef) int64 {
	if ref == 0 {
		return -1
	}
	return int64(C.libvlc_media_get_duration(mediaPtr(ref)))
}

// MediaSubitems возвращает список подэлементов медиа
func (b *Backend) MediaSubitems(ref native.MediaRef) native.ListRef {
	if ref == 0 {
		return 0
	}
	list := C.libvlc_media_subitems(mediaPtr(ref))
	return native.ListRef(uintptr(unsafe.Pointer(list)))
}

// NewDiscoverer создает сервис обнаружения по имени
func (b *Backend) NewDiscoverer(inst native.InstanceRef, name string) native.DiscovererRef {
	if inst == 0 {
		return 0
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	disc := C.libvlc_media_discoverer_new(instPtr(inst), cName)
	return native.DiscovererRef(uintptr(unsafe.Pointer(disc)))
}

// StartDiscoverer запускает сканирование
func (b *Backend) StartDiscoverer(ref native.DiscovererRef) int {
	if ref == 0 {
		return -1
	}
	return int(C.libvlc_media_discoverer_start(discPtr(ref)))
}

// StopDiscoverer останавливает сканирование
func (b *Backend) StopDiscoverer(ref native.DiscovererRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_discoverer_stop(discPtr(ref))
}

// ReleaseDiscoverer освобождает сервис обнаружения
func (b *Backend) ReleaseDiscoverer(ref native.DiscovererRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_discoverer_release(discPtr(ref))
}

// DiscovererList возвращает живой список результатов обнаружения
func (b *Backend) DiscovererList(ref native.DiscovererRef) native.ListRef {
	if ref == 0 {
		return 0
	}
	list := C.libvlc_media_discoverer_media_list(discPtr(ref))
	return native.ListRef(uintptr(unsafe.Pointer(list)))
}

// NewLibrary создает объект каталога
func (b *Backend) NewLibrary(inst native.InstanceRef) native.LibraryRef {
	if inst == 0 {
		return 0
	}
	lib := C.libvlc_media_library_new(instPtr(inst))
	return native.LibraryRef(uintptr(unsafe.Pointer(lib)))
}

// LoadLibrary загружает содержимое каталога
func (b *Backend) LoadLibrary(ref native.LibraryRef) int {
	if ref == 0 {
		return -1
	}
	return int(C.libvlc_media_library_load(libPtr(ref)))
}

// ReleaseLibrary освобождает объект каталога
func (b *Backend) ReleaseLibrary(ref native.LibraryRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_library_release(libPtr(ref))
}

// LibraryList возвращает список медиа каталога
func (b *Backend) LibraryList(ref native.LibraryRef) native.ListRef {
	if ref == 0 {
		return 0
	}
	list := C.libvlc_media_library_media_list(libPtr(ref))
	return native.ListRef(uintptr(unsafe.Pointer(list)))
}

// NewList создает пустой изменяемый список
func (b *Backend) NewList(inst native.InstanceRef) native.ListRef {
	if inst == 0 {
		return 0
	}
	list := C.libvlc_media_list_new(instPtr(inst))
	return native.ListRef(uintptr(unsafe.Pointer(list)))
}

// RetainList увеличивает счетчик ссылок списка
func (b *Backend) RetainList(ref native.ListRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_list_retain(listPtr(ref))
}

// ReleaseList уменьшает счетчик ссылок списка
func (b *Backend) ReleaseList(ref native.ListRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_list_release(listPtr(ref))
}

// ListSetMedia связывает список с медиа-объектом
func (b *Backend) ListSetMedia(ref native.ListRef, media native.MediaRef) {
	if ref == 0 || media == 0 {
		return
	}
	C.libvlc_media_list_set_media(listPtr(ref), mediaPtr(media))
}

// ListAddMedia добавляет элемент в конец списка
func (b *Backend) ListAddMedia(ref native.ListRef, media native.MediaRef) int {
	if ref == 0 || media == 0 {
		return -1
	}
	return int(C.libvlc_media_list_add_media(listPtr(ref), mediaPtr(media)))
}

// ListInsertMedia вставляет элемент на позицию pos
func (b *Backend) ListInsertMedia(ref native.ListRef, media native.MediaRef, pos int) int {
	if ref == 0 || media == 0 {
		return -1
	}
	return int(C.libvlc_media_list_insert_media(listPtr(ref), mediaPtr(media), C.int(pos)))
}

// ListRemoveIndex удаляет элемент с позиции pos
func (b *Backend) ListRemoveIndex(ref native.ListRef, pos int) int {
	if ref == 0 {
		return -1
	}
	return int(C.libvlc_media_list_remove_index(listPtr(ref), C.int(pos)))
}

// ListCount возвращает число элементов списка
func (b *Backend) ListCount(ref native.ListRef) int {
	if ref == 0 {
		return 0
	}
	return int(C.libvlc_media_list_count(listPtr(ref)))
}

// ListItemAtIndex возвращает элемент на позиции pos
func (b *Backend) ListItemAtIndex(ref native.ListRef, pos int) native.MediaRef {
	if ref == 0 {
		return 0
	}
	media := C.libvlc_media_list_item_at_index(listPtr(ref), C.int(pos))
	return native.MediaRef(uintptr(unsafe.Pointer(media)))
}

// ListIndexOfItem возвращает позицию первого вхождения медиа
func (b *Backend) ListIndexOfItem(ref native.ListRef, media native.MediaRef) int {
	if ref == 0 || media == 0 {
		return -1
	}
	return int(C.libvlc_media_list_index_of_item(listPtr(ref), mediaPtr(media)))
}

// ListIsReadonly сообщает, запрещена ли мутация списка
func (b *Backend) ListIsReadonly(ref native.ListRef) bool {
	if ref == 0 {
		return false
	}
	return C.libvlc_media_list_is_readonly(listPtr(ref)) != 0
}

// ListLock захватывает блокировку списка
func (b *Backend) ListLock(ref native.ListRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_list_lock(listPtr(ref))
}

// ListUnlock освобождает блокировку списка
func (b *Backend) ListUnlock(ref native.ListRef) {
	if ref == 0 {
		return
	}
	C.libvlc_media_list_unlock(listPtr(ref))
}

// ListEventManager возвращает диспетчер событий списка
func (b *Backend) ListEventManager(ref native.ListRef) native.EventManagerRef {
	if ref == 0 {
		return 0
	}
	em := C.libvlc_media_list_event_manager(listPtr(ref))
	return native.EventManagerRef(uintptr(unsafe.Pointer(em)))
}

// EventAttach регистрирует подписчика на события списка
func (b *Backend) EventAttach(ref native.EventManagerRef, et native.EventType, cb native.Callback) int {
	if ref == 0 {
		return -1
	}

	subsMu.Lock()
	subsNext++
	id := subsNext
	subs[id] = cb
	subsMu.Unlock()

	if C.attachListEvent(emPtr(ref), eventTypeC(et), C.uintptr_t(id)) != 0 {
		subsMu.Lock()
		delete(subs, id)
		subsMu.Unlock()
		return -1
	}
	return int(id)
}

// EventDetach снимает регистрацию подписчика
func (b *Backend) EventDetach(ref native.EventManagerRef, et native.EventType, id int) {
	if ref == 0 || id <= 0 {
		return
	}
	C.detachListEvent(emPtr(ref), eventTypeC(et), C.uintptr_t(id))

	subsMu.Lock()
	delete(subs, uintptr(id))
	subsMu.Unlock()
}
