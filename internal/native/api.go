// Package native описывает границу с нативной медиа-библиотекой.
//
// Все типы дескрипторов непрозрачны для вызывающего кода: их значение имеет
// смысл только для бэкенда, который их выдал. Нулевое значение любого
// дескриптора означает "нет объекта" (аналог NULL-указателя).
//
// Правила владения для каждой точки входа задокументированы в интерфейсе API:
// кто удерживает ссылку, кто обязан её отпустить и какие вызовы меняют
// счетчик ссылок.
package native

// InstanceRef — дескриптор экземпляра медиа-библиотеки (контекст выполнения).
type InstanceRef uintptr

// MediaRef — дескриптор одного воспроизводимого элемента.
type MediaRef uintptr

// ListRef — дескриптор списка медиа.
type ListRef uintptr

// DiscovererRef — дескриптор сервиса обнаружения медиа.
type DiscovererRef uintptr

// LibraryRef — дескриптор постоянного каталога медиа.
type LibraryRef uintptr

// EventManagerRef — дескриптор диспетчера событий списка.
type EventManagerRef uintptr

// MetaKey задает ключ метаданных медиа-объекта.
type MetaKey int

// Ключи метаданных, поддерживаемые бэкендами.
const (
	MetaTitle MetaKey = iota
	MetaArtist
	MetaAlbum
	// MetaCatalogID — номер записи в постоянном каталоге (пустая строка,
	// если медиа не из каталога)
	MetaCatalogID
)

// EventType задает тип события списка медиа.
type EventType int

// События, которые диспетчер списка рассылает подписчикам.
const (
	// EventItemAdded — элемент добавлен в список
	EventItemAdded EventType = iota
	// EventWillAddItem — элемент будет добавлен в список
	EventWillAddItem
	// EventItemDeleted — элемент удален из списка
	EventItemDeleted
	// EventWillDeleteItem — элемент будет удален из списка
	EventWillDeleteItem
)

// Event описывает одно событие изменения списка.
type Event struct {
	Type  EventType
	Media MediaRef // элемент, которого касается событие
	Index int      // позиция элемента в списке
}

// Callback — функция-подписчик на события списка.
type Callback func(Event)

// API — полный набор точек входа нативной библиотеки, используемый оберткой.
//
// Целочисленные результаты мутирующих вызовов следуют соглашению нативной
// библиотеки: 0 — успех, -1 — список только для чтения или элемент не найден.
// Ошибки уровня Go здесь не возникают.
type API interface {
	// NewInstance создает экземпляр библиотеки. Вызывающий обязан освободить
	// его через ReleaseInstance.
	NewInstance() InstanceRef
	// ReleaseInstance уменьшает счетчик ссылок экземпляра.
	ReleaseInstance(InstanceRef)

	// NewMediaFromMRL создает медиа-объект по MRL (путь к файлу или URL).
	// Вызывающий получает одну ссылку и обязан отпустить её через ReleaseMedia.
	NewMediaFromMRL(inst InstanceRef, mrl string) MediaRef
	// RetainMedia увеличивает счетчик ссылок медиа-объекта.
	RetainMedia(MediaRef)
	// ReleaseMedia уменьшает счетчик ссылок; на нуле объект уничтожается.
	ReleaseMedia(MediaRef)
	// MediaMRL возвращает MRL медиа-объекта.
	MediaMRL(MediaRef) string
	// MediaMeta возвращает значение метаданных по ключу (пустая строка, если
	// значение не задано).
	MediaMeta(MediaRef, MetaKey) string
	// SetMediaMeta задает значение метаданных.
	SetMediaMeta(MediaRef, MetaKey, string)
	// MediaDuration возвращает длительность в миллисекундах (-1, если неизвестна).
	MediaDuration(MediaRef) int64
	// MediaSubitems возвращает список подэлементов медиа. Счетчик ссылок
	// списка увеличивается; вызывающий отпускает его через ReleaseList.
	MediaSubitems(MediaRef) ListRef

	// NewDiscoverer создает сервис обнаружения для каталога dir. Вызывающий
	// освобождает его через ReleaseDiscoverer.
	NewDiscoverer(inst InstanceRef, dir string) DiscovererRef
	// StartDiscoverer запускает сканирование. 0 — успех, -1 — ошибка.
	StartDiscoverer(DiscovererRef) int
	// StopDiscoverer останавливает сканирование.
	StopDiscoverer(DiscovererRef)
	// ReleaseDiscoverer уменьшает счетчик ссылок сервиса.
	ReleaseDiscoverer(DiscovererRef)
	// DiscovererList возвращает живой список результатов обнаружения.
	// Счетчик ссылок списка увеличивается.
	DiscovererList(DiscovererRef) ListRef

	// NewLibrary создает объект каталога. Вызывающий освобождает его через
	// ReleaseLibrary.
	NewLibrary(inst InstanceRef) LibraryRef
	// LoadLibrary загружает содержимое каталога. 0 — успех, -1 — ошибка.
	LoadLibrary(LibraryRef) int
	// ReleaseLibrary уменьшает счетчик ссылок каталога.
	ReleaseLibrary(LibraryRef)
	// LibraryList возвращает список медиа каталога. Счетчик ссылок списка
	// увеличивается.
	LibraryList(LibraryRef) ListRef

	// NewList создает пустой изменяемый список. Вызывающий получает одну
	// ссылку и отпускает её через ReleaseList.
	NewList(inst InstanceRef) ListRef
	// RetainList увеличивает счетчик ссылок списка.
	RetainList(ListRef)
	// ReleaseList уменьшает счетчик ссылок; на нуле список уничтожается
	// вместе со своим диспетчером событий.
	ReleaseList(ListRef)

	// ListSetMedia связывает список с медиа-объектом, замещая предыдущий.
	// Блокировка списка НЕ должна удерживаться при вызове.
	ListSetMedia(ListRef, MediaRef)
	// ListAddMedia добавляет элемент в конец списка. Счетчик ссылок медиа
	// увеличивается. 0 — успех, -1 — список только для чтения.
	ListAddMedia(ListRef, MediaRef) int
	// ListInsertMedia вставляет элемент на позицию pos. 0 — успех, -1 —
	// список только для чтения.
	ListInsertMedia(list ListRef, media MediaRef, pos int) int
	// ListRemoveIndex удаляет элемент с позиции pos. 0 — успех, -1 — список
	// только для чтения или позиция не существует.
	ListRemoveIndex(list ListRef, pos int) int
	// ListCount возвращает число элементов списка.
	ListCount(ListRef) int
	// ListItemAtIndex возвращает элемент на позиции pos или нулевой
	// дескриптор, если позиции нет. При успехе счетчик ссылок медиа
	// увеличивается.
	ListItemAtIndex(list ListRef, pos int) MediaRef
	// ListIndexOfItem возвращает позицию первого вхождения медиа или -1.
	ListIndexOfItem(ListRef, MediaRef) int
	// ListIsReadonly сообщает, запрещена ли мутация списка.
	ListIsReadonly(ListRef) bool

	// ListLock захватывает блокировку списка. Блокирует до освобождения.
	// Повторный захват тем же потоком недопустим.
	ListLock(ListRef)
	// ListUnlock освобождает блокировку. Вызывается строго один раз на
	// каждый ListLock и только держателем блокировки.
	ListUnlock(ListRef)

	// ListEventManager возвращает диспетчер событий списка. Диспетчер
	// неизменяем и живет столько же, сколько список.
	ListEventManager(ListRef) EventManagerRef
	// EventAttach регистрирует подписчика и возвращает идентификатор
	// регистрации (-1 при неверном дескрипторе).
	EventAttach(em EventManagerRef, et EventType, cb Callback) int
	// EventDetach снимает регистрацию подписчика.
	EventDetach(em EventManagerRef, et EventType, id int)
}
