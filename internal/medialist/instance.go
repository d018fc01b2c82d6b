// Package medialist оборачивает списки медиа нативной библиотеки в объекты
// со счетчиком ссылок.
//
// Пакет не хранит состояние сам: каждая операция — прямой вызов точки входа
// бэкенда (native.API), а хранилище списков, их блокировки и доставка событий
// целиком живут на стороне бэкенда. Ошибки этим слоем не порождаются: отказ
// виден только по нативным соглашениям (-1, нулевой дескриптор).
package medialist

import (
	"github.com/hazadus/go-playlister/internal/native"
)

// Instance представляет экземпляр нативной библиотеки
type Instance struct {
	api native.API
	ref native.InstanceRef
}

// NewInstance создает экземпляр библиотеки на указанном бэкенде.
// Экземпляр владеет одной ссылкой; освобождается через Release.
func NewInstance(api native.API) *Instance {
	return &Instance{
		api: api,
		ref: api.NewInstance(),
	}
}

// Release отпускает ссылку на экземпляр
func (i *Instance) Release() {
	i.api.ReleaseInstance(i.ref)
}

// Valid сообщает, что за оберткой стоит живой нативный объект
func (i *Instance) Valid() bool {
	return i.ref != 0
}
