package medialist

import (
	"github.com/hazadus/go-playlister/internal/native"
)

// MediaDiscoverer представляет сервис обнаружения медиа: живой сканер,
// который наполняет свой список результатов по мере появления файлов.
type MediaDiscoverer struct {
	api native.API
	ref native.DiscovererRef
}

// NewDiscoverer создает сервис обнаружения для каталога dir.
// Вызывающий владеет одной ссылкой и отпускает её через Release.
func NewDiscoverer(inst *Instance, dir string) *MediaDiscoverer {
	return &MediaDiscoverer{
		api: inst.api,
		ref: inst.api.NewDiscoverer(inst.ref, dir),
	}
}

// Valid сообщает, что за оберткой стоит живой нативный объект
func (d *MediaDiscoverer) Valid() bool {
	return d.ref != 0
}

// Start запускает сканирование. Возвращает 0 при успехе, -1 при ошибке.
func (d *MediaDiscoverer) Start() int {
	return d.api.StartDiscoverer(d.ref)
}

// Stop останавливает сканирование
func (d *MediaDiscoverer) Stop() {
	d.api.StopDiscoverer(d.ref)
}

// Release отпускает ссылку на сервис обнаружения
func (d *MediaDiscoverer) Release() {
	d.api.ReleaseDiscoverer(d.ref)
}
