//go:build !with_libvlc

// Package vlc привязывает контракт native.API к libvlc через cgo.
// В сборке без тега with_libvlc бэкенд недоступен.
package vlc

import (
	"errors"

	"github.com/hazadus/go-playlister/internal/native"
)

// Supported сообщает, что бэкенд libvlc скомпилирован
const Supported = false

// New возвращает ошибку: сборка выполнена без поддержки libvlc
func New() (native.API, error) {
	return nil, errors.New("сборка выполнена без поддержки libvlc (тег with_libvlc)")
}
