// Package player содержит компоненты для воспроизведения списков медиа
package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/streaming"
)

// Status представляет текущий статус плеера
type Status struct {
	Current    time.Duration // Текущая позиция
	Total      time.Duration // Общая продолжительность
	Index      int           // Позиция играющего элемента в списке
	IsPlaying  bool          // Воспроизводится ли трек
	Speed      float64       // Скорость воспроизведения (для диагностики)
	StuckCount int           // Счетчик зависших состояний
}

// Player воспроизводит элементы списка медиа по очереди.
//
// Плеер читает список под его блокировкой только в момент выбора элемента;
// выданная ItemAtIndex ссылка удерживает медиа живым на время
// воспроизведения, даже если элемент тем временем удалили из списка.
type Player struct {
	// Каналы для обратной связи
	progressChan chan Status
	doneChan     chan bool

	// Внутреннее состояние
	ctx           context.Context
	cancel        context.CancelFunc
	mutex         sync.RWMutex
	isInitialized bool
	isPaused      bool
	list          *medialist.MediaList
	index         int
	current       *medialist.Media

	// Компоненты для воспроизведения
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	source   io.ReadCloser
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer() *Player {
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		progressChan: make(chan Status, 1),
		doneChan:     make(chan bool, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Progress возвращает канал для получения обновлений прогресса
func (p *Player) Progress() <-chan Status {
	return p.progressChan
}

// Done возвращает канал, в который приходит сигнал по окончании каждого трека
func (p *Player) Done() <-chan bool {
	return p.doneChan
}

// PlayList начинает воспроизведение списка с позиции pos
func (p *Player) PlayList(list *medialist.MediaList, pos int) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.list = list
	return p.playIndexLocked(pos)
}

// Next переключается на следующий элемент списка
func (p *Player) Next() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.playIndexLocked(p.index + 1)
}

// Prev переключается на предыдущий элемент списка
func (p *Player) Prev() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.playIndexLocked(p.index - 1)
}

// playIndexLocked запускает воспроизведение элемента списка на позиции pos.
// Должен вызываться под мьютексом плеера.
func (p *Player) playIndexLocked(pos int) error {
	if p.list == nil {
		return fmt.Errorf("список для воспроизведения не задан")
	}

	// Берем элемент под блокировкой списка
	var item *medialist.Media
	p.list.Locked(func() {
		item = p.list.ItemAtIndex(pos)
	})
	if item == nil {
		return fmt.Errorf("в списке нет элемента с позицией %d", pos)
	}

	// Останавливаем текущее воспроизведение, если есть
	p.stopInternal()

	p.index = pos
	p.current = item

	mrl := item.MRL()
	source, err := p.openSource(mrl)
	if err != nil {
		p.stopInternal()
		return err
	}
	p.source = source

	// Декодируем MP3
	streamer, format, err := mp3.Decode(source)
	if err != nil {
		p.stopInternal()
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	p.streamer = streamer

	// Инициализируем speaker (только один раз)
	if !p.isInitialized {
		err = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5))
		if err != nil {
			p.stopInternal()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.isInitialized = true
	}

	// Создаем контроллер паузы
	p.ctrl = &beep.Ctrl{
		Streamer: streamer,
		Paused:   false,
	}
	p.isPaused = false

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Уведомляем об окончании трека
		select {
		case p.doneChan <- true:
		default:
		}
	})))

	// Запускаем мониторинг прогресса в отдельной горутине
	go p.monitorProgress(format, item.Duration())

	return nil
}

// openSource открывает источник данных по MRL
func (p *Player) openSource(mrl string) (io.ReadCloser, error) {
	if isRemote(mrl) {
		const bufferSize = 256 * 1024 // 256KB буфер
		reader, err := streaming.NewReader(p.ctx, mrl, bufferSize)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания потокового ридера: %w", err)
		}
		return reader, nil
	}

	file, err := os.Open(mrl)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	return file, nil
}

// Pause приостанавливает или возобновляет воспроизведение
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.isPaused = !p.isPaused
		p.ctrl.Paused = p.isPaused
		speaker.Unlock()
	}
}

// Stop останавливает воспроизведение
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	if p.source != nil {
		p.source.Close()
		p.source = nil
	}

	if p.current != nil {
		// Отпускаем ссылку, выданную ItemAtIndex
		p.current.Release()
		p.current = nil
	}
	p.isPaused = false
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.cancel()
	p.Stop()
	close(p.progressChan)
	close(p.doneChan)
	return nil
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// Current возвращает играющий медиа-объект (nil, если плеер остановлен).
// Ссылка принадлежит плееру; вызывающий не должен её отпускать.
func (p *Player) Current() *medialist.Media {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.current
}

// Index возвращает позицию играющего элемента в списке
func (p *Player) Index() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.index
}

// monitorProgress мониторит прогресс воспроизведения и отправляет обновления
func (p *Player) monitorProgress(format beep.Format, knownDurationMs int64) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastPosition := int64(0)
	stuckCount := 0
	startTime := time.Now()
	pausedTime := time.Duration(0)
	lastPausedState := false

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mutex.RLock()

			if p.streamer == nil || p.ctrl == nil {
				p.mutex.RUnlock()
				return
			}

			speaker.Lock()
			currentPos := format.SampleRate.D(p.streamer.Position())
			totalLen := format.SampleRate.D(p.streamer.Len())
			currentPauseState := p.isPaused
			speaker.Unlock()

			index := p.index
			p.mutex.RUnlock()

			// Учитываем время паузы
			if currentPauseState && !lastPausedState {
				pausedTime = time.Since(startTime) - currentPos
			}
			lastPausedState = currentPauseState

			// Проверяем, не застрял ли поток
			currentPosInt := int64(currentPos)
			if !currentPauseState && currentPosInt == lastPosition {
				stuckCount++
			} else {
				stuckCount = 0
			}
			lastPosition = currentPosInt

			// Вычисляем скорость воспроизведения
			elapsed := time.Since(startTime) - pausedTime
			var speed float64
			if elapsed > 0 && !currentPauseState {
				speed = float64(currentPos) / float64(elapsed)
			}

			// Определяем общую продолжительность
			var duration time.Duration
			if knownDurationMs > 0 {
				duration = time.Duration(knownDurationMs) * time.Millisecond
			} else if totalLen > 0 {
				duration = totalLen
			}

			status := Status{
				Current:    currentPos,
				Total:      duration,
				Index:      index,
				IsPlaying:  !currentPauseState,
				Speed:      speed,
				StuckCount: stuckCount,
			}

			select {
			case p.progressChan <- status:
			default:
				// Если канал заблокирован, пропускаем обновление
			}
		}
	}
}

// isRemote проверяет, указывает ли MRL на сетевой ресурс
func isRemote(mrl string) bool {
	return len(mrl) > 8 && (mrl[:7] == "http://" || mrl[:8] == "https://")
}
