// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/player"
	"github.com/hazadus/go-playlister/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)

// GoBackMsg отправляется для возврата к списку
type GoBackMsg struct{}

// ProgressMsg содержит обновления прогресса воспроизведения
type ProgressMsg struct {
	Status player.Status
}

// TrackFinishedMsg отправляется при завершении текущего трека
type TrackFinishedMsg struct{}

// PlaybackErrorMsg отправляется при ошибке воспроизведения
type PlaybackErrorMsg struct {
	Error error
}

// Model представляет модель экрана воспроизведения
type Model struct {
	mediaList   *medialist.MediaList
	startIndex  int
	player      *player.Player
	progressBar progress.Model
	status      player.Status
	artist      string
	title       string
	album       string
	isPlaying   bool
	error       error
	width       int
	height      int
}

// NewModel создает новую модель плеера для воспроизведения списка с позиции index
func NewModel(mediaList *medialist.MediaList, index int, existingPlayer *player.Player) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{
		mediaList:   mediaList,
		startIndex:  index,
		player:      existingPlayer,
		progressBar: prog,
		isPlaying:   false,
	}
}

// Init инициализирует модель и запускает воспроизведение
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.startPlayback(),
		m.listenForProgress(),
	)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			// Останавливаем плеер и возвращаемся к списку
			m.player.Stop()
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case " ":
			// Пауза/воспроизведение
			m.player.Pause()
			m.isPlaying = !m.isPlaying
			return m, nil

		case "n", "right":
			// Следующий элемент списка
			return m, m.switchTrack(m.player.Next)

		case "p", "left":
			// Предыдущий элемент списка
			return m, m.switchTrack(m.player.Prev)
		}

	case ProgressMsg:
		m.status = msg.Status
		m.isPlaying = msg.Status.IsPlaying

		var percent float64
		if msg.Status.Total > 0 {
			percent = float64(msg.Status.Current) / float64(msg.Status.Total)
		}

		return m, tea.Batch(
			m.progressBar.SetPercent(percent),
			m.listenForProgress(),
		)

	case TrackFinishedMsg:
		// Трек закончился, пробуем следующий; в конце списка возвращаемся
		if err := m.player.Next(); err != nil {
			m.player.Stop()
			return m, func() tea.Msg {
				return GoBackMsg{}
			}
		}
		m.refreshTrackInfo()
		return m, m.listenForProgress()

	case PlaybackErrorMsg:
		m.error = msg.Error
		m.isPlaying = false
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	if m.error != nil {
		return fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("❌ Ошибка воспроизведения"),
			errorStyle.Render(m.error.Error()),
			controlsStyle.Render("Нажмите 'q' или 'esc' для возврата"),
		)
	}

	title := titleStyle.Render("🎵 Воспроизведение")

	trackInfo := trackInfoStyle.Render(fmt.Sprintf(
		"🎤 %s\n🎵 %s\n💿 %s",
		m.artist,
		m.title,
		m.album,
	))

	var statusIcon string
	if m.isPlaying {
		statusIcon = "▶️"
	} else {
		statusIcon = "⏸️"
	}

	statusText := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon, formatStatus(m.isPlaying)))

	progressView := m.progressBar.View()

	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatDuration(m.status.Current),
		utils.FormatDuration(m.status.Total),
	)

	position := fmt.Sprintf("Трек %d из %d", m.player.Index()+1, m.countItems())

	controls := controlsStyle.Render(
		"Пробел: пауза • n/p: следующий/предыдущий • q/esc: назад к списку",
	)

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s\n%s\n\n%s",
		title,
		trackInfo,
		statusText,
		progressView,
		timeText,
		position,
		controls,
	)
}

// startPlayback запускает воспроизведение списка
func (m *Model) startPlayback() tea.Cmd {
	return func() tea.Msg {
		err := m.player.PlayList(m.mediaList, m.startIndex)
		if err != nil {
			return PlaybackErrorMsg{Error: err}
		}
		m.isPlaying = true
		m.refreshTrackInfo()
		return nil
	}
}

// switchTrack переключает трек и обновляет информацию о нем
func (m *Model) switchTrack(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			// За границами списка остаемся на текущем треке
			return nil
		}
		m.refreshTrackInfo()
		return nil
	}
}

// refreshTrackInfo перечитывает метаданные играющего элемента
func (m *Model) refreshTrackInfo() {
	current := m.player.Current()
	if current == nil {
		return
	}

	m.artist = current.Meta(medialist.MetaArtist)
	m.title = current.Meta(medialist.MetaTitle)
	m.album = current.Meta(medialist.MetaAlbum)
	if m.title == "" {
		m.title = filepath.Base(current.MRL())
	}
}

// countItems возвращает число элементов списка под его блокировкой
func (m *Model) countItems() int {
	var count int
	m.mediaList.Locked(func() {
		count = m.mediaList.Count()
	})
	return count
}

// listenForProgress слушает обновления прогресса от плеера
func (m *Model) listenForProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case status, ok := <-m.player.Progress():
			if !ok {
				return TrackFinishedMsg{}
			}
			return ProgressMsg{Status: status}

		case _, ok := <-m.player.Done():
			if !ok {
				return TrackFinishedMsg{}
			}
			return TrackFinishedMsg{}
		}
	}
}

// Вспомогательные функции

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
