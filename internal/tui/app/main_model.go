// Package app содержит основную логику TUI приложения
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/player"
	tuiPlayer "github.com/hazadus/go-playlister/internal/tui/player"
	"github.com/hazadus/go-playlister/internal/tui/playlist"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// PlaylistScreen - экран списка медиа
	PlaylistScreen ScreenType = iota
	// PlayerScreen - экран плеера
	PlayerScreen
)

// MainModel представляет главную модель TUI
type MainModel struct {
	mediaList     *medialist.MediaList
	currentScreen ScreenType
	playlistModel *playlist.Model
	playerModel   *tuiPlayer.Model
	globalPlayer  *player.Player // Глобальный плеер для переиспользования
}

// NewMainModel создает новую главную модель
func NewMainModel(mediaList *medialist.MediaList) *MainModel {
	return &MainModel{
		mediaList:     mediaList,
		currentScreen: PlaylistScreen,
		playlistModel: playlist.NewModel(mediaList),
		playerModel:   nil, // Будет создана при выборе элемента
		globalPlayer:  player.NewPlayer(),
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.playlistModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		switch msg.String() {
		case "ctrl+c":
			// Останавливаем плеер перед выходом
			if m.globalPlayer != nil {
				m.globalPlayer.Stop()
			}
			return m, tea.Quit
		}

	case playlist.ItemSelectedMsg:
		// Переключаемся на экран плеера с выбранным элементом
		m.currentScreen = PlayerScreen
		m.playerModel = tuiPlayer.NewModel(m.mediaList, msg.Index, m.globalPlayer)
		return m, m.playerModel.Init()

	case tuiPlayer.GoBackMsg:
		// Возвращаемся к списку
		m.currentScreen = PlaylistScreen
		m.playerModel = nil
		m.playlistModel.RefreshData()
		return m, nil

	case tea.WindowSizeMsg:
		// Передаем размеры окна активной модели
		switch m.currentScreen {
		case PlaylistScreen:
			var playlistCmd tea.Cmd
			m.playlistModel, playlistCmd = m.playlistModel.Update(msg)
			return m, playlistCmd
		case PlayerScreen:
			if m.playerModel != nil {
				updatedModel, playerCmd := m.playerModel.Update(msg)
				if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
					m.playerModel = playerModel
				}
				return m, playerCmd
			}
		}
		return m, nil
	}

	// Передаем сообщение активной модели
	switch m.currentScreen {
	case PlaylistScreen:
		var playlistCmd tea.Cmd
		m.playlistModel, playlistCmd = m.playlistModel.Update(msg)
		cmd = playlistCmd

	case PlayerScreen:
		if m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			cmd = playerCmd
		}
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case PlaylistScreen:
		return m.playlistModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	if m.playlistModel != nil {
		m.playlistModel.Close()
	}
	if m.globalPlayer != nil {
		m.globalPlayer.Close()
	}
}
