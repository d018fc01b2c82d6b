// Package playlist содержит модель экрана списка медиа для TUI
package playlist

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-playlister/internal/medialist"
	"github.com/hazadus/go-playlister/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// ItemSelectedMsg отправляется при выборе элемента для воспроизведения
type ItemSelectedMsg struct {
	Index int
}

// ItemsChangedMsg отправляется при изменении состава списка
type ItemsChangedMsg struct{}

// entry снимок метаданных одного элемента списка
type entry struct {
	index      int
	artist     string
	title      string
	durationMs int64
}

// mediaItem реализует интерфейс list.Item для элемента списка
type mediaItem struct {
	entry entry
}

func (i mediaItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.entry.artist, i.entry.title)
}

// mediaItemDelegate реализует отображение элементов списка
type mediaItemDelegate struct{}

func (d mediaItemDelegate) Height() int                             { return 1 }
func (d mediaItemDelegate) Spacing() int                            { return 0 }
func (d mediaItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d mediaItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(mediaItem)
	if !ok {
		return
	}

	// Форматируем строку в виде таблицы: № | Исполнитель | Название | Продолжительность
	duration := utils.FormatMilliseconds(i.entry.durationMs)
	str := fmt.Sprintf("%-4d %-20s %-50s %s",
		i.entry.index+1,
		utils.TruncateString(i.entry.artist, 20),
		utils.TruncateString(i.entry.title, 50),
		duration)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана списка медиа
type Model struct {
	list      list.Model
	mediaList *medialist.MediaList
	changes   chan struct{}
	addedID   int
	deletedID int
	readonly  bool
	statusMsg string
	quitting  bool
}

// NewModel создает новую модель списка медиа и подписывается на его события
func NewModel(mediaList *medialist.MediaList) *Model {
	l := list.New(nil, mediaItemDelegate{}, 0, 0)
	l.Title = "Плейлист"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	m := &Model{
		list:      l,
		mediaList: mediaList,
		changes:   make(chan struct{}, 1),
		readonly:  mediaList.IsReadonly(),
	}
	m.RefreshData()

	// Подписываемся на изменения состава списка
	notify := func(medialist.Event) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	}
	em := mediaList.EventManager()
	m.addedID = em.Attach(medialist.EventItemAdded, notify)
	m.deletedID = em.Attach(medialist.EventItemDeleted, notify)

	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return m.listenForChanges()
}

// Close отписывает модель от событий списка
func (m *Model) Close() {
	em := m.mediaList.EventManager()
	em.Detach(medialist.EventItemAdded, m.addedID)
	em.Detach(medialist.EventItemDeleted, m.deletedID)
}

// RefreshData перечитывает элементы из списка медиа
func (m *Model) RefreshData() {
	entries := snapshot(m.mediaList)

	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = mediaItem{entry: e}
	}

	m.list.SetItems(items)
}

// snapshot читает метаданные всех элементов под блокировкой списка
func snapshot(ml *medialist.MediaList) []entry {
	var entries []entry
	ml.Locked(func() {
		count := ml.Count()
		entries = make([]entry, 0, count)
		for i := 0; i < count; i++ {
			item := ml.ItemAtIndex(i)
			if item == nil {
				continue
			}
			e := entry{
				index:      i,
				artist:     item.Meta(medialist.MetaArtist),
				title:      item.Meta(medialist.MetaTitle),
				durationMs: item.Duration(),
			}
			if e.title == "" {
				e.title = filepath.Base(item.MRL())
			}
			item.Release()
			entries = append(entries, e)
		}
	})
	return entries
}

// listenForChanges ждет следующего уведомления об изменении списка
func (m *Model) listenForChanges() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return ItemsChangedMsg{}
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для заголовка и справки
		return m, nil

	case ItemsChangedMsg:
		m.RefreshData()
		m.statusMsg = ""
		return m, m.listenForChanges()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			selectedItem := m.list.SelectedItem()
			if selectedItem != nil {
				if item, ok := selectedItem.(mediaItem); ok {
					index := item.entry.index
					return m, func() tea.Msg {
						return ItemSelectedMsg{Index: index}
					}
				}
			}

		case "d":
			// Удаление выбранного элемента из списка
			if m.readonly {
				m.statusMsg = "Список доступен только для чтения"
				return m, nil
			}
			selectedItem := m.list.SelectedItem()
			if selectedItem != nil {
				if item, ok := selectedItem.(mediaItem); ok {
					var result int
					m.mediaList.Locked(func() {
						result = m.mediaList.RemoveIndex(item.entry.index)
					})
					if result != 0 {
						m.statusMsg = "Не удалось удалить элемент"
					}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	view := m.list.View()

	help := "Enter: воспроизвести • q: выход"
	if !m.readonly {
		help = "Enter: воспроизвести • d: удалить из списка • q: выход"
	}
	extraHelp := helpStyle.Render(help)

	if m.statusMsg != "" {
		return view + "\n" + helpStyle.Render(m.statusMsg) + "\n" + extraHelp
	}
	return view + "\n" + extraHelp
}
