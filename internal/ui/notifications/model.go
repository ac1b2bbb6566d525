// Package notifications renders the notification center list.
package notifications

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notify"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// LoadedMsg is sent when the cached notification list has been
// refreshed.
type LoadedMsg struct{}

// Model is the notification center view.
type Model struct {
	list   list.Model
	store  *notify.Store
	keys   *keys.KeyMap
	userID int64
	role   model.Role
	width  int
	height int
}

// New creates a notification center model backed by the given store.
func New(s *notify.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetIdentity tells the view whose notifications to fetch.
func (m *Model) SetIdentity(userID int64, role model.Role) {
	m.userID = userID
	m.role = role
}

// Init returns a command that loads the notification list.
func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		return m, m.syncItems()

	case notify.UpdateMsg:
		return m, m.syncItems()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.MarkRead):
			item, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			id := item.Notification.ID
			return m, tea.Batch(
				func() tea.Msg {
					m.store.MarkAsRead(context.Background(), id)
					return LoadedMsg{}
				},
			)

		case key.Matches(msg, m.keys.MarkAllRead):
			userID, role := m.userID, m.role
			return m, func() tea.Msg {
				m.store.MarkAllAsRead(context.Background(), userID, role)
				return LoadedMsg{}
			}

		case key.Matches(msg, m.keys.Delete):
			item, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			id := item.Notification.ID
			return m, func() tea.Msg {
				m.store.Delete(context.Background(), id)
				return LoadedMsg{}
			}

		case key.Matches(msg, m.keys.Refresh):
			return m, m.Refresh()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the notification center.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when there are no notifications.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.store.IsLoading() {
		return style.Render("Loading notifications...")
	}
	return style.Render("No notifications yet.")
}

// Refresh returns a tea.Cmd fetching the list from the server.
func (m Model) Refresh() tea.Cmd {
	s := m.store
	userID, role := m.userID, m.role
	return func() tea.Msg {
		_ = s.Fetch(context.Background(), userID, role)
		return LoadedMsg{}
	}
}

// syncItems rebuilds the list items from the store cache.
func (m *Model) syncItems() tea.Cmd {
	cached := m.store.Notifications()
	items := make([]list.Item, len(cached))
	for i, n := range cached {
		items[i] = Item{Notification: n}
	}
	return m.list.SetItems(items)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
