// Package help renders the keyboard reference: the global keys that
// work everywhere, the notification center keys, and the actions of
// the signed-in role's home screen.
package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// row is one key-to-action line in the reference.
type row struct {
	key  string
	desc string
}

// section groups rows under a heading.
type section struct {
	title string
	rows  []row
}

// Model is the keyboard reference view.
type Model struct {
	keys   *keys.KeyMap
	role   model.Role
	width  int
	height int
}

// New creates the keyboard reference view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reference view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// SetRole selects which role's home-screen actions are listed.
func (m *Model) SetRole(role model.Role) {
	m.role = role
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// bindingRow converts a key.Binding into a reference row.
func bindingRow(b key.Binding) row {
	h := b.Help()
	return row{key: h.Key, desc: h.Desc}
}

// sections assembles the reference for the current role.
func (m Model) sections() []section {
	k := m.keys

	out := []section{
		{
			title: "Everywhere",
			rows: []row{
				bindingRow(k.Up),
				bindingRow(k.Down),
				bindingRow(k.Select),
				bindingRow(k.Back),
				bindingRow(k.Home),
				bindingRow(k.Notifications),
				{key: "c", desc: "VanMitra assistant"},
				bindingRow(k.Refresh),
				bindingRow(k.Logout),
				bindingRow(k.Help),
				bindingRow(k.Quit),
			},
		},
		{
			title: "Notifications",
			rows: []row{
				bindingRow(k.MarkRead),
				bindingRow(k.MarkAllRead),
				bindingRow(k.Delete),
			},
		},
	}

	if s := m.roleSection(); s != nil {
		out = append(out, *s)
	}
	return out
}

// roleSection lists the home-screen actions of the signed-in role.
func (m Model) roleSection() *section {
	switch m.role {
	case model.RoleSeller:
		return &section{title: "Seller home", rows: []row{
			{key: "tab", desc: "switch tab"},
			{key: "a", desc: "add product"},
			{key: "e", desc: "edit product"},
			{key: "enter", desc: "advance order status"},
		}}
	case model.RoleBuyer:
		return &section{title: "Buyer home", rows: []row{
			{key: "tab", desc: "switch tab"},
			{key: "enter", desc: "add to cart"},
			{key: "w", desc: "add to wishlist"},
			{key: "x", desc: "remove item"},
		}}
	case model.RoleAgent:
		return &section{title: "Delivery queue", rows: []row{
			{key: "enter", desc: "accept / advance delivery"},
			{key: "t", desc: "toggle duty status"},
		}}
	case model.RoleAdmin:
		return &section{title: "Admin console", rows: []row{
			{key: "tab", desc: "switch tab"},
			{key: "a", desc: "approve seller / toggle board"},
			{key: "s", desc: "suspend seller"},
			{key: "x", desc: "reassign delivery"},
		}}
	default:
		return nil
	}
}

// View renders the keyboard reference.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorClay).
		MarginBottom(1)
	headingStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)
	keyStyle := lipgloss.NewStyle().Foreground(theme.ColorYellow)
	descStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	parts := []string{titleStyle.Render("Keyboard Reference")}
	for _, s := range m.sections() {
		parts = append(parts, headingStyle.Render(s.title))
		for _, r := range s.rows {
			parts = append(parts, fmt.Sprintf("  %s %s",
				keyStyle.Render(fmt.Sprintf("%-8s", r.key)),
				descStyle.Render(r.desc)))
		}
		parts = append(parts, "")
	}
	parts = append(parts, theme.HelpStyle.Render("? or esc to close"))

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
