// Package chat renders the VanMitra assistant panel: a conversation
// viewport over the chatbot endpoint with quick-reply suggestions.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// CloseMsg signals the parent to close the assistant panel.
type CloseMsg struct{}

// ReplyMsg carries the assistant's reply. A nil Reply means the call
// failed and the panel shows the canned apology instead.
type ReplyMsg struct {
	Reply *model.ChatReply
}

// entry is one rendered line of the conversation.
type entry struct {
	fromUser bool
	text     string
	kind     string
	cards    []model.ChatCard
}

// Model is the assistant panel.
type Model struct {
	svc      *service.Chatbot
	input    textarea.Model
	viewport viewport.Model

	entries     []entry
	suggestions []string
	waiting     bool
	greeted     bool

	userID int64
	role   model.Role

	width  int
	height int
}

// New creates the assistant panel.
func New(svc *service.Chatbot, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask VanMitra..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetWidth(width - 4)
	ta.SetHeight(2)
	ta.CharLimit = 500
	ta.Focus()

	vp := viewport.New(width-4, chatViewportHeight(height))

	return Model{
		svc:      svc,
		input:    ta,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

func chatViewportHeight(height int) int {
	h := height - 8
	if h < 4 {
		h = 4
	}
	return h
}

// SetIdentity records who is talking to the assistant. A zero userID
// with an empty role is a guest.
func (m *Model) SetIdentity(userID int64, role model.Role) {
	m.userID = userID
	m.role = role
}

// Start focuses the input and, on first open, asks the assistant for
// its role-aware welcome. The greeting is not shown as a user message.
func (m *Model) Start() tea.Cmd {
	cmds := []tea.Cmd{m.input.Focus(), textarea.Blink}
	if !m.greeted {
		m.greeted = true
		m.waiting = true
		cmds = append(cmds, m.ask("hello"))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the assistant panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReplyMsg:
		m.waiting = false
		if msg.Reply == nil {
			m.entries = append(m.entries, entry{
				text: "Sorry, I'm having trouble right now. Please try again later.",
				kind: model.ChatError,
			})
			m.suggestions = nil
		} else {
			m.entries = append(m.entries, entry{
				text:  msg.Reply.Message,
				kind:  msg.Reply.Type,
				cards: msg.Reply.Data,
			})
			m.suggestions = msg.Reply.Suggestions
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return CloseMsg{} }

	case "enter":
		if m.waiting {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		return m.send(text)
	}

	// A bare digit with an empty input picks a quick-reply suggestion.
	if !m.waiting && strings.TrimSpace(m.input.Value()) == "" {
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			idx := int(s[0] - '1')
			if idx < len(m.suggestions) {
				return m.send(m.suggestions[idx])
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send appends the user's message and asks the assistant.
func (m Model) send(text string) (Model, tea.Cmd) {
	m.entries = append(m.entries, entry{fromUser: true, text: text})
	m.suggestions = nil
	m.waiting = true
	m.refreshViewport()
	return m, m.ask(text)
}

// ask returns a command that round-trips one message.
func (m Model) ask(text string) tea.Cmd {
	svc, role, userID := m.svc, m.role, m.userID
	return func() tea.Msg {
		reply, err := svc.Send(context.Background(), text, role, userID)
		if err != nil {
			return ReplyMsg{}
		}
		return ReplyMsg{Reply: reply}
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m Model) renderConversation() string {
	userStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	botStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorClay)
	textStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	var sections []string
	for _, e := range m.entries {
		if e.fromUser {
			sections = append(sections, userStyle.Render("You:"))
		} else {
			sections = append(sections, botStyle.Render("VanMitra:"))
		}
		sections = append(sections, textStyle.Render(e.text))
		for _, line := range renderCards(e.kind, e.cards) {
			sections = append(sections, line)
		}
		sections = append(sections, "")
	}

	if m.waiting {
		sections = append(sections, theme.HelpStyle.Render("VanMitra is thinking..."))
	} else {
		for i, s := range m.suggestions {
			sections = append(sections, theme.HelpStyle.Render(
				fmt.Sprintf("[%d] %s", i+1, s)))
		}
	}

	return strings.Join(sections, "\n")
}

// renderCards formats the structured results attached to a reply.
func renderCards(kind string, cards []model.ChatCard) []string {
	style := lipgloss.NewStyle().Foreground(theme.ColorGray)
	var lines []string
	for _, c := range cards {
		switch kind {
		case model.ChatOrderList, model.ChatOrderInfo:
			lines = append(lines, style.Render(fmt.Sprintf(
				"  • Order #%d  ₹%.0f  %s", c.ID, c.TotalAmount, c.Status)))
		default:
			lines = append(lines, style.Render(fmt.Sprintf(
				"  • %s  ₹%.0f  %s", c.Name, c.Price, c.Category)))
		}
	}
	return lines
}

// View renders the assistant panel.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorClay).
		Render("VanMitra · Your Forest Friend & Guide")

	sep := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", min(m.width-6, 80)))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		sep,
		m.input.View(),
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 4)
	m.viewport.Width = width - 4
	m.viewport.Height = chatViewportHeight(height)
}
