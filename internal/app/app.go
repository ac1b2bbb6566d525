// Package app is the root Bubble Tea model: it routes between the
// login, registration, role home, and notification views, gates entry
// by role, and surfaces transient notices in the status bar.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/gate"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notify"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/session"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/ui"
	adminview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/admin"
	buyerview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/buyer"
	chatview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/chat"
	deliveryview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/delivery"
	helpview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/help"
	loginview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/login"
	notifview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/notifications"
	sellerview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/seller"
	signupview "github.com/vanvyapaar/vanvyapaar-cli/internal/ui/signup"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewSignup
	ViewHome
	ViewNotifications
	ViewHelp
	ViewChat
)

// loginResultMsg reports whether a login attempt established a session.
type loginResultMsg struct {
	ok bool
}

// signupResultMsg reports whether a registration was accepted.
type signupResultMsg struct {
	ok bool
}

// enterHomeMsg defers home setup to Update, where mutations to the
// model persist.
type enterHomeMsg struct{}

// Deps bundles the stores and services the root model routes between.
type Deps struct {
	Sessions      *session.Store
	Notifications *notify.Store
	Notices       *notice.Bus
	Seller        *service.Seller
	Buyer         *service.Buyer
	Delivery      *service.Delivery
	Admin         *service.Admin
	Chat          *service.Chatbot
}

// Model is the root Bubble Tea model.
type Model struct {
	deps Deps

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	ready        bool

	loginView  loginview.Model
	signupView signupview.Model
	helpView   helpview.Model
	notifView  notifview.Model
	sellerView sellerview.Model
	buyerView  buyerview.Model
	agentView  deliveryview.Model
	adminView  adminview.Model
	chatView   chatview.Model

	unreadCount int
	noticeText  string
	noticeLevel notice.Level
}

// New creates the root application model. The session store must have
// been rehydrated before the program starts.
func New(deps Deps) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		deps:       deps,
		keys:       k,
		loginView:  loginview.New(80, 24),
		signupView: signupview.New(80, 24),
		helpView:   helpview.New(k, 80, 24),
		notifView:  notifview.New(deps.Notifications, k, 80, 24),
		sellerView: sellerview.New(deps.Seller, deps.Notices, k, 80, 24),
		buyerView:  buyerview.New(deps.Buyer, deps.Notices, k, 80, 24),
		agentView:  deliveryview.New(deps.Delivery, deps.Notices, k, 80, 24),
		adminView:  adminview.New(deps.Admin, deps.Delivery, deps.Notices, k, 80, 24),
		chatView:   chatview.New(deps.Chat, 80, 24),
	}

	m.unreadCount = deps.Notifications.UnreadCount()

	if deps.Sessions.IsAuthenticated() {
		m.currentView = ViewHome
	} else {
		m.currentView = ViewLogin
	}
	return m
}

// Init starts the notice and notification subscriptions and enters
// the initial view.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.deps.Notices.Wait(),
		m.deps.Notifications.Wait(),
	}
	if m.currentView == ViewHome {
		cmds = append(cmds, func() tea.Msg { return enterHomeMsg{} })
	} else {
		cmds = append(cmds, m.loginView.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.signupView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.notifView.SetSize(w, h)
		m.sellerView.SetSize(w, h)
		m.buyerView.SetSize(w, h)
		m.agentView.SetSize(w, h)
		m.adminView.SetSize(w, h)
		m.chatView.SetSize(w, h)
		return m.updateActiveView(msg)

	case notice.Msg:
		m.noticeText = msg.Notice.Message
		m.noticeLevel = msg.Notice.Level
		return m.routeExpiry(m.deps.Notices.Wait())

	case notify.UpdateMsg:
		m.unreadCount = msg.UnreadCount
		var cmd tea.Cmd
		m.notifView, cmd = m.notifView.Update(msg)
		return m, tea.Batch(cmd, m.deps.Notifications.Wait())

	case loginview.SubmittedMsg:
		sessions := m.deps.Sessions
		creds := msg.Credentials
		return m, func() tea.Msg {
			return loginResultMsg{ok: sessions.Login(context.Background(), creds)}
		}

	case enterHomeMsg:
		return m, tea.Batch(m.enterHome()...)

	case loginResultMsg:
		if !msg.ok {
			return m, m.loginView.Start()
		}
		m.currentView = ViewHome
		return m, tea.Batch(m.enterHome()...)

	case loginview.SwitchToSignupMsg:
		m.previousView = m.currentView
		m.currentView = ViewSignup
		return m, m.signupView.Start()

	case signupview.BuyerSubmittedMsg:
		sessions := m.deps.Sessions
		req := msg.Signup
		return m, func() tea.Msg {
			return signupResultMsg{ok: sessions.SignupBuyer(context.Background(), req)}
		}

	case signupview.SellerSubmittedMsg:
		sessions := m.deps.Sessions
		req := msg.Signup
		return m, func() tea.Msg {
			return signupResultMsg{ok: sessions.SignupSeller(context.Background(), req)}
		}

	case signupResultMsg:
		if !msg.ok {
			return m, m.signupView.Start()
		}
		m.currentView = ViewLogin
		return m, m.loginView.Start()

	case signupview.CancelMsg:
		m.currentView = ViewLogin
		return m, m.loginView.Start()

	case chatview.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		// A key press dismisses the current notice.
		m.noticeText = ""

		// Text-entry views get every key except the quit chord; the
		// chat panel closes itself via CloseMsg on esc.
		if m.currentView == ViewLogin || m.currentView == ViewSignup || m.currentView == ViewChat {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m.updateActiveView(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.deps.Notifications.StopPolling()
			return m, tea.Quit

		case "?":
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "n":
			return m.openNotifications()

		case "c":
			return m.openChat()

		case "h":
			if m.currentView != ViewHome {
				m.currentView = ViewHome
				return m, nil
			}

		case "L":
			return m.logout()

		case "esc":
			if m.currentView == ViewNotifications || m.currentView == ViewHelp {
				m.currentView = ViewHome
				return m, nil
			}
		}
	}

	return m.routeExpiryMsg(msg)
}

// routeExpiryMsg checks for a torn-down session before delegating to
// the active view.
func (m Model) routeExpiryMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if mdl, cmd := m.checkExpiry(); mdl != nil {
		return mdl, cmd
	}
	return m.updateActiveView(msg)
}

// routeExpiry is routeExpiryMsg for cases that already have a
// follow-up command.
func (m Model) routeExpiry(next tea.Cmd) (tea.Model, tea.Cmd) {
	if mdl, cmd := m.checkExpiry(); mdl != nil {
		return mdl, tea.Batch(cmd, next)
	}
	return m, next
}

// checkExpiry routes to the login view when the session was expired
// out from under the UI, e.g. by a 401 teardown. Returns nil when the
// session is still valid.
func (m Model) checkExpiry() (tea.Model, tea.Cmd) {
	if m.currentView == ViewLogin || m.currentView == ViewSignup {
		return nil, nil
	}
	if m.deps.Sessions.IsAuthenticated() {
		return nil, nil
	}
	m.deps.Notifications.StopPolling()
	m.deps.Notifications.Clear()
	m.currentView = ViewLogin
	return m, m.loginView.Start()
}

// enterHome wires the role views for the just-established session and
// starts notification polling.
func (m *Model) enterHome() []tea.Cmd {
	user := m.deps.Sessions.User()
	if user == nil {
		return nil
	}

	m.deps.Notifications.StartPolling(user.ID, user.Role)
	m.notifView.SetIdentity(user.ID, user.Role)
	m.helpView.SetRole(user.Role)

	cmds := []tea.Cmd{m.notifView.Refresh()}
	switch user.Role {
	case model.RoleSeller:
		m.sellerView.SetIdentity(user.ID)
		cmds = append(cmds, m.sellerView.Init())
	case model.RoleBuyer:
		m.buyerView.SetIdentity(user.ID)
		cmds = append(cmds, m.buyerView.Init())
	case model.RoleAgent:
		m.agentView.SetIdentity(user.ID)
		cmds = append(cmds, m.agentView.Init())
	case model.RoleAdmin:
		cmds = append(cmds, m.adminView.Init())
	}
	return cmds
}

// openChat raises the VanMitra assistant panel. The assistant also
// answers guests, so no gate applies.
func (m Model) openChat() (tea.Model, tea.Cmd) {
	if user := m.deps.Sessions.User(); user != nil {
		m.chatView.SetIdentity(user.ID, user.Role)
	} else {
		m.chatView.SetIdentity(0, "")
	}
	m.previousView = m.currentView
	m.currentView = ViewChat
	return m, m.chatView.Start()
}

// openNotifications gates entry to the notification center.
func (m Model) openNotifications() (tea.Model, tea.Cmd) {
	switch gate.Authenticated().Evaluate(m.deps.Sessions.Snapshot()) {
	case gate.Allow:
		m.previousView = m.currentView
		m.currentView = ViewNotifications
		return m, m.notifView.Refresh()
	case gate.RedirectLogin:
		m.currentView = ViewLogin
		return m, m.loginView.Start()
	default:
		return m, nil
	}
}

// logout tears down the session and returns to the login view.
func (m Model) logout() (tea.Model, tea.Cmd) {
	m.deps.Notifications.StopPolling()
	m.deps.Notifications.Clear()
	m.deps.Sessions.Logout()
	m.currentView = ViewLogin
	return m, m.loginView.Start()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewSignup:
		m.signupView, cmd = m.signupView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewNotifications:
		m.notifView, cmd = m.notifView.Update(msg)
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewHome:
		cmd = m.updateHomeView(msg)
	}

	return m, cmd
}

// updateHomeView dispatches to the role view for the signed-in user.
func (m *Model) updateHomeView(msg tea.Msg) tea.Cmd {
	user := m.deps.Sessions.User()
	if user == nil {
		return nil
	}

	var cmd tea.Cmd
	switch user.Role {
	case model.RoleSeller:
		m.sellerView, cmd = m.sellerView.Update(msg)
	case model.RoleBuyer:
		m.buyerView, cmd = m.buyerView.Update(msg)
	case model.RoleAgent:
		m.agentView, cmd = m.agentView.Update(msg)
	case model.RoleAdmin:
		m.adminView, cmd = m.adminView.Update(msg)
	}
	return cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	name := ""
	var role model.Role
	if user := m.deps.Sessions.User(); user != nil {
		name, role = user.Name, user.Role
	}

	header := m.layout.RenderHeader("VanVyapaar", m.unreadCount, name, role)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewSignup:
		return m.signupView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewNotifications:
		return m.notifView.View()
	case ViewChat:
		return m.chatView.View()
	case ViewHome:
		return m.renderHomeView()
	default:
		return ""
	}
}

// renderHomeView renders the role view for the signed-in user.
func (m Model) renderHomeView() string {
	user := m.deps.Sessions.User()
	if user == nil {
		return ""
	}
	switch user.Role {
	case model.RoleSeller:
		return m.sellerView.View()
	case model.RoleBuyer:
		return m.buyerView.View()
	case model.RoleAgent:
		return m.agentView.View()
	case model.RoleAdmin:
		return m.adminView.View()
	default:
		return ""
	}
}

// statusLine returns the notice, if one is showing, or key hints.
func (m Model) statusLine() string {
	if m.noticeText != "" {
		switch m.noticeLevel {
		case notice.LevelSuccess:
			return theme.NoticeSuccessStyle.Render(m.noticeText)
		case notice.LevelError:
			return theme.NoticeErrorStyle.Render(m.noticeText)
		default:
			return theme.NoticeInfoStyle.Render(m.noticeText)
		}
	}

	switch m.currentView {
	case ViewLogin, ViewSignup:
		return "enter submit | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewNotifications:
		return "m mark read | M mark all | x delete | r refresh | esc back"
	case ViewChat:
		return "enter send | 1-9 quick reply | esc close"
	default:
		return "q quit | ? help | n notifications | c assistant | tab switch | L logout"
	}
}
