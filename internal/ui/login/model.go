package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// SubmittedMsg carries the credentials entered by the user.
type SubmittedMsg struct {
	Credentials model.Credentials
}

// SwitchToSignupMsg is dispatched when the user chooses to create an
// account instead.
type SwitchToSignupMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
	role     string
	signup   bool
}

// Model is the Bubble Tea model for the login form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new login form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{role: string(model.RoleBuyer)},
		width:  width,
		height: height,
	}
}

// Start initializes a fresh form.
func (m *Model) Start() tea.Cmd {
	m.fb.email = ""
	m.fb.password = ""
	m.fb.role = string(model.RoleBuyer)
	m.fb.signup = false
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Sign in to VanVyapaar") +
		"\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Buyer", string(model.RoleBuyer)),
					huh.NewOption("Seller", string(model.RoleSeller)),
					huh.NewOption("Delivery Agent", string(model.RoleAgent)),
					huh.NewOption("Admin", string(model.RoleAdmin)),
				).
				Value(&m.fb.role),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
			huh.NewConfirm().
				Title("New here?").
				Affirmative("Create account").
				Negative("Sign in").
				Value(&m.fb.signup),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.fb.signup {
		return func() tea.Msg { return SwitchToSignupMsg{} }
	}
	creds := model.Credentials{
		Email:    m.fb.email,
		Password: m.fb.password,
		Role:     model.Role(m.fb.role),
	}
	return func() tea.Msg { return SubmittedMsg{Credentials: creds} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
