package signup

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// BuyerSubmittedMsg carries a completed buyer registration.
type BuyerSubmittedMsg struct {
	Signup model.BuyerSignup
}

// SellerSubmittedMsg carries a completed seller registration.
type SellerSubmittedMsg struct {
	Signup model.SellerSignup
}

// CancelMsg is dispatched when the user backs out of registration.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	asSeller bool

	name            string
	email           string
	password        string
	confirmPassword string
	phone           string
	address         string
	pincode         string
	terms           bool

	tribeName       string
	artisanCategory string
	region          string
	bio             string
	bankAccount     string
	ifsc            string
	pan             string
	consent         bool
}

// Model is the Bubble Tea model for the registration form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new signup form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes a fresh registration form.
func (m *Model) Start() tea.Cmd {
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the signup form.
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
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the signup form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Create a VanVyapaar account") +
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
	account := huh.NewGroup(
		huh.NewConfirm().
			Title("Register as").
			Affirmative("Seller (artisan)").
			Negative("Buyer").
			Value(&m.fb.asSeller),
		huh.NewInput().
			Title("Name").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
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
		huh.NewInput().
			Title("Confirm Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.confirmPassword).
			Validate(m.validateConfirm),
		huh.NewInput().
			Title("Phone").
			Value(&m.fb.phone),
		huh.NewInput().
			Title("Address").
			Value(&m.fb.address),
		huh.NewInput().
			Title("Pincode").
			Value(&m.fb.pincode),
		huh.NewConfirm().
			Title("Accept terms and conditions?").
			Value(&m.fb.terms).
			Validate(validateAccepted("terms")),
	)

	artisan := huh.NewGroup(
		huh.NewInput().
			Title("Tribe / Community").
			Value(&m.fb.tribeName),
		huh.NewInput().
			Title("Artisan Category").
			Placeholder("weaving, pottery, ...").
			Value(&m.fb.artisanCategory),
		huh.NewInput().
			Title("Region").
			Value(&m.fb.region),
		huh.NewText().
			Title("Bio").
			Placeholder("Tell buyers about your craft...").
			Value(&m.fb.bio),
		huh.NewInput().
			Title("Bank Account Number").
			Value(&m.fb.bankAccount),
		huh.NewInput().
			Title("IFSC Code").
			Value(&m.fb.ifsc),
		huh.NewInput().
			Title("PAN Number").
			Value(&m.fb.pan),
		huh.NewConfirm().
			Title("Consent to seller verification?").
			Value(&m.fb.consent).
			Validate(validateAccepted("consent")),
	).WithHideFunc(func() bool { return !m.fb.asSeller })

	return huh.NewForm(account, artisan).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	buyer := model.BuyerSignup{
		Name:            m.fb.name,
		Email:           m.fb.email,
		Password:        m.fb.password,
		ConfirmPassword: m.fb.confirmPassword,
		Phone:           m.fb.phone,
		Address:         m.fb.address,
		Pincode:         m.fb.pincode,
		TermsAccepted:   m.fb.terms,
	}

	if !m.fb.asSeller {
		return func() tea.Msg { return BuyerSubmittedMsg{Signup: buyer} }
	}

	seller := model.SellerSignup{
		BuyerSignup:       buyer,
		TribeName:         m.fb.tribeName,
		ArtisanCategory:   m.fb.artisanCategory,
		Region:            m.fb.region,
		Bio:               m.fb.bio,
		BankAccountNumber: m.fb.bankAccount,
		IFSCCode:          m.fb.ifsc,
		PANNumber:         m.fb.pan,
		ConsentAccepted:   m.fb.consent,
	}
	return func() tea.Msg { return SellerSubmittedMsg{Signup: seller} }
}

func (m *Model) validateConfirm(s string) error {
	if s != m.fb.password {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
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

func validateAccepted(what string) func(bool) error {
	return func(v bool) error {
		if !v {
			return fmt.Errorf("you must accept the %s to continue", what)
		}
		return nil
	}
}
