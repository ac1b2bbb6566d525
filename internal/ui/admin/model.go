// Package admin renders the platform overview: metrics, seller
// approvals, and the delivery fleet.
package admin

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// Tabs within the admin view.
const (
	tabOverview = iota
	tabSellers
	tabFleet
	tabCount
)

var tabNames = []string{"Overview", "Sellers", "Fleet"}

// MetricsLoadedMsg carries the platform summary.
type MetricsLoadedMsg struct {
	Metrics *service.AdminMetrics
}

// SellersLoadedMsg carries seller accounts awaiting review.
type SellersLoadedMsg struct {
	Sellers []model.SellerProfile
}

// FleetLoadedMsg carries the delivery fleet analytics and the shipment
// board. Degraded is set when the payload is placeholder data.
type FleetLoadedMsg struct {
	Analytics  *model.DeliveryAnalytics
	Deliveries []model.Delivery
	Degraded   bool
}

// SellerReviewedMsg is sent after an approve or suspend round-trips.
type SellerReviewedMsg struct{}

// DeliveryReassignedMsg is sent after a reassignment round-trips.
type DeliveryReassignedMsg struct{}

// Model is the admin view.
type Model struct {
	admin    *service.Admin
	delivery *service.Delivery
	notices  *notice.Bus
	keys     *keys.KeyMap

	tab       int
	cursor    int
	metrics   *service.AdminMetrics
	sellers   []model.SellerProfile
	fleet     *model.DeliveryAnalytics
	shipments []model.Delivery
	showAll   bool
	degraded  bool

	width  int
	height int
}

// New creates the admin view.
func New(admin *service.Admin, delivery *service.Delivery, notices *notice.Bus, k *keys.KeyMap, width, height int) Model {
	return Model{
		admin:    admin,
		delivery: delivery,
		notices:  notices,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init loads all admin tabs.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadMetrics(), m.loadSellers(), m.loadFleet())
}

// Update handles messages for the admin view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MetricsLoadedMsg:
		m.metrics = msg.Metrics
		return m, nil

	case SellersLoadedMsg:
		m.sellers = msg.Sellers
		if m.cursor >= len(m.sellers) {
			m.cursor = 0
		}
		return m, nil

	case FleetLoadedMsg:
		m.fleet = msg.Analytics
		m.shipments = msg.Deliveries
		m.degraded = msg.Degraded
		if m.tab == tabFleet && m.cursor >= len(m.shipments) {
			m.cursor = 0
		}
		return m, nil

	case SellerReviewedMsg:
		return m, tea.Batch(m.loadSellers(), m.loadMetrics())

	case DeliveryReassignedMsg:
		return m, m.loadFleet()

	case tea.KeyMsg:
		switch {
		case msg.String() == "tab":
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.Init()

		case msg.String() == "a":
			switch m.tab {
			case tabSellers:
				return m, m.reviewSelected(true)
			case tabFleet:
				m.showAll = !m.showAll
				return m, m.loadFleet()
			}
			return m, nil

		case msg.String() == "s":
			if m.tab == tabSellers {
				return m, m.reviewSelected(false)
			}
			return m, nil

		case msg.String() == "x":
			if m.tab == tabFleet {
				return m, m.reassignSelected()
			}
			return m, nil
		}
	}
	return m, nil
}

// View renders the active admin tab.
func (m Model) View() string {
	var body string
	switch m.tab {
	case tabOverview:
		body = m.renderOverview()
	case tabSellers:
		body = m.renderSellers()
	case tabFleet:
		body = m.renderFleet()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// listLen returns the length of the list the cursor moves over in the
// active tab.
func (m Model) listLen() int {
	switch m.tab {
	case tabSellers:
		return len(m.sellers)
	case tabFleet:
		return len(m.shipments)
	default:
		return 0
	}
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, name := range tabNames {
		style := theme.ListItemStyle
		if i == m.tab {
			style = theme.SelectedItemStyle
		}
		rendered = append(rendered, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderOverview() string {
	if m.metrics == nil {
		return theme.HelpStyle.Render("Loading metrics...")
	}
	rows := []string{
		fmt.Sprintf("Buyers            %d", m.metrics.TotalBuyers),
		fmt.Sprintf("Sellers           %d", m.metrics.TotalSellers),
		fmt.Sprintf("Pending sellers   %d", m.metrics.PendingSellers),
		fmt.Sprintf("Products          %d", m.metrics.TotalProducts),
		fmt.Sprintf("Orders            %d", m.metrics.TotalOrders),
		fmt.Sprintf("Revenue           ₹%.2f", m.metrics.TotalRevenue),
	}
	return theme.DetailPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m Model) renderSellers() string {
	if len(m.sellers) == 0 {
		return theme.HelpStyle.Render("No sellers to review.")
	}
	var lines []string
	for i, s := range m.sellers {
		status := theme.ApprovalStyle(s.AdminApprovalStatus).Render(s.AdminApprovalStatus)
		line := fmt.Sprintf("%-24s %s %s · %s", s.Name, status, s.ArtisanCategory, s.Region)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, theme.HelpStyle.Render("a approve · s suspend"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFleet() string {
	if m.fleet == nil {
		return theme.HelpStyle.Render("Loading fleet analytics...")
	}
	rows := []string{
		fmt.Sprintf("Total deliveries      %d", m.fleet.TotalDeliveries),
		fmt.Sprintf("Active                %d", m.fleet.ActiveDeliveries),
		fmt.Sprintf("Completed             %d", m.fleet.CompletedDeliveries),
		fmt.Sprintf("Failed                %d", m.fleet.FailedDeliveries),
		fmt.Sprintf("Agents online         %d / %d", m.fleet.OnlineAgents, m.fleet.TotalAgents),
		fmt.Sprintf("Avg delivery time     %.1fh", m.fleet.AverageDeliveryTimeHours),
		fmt.Sprintf("Weekly success rate   %.1f%%", m.fleet.WeeklySuccessRate),
	}
	summary := theme.DetailPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, summary, m.renderShipments())
	if m.degraded {
		banner := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorYellow).
			Render("Delivery service unreachable; showing placeholder data")
		return lipgloss.JoinVertical(lipgloss.Left, banner, body)
	}
	return body
}

func (m Model) loadMetrics() tea.Cmd {
	svc := m.admin
	return func() tea.Msg {
		metrics, err := svc.Metrics(context.Background())
		if err != nil {
			return MetricsLoadedMsg{}
		}
		return MetricsLoadedMsg{Metrics: metrics}
	}
}

func (m Model) loadSellers() tea.Cmd {
	svc := m.admin
	return func() tea.Msg {
		sellers, err := svc.Sellers(context.Background())
		if err != nil {
			return SellersLoadedMsg{}
		}
		return SellersLoadedMsg{Sellers: sellers}
	}
}

func (m Model) renderShipments() string {
	label := "Active shipments"
	if m.showAll {
		label = "All shipments"
	}
	lines := []string{theme.HelpStyle.Render(label)}

	if len(m.shipments) == 0 {
		lines = append(lines, theme.HelpStyle.Render("Nothing on the board."))
	}
	for i, d := range m.shipments {
		status := theme.OrderStatusStyle(d.Status).Render(d.Status)
		agent := "unassigned"
		if d.Agent != nil {
			agent = d.Agent.Name
		}
		line := fmt.Sprintf("%-14s %s %s → %s · %s",
			d.TrackingID, status, d.PickupPincode, d.DeliveryPincode, agent)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, theme.HelpStyle.Render("a toggle active/all · x reassign"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) loadFleet() tea.Cmd {
	svc, showAll := m.delivery, m.showAll
	return func() tea.Msg {
		ctx := context.Background()
		analytics, degraded, err := svc.Analytics(ctx)
		if err != nil {
			return FleetLoadedMsg{}
		}

		var deliveries []model.Delivery
		if showAll {
			all, allDegraded, err := svc.AllDeliveries(ctx)
			if err == nil {
				deliveries = all
				degraded = degraded || allDegraded
			}
		} else {
			active, err := svc.ActiveDeliveries(ctx)
			if err == nil {
				deliveries = active
			}
		}
		return FleetLoadedMsg{Analytics: analytics, Deliveries: deliveries, Degraded: degraded}
	}
}

// reassignSelected moves the highlighted shipment to the first agent
// able to serve its destination pincode.
func (m Model) reassignSelected() tea.Cmd {
	if m.cursor >= len(m.shipments) {
		return nil
	}
	d := m.shipments[m.cursor]
	svc, notices := m.delivery, m.notices
	return func() tea.Msg {
		ctx := context.Background()
		agents, _, err := svc.AvailableAgents(ctx, d.DeliveryPincode)
		if err != nil || len(agents) == 0 {
			notices.Error("No agents available for " + d.DeliveryPincode)
			return DeliveryReassignedMsg{}
		}
		if err := svc.Reassign(ctx, d.ID, agents[0].ID); err != nil {
			notices.Error("Failed to reassign delivery")
			return DeliveryReassignedMsg{}
		}
		notices.Success(fmt.Sprintf("Delivery %s reassigned to %s", d.TrackingID, agents[0].Name))
		return DeliveryReassignedMsg{}
	}
}

// reviewSelected approves or suspends the highlighted seller.
func (m Model) reviewSelected(approve bool) tea.Cmd {
	if m.cursor >= len(m.sellers) {
		return nil
	}
	seller := m.sellers[m.cursor]
	svc, notices := m.admin, m.notices
	return func() tea.Msg {
		var err error
		if approve {
			err = svc.ApproveSeller(context.Background(), seller.ID)
		} else {
			err = svc.SuspendSeller(context.Background(), seller.ID)
		}
		if err != nil {
			notices.Error("Failed to update seller status")
			return SellerReviewedMsg{}
		}
		if approve {
			notices.Success(fmt.Sprintf("Seller %s approved", seller.Name))
		} else {
			notices.Success(fmt.Sprintf("Seller %s suspended", seller.Name))
		}
		return SellerReviewedMsg{}
	}
}
