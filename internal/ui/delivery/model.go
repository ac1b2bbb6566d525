// Package delivery renders the delivery agent's work queue and the
// shipment tracking panel.
package delivery

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

// DeliveriesLoadedMsg carries the active delivery queue. Degraded is
// set when the payload came from placeholder data because the
// delivery service was unreachable.
type DeliveriesLoadedMsg struct {
	Deliveries []model.Delivery
	Degraded   bool
}

// TrackedMsg carries a single shipment looked up by tracking id.
type TrackedMsg struct {
	Delivery *model.Delivery
	Degraded bool
}

// StatusUpdatedMsg is sent after a shipment status change round-trips.
type StatusUpdatedMsg struct{}

// DutyToggledMsg is sent after the agent's on-duty flag round-trips.
type DutyToggledMsg struct{}

// nextStatus maps each post-acceptance delivery status to its
// successor. An ASSIGNED shipment is not advanced here; it has to be
// accepted first.
var nextStatus = map[string]string{
	model.DeliveryAcceptedByAgent: model.DeliveryPickedUp,
	model.DeliveryPickedUp:        model.DeliveryInTransit,
	model.DeliveryInTransit:       model.DeliveryOutForDelivery,
	model.DeliveryOutForDelivery:  model.DeliveryDelivered,
}

// Model is the delivery agent view.
type Model struct {
	svc     *service.Delivery
	notices *notice.Bus
	keys    *keys.KeyMap

	agentID    int64
	cursor     int
	deliveries []model.Delivery
	tracked    *model.Delivery
	degraded   bool

	width  int
	height int
}

// New creates the delivery agent view.
func New(svc *service.Delivery, notices *notice.Bus, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:     svc,
		notices: notices,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// SetIdentity records which agent's queue this view operates on.
func (m *Model) SetIdentity(agentID int64) {
	m.agentID = agentID
}

// Init loads the agent's delivery queue.
func (m Model) Init() tea.Cmd {
	return m.loadDeliveries()
}

// Update handles messages for the delivery view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DeliveriesLoadedMsg:
		m.deliveries = msg.Deliveries
		m.degraded = msg.Degraded
		if m.cursor >= len(m.deliveries) {
			m.cursor = 0
		}
		return m, nil

	case TrackedMsg:
		m.tracked = msg.Delivery
		m.degraded = msg.Degraded
		return m, nil

	case StatusUpdatedMsg:
		return m, m.loadDeliveries()

	case DutyToggledMsg:
		return m, m.loadDeliveries()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.deliveries)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadDeliveries()

		case key.Matches(msg, m.keys.Select):
			return m, m.advanceSelected()

		case key.Matches(msg, m.keys.Back):
			m.tracked = nil
			return m, nil
		}

		if msg.String() == "t" {
			return m, m.toggleDuty()
		}
	}
	return m, nil
}

// View renders the delivery queue or the tracked shipment detail.
func (m Model) View() string {
	var body string
	if m.tracked != nil {
		body = m.renderTracked()
	} else {
		body = m.renderQueue()
	}

	if m.degraded {
		banner := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorYellow).
			Render("Delivery service unreachable; showing placeholder data")
		return lipgloss.JoinVertical(lipgloss.Left, banner, body)
	}
	return body
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Track looks up a shipment by its public tracking id.
func (m Model) Track(trackingID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		delivery, degraded, err := svc.Track(context.Background(), trackingID)
		if err != nil {
			return TrackedMsg{}
		}
		return TrackedMsg{Delivery: delivery, Degraded: degraded}
	}
}

func (m Model) renderQueue() string {
	if len(m.deliveries) == 0 {
		return theme.HelpStyle.Render("No active deliveries.")
	}
	var lines []string
	for i, d := range m.deliveries {
		status := theme.OrderStatusStyle(d.Status).Render(d.Status)
		line := fmt.Sprintf("%-14s %s %s → %s",
			d.TrackingID, status, d.PickupPincode, d.DeliveryPincode)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, theme.HelpStyle.Render("enter accept/advance · t toggle duty · r refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTracked() string {
	d := m.tracked
	rows := []string{
		fmt.Sprintf("Tracking ID   %s", d.TrackingID),
		fmt.Sprintf("Status        %s", d.Status),
		fmt.Sprintf("From          %s (%s)", d.PickupAddress, d.PickupPincode),
		fmt.Sprintf("To            %s (%s)", d.DeliveryAddress, d.DeliveryPincode),
		fmt.Sprintf("Buyer         %s %s", d.BuyerName, d.BuyerPhone),
		fmt.Sprintf("Seller        %s %s", d.SellerName, d.SellerPhone),
	}
	if d.Agent != nil {
		rows = append(rows, fmt.Sprintf("Agent         %s (%s)", d.Agent.Name, d.Agent.Phone))
	}
	if !d.EstimatedDeliveryTime.IsZero() {
		rows = append(rows, fmt.Sprintf("ETA           %s",
			d.EstimatedDeliveryTime.Format("Jan 02 15:04")))
	}
	return theme.DetailPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m Model) loadDeliveries() tea.Cmd {
	svc, agentID := m.svc, m.agentID
	return func() tea.Msg {
		deliveries, degraded, err := svc.AgentDeliveries(context.Background(), agentID)
		if err != nil {
			return DeliveriesLoadedMsg{}
		}
		return DeliveriesLoadedMsg{Deliveries: deliveries, Degraded: degraded}
	}
}

// advanceSelected accepts the highlighted shipment when it is still
// ASSIGNED, or moves it to the next status in its lifecycle once the
// agent owns it.
func (m Model) advanceSelected() tea.Cmd {
	if m.cursor >= len(m.deliveries) {
		return nil
	}
	d := m.deliveries[m.cursor]
	svc, notices, agentID := m.svc, m.notices, m.agentID

	if d.Status == model.DeliveryAssigned {
		return func() tea.Msg {
			if err := svc.AcceptDelivery(context.Background(), d.ID, agentID); err != nil {
				notices.Error("Failed to accept delivery")
				return StatusUpdatedMsg{}
			}
			notices.Success(fmt.Sprintf("Delivery %s accepted", d.TrackingID))
			return StatusUpdatedMsg{}
		}
	}

	next, ok := nextStatus[d.Status]
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := svc.UpdateStatus(context.Background(), d.ID, next, ""); err != nil {
			notices.Error("Failed to update delivery status")
			return StatusUpdatedMsg{}
		}
		notices.Success(fmt.Sprintf("Delivery %s marked %s", d.TrackingID, next))
		return StatusUpdatedMsg{}
	}
}

// toggleDuty flips the agent between on and off duty.
func (m Model) toggleDuty() tea.Cmd {
	svc, notices, agentID := m.svc, m.notices, m.agentID
	return func() tea.Msg {
		if err := svc.ToggleAgentStatus(context.Background(), agentID); err != nil {
			notices.Error("Failed to update duty status")
			return DutyToggledMsg{}
		}
		notices.Success("Duty status updated")
		return DutyToggledMsg{}
	}
}
