// Package seller renders the seller dashboard, catalog, and order
// management views.
package seller

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/theme"
)

// Tabs within the seller view.
const (
	tabDashboard = iota
	tabProducts
	tabOrders
	tabCount
)

var tabNames = []string{"Dashboard", "Products", "Orders"}

// StatsLoadedMsg carries the dashboard summary.
type StatsLoadedMsg struct {
	Stats *model.SellerStats
}

// ProductsLoadedMsg carries the seller's catalog.
type ProductsLoadedMsg struct {
	Products []model.Product
}

// OrdersLoadedMsg carries the seller's orders.
type OrdersLoadedMsg struct {
	Orders []model.Order
}

// OrderUpdatedMsg is sent after an order status change round-trips.
type OrderUpdatedMsg struct {
	Order *model.Order
}

// nextStatus maps each order status to its successor in the
// fulfilment flow.
var nextStatus = map[string]string{
	model.OrderPlaced:    model.OrderConfirmed,
	model.OrderConfirmed: model.OrderShipped,
	model.OrderShipped:   model.OrderDelivered,
}

// Model is the seller view.
type Model struct {
	svc      *service.Seller
	notices  *notice.Bus
	keys     *keys.KeyMap
	sellerID int64

	tab      int
	cursor   int
	stats    *model.SellerStats
	products []model.Product
	orders   []model.Order

	form    *huh.Form
	fb      *productBindings
	editing *model.Product

	width  int
	height int
}

// New creates the seller view.
func New(svc *service.Seller, notices *notice.Bus, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:     svc,
		notices: notices,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// SetIdentity tells the view which seller account it is rendering.
func (m *Model) SetIdentity(sellerID int64) {
	m.sellerID = sellerID
}

// Init loads all three tabs up front.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStats(), m.loadProducts(), m.loadOrders())
}

// Update handles messages for the seller view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case StatsLoadedMsg:
		m.stats = msg.Stats
		return m, nil

	case ProductsLoadedMsg:
		m.products = msg.Products
		m.clampCursor()
		return m, nil

	case OrdersLoadedMsg:
		m.orders = msg.Orders
		m.clampCursor()
		return m, nil

	case ProductSavedMsg:
		if msg.Products != nil {
			m.products = msg.Products
			m.clampCursor()
		}
		return m, m.loadStats()

	case OrderUpdatedMsg:
		if msg.Order != nil {
			for i := range m.orders {
				if m.orders[i].ID == msg.Order.ID {
					m.orders[i] = *msg.Order
				}
			}
		}
		return m, m.loadStats()

	case tea.KeyMsg:
		switch {
		case msg.String() == "tab":
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.cursor++
			m.clampCursor()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.Init()

		case key.Matches(msg, m.keys.Select):
			if m.tab == tabOrders {
				return m, m.advanceSelectedOrder()
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.tab == tabProducts {
				return m, m.deleteSelectedProduct()
			}
			return m, nil

		case msg.String() == "a":
			if m.tab == tabProducts {
				return m, m.startProductForm(nil)
			}
			return m, nil

		case msg.String() == "e":
			if m.tab == tabProducts && m.cursor < len(m.products) {
				product := m.products[m.cursor]
				return m, m.startProductForm(&product)
			}
			return m, nil
		}
	}
	return m, nil
}

// updateForm routes messages to the open product form.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		saveCmd := m.submitProduct()
		m.form = nil
		m.editing = nil
		return m, saveCmd
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.editing = nil
		return m, nil
	}
	return m, cmd
}

// View renders the active seller tab.
func (m Model) View() string {
	if m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	var body string
	switch m.tab {
	case tabDashboard:
		body = m.renderDashboard()
	case tabProducts:
		body = m.renderProducts()
	case tabOrders:
		body = m.renderOrders()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
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

func (m Model) renderDashboard() string {
	if m.stats == nil {
		return theme.HelpStyle.Render("Loading dashboard...")
	}
	rows := []string{
		fmt.Sprintf("Products listed   %d", m.stats.TotalProducts),
		fmt.Sprintf("Pending orders    %d", m.stats.PendingOrders),
		fmt.Sprintf("Total orders      %d", m.stats.TotalOrders),
		fmt.Sprintf("Total sales       ₹%.2f", m.stats.TotalSales),
	}
	return theme.DetailPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m Model) renderProducts() string {
	if len(m.products) == 0 {
		return theme.HelpStyle.Render("No products listed yet.")
	}
	var lines []string
	for i, p := range m.products {
		line := fmt.Sprintf("%-30s ₹%8.2f  stock %d", p.Name, p.Price, p.Stock)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderOrders() string {
	if len(m.orders) == 0 {
		return theme.HelpStyle.Render("No orders yet.")
	}
	var lines []string
	for i, o := range m.orders {
		status := theme.OrderStatusStyle(o.Status).Render(o.Status)
		line := fmt.Sprintf("#%-6d %s %-20s ₹%8.2f", o.ID, status, o.BuyerName, o.TotalAmount)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) clampCursor() {
	max := 0
	switch m.tab {
	case tabProducts:
		max = len(m.products) - 1
	case tabOrders:
		max = len(m.orders) - 1
	}
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}

func (m Model) loadStats() tea.Cmd {
	svc, id := m.svc, m.sellerID
	return func() tea.Msg {
		stats, err := svc.Stats(context.Background(), id)
		if err != nil {
			return StatsLoadedMsg{Stats: nil}
		}
		return StatsLoadedMsg{Stats: stats}
	}
}

func (m Model) loadProducts() tea.Cmd {
	svc, id := m.svc, m.sellerID
	return func() tea.Msg {
		products, err := svc.Products(context.Background(), id)
		if err != nil {
			return ProductsLoadedMsg{}
		}
		return ProductsLoadedMsg{Products: products}
	}
}

func (m Model) loadOrders() tea.Cmd {
	svc, id := m.svc, m.sellerID
	return func() tea.Msg {
		orders, err := svc.Orders(context.Background(), id)
		if err != nil {
			return OrdersLoadedMsg{}
		}
		return OrdersLoadedMsg{Orders: orders}
	}
}

// advanceSelectedOrder moves the highlighted order to the next status
// in the fulfilment flow.
func (m Model) advanceSelectedOrder() tea.Cmd {
	if m.cursor >= len(m.orders) {
		return nil
	}
	order := m.orders[m.cursor]
	next, ok := nextStatus[order.Status]
	if !ok {
		return nil
	}
	svc, notices := m.svc, m.notices
	return func() tea.Msg {
		updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, next)
		if err != nil {
			notices.Error("Failed to update order status")
			return OrderUpdatedMsg{}
		}
		notices.Success(fmt.Sprintf("Order #%d marked %s", order.ID, next))
		return OrderUpdatedMsg{Order: updated}
	}
}

// deleteSelectedProduct removes the highlighted product from the
// catalog.
func (m Model) deleteSelectedProduct() tea.Cmd {
	if m.cursor >= len(m.products) {
		return nil
	}
	product := m.products[m.cursor]
	svc, notices, id := m.svc, m.notices, m.sellerID
	return func() tea.Msg {
		if err := svc.DeleteProduct(context.Background(), product.ID); err != nil {
			notices.Error("Failed to delete product")
			return ProductsLoadedMsg{}
		}
		notices.Success("Product deleted")
		products, err := svc.Products(context.Background(), id)
		if err != nil {
			return ProductsLoadedMsg{}
		}
		return ProductsLoadedMsg{Products: products}
	}
}
