// Package buyer renders the shop, cart, order history, and wishlist
// views.
package buyer

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

// Tabs within the buyer view.
const (
	tabBrowse = iota
	tabCart
	tabOrders
	tabWishlist
	tabCount
)

var tabNames = []string{"Browse", "Cart", "Orders", "Wishlist"}

// ProductsLoadedMsg carries the catalog for browsing.
type ProductsLoadedMsg struct {
	Products []model.Product
}

// CartLoadedMsg carries the buyer's cart.
type CartLoadedMsg struct {
	Items []model.CartItem
}

// OrdersLoadedMsg carries the buyer's order history.
type OrdersLoadedMsg struct {
	Orders []model.Order
}

// WishlistLoadedMsg carries the buyer's wishlist.
type WishlistLoadedMsg struct {
	Items []model.WishlistItem
}

// OrderPlacedMsg is sent after checkout; the cart must be reloaded
// since the server empties it.
type OrderPlacedMsg struct {
	Orders []model.Order
}

// Model is the buyer view.
type Model struct {
	svc     *service.Buyer
	notices *notice.Bus
	keys    *keys.KeyMap
	buyerID int64

	tab      int
	cursor   int
	products []model.Product
	cart     []model.CartItem
	orders   []model.Order
	wishlist []model.WishlistItem

	width  int
	height int
}

// New creates the buyer view.
func New(svc *service.Buyer, notices *notice.Bus, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:     svc,
		notices: notices,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// SetIdentity tells the view which buyer account it is rendering.
func (m *Model) SetIdentity(buyerID int64) {
	m.buyerID = buyerID
}

// Init loads the catalog and the buyer's own data.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadProducts(),
		m.loadCart(),
		m.loadOrders(),
		m.loadWishlist(),
	)
}

// Update handles messages for the buyer view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProductsLoadedMsg:
		m.products = msg.Products
		m.clampCursor()
		return m, nil

	case CartLoadedMsg:
		m.cart = msg.Items
		m.clampCursor()
		return m, nil

	case OrdersLoadedMsg:
		m.orders = msg.Orders
		m.clampCursor()
		return m, nil

	case WishlistLoadedMsg:
		m.wishlist = msg.Items
		m.clampCursor()
		return m, nil

	case OrderPlacedMsg:
		if msg.Orders != nil {
			m.orders = msg.Orders
		}
		m.clampCursor()
		return m, m.loadCart()

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
			switch m.tab {
			case tabBrowse:
				return m, m.addSelectedToCart()
			case tabCart:
				return m, m.placeOrder()
			}
			return m, nil

		case msg.String() == "w":
			if m.tab == tabBrowse {
				return m, m.addSelectedToWishlist()
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			switch m.tab {
			case tabCart:
				return m, m.removeSelectedCartItem()
			case tabWishlist:
				return m, m.removeSelectedWishlistItem()
			}
			return m, nil
		}
	}
	return m, nil
}

// View renders the active buyer tab.
func (m Model) View() string {
	var body string
	switch m.tab {
	case tabBrowse:
		body = m.renderProducts()
	case tabCart:
		body = m.renderCart()
	case tabOrders:
		body = m.renderOrders()
	case tabWishlist:
		body = m.renderWishlist()
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

func (m Model) renderProducts() string {
	if len(m.products) == 0 {
		return theme.HelpStyle.Render("No products available.")
	}
	var lines []string
	for i, p := range m.products {
		line := fmt.Sprintf("%-30s ₹%8.2f  by %s", p.Name, p.Price, p.SellerName)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderCart() string {
	if len(m.cart) == 0 {
		return theme.HelpStyle.Render("Your cart is empty.")
	}
	var lines []string
	total := 0.0
	for i, item := range m.cart {
		subtotal := item.Product.Price * float64(item.Quantity)
		total += subtotal
		line := fmt.Sprintf("%-30s x%-3d ₹%8.2f", item.Product.Name, item.Quantity, subtotal)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, theme.HelpStyle.Render(
		fmt.Sprintf("Total ₹%.2f · enter to place order", total)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderOrders() string {
	if len(m.orders) == 0 {
		return theme.HelpStyle.Render("No orders yet.")
	}
	var lines []string
	for i, o := range m.orders {
		status := theme.OrderStatusStyle(o.Status).Render(o.Status)
		line := fmt.Sprintf("#%-6d %s ₹%8.2f  from %s", o.ID, status, o.TotalAmount, o.SellerName)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderWishlist() string {
	if len(m.wishlist) == 0 {
		return theme.HelpStyle.Render("Your wishlist is empty.")
	}
	var lines []string
	for i, item := range m.wishlist {
		line := fmt.Sprintf("%-30s ₹%8.2f", item.Product.Name, item.Product.Price)
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
	case tabBrowse:
		max = len(m.products) - 1
	case tabCart:
		max = len(m.cart) - 1
	case tabOrders:
		max = len(m.orders) - 1
	case tabWishlist:
		max = len(m.wishlist) - 1
	}
	if max < 0 {
		max = 0
	}
	if m.cursor > max {
		m.cursor = max
	}
}

func (m Model) loadProducts() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		products, err := svc.Products(context.Background())
		if err != nil {
			return ProductsLoadedMsg{}
		}
		return ProductsLoadedMsg{Products: products}
	}
}

func (m Model) loadCart() tea.Cmd {
	svc, id := m.svc, m.buyerID
	return func() tea.Msg {
		items, err := svc.Cart(context.Background(), id)
		if err != nil {
			return CartLoadedMsg{}
		}
		return CartLoadedMsg{Items: items}
	}
}

func (m Model) loadOrders() tea.Cmd {
	svc, id := m.svc, m.buyerID
	return func() tea.Msg {
		orders, err := svc.Orders(context.Background(), id)
		if err != nil {
			return OrdersLoadedMsg{}
		}
		return OrdersLoadedMsg{Orders: orders}
	}
}

func (m Model) loadWishlist() tea.Cmd {
	svc, id := m.svc, m.buyerID
	return func() tea.Msg {
		items, err := svc.Wishlist(context.Background(), id)
		if err != nil {
			return WishlistLoadedMsg{}
		}
		return WishlistLoadedMsg{Items: items}
	}
}

func (m Model) addSelectedToCart() tea.Cmd {
	if m.cursor >= len(m.products) {
		return nil
	}
	product := m.products[m.cursor]
	svc, notices, id := m.svc, m.notices, m.buyerID
	return func() tea.Msg {
		if _, err := svc.AddToCart(context.Background(), id, product.ID, 1); err != nil {
			notices.Error("Failed to add to cart")
			return CartLoadedMsg{}
		}
		notices.Success("Added to cart")
		items, err := svc.Cart(context.Background(), id)
		if err != nil {
			return CartLoadedMsg{}
		}
		return CartLoadedMsg{Items: items}
	}
}

func (m Model) addSelectedToWishlist() tea.Cmd {
	if m.cursor >= len(m.products) {
		return nil
	}
	product := m.products[m.cursor]
	svc, notices, id := m.svc, m.notices, m.buyerID
	return func() tea.Msg {
		if _, err := svc.AddToWishlist(context.Background(), id, product.ID); err != nil {
			notices.Error("Failed to add to wishlist")
			return WishlistLoadedMsg{}
		}
		notices.Success("Added to wishlist")
		items, err := svc.Wishlist(context.Background(), id)
		if err != nil {
			return WishlistLoadedMsg{}
		}
		return WishlistLoadedMsg{Items: items}
	}
}

func (m Model) removeSelectedCartItem() tea.Cmd {
	if m.cursor >= len(m.cart) {
		return nil
	}
	item := m.cart[m.cursor]
	svc, notices, id := m.svc, m.notices, m.buyerID
	return func() tea.Msg {
		if err := svc.RemoveCartItem(context.Background(), item.ID); err != nil {
			notices.Error("Failed to remove from cart")
			return CartLoadedMsg{}
		}
		items, err := svc.Cart(context.Background(), id)
		if err != nil {
			return CartLoadedMsg{}
		}
		return CartLoadedMsg{Items: items}
	}
}

func (m Model) removeSelectedWishlistItem() tea.Cmd {
	if m.cursor >= len(m.wishlist) {
		return nil
	}
	item := m.wishlist[m.cursor]
	svc, notices, id := m.svc, m.notices, m.buyerID
	return func() tea.Msg {
		if err := svc.RemoveFromWishlist(context.Background(), id, item.Product.ID); err != nil {
			notices.Error("Failed to remove from wishlist")
			return WishlistLoadedMsg{}
		}
		items, err := svc.Wishlist(context.Background(), id)
		if err != nil {
			return WishlistLoadedMsg{}
		}
		return WishlistLoadedMsg{Items: items}
	}
}

func (m Model) placeOrder() tea.Cmd {
	if len(m.cart) == 0 {
		return nil
	}
	svc, notices, id := m.svc, m.notices, m.buyerID
	return func() tea.Msg {
		if _, err := svc.PlaceOrder(context.Background(), id); err != nil {
			notices.Error("Failed to place order")
			return OrderPlacedMsg{}
		}
		notices.Success("Order placed successfully!")
		orders, err := svc.Orders(context.Background(), id)
		if err != nil {
			return OrderPlacedMsg{}
		}
		return OrderPlacedMsg{Orders: orders}
	}
}
