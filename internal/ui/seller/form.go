package seller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// ProductSavedMsg is sent after an add or edit round-trips, carrying
// the refreshed catalog.
type ProductSavedMsg struct {
	Products []model.Product
}

// productBindings holds product form values on the heap so huh's
// Value() pointers remain valid across Bubble Tea model copies.
type productBindings struct {
	name        string
	description string
	category    string
	price       string
	stock       string
	imageURL    string
}

// startProductForm opens the add form, or the edit form when editing
// is non-nil.
func (m *Model) startProductForm(editing *model.Product) tea.Cmd {
	fb := &productBindings{}
	if editing != nil {
		fb.name = editing.Name
		fb.description = editing.Description
		fb.category = editing.Category
		fb.price = strconv.FormatFloat(editing.Price, 'f', 2, 64)
		fb.stock = strconv.Itoa(editing.Stock)
		fb.imageURL = editing.ImageURL
	}
	m.fb = fb
	m.editing = editing
	m.form = m.buildProductForm()
	return m.form.Init()
}

func (m *Model) buildProductForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&m.fb.name).
			Validate(validateProductRequired("Name")),
		huh.NewText().
			Title("Description").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Category").
			Placeholder("weaving, pottery, ...").
			Value(&m.fb.category).
			Validate(validateProductRequired("Category")),
		huh.NewInput().
			Title("Price (₹)").
			Value(&m.fb.price).
			Validate(validatePrice),
		huh.NewInput().
			Title("Stock").
			Value(&m.fb.stock).
			Validate(validateStock),
		huh.NewInput().
			Title("Image URL").
			Value(&m.fb.imageURL),
	)).WithWidth(formWidth(m.width))
}

// submitProduct sends the completed form to the server and reloads
// the catalog.
func (m Model) submitProduct() tea.Cmd {
	price, _ := strconv.ParseFloat(strings.TrimSpace(m.fb.price), 64)
	stock, _ := strconv.Atoi(strings.TrimSpace(m.fb.stock))

	product := model.Product{
		Name:        strings.TrimSpace(m.fb.name),
		Description: strings.TrimSpace(m.fb.description),
		Category:    strings.TrimSpace(m.fb.category),
		Price:       price,
		Stock:       stock,
		ImageURL:    strings.TrimSpace(m.fb.imageURL),
	}

	svc, notices, sellerID := m.svc, m.notices, m.sellerID
	editing := m.editing
	return func() tea.Msg {
		ctx := context.Background()
		if editing != nil {
			if _, err := svc.UpdateProduct(ctx, editing.ID, product); err != nil {
				notices.Error("Failed to update product")
				return ProductSavedMsg{}
			}
			notices.Success("Product updated")
		} else {
			if _, err := svc.AddProduct(ctx, sellerID, product); err != nil {
				notices.Error("Failed to add product")
				return ProductSavedMsg{}
			}
			notices.Success("Product added")
		}
		products, err := svc.Products(ctx, sellerID)
		if err != nil {
			return ProductSavedMsg{}
		}
		return ProductSavedMsg{Products: products}
	}
}

func validateProductRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validatePrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a price greater than zero")
	}
	return nil
}

func validateStock(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func formWidth(width int) int {
	w := width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
