package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/keys"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

func TestRoleSectionsVary(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)

	m.SetRole(model.RoleAgent)
	out := m.View()
	assert.Contains(t, out, "Delivery queue")
	assert.Contains(t, out, "toggle duty status")
	assert.NotContains(t, out, "add product")

	m.SetRole(model.RoleSeller)
	out = m.View()
	assert.Contains(t, out, "Seller home")
	assert.Contains(t, out, "add product")
	assert.NotContains(t, out, "toggle duty status")
}

func TestGlobalSectionAlwaysPresent(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)

	out := m.View()
	assert.Contains(t, out, "Everywhere")
	assert.Contains(t, out, "Notifications")
	assert.Contains(t, out, "VanMitra assistant")

	// No role section before sign-in.
	assert.NotContains(t, out, "Seller home")
	assert.NotContains(t, out, "Buyer home")
	assert.NotContains(t, out, "Delivery queue")
	assert.NotContains(t, out, "Admin console")
}
