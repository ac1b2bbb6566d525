package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

func TestHeaderShowsIdentity(t *testing.T) {
	l := NewLayout(100, 30)

	out := l.RenderHeader("VanVyapaar", 2, "Asha", model.RoleSeller)
	assert.Contains(t, out, "VanVyapaar")
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "SELLER")
	assert.Contains(t, out, "2")
}

func TestHeaderAnonymous(t *testing.T) {
	l := NewLayout(100, 30)

	out := l.RenderHeader("VanVyapaar", 0, "", "")
	assert.Contains(t, out, "VanVyapaar")
	assert.NotContains(t, out, "·")
}
