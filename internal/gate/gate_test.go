package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

func sessionFor(role model.Role) model.Session {
	return model.Session{
		Token:           "tok",
		User:            &model.User{ID: 1, Role: role},
		IsAuthenticated: true,
	}
}

func TestEvaluateWaitsWhileLoading(t *testing.T) {
	s := model.Session{Loading: true}
	assert.Equal(t, Wait, Authenticated().Evaluate(s))
	assert.Equal(t, Wait, Roles(model.RoleAdmin).Evaluate(s))
}

func TestEvaluateRedirectsAnonymousToLogin(t *testing.T) {
	assert.Equal(t, RedirectLogin, Authenticated().Evaluate(model.Session{}))
	assert.Equal(t, RedirectLogin, Roles(model.RoleBuyer).Evaluate(model.Session{}))
}

func TestEvaluateRedirectsMissingUserToLogin(t *testing.T) {
	s := model.Session{Token: "tok", IsAuthenticated: true}
	assert.Equal(t, RedirectLogin, Authenticated().Evaluate(s))
}

func TestEvaluateAllowsAnyAuthenticatedWithEmptyAllowList(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleBuyer, model.RoleSeller, model.RoleAgent} {
		assert.Equal(t, Allow, Authenticated().Evaluate(sessionFor(role)))
	}
}

func TestEvaluateAllowsMatchingRole(t *testing.T) {
	g := Roles(model.RoleSeller, model.RoleAdmin)
	assert.Equal(t, Allow, g.Evaluate(sessionFor(model.RoleSeller)))
	assert.Equal(t, Allow, g.Evaluate(sessionFor(model.RoleAdmin)))
}

func TestEvaluateRedirectsWrongRoleHome(t *testing.T) {
	g := Roles(model.RoleAdmin)
	assert.Equal(t, RedirectHome, g.Evaluate(sessionFor(model.RoleBuyer)))
	assert.Equal(t, RedirectHome, g.Evaluate(sessionFor(model.RoleAgent)))
}
