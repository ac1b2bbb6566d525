// Package service holds the typed wrappers over the marketplace REST
// endpoints, one method per endpoint. All network I/O goes through
// the shared api.Client.
package service

import (
	"context"
	"fmt"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// Auth wraps the authentication endpoints.
type Auth struct {
	client *api.Client
}

// NewAuth creates an auth service over the shared client.
func NewAuth(client *api.Client) *Auth {
	return &Auth{client: client}
}

// Login exchanges credentials for a bearer token.
func (a *Auth) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := a.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return &resp, nil
}

// SignupBuyer registers a buyer account. No session is established;
// the user logs in afterwards.
func (a *Auth) SignupBuyer(ctx context.Context, req model.BuyerSignup) error {
	if err := a.client.Post(ctx, "/auth/signup/buyer", req, nil); err != nil {
		return fmt.Errorf("buyer signup: %w", err)
	}
	return nil
}

// SignupSeller registers a seller account, which stays pending until
// an admin approves it.
func (a *Auth) SignupSeller(ctx context.Context, req model.SellerSignup) error {
	if err := a.client.Post(ctx, "/auth/signup/seller", req, nil); err != nil {
		return fmt.Errorf("seller signup: %w", err)
	}
	return nil
}

// SellerProfile fetches a seller record with an explicit token. The
// login flow calls it before the session exists to check the seller's
// approval status.
func (a *Auth) SellerProfile(ctx context.Context, sellerID int64, token string) (*model.SellerProfile, error) {
	var profile model.SellerProfile
	path := fmt.Sprintf("/seller/%d", sellerID)
	if err := a.client.Get(ctx, path, &profile, api.WithToken(token)); err != nil {
		return nil, fmt.Errorf("fetching seller profile: %w", err)
	}
	return &profile, nil
}
