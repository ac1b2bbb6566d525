// Package session owns the client's record of the authenticated user:
// login and signup flows, the seller approval guard, keyring
// persistence across restarts, and the forced teardown that a 401
// from any endpoint triggers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/credential"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/logging"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
)

// Keyring keys for the persisted session. The keyring service name is
// the fixed storage namespace.
const (
	keyToken = "session-token"
	keyUser  = "session-user"
)

// Validator checks a rehydrated token against the server. It exists
// because persisted sessions are trusted on read; a validator closes
// the staleness window without blocking startup.
type Validator func(ctx context.Context, token string) error

// Store holds the session state. All accessors are safe for
// concurrent use.
//
// State machine: anonymous -> (login success) -> authenticated ->
// (logout | 401) -> anonymous. There is no refreshing state; token
// refresh is not implemented.
type Store struct {
	mu       sync.Mutex
	auth     *service.Auth
	creds    credential.Store
	notices  *notice.Bus
	validate Validator

	token         string
	user          *model.User
	authenticated bool
	loading       bool
}

// Option configures a Store.
type Option func(*Store)

// WithValidator installs a rehydration validator, run in the
// background after InitializeAuth restores a persisted session.
func WithValidator(v Validator) Option {
	return func(s *Store) { s.validate = v }
}

// NewStore creates a session store. creds may be a fake in tests.
func NewStore(auth *service.Auth, creds credential.Store, notices *notice.Bus, opts ...Option) *Store {
	s := &Store{
		auth:    auth,
		creds:   creds,
		notices: notices,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hooks returns the api.Client hooks this store serves: forced logout
// on 401 and a generic notice on 5xx. Register them on the shared
// client after construction.
func (s *Store) Hooks() api.Hooks {
	return api.Hooks{
		Unauthorized: s.Expire,
		ServerError: func(status int) {
			s.notices.Error("Server error. Please try again later.")
		},
	}
}

// Token returns the current bearer token, or "" when anonymous. It is
// the TokenSource for the api client.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a session is established.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsLoading reports whether a login or signup call is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Snapshot returns the session as a value for guards and rendering.
func (s *Store) Snapshot() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := model.Session{
		Token:           s.token,
		IsAuthenticated: s.authenticated,
		Loading:         s.loading,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Login exchanges credentials for a session. Sellers whose accounts
// are pending or rejected never get a session; the reason is surfaced
// as a notice. Login never returns an error: failures become notices
// plus a false result.
func (s *Store) Login(ctx context.Context, creds model.Credentials) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.notices.Error(api.ErrorMessage(err, "Login failed"))
		logging.Info("login rejected", "email", creds.Email, "role", creds.Role)
		return false
	}

	if resp.Role == model.RoleSeller {
		if !s.checkSellerApproval(ctx, resp) {
			return false
		}
	}

	user := &model.User{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: creds.Email,
		Role:  resp.Role,
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = user
	s.authenticated = true
	s.mu.Unlock()

	s.persist(resp.Token, user)
	s.notices.Success(fmt.Sprintf("Welcome back, %s!", resp.Name))
	logging.Info("session established", "userId", user.ID, "role", user.Role)
	return true
}

// checkSellerApproval fetches the seller profile with the
// just-issued token and rejects the login unless the account is
// approved. A failed probe (other than an explicit status) does not
// block the login.
func (s *Store) checkSellerApproval(ctx context.Context, resp *model.LoginResponse) bool {
	profile, err := s.auth.SellerProfile(ctx, resp.ID, resp.Token)
	if err != nil {
		logging.Warn("seller approval check failed", "sellerId", resp.ID, "err", err)
		return true
	}

	switch profile.AdminApprovalStatus {
	case model.ApprovalPending:
		s.notices.Error("Your seller account is pending admin approval. Please wait for approval.")
		return false
	case model.ApprovalRejected:
		s.notices.Error("Your seller account has been rejected. Please contact support.")
		return false
	}
	return true
}

// Logout clears the session. It always succeeds locally; persistence
// cleanup failures are logged and ignored.
func (s *Store) Logout() {
	s.clear()
	s.notices.Success("Logged out successfully")
	logging.Info("session cleared by logout")
}

// Expire is the forced teardown run when the server rejects the
// session token. It is a no-op for anonymous clients, so a failed
// login attempt does not double-report.
func (s *Store) Expire() {
	s.mu.Lock()
	wasAuthenticated := s.authenticated
	s.mu.Unlock()
	if !wasAuthenticated {
		return
	}

	s.clear()
	s.notices.Error("Session expired. Please login again.")
	logging.Info("session cleared by server rejection")
}

// SignupBuyer registers a buyer account. No session is established;
// the user must log in afterwards.
func (s *Store) SignupBuyer(ctx context.Context, req model.BuyerSignup) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.auth.SignupBuyer(ctx, req); err != nil {
		s.notices.Error(api.ErrorMessage(err, "Signup failed"))
		return false
	}
	s.notices.Success("Account created successfully! Please login.")
	return true
}

// SignupSeller registers a seller account, gated on admin approval
// before it becomes usable.
func (s *Store) SignupSeller(ctx context.Context, req model.SellerSignup) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.auth.SignupSeller(ctx, req); err != nil {
		s.notices.Error(api.ErrorMessage(err, "Signup failed"))
		return false
	}
	s.notices.Success("Seller account created! Please wait for admin approval.")
	return true
}

// InitializeAuth rehydrates a persisted session at process start.
// The persisted pair is trusted on read: no network call is made
// before the session is marked authenticated. When a validator is
// configured it runs in the background and tears the session down if
// the token turns out to be stale.
func (s *Store) InitializeAuth() {
	token, err := s.creds.Get(keyToken)
	if err != nil || token == "" {
		return
	}

	raw, err := s.creds.Get(keyUser)
	if err != nil || raw == "" {
		return
	}

	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logging.Warn("discarding unreadable persisted session", "err", err)
		s.clear()
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()
	logging.Info("session rehydrated", "userId", user.ID, "role", user.Role)

	if s.validate != nil {
		go func() {
			if err := s.validate(context.Background(), token); err != nil {
				logging.Warn("rehydrated session failed validation", "err", err)
				s.Expire()
			}
		}()
	}
}

// clear drops the in-memory session and the persisted copy.
func (s *Store) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	if err := s.creds.Delete(keyToken); err != nil {
		logging.Debug("deleting persisted token", "err", err)
	}
	if err := s.creds.Delete(keyUser); err != nil {
		logging.Debug("deleting persisted user", "err", err)
	}
}

// persist writes the session to the keyring. Failures degrade to an
// unpersisted session rather than a failed login.
func (s *Store) persist(token string, user *model.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		logging.Warn("marshaling session user", "err", err)
		return
	}
	if err := s.creds.Set(keyToken, token); err != nil {
		logging.Warn("persisting session token", "err", err)
		return
	}
	if err := s.creds.Set(keyUser, string(raw)); err != nil {
		logging.Warn("persisting session user", "err", err)
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
