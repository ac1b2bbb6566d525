package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/notice"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
)

// fakeCreds is an in-memory credential.Store.
type fakeCreds struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCreds() *fakeCreds {
	return &fakeCreds{values: map[string]string{}}
}

func (f *fakeCreds) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeCreds) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeCreds) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

// drainNotices collects every pending notice message.
func drainNotices(bus *notice.Bus) []string {
	var out []string
	for {
		n, ok := bus.TryNext()
		if !ok {
			return out
		}
		out = append(out, n.Message)
	}
}

// newTestStore wires a session store against the given handler.
func newTestStore(t *testing.T, handler http.Handler) (*Store, *fakeCreds, *notice.Bus) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	bus := notice.NewBus()
	creds := newFakeCreds()

	var store *Store
	client := api.NewClient(srv.URL, func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}, api.Hooks{})

	store = NewStore(service.NewAuth(client), creds, bus)
	client.SetHooks(store.Hooks())
	return store, creds, bus
}

func loginHandler(resp model.LoginResponse) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func TestLoginEstablishesAndPersistsSession(t *testing.T) {
	store, creds, bus := newTestStore(t, loginHandler(model.LoginResponse{
		Token: "tok-1", Role: model.RoleBuyer, Name: "Asha", ID: 42,
	}))

	ok := store.Login(context.Background(), model.Credentials{
		Email: "asha@example.com", Password: "pw", Role: model.RoleBuyer,
	})
	require.True(t, ok)

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-1", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, int64(42), store.User().ID)
	assert.Equal(t, "asha@example.com", store.User().Email)

	token, _ := creds.Get("session-token")
	assert.Equal(t, "tok-1", token)

	assert.Contains(t, drainNotices(bus), "Welcome back, Asha!")
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`"Invalid email or password"`))
	})
	store, _, bus := newTestStore(t, mux)

	ok := store.Login(context.Background(), model.Credentials{
		Email: "asha@example.com", Password: "wrong", Role: model.RoleBuyer,
	})
	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
	assert.Contains(t, drainNotices(bus), "Invalid email or password")
}

func TestLoginPendingSellerRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.LoginResponse{
			Token: "tok-2", Role: model.RoleSeller, Name: "Birsa", ID: 7,
		})
	})
	mux.HandleFunc("/seller/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.SellerProfile{
			ID: 7, AdminApprovalStatus: model.ApprovalPending,
		})
	})
	store, creds, bus := newTestStore(t, mux)

	ok := store.Login(context.Background(), model.Credentials{
		Email: "birsa@example.com", Password: "pw", Role: model.RoleSeller,
	})
	assert.False(t, ok)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())

	token, _ := creds.Get("session-token")
	assert.Empty(t, token)

	assert.Contains(t, drainNotices(bus),
		"Your seller account is pending admin approval. Please wait for approval.")
}

func TestLoginRejectedSeller(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.LoginResponse{
			Token: "tok-3", Role: model.RoleSeller, Name: "Soma", ID: 8,
		})
	})
	mux.HandleFunc("/seller/8", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SellerProfile{
			ID: 8, AdminApprovalStatus: model.ApprovalRejected,
		})
	})
	store, _, bus := newTestStore(t, mux)

	ok := store.Login(context.Background(), model.Credentials{
		Email: "soma@example.com", Password: "pw", Role: model.RoleSeller,
	})
	assert.False(t, ok)
	assert.Contains(t, drainNotices(bus),
		"Your seller account has been rejected. Please contact support.")
}

func TestLoginApprovedSeller(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.LoginResponse{
			Token: "tok-4", Role: model.RoleSeller, Name: "Jhano", ID: 9,
		})
	})
	mux.HandleFunc("/seller/9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.SellerProfile{
			ID: 9, AdminApprovalStatus: model.ApprovalApproved,
		})
	})
	store, _, _ := newTestStore(t, mux)

	ok := store.Login(context.Background(), model.Credentials{
		Email: "jhano@example.com", Password: "pw", Role: model.RoleSeller,
	})
	assert.True(t, ok)
	assert.True(t, store.IsAuthenticated())
}

func TestLogoutClearsSessionAndCredentials(t *testing.T) {
	store, creds, bus := newTestStore(t, loginHandler(model.LoginResponse{
		Token: "tok-1", Role: model.RoleBuyer, Name: "Asha", ID: 42,
	}))
	require.True(t, store.Login(context.Background(), model.Credentials{
		Email: "asha@example.com", Password: "pw", Role: model.RoleBuyer,
	}))
	drainNotices(bus)

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	token, _ := creds.Get("session-token")
	assert.Empty(t, token)
	assert.Contains(t, drainNotices(bus), "Logged out successfully")
}

func TestExpireTearsDownAuthenticatedSession(t *testing.T) {
	store, _, bus := newTestStore(t, loginHandler(model.LoginResponse{
		Token: "tok-1", Role: model.RoleBuyer, Name: "Asha", ID: 42,
	}))
	require.True(t, store.Login(context.Background(), model.Credentials{
		Email: "asha@example.com", Password: "pw", Role: model.RoleBuyer,
	}))
	drainNotices(bus)

	store.Expire()

	assert.False(t, store.IsAuthenticated())
	assert.Contains(t, drainNotices(bus), "Session expired. Please login again.")
}

func TestExpireIsNoOpWhenAnonymous(t *testing.T) {
	store, _, bus := newTestStore(t, http.NewServeMux())

	store.Expire()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, drainNotices(bus))
}

func TestUnauthorizedResponseExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.LoginResponse{
			Token: "tok-1", Role: model.RoleBuyer, Name: "Asha", ID: 42,
		})
	})
	mux.HandleFunc("/buyer/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	bus := notice.NewBus()
	var store *Store
	client := api.NewClient(srv.URL, func() string { return store.Token() }, api.Hooks{})
	store = NewStore(service.NewAuth(client), newFakeCreds(), bus)
	client.SetHooks(store.Hooks())

	require.True(t, store.Login(context.Background(), model.Credentials{
		Email: "asha@example.com", Password: "pw", Role: model.RoleBuyer,
	}))
	drainNotices(bus)

	err := client.Get(context.Background(), "/buyer/products", nil)
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))
	assert.False(t, store.IsAuthenticated())
	assert.Contains(t, drainNotices(bus), "Session expired. Please login again.")
}

func TestSignupBuyer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup/buyer", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	store, _, bus := newTestStore(t, mux)

	ok := store.SignupBuyer(context.Background(), model.BuyerSignup{
		Name: "Asha", Email: "asha@example.com", Password: "pw",
		ConfirmPassword: "pw", TermsAccepted: true,
	})
	assert.True(t, ok)
	assert.False(t, store.IsAuthenticated())
	assert.Contains(t, drainNotices(bus), "Account created successfully! Please login.")
}

func TestSignupSeller(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup/seller", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	store, _, bus := newTestStore(t, mux)

	ok := store.SignupSeller(context.Background(), model.SellerSignup{
		BuyerSignup: model.BuyerSignup{
			Name: "Birsa", Email: "birsa@example.com", Password: "pw",
			ConfirmPassword: "pw", TermsAccepted: true,
		},
		ConsentAccepted: true,
	})
	assert.True(t, ok)
	assert.Contains(t, drainNotices(bus), "Seller account created! Please wait for admin approval.")
}

func TestInitializeAuthTrustsPersistedSessionWithoutNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	t.Cleanup(srv.Close)

	bus := notice.NewBus()
	creds := newFakeCreds()
	user := model.User{ID: 42, Name: "Asha", Email: "asha@example.com", Role: model.RoleBuyer}
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, creds.Set("session-token", "tok-1"))
	require.NoError(t, creds.Set("session-user", string(raw)))

	var store *Store
	client := api.NewClient(srv.URL, func() string { return store.Token() }, api.Hooks{})
	store = NewStore(service.NewAuth(client), creds, bus)
	client.SetHooks(store.Hooks())

	store.InitializeAuth()

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-1", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, model.RoleBuyer, store.User().Role)
	assert.Zero(t, requests)
}

func TestInitializeAuthValidatorExpiresStaleSession(t *testing.T) {
	bus := notice.NewBus()
	creds := newFakeCreds()
	user := model.User{ID: 42, Name: "Asha", Email: "asha@example.com", Role: model.RoleBuyer}
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, creds.Set("session-token", "tok-stale"))
	require.NoError(t, creds.Set("session-user", string(raw)))

	srv := httptest.NewServer(http.NewServeMux())
	t.Cleanup(srv.Close)

	var store *Store
	client := api.NewClient(srv.URL, func() string { return store.Token() }, api.Hooks{})
	store = NewStore(service.NewAuth(client), creds, bus,
		WithValidator(func(ctx context.Context, token string) error {
			assert.Equal(t, "tok-stale", token)
			return &api.AuthError{}
		}))
	client.SetHooks(store.Hooks())

	store.InitializeAuth()

	require.Eventually(t, func() bool {
		return !store.IsAuthenticated()
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, drainNotices(bus), "Session expired. Please login again.")
}

func TestInitializeAuthIgnoresMissingCredentials(t *testing.T) {
	store, _, _ := newTestStore(t, http.NewServeMux())
	store.InitializeAuth()
	assert.False(t, store.IsAuthenticated())
}

func TestInitializeAuthDiscardsCorruptUser(t *testing.T) {
	store, creds, _ := newTestStore(t, http.NewServeMux())
	require.NoError(t, creds.Set("session-token", "tok-1"))
	require.NoError(t, creds.Set("session-user", "{not json"))

	store.InitializeAuth()

	assert.False(t, store.IsAuthenticated())
	token, _ := creds.Get("session-token")
	assert.Empty(t, token)
}
