package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok-123" }, Hooks{})
	err := c.Get(context.Background(), "/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsAuthorizationWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "" }, Hooks{})
	require.NoError(t, c.Get(context.Background(), "/ping", nil))
	assert.Empty(t, gotAuth)
}

func TestClientExplicitTokenOverridesSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "session-token" }, Hooks{})
	err := c.Get(context.Background(), "/seller/7", nil, WithToken("probe-token"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer probe-token", gotAuth)
}

func TestClientUnauthorizedRunsHookAndReturnsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	unauthorized := 0
	c := NewClient(srv.URL, nil, Hooks{
		Unauthorized: func() { unauthorized++ },
	})

	err := c.Get(context.Background(), "/api/notifications/1/BUYER", nil)
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, 1, unauthorized)
}

func TestClientServerErrorRunsHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream down"}`))
	}))
	defer srv.Close()

	var gotStatus int
	c := NewClient(srv.URL, nil, Hooks{
		ServerError: func(status int) { gotStatus = status },
	})

	err := c.Get(context.Background(), "/buyer/products", nil)
	require.Error(t, err)
	assert.False(t, IsAuthError(err))
	assert.Equal(t, http.StatusBadGateway, gotStatus)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.Equal(t, "upstream down", ErrorMessage(err, "fallback"))
}

func TestClientClientErrorSkipsHooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`"Invalid email or password"`))
	}))
	defer srv.Close()

	unauthorized, serverErrors := 0, 0
	c := NewClient(srv.URL, nil, Hooks{
		Unauthorized: func() { unauthorized++ },
		ServerError:  func(int) { serverErrors++ },
	})

	err := c.Post(context.Background(), "/auth/login", map[string]string{"email": "x"}, nil)
	require.Error(t, err)
	assert.Zero(t, unauthorized)
	assert.Zero(t, serverErrors)
	assert.Equal(t, "Invalid email or password", ErrorMessage(err, "fallback"))
}

func TestClientDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":4}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, Hooks{})
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, c.Get(context.Background(), "/count", &out))
	assert.Equal(t, 4, out.Count)
}

func TestClientNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, Hooks{})
	var out map[string]any
	assert.NoError(t, c.Delete(context.Background(), "/api/notifications/9"))
	assert.NoError(t, c.Get(context.Background(), "/empty", &out))
}
