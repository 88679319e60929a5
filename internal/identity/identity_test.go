package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/tokens/tok-123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userId":"user-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	userID, err := c.Resolve(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestResolveUnknownToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveEmptyToken(t *testing.T) {
	c := NewClient("http://localhost:0")
	_, err := c.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveEmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Resolve(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveTokenIsPathEscaped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"userId":"user-2"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Resolve(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/users/tokens/a%2Fb%20c", gotPath)
}
