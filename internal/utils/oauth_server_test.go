package utils

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenStorage_RoundTrip(t *testing.T) {
	storage, err := NewTokenStorage(t.TempDir())
	require.NoError(t, err)

	token, err := storage.LoadToken("youtube")
	require.NoError(t, err)
	assert.Nil(t, token)

	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storage.SaveToken("youtube", &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}))

	token, err = storage.LoadToken("youtube")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
	assert.True(t, token.Expiry.Equal(expiry))
}

func startCallbackServer(t *testing.T) *OAuthCallbackServer {
	t.Helper()
	server := NewOAuthCallbackServer()
	require.NoError(t, server.Start(0))
	t.Cleanup(func() {
		if err := server.Stop(); err != nil {
			t.Logf("Failed to stop server: %v", err)
		}
	})
	return server
}

func get(t *testing.T, url string) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp.StatusCode
}

func TestOAuthCallbackServer(t *testing.T) {
	server := startCallbackServer(t)

	assert.Equal(t, http.StatusNotFound, get(t, "http://"+server.Addr()+"/favicon.ico"))
	assert.Equal(t, http.StatusOK, get(t, "http://"+server.Addr()+"/?code=abc123&state=state-token"))

	code, err := server.WaitForCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
}

func TestOAuthCallbackServer_Denied(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr string
	}{
		{name: "consent denied", query: "/?error=access_denied&state=state-token", wantErr: "access_denied"},
		{name: "no code", query: "/", wantErr: "no authorization code received"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := startCallbackServer(t)
			assert.Equal(t, http.StatusBadRequest, get(t, "http://"+server.Addr()+tt.query))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			code, err := server.WaitForCode(ctx)
			assert.Empty(t, code)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestOAuthCallbackServer_WaitCancelled(t *testing.T) {
	server := startCallbackServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	code, err := server.WaitForCode(ctx)
	assert.Empty(t, code)
	assert.ErrorIs(t, err, context.Canceled)
}
