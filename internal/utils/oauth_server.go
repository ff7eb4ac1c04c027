package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/oauth2"
)

// ConfigDirName is the per-user directory holding cached OAuth tokens
const ConfigDirName = ".ytpappend"

// TokenStorage handles storing and retrieving OAuth tokens
type TokenStorage struct {
	configDir string
}

// NewTokenStorage creates a token storage rooted at dir. An empty dir
// selects ~/.ytpappend.
func NewTokenStorage(dir string) (*TokenStorage, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ConfigDirName)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &TokenStorage{
		configDir: dir,
	}, nil
}

func (s *TokenStorage) tokenPath(service string) string {
	return filepath.Join(s.configDir, fmt.Sprintf("%s_token.json", service))
}

// SaveToken saves the OAuth token to disk
func (s *TokenStorage) SaveToken(service string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(s.tokenPath(service), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// LoadToken loads the OAuth token from disk. A missing token yields nil, nil.
func (s *TokenStorage) LoadToken(service string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenPath(service))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// OAuthCallbackServer receives the redirect of the installed-app OAuth flow
// and hands the authorization code to the waiting caller.
type OAuthCallbackServer struct {
	codeChan chan callbackResult
	server   *http.Server
	listener net.Listener
	wg       sync.WaitGroup
}

// NewOAuthCallbackServer creates a new OAuth callback server
func NewOAuthCallbackServer() *OAuthCallbackServer {
	return &OAuthCallbackServer{
		codeChan: make(chan callbackResult, 1),
	}
}

// Start listens on localhost:port. Port 0 picks a free port; see Addr.
func (s *OAuthCallbackServer) Start(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen for OAuth callback: %w", err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)
	s.server = &http.Server{Handler: mux}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			LogError("Callback server error: %v", err)
		}
	}()

	return nil
}

type callbackResult struct {
	code string
	err  error
}

func (s *OAuthCallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	code := query.Get("code")
	if code == "" {
		reason := query.Get("error")
		if reason == "" {
			reason = "no authorization code received"
		}
		s.deliver(callbackResult{err: fmt.Errorf("authorization failed: %s", reason)})
		http.Error(w, "Authorization failed: "+reason, http.StatusBadRequest)
		return
	}

	s.deliver(callbackResult{code: code})

	w.Header().Set("Content-Type", "text/html")
	if _, err := fmt.Fprint(w, `<html><head><title>Authorization Successful</title></head>
<body><h1>Authorization Successful</h1>
<p>You can close this window and return to ytpappend.</p></body></html>`); err != nil {
		LogWarning("Failed to write response: %v", err)
	}
}

// deliver keeps only the first callback result
func (s *OAuthCallbackServer) deliver(res callbackResult) {
	select {
	case s.codeChan <- res:
	default:
	}
}

// WaitForCode waits for the authorization code until ctx is done. A callback
// without a code, such as a denied consent, is returned as an error.
func (s *OAuthCallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case res := <-s.codeChan:
		return res.code, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization: %w", ctx.Err())
	}
}

// Stop stops the callback server
func (s *OAuthCallbackServer) Stop() error {
	if s.server != nil {
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("failed to stop callback server: %w", err)
		}
		s.wg.Wait()
	}
	return nil
}

// Addr returns the address the server listens on
func (s *OAuthCallbackServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// OpenURL opens the specified URL in the default browser
func (s *OAuthCallbackServer) OpenURL(url string) error {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("cannot open URL %s on this platform", url)
	}
	return err
}
