package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// mockExchanger is a TokenExchanger stub with recorded calls.
type mockExchanger struct {
	mu sync.Mutex

	ExchangeFunc  func(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)
	ExchangeCalls []struct {
		Code        string
		RedirectURI string
	}
}

func (m *mockExchanger) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	m.mu.Lock()
	m.ExchangeCalls = append(m.ExchangeCalls, struct {
		Code        string
		RedirectURI string
	}{Code: code, RedirectURI: redirectURI})
	m.mu.Unlock()

	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code, redirectURI)
	}
	return &oauth2.Token{
		AccessToken:  "mock-access-token",
		RefreshToken: "mock-refresh-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}, nil
}

func (m *mockExchanger) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ExchangeCalls)
}

// mockRefresher is a TokenRefresher stub with recorded calls.
type mockRefresher struct {
	mu sync.Mutex

	RefreshFunc  func(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	RefreshCalls []string
}

func (m *mockRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	m.mu.Lock()
	m.RefreshCalls = append(m.RefreshCalls, refreshToken)
	m.mu.Unlock()

	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &oauth2.Token{
		AccessToken:  "mock-refreshed-token",
		RefreshToken: "mock-new-refresh-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}, nil
}

// mockBrowserOpener records OpenURL calls and never spawns anything.
type mockBrowserOpener struct {
	mu sync.Mutex

	OpenURLFunc  func(url string) error
	OpenURLCalls []string
}

func (m *mockBrowserOpener) OpenURL(url string) error {
	m.mu.Lock()
	m.OpenURLCalls = append(m.OpenURLCalls, url)
	m.mu.Unlock()

	if m.OpenURLFunc != nil {
		return m.OpenURLFunc(url)
	}
	return nil
}

// newTestFlow builds a Flow that cannot reach the network or a browser.
func newTestFlow(cfg *LoginConfig, ex TokenExchanger) (*Flow, *mockBrowserOpener) {
	if cfg == nil {
		cfg = &LoginConfig{ClientID: "test-client"}
	}
	opener := &mockBrowserOpener{}
	f := NewFlow(cfg)
	f.opener = opener
	f.exchanger = ex
	f.Announce = func(string) {}
	f.readRedirect = func() (string, error) {
		return "", fmt.Errorf("readRedirect not stubbed")
	}
	return f, opener
}
