package auth

import (
	"context"
	"fmt"
	"time"
)

// Manager ties the authorization flow to credential persistence. The Flow
// owns one attempt; the Manager owns the stored account across attempts,
// including silent refresh of expired access tokens.
type Manager struct {
	store     CredentialStore
	flow      *Flow
	refresher TokenRefresher
	config    *LoginConfig
}

// NewManager creates a new authentication manager
func NewManager(store CredentialStore, config *LoginConfig) *Manager {
	if config == nil {
		config = &LoginConfig{}
	}
	return &Manager{
		store:     store,
		flow:      NewFlow(config),
		refresher: newCodeExchanger(config),
		config:    config,
	}
}

// Flow returns the attempt coordinator, letting the CLI hook Announce.
func (m *Manager) Flow() *Flow {
	return m.flow
}

// Login runs one authorization attempt and persists the credentials it
// yields. Nothing is persisted on any failure path. When stored
// credentials are merely expired and a silent refresh succeeds, the
// refreshed credentials are returned without a new interactive attempt.
func (m *Manager) Login(ctx context.Context, manual bool) (*Credentials, error) {
	if !m.config.Force {
		if creds, err := m.store.Load(); err == nil && creds != nil {
			if !creds.IsExpired() {
				return nil, fmt.Errorf("already logged in")
			}
			if creds.RefreshToken != "" {
				if refreshed, err := m.Refresh(ctx, creds); err == nil {
					return refreshed, nil
				}
			}
		}
	}

	creds, err := m.flow.Authorize(ctx, manual)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(creds); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}
	return creds, nil
}

// Logout removes stored credentials
func (m *Manager) Logout() error {
	return m.store.Delete()
}

// Status returns the current authentication status
func (m *Manager) Status() *AuthStatus {
	creds, err := m.store.Load()
	if err != nil || creds == nil {
		return &AuthStatus{
			LoggedIn: false,
			Error:    err,
		}
	}

	status := &AuthStatus{
		LoggedIn:    true,
		Credentials: creds,
	}
	if creds.IsExpired() {
		status.NeedsRefresh = true
	}
	return status
}

// Token returns the current access token, refreshing if necessary
func (m *Manager) Token(ctx context.Context) (string, error) {
	creds, err := m.store.Load()
	if err != nil || creds == nil {
		return "", fmt.Errorf("not logged in")
	}

	if creds.IsExpired() {
		if creds.RefreshToken == "" {
			return "", fmt.Errorf("token expired and no refresh token available")
		}
		refreshed, err := m.Refresh(ctx, creds)
		if err != nil {
			return "", fmt.Errorf("failed to refresh token: %w", err)
		}
		creds = refreshed
	}

	return creds.AccessToken, nil
}

// Refresh renews an expired access token and persists the result.
func (m *Manager) Refresh(ctx context.Context, creds *Credentials) (*Credentials, error) {
	if creds.RefreshToken == "" {
		return nil, fmt.Errorf("no refresh token available")
	}

	token, err := m.refresher.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	newCreds := &Credentials{
		Email:        creds.Email,
		AccessToken:  token.AccessToken,
		RefreshToken: creds.RefreshToken, // Keep existing refresh token if not provided
		ClientID:     creds.ClientID,
	}
	if token.RefreshToken != "" {
		newCreds.RefreshToken = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		expiresAt := token.Expiry
		newCreds.ExpiresAt = &expiresAt
	} else {
		expiresAt := time.Now().Add(time.Hour)
		newCreds.ExpiresAt = &expiresAt
	}

	if err := m.store.Save(newCreds); err != nil {
		return nil, fmt.Errorf("failed to save refreshed credentials: %w", err)
	}
	return newCreds, nil
}
