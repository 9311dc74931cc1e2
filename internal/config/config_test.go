package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetForTest(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// Reset singleton for testing
	instance = nil
	once = sync.Once{}
}

func TestConfigLoadSave(t *testing.T) {
	resetForTest(t)
	tmpDir := os.Getenv("XDG_CONFIG_HOME")

	// Test loading default config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Preferences.DefaultOutput != "table" {
		t.Errorf("Expected default output 'table', got %s", cfg.Preferences.DefaultOutput)
	}

	// Test setting the OAuth client
	client := OAuthClient{ClientID: "client-123", ClientSecret: "secret"}
	if err := cfg.SetOAuthClient(client); err != nil {
		t.Fatalf("Failed to set OAuth client: %v", err)
	}

	if got := cfg.GetOAuthClient(); got.ClientID != "client-123" {
		t.Errorf("Expected client ID client-123, got %s", got.ClientID)
	}

	// Verify file was created
	configPath := filepath.Join(tmpDir, "grove", "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Reset and reload to verify persistence
	instance = nil
	once = sync.Once{}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	if got := cfg2.GetOAuthClient(); got.ClientID != "client-123" {
		t.Errorf("OAuth client not persisted, expected client-123, got %s", got.ClientID)
	}
}

func TestCurrentAccount(t *testing.T) {
	resetForTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetCurrentAccount() != nil {
		t.Error("Expected no current account in default config")
	}

	account := &AccountInfo{Email: "user@example.com", UpdatedAt: "2026-08-28T00:00:00Z"}
	if err := cfg.SetCurrentAccount(account); err != nil {
		t.Fatalf("Failed to set current account: %v", err)
	}

	got := cfg.GetCurrentAccount()
	if got == nil || got.Email != "user@example.com" {
		t.Errorf("Expected account user@example.com, got %+v", got)
	}

	if err := cfg.ClearCurrentAccount(); err != nil {
		t.Fatalf("Failed to clear current account: %v", err)
	}
	if cfg.GetCurrentAccount() != nil {
		t.Error("Account not cleared")
	}
}

func TestDefaultCalendar(t *testing.T) {
	resetForTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetDefaultCalendar() != "primary" {
		t.Errorf("Expected default calendar 'primary', got '%s'", cfg.GetDefaultCalendar())
	}

	if err := cfg.SetDefaultCalendar("work@example.com"); err != nil {
		t.Fatalf("Failed to set calendar: %v", err)
	}

	if cfg.GetDefaultCalendar() != "work@example.com" {
		t.Errorf("Expected calendar 'work@example.com', got '%s'", cfg.GetDefaultCalendar())
	}
}

func TestConcurrency(t *testing.T) {
	resetForTest(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	done := make(chan bool, 10)

	// Concurrent writes
	for i := 0; i < 5; i++ {
		go func(id int) {
			_ = cfg.SetDefaultCalendar(fmt.Sprintf("cal_%d", id))
			done <- true
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 5; i++ {
		go func() {
			_ = cfg.GetDefaultCalendar()
			_ = cfg.GetOAuthClient()
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	// One of the writes won; the value must be well formed.
	got := cfg.GetDefaultCalendar()
	if got == "" {
		t.Error("Expected a calendar value after concurrent writes")
	}
}
