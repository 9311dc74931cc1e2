package cli

import (
	"fmt"

	"github.com/grovecli/grove/internal/api"
	"github.com/grovecli/grove/internal/auth"
)

// newAuthedClient builds the shared API client backed by the stored
// credentials. Commands fail fast here when the user is not logged in.
func newAuthedClient() (*api.Client, error) {
	store, err := auth.NewKeyringStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	manager := auth.NewManager(store, nil)
	if status := manager.Status(); !status.LoggedIn {
		return nil, fmt.Errorf("not logged in: run 'grove auth login' first")
	}

	return api.NewClient(manager), nil
}
