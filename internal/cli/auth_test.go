package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthCommand(t *testing.T) {
	cmd := newAuthCmd()

	// Test command structure
	assert.NotNil(t, cmd)
	assert.Equal(t, "auth", cmd.Use)
	assert.Contains(t, cmd.Short, "Manage authentication")

	// Test subcommands exist
	expectedSubcommands := []string{"login", "logout", "status"}
	for _, subcmd := range expectedSubcommands {
		t.Run("has_"+subcmd, func(t *testing.T) {
			found := false
			for _, c := range cmd.Commands() {
				if c.Name() == subcmd {
					found = true
					break
				}
			}
			assert.True(t, found, "Subcommand %s not found", subcmd)
		})
	}
}

func TestAuthLoginCommand(t *testing.T) {
	cmd := newAuthLoginCmd()

	// Test command structure
	assert.NotNil(t, cmd)
	assert.Equal(t, "login", cmd.Use)
	assert.Contains(t, cmd.Short, "Log in")

	// Test flags
	for _, name := range []string{"no-browser", "manual", "force"} {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "Flag %s not found", name)
		assert.Equal(t, "false", flag.DefValue)
	}

	assert.NotNil(t, cmd.Flags().Lookup("client-id"))
	assert.NotNil(t, cmd.Flags().Lookup("client-secret"))
}

func TestAuthLogoutCommand(t *testing.T) {
	cmd := newAuthLogoutCmd()

	assert.NotNil(t, cmd)
	assert.Equal(t, "logout", cmd.Use)
	assert.Contains(t, cmd.Short, "Log out")

	// Logout command has no flags
	assert.Equal(t, 0, cmd.Flags().NFlag())
}

func TestAuthStatusCommand(t *testing.T) {
	cmd := newAuthStatusCmd()

	assert.NotNil(t, cmd)
	assert.Equal(t, "status", cmd.Use)
	assert.Contains(t, cmd.Short, "authentication status")

	showTokenFlag := cmd.Flags().Lookup("show-token")
	assert.NotNil(t, showTokenFlag)
	assert.Equal(t, "false", showTokenFlag.DefValue)
}

func TestAuthCommand_Help(t *testing.T) {
	cmd := newAuthCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	assert.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "login")
	assert.Contains(t, output, "logout")
	assert.Contains(t, output, "status")
}

func TestAuthLoginCommand_RequiresClient(t *testing.T) {
	t.Setenv("GROVE_CLIENT_ID", "")
	t.Setenv("GROVE_CLIENT_SECRET", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newAuthLoginCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no OAuth client configured")
}

func TestResolveOAuthClient_FlagBeatsEnv(t *testing.T) {
	t.Setenv("GROVE_CLIENT_ID", "env-id")
	t.Setenv("GROVE_CLIENT_SECRET", "env-secret")

	id, secret, err := resolveOAuthClient("flag-id", "flag-secret")
	assert.NoError(t, err)
	assert.Equal(t, "flag-id", id)
	assert.Equal(t, "flag-secret", secret)
}
