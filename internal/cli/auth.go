package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grovecli/grove/internal/auth"
	"github.com/grovecli/grove/internal/config"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  `Manage the Google account authorization used by grove.`,
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthStatusCmd(),
	)

	return cmd
}

// resolveOAuthClient picks the OAuth client from flags, environment
// (GROVE_CLIENT_ID / GROVE_CLIENT_SECRET) and the config file, in that
// order.
func resolveOAuthClient(clientID, clientSecret string) (string, string, error) {
	if clientID == "" {
		clientID = viper.GetString("client_id")
	}
	if clientSecret == "" {
		clientSecret = viper.GetString("client_secret")
	}

	if clientID == "" || clientSecret == "" {
		if cfg, err := config.Load(); err == nil {
			client := cfg.GetOAuthClient()
			if clientID == "" {
				clientID = client.ClientID
			}
			if clientSecret == "" {
				clientSecret = client.ClientSecret
			}
		}
	}

	if clientID == "" {
		return "", "", fmt.Errorf("no OAuth client configured: pass --client-id or set GROVE_CLIENT_ID")
	}
	return clientID, clientSecret, nil
}

func newAuthLoginCmd() *cobra.Command {
	var noBrowser bool
	var manual bool
	var force bool
	var clientID string
	var clientSecret string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to Google",
		Long: `Authorize grove against your Google account.

By default a temporary local listener is started and your browser is
opened on the Google consent page; the browser redirects back to the
listener and the login completes on its own.

With --manual no listener is started: open the printed URL yourself,
approve access, and paste the resulting redirect URL (the error page
your browser lands on) back into the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, secret, err := resolveOAuthClient(clientID, clientSecret)
			if err != nil {
				return err
			}

			store, err := auth.NewKeyringStore()
			if err != nil {
				return fmt.Errorf("failed to initialize credential store: %w", err)
			}

			manager := auth.NewManager(store, &auth.LoginConfig{
				ClientID:     id,
				ClientSecret: secret,
				NoBrowser:    noBrowser,
				Force:        force,
			})

			// Check if already logged in
			if !force {
				if status := manager.Status(); status.LoggedIn && !status.NeedsRefresh {
					color.Green("✅ Already logged in")

					if cfg, err := config.Load(); err == nil {
						if account := cfg.GetCurrentAccount(); account != nil && account.Email != "" {
							fmt.Printf("   Logged in as: %s\n", color.CyanString(account.Email))
						}
					}

					fmt.Println()
					fmt.Printf("Use %s to force re-authentication\n", color.CyanString("grove auth login --force"))
					return nil
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), auth.AuthorizeTimeout+10*time.Second)
			defer cancel()

			var spin *spinner.Spinner
			manager.Flow().Announce = func(authURL string) {
				if manual {
					fmt.Println("🌐 Open this URL to authorize:")
					color.Cyan("   %s", authURL)
					fmt.Println()
					return
				}

				fmt.Println("🌐 To complete login, visit:")
				color.Cyan("   %s", authURL)
				fmt.Println()
				if !noBrowser {
					fmt.Println("🚀 Opening browser...")
				}

				spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				spin.Suffix = " Waiting for authorization..."
				spin.Start()
			}

			creds, err := manager.Login(ctx, manual)
			if spin != nil {
				spin.Stop()
			}
			if err != nil {
				return loginError(err)
			}

			fmt.Println()
			color.Green("✅ Successfully logged in!")

			if cfg, err := config.Load(); err == nil {
				_ = cfg.SetCurrentAccount(&config.AccountInfo{
					Email:     creds.Email,
					UpdatedAt: time.Now().Format(time.RFC3339),
				})
			}

			if creds.ExpiresAt != nil {
				duration := time.Until(*creds.ExpiresAt)
				fmt.Printf("   Access token valid for %dh %dm\n",
					int(duration.Hours()),
					int(duration.Minutes())%60)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically")
	cmd.Flags().BoolVar(&manual, "manual", false, "Paste the redirect URL instead of running a local listener")
	cmd.Flags().BoolVar(&force, "force", false, "Force re-authentication even if already logged in")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID (overrides GROVE_CLIENT_ID)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret (overrides GROVE_CLIENT_SECRET)")

	return cmd
}

// loginError turns a flow failure into a message with a next step.
func loginError(err error) error {
	switch auth.ReasonOf(err) {
	case auth.ReasonUserCancelled:
		return fmt.Errorf("login cancelled: access was denied on the consent page")
	case auth.ReasonTimedOut:
		return fmt.Errorf("login timed out: no authorization was received within %s", auth.AuthorizeTimeout)
	case auth.ReasonBindFailure:
		return fmt.Errorf("%w\nTry again with --manual", err)
	case auth.ReasonNoRefreshToken:
		return fmt.Errorf("%w\nRevoke grove's access at https://myaccount.google.com/permissions and log in again", err)
	default:
		return fmt.Errorf("login failed: %w", err)
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Long:  `Remove stored authentication credentials.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auth.NewKeyringStore()
			if err != nil {
				return fmt.Errorf("failed to initialize credential store: %w", err)
			}

			if !store.Exists() {
				color.Yellow("⚠️  Not logged in")
				return nil
			}

			manager := auth.NewManager(store, nil)
			if err := manager.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}

			if cfg, err := config.Load(); err == nil {
				_ = cfg.ClearCurrentAccount()
			}

			color.Green("✅ Successfully logged out")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	var showToken bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Long:  `Display current authentication status and token information.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auth.NewKeyringStore()
			if err != nil {
				return fmt.Errorf("failed to initialize credential store: %w", err)
			}

			manager := auth.NewManager(store, nil)
			status := manager.Status()

			// If --show-token is used, just output the token and nothing else
			if showToken {
				if !status.LoggedIn || status.Credentials == nil {
					return fmt.Errorf("not logged in")
				}
				fmt.Print(status.Credentials.AccessToken)
				return nil
			}

			color.Cyan("→ Authentication Status\n")
			fmt.Println()

			if !status.LoggedIn {
				fmt.Println("🔐 Not logged in")
				fmt.Println()
				fmt.Printf("Run %s to authenticate\n", color.CyanString("grove auth login"))
				return nil
			}

			color.Green("✅ Logged in")
			if cfg, err := config.Load(); err == nil {
				if account := cfg.GetCurrentAccount(); account != nil && account.Email != "" {
					fmt.Printf("   Account: %s\n", color.CyanString(account.Email))
				}
			}
			fmt.Println()

			if creds := status.Credentials; creds != nil {
				if creds.ExpiresAt != nil {
					if creds.IsExpired() {
						color.Yellow("Access Token: ⚠️  Expired")
						if creds.RefreshToken != "" {
							fmt.Println("              (will auto-refresh on next use)")
						}
					} else {
						duration := time.Until(*creds.ExpiresAt)
						fmt.Printf("Access Token: Valid for %s\n",
							color.GreenString("%dh %dm", int(duration.Hours()), int(duration.Minutes())%60))
					}
				} else {
					color.Green("Access Token: Valid")
				}

				if creds.RefreshToken != "" {
					color.Green("Refresh Token: Available")
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showToken, "show-token", false, "Output only the access token (for use in scripts)")
	return cmd
}
