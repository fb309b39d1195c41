// Command crm is the terminal front-end for the CRM backend: login, lead and
// payment-request management, integrations, and the dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/config"
	"github.com/crmbase/crmdesk/internal/session"
	"github.com/crmbase/crmdesk/internal/ui"
)

var (
	apiURL     string
	jsonOutput bool

	client *api.Client
	sess   *session.Manager
)

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "CLI client for the CRM service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadClient()
		if err != nil {
			return err
		}
		if apiURL == "" {
			apiURL = cfg.APIURL
		}
		if cfg.NoColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		client = api.NewClient(apiURL, "")
		sess, err = session.NewManager(cfg.SessionPath, client)
		if err != nil {
			return fmt.Errorf("initializing session: %w", err)
		}
		return nil
	},
}

// requireAuth restores the persisted session and verifies it with the
// backend. Commands that talk to protected endpoints call this first.
func requireAuth(ctx context.Context) error {
	_, err := sess.Restore(ctx)
	if errors.Is(err, session.ErrNotAuthenticated) {
		return fmt.Errorf("not logged in; run 'crm login' first")
	}
	if err != nil {
		return err
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("crm version 0.3.0")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (default from CRMDESK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(integrationsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
