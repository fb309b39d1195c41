package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/ui"
)

var integrationsCmd = &cobra.Command{
	Use:   "integrations",
	Short: "Manage external integrations",
}

var integrationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List integrations and their connection health",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		items, err := client.ListIntegrations(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching integrations: %w", err)
		}
		if jsonOutput {
			printJSON(items)
			return nil
		}
		printIntegrationListTable(items)
		return nil
	},
}

func integrationAction(verb string, run func(*cobra.Command, string) (*model.Integration, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: verb + " an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(cmd.Context()); err != nil {
				return err
			}
			it, err := run(cmd, args[0])
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("integration %s not found", args[0])
				}
				return err
			}
			if jsonOutput {
				printJSON(it)
				return nil
			}
			fmt.Printf("%s: %s\n", it.Name, ui.RenderIntegrationStatus(it.Status))
			return nil
		},
	}
}

func init() {
	integrationsCmd.AddCommand(integrationsListCmd)
	integrationsCmd.AddCommand(integrationAction("connect", func(cmd *cobra.Command, id string) (*model.Integration, error) {
		return client.ConnectIntegration(cmd.Context(), id)
	}))
	integrationsCmd.AddCommand(integrationAction("disconnect", func(cmd *cobra.Command, id string) (*model.Integration, error) {
		return client.DisconnectIntegration(cmd.Context(), id)
	}))
	integrationsCmd.AddCommand(integrationAction("sync", func(cmd *cobra.Command, id string) (*model.Integration, error) {
		return client.SyncIntegration(cmd.Context(), id)
	}))
}
