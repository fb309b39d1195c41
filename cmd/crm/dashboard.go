package main

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/listquery"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/resource"
	"github.com/crmbase/crmdesk/internal/ui"
)

// dashboardData is everything the dashboard shows, fetched in one pass.
type dashboardData struct {
	Stats        *api.Stats             `json:"stats"`
	RecentLeads  []model.Lead           `json:"recent_leads"`
	DuePayments  []model.PaymentRequest `json:"due_payments"`
	Integrations []model.Integration    `json:"integrations"`
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show an overview of leads, payment requests, and integrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		ctx := cmd.Context()
		leads := resource.NewLeads(client)
		payments := resource.NewPayments(client)

		var (
			wg           sync.WaitGroup
			mu           sync.Mutex
			errs         []error
			stats        *api.Stats
			integrations []model.Integration
		)
		fail := func(err error) {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}

		wg.Add(4)
		go func() {
			defer wg.Done()
			s, err := client.GetStats(ctx)
			if err != nil {
				fail(fmt.Errorf("fetching stats: %w", err))
				return
			}
			stats = s
		}()
		go func() {
			defer wg.Done()
			if err := leads.Refresh(ctx); err != nil {
				fail(fmt.Errorf("fetching leads: %w", err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := payments.Refresh(ctx); err != nil {
				fail(fmt.Errorf("fetching payment requests: %w", err))
			}
		}()
		go func() {
			defer wg.Done()
			items, err := client.ListIntegrations(ctx)
			if err != nil {
				fail(fmt.Errorf("fetching integrations: %w", err))
				return
			}
			integrations = items
		}()
		wg.Wait()

		// A partial dashboard is worse than an honest failure. If any
		// fetch failed, report it rather than render stale or zeroed
		// numbers.
		if len(errs) > 0 {
			return errors.Join(errs...)
		}

		recentLeads := listquery.Apply(leads.Items(), listquery.Query{
			SortKey:  "created_at",
			Desc:     true,
			PageSize: 5,
		}, listquery.LeadFields())
		duePayments := listquery.Apply(payments.Items(), listquery.Query{
			SortKey:  "due_date",
			PageSize: 5,
		}, listquery.PaymentFields())

		if jsonOutput {
			printJSON(dashboardData{
				Stats:        stats,
				RecentLeads:  recentLeads.Items,
				DuePayments:  duePayments.Items,
				Integrations: integrations,
			})
			return nil
		}

		fmt.Println(ui.RenderAccent("Overview"))
		fmt.Printf("  Leads:            %d\n", stats.LeadsTotal)
		for _, status := range []model.LeadStatus{model.LeadNew, model.LeadContacted, model.LeadQualified, model.LeadLost} {
			if n := stats.LeadsByStatus[string(status)]; n > 0 {
				fmt.Printf("    %-14s %d\n", string(status)+":", n)
			}
		}
		fmt.Printf("  Payment requests: %d\n", stats.PaymentsTotal)
		fmt.Printf("  Pending amount:   %.2f\n", stats.PendingAmount)

		if len(recentLeads.Items) > 0 {
			fmt.Printf("\n%s\n", ui.RenderAccent("Recent leads"))
			printLeadListTable(recentLeads)
		}
		if len(duePayments.Items) > 0 {
			fmt.Printf("\n%s\n", ui.RenderAccent("Upcoming payments"))
			printPaymentListTable(duePayments)
		}

		fmt.Printf("\n%s\n", ui.RenderAccent("Integrations"))
		printIntegrationListTable(integrations)
		return nil
	},
}
