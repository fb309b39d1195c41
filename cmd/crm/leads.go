package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/listquery"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/resource"
)

var leadListFlags = struct {
	search   string
	status   string
	sort     string
	desc     bool
	page     int
	pageSize int
}{}

var leadCreateFlags = struct {
	name    string
	email   string
	phone   string
	company string
	status  string
	notes   string
}{}

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Manage leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads with filtering, sorting, and paging",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		leads := resource.NewLeads(client)
		if err := leads.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("fetching leads: %w", err)
		}

		page := listquery.Apply(leads.Items(), listquery.Query{
			Search:   leadListFlags.search,
			Status:   leadListFlags.status,
			SortKey:  leadListFlags.sort,
			Desc:     leadListFlags.desc,
			Page:     leadListFlags.page,
			PageSize: leadListFlags.pageSize,
		}, listquery.LeadFields())

		if jsonOutput {
			printJSON(page)
			return nil
		}
		printLeadListTable(page)
		return nil
	},
}

var leadsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		lead, err := client.GetLead(cmd.Context(), args[0])
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("lead %s not found", args[0])
			}
			return err
		}
		if jsonOutput {
			printJSON(lead)
			return nil
		}
		printLeadTable(lead)
		return nil
	},
}

var leadsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lead",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		req := &api.CreateLeadRequest{
			Name:    leadCreateFlags.name,
			Email:   leadCreateFlags.email,
			Phone:   leadCreateFlags.phone,
			Company: leadCreateFlags.company,
			Notes:   leadCreateFlags.notes,
		}
		if leadCreateFlags.status != "" {
			req.Status = model.LeadStatus(leadCreateFlags.status)
		}

		lead, err := client.CreateLead(cmd.Context(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(lead)
			return nil
		}
		fmt.Printf("Created lead %s\n", lead.ID)
		return nil
	},
}

var leadsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		req := &api.UpdateLeadRequest{}
		flags := cmd.Flags()
		if flags.Changed("name") {
			req.Name = &leadCreateFlags.name
		}
		if flags.Changed("email") {
			req.Email = &leadCreateFlags.email
		}
		if flags.Changed("phone") {
			req.Phone = &leadCreateFlags.phone
		}
		if flags.Changed("company") {
			req.Company = &leadCreateFlags.company
		}
		if flags.Changed("status") {
			status := model.LeadStatus(leadCreateFlags.status)
			req.Status = &status
		}
		if flags.Changed("notes") {
			req.Notes = &leadCreateFlags.notes
		}

		lead, err := client.UpdateLead(cmd.Context(), args[0], req)
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("lead %s not found", args[0])
			}
			return err
		}
		if jsonOutput {
			printJSON(lead)
			return nil
		}
		fmt.Printf("Updated lead %s\n", lead.ID)
		return nil
	},
}

var leadsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		if err := client.DeleteLead(cmd.Context(), args[0]); err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("lead %s not found", args[0])
			}
			return err
		}
		fmt.Printf("Deleted lead %s\n", args[0])
		return nil
	},
}

func init() {
	leadsListCmd.Flags().StringVar(&leadListFlags.search, "search", "", "free-text search over name, email, and company")
	leadsListCmd.Flags().StringVar(&leadListFlags.status, "status", listquery.StatusAll, "filter by status (new, contacted, qualified, lost, all)")
	leadsListCmd.Flags().StringVar(&leadListFlags.sort, "sort", "", "sort key (name, email, company, status, created_at, updated_at)")
	leadsListCmd.Flags().BoolVar(&leadListFlags.desc, "desc", false, "sort descending")
	leadsListCmd.Flags().IntVar(&leadListFlags.page, "page", 1, "page number")
	leadsListCmd.Flags().IntVar(&leadListFlags.pageSize, "page-size", listquery.DefaultPageSize, "records per page")

	for _, c := range []*cobra.Command{leadsCreateCmd, leadsUpdateCmd} {
		c.Flags().StringVar(&leadCreateFlags.name, "name", "", "lead name")
		c.Flags().StringVar(&leadCreateFlags.email, "email", "", "lead email")
		c.Flags().StringVar(&leadCreateFlags.phone, "phone", "", "phone number")
		c.Flags().StringVar(&leadCreateFlags.company, "company", "", "company name")
		c.Flags().StringVar(&leadCreateFlags.status, "status", "", "lead status")
		c.Flags().StringVar(&leadCreateFlags.notes, "notes", "", "free-form notes")
	}
	_ = leadsCreateCmd.MarkFlagRequired("name")
	_ = leadsCreateCmd.MarkFlagRequired("email")

	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsShowCmd)
	leadsCmd.AddCommand(leadsCreateCmd)
	leadsCmd.AddCommand(leadsUpdateCmd)
	leadsCmd.AddCommand(leadsDeleteCmd)
}
