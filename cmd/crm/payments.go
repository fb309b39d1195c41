package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crmbase/crmdesk/internal/api"
	"github.com/crmbase/crmdesk/internal/listquery"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/resource"
)

var paymentListFlags = struct {
	search   string
	status   string
	sort     string
	desc     bool
	page     int
	pageSize int
}{}

var paymentCreateFlags = struct {
	vendor    string
	amount    float64
	program   string
	due       string
	requester string
	notes     string
	status    string
}{}

var paymentsCmd = &cobra.Command{
	Use:     "payments",
	Aliases: []string{"payment-requests"},
	Short:   "Manage payment requests",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment requests with filtering, sorting, and paging",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		payments := resource.NewPayments(client)
		if err := payments.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("fetching payment requests: %w", err)
		}

		page := listquery.Apply(payments.Items(), listquery.Query{
			Search:   paymentListFlags.search,
			Status:   paymentListFlags.status,
			SortKey:  paymentListFlags.sort,
			Desc:     paymentListFlags.desc,
			Page:     paymentListFlags.page,
			PageSize: paymentListFlags.pageSize,
		}, listquery.PaymentFields())

		if jsonOutput {
			printJSON(page)
			return nil
		}
		printPaymentListTable(page)
		return nil
	},
}

var paymentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one payment request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		pr, err := client.GetPaymentRequest(cmd.Context(), args[0])
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("payment request %s not found", args[0])
			}
			return err
		}
		if jsonOutput {
			printJSON(pr)
			return nil
		}
		printPaymentTable(pr)
		return nil
	},
}

var paymentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a payment request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		due, err := time.Parse("2006-01-02", paymentCreateFlags.due)
		if err != nil {
			return fmt.Errorf("parsing --due (want YYYY-MM-DD): %w", err)
		}

		pr, err := client.CreatePaymentRequest(cmd.Context(), &api.CreatePaymentRequest{
			VendorName:     paymentCreateFlags.vendor,
			Amount:         paymentCreateFlags.amount,
			Program:        paymentCreateFlags.program,
			DueDate:        due,
			RequesterEmail: paymentCreateFlags.requester,
			Notes:          paymentCreateFlags.notes,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(pr)
			return nil
		}
		fmt.Printf("Created payment request %s\n", pr.ID)
		return nil
	},
}

var paymentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a payment request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		req := &api.UpdatePaymentRequest{}
		flags := cmd.Flags()
		if flags.Changed("vendor") {
			req.VendorName = &paymentCreateFlags.vendor
		}
		if flags.Changed("amount") {
			req.Amount = &paymentCreateFlags.amount
		}
		if flags.Changed("program") {
			req.Program = &paymentCreateFlags.program
		}
		if flags.Changed("due") {
			due, err := time.Parse("2006-01-02", paymentCreateFlags.due)
			if err != nil {
				return fmt.Errorf("parsing --due (want YYYY-MM-DD): %w", err)
			}
			req.DueDate = &due
		}
		if flags.Changed("requester") {
			req.RequesterEmail = &paymentCreateFlags.requester
		}
		if flags.Changed("notes") {
			req.Notes = &paymentCreateFlags.notes
		}
		if flags.Changed("status") {
			status := model.PaymentStatus(paymentCreateFlags.status)
			req.Status = &status
		}

		pr, err := client.UpdatePaymentRequest(cmd.Context(), args[0], req)
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("payment request %s not found", args[0])
			}
			return err
		}
		if jsonOutput {
			printJSON(pr)
			return nil
		}
		fmt.Printf("Updated payment request %s\n", pr.ID)
		return nil
	},
}

var paymentsSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Move a payment request to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		status := model.PaymentStatus(args[1])
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q (want staging, approved, processing, paid, or cancelled)", args[1])
		}

		pr, err := client.UpdatePaymentRequest(cmd.Context(), args[0], &api.UpdatePaymentRequest{Status: &status})
		if err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("payment request %s not found", args[0])
			}
			return err
		}
		if jsonOutput {
			printJSON(pr)
			return nil
		}
		fmt.Printf("Payment request %s is now %s\n", pr.ID, pr.Status)
		return nil
	},
}

var paymentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a payment request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(cmd.Context()); err != nil {
			return err
		}

		if err := client.DeletePaymentRequest(cmd.Context(), args[0]); err != nil {
			if api.IsNotFound(err) {
				return fmt.Errorf("payment request %s not found", args[0])
			}
			return err
		}
		fmt.Printf("Deleted payment request %s\n", args[0])
		return nil
	},
}

func init() {
	paymentsListCmd.Flags().StringVar(&paymentListFlags.search, "search", "", "free-text search over vendor, program, and requester email")
	paymentsListCmd.Flags().StringVar(&paymentListFlags.status, "status", listquery.StatusAll, "filter by status (staging, approved, processing, paid, cancelled, all)")
	paymentsListCmd.Flags().StringVar(&paymentListFlags.sort, "sort", "", "sort key (vendor, program, status, amount, due_date, created_at)")
	paymentsListCmd.Flags().BoolVar(&paymentListFlags.desc, "desc", false, "sort descending")
	paymentsListCmd.Flags().IntVar(&paymentListFlags.page, "page", 1, "page number")
	paymentsListCmd.Flags().IntVar(&paymentListFlags.pageSize, "page-size", listquery.DefaultPageSize, "records per page")

	for _, c := range []*cobra.Command{paymentsCreateCmd, paymentsUpdateCmd} {
		c.Flags().StringVar(&paymentCreateFlags.vendor, "vendor", "", "vendor name")
		c.Flags().Float64Var(&paymentCreateFlags.amount, "amount", 0, "amount")
		c.Flags().StringVar(&paymentCreateFlags.program, "program", "", "program name")
		c.Flags().StringVar(&paymentCreateFlags.due, "due", "", "due date (YYYY-MM-DD)")
		c.Flags().StringVar(&paymentCreateFlags.requester, "requester", "", "requester email")
		c.Flags().StringVar(&paymentCreateFlags.notes, "notes", "", "free-form notes")
	}
	paymentsUpdateCmd.Flags().StringVar(&paymentCreateFlags.status, "status", "", "payment status")
	_ = paymentsCreateCmd.MarkFlagRequired("vendor")
	_ = paymentsCreateCmd.MarkFlagRequired("amount")
	_ = paymentsCreateCmd.MarkFlagRequired("program")
	_ = paymentsCreateCmd.MarkFlagRequired("due")
	_ = paymentsCreateCmd.MarkFlagRequired("requester")

	paymentsCmd.AddCommand(paymentsListCmd)
	paymentsCmd.AddCommand(paymentsShowCmd)
	paymentsCmd.AddCommand(paymentsCreateCmd)
	paymentsCmd.AddCommand(paymentsUpdateCmd)
	paymentsCmd.AddCommand(paymentsSetStatusCmd)
	paymentsCmd.AddCommand(paymentsDeleteCmd)
}
