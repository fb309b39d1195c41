package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/crmbase/crmdesk/internal/listquery"
	"github.com/crmbase/crmdesk/internal/model"
	"github.com/crmbase/crmdesk/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// truncate shortens s to at most max characters, counting runes so that
// multibyte names are never cut mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func printLeadTable(lead *model.Lead) {
	fmt.Printf("ID:       %s\n", lead.ID)
	fmt.Printf("Name:     %s\n", lead.Name)
	fmt.Printf("Email:    %s\n", lead.Email)
	if lead.Phone != "" {
		fmt.Printf("Phone:    %s\n", lead.Phone)
	}
	if lead.Company != "" {
		fmt.Printf("Company:  %s\n", lead.Company)
	}
	fmt.Printf("Status:   %s\n", ui.RenderLeadStatus(lead.Status))
	if lead.Notes != "" {
		fmt.Printf("Notes:    %s\n", lead.Notes)
	}
	fmt.Printf("Created:  %s\n", lead.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:  %s\n", lead.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printLeadListTable(page listquery.Result[model.Lead]) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS\tCREATED")
	for _, l := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID,
			truncate(l.Name, 30),
			l.Email,
			truncate(l.Company, 24),
			ui.RenderLeadStatus(l.Status),
			l.CreatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()
	fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("page %d of %d (%d leads)",
		page.Page, page.TotalPages, page.Total)))
}

func printPaymentTable(pr *model.PaymentRequest) {
	fmt.Printf("ID:         %s\n", pr.ID)
	fmt.Printf("Vendor:     %s\n", pr.VendorName)
	fmt.Printf("Amount:     %.2f\n", pr.Amount)
	fmt.Printf("Program:    %s\n", pr.Program)
	fmt.Printf("Due:        %s\n", pr.DueDate.Format("2006-01-02"))
	fmt.Printf("Requester:  %s\n", pr.RequesterEmail)
	fmt.Printf("Status:     %s\n", ui.RenderPaymentStatus(pr.Status))
	if pr.Notes != "" {
		fmt.Printf("Notes:      %s\n", pr.Notes)
	}
	if pr.AsanaTaskID != "" {
		fmt.Printf("Asana:      %s\n", pr.AsanaTaskID)
	}
	if pr.QBOInvoiceID != "" {
		fmt.Printf("QuickBooks: %s\n", pr.QBOInvoiceID)
	}
	if pr.DriveFolderID != "" {
		fmt.Printf("Drive:      %s\n", pr.DriveFolderID)
	}
	fmt.Printf("Created:    %s\n", pr.CreatedAt.Format("2006-01-02 15:04:05"))
}

func printPaymentListTable(page listquery.Result[model.PaymentRequest]) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVENDOR\tAMOUNT\tPROGRAM\tDUE\tSTATUS")
	for _, p := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.VendorName, 30),
			p.Amount,
			truncate(p.Program, 24),
			p.DueDate.Format("2006-01-02"),
			ui.RenderPaymentStatus(p.Status),
		)
	}
	w.Flush()
	fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("page %d of %d (%d requests)",
		page.Page, page.TotalPages, page.Total)))
}

func printIntegrationListTable(items []model.Integration) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tLAST SYNC\tERROR")
	for _, it := range items {
		lastSync := "-"
		if it.LastSyncAt != nil {
			lastSync = it.LastSyncAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			it.Name,
			ui.RenderIntegrationStatus(it.Status),
			lastSync,
			it.ErrorMessage,
		)
	}
	w.Flush()
}
