package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/invoice"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

var (
	invoiceOut     string
	invoiceDueDays int
	invoiceNotes   string
	invoiceTerms   string
	invoiceTo      string
	invoiceSubject string
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create an invoice from the sheet",
}

var invoiceExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the invoice as an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE:  runInvoiceExport,
}

var invoicePreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the invoice in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runInvoicePreview,
}

var invoiceSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Export the invoice and mail it as an attachment",
	Args:  cobra.NoArgs,
	RunE:  runInvoiceSend,
}

func init() {
	for _, c := range []*cobra.Command{invoiceExportCmd, invoicePreviewCmd, invoiceSendCmd} {
		c.Flags().IntVar(&invoiceDueDays, "due-days", 0, "Days until payment is due (default from config)")
		c.Flags().StringVar(&invoiceNotes, "notes", "", "Notes printed below the totals")
		c.Flags().StringVar(&invoiceTerms, "terms", "", "Payment terms printed below the notes")
	}
	for _, c := range []*cobra.Command{invoiceExportCmd, invoiceSendCmd} {
		c.Flags().StringVar(&invoiceOut, "out", "", "Output directory (default from config)")
	}
	invoiceSendCmd.Flags().StringVar(&invoiceTo, "to", "", "Recipient address")
	invoiceSendCmd.Flags().StringVar(&invoiceSubject, "subject", "", "Mail subject (default \"Invoice <number>\")")
	_ = invoiceSendCmd.MarkFlagRequired("to")

	invoiceCmd.AddCommand(invoiceExportCmd)
	invoiceCmd.AddCommand(invoicePreviewCmd)
	invoiceCmd.AddCommand(invoiceSendCmd)
}

// invoiceOptions merges command flags over the configured invoice settings.
func invoiceOptions(cmd *cobra.Command) invoice.Options {
	opts := invoice.Options{
		Currency: cfg.Invoice.Currency,
		DueDays:  cfg.Invoice.DueDays,
		Notes:    cfg.Invoice.Notes,
		Terms:    cfg.Invoice.Terms,
	}
	if cmd.Flags().Changed("due-days") && invoiceDueDays > 0 {
		opts.DueDays = invoiceDueDays
	}
	if cmd.Flags().Changed("notes") {
		opts.Notes = invoiceNotes
	}
	if cmd.Flags().Changed("terms") {
		opts.Terms = invoiceTerms
	}
	return opts
}

// buildInvoice evaluates the sheet and assembles the invoice for it.
func buildInvoice(cmd *cobra.Command) model.Invoice {
	s := loadSheet()
	snap := earnings.Evaluate(&s)
	if len(s.Expenses) == 0 && snap.Hours == 0 && snap.HourlyRate == 0 {
		fail(exitUsage, errors.New("the sheet is empty; nothing to invoice"))
	}
	return invoice.Build(s, snap, invoiceOptions(cmd), time.Now())
}

func outputDir() string {
	if invoiceOut != "" {
		return invoiceOut
	}
	return cfg.Invoice.OutputDir
}

func exportInvoice(ctx context.Context, inv model.Invoice) string {
	exporter := invoice.NewExporter(invoice.XLSX{}, logger)
	path, err := exporter.SaveFile(ctx, inv, outputDir())
	if err != nil {
		fail(exitFailure, err)
	}
	return path
}

func runInvoiceExport(cmd *cobra.Command, args []string) error {
	inv := buildInvoice(cmd)
	path := exportInvoice(cmd.Context(), inv)
	fmt.Fprintf(cmd.OutOrStdout(), "Invoice %s written to %s (total %s)\n",
		inv.Number, path, earnings.FormatAmount(inv.Currency, invoice.Total(inv)))
	return nil
}

func runInvoicePreview(cmd *cobra.Command, args []string) error {
	inv := buildInvoice(cmd)
	fmt.Fprintln(cmd.OutOrStdout(), renderInvoice(inv))
	return nil
}

func runInvoiceSend(cmd *cobra.Command, args []string) error {
	m := cfg.Mail
	if m.SMTPHost == "" {
		fail(exitUsage, errors.New("no SMTP server configured; set mail.smtp_host or HRC_SMTP_HOST"))
	}

	inv := buildInvoice(cmd)
	path := exportInvoice(cmd.Context(), inv)

	mailer := invoice.NewMailer(m.SMTPHost, m.SMTPPort, m.Username, m.Password, m.From)
	if err := mailer.Send(inv, invoiceTo, invoiceSubject, path); err != nil {
		fail(exitFailure, err)
	}
	logger.Info("invoice mailed", "invoice", inv.Number, "to", invoiceTo, "host", m.SMTPHost)
	fmt.Fprintf(cmd.OutOrStdout(), "Invoice %s sent to %s.\n", inv.Number, invoiceTo)
	return nil
}

// renderInvoice lays out inv for the terminal.
func renderInvoice(inv model.Invoice) string {
	money := func(v float64) string { return earnings.FormatAmount(inv.Currency, v) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", styleBold.Render("# "+inv.Number), styleDim.Render(inv.IssueDate.Format(invoice.DateLayout)))
	fmt.Fprintf(&b, "%s %s\n", styleDim.Render("From:"), orDash(inv.Issuer))
	fmt.Fprintf(&b, "%s   %s\n", styleDim.Render("To:"), orDash(inv.ClientName))
	for _, line := range strings.Split(inv.ClientAddress, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&b, "      %s\n", line)
		}
	}
	fmt.Fprintf(&b, "%s  %s\n\n", styleDim.Render("Due:"), inv.DueDate.Format(invoice.DateLayout))

	rows := make([][]string, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		rows = append(rows, []string{l.Description, invoice.LineQuantity(l), money(l.Rate), money(invoice.LineAmount(l))})
	}
	b.WriteString(renderTable([]string{"DESCRIPTION", "QTY", "RATE", "AMOUNT"}, rows))
	fmt.Fprintf(&b, "\n%s %s\n", styleDim.Render("Subtotal:"), money(invoice.Subtotal(inv)))
	fmt.Fprintf(&b, "%s      %s\n", styleDim.Render("Tax:"), money(invoice.Tax(inv)))
	fmt.Fprintf(&b, "%s    %s", styleHeader.Render("TOTAL:"), styleGreen.Bold(true).Render(money(invoice.Total(inv))))
	if inv.Notes != "" {
		fmt.Fprintf(&b, "\n\n%s\n%s", styleDim.Render("Notes:"), inv.Notes)
	}
	if inv.Terms != "" {
		fmt.Fprintf(&b, "\n\n%s\n%s", styleDim.Render("Terms:"), inv.Terms)
	}
	return renderBox("Invoice", b.String())
}

func orDash(s string) string {
	if s == "" {
		return styleDim.Render("-")
	}
	return s
}
