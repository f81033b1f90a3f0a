package invoice

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends exported invoices as attachments.
type Mailer struct {
	From   string
	Sender Sender
}

// NewMailer returns a Mailer that delivers through the given SMTP server.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		From:   from,
		Sender: gomail.NewDialer(host, port, username, password),
	}
}

// Message composes the mail for inv with attachment as the document.
// An empty subject falls back to "Invoice <number>".
func (m *Mailer) Message(inv model.Invoice, to, subject, attachment string) *gomail.Message {
	if strings.TrimSpace(subject) == "" {
		subject = "Invoice " + inv.Number
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", messageBody(inv))
	if attachment != "" {
		msg.Attach(attachment, gomail.Rename(filepath.Base(attachment)))
	}
	return msg
}

// Send composes and delivers the invoice mail.
func (m *Mailer) Send(inv model.Invoice, to, subject, attachment string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("sending invoice %s: no recipient", inv.Number)
	}
	if strings.TrimSpace(m.From) == "" {
		return fmt.Errorf("sending invoice %s: no sender address configured", inv.Number)
	}
	if err := m.Sender.DialAndSend(m.Message(inv, to, subject, attachment)); err != nil {
		return fmt.Errorf("sending invoice %s: %w", inv.Number, err)
	}
	return nil
}

func messageBody(inv model.Invoice) string {
	var b strings.Builder
	if inv.ClientName != "" {
		fmt.Fprintf(&b, "Hello %s,\n\n", inv.ClientName)
	} else {
		b.WriteString("Hello,\n\n")
	}
	fmt.Fprintf(&b, "please find attached invoice %s.\n\n", inv.Number)
	fmt.Fprintf(&b, "Total due: %s\n", earnings.FormatAmount(inv.Currency, Total(inv)))
	fmt.Fprintf(&b, "Due date:  %s\n", inv.DueDate.Format(DateLayout))
	if inv.Issuer != "" {
		fmt.Fprintf(&b, "\nRegards,\n%s\n", inv.Issuer)
	}
	return b.String()
}
