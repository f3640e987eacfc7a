// Package notify sends the outstanding-balance digest mail to the finance
// contact: total liabilities plus the reminders whose alert window is open.
package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"github.com/jamesonvoice/biomedicaldashboard/internal/ledger"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reminders"
)

// ErrMailerDisabled is returned when no SMTP host is configured.
var ErrMailerDisabled = errors.New("mailer is not configured")

// Mailer sends digest mails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     []string
	log    *logrus.Entry
}

// NewMailer creates a Mailer. An empty host yields a disabled mailer whose
// Send methods return ErrMailerDisabled.
func NewMailer(host string, port int, username, password, from string, to []string) *Mailer {
	m := &Mailer{
		from: from,
		to:   to,
		log:  logrus.WithField("component", "notify"),
	}
	if host == "" {
		return m
	}
	m.dialer = gomail.NewDialer(host, port, username, password)
	return m
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// SendReminderDigest mails the liability summary and open reminder alerts.
func (m *Mailer) SendReminderDigest(summary ledger.Summary, alerts []reminders.Alert) error {
	if m.dialer == nil {
		return ErrMailerDisabled
	}
	if len(m.to) == 0 {
		return errors.New("no digest recipients configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", fmt.Sprintf("Equipment payment digest: %s outstanding, %d reminders due",
		money(summary.TotalOutstanding), len(alerts)))
	msg.SetBody("text/html", digestBody(summary, alerts))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	m.log.WithFields(logrus.Fields{
		"recipients": len(m.to),
		"alerts":     len(alerts),
	}).Info("digest sent")
	return nil
}

func digestBody(summary ledger.Summary, alerts []reminders.Alert) string {
	var b strings.Builder
	b.WriteString("<h2>Outstanding balances</h2>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Purchases: %s across %d items</li>",
		money(summary.PurchaseOutstanding), summary.PurchaseOutstandingCount)
	fmt.Fprintf(&b, "<li>Servicing: %s across %d items</li>",
		money(summary.ServiceOutstanding), summary.ServiceOutstandingCount)
	fmt.Fprintf(&b, "<li><strong>Total: %s</strong></li>", money(summary.TotalOutstanding))
	b.WriteString("</ul>")

	if len(alerts) == 0 {
		b.WriteString("<p>No payment reminders are due.</p>")
		return b.String()
	}

	b.WriteString("<h2>Payment reminders</h2>")
	b.WriteString("<table border=\"1\" cellpadding=\"4\">")
	b.WriteString("<tr><th>Reminder</th><th>Provider</th><th>Amount</th><th>Scheduled</th><th>Status</th></tr>")
	for _, a := range alerts {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			a.Reminder.Name,
			a.Reminder.Provider,
			money(a.Reminder.AmountToPay),
			a.Reminder.ScheduledDate.Format("2006-01-02"),
			describeUrgency(a.Urgency),
		)
	}
	b.WriteString("</table>")
	return b.String()
}

func describeUrgency(u reminders.Urgency) string {
	switch {
	case u.IsOverdue:
		return fmt.Sprintf("overdue by %d days", -u.DaysUntil)
	case u.IsDueToday:
		return "due today"
	default:
		return fmt.Sprintf("due in %d days", u.DaysUntil)
	}
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
