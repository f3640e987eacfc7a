// Package reminders resolves the urgency of payment reminders and handles
// the Pending -> Paid transition when a linked balance settles.
package reminders

import (
	"math"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
)

// Urgency is the resolved state of one reminder at a point in time.
type Urgency struct {
	DaysUntil     int  `json:"days_until"`
	IsOverdue     bool `json:"is_overdue"`
	IsDueToday    bool `json:"is_due_today"`
	IsAlertActive bool `json:"is_alert_active"`
}

// atMidnight truncates a time to midnight in its own location.
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveUrgency computes the day distance to the scheduled date. Both dates
// are truncated to midnight first, so time of day never shifts the count.
// The alert window is independent of overdue/today: a reminder ten days out
// with a fourteen-day lead is alert-active.
func ResolveUrgency(rem models.PaymentReminder, now time.Time) Urgency {
	sched := atMidnight(rem.ScheduledDate)
	today := atMidnight(now)
	days := int(math.Round(sched.Sub(today).Hours() / 24))
	return Urgency{
		DaysUntil:     days,
		IsOverdue:     days < 0,
		IsDueToday:    days == 0,
		IsAlertActive: days <= rem.LeadDays,
	}
}

// Alert pairs a pending reminder with its resolved urgency.
type Alert struct {
	Reminder models.PaymentReminder `json:"reminder"`
	Urgency  Urgency                `json:"urgency"`
}

// ActiveAlerts returns the pending reminders whose alert window is open,
// overdue ones first, then by day distance.
func ActiveAlerts(rems []models.PaymentReminder, now time.Time) []Alert {
	var alerts []Alert
	for _, r := range rems {
		if r.Status != models.ReminderPending {
			continue
		}
		u := ResolveUrgency(r, now)
		if u.IsAlertActive {
			alerts = append(alerts, Alert{Reminder: r, Urgency: u})
		}
	}
	for i := 1; i < len(alerts); i++ {
		for j := i; j > 0 && alerts[j].Urgency.DaysUntil < alerts[j-1].Urgency.DaysUntil; j-- {
			alerts[j], alerts[j-1] = alerts[j-1], alerts[j]
		}
	}
	return alerts
}

// SettleLinkedReminders returns the pending reminders whose source item has
// a fully settled balance, marked Paid. Reminders pointing at a deleted
// source are left untouched rather than failing the pass.
func SettleLinkedReminders(rems []models.PaymentReminder, equipment []models.Equipment, logs []models.ServiceLog) []models.PaymentReminder {
	settledEquipment := make(map[string]bool, len(equipment))
	for _, e := range equipment {
		settledEquipment[e.ID.Hex()] = e.RemainingAmount <= 0
	}
	settledLogs := make(map[string]bool, len(logs))
	for _, l := range logs {
		settledLogs[l.ID.Hex()] = l.RemainingAmount <= 0
	}

	var settled []models.PaymentReminder
	for _, r := range rems {
		if r.Status != models.ReminderPending {
			continue
		}
		var done, known bool
		switch r.SourceType {
		case models.SourceEquipment:
			done, known = lookup(settledEquipment, r.SourceID)
		case models.SourceService:
			done, known = lookup(settledLogs, r.SourceID)
		}
		if known && done {
			r.Status = models.ReminderPaid
			settled = append(settled, r)
		}
	}
	return settled
}

func lookup(m map[string]bool, key string) (value, ok bool) {
	value, ok = m[key]
	return value, ok
}
