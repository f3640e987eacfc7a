package reminders

import (
	"testing"
	"time"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reminder(sched time.Time, leadDays int) models.PaymentReminder {
	return models.PaymentReminder{
		ID:            primitive.NewObjectID(),
		SourceID:      primitive.NewObjectID().Hex(),
		SourceType:    models.SourceEquipment,
		AmountToPay:   1000,
		ScheduledDate: sched,
		LeadDays:      leadDays,
		Status:        models.ReminderPending,
	}
}

func TestResolveUrgency_LeadWindow(t *testing.T) {
	now := time.Date(2024, time.June, 7, 9, 0, 0, 0, time.UTC)
	rem := reminder(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), 5)

	u := ResolveUrgency(rem, now)
	if u.DaysUntil != 3 {
		t.Errorf("DaysUntil = %d, want 3", u.DaysUntil)
	}
	if u.IsOverdue || u.IsDueToday {
		t.Errorf("unexpected overdue/today flags: %+v", u)
	}
	if !u.IsAlertActive {
		t.Error("IsAlertActive = false, want true (3 <= 5)")
	}
}

func TestResolveUrgency_DueTodayIgnoresTimeOfDay(t *testing.T) {
	sched := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	for _, hour := range []int{0, 8, 23} {
		now := time.Date(2024, time.June, 10, hour, 59, 0, 0, time.UTC)
		u := ResolveUrgency(reminder(sched, 3), now)
		if !u.IsDueToday {
			t.Errorf("hour %d: IsDueToday = false, want true", hour)
		}
		if u.IsOverdue {
			t.Errorf("hour %d: IsOverdue = true, want false", hour)
		}
		if u.DaysUntil != 0 {
			t.Errorf("hour %d: DaysUntil = %d, want 0", hour, u.DaysUntil)
		}
	}
}

func TestResolveUrgency_Overdue(t *testing.T) {
	now := time.Date(2024, time.June, 12, 1, 0, 0, 0, time.UTC)
	u := ResolveUrgency(reminder(time.Date(2024, time.June, 10, 22, 0, 0, 0, time.UTC), 3), now)
	if u.DaysUntil != -2 {
		t.Errorf("DaysUntil = %d, want -2", u.DaysUntil)
	}
	if !u.IsOverdue {
		t.Error("IsOverdue = false, want true")
	}
	if !u.IsAlertActive {
		t.Error("overdue reminders stay alert-active")
	}
}

func TestResolveUrgency_AlertIndependentOfDue(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	u := ResolveUrgency(reminder(now.AddDate(0, 0, 10), 14), now)
	if u.IsOverdue || u.IsDueToday {
		t.Errorf("unexpected flags: %+v", u)
	}
	if !u.IsAlertActive {
		t.Error("IsAlertActive = false, want true (10 <= 14)")
	}
}

func TestActiveAlerts_FiltersAndOrders(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	overdue := reminder(now.AddDate(0, 0, -4), 3)
	soon := reminder(now.AddDate(0, 0, 2), 5)
	far := reminder(now.AddDate(0, 0, 20), 3)
	paid := reminder(now.AddDate(0, 0, -1), 3)
	paid.Status = models.ReminderPaid

	alerts := ActiveAlerts([]models.PaymentReminder{soon, far, paid, overdue}, now)
	if len(alerts) != 2 {
		t.Fatalf("len(alerts) = %d, want 2", len(alerts))
	}
	if !alerts[0].Urgency.IsOverdue {
		t.Error("expected the overdue reminder first")
	}
	if alerts[1].Urgency.DaysUntil != 2 {
		t.Errorf("second alert DaysUntil = %d, want 2", alerts[1].Urgency.DaysUntil)
	}
}

func TestSettleLinkedReminders(t *testing.T) {
	settledEq := models.Equipment{ID: primitive.NewObjectID(), RemainingAmount: 0}
	owingEq := models.Equipment{ID: primitive.NewObjectID(), RemainingAmount: 500}
	settledLog := models.ServiceLog{ID: primitive.NewObjectID(), RemainingAmount: 0}

	linked := reminder(time.Now(), 3)
	linked.SourceID = settledEq.ID.Hex()
	stillOwing := reminder(time.Now(), 3)
	stillOwing.SourceID = owingEq.ID.Hex()
	serviceLinked := reminder(time.Now(), 3)
	serviceLinked.SourceType = models.SourceService
	serviceLinked.SourceID = settledLog.ID.Hex()
	dangling := reminder(time.Now(), 3) // source deleted
	cancelled := reminder(time.Now(), 3)
	cancelled.SourceID = settledEq.ID.Hex()
	cancelled.Status = models.ReminderCancelled

	settled := SettleLinkedReminders(
		[]models.PaymentReminder{linked, stillOwing, serviceLinked, dangling, cancelled},
		[]models.Equipment{settledEq, owingEq},
		[]models.ServiceLog{settledLog},
	)

	if len(settled) != 2 {
		t.Fatalf("len(settled) = %d, want 2", len(settled))
	}
	for _, r := range settled {
		if r.Status != models.ReminderPaid {
			t.Errorf("settled reminder status = %s, want Paid", r.Status)
		}
	}
}
