package services

import (
	"student_manager/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StartupReport is what the front end needs after the startup check
type StartupReport struct {
	Overdue     OverdueResult `json:"overdue"`
	Milestones  int           `json:"milestones"`
	UnreadCount int64         `json:"unread_count"`
	// ShowPrompt tells the front end to surface the unread notifications
	ShowPrompt bool `json:"show_prompt"`
}

// NotificationScheduler runs the detectors at the points where their inputs change:
// on startup, after a payment, after a present mark and on request.
type NotificationScheduler struct {
	settings      *SettingsService
	payments      *PaymentService
	attendance    *AttendanceService
	notifications *NotificationService
	overdue       *PaymentOverdueDetector
	milestones    *AttendanceMilestoneDetector
}

func NewNotificationScheduler(db *gorm.DB) *NotificationScheduler {
	return &NotificationScheduler{
		settings:      NewSettingsService(db),
		payments:      NewPaymentService(db),
		attendance:    NewAttendanceService(db),
		notifications: NewNotificationService(db),
		overdue:       NewPaymentOverdueDetector(db),
		milestones:    NewAttendanceMilestoneDetector(db),
	}
}

// CheckOnStartup runs both detectors and reports the unread notifications
func (ns *NotificationScheduler) CheckOnStartup() (StartupReport, error) {
	report, err := ns.Refresh()
	if err != nil {
		return report, err
	}

	settings, err := ns.settings.Load()
	if err != nil {
		return report, err
	}
	report.ShowPrompt = settings.ShowNotificationsOnStartup && report.UnreadCount > 0
	return report, nil
}

// Refresh runs both detectors on demand
func (ns *NotificationScheduler) Refresh() (StartupReport, error) {
	var report StartupReport

	overdue, err := ns.overdue.Run()
	if err != nil {
		return report, err
	}
	report.Overdue = overdue

	created, err := ns.milestones.Sweep()
	if err != nil {
		return report, err
	}
	report.Milestones = created

	report.UnreadCount, err = ns.notifications.UnreadCount()
	return report, err
}

// RecordPayment stores a payment, drops the reminders of its pair and re-runs the overdue check.
// The payment stays stored when the notification work fails.
func (ns *NotificationScheduler) RecordPayment(in PaymentInput) (*models.Payment, error) {
	payment, err := ns.payments.Create(in)
	if err != nil {
		return nil, err
	}

	cleared, err := ns.overdue.ClearForPair(payment.StudentID, payment.GroupID)
	if err != nil {
		return payment, err
	}
	if _, err := ns.overdue.Run(); err != nil {
		return payment, err
	}

	logrus.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"student_id": payment.StudentID,
		"group_id":   payment.GroupID,
		"cleared":    cleared,
	}).Info("Payment recorded")
	return payment, nil
}

// MarkAttendance upserts the day and checks the milestone when the student was present.
// The returned notification is nil unless a milestone was reached.
func (ns *NotificationScheduler) MarkAttendance(in AttendanceInput) (*models.Attendance, *models.Notification, error) {
	record, err := ns.attendance.Mark(in)
	if err != nil {
		return nil, nil, err
	}
	if record.Status != models.AttendancePresent {
		return record, nil, nil
	}

	notification, err := ns.milestones.Check(record.StudentID, record.GroupID)
	if err != nil {
		return record, nil, err
	}
	return record, notification, nil
}
