package services

import (
	"fmt"
	"time"

	"student_manager/models"
	"student_manager/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OverdueResult reports what one detector run changed
type OverdueResult struct {
	Skipped bool  `json:"skipped"`
	Removed int64 `json:"removed"`
	Created int   `json:"created"`
}

type overdueCandidate struct {
	StudentID   uint
	StudentName string
	GroupID     uint
	GroupName   string
	Fee         float64
}

// PaymentOverdueDetector keeps one unread payment reminder per enrollment that has
// no payment inside the reminder window.
type PaymentOverdueDetector struct {
	db       *gorm.DB
	settings *SettingsService
	now      func() time.Time
}

func NewPaymentOverdueDetector(db *gorm.DB) *PaymentOverdueDetector {
	return &PaymentOverdueDetector{
		db:       db,
		settings: NewSettingsService(db),
		now:      time.Now,
	}
}

// Cutoff is the earliest payment date that still counts as recent
func (d *PaymentOverdueDetector) Cutoff(days int) time.Time {
	return utils.DateOnly(d.now()).AddDate(0, 0, -days)
}

// Run removes reminders that have since been paid, then creates the missing ones.
func (d *PaymentOverdueDetector) Run() (OverdueResult, error) {
	settings, err := d.settings.Load()
	if err != nil {
		return OverdueResult{}, err
	}
	if !settings.PaymentAlertEnabled {
		return OverdueResult{Skipped: true}, nil
	}

	log := logrus.WithFields(logrus.Fields{
		"run_id":   uuid.NewString(),
		"detector": "payment_overdue",
	})
	days := settings.PaymentReminderDays
	cutoff := datatypes.Date(d.Cutoff(days))

	var result OverdueResult

	// cleanup has to come first so a paid pair never blocks a fresh reminder
	res := d.db.Where("kind = ?", models.NotificationPaymentOverdue).
		Where(`EXISTS (SELECT 1 FROM payments p
			WHERE p.student_id = notifications.student_id
			AND p.group_id = notifications.group_id
			AND p.payment_date >= ?)`, cutoff).
		Delete(&models.Notification{})
	if res.Error != nil {
		return result, res.Error
	}
	result.Removed = res.RowsAffected

	var candidates []overdueCandidate
	err = d.db.Raw(`SELECT e.student_id, s.name AS student_name, e.group_id, g.name AS group_name, g.fee
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN "groups" g ON g.id = e.group_id
		WHERE NOT EXISTS (
			SELECT 1 FROM payments p
			WHERE p.student_id = e.student_id AND p.group_id = e.group_id AND p.payment_date >= ?)
		AND NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.student_id = e.student_id AND n.group_id = e.group_id
			AND n.kind = ? AND n.is_read = ?)
		ORDER BY e.id`, cutoff, models.NotificationPaymentOverdue, false).
		Scan(&candidates).Error
	if err != nil {
		return result, err
	}

	for _, c := range candidates {
		groupID := c.GroupID
		notification := models.Notification{
			StudentID: c.StudentID,
			GroupID:   &groupID,
			Kind:      models.NotificationPaymentOverdue,
			Title:     fmt.Sprintf("Payment reminder - %s", c.GroupName),
			Message: fmt.Sprintf("%s has not paid the %s fee (%.2f) for more than %d days",
				c.StudentName, c.GroupName, c.Fee, days),
			Priority: models.PriorityHigh,
		}
		if err := d.db.Create(&notification).Error; err != nil {
			return result, err
		}
		result.Created++
	}

	log.WithFields(logrus.Fields{
		"removed": result.Removed,
		"created": result.Created,
		"days":    days,
	}).Info("Payment overdue check finished")
	return result, nil
}

// ClearForPair deletes every payment reminder of the pair, read or not
func (d *PaymentOverdueDetector) ClearForPair(studentID, groupID uint) (int64, error) {
	res := d.db.Where("student_id = ? AND group_id = ? AND kind = ?", studentID, groupID, models.NotificationPaymentOverdue).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
