package services

import (
	"fmt"

	"student_manager/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AttendanceMilestoneDetector notifies when a student's present count in a group
// reaches a multiple of the configured milestone.
type AttendanceMilestoneDetector struct {
	db         *gorm.DB
	settings   *SettingsService
	aggregator *AttendanceAggregator
}

func NewAttendanceMilestoneDetector(db *gorm.DB) *AttendanceMilestoneDetector {
	return &AttendanceMilestoneDetector{
		db:         db,
		settings:   NewSettingsService(db),
		aggregator: NewAttendanceAggregator(db),
	}
}

// Check looks at one pair and returns the created notification, or nil when nothing is due.
func (d *AttendanceMilestoneDetector) Check(studentID, groupID uint) (*models.Notification, error) {
	settings, err := d.settings.Load()
	if err != nil {
		return nil, err
	}
	if !settings.AttendanceMilestoneEnabled {
		return nil, nil
	}
	return d.check(studentID, groupID, settings.AttendanceMilestoneCount)
}

func (d *AttendanceMilestoneDetector) check(studentID, groupID uint, milestone int) (*models.Notification, error) {
	if milestone < 1 {
		milestone = DefaultSettings().AttendanceMilestoneCount
	}

	total, err := d.aggregator.PresentCount(studentID, groupID)
	if err != nil {
		return nil, err
	}
	if total == 0 || total%int64(milestone) != 0 {
		return nil, nil
	}

	var existing int64
	if err := d.db.Model(&models.Notification{}).
		Where("student_id = ? AND group_id = ? AND kind = ? AND milestone_count = ?",
			studentID, groupID, models.NotificationAttendanceMilestone, total).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, nil
	}

	var student models.Student
	if err := d.db.First(&student, studentID).Error; err != nil {
		return nil, translateNotFound(err, "student", studentID)
	}
	var group models.Group
	if err := d.db.First(&group, groupID).Error; err != nil {
		return nil, translateNotFound(err, "group", groupID)
	}

	gid := groupID
	notification := models.Notification{
		StudentID:      studentID,
		GroupID:        &gid,
		Kind:           models.NotificationAttendanceMilestone,
		Title:          fmt.Sprintf("Attendance milestone - %s", group.Name),
		Message:        fmt.Sprintf("Congratulations! %s has attended %d sessions in %s", student.Name, total, group.Name),
		Priority:       models.PriorityNormal,
		MilestoneCount: int(total),
	}
	if err := d.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"student_id": studentID,
		"group_id":   groupID,
		"count":      total,
	}).Info("Attendance milestone reached")
	return &notification, nil
}

// Sweep checks every enrolled pair and returns how many notifications it created
func (d *AttendanceMilestoneDetector) Sweep() (int, error) {
	settings, err := d.settings.Load()
	if err != nil {
		return 0, err
	}
	if !settings.AttendanceMilestoneEnabled {
		return 0, nil
	}

	var pairs []struct {
		StudentID uint
		GroupID   uint
	}
	if err := d.db.Model(&models.Enrollment{}).Select("student_id, group_id").Order("id").Scan(&pairs).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, p := range pairs {
		n, err := d.check(p.StudentID, p.GroupID, settings.AttendanceMilestoneCount)
		if err != nil {
			return created, err
		}
		if n != nil {
			created++
		}
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   uuid.NewString(),
		"detector": "attendance_milestone",
		"pairs":    len(pairs),
		"created":  created,
	}).Info("Attendance milestone sweep finished")
	return created, nil
}
