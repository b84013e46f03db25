package services

import (
	"errors"
	"time"

	"student_manager/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db, now: time.Now}
}

// Enroll links a student to a group. A second enrollment of the same pair fails with ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(studentID, groupID uint) (*models.Enrollment, error) {
	if err := requireRow(s.db, &models.Student{}, "student", studentID); err != nil {
		return nil, err
	}
	if err := requireRow(s.db, &models.Group{}, "group", groupID); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.Enrollment{}).
		Where("student_id = ? AND group_id = ?", studentID, groupID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := models.Enrollment{
		StudentID: studentID,
		GroupID:   groupID,
		JoinedAt:  s.now().UTC(),
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"student_id": studentID,
		"group_id":   groupID,
	}).Info("Student enrolled")
	return &enrollment, nil
}

// Unenroll removes one enrollment by id. Payments and attendance of the pair are kept.
func (s *EnrollmentService) Unenroll(id uint) error {
	res := s.db.Delete(&models.Enrollment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("enrollment", id)
	}
	return nil
}

// List returns enrollments with student and group loaded. Zero ids mean no filter.
func (s *EnrollmentService) List(studentID, groupID uint) ([]models.Enrollment, error) {
	query := s.db.Preload("Student").Preload("Group")
	if studentID != 0 {
		query = query.Where("student_id = ?", studentID)
	}
	if groupID != 0 {
		query = query.Where("group_id = ?", groupID)
	}

	var enrollments []models.Enrollment
	if err := query.Order("joined_at DESC").Order("id DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}
