package services

import (
	"time"

	"student_manager/models"
	"student_manager/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceInput struct {
	StudentID uint                    `json:"student_id" validate:"required"`
	GroupID   uint                    `json:"group_id" validate:"required"`
	Date      time.Time               `json:"attendance_date" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent excused"`
	Notes     string                  `json:"notes"`
}

type AttendanceFilter struct {
	StudentID uint
	GroupID   uint
	Date      time.Time
}

type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// Mark records the attendance of a student for one day. Marking the same day again
// replaces status and notes of the existing row.
func (s *AttendanceService) Mark(in AttendanceInput) (*models.Attendance, error) {
	in.Notes = utils.SanitizeString(in.Notes)
	if in.Status == "" {
		in.Status = models.AttendancePresent
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := requireRow(s.db, &models.Student{}, "student", in.StudentID); err != nil {
		return nil, err
	}
	if err := requireRow(s.db, &models.Group{}, "group", in.GroupID); err != nil {
		return nil, err
	}

	day := datatypes.Date(utils.DateOnly(in.Date))
	record := models.Attendance{
		StudentID:      in.StudentID,
		GroupID:        in.GroupID,
		AttendanceDate: day,
		Status:         in.Status,
		Notes:          in.Notes,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "group_id"}, {Name: "attendance_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "notes", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	// the upserted row keeps its original id
	var stored models.Attendance
	if err := s.db.Where("student_id = ? AND group_id = ? AND attendance_date = ?", in.StudentID, in.GroupID, day).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *AttendanceService) Delete(id uint) error {
	res := s.db.Delete(&models.Attendance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("attendance record", id)
	}
	return nil
}

// List returns attendance rows newest day first
func (s *AttendanceService) List(f AttendanceFilter) ([]models.Attendance, error) {
	query := s.db.Preload("Student").Preload("Group")
	if f.StudentID != 0 {
		query = query.Where("student_id = ?", f.StudentID)
	}
	if f.GroupID != 0 {
		query = query.Where("group_id = ?", f.GroupID)
	}
	if !f.Date.IsZero() {
		query = query.Where("attendance_date = ?", datatypes.Date(utils.DateOnly(f.Date)))
	}

	var records []models.Attendance
	if err := query.Order("attendance_date DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
