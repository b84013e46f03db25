package services

import (
	"time"

	"student_manager/models"
	"student_manager/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StudentInput describes the fields of a student on create and update
type StudentInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (in *StudentInput) Normalize() {
	in.Name = utils.SanitizeString(in.Name)
	in.Phone = utils.SanitizeString(in.Phone)
	in.Email = utils.SanitizeString(in.Email)
	in.Address = utils.SanitizeString(in.Address)
}

// StudentGroup is one group a student is enrolled in, with attendance statistics for it
type StudentGroup struct {
	Group      models.Group      `json:"group"`
	JoinedAt   time.Time         `json:"joined_at"`
	Attendance AttendanceSummary `json:"attendance"`
}

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

func (s *StudentService) Create(in StudentInput) (*models.Student, error) {
	in.Normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	student := models.Student{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
	}
	if err := s.db.Create(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) Update(id uint, in StudentInput) (*models.Student, error) {
	in.Normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	student, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	student.Name = in.Name
	student.Phone = in.Phone
	student.Email = in.Email
	student.Address = in.Address
	if err := s.db.Save(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes the student; enrollments, payments, attendance and notifications go with it.
func (s *StudentService) Delete(id uint) error {
	res := s.db.Delete(&models.Student{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("student", id)
	}
	logrus.WithField("student_id", id).Info("Student deleted")
	return nil
}

func (s *StudentService) Get(id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, id).Error; err != nil {
		return nil, translateNotFound(err, "student", id)
	}
	return &student, nil
}

// List returns students newest first; a non-empty search matches name, phone or email.
func (s *StudentService) List(search string) ([]models.Student, error) {
	query := s.db.Model(&models.Student{})
	if search = utils.SanitizeString(search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	var students []models.Student
	if err := query.Order("created_at DESC").Order("id DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Groups lists the groups of a student together with the attendance summary in each.
func (s *StudentService) Groups(studentID uint) ([]StudentGroup, error) {
	if err := requireRow(s.db, &models.Student{}, "student", studentID); err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := s.db.Preload("Group").Preload("Group.Teacher").
		Where("student_id = ?", studentID).
		Order("joined_at").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	aggregator := NewAttendanceAggregator(s.db)
	out := make([]StudentGroup, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Group == nil {
			continue
		}
		summary, err := aggregator.Summarize(studentID, e.GroupID)
		if err != nil {
			return nil, err
		}
		out = append(out, StudentGroup{Group: *e.Group, JoinedAt: e.JoinedAt, Attendance: summary})
	}
	return out, nil
}
