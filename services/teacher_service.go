package services

import (
	"student_manager/models"
	"student_manager/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TeacherInput struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	Specialization string `json:"specialization"`
}

func (in *TeacherInput) Normalize() {
	in.Name = utils.SanitizeString(in.Name)
	in.Phone = utils.SanitizeString(in.Phone)
	in.Email = utils.SanitizeString(in.Email)
	in.Specialization = utils.SanitizeString(in.Specialization)
}

// TeacherWithLoad is a teacher plus the number of groups assigned to them
type TeacherWithLoad struct {
	models.Teacher
	GroupCount int64 `json:"group_count"`
}

type TeacherService struct {
	db *gorm.DB
}

func NewTeacherService(db *gorm.DB) *TeacherService {
	return &TeacherService{db: db}
}

func (s *TeacherService) Create(in TeacherInput) (*models.Teacher, error) {
	in.Normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	teacher := models.Teacher{
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		Specialization: in.Specialization,
	}
	if err := s.db.Create(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Update changes the teacher in place; groups follow automatically since they reference the id.
func (s *TeacherService) Update(id uint, in TeacherInput) (*models.Teacher, error) {
	in.Normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	teacher, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	teacher.Name = in.Name
	teacher.Phone = in.Phone
	teacher.Email = in.Email
	teacher.Specialization = in.Specialization
	if err := s.db.Save(teacher).Error; err != nil {
		return nil, err
	}
	return teacher, nil
}

// Delete removes the teacher. Their groups stay and become unassigned.
func (s *TeacherService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Teacher{}, "teacher", id); err != nil {
			return err
		}
		if err := tx.Model(&models.Group{}).Where("teacher_id = ?", id).
			Update("teacher_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Teacher{}, id).Error; err != nil {
			return err
		}
		logrus.WithField("teacher_id", id).Info("Teacher deleted")
		return nil
	})
}

func (s *TeacherService) Get(id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := s.db.First(&teacher, id).Error; err != nil {
		return nil, translateNotFound(err, "teacher", id)
	}
	return &teacher, nil
}

// List returns all teachers with how many groups each one teaches.
func (s *TeacherService) List() ([]TeacherWithLoad, error) {
	var teachers []TeacherWithLoad
	err := s.db.Model(&models.Teacher{}).
		Select(`teachers.*, (SELECT COUNT(*) FROM "groups" g WHERE g.teacher_id = teachers.id) AS group_count`).
		Order("teachers.name").
		Scan(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

// Groups returns the groups assigned to the teacher
func (s *TeacherService) Groups(teacherID uint) ([]models.Group, error) {
	if err := requireRow(s.db, &models.Teacher{}, "teacher", teacherID); err != nil {
		return nil, err
	}
	var groups []models.Group
	if err := s.db.Where("teacher_id = ?", teacherID).Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
