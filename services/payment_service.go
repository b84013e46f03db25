package services

import (
	"time"

	"student_manager/models"
	"student_manager/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentInput struct {
	StudentID   uint      `json:"student_id" validate:"required"`
	GroupID     uint      `json:"group_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	PaymentDate time.Time `json:"payment_date" validate:"required"`
	Notes       string    `json:"notes"`
}

// PaymentFilter narrows List; zero values are ignored
type PaymentFilter struct {
	StudentID uint
	GroupID   uint
	From      time.Time
	To        time.Time
}

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Create stores a payment. The pair does not need to be enrolled.
// Overdue reminders are cleared by the caller, see NotificationScheduler.RecordPayment.
func (s *PaymentService) Create(in PaymentInput) (*models.Payment, error) {
	in.Notes = utils.SanitizeString(in.Notes)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := requireRow(s.db, &models.Student{}, "student", in.StudentID); err != nil {
		return nil, err
	}
	if err := requireRow(s.db, &models.Group{}, "group", in.GroupID); err != nil {
		return nil, err
	}

	payment := models.Payment{
		StudentID:   in.StudentID,
		GroupID:     in.GroupID,
		Amount:      in.Amount,
		PaymentDate: datatypes.Date(utils.DateOnly(in.PaymentDate)),
		Notes:       in.Notes,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) Delete(id uint) error {
	res := s.db.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("payment", id)
	}
	return nil
}

// List returns payments newest first with student and group loaded
func (s *PaymentService) List(f PaymentFilter) ([]models.Payment, error) {
	query := s.db.Preload("Student").Preload("Group")
	if f.StudentID != 0 {
		query = query.Where("student_id = ?", f.StudentID)
	}
	if f.GroupID != 0 {
		query = query.Where("group_id = ?", f.GroupID)
	}
	if !f.From.IsZero() {
		query = query.Where("payment_date >= ?", datatypes.Date(utils.DateOnly(f.From)))
	}
	if !f.To.IsZero() {
		query = query.Where("payment_date <= ?", datatypes.Date(utils.DateOnly(f.To)))
	}

	var payments []models.Payment
	if err := query.Order("payment_date DESC").Order("id DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// TotalFor sums what a student has paid for a group
func (s *PaymentService) TotalFor(studentID, groupID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("student_id = ? AND group_id = ?", studentID, groupID).
		Scan(&total).Error
	return total, err
}
