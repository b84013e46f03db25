package services

import (
	"time"

	"student_manager/models"

	"gorm.io/gorm"
)

// NotificationFilter narrows List
type NotificationFilter struct {
	UnreadOnly bool
	StudentID  uint
	Kind       models.NotificationKind
	Limit      int
}

type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, now: time.Now}
}

// List returns unread notifications first, newest first within each
func (s *NotificationService) List(f NotificationFilter) ([]models.Notification, error) {
	query := s.db.Preload("Student").Preload("Group")
	if f.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if f.StudentID != 0 {
		query = query.Where("student_id = ?", f.StudentID)
	}
	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var notifications []models.Notification
	if err := query.Order("is_read ASC").Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) Get(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.Preload("Student").Preload("Group").First(&n, id).Error; err != nil {
		return nil, translateNotFound(err, "notification", id)
	}
	return &n, nil
}

// MarkRead flags one notification as read. read_at keeps the time of the first call.
func (s *NotificationService) MarkRead(id uint) error {
	if err := requireRow(s.db, &models.Notification{}, "notification", id); err != nil {
		return err
	}
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": s.now().UTC()}).Error
}

// MarkAllRead flags every unread notification as read and reports how many changed
func (s *NotificationService) MarkAllRead() (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "read_at": s.now().UTC()})
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Delete(id uint) error {
	res := s.db.Delete(&models.Notification{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("notification", id)
	}
	return nil
}

func (s *NotificationService) UnreadCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
