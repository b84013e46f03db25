package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an operation targets a missing or deleted id.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyEnrolled is returned for a duplicate (student, group) enrollment.
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this group")
)

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// translateNotFound maps gorm's missing-row error onto ErrNotFound for entity.
func translateNotFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return err
}

// requireRow fails with ErrNotFound when no row of model has the given id.
func requireRow(db *gorm.DB, model interface{}, entity string, id uint) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound(entity, id)
	}
	return nil
}
