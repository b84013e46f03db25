package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"student_manager/database"
	"student_manager/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PrepareDB opens a migrated and seeded store in a fresh temp directory
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("PrepareDB() open failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("PrepareDB() migrate failed: %v", err)
	}
	if err := database.SeedSettings(db); err != nil {
		t.Fatalf("PrepareDB() seed failed: %v", err)
	}
	return db
}

func CreateStudent(t *testing.T, db *gorm.DB, name string) models.Student {
	t.Helper()
	student := models.Student{Name: name, Phone: "0555 000 000"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

func CreateTeacher(t *testing.T, db *gorm.DB, name string) models.Teacher {
	t.Helper()
	teacher := models.Teacher{Name: name}
	if err := db.Create(&teacher).Error; err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

func CreateGroup(t *testing.T, db *gorm.DB, name string, fee float64, teacherID *uint) models.Group {
	t.Helper()
	group := models.Group{Name: name, Subject: "Test", Fee: fee, TeacherID: teacherID}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	return group
}

func Enroll(t *testing.T, db *gorm.DB, studentID, groupID uint, joinedAt ...time.Time) models.Enrollment {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(joinedAt) > 0 {
		tstamp = joinedAt[0].UTC()
	}
	enrollment := models.Enrollment{StudentID: studentID, GroupID: groupID, JoinedAt: tstamp}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
	return enrollment
}

// AddPayment stores a payment dated on the calendar day of date
func AddPayment(t *testing.T, db *gorm.DB, studentID, groupID uint, amount float64, date time.Time) models.Payment {
	t.Helper()
	y, m, d := date.Date()
	payment := models.Payment{
		StudentID:   studentID,
		GroupID:     groupID,
		Amount:      amount,
		PaymentDate: datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("AddPayment() failed: %v", err)
	}
	return payment
}

func SetSetting(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()
	if err := db.Model(&models.NotificationSetting{}).
		Where("setting_key = ?", key).
		Update("setting_value", value).Error; err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}
}

func Count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	return n
}
