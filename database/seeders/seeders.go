package seeders

import (
	"time"

	"student_manager/models"
	"student_manager/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAll fills an empty store with demo teachers, groups, students, payments and attendance.
// A store that already has students is left untouched.
func SeedAll(db *gorm.DB) error {
	logrus.Info("Starting database seeding...")

	var count int64
	if err := db.Model(&models.Student{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Students already seeded, skipping...")
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		teachers, err := seedTeachers(tx)
		if err != nil {
			return err
		}
		groups, err := seedGroups(tx, teachers)
		if err != nil {
			return err
		}
		students, err := seedStudents(tx)
		if err != nil {
			return err
		}
		return seedActivity(tx, students, groups)
	})
	if err != nil {
		return err
	}

	logrus.Info("Database seeding completed successfully!")
	return nil
}

func seedTeachers(tx *gorm.DB) ([]models.Teacher, error) {
	teachers := []models.Teacher{
		{Name: "Samira Haddad", Phone: "0550 112 233", Email: "samira.haddad@example.com", Specialization: "Mathematics"},
		{Name: "Karim Benali", Phone: "0661 445 566", Email: "karim.benali@example.com", Specialization: "Physics"},
		{Name: "Lina Mansour", Phone: "0770 778 899", Email: "lina.mansour@example.com", Specialization: "English"},
	}
	if err := tx.Create(&teachers).Error; err != nil {
		return nil, err
	}
	logrus.WithField("count", len(teachers)).Info("Teachers seeded successfully")
	return teachers, nil
}

func seedGroups(tx *gorm.DB, teachers []models.Teacher) ([]models.Group, error) {
	groups := []models.Group{
		{Name: "Algebra A", Subject: "Mathematics", TeacherID: &teachers[0].ID, Schedule: "Sun, Tue 16:00", Fee: 3000},
		{Name: "Mechanics", Subject: "Physics", TeacherID: &teachers[1].ID, Schedule: "Mon, Wed 17:30", Fee: 3500},
		{Name: "Conversation B1", Subject: "English", TeacherID: &teachers[2].ID, Schedule: "Sat 10:00", Fee: 2500},
	}
	if err := tx.Create(&groups).Error; err != nil {
		return nil, err
	}
	logrus.WithField("count", len(groups)).Info("Groups seeded successfully")
	return groups, nil
}

func seedStudents(tx *gorm.DB) ([]models.Student, error) {
	students := []models.Student{
		{Name: "Yasmine Cherif", Phone: "0555 010 101", Email: "yasmine@example.com", Address: "12 Rue Didouche"},
		{Name: "Omar Belkacem", Phone: "0555 020 202", Address: "4 Cite des Oliviers"},
		{Name: "Nour Saidi", Phone: "0555 030 303", Email: "nour.saidi@example.com"},
		{Name: "Adam Rahmani", Phone: "0555 040 404"},
	}
	if err := tx.Create(&students).Error; err != nil {
		return nil, err
	}
	logrus.WithField("count", len(students)).Info("Students seeded successfully")
	return students, nil
}

// seedActivity enrolls everyone and records a few weeks of payments and attendance
func seedActivity(tx *gorm.DB, students []models.Student, groups []models.Group) error {
	today := utils.Today()
	now := time.Now().UTC()

	pairs := [][2]int{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {2, 2}, {3, 1}}
	for _, p := range pairs {
		s, g := students[p[0]], groups[p[1]]
		enrollment := models.Enrollment{StudentID: s.ID, GroupID: g.ID, JoinedAt: now.AddDate(0, 0, -30)}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}
	}

	// one recent payment, one stale one, the rest unpaid
	payments := []models.Payment{
		{StudentID: students[0].ID, GroupID: groups[0].ID, Amount: groups[0].Fee, PaymentDate: datatypes.Date(today.AddDate(0, 0, -2)), Notes: "cash"},
		{StudentID: students[1].ID, GroupID: groups[1].ID, Amount: groups[1].Fee, PaymentDate: datatypes.Date(today.AddDate(0, 0, -25))},
	}
	if err := tx.Create(&payments).Error; err != nil {
		return err
	}

	var attendance []models.Attendance
	for week := 1; week <= 3; week++ {
		day := datatypes.Date(today.AddDate(0, 0, -7*week))
		attendance = append(attendance,
			models.Attendance{StudentID: students[0].ID, GroupID: groups[0].ID, AttendanceDate: day, Status: models.AttendancePresent},
			models.Attendance{StudentID: students[1].ID, GroupID: groups[0].ID, AttendanceDate: day, Status: models.AttendancePresent},
		)
	}
	attendance = append(attendance,
		models.Attendance{StudentID: students[1].ID, GroupID: groups[1].ID, AttendanceDate: datatypes.Date(today.AddDate(0, 0, -5)), Status: models.AttendanceAbsent},
		models.Attendance{StudentID: students[3].ID, GroupID: groups[1].ID, AttendanceDate: datatypes.Date(today.AddDate(0, 0, -5)), Status: models.AttendanceExcused, Notes: "sick"},
	)
	if err := tx.Create(&attendance).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"enrollments": len(pairs),
		"payments":    len(payments),
		"attendance":  len(attendance),
	}).Info("Activity seeded successfully")
	return nil
}
