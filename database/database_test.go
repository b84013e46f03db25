package database

import (
	"path/filepath"
	"testing"

	"student_manager/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTemp(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "store.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on", dsn("a.db"))
	assert.Equal(t, "file:a.db?cache=shared&_foreign_keys=on", dsn("file:a.db?cache=shared"))
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	db := openTemp(t)

	var on int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&on).Error)
	assert.Equal(t, 1, on)

	err := db.Create(&models.Enrollment{StudentID: 404, GroupID: 404}).Error
	assert.Error(t, err)
}

func TestAutoMigrate_IsRepeatable(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"students", "teachers", "groups", "enrollments", "payments", "attendance", "notifications", "notification_settings"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestSeedSettings(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, SeedSettings(db))

	require.NoError(t, db.Model(&models.NotificationSetting{}).
		Where("setting_key = ?", models.SettingAttendanceMilestoneCount).
		Update("setting_value", "6").Error)
	require.NoError(t, SeedSettings(db))

	var rows []models.NotificationSetting
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, len(models.DefaultNotificationSettings))
	for i, row := range rows {
		assert.Equal(t, models.DefaultNotificationSettings[i].SettingKey, row.SettingKey)
	}

	var count models.NotificationSetting
	require.NoError(t, db.Where("setting_key = ?", models.SettingAttendanceMilestoneCount).First(&count).Error)
	assert.Equal(t, "6", count.SettingValue)
}

func TestCheckConstraints(t *testing.T) {
	db := openTemp(t)

	assert.Error(t, db.Create(&models.Group{Name: "Bad fee", Fee: -5}).Error)

	student := models.Student{Name: "Yasmine"}
	require.NoError(t, db.Create(&student).Error)
	group := models.Group{Name: "Algebra"}
	require.NoError(t, db.Create(&group).Error)
	assert.Error(t, db.Create(&models.Payment{StudentID: student.ID, GroupID: group.ID, Amount: 0}).Error)
	assert.Error(t, db.Create(&models.Attendance{StudentID: student.ID, GroupID: group.ID, Status: "late"}).Error)
}
