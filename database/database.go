package database

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"student_manager/config"
	"student_manager/models"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the configured store file, migrates it and seeds default settings.
func Connect() {
	var gormLogger logger.Interface
	if config.AppConfig.IsDevelopment() {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := Open(config.AppConfig.DBPath, gormLogger)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	DB = db
	log.Println("Database opened successfully")

	if !config.AppConfig.SkipMigrate {
		if err := AutoMigrate(DB); err != nil {
			log.Fatal("Auto migration failed:", err)
		}
		log.Println("Database migration completed successfully")
	}

	if err := SeedSettings(DB); err != nil {
		log.Fatal("Seeding notification settings failed:", err)
	}
}

// Open opens (creating if absent) the sqlite file at path with foreign keys enforced.
// A nil logger keeps gorm silent.
func Open(path string, gormLogger logger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting database instance")
	}
	// single writer; the foreign_keys pragma is per connection
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		return nil, errors.Wrap(err, "pinging database")
	}
	return db, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// AutoMigrate creates or updates every table of the schema
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Group{},
		&models.Enrollment{},
		&models.Payment{},
		&models.Attendance{},
		&models.Notification{},
		&models.NotificationSetting{},
	)
	return errors.Wrap(err, "migrating database")
}

// SeedSettings inserts the default notification settings that are not present yet.
// Existing values are never overwritten.
func SeedSettings(db *gorm.DB) error {
	defaults := make([]models.NotificationSetting, len(models.DefaultNotificationSettings))
	copy(defaults, models.DefaultNotificationSettings)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoNothing: true,
	}).Create(&defaults).Error
	return errors.Wrap(err, "seeding notification settings")
}

// Close closes the database connection
func Close() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Println("Error getting database instance:", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Println("Error closing database connection:", err)
		return
	}

	log.Println("Database connection closed")
}
