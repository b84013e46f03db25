package services

import (
	"errors"
	"fmt"
	"strconv"

	"student_manager/models"
	"student_manager/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSettingsValidation indicates a rejected settings value or an unknown key
var ErrSettingsValidation = errors.New("settings validation error")

// NotificationSettings is the typed view of the notification_settings table.
// It is loaded fresh at the start of every detector run.
type NotificationSettings struct {
	PaymentReminderDays        int  `json:"payment_reminder_days"`
	ShowNotificationsOnStartup bool `json:"show_notifications_on_startup"`
	PaymentAlertEnabled        bool `json:"payment_alert_enabled"`
	AttendanceMilestoneEnabled bool `json:"attendance_milestone_enabled"`
	AttendanceMilestoneCount   int  `json:"attendance_milestone_count"`
}

// DefaultSettings mirrors models.DefaultNotificationSettings
func DefaultSettings() NotificationSettings {
	return NotificationSettings{
		PaymentReminderDays:        7,
		ShowNotificationsOnStartup: true,
		PaymentAlertEnabled:        true,
		AttendanceMilestoneEnabled: true,
		AttendanceMilestoneCount:   4,
	}
}

// UpdateSettingsInput describes the settings that can be changed; nil fields are left alone
type UpdateSettingsInput struct {
	PaymentReminderDays        *int  `json:"payment_reminder_days"`
	ShowNotificationsOnStartup *bool `json:"show_notifications_on_startup"`
	PaymentAlertEnabled        *bool `json:"payment_alert_enabled"`
	AttendanceMilestoneEnabled *bool `json:"attendance_milestone_enabled"`
	AttendanceMilestoneCount   *int  `json:"attendance_milestone_count"`
}

// SettingsService manages persistence for the notification settings
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SeedDefaults inserts the default rows that are missing; existing values are kept.
func (s *SettingsService) SeedDefaults() error {
	rows := make([]models.NotificationSetting, len(models.DefaultNotificationSettings))
	copy(rows, models.DefaultNotificationSettings)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoNothing: true,
	}).Create(&rows).Error
}

// Raw returns the stored key-value pairs
func (s *SettingsService) Raw() (map[string]string, error) {
	var rows []models.NotificationSetting
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.SettingKey] = r.SettingValue
	}
	return out, nil
}

// Load reads the settings. Missing or unusable values fall back to their defaults.
func (s *SettingsService) Load() (NotificationSettings, error) {
	raw, err := s.Raw()
	if err != nil {
		return NotificationSettings{}, err
	}

	settings := DefaultSettings()
	for key, value := range raw {
		if err := applySetting(&settings, key, value); err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"value": value,
			}).WithError(err).Warn("Ignoring notification setting, using default")
		}
	}
	return settings, nil
}

// Set validates and stores one key-value pair
func (s *SettingsService) Set(key, value string) error {
	probe := DefaultSettings()
	if err := applySetting(&probe, key, value); err != nil {
		return err
	}
	return s.save(key, canonicalValue(probe, key))
}

// Update stores every non-nil field of in and returns the resulting settings
func (s *SettingsService) Update(in UpdateSettingsInput) (NotificationSettings, error) {
	pairs := make([][2]string, 0, 5)
	if in.PaymentReminderDays != nil {
		pairs = append(pairs, [2]string{models.SettingPaymentReminderDays, strconv.Itoa(*in.PaymentReminderDays)})
	}
	if in.ShowNotificationsOnStartup != nil {
		pairs = append(pairs, [2]string{models.SettingShowNotificationsOnStartup, utils.FormatBool(*in.ShowNotificationsOnStartup)})
	}
	if in.PaymentAlertEnabled != nil {
		pairs = append(pairs, [2]string{models.SettingPaymentAlertEnabled, utils.FormatBool(*in.PaymentAlertEnabled)})
	}
	if in.AttendanceMilestoneEnabled != nil {
		pairs = append(pairs, [2]string{models.SettingAttendanceMilestoneEnabled, utils.FormatBool(*in.AttendanceMilestoneEnabled)})
	}
	if in.AttendanceMilestoneCount != nil {
		pairs = append(pairs, [2]string{models.SettingAttendanceMilestoneCount, strconv.Itoa(*in.AttendanceMilestoneCount)})
	}

	// validate everything before the first write
	probe := DefaultSettings()
	for _, p := range pairs {
		if err := applySetting(&probe, p[0], p[1]); err != nil {
			return NotificationSettings{}, err
		}
	}
	for _, p := range pairs {
		if err := s.save(p[0], p[1]); err != nil {
			return NotificationSettings{}, err
		}
	}
	return s.Load()
}

func (s *SettingsService) save(key, value string) error {
	row := models.NotificationSetting{SettingKey: key, SettingValue: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
	}).Create(&row).Error
}

func applySetting(settings *NotificationSettings, key, value string) error {
	switch key {
	case models.SettingPaymentReminderDays:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", ErrSettingsValidation, key)
		}
		settings.PaymentReminderDays = n
	case models.SettingAttendanceMilestoneCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", ErrSettingsValidation, key)
		}
		settings.AttendanceMilestoneCount = n
	case models.SettingShowNotificationsOnStartup, models.SettingPaymentAlertEnabled, models.SettingAttendanceMilestoneEnabled:
		b, err := utils.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean", ErrSettingsValidation, key)
		}
		switch key {
		case models.SettingShowNotificationsOnStartup:
			settings.ShowNotificationsOnStartup = b
		case models.SettingPaymentAlertEnabled:
			settings.PaymentAlertEnabled = b
		default:
			settings.AttendanceMilestoneEnabled = b
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", ErrSettingsValidation, key)
	}
	return nil
}

func canonicalValue(settings NotificationSettings, key string) string {
	switch key {
	case models.SettingPaymentReminderDays:
		return strconv.Itoa(settings.PaymentReminderDays)
	case models.SettingAttendanceMilestoneCount:
		return strconv.Itoa(settings.AttendanceMilestoneCount)
	case models.SettingShowNotificationsOnStartup:
		return utils.FormatBool(settings.ShowNotificationsOnStartup)
	case models.SettingPaymentAlertEnabled:
		return utils.FormatBool(settings.PaymentAlertEnabled)
	default:
		return utils.FormatBool(settings.AttendanceMilestoneEnabled)
	}
}
