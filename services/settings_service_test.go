package services

import (
	"testing"

	"student_manager/models"
	"student_manager/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_SeedDefaultsIsIdempotent(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewSettingsService(db)

	testutil.SetSetting(t, db, models.SettingPaymentReminderDays, "14")
	require.NoError(t, svc.SeedDefaults())
	require.NoError(t, svc.SeedDefaults())

	assert.Equal(t, int64(len(models.DefaultNotificationSettings)), testutil.Count(t, db, &models.NotificationSetting{}, ""))

	raw, err := svc.Raw()
	require.NoError(t, err)
	assert.Equal(t, "14", raw[models.SettingPaymentReminderDays], "existing value kept")
	assert.Equal(t, "4", raw[models.SettingAttendanceMilestoneCount])
}

func TestSettingsService_Load(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewSettingsService(db)

	s, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	testutil.SetSetting(t, db, models.SettingPaymentReminderDays, "abc")
	testutil.SetSetting(t, db, models.SettingShowNotificationsOnStartup, "0")
	s, err = svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, s.PaymentReminderDays)
	assert.False(t, s.ShowNotificationsOnStartup)

	// rows that went missing read as defaults
	require.NoError(t, db.Where("1 = 1").Delete(&models.NotificationSetting{}).Error)
	s, err = svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsService_Set(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewSettingsService(db)

	tests := []struct {
		name    string
		key     string
		value   string
		stored  string
		wantErr bool
	}{
		{name: "reminder days", key: models.SettingPaymentReminderDays, value: "10", stored: "10"},
		{name: "zero reminder days", key: models.SettingPaymentReminderDays, value: "0", stored: "0"},
		{name: "negative reminder days", key: models.SettingPaymentReminderDays, value: "-1", wantErr: true},
		{name: "milestone count", key: models.SettingAttendanceMilestoneCount, value: "5", stored: "5"},
		{name: "zero milestone count", key: models.SettingAttendanceMilestoneCount, value: "0", wantErr: true},
		{name: "bool spelled out", key: models.SettingPaymentAlertEnabled, value: "false", stored: "0"},
		{name: "bool as digit", key: models.SettingAttendanceMilestoneEnabled, value: "1", stored: "1"},
		{name: "bad bool", key: models.SettingShowNotificationsOnStartup, value: "maybe", wantErr: true},
		{name: "unknown key", key: "theme", value: "dark", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Set(tc.key, tc.value)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrSettingsValidation)
				return
			}
			require.NoError(t, err)
			raw, err := svc.Raw()
			require.NoError(t, err)
			assert.Equal(t, tc.stored, raw[tc.key])
		})
	}
}

func TestSettingsService_Update(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewSettingsService(db)

	days, off := 21, false
	s, err := svc.Update(UpdateSettingsInput{PaymentReminderDays: &days, PaymentAlertEnabled: &off})
	require.NoError(t, err)
	assert.Equal(t, 21, s.PaymentReminderDays)
	assert.False(t, s.PaymentAlertEnabled)
	assert.True(t, s.AttendanceMilestoneEnabled, "untouched")

	// nothing is written when one field is invalid
	newDays, badCount := 3, 0
	_, err = svc.Update(UpdateSettingsInput{PaymentReminderDays: &newDays, AttendanceMilestoneCount: &badCount})
	assert.ErrorIs(t, err, ErrSettingsValidation)

	s, err = svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 21, s.PaymentReminderDays)
	assert.Equal(t, 4, s.AttendanceMilestoneCount)
}
