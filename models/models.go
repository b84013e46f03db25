package models

import (
	"time"

	"gorm.io/datatypes"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendanceStatus is the recorded outcome of one attendance day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

type NotificationKind string

const (
	NotificationPaymentOverdue      NotificationKind = "payment_overdue"
	NotificationAttendanceMilestone NotificationKind = "attendance_milestone"
)

type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Student model
type Student struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	Phone   string `json:"phone" gorm:"size:50"`
	Email   string `json:"email" gorm:"size:255"`
	Address string `json:"address" gorm:"size:500"`
}

// Teacher model
type Teacher struct {
	BaseModel
	Name           string `json:"name" gorm:"size:255;not null"`
	Phone          string `json:"phone" gorm:"size:50"`
	Email          string `json:"email" gorm:"size:255"`
	Specialization string `json:"specialization" gorm:"size:255"`
}

// Group model. A group points at its teacher by id so renaming a teacher needs no propagation.
type Group struct {
	BaseModel
	Name      string  `json:"name" gorm:"size:255;not null"`
	Subject   string  `json:"subject" gorm:"size:255"`
	TeacherID *uint   `json:"teacher_id" gorm:"index"`
	Schedule  string  `json:"schedule" gorm:"size:255"`
	Fee       float64 `json:"fee" gorm:"not null;default:0;check:chk_groups_fee,fee >= 0"`

	// Relationships
	Teacher *Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:SET NULL"`
}

// Enrollment links one student to one group
type Enrollment struct {
	BaseModel
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollments_pair"`
	GroupID   uint      `json:"group_id" gorm:"not null;uniqueIndex:idx_enrollments_pair"`
	JoinedAt  time.Time `json:"joined_at" gorm:"not null"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Group   *Group   `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// Payment model. The (student, group) pair is not required to have an Enrollment row.
type Payment struct {
	BaseModel
	StudentID   uint           `json:"student_id" gorm:"not null;index:idx_payments_pair"`
	GroupID     uint           `json:"group_id" gorm:"not null;index:idx_payments_pair"`
	Amount      float64        `json:"amount" gorm:"not null;check:chk_payments_amount,amount > 0"`
	PaymentDate datatypes.Date `json:"payment_date" gorm:"not null;index"`
	Notes       string         `json:"notes" gorm:"type:text"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Group   *Group   `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// Attendance is unique per (student, group, day); re-marking a day replaces the row.
type Attendance struct {
	BaseModel
	StudentID      uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_day"`
	GroupID        uint             `json:"group_id" gorm:"not null;uniqueIndex:idx_attendance_day"`
	AttendanceDate datatypes.Date   `json:"attendance_date" gorm:"not null;uniqueIndex:idx_attendance_day"`
	Status         AttendanceStatus `json:"status" gorm:"size:20;not null;default:'present';check:chk_attendance_status,status IN ('present','absent','excused')"`
	Notes          string           `json:"notes" gorm:"type:text"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Group   *Group   `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string { return "attendance" }

// Notification model
type Notification struct {
	BaseModel
	StudentID uint                 `json:"student_id" gorm:"not null;index"`
	GroupID   *uint                `json:"group_id" gorm:"index"`
	Kind      NotificationKind     `json:"kind" gorm:"size:50;not null;index"`
	Title     string               `json:"title" gorm:"size:255;not null"`
	Message   string               `json:"message" gorm:"type:text;not null"`
	Read      bool                 `json:"read" gorm:"column:is_read;not null;default:false"`
	ReadAt    *time.Time           `json:"read_at"`
	Priority  NotificationPriority `json:"priority" gorm:"size:20;not null;default:'normal'"`
	// MilestoneCount is the present-count a milestone notification was issued for; 0 for other kinds.
	MilestoneCount int `json:"milestone_count" gorm:"not null;default:0"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Group   *Group   `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// NotificationSetting is one key-value row of the notification configuration
type NotificationSetting struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SettingKey   string `json:"setting_key" gorm:"size:100;not null;uniqueIndex"`
	SettingValue string `json:"setting_value" gorm:"size:255;not null"`
}

// Recognized notification setting keys
const (
	SettingPaymentReminderDays        = "payment_reminder_days"
	SettingShowNotificationsOnStartup = "show_notifications_on_startup"
	SettingPaymentAlertEnabled        = "payment_alert_enabled"
	SettingAttendanceMilestoneEnabled = "attendance_milestone_enabled"
	SettingAttendanceMilestoneCount   = "attendance_milestone_count"
)

// DefaultNotificationSettings lists the seeded key-value rows in insertion order.
var DefaultNotificationSettings = []NotificationSetting{
	{SettingKey: SettingPaymentReminderDays, SettingValue: "7"},
	{SettingKey: SettingShowNotificationsOnStartup, SettingValue: "1"},
	{SettingKey: SettingPaymentAlertEnabled, SettingValue: "1"},
	{SettingKey: SettingAttendanceMilestoneEnabled, SettingValue: "1"},
	{SettingKey: SettingAttendanceMilestoneCount, SettingValue: "4"},
}
