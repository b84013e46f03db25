package services

import (
	"student_manager/models"

	"gorm.io/gorm"
)

// AttendanceSummary holds the attendance statistics of one student in one group.
// Absent counts both absences and excused absences.
type AttendanceSummary struct {
	Present    int64   `json:"present"`
	Absent     int64   `json:"absent"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AttendanceAggregator computes attendance statistics straight from the attendance table
type AttendanceAggregator struct {
	db *gorm.DB
}

func NewAttendanceAggregator(db *gorm.DB) *AttendanceAggregator {
	return &AttendanceAggregator{db: db}
}

// Summarize counts the attendance rows of the pair. No rows gives a zero percentage.
func (a *AttendanceAggregator) Summarize(studentID, groupID uint) (AttendanceSummary, error) {
	var row struct {
		Present int64
		Total   int64
	}
	err := a.db.Model(&models.Attendance{}).
		Select("COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS present, COUNT(*) AS total", models.AttendancePresent).
		Where("student_id = ? AND group_id = ?", studentID, groupID).
		Scan(&row).Error
	if err != nil {
		return AttendanceSummary{}, err
	}

	summary := AttendanceSummary{
		Present: row.Present,
		Absent:  row.Total - row.Present,
		Total:   row.Total,
	}
	if summary.Total > 0 {
		summary.Percentage = float64(summary.Present) / float64(summary.Total) * 100
	}
	return summary, nil
}

// PresentCount is the number of present days of the pair
func (a *AttendanceAggregator) PresentCount(studentID, groupID uint) (int64, error) {
	var count int64
	err := a.db.Model(&models.Attendance{}).
		Where("student_id = ? AND group_id = ? AND status = ?", studentID, groupID, models.AttendancePresent).
		Count(&count).Error
	return count, err
}
