package services

import (
	"fmt"
	"strings"

	"student_manager/models"

	"gorm.io/gorm"
)

// Report names accepted by ReportService.Table
const (
	ReportStudents   = "students"
	ReportGroups     = "groups"
	ReportPayments   = "payments"
	ReportAttendance = "attendance"
)

var ReportNames = []string{ReportStudents, ReportGroups, ReportPayments, ReportAttendance}

type StudentReportRow struct {
	StudentID  uint     `json:"student_id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	GroupCount int64    `json:"group_count"`
	Groups     []string `json:"groups"`
}

type StudentsReport struct {
	Total int64              `json:"total"`
	Rows  []StudentReportRow `json:"rows"`
}

type GroupReportRow struct {
	GroupID     uint    `json:"group_id"`
	Name        string  `json:"name"`
	Subject     string  `json:"subject"`
	Teacher     string  `json:"teacher"`
	Fee         float64 `json:"fee"`
	MemberCount int64   `json:"member_count"`
}

type GroupsReport struct {
	Total int64            `json:"total"`
	Rows  []GroupReportRow `json:"rows"`
}

type GroupPaymentRow struct {
	GroupID uint    `json:"group_id"`
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
}

type PaymentsReport struct {
	TotalAmount float64           `json:"total_amount"`
	Count       int64             `json:"count"`
	ByGroup     []GroupPaymentRow `json:"by_group"`
}

type StudentAttendanceRow struct {
	StudentID uint    `json:"student_id"`
	Name      string  `json:"name"`
	Present   int64   `json:"present"`
	Absent    int64   `json:"absent"`
	Excused   int64   `json:"excused"`
	Total     int64   `json:"total"`
	Rate      float64 `json:"rate"`
}

type AttendanceReport struct {
	Total             int64                  `json:"total"`
	Present           int64                  `json:"present"`
	Absent            int64                  `json:"absent"`
	Excused           int64                  `json:"excused"`
	PresentPercentage float64                `json:"present_percentage"`
	ByStudent         []StudentAttendanceRow `json:"by_student"`
}

// ReportService computes the canned reports straight from the store
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Students lists every student with the names of their groups
func (s *ReportService) Students() (*StudentsReport, error) {
	report := &StudentsReport{}
	if err := s.db.Model(&models.Student{}).Count(&report.Total).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		StudentID  uint
		Name       string
		Phone      string
		GroupNames *string
		GroupCount int64
	}
	err := s.db.Raw(`SELECT s.id AS student_id, s.name, s.phone,
			GROUP_CONCAT(g.name, '|') AS group_names,
			COUNT(DISTINCT e.group_id) AS group_count
		FROM students s
		LEFT JOIN enrollments e ON e.student_id = s.id
		LEFT JOIN "groups" g ON g.id = e.group_id
		GROUP BY s.id
		ORDER BY s.name, s.id`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	report.Rows = make([]StudentReportRow, 0, len(rows))
	for _, r := range rows {
		row := StudentReportRow{
			StudentID:  r.StudentID,
			Name:       r.Name,
			Phone:      r.Phone,
			GroupCount: r.GroupCount,
			Groups:     []string{},
		}
		if r.GroupNames != nil && *r.GroupNames != "" {
			row.Groups = strings.Split(*r.GroupNames, "|")
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Groups lists every group with its teacher and member count
func (s *ReportService) Groups() (*GroupsReport, error) {
	report := &GroupsReport{}
	if err := s.db.Model(&models.Group{}).Count(&report.Total).Error; err != nil {
		return nil, err
	}

	err := s.db.Raw(`SELECT g.id AS group_id, g.name, g.subject,
			COALESCE(t.name, '') AS teacher, g.fee,
			COUNT(DISTINCT e.student_id) AS member_count
		FROM "groups" g
		LEFT JOIN teachers t ON t.id = g.teacher_id
		LEFT JOIN enrollments e ON e.group_id = g.id
		GROUP BY g.id
		ORDER BY g.name, g.id`).Scan(&report.Rows).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Payments totals all payments, overall and per group
func (s *ReportService) Payments() (*PaymentsReport, error) {
	report := &PaymentsReport{}
	var totals struct {
		Amount float64
		Count  int64
	}
	if err := s.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	report.TotalAmount = totals.Amount
	report.Count = totals.Count

	err := s.db.Raw(`SELECT g.id AS group_id, g.name, COUNT(*) AS count, SUM(p.amount) AS amount
		FROM payments p
		JOIN "groups" g ON g.id = p.group_id
		GROUP BY g.id
		ORDER BY g.name, g.id`).Scan(&report.ByGroup).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Attendance counts records per status, overall and per student with any records
func (s *ReportService) Attendance() (*AttendanceReport, error) {
	var totals struct {
		Total   int64
		Present int64
		Absent  int64
		Excused int64
	}
	err := s.db.Model(&models.Attendance{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS present,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS absent,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS excused`,
			models.AttendancePresent, models.AttendanceAbsent, models.AttendanceExcused).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	report := &AttendanceReport{
		Total:   totals.Total,
		Present: totals.Present,
		Absent:  totals.Absent,
		Excused: totals.Excused,
	}
	if report.Total > 0 {
		report.PresentPercentage = float64(report.Present) / float64(report.Total) * 100
	}

	err = s.db.Raw(`SELECT s.id AS student_id, s.name,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS present,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS absent,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS excused,
			COUNT(*) AS total
		FROM students s
		JOIN attendance a ON a.student_id = s.id
		GROUP BY s.id
		ORDER BY s.name, s.id`,
		models.AttendancePresent, models.AttendanceAbsent, models.AttendanceExcused).
		Scan(&report.ByStudent).Error
	if err != nil {
		return nil, err
	}
	for i := range report.ByStudent {
		row := &report.ByStudent[i]
		if row.Total > 0 {
			row.Rate = float64(row.Present) / float64(row.Total) * 100
		}
	}
	return report, nil
}

// ReportTable is a report flattened to a header row and value rows
type ReportTable struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Table builds the named report in tabular form for export
func (s *ReportService) Table(name string) (*ReportTable, error) {
	switch name {
	case ReportStudents:
		r, err := s.Students()
		if err != nil {
			return nil, err
		}
		t := &ReportTable{Name: name, Headers: []string{"ID", "Name", "Phone", "Group count", "Groups"}}
		for _, row := range r.Rows {
			t.Rows = append(t.Rows, []interface{}{row.StudentID, row.Name, row.Phone, row.GroupCount, strings.Join(row.Groups, ", ")})
		}
		return t, nil
	case ReportGroups:
		r, err := s.Groups()
		if err != nil {
			return nil, err
		}
		t := &ReportTable{Name: name, Headers: []string{"ID", "Name", "Subject", "Teacher", "Fee", "Members"}}
		for _, row := range r.Rows {
			t.Rows = append(t.Rows, []interface{}{row.GroupID, row.Name, row.Subject, row.Teacher, row.Fee, row.MemberCount})
		}
		return t, nil
	case ReportPayments:
		r, err := s.Payments()
		if err != nil {
			return nil, err
		}
		t := &ReportTable{Name: name, Headers: []string{"Group ID", "Group", "Payments", "Amount"}}
		for _, row := range r.ByGroup {
			t.Rows = append(t.Rows, []interface{}{row.GroupID, row.Name, row.Count, row.Amount})
		}
		t.Rows = append(t.Rows, []interface{}{"", "Total", r.Count, r.TotalAmount})
		return t, nil
	case ReportAttendance:
		r, err := s.Attendance()
		if err != nil {
			return nil, err
		}
		t := &ReportTable{Name: name, Headers: []string{"Student ID", "Student", "Present", "Absent", "Excused", "Total", "Rate %"}}
		for _, row := range r.ByStudent {
			t.Rows = append(t.Rows, []interface{}{row.StudentID, row.Name, row.Present, row.Absent, row.Excused, row.Total, round2(row.Rate)})
		}
		t.Rows = append(t.Rows, []interface{}{"", "All", r.Present, r.Absent, r.Excused, r.Total, round2(r.PresentPercentage)})
		return t, nil
	}
	return nil, fmt.Errorf("unknown report %q, expected one of %s", name, strings.Join(ReportNames, ", "))
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
