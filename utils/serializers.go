package utils

import (
	"time"

	"student_manager/models"
)

// Compact representations used by the front end
type StudentShort struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type GroupShort struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type NotificationDTO struct {
	ID        uint         `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Kind      string       `json:"kind"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Priority  string       `json:"priority"`
	Read      bool         `json:"read"`
	ReadAt    *time.Time   `json:"read_at,omitempty"`
	Student   StudentShort `json:"student"`
	Group     *GroupShort  `json:"group,omitempty"`
}

// ToNotificationDTO maps a models.Notification to the compact DTO.
// Assumptions: caller has preloaded Student and Group when possible.
func ToNotificationDTO(n models.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		Priority:  string(n.Priority),
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		Student:   StudentShort{ID: n.StudentID},
	}
	if n.Student != nil {
		dto.Student.Name = n.Student.Name
	}
	if n.GroupID != nil {
		dto.Group = &GroupShort{ID: *n.GroupID}
		if n.Group != nil {
			dto.Group.Name = n.Group.Name
		}
	}
	return dto
}

func ToNotificationDTOs(ns []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(ns))
	for _, n := range ns {
		out = append(out, ToNotificationDTO(n))
	}
	return out
}

type GroupDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Subject     string  `json:"subject"`
	TeacherID   *uint   `json:"teacher_id,omitempty"`
	TeacherName string  `json:"teacher_name,omitempty"`
	Schedule    string  `json:"schedule"`
	Fee         float64 `json:"fee"`
}

// ToGroupDTO flattens the preloaded teacher into its name.
func ToGroupDTO(g models.Group) GroupDTO {
	dto := GroupDTO{
		ID:        g.ID,
		Name:      g.Name,
		Subject:   g.Subject,
		TeacherID: g.TeacherID,
		Schedule:  g.Schedule,
		Fee:       g.Fee,
	}
	if g.Teacher != nil {
		dto.TeacherName = g.Teacher.Name
	}
	return dto
}
