package services

import (
	"time"

	"student_manager/models"
	"student_manager/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GroupInput struct {
	Name      string  `json:"name" validate:"required"`
	Subject   string  `json:"subject"`
	TeacherID *uint   `json:"teacher_id"`
	Schedule  string  `json:"schedule"`
	Fee       float64 `json:"fee" validate:"gte=0"`
}

func (in *GroupInput) Normalize() {
	in.Name = utils.SanitizeString(in.Name)
	in.Subject = utils.SanitizeString(in.Subject)
	in.Schedule = utils.SanitizeString(in.Schedule)
	if in.TeacherID != nil && *in.TeacherID == 0 {
		in.TeacherID = nil
	}
}

// GroupMember is an enrolled student with the date they joined
type GroupMember struct {
	Student  models.Student `json:"student"`
	JoinedAt time.Time      `json:"joined_at"`
}

// GroupWithCount is a group plus its number of enrolled students
type GroupWithCount struct {
	models.Group
	MemberCount int64 `json:"member_count"`
}

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

func (s *GroupService) checkTeacher(teacherID *uint) error {
	if teacherID == nil {
		return nil
	}
	return requireRow(s.db, &models.Teacher{}, "teacher", *teacherID)
}

func (s *GroupService) Create(in GroupInput) (*models.Group, error) {
	in.Normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkTeacher(in.TeacherID); err != nil {
		return nil, err
	}

	group := models.Group{
		Name:      in.Name,
		Subject:   in.Subject,
		TeacherID: in.TeacherID,
		Schedule:  in.Schedule,
		Fee:       in.Fee,
	}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return s.Get(group.ID)
}

func (s *GroupService) Update(id uint, in GroupInput) (*models.Group, error) {
	in.Normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkTeacher(in.TeacherID); err != nil {
		return nil, err
	}

	if err := requireRow(s.db, &models.Group{}, "group", id); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":       in.Name,
		"subject":    in.Subject,
		"teacher_id": in.TeacherID,
		"schedule":   in.Schedule,
		"fee":        in.Fee,
	}
	// a loaded Teacher association would overwrite teacher_id on save
	if err := s.db.Model(&models.Group{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes the group together with its enrollments, payments, attendance and notifications.
func (s *GroupService) Delete(id uint) error {
	res := s.db.Delete(&models.Group{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("group", id)
	}
	logrus.WithField("group_id", id).Info("Group deleted")
	return nil
}

func (s *GroupService) Get(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.Preload("Teacher").First(&group, id).Error; err != nil {
		return nil, translateNotFound(err, "group", id)
	}
	return &group, nil
}

// List returns every group by name with its member count
func (s *GroupService) List() ([]GroupWithCount, error) {
	var groups []models.Group
	if err := s.db.Preload("Teacher").Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		GroupID uint
		Members int64
	}
	if err := s.db.Model(&models.Enrollment{}).
		Select("group_id, COUNT(*) AS members").
		Group("group_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byGroup := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byGroup[c.GroupID] = c.Members
	}

	out := make([]GroupWithCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupWithCount{Group: g, MemberCount: byGroup[g.ID]})
	}
	return out, nil
}

// Members lists the students enrolled in the group, by name
func (s *GroupService) Members(groupID uint) ([]GroupMember, error) {
	if err := requireRow(s.db, &models.Group{}, "group", groupID); err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := s.db.Joins("Student").
		Where("enrollments.group_id = ?", groupID).
		Order("Student.name").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	members := make([]GroupMember, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Student == nil {
			continue
		}
		members = append(members, GroupMember{Student: *e.Student, JoinedAt: e.JoinedAt})
	}
	return members, nil
}
