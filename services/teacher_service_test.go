package services

import (
	"testing"

	"student_manager/models"
	"student_manager/testutil"
	"student_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherService_CRUD(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewTeacherService(db)

	_, err := svc.Create(TeacherInput{})
	assert.ErrorIs(t, err, utils.ErrValidation)

	teacher, err := svc.Create(TeacherInput{Name: "Samira Haddad", Specialization: "Mathematics"})
	require.NoError(t, err)

	updated, err := svc.Update(teacher.ID, TeacherInput{Name: "Samira H.", Specialization: "Algebra"})
	require.NoError(t, err)
	assert.Equal(t, "Samira H.", updated.Name)

	_, err = svc.Get(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeacherService_RenameFollowsGroups(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewTeacherService(db)
	groups := NewGroupService(db)

	teacher := testutil.CreateTeacher(t, db, "Karim")
	g := testutil.CreateGroup(t, db, "Mechanics", 3500, &teacher.ID)

	_, err := svc.Update(teacher.ID, TeacherInput{Name: "Karim Benali"})
	require.NoError(t, err)

	got, err := groups.Get(g.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Teacher)
	assert.Equal(t, "Karim Benali", got.Teacher.Name)
}

func TestTeacherService_DeleteUnassignsGroups(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewTeacherService(db)

	teacher := testutil.CreateTeacher(t, db, "Lina")
	keep := testutil.CreateTeacher(t, db, "Samira")
	g1 := testutil.CreateGroup(t, db, "Conversation", 2500, &teacher.ID)
	g2 := testutil.CreateGroup(t, db, "Grammar", 2500, &teacher.ID)
	g3 := testutil.CreateGroup(t, db, "Algebra", 3000, &keep.ID)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Lina", list[0].Name)
	assert.Equal(t, int64(2), list[0].GroupCount)
	assert.Equal(t, int64(1), list[1].GroupCount)

	require.NoError(t, svc.Delete(teacher.ID))

	for _, id := range []uint{g1.ID, g2.ID} {
		var g models.Group
		require.NoError(t, db.First(&g, id).Error)
		assert.Nil(t, g.TeacherID)
	}
	var g models.Group
	require.NoError(t, db.First(&g, g3.ID).Error)
	require.NotNil(t, g.TeacherID)
	assert.Equal(t, keep.ID, *g.TeacherID)

	assert.ErrorIs(t, svc.Delete(teacher.ID), ErrNotFound)
}

func TestTeacherService_Groups(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewTeacherService(db)

	teacher := testutil.CreateTeacher(t, db, "Lina")
	testutil.CreateGroup(t, db, "Writing", 2500, &teacher.ID)
	testutil.CreateGroup(t, db, "Conversation", 2500, &teacher.ID)
	testutil.CreateGroup(t, db, "Unassigned", 1000, nil)

	groups, err := svc.Groups(teacher.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Conversation", groups[0].Name)
	assert.Equal(t, "Writing", groups[1].Name)

	_, err = svc.Groups(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
