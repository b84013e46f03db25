package services

import (
	"testing"

	"student_manager/models"
	"student_manager/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewEnrollmentService(db)

	st := testutil.CreateStudent(t, db, "Yasmine")
	g := testutil.CreateGroup(t, db, "Algebra", 3000, nil)

	e, err := svc.Enroll(st.ID, g.ID)
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.False(t, e.JoinedAt.IsZero())

	tests := []struct {
		name      string
		studentID uint
		groupID   uint
		wantErr   error
	}{
		{name: "already enrolled", studentID: st.ID, groupID: g.ID, wantErr: ErrAlreadyEnrolled},
		{name: "unknown student", studentID: 999, groupID: g.ID, wantErr: ErrNotFound},
		{name: "unknown group", studentID: st.ID, groupID: 999, wantErr: ErrNotFound},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Enroll(tc.studentID, tc.groupID)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, int64(1), testutil.Count(t, db, &models.Enrollment{}, ""))
		})
	}
}

func TestEnrollmentService_DuplicateRejectedByStore(t *testing.T) {
	db := testutil.PrepareDB(t)
	st := testutil.CreateStudent(t, db, "Yasmine")
	g := testutil.CreateGroup(t, db, "Algebra", 3000, nil)
	testutil.Enroll(t, db, st.ID, g.ID)

	err := db.Create(&models.Enrollment{StudentID: st.ID, GroupID: g.ID}).Error
	require.Error(t, err)
	assert.Equal(t, int64(1), testutil.Count(t, db, &models.Enrollment{}, ""))
}

func TestEnrollmentService_UnenrollAndList(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewEnrollmentService(db)

	st := testutil.CreateStudent(t, db, "Omar")
	g1 := testutil.CreateGroup(t, db, "Algebra", 3000, nil)
	g2 := testutil.CreateGroup(t, db, "Physics", 3000, nil)
	e1, err := svc.Enroll(st.ID, g1.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(st.ID, g2.ID)
	require.NoError(t, err)

	list, err := svc.List(st.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Group)

	byGroup, err := svc.List(0, g1.ID)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	require.NotNil(t, byGroup[0].Student)
	assert.Equal(t, "Omar", byGroup[0].Student.Name)

	require.NoError(t, svc.Unenroll(e1.ID))
	assert.ErrorIs(t, svc.Unenroll(e1.ID), ErrNotFound)

	// re-enrolling after removal is allowed
	_, err = svc.Enroll(st.ID, g1.ID)
	assert.NoError(t, err)
}
