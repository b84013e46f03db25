package services

import (
	"testing"
	"time"

	"student_manager/models"
	"student_manager/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func addNotification(t *testing.T, db *gorm.DB, studentID uint, groupID *uint, title string, read bool) models.Notification {
	t.Helper()
	n := models.Notification{
		StudentID: studentID,
		GroupID:   groupID,
		Kind:      models.NotificationPaymentOverdue,
		Title:     title,
		Message:   title,
		Priority:  models.PriorityHigh,
	}
	require.NoError(t, db.Create(&n).Error)
	if read {
		require.NoError(t, db.Model(&n).Update("is_read", true).Error)
		n.Read = true
	}
	return n
}

func TestNotificationService_ListOrder(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewNotificationService(db)
	st := testutil.CreateStudent(t, db, "Yasmine")
	other := testutil.CreateStudent(t, db, "Omar")
	g := testutil.CreateGroup(t, db, "Algebra", 3000, nil)

	addNotification(t, db, st.ID, &g.ID, "old unread", false)
	addNotification(t, db, st.ID, &g.ID, "read", true)
	addNotification(t, db, other.ID, nil, "new unread", false)

	all, err := svc.List(NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new unread", all[0].Title)
	assert.Equal(t, "old unread", all[1].Title)
	assert.Equal(t, "read", all[2].Title)
	require.NotNil(t, all[1].Group)
	assert.Equal(t, "Algebra", all[1].Group.Name)
	require.NotNil(t, all[0].Student)
	assert.Equal(t, "Omar", all[0].Student.Name)

	unread, err := svc.List(NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	mine, err := svc.List(NotificationFilter{StudentID: st.ID, Limit: 1})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "old unread", mine[0].Title)

	count, err := svc.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNotificationService_MarkReadIsOneWay(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewNotificationService(db)
	st := testutil.CreateStudent(t, db, "Yasmine")
	n := addNotification(t, db, st.ID, nil, "reminder", false)

	first := time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	require.NoError(t, svc.MarkRead(n.ID))

	svc.now = func() time.Time { return first.Add(time.Hour) }
	require.NoError(t, svc.MarkRead(n.ID))

	got, err := svc.Get(n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
	require.NotNil(t, got.ReadAt)
	assert.True(t, got.ReadAt.Equal(first), "read_at keeps the first time")

	// nothing flips it back
	_, err = svc.MarkAllRead()
	require.NoError(t, err)
	got, err = svc.Get(n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	assert.ErrorIs(t, svc.MarkRead(999), ErrNotFound)
}

func TestNotificationService_MarkAllReadAndDelete(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewNotificationService(db)
	st := testutil.CreateStudent(t, db, "Yasmine")
	a := addNotification(t, db, st.ID, nil, "a", false)
	addNotification(t, db, st.ID, nil, "b", false)
	addNotification(t, db, st.ID, nil, "c", true)

	changed, err := svc.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	count, err := svc.UnreadCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.Delete(a.ID))
	assert.ErrorIs(t, svc.Delete(a.ID), ErrNotFound)
	_, err = svc.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
