package services

import (
	"testing"

	"student_manager/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_Report(t *testing.T) {
	db := testutil.PrepareDB(t)
	st := testutil.CreateStudent(t, db, "Yasmine")
	g := testutil.CreateGroup(t, db, "Algebra", 3000, nil)
	testutil.Enroll(t, db, st.ID, g.ID)

	report := NewHealthService(db).Report()

	assert.Equal(t, overallStatusOK, report.Status)
	require.Len(t, report.Checks, 3)
	for _, check := range report.Checks {
		assert.Equal(t, checkStatusUp, check.Status, check.Name)
	}
	assert.Equal(t, int64(1), report.Records["students"])
	assert.Equal(t, int64(1), report.Records["groups"])
	assert.Equal(t, int64(1), report.Records["enrollments"])
	assert.Equal(t, int64(0), report.Records["payments"])
	assert.Len(t, report.Records, len(CountedTables()))
}

func TestHealthService_ClosedStore(t *testing.T) {
	db := testutil.PrepareDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	report := NewHealthService(db).Report()

	assert.Equal(t, overallStatusCritical, report.Status)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, checkStatusDown, report.Checks[0].Status)
	assert.NotEmpty(t, report.Checks[0].Error)
}

func TestCombineStatus(t *testing.T) {
	assert.Equal(t, overallStatusDegraded, combineStatus(overallStatusOK, overallStatusDegraded))
	assert.Equal(t, overallStatusCritical, combineStatus(overallStatusCritical, overallStatusDegraded))
	assert.Equal(t, overallStatusOK, combineStatus("bogus", "bogus"))
}
