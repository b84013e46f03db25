package seeders

import (
	"testing"

	"student_manager/models"
	"student_manager/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAll(t *testing.T) {
	db := testutil.PrepareDB(t)

	require.NoError(t, SeedAll(db))

	counts := map[interface{}]int64{
		&models.Teacher{}:    3,
		&models.Group{}:      3,
		&models.Student{}:    4,
		&models.Enrollment{}: 6,
		&models.Payment{}:    2,
		&models.Attendance{}: 8,
	}
	for model, want := range counts {
		assert.Equal(t, want, testutil.Count(t, db, model, ""), "%T", model)
	}

	// a second run leaves the data alone
	require.NoError(t, SeedAll(db))
	assert.Equal(t, int64(4), testutil.Count(t, db, &models.Student{}, ""))
}

func TestSeedAll_SkipsWhenStudentsExist(t *testing.T) {
	db := testutil.PrepareDB(t)
	testutil.CreateStudent(t, db, "Existing")

	require.NoError(t, SeedAll(db))
	assert.Zero(t, testutil.Count(t, db, &models.Group{}, ""))
}
