package services

import (
	"errors"
	"testing"
	"time"

	"student_manager/models"
	"student_manager/testutil"
	"student_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_Create(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewPaymentService(db)
	st := testutil.CreateStudent(t, db, "Yasmine")
	g := testutil.CreateGroup(t, db, "Algebra", 3000, nil)
	today := utils.Today()

	tests := []struct {
		name      string
		input     PaymentInput
		wantField string
		wantErr   error
	}{
		{name: "valid", input: PaymentInput{StudentID: st.ID, GroupID: g.ID, Amount: 3000, PaymentDate: today, Notes: " cash "}},
		{name: "zero amount", input: PaymentInput{StudentID: st.ID, GroupID: g.ID, PaymentDate: today}, wantField: "amount"},
		{name: "negative amount", input: PaymentInput{StudentID: st.ID, GroupID: g.ID, Amount: -5, PaymentDate: today}, wantField: "amount"},
		{name: "missing date", input: PaymentInput{StudentID: st.ID, GroupID: g.ID, Amount: 10}, wantField: "payment_date"},
		{name: "missing student", input: PaymentInput{GroupID: g.ID, Amount: 10, PaymentDate: today}, wantField: "student_id"},
		{name: "unknown group", input: PaymentInput{StudentID: st.ID, GroupID: 555, Amount: 10, PaymentDate: today}, wantErr: ErrNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			before := testutil.Count(t, db, &models.Payment{}, "")
			p, err := svc.Create(tc.input)
			switch {
			case tc.wantField != "":
				var verr *utils.ValidationError
				require.True(t, errors.As(err, &verr), "got %v", err)
				assert.True(t, verr.HasField(tc.wantField), "fields: %v", verr.Fields)
				assert.Equal(t, before, testutil.Count(t, db, &models.Payment{}, ""))
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, "cash", p.Notes)
				assert.True(t, time.Time(p.PaymentDate).Equal(today))
			}
		})
	}
}

func TestPaymentService_NoEnrollmentRequired(t *testing.T) {
	db := testutil.PrepareDB(t)
	st := testutil.CreateStudent(t, db, "Omar")
	g := testutil.CreateGroup(t, db, "Physics", 3500, nil)

	_, err := NewPaymentService(db).Create(PaymentInput{StudentID: st.ID, GroupID: g.ID, Amount: 100, PaymentDate: utils.Today()})
	assert.NoError(t, err)
}

func TestPaymentService_ListAndTotal(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := NewPaymentService(db)
	st := testutil.CreateStudent(t, db, "Yasmine")
	other := testutil.CreateStudent(t, db, "Omar")
	g := testutil.CreateGroup(t, db, "Algebra", 3000, nil)
	today := utils.Today()

	p1 := testutil.AddPayment(t, db, st.ID, g.ID, 1000, today.AddDate(0, 0, -40))
	testutil.AddPayment(t, db, st.ID, g.ID, 2000, today)
	testutil.AddPayment(t, db, other.ID, g.ID, 500, today.AddDate(0, 0, -1))

	total, err := svc.TotalFor(st.ID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, total)

	none, err := svc.TotalFor(other.ID, 999)
	require.NoError(t, err)
	assert.Zero(t, none)

	mine, err := svc.List(PaymentFilter{StudentID: st.ID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, 2000.0, mine[0].Amount, "newest first")

	recent, err := svc.List(PaymentFilter{GroupID: g.ID, From: today.AddDate(0, 0, -7)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	old, err := svc.List(PaymentFilter{To: today.AddDate(0, 0, -30)})
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.Equal(t, p1.ID, old[0].ID)

	require.NoError(t, svc.Delete(p1.ID))
	assert.ErrorIs(t, svc.Delete(p1.ID), ErrNotFound)
}
