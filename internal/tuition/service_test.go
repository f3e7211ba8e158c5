package tuition

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hagwon/internal/errs"
)

// fakeStore mimics the unique (student, year, month) constraint.
type fakeStore struct {
	records map[string]Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]Record)}
}

func key(rec Record) string {
	return fmt.Sprintf("%s-%d-%d", rec.StudentID, rec.Year, rec.Month)
}

func (f *fakeStore) Upsert(ctx context.Context, rec Record) (Record, error) {
	rec.ID = "t-" + key(rec)
	f.records[key(rec)] = rec
	return rec, nil
}

func (f *fakeStore) ListByYear(ctx context.Context, year int) ([]Record, error) {
	var recs []Record
	for _, rec := range f.records {
		if rec.Year == year {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func strptr(s string) *string { return &s }

func TestUpsertValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, Record{Year: 2024, Month: 3, Status: StatusPaid, PaymentDate: strptr("2024-03-05")})
	assert.ErrorIs(t, err, errs.ErrInvalid)

	_, err = svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 13, Status: StatusUnpaid})
	assert.ErrorIs(t, err, errs.ErrInvalid)

	_, err = svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 3, Status: "partial"})
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestPaidRequiresPaymentDate(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 3, Status: StatusPaid})
	assert.ErrorIs(t, err, errs.ErrInvalid)

	_, err = svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 3, Status: StatusPaid, PaymentDate: strptr("05/03/2024")})
	assert.ErrorIs(t, err, errs.ErrInvalid)

	rec, err := svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 3, Status: StatusPaid, PaymentDate: strptr("2024-03-05")})
	require.NoError(t, err)
	require.NotNil(t, rec.PaymentDate)
	assert.Equal(t, "2024-03-05", *rec.PaymentDate)
}

func TestUnpaidClearsPaymentDate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 3, Status: StatusPaid, PaymentDate: strptr("2024-03-05")})
	require.NoError(t, err)

	rec, err := svc.Upsert(ctx, Record{StudentID: "s1", Year: 2024, Month: 3, Status: StatusUnpaid, PaymentDate: strptr("2024-03-05")})
	require.NoError(t, err)
	assert.Nil(t, rec.PaymentDate, "unpaid must clear the payment date even when one is sent")

	assert.Len(t, store.records, 1, "posting the same key twice keeps one record")
	assert.Equal(t, StatusUnpaid, store.records[key(rec)].Status)
}
