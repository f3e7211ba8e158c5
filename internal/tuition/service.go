package tuition

import (
	"context"
	"fmt"
	"time"

	"hagwon/internal/errs"
)

// Store is the persistence surface the service needs.
type Store interface {
	Upsert(ctx context.Context, rec Record) (Record, error)
	ListByYear(ctx context.Context, year int) ([]Record, error)
}

// Service validates and records tuition payment state.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Upsert sets a student's payment state for (year, month). Marking paid
// requires a payment date; marking unpaid clears it.
func (s *Service) Upsert(ctx context.Context, rec Record) (Record, error) {
	if rec.StudentID == "" {
		return Record{}, fmt.Errorf("%w: student_id required", errs.ErrInvalid)
	}
	if rec.Year < 2000 || rec.Year > 2100 {
		return Record{}, fmt.Errorf("%w: year out of range", errs.ErrInvalid)
	}
	if rec.Month < 1 || rec.Month > 12 {
		return Record{}, fmt.Errorf("%w: month must be 1-12", errs.ErrInvalid)
	}

	switch rec.Status {
	case StatusPaid:
		if rec.PaymentDate == nil || *rec.PaymentDate == "" {
			return Record{}, fmt.Errorf("%w: payment_date required when paid", errs.ErrInvalid)
		}
		if _, err := time.Parse("2006-01-02", *rec.PaymentDate); err != nil {
			return Record{}, fmt.Errorf("%w: payment_date must be YYYY-MM-DD", errs.ErrInvalid)
		}
	case StatusUnpaid:
		rec.PaymentDate = nil
	default:
		return Record{}, fmt.Errorf("%w: status must be paid or unpaid", errs.ErrInvalid)
	}

	return s.store.Upsert(ctx, rec)
}

// ListByYear returns all records for one year.
func (s *Service) ListByYear(ctx context.Context, year int) ([]Record, error) {
	return s.store.ListByYear(ctx, year)
}
