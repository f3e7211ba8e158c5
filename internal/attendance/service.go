package attendance

import (
	"context"
	"fmt"
	"time"

	"hagwon/internal/errs"
)

// Store is the persistence surface the service needs.
type Store interface {
	Upsert(ctx context.Context, rec Record) error
	UpsertStatus(ctx context.Context, studentID, date, status string) error
	ListByDate(ctx context.Context, date string) ([]DayEntry, error)
	ListAll(ctx context.Context) ([]Record, error)
	ListRange(ctx context.Context, from, to string) ([]Record, error)
}

// Service validates and records attendance.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Mark upserts one student's status for one date. Posting the same key
// twice leaves a single record carrying the second status.
func (s *Service) Mark(ctx context.Context, rec Record) error {
	if rec.StudentID == "" {
		return fmt.Errorf("%w: studentId required", errs.ErrInvalid)
	}
	if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", errs.ErrInvalid)
	}
	if !ValidStatus(rec.Status) {
		return fmt.Errorf("%w: unknown status %q", errs.ErrInvalid, rec.Status)
	}
	return s.store.Upsert(ctx, rec)
}

// MarkPresent records a check-in for today without touching any memo
// already on the record.
func (s *Service) MarkPresent(ctx context.Context, studentID, date string) error {
	if studentID == "" {
		return fmt.Errorf("%w: studentId required", errs.ErrInvalid)
	}
	return s.store.UpsertStatus(ctx, studentID, date, StatusPresent)
}

// ListByDate returns the day's records with class names.
func (s *Service) ListByDate(ctx context.Context, date string) ([]DayEntry, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", errs.ErrInvalid)
	}
	return s.store.ListByDate(ctx, date)
}

// ListAll returns every record, for clients building their own views.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	return s.store.ListAll(ctx)
}

// ListRange returns records between two dates inclusive.
func (s *Service) ListRange(ctx context.Context, from, to string) ([]Record, error) {
	return s.store.ListRange(ctx, from, to)
}
