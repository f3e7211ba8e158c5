package roster

import (
	"context"
	"fmt"
	"strings"

	"hagwon/internal/errs"
)

// Store is the persistence surface the service needs.
type Store interface {
	ListStudents(ctx context.Context) ([]Student, error)
	CreateStudent(ctx context.Context, s Student) (Student, error)
	UpdateStudent(ctx context.Context, s Student) (Student, error)
	DeleteStudent(ctx context.Context, id string) error
	GetStudent(ctx context.Context, id string) (Student, error)
	FindStudentByPasscode(ctx context.Context, passcode string) (Student, error)
	ListClasses(ctx context.Context) ([]Class, error)
	ClassExists(ctx context.Context, name string) (bool, error)
	CreateClass(ctx context.Context, name string) (Class, error)
}

// Service validates and coordinates student and class operations.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// NormalizePasscode strips non-digits and truncates to 4 digits,
// left-padding shorter codes with zeros. Mirrors the registration
// form's input mask so kiosk lookups match what was stored.
func NormalizePasscode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if len(code) > 4 {
		return code[:4]
	}
	if code == "" {
		return ""
	}
	return strings.Repeat("0", 4-len(code)) + code
}

// ListStudents returns all students.
func (s *Service) ListStudents(ctx context.Context) ([]Student, error) {
	return s.store.ListStudents(ctx)
}

// CreateStudent registers a student after validating required fields.
func (s *Service) CreateStudent(ctx context.Context, st Student) (Student, error) {
	if err := validateStudent(&st); err != nil {
		return Student{}, err
	}
	return s.store.CreateStudent(ctx, st)
}

// UpdateStudent replaces a student's mutable fields by id.
func (s *Service) UpdateStudent(ctx context.Context, st Student) (Student, error) {
	if st.ID == "" {
		return Student{}, fmt.Errorf("%w: id required", errs.ErrInvalid)
	}
	if err := validateStudent(&st); err != nil {
		return Student{}, err
	}
	return s.store.UpdateStudent(ctx, st)
}

// DeleteStudent removes a student and, through the schema, all of the
// student's attendance and tuition records.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id required", errs.ErrInvalid)
	}
	return s.store.DeleteStudent(ctx, id)
}

// GetStudent returns one student by id.
func (s *Service) GetStudent(ctx context.Context, id string) (Student, error) {
	return s.store.GetStudent(ctx, id)
}

// FindStudentByPasscode resolves a kiosk passcode to a student.
func (s *Service) FindStudentByPasscode(ctx context.Context, passcode string) (Student, error) {
	return s.store.FindStudentByPasscode(ctx, passcode)
}

// ListClasses returns all class labels.
func (s *Service) ListClasses(ctx context.Context) ([]Class, error) {
	return s.store.ListClasses(ctx)
}

// CreateClass adds a class label, rejecting duplicates. The existence
// check is a pre-read rather than a constraint; with a single admin a
// duplicate race is not a practical concern.
func (s *Service) CreateClass(ctx context.Context, name string) (Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Class{}, fmt.Errorf("%w: name required", errs.ErrInvalid)
	}
	exists, err := s.store.ClassExists(ctx, name)
	if err != nil {
		return Class{}, err
	}
	if exists {
		return Class{}, fmt.Errorf("class %q: %w", name, errs.ErrConflict)
	}
	return s.store.CreateClass(ctx, name)
}

func validateStudent(st *Student) error {
	st.Name = strings.TrimSpace(st.Name)
	st.ParentPhone = strings.TrimSpace(st.ParentPhone)
	if st.Name == "" {
		return fmt.Errorf("%w: name required", errs.ErrInvalid)
	}
	if st.ParentPhone == "" {
		return fmt.Errorf("%w: parentPhone required", errs.ErrInvalid)
	}
	st.Passcode = NormalizePasscode(st.Passcode)
	if st.Passcode == "" {
		return fmt.Errorf("%w: passcode required", errs.ErrInvalid)
	}
	return nil
}
