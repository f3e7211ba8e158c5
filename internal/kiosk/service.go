package kiosk

import (
	"context"
	"log"
	"time"

	"hagwon/internal/attendance"
	"hagwon/internal/message"
	"hagwon/internal/notify"
	"hagwon/internal/queue"
	"hagwon/internal/roster"
)

// StudentFinder resolves a passcode to a student.
type StudentFinder interface {
	FindStudentByPasscode(ctx context.Context, passcode string) (roster.Student, error)
}

// Marker records a present check-in.
type Marker interface {
	MarkPresent(ctx context.Context, studentID, date string) error
}

// Service performs self-service check-ins: passcode lookup, the same
// attendance upsert as the admin flow, and a queued parent notice.
type Service struct {
	students StudentFinder
	marks    Marker
	q        queue.Queue
	now      func() time.Time
}

// NewService creates a kiosk service. q may be nil when notification
// delivery is disabled.
func NewService(students StudentFinder, marks Marker, q queue.Queue) *Service {
	return &Service{students: students, marks: marks, q: q, now: time.Now}
}

// Result is what the kiosk screen shows after a successful check-in.
type Result struct {
	Name        string `json:"name"`
	ParentPhone string `json:"parentPhone"`
}

// CheckIn resolves the passcode to the first matching student and marks
// today's attendance as present, whatever the prior status was. The
// parent notification is best-effort; a queue failure never fails the
// check-in itself.
func (s *Service) CheckIn(ctx context.Context, passcode string) (Result, error) {
	student, err := s.students.FindStudentByPasscode(ctx, passcode)
	if err != nil {
		return Result{}, err
	}

	today := attendance.FormatDate(s.now())
	if err := s.marks.MarkPresent(ctx, student.ID, today); err != nil {
		return Result{}, err
	}

	if s.q != nil {
		job := notify.NewJob(student.Name, student.ParentPhone, message.CheckInNotice(student.Name))
		if body, err := job.Encode(); err == nil {
			if err := s.q.Publish(ctx, queue.Message{Type: "checkin", Body: body}); err != nil {
				log.Printf("kiosk: queue publish failed: %v", err)
			}
		}
	}

	return Result{Name: student.Name, ParentPhone: student.ParentPhone}, nil
}
