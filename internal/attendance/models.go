package attendance

import "time"

// Attendance statuses as stored and displayed by the product.
const (
	StatusPresent    = "출석"
	StatusAbsent     = "결석"
	StatusLate       = "지각"
	StatusEarlyLeave = "조퇴"
	StatusUnmarked   = "미처리"
)

// ValidStatus reports whether s is one of the known attendance statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusEarlyLeave, StatusUnmarked:
		return true
	}
	return false
}

// Record is one student's attendance for one date. At most one record
// exists per (student, date); writes with an existing key overwrite.
type Record struct {
	StudentID string    `json:"student_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	Memo      string    `json:"memo"`
	CreatedAt time.Time `json:"-"`
}

// DayEntry is a record joined with the student's class, as served for
// a single-date query.
type DayEntry struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
	Memo      string `json:"memo"`
	ClassName string `json:"class_name"`
}
