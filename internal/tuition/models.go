package tuition

import "time"

// Tuition payment statuses.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// Record is one student's tuition state for one (year, month). At most
// one record exists per key; writes with an existing key overwrite.
// PaymentDate is set when paid and nil when unpaid.
type Record struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Status      string    `json:"status"`
	PaymentDate *string   `json:"payment_date"`
	CreatedAt   time.Time `json:"-"`
}
