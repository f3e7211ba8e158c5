// Package notify carries composed parent notifications to their last
// mile. Real delivery belongs to the device's SMS app or share sheet;
// the console notifier stands in for it server-side.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Job is a queued notification: who to tell, about whom, what text.
// ID correlates the publish and delivery log lines.
type Job struct {
	ID          string `json:"id"`
	StudentName string `json:"student_name"`
	ParentPhone string `json:"parent_phone"`
	Body        string `json:"body"`
}

// NewJob builds a job with a fresh ID.
func NewJob(studentName, parentPhone, body string) Job {
	return Job{
		ID:          uuid.NewString(),
		StudentName: studentName,
		ParentPhone: parentPhone,
		Body:        body,
	}
}

// Encode renders a job for the queue.
func (j Job) Encode() ([]byte, error) {
	return json.Marshal(j)
}

// DecodeJob parses a queued job.
func DecodeJob(data []byte) (Job, error) {
	var j Job
	err := json.Unmarshal(data, &j)
	return j, err
}

// Notifier delivers a composed notification.
type Notifier interface {
	Send(ctx context.Context, job Job) error
}

// Console logs notifications instead of sending them. This is the
// production behavior today: actual SMS goes out through the admin's
// phone, not the server.
type Console struct{}

// Send logs the notification.
func (Console) Send(_ context.Context, job Job) error {
	log.Printf("[SMS-MOCK] %s Sending to %s: %s", job.ID, job.ParentPhone, job.Body)
	return nil
}
