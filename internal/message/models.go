package message

import "time"

// Template is a reusable notification text snippet, independent of any
// student. Listing returns newest first.
type Template struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
