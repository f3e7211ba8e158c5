package roster

import "time"

// Student is a registered pupil. The passcode is a 4-digit code used by
// the kiosk lookup; it is a convenience, not a credential, and is not
// required to be unique across students.
type Student struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ParentPhone string    `json:"parentPhone"`
	Passcode    string    `json:"passcode"`
	Memo        string    `json:"memo"`
	ClassName   string    `json:"className"`
	CreatedAt   time.Time `json:"-"`
}

// Class is a named cohort label attached to students for filtering.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}
